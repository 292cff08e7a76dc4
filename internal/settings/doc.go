// Package settings resolves named configuration files into a single tree.
// Each file is assembled from three sources with precedence: CLI arguments >
// user configuration directory > embedded defaults. After the deep merge every
// string leaf is expanded against the process environment using shell-style
// ${NAME}, ${NAME:-default} and ${NAME:?message} references.
package settings
