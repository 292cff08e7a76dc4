package settings

import (
	"fmt"
	"strings"
)

// Tree is a nested configuration mapping. Values are scalars, lists ([]any) or
// nested Trees.
type Tree map[string]any

// Get returns the value addressed by a dotted path such as "logging.level".
func (t Tree) Get(path string) (any, bool) {
	var current any = t
	for _, key := range splitPath(path) {
		node, ok := current.(Tree)
		if !ok {
			return nil, false
		}
		current, ok = node[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Sub returns the subtree addressed by path. Missing paths and non-tree
// values yield an empty tree.
func (t Tree) Sub(path string) Tree {
	value, ok := t.Get(path)
	if !ok {
		return Tree{}
	}
	sub, ok := value.(Tree)
	if !ok {
		return Tree{}
	}
	return sub
}

// Set stores value at the dotted path, creating intermediate trees as needed.
// Intermediate scalars are replaced.
func (t Tree) Set(path string, value any) {
	keys := splitPath(path)
	if len(keys) == 0 {
		return
	}

	node := t
	for _, key := range keys[:len(keys)-1] {
		next, ok := node[key].(Tree)
		if !ok {
			next = Tree{}
			node[key] = next
		}
		node = next
	}
	node[keys[len(keys)-1]] = value
}

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	if t == nil {
		return Tree{}
	}
	return cloneValue(t).(Tree)
}

// Merge deep-merges trees from lowest to highest priority into a new tree.
// Nested trees merge key by key, any other value from a later tree replaces
// the earlier one entirely. The inputs are left untouched.
func Merge(trees ...Tree) Tree {
	out := Tree{}
	for _, tree := range trees {
		mergeInto(out, tree)
	}
	return out
}

func mergeInto(dst, src Tree) {
	for key, value := range src {
		srcTree, srcIsTree := value.(Tree)
		dstTree, dstIsTree := dst[key].(Tree)
		if srcIsTree && dstIsTree {
			mergeInto(dstTree, srcTree)
			continue
		}
		dst[key] = cloneValue(value)
	}
}

// Normalize converts decoder output into a Tree. Nested mappings of any key
// type become Trees, lists are walked recursively. A nil input yields an empty
// tree; any other non-mapping input is an error.
func Normalize(raw any) (Tree, error) {
	if raw == nil {
		return Tree{}, nil
	}
	switch raw.(type) {
	case Tree, map[string]any, map[any]any:
	default:
		return nil, fmt.Errorf("%w: top level is %T, not a mapping", ErrMalformedSource, raw)
	}
	return normalizeValue(raw).(Tree), nil
}

func normalizeValue(raw any) any {
	switch v := raw.(type) {
	case Tree:
		out := make(Tree, len(v))
		for key, value := range v {
			out[key] = normalizeValue(value)
		}
		return out
	case map[string]any:
		out := make(Tree, len(v))
		for key, value := range v {
			out[key] = normalizeValue(value)
		}
		return out
	case map[any]any:
		out := make(Tree, len(v))
		for key, value := range v {
			out[fmt.Sprint(key)] = normalizeValue(value)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}

func cloneValue(raw any) any {
	switch v := raw.(type) {
	case Tree:
		out := make(Tree, len(v))
		for key, value := range v {
			out[key] = cloneValue(value)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}
