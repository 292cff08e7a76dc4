package settings

import (
	"fmt"
	"os"
	"strings"
)

// LookupFunc resolves an environment variable, reporting whether it is set.
type LookupFunc func(name string) (string, bool)

// Expand returns a copy of tree with every string leaf, including strings
// inside lists, expanded against lookup. A nil lookup uses os.LookupEnv.
func Expand(tree Tree, lookup LookupFunc) (Tree, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	out, err := expandValue(tree.Clone(), lookup, "")
	if err != nil {
		return nil, err
	}
	return out.(Tree), nil
}

func expandValue(raw any, lookup LookupFunc, path string) (any, error) {
	switch v := raw.(type) {
	case Tree:
		for key, value := range v {
			expanded, err := expandValue(value, lookup, joinPath(path, key))
			if err != nil {
				return nil, err
			}
			v[key] = expanded
		}
		return v, nil
	case []any:
		for i, item := range v {
			expanded, err := expandValue(item, lookup, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			v[i] = expanded
		}
		return v, nil
	case string:
		expanded, err := ExpandString(v, lookup)
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", path, err)
		}
		return expanded, nil
	default:
		return v, nil
	}
}

// ExpandString substitutes $NAME and ${NAME<op>word} references in s.
// Supported operators follow shell parameter expansion: -, :-, ?, :?, +, :+.
// "$$" yields a literal "$".
func ExpandString(s string, lookup LookupFunc) (string, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if !strings.Contains(s, "$") {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '$' || i+1 == len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}

		next := s[i+1]
		switch {
		case next == '$':
			b.WriteByte('$')
			i += 2
		case next == '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return "", &ExpansionError{Ref: s[i:], err: ErrInvalidInterpolation}
			}
			body := s[i+2 : i+2+end]
			value, err := resolveBraced(body, lookup)
			if err != nil {
				return "", err
			}
			b.WriteString(value)
			i += end + 3
		case isNameChar(next):
			j := i + 1
			for j < len(s) && isNameChar(s[j]) {
				j++
			}
			value, _ := lookup(s[i+1 : j])
			b.WriteString(value)
			i = j
		default:
			b.WriteByte('$')
			i++
		}
	}

	return b.String(), nil
}

func resolveBraced(body string, lookup LookupFunc) (string, error) {
	n := 0
	for n < len(body) && isNameChar(body[n]) {
		n++
	}
	name, rest := body[:n], body[n:]
	if name == "" {
		return "", &ExpansionError{Ref: "${" + body + "}", err: ErrInvalidInterpolation}
	}

	op := rest
	word := ""
	if idx := strings.IndexFunc(rest, func(r rune) bool { return !strings.ContainsRune(":?+-", r) }); idx >= 0 {
		op, word = rest[:idx], rest[idx:]
	}

	value, set := lookup(name)
	switch op {
	case "":
		if word != "" {
			return "", &ExpansionError{Name: name, Ref: "${" + body + "}", err: ErrInvalidInterpolation}
		}
		return value, nil
	case "-":
		if !set {
			return word, nil
		}
		return value, nil
	case ":-":
		if value == "" {
			return word, nil
		}
		return value, nil
	case "?":
		if !set {
			return "", &ExpansionError{Name: name, Message: word, Ref: "${" + body + "}", err: ErrUnresolvedVariable}
		}
		return value, nil
	case ":?":
		if value == "" {
			return "", &ExpansionError{Name: name, Message: word, Ref: "${" + body + "}", err: ErrUnresolvedVariable}
		}
		return value, nil
	case "+":
		if set {
			return word, nil
		}
		return "", nil
	case ":+":
		if value != "" {
			return word, nil
		}
		return "", nil
	default:
		return "", &ExpansionError{Name: name, Ref: "${" + body + "}", err: ErrInvalidInterpolation}
	}
}

func isNameChar(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
