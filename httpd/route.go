package httpd

import (
	"errors"
	"fmt"
	"strings"
)

type tokenKind uint8

const (
	tokenPath tokenKind = iota
	tokenParameter
	tokenWildcard
)

// RouteToken is one segment-matching unit of a route: an exact path literal,
// a named parameter binding the segment's value, or a trailing wildcard
// matching the rest of the path. Tokens are built once at registration time
// and never mutated.
type RouteToken struct {
	kind tokenKind
	text string // literal for path tokens, name for parameter tokens
}

// PathToken matches one path segment exactly.
func PathToken(literal string) RouteToken {
	return RouteToken{kind: tokenPath, text: literal}
}

// ParameterToken matches any one segment and binds its value to name.
func ParameterToken(name string) RouteToken {
	return RouteToken{kind: tokenParameter, text: name}
}

// WildcardToken matches the remainder of the path, zero or more segments.
// It must be the last token of a route.
func WildcardToken() RouteToken {
	return RouteToken{kind: tokenWildcard}
}

// Literal returns the literal of a path token.
func (t RouteToken) Literal() (string, bool) {
	if t.kind != tokenPath {
		return "", false
	}
	return t.text, true
}

// Parameter returns the name of a parameter token.
func (t RouteToken) Parameter() (string, bool) {
	if t.kind != tokenParameter {
		return "", false
	}
	return t.text, true
}

func (t RouteToken) IsWildcard() bool {
	return t.kind == tokenWildcard
}

func (t RouteToken) String() string {
	switch t.kind {
	case tokenParameter:
		return "/:" + t.text
	case tokenWildcard:
		return "/*"
	default:
		return "/" + t.text
	}
}

// Route pairs a method with an ordered token sequence. Routes are registered
// once before the server listens; treat Tokens as immutable.
type Route struct {
	Method Method
	Tokens []RouteToken
}

func (r Route) String() string {
	var sb strings.Builder
	sb.WriteString(r.Method.String())
	for _, tok := range r.Tokens {
		sb.WriteString(tok.String())
	}
	return sb.String()
}

var errWildcardTail = errors.New("httpd: wildcard must terminate path")

// CompileRoute parses a textual route pattern into a Route. A pattern is a
// sequence of /-separated segments, each a literal, ":name", or a bare "*".
// The empty pattern (and "/") compiles to a single empty literal, which
// matches the root path. Compilation runs once per registration, not per
// request.
func CompileRoute(method Method, pattern string) (Route, error) {
	segments := splitPattern(pattern)
	tokens := make([]RouteToken, 0, len(segments))
	var names map[string]bool
	wildcard := false
	for _, seg := range segments {
		if wildcard {
			return Route{}, errWildcardTail
		}
		switch {
		case seg == "*":
			wildcard = true
			tokens = append(tokens, WildcardToken())
		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			if name == "" {
				return Route{}, fmt.Errorf("httpd: segment %q is missing a parameter name", seg)
			}
			if names[name] {
				return Route{}, fmt.Errorf("httpd: parameter %q already defined", name)
			}
			if names == nil {
				names = make(map[string]bool)
			}
			names[name] = true
			tokens = append(tokens, ParameterToken(name))
		case strings.ContainsAny(seg, ":*"):
			return Route{}, fmt.Errorf("httpd: invalid segment %q", seg)
		default:
			tokens = append(tokens, PathToken(seg))
		}
	}
	return Route{Method: method, Tokens: tokens}, nil
}

func splitPattern(pattern string) []string {
	pattern = strings.TrimPrefix(pattern, "/")
	if pattern == "" {
		return []string{""}
	}
	return strings.Split(pattern, "/")
}
