package httpd

import "fmt"

// Method is the closed set of HTTP/1.1 request methods. Values map
// bidirectionally to their uppercase wire tokens; any other token is a parse
// failure, never a Method.
type Method uint8

const (
	MethodGet Method = iota
	MethodHead
	MethodPost
	MethodPut
	MethodDelete
	MethodConnect
	MethodOptions
	MethodTrace
	MethodPatch
)

var methodNames = [...]string{
	MethodGet:     "GET",
	MethodHead:    "HEAD",
	MethodPost:    "POST",
	MethodPut:     "PUT",
	MethodDelete:  "DELETE",
	MethodConnect: "CONNECT",
	MethodOptions: "OPTIONS",
	MethodTrace:   "TRACE",
	MethodPatch:   "PATCH",
}

func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return "INVALID"
}

// ParseMethod maps a wire token to its Method.
func ParseMethod(tok string) (Method, error) {
	for i, name := range methodNames {
		if tok == name {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMethod, tok)
}
