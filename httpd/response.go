package httpd

import (
	"io"
	"strconv"
	"strings"
)

// Response is what a handler produces: a status code, headers, and a body
// stream. Any status code is legal; callers are responsible for picking
// meaningful ones and for setting Content-Length to match the body; the
// serializer trusts it. If Body implements io.Closer it is closed after the
// response is written.
type Response struct {
	StatusCode int
	Header     Headers
	Body       io.Reader
}

// Text builds a 200 response with a text/plain body.
func Text(body string) *Response {
	return &Response{
		StatusCode: 200,
		Header: Headers{
			"Content-Type":   "text/plain",
			"Content-Length": strconv.Itoa(len(body)),
		},
		Body: strings.NewReader(body),
	}
}

// Status builds a response whose body is the code's status text and a
// trailing newline.
func Status(code int) *Response {
	body := statusString(code) + "\n"
	return &Response{
		StatusCode: code,
		Header: Headers{
			"Content-Type":   "text/plain",
			"Content-Length": strconv.Itoa(len(body)),
		},
		Body: strings.NewReader(body),
	}
}

// DefaultResponse is what unmatched requests receive: a plain 200.
func DefaultResponse() *Response {
	return Status(200)
}
