package httpd

import (
	"bufio"
	"io"
	"net"

	"github.com/dropletd/droplet/httpd/internal/http1"
	"github.com/dropletd/droplet/internal/obs"
)

// Params holds the path parameter bindings of a matched route. It is built
// fresh per request and discarded after the handler returns.
type Params map[string]string

// HTTPRequest is the parsed wire request. Body is the unconsumed remainder
// of the connection; reading it is the handler's responsibility and is not
// bounded by the header-section cap. The query string is stored unparsed.
type HTTPRequest struct {
	Method Method
	Path   string
	Query  string
	Header Headers
	Body   io.Reader
}

// Request is the view handed to a handler: the shared application state
// (copied per request), the peer address, the wire request, and the path
// parameters bound by the matched route.
type Request[S any] struct {
	State      S
	RemoteAddr net.Addr
	HTTPRequest
	Params Params
}

// readRequest parses one request off br and lifts the wire view into typed
// form: the method token becomes a Method, header lines fold into a
// normalized Headers map with the last value for a name winning.
func readRequest(br *bufio.Reader, logger obs.Logger) (*HTTPRequest, error) {
	rr := &http1.Reader{BR: br, MaxHeaderBytes: http1.MaxHeaderBytes, Log: logger}
	pr, err := rr.ReadRequest()
	if err != nil {
		return nil, err
	}
	method, err := ParseMethod(pr.Method)
	if err != nil {
		return nil, err
	}
	header := make(Headers, len(pr.Header))
	for _, kv := range pr.Header {
		header.Set(kv[0], kv[1])
	}
	return &HTTPRequest{
		Method: method,
		Path:   pr.Path,
		Query:  pr.Query,
		Header: header,
		Body:   pr.Body,
	}, nil
}
