// Package http1 implements the HTTP/1.1 wire format for the httpd server:
// a capped reader for the request line and headers, and a response writer.
package http1

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/dropletd/droplet/internal/obs"
)

const (
	// MaxHeaderBytes bounds the bytes consumed while reading the request
	// line and headers of one request. The body is not counted against it.
	MaxHeaderBytes = 8192
	// MaxPathBytes bounds the request path, query string excluded.
	MaxPathBytes = 2048
)

// Parse failures. All are local to a single connection.
var (
	ErrNullRequest      = errors.New("http1: client sent an empty request")
	ErrInterrupted      = errors.New("http1: reached EOF while reading headers")
	ErrInvalidFirstLine = errors.New("http1: invalid first line")
	ErrPathTooLong      = errors.New("http1: path too long")
	ErrInvalidPath      = errors.New("http1: invalid path")
)

// ParsedRequest is the wire-level view of one request. Header names and
// values are trimmed but not normalized. Body is the unconsumed remainder of
// the stream; it is not bounded by the header cap.
type ParsedRequest struct {
	Method string
	Path   string
	Query  string
	Header [][2]string
	Body   io.Reader
}

// Reader parses exactly one request off a buffered stream.
type Reader struct {
	BR             *bufio.Reader
	MaxHeaderBytes int // defaults to MaxHeaderBytes when <= 0
	Log            obs.Logger
}

// ReadRequest reads CRLF-or-LF-terminated lines up to the blank line ending
// the header section, then parses the request line and header lines.
func (r *Reader) ReadRequest() (*ParsedRequest, error) {
	budget := r.MaxHeaderBytes
	if budget <= 0 {
		budget = MaxHeaderBytes
	}

	var lines []string
	for {
		line, err := r.readLine(&budget)
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(lines) == 0 {
					return nil, ErrNullRequest
				}
				return nil, ErrInterrupted
			}
			if errors.Is(err, syscall.EINTR) {
				return nil, ErrInterrupted
			}
			return nil, err
		}
		if line == "" {
			if len(lines) == 0 {
				return nil, ErrNullRequest
			}
			break
		}
		lines = append(lines, line)
	}

	parts := strings.Split(lines[0], " ")
	if len(parts) != 3 {
		return nil, ErrInvalidFirstLine
	}
	// parts[2] is the protocol version; it is not validated further.

	path, query, _ := strings.Cut(parts[1], "?")
	if len(path) > MaxPathBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrPathTooLong, len(path))
	}
	if path == "" || path[0] != '/' {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	hdr := make([][2]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			r.logf("ignoring invalid header line %q", line)
			continue
		}
		hdr = append(hdr, [2]string{name, strings.TrimSpace(value)})
	}

	return &ParsedRequest{
		Method: parts[0],
		Path:   path,
		Query:  query,
		Header: hdr,
		Body:   r.BR,
	}, nil
}

// readLine reads bytes up to a LF, charging each one against the budget.
// Running out of budget behaves like stream exhaustion. Trailing CRs are
// stripped, so both CRLF and bare LF terminate a line.
func (r *Reader) readLine(budget *int) (string, error) {
	var sb strings.Builder
	for {
		if *budget <= 0 {
			return "", io.EOF
		}
		b, err := r.BR.ReadByte()
		if err != nil {
			return "", err
		}
		*budget--
		if b == '\n' {
			break
		}
		sb.WriteByte(b)
	}
	return strings.TrimRight(sb.String(), "\r"), nil
}

func (r *Reader) logf(format string, args ...any) {
	if r.Log != nil {
		r.Log.Logf(obs.Debug, format, args...)
	}
}
