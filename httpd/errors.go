package httpd

import (
	"errors"

	"github.com/dropletd/droplet/httpd/internal/http1"
)

// Parse failures. The wire-level ones are re-exported from the reader so
// callers can classify against this package alone with errors.Is. All of
// them are local to a single connection and never terminate the server.
var (
	ErrNullRequest      = http1.ErrNullRequest
	ErrInterrupted      = http1.ErrInterrupted
	ErrInvalidFirstLine = http1.ErrInvalidFirstLine
	ErrPathTooLong      = http1.ErrPathTooLong
	ErrInvalidPath      = http1.ErrInvalidPath
	ErrInvalidMethod    = errors.New("httpd: invalid method")
)
