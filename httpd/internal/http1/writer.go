package http1

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteResponse serializes one response: the status line, each header in map
// order (unordered), a blank line, then the body stream-copied to the writer,
// followed by a flush. A declared Content-Length is trusted as-is; no check
// is made against the bytes actually copied.
func WriteResponse(bw *bufio.Writer, status int, reason string, hdr map[string]string, body io.Reader) error {
	if _, err := fmt.Fprintf(bw, "HTTP/1.1 %s\r\n", statusLine(status, reason)); err != nil {
		return err
	}
	for k, v := range hdr {
		if _, err := fmt.Fprintf(bw, "%s: %s\r\n", k, v); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\r\n"); err != nil {
		return err
	}
	if body != nil {
		if _, err := io.Copy(bw, body); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func statusLine(status int, reason string) string {
	if reason == "" {
		return strconv.Itoa(status)
	}
	return strconv.Itoa(status) + " " + reason
}
