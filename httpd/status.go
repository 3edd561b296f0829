package httpd

import (
	"strconv"

	"github.com/fatih/color"
)

// StatusText returns the canonical reason phrase for a status code, or ""
// when the code has none.
func StatusText(code int) string {
	switch code {
	case 100:
		return "Continue"
	case 101:
		return "Switching Protocols"
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 202:
		return "Accepted"
	case 204:
		return "No Content"
	case 206:
		return "Partial Content"
	case 301:
		return "Moved Permanently"
	case 302:
		return "Found"
	case 303:
		return "See Other"
	case 304:
		return "Not Modified"
	case 307:
		return "Temporary Redirect"
	case 308:
		return "Permanent Redirect"
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 408:
		return "Request Timeout"
	case 409:
		return "Conflict"
	case 410:
		return "Gone"
	case 411:
		return "Length Required"
	case 413:
		return "Payload Too Large"
	case 414:
		return "URI Too Long"
	case 415:
		return "Unsupported Media Type"
	case 418:
		return "I'm a teapot"
	case 429:
		return "Too Many Requests"
	case 500:
		return "Internal Server Error"
	case 501:
		return "Not Implemented"
	case 502:
		return "Bad Gateway"
	case 503:
		return "Service Unavailable"
	case 504:
		return "Gateway Timeout"
	case 505:
		return "HTTP Version Not Supported"
	default:
		return ""
	}
}

// statusString is "<code> <reason>", or just the code when no reason phrase
// exists. It is both the tail of the status line and the body of Status().
func statusString(code int) string {
	if t := StatusText(code); t != "" {
		return strconv.Itoa(code) + " " + t
	}
	return strconv.Itoa(code)
}

// colorStatus renders a status code for access logs, colored by class.
func colorStatus(code int) string {
	var c *color.Color
	switch {
	case code < 200:
		c = color.New(color.FgWhite)
	case code < 300:
		c = color.New(color.FgHiGreen)
	case code < 400:
		c = color.New(color.FgYellow)
	case code < 500:
		c = color.New(color.FgHiRed)
	case code < 600:
		c = color.New(color.FgRed)
	default:
		return strconv.Itoa(code)
	}
	return c.Sprint(code)
}
