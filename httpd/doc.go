// Package httpd is a small from-scratch HTTP/1.1 server framework: a
// line-oriented request parser, a path router with parameter and wildcard
// matching, and a handler abstraction over shared application state.
//
// A server is an App parameterized by a state type. Routes are registered
// before Listen and are immutable afterwards:
//
//	app := httpd.New(state)
//	app.HandleFunc(httpd.MethodGet, "/hello/:name", greet)
//	if err := app.Listen(":4040"); err != nil {
//		log.Fatal(err)
//	}
//
// Patterns are /-separated segments: a literal, ":name" binding the segment
// value to a parameter, or a trailing "*" matching the rest of the path.
// When several routes could serve a path, the one with more literal segment
// matches wins, then the one with more parameters, then the one whose
// wildcard starts later.
//
// Each accepted connection carries exactly one request/response cycle. There
// is no keep-alive, chunked transfer, TLS, or compression.
package httpd
