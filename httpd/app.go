package httpd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dropletd/droplet/httpd/internal/http1"
	"github.com/dropletd/droplet/internal/obs"
)

// App is a route table plus the accept loop that serves it. The state value
// is copied into every request, so it must be cheap to copy; if handlers
// mutate it, keep the mutable parts behind a pointer that does its own
// locking. The route table is immutable once the server starts accepting,
// so lookups need no synchronization.
type App[S any] struct {
	Logger obs.Logger
	Meter  obs.Meter

	state     S
	routes    []Route
	handlers  []Handler[S]
	listening atomic.Bool

	mu sync.Mutex
	ln net.Listener
}

// New returns an App serving the given shared state. Logging goes to the
// standard logger at Info and up; metrics are discarded. Both can be
// replaced before Listen.
func New[S any](state S) *App[S] {
	return &App[S]{
		Logger: obs.StdLogger{L: log.Default(), Min: obs.Info},
		Meter:  obs.NopMeter{},
		state:  state,
	}
}

// Handle compiles the pattern and registers the handler for it. All
// registration must happen before Listen.
func (a *App[S]) Handle(method Method, pattern string, h Handler[S]) error {
	if a.listening.Load() {
		return errors.New("httpd: route registered after listen")
	}
	route, err := CompileRoute(method, pattern)
	if err != nil {
		return err
	}
	a.routes = append(a.routes, route)
	a.handlers = append(a.handlers, h)
	return nil
}

// HandleFunc registers a plain function as the handler for a pattern.
func (a *App[S]) HandleFunc(method Method, pattern string, fn HandlerFunc[S]) error {
	return a.Handle(method, pattern, fn)
}

// Listen binds addr and accepts connections until the listener fails or is
// closed. This is the single blocking call startup code makes.
func (a *App[S]) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return a.Serve(ln)
}

// Serve accepts connections off ln, handing each one to its own goroutine.
// It returns nil after Close.
func (a *App[S]) Serve(ln net.Listener) error {
	a.listening.Store(true)
	a.mu.Lock()
	a.ln = ln
	a.mu.Unlock()

	a.logf(obs.Info, "listening on http://%s", ln.Addr())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		go a.handleConn(conn)
	}
}

// Close stops the accept loop. Connections already being served finish on
// their own; there is no per-request deadline in this layer, so a stalled
// client can hold its goroutine open.
func (a *App[S]) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ln == nil {
		return nil
	}
	return a.ln.Close()
}

// handleConn runs one request/response cycle and closes the connection.
// Every failure is caught here, logged with the peer address and elapsed
// time, and never escapes to the accept loop.
func (a *App[S]) handleConn(conn net.Conn) {
	defer conn.Close()

	start := time.Now()
	peer := conn.RemoteAddr()
	id := uuid.NewString()
	a.logf(obs.Debug, "(%s) [%s] connection established", peer, id)

	outcome, err := a.handleRequest(conn, peer)
	elapsed := time.Since(start)
	a.meter().Histogram("httpd.request.duration_ms", float64(elapsed)/float64(time.Millisecond))
	if err != nil {
		a.meter().Counter("httpd.request.errors", 1)
		a.logf(obs.Error, "(%s) [%s] %v (%s)", peer, id, err, elapsed)
		return
	}
	a.meter().Counter("httpd.request.total", 1)
	a.logf(obs.Info, "(%s) [%s] %s (%s)", peer, id, outcome, elapsed)
}

// handleRequest parses, dispatches, and serializes. On parse or handler
// failure nothing is written back; the connection is simply dropped.
func (a *App[S]) handleRequest(conn net.Conn, peer net.Addr) (string, error) {
	wire, err := readRequest(bufio.NewReader(conn), a.Logger)
	if err != nil {
		return "", fmt.Errorf("parsing request: %w", err)
	}

	resp, err := a.dispatch(wire, peer)
	if err != nil {
		return "", fmt.Errorf("handling %s %s: %w", wire.Method, wire.Path, err)
	}

	bw := bufio.NewWriter(conn)
	err = http1.WriteResponse(bw, resp.StatusCode, StatusText(resp.StatusCode), headerMap(resp.Header), resp.Body)
	closeBody(resp.Body)
	if err != nil {
		return "", fmt.Errorf("writing response: %w", err)
	}
	return fmt.Sprintf("%s %s %s", colorStatus(resp.StatusCode), wire.Method, wire.Path), nil
}

// dispatch picks the best-matching route and runs its handler. When nothing
// matches, the default response is returned without invoking any handler.
// TODO: decide whether unmatched paths should answer 404 instead of the
// default 200.
func (a *App[S]) dispatch(wire *HTTPRequest, peer net.Addr) (*Response, error) {
	segments := SplitPath(wire.Path)
	idx, paramCount, ok := matchRoute(wire.Method, segments, a.routes)
	if !ok {
		a.logf(obs.Debug, "(%s) no route matches %s %s", peer, wire.Method, wire.Path)
		return DefaultResponse(), nil
	}
	route := a.routes[idx]
	a.logf(obs.Debug, "(%s) %s %s matched %s", peer, wire.Method, wire.Path, route)

	req := &Request[S]{
		State:       a.state,
		RemoteAddr:  peer,
		HTTPRequest: *wire,
		Params:      bindParams(route, segments, paramCount),
	}
	resp, err := a.handlers[idx].Handle(req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		resp = DefaultResponse()
	}
	return resp, nil
}

func (a *App[S]) logf(level obs.Level, format string, args ...any) {
	if a.Logger != nil {
		a.Logger.Logf(level, format, args...)
	}
}

func (a *App[S]) meter() obs.Meter {
	if a.Meter != nil {
		return a.Meter
	}
	return obs.NopMeter{}
}

func headerMap(h Headers) map[string]string {
	m := make(map[string]string, len(h))
	for k, v := range h {
		m[string(k)] = v
	}
	return m
}

func closeBody(body io.Reader) {
	if c, ok := body.(io.Closer); ok {
		c.Close()
	}
}
