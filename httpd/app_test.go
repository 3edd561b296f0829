package httpd

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/dropletd/droplet/internal/obs"
)

type testState struct {
	greeting string
}

func startApp(t *testing.T, app *App[testState]) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = app.Serve(ln) }()
	t.Cleanup(func() { _ = app.Close() })
	return ln.Addr().String()
}

// roundTrip sends one raw request and reads until the server closes the
// connection.
func roundTrip(t *testing.T, addr, raw string) string {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))
	if _, err := conn.Write([]byte(raw)); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(b)
}

func body(t *testing.T, response string) string {
	t.Helper()
	_, body, ok := strings.Cut(response, "\r\n\r\n")
	if !ok {
		t.Fatalf("no header/body split in %q", response)
	}
	return body
}

func newTestApp(t *testing.T) *App[testState] {
	t.Helper()
	app := New(testState{greeting: "hey"})
	app.Logger = obs.NopLogger{}

	register := func(pattern string, fn HandlerFunc[testState]) {
		if err := app.HandleFunc(MethodGet, pattern, fn); err != nil {
			t.Fatalf("register %q: %v", pattern, err)
		}
	}
	register("/", func(req *Request[testState]) (*Response, error) {
		return Text("root"), nil
	})
	register("/hello", func(req *Request[testState]) (*Response, error) {
		return Text(req.State.greeting), nil
	})
	register("/:var", func(req *Request[testState]) (*Response, error) {
		return Text("var=" + req.Params["var"]), nil
	})
	register("/hello/:var/*", func(req *Request[testState]) (*Response, error) {
		return Text("deep var=" + req.Params["var"]), nil
	})
	return app
}

func TestAppEndToEnd(t *testing.T) {
	app := newTestApp(t)
	addr := startApp(t, app)

	cases := []struct {
		path string
		want string
	}{
		{"/", "root"},
		{"/hello", "hey"},
		{"/anything", "var=anything"},
		{"/hello/x/y/z", "deep var=x"},
	}
	for _, tc := range cases {
		raw := fmt.Sprintf("GET %s HTTP/1.1\r\nHost: t\r\n\r\n", tc.path)
		resp := roundTrip(t, addr, raw)
		if !strings.HasPrefix(resp, "HTTP/1.1 200 OK\r\n") {
			t.Fatalf("%q: response %q", tc.path, resp)
		}
		if got := body(t, resp); got != tc.want {
			t.Fatalf("%q: body=%q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestAppNoRouteDefault(t *testing.T) {
	app := newTestApp(t)
	addr := startApp(t, app)

	// No POST routes are registered; the default response comes back.
	resp := roundTrip(t, addr, "POST /hello HTTP/1.1\r\nHost: t\r\n\r\n")
	if !strings.HasPrefix(resp, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("response %q", resp)
	}
	if got := body(t, resp); got != "200 OK\n" {
		t.Fatalf("body=%q", got)
	}
}

func TestAppOneRequestPerConnection(t *testing.T) {
	app := newTestApp(t)
	addr := startApp(t, app)

	raw := "GET /hello HTTP/1.1\r\nHost: t\r\n\r\nGET /hello HTTP/1.1\r\nHost: t\r\n\r\n"
	resp := roundTrip(t, addr, raw)
	if n := strings.Count(resp, "HTTP/1.1"); n != 1 {
		t.Fatalf("got %d responses on one connection, want 1", n)
	}
}

func TestAppMalformedRequestGetsNoResponse(t *testing.T) {
	app := newTestApp(t)
	addr := startApp(t, app)

	if resp := roundTrip(t, addr, "BREW /tea HTTP/1.1\r\n\r\n"); resp != "" {
		t.Fatalf("malformed request got %q", resp)
	}
	if resp := roundTrip(t, addr, "just nonsense\r\n\r\n"); resp != "" {
		t.Fatalf("malformed request got %q", resp)
	}
}

func TestAppHandlerErrorDropsConnection(t *testing.T) {
	app := New(testState{})
	app.Logger = obs.NopLogger{}
	meter := &obs.CountingMeter{}
	app.Meter = meter
	err := app.HandleFunc(MethodGet, "/boom", func(req *Request[testState]) (*Response, error) {
		return nil, errors.New("exploded")
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	addr := startApp(t, app)

	if resp := roundTrip(t, addr, "GET /boom HTTP/1.1\r\n\r\n"); resp != "" {
		t.Fatalf("failed handler wrote %q", resp)
	}
	if got := meter.Count("httpd.request.errors"); got != 1 {
		t.Fatalf("error counter=%v", got)
	}
}

func TestAppRequestMetadata(t *testing.T) {
	app := New(testState{})
	app.Logger = obs.NopLogger{}
	err := app.HandleFunc(MethodPost, "/echo", func(req *Request[testState]) (*Response, error) {
		if req.RemoteAddr == nil {
			return nil, errors.New("no peer address")
		}
		if req.Query != "mode=loud" {
			return nil, fmt.Errorf("query=%q", req.Query)
		}
		if req.Header.Get("x-token") != "s3cret" {
			return nil, fmt.Errorf("header=%q", req.Header.Get("x-token"))
		}
		b, _ := io.ReadAll(io.LimitReader(req.Body, 4))
		return Text(string(b)), nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	addr := startApp(t, app)

	raw := "POST /echo?mode=loud HTTP/1.1\r\nX-Token: s3cret\r\nContent-Length: 4\r\n\r\nping"
	resp := roundTrip(t, addr, raw)
	if got := body(t, resp); got != "ping" {
		t.Fatalf("body=%q", got)
	}
}

func TestAppRegistrationAfterListen(t *testing.T) {
	app := newTestApp(t)
	_ = startApp(t, app)
	for i := 0; i < 100 && !app.listening.Load(); i++ {
		time.Sleep(time.Millisecond)
	}

	err := app.HandleFunc(MethodGet, "/late", func(req *Request[testState]) (*Response, error) {
		return Text("late"), nil
	})
	if err == nil {
		t.Fatal("registration after listen succeeded")
	}
}
