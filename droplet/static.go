package droplet

import (
	"errors"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dropletd/droplet/httpd"
)

// Static serves files under root from the request path. Dot segments are
// cleaned away first, so the path cannot escape the root. Directories
// resolve to their index.html.
func Static(root string) httpd.HandlerFunc[State] {
	return func(req *httpd.Request[State]) (*httpd.Response, error) {
		return serveFile(req, root, strings.Trim(req.Path, "/"))
	}
}

// StaticParam serves the file named by the given route parameter under root.
func StaticParam(root, param string) httpd.HandlerFunc[State] {
	return func(req *httpd.Request[State]) (*httpd.Response, error) {
		name, ok := req.Params[param]
		if !ok {
			return httpd.Status(400), nil
		}
		return serveFile(req, root, name)
	}
}

func serveFile(req *httpd.Request[State], root, name string) (*httpd.Response, error) {
	// Rooting the name before Clean turns any ../ prefix into a no-op.
	rel := path.Clean("/" + name)
	fp := filepath.Join(root, filepath.FromSlash(rel))

	info, err := os.Stat(fp)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return httpd.Status(404), nil
		}
		return nil, err
	}
	if info.IsDir() {
		fp = filepath.Join(fp, "index.html")
	}

	f, err := os.Open(fp)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return httpd.Status(404), nil
		}
		return nil, err
	}
	info, err = f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return httpd.Status(403), nil
	}

	req.State.Stats.RecordServe()

	// The serializer closes the file once the body has been copied out.
	return &httpd.Response{
		StatusCode: 200,
		Header: httpd.Headers{
			"Content-Type":   contentType(fp),
			"Content-Length": strconv.FormatInt(info.Size(), 10),
		},
		Body: f,
	}, nil
}

func contentType(fp string) string {
	if t := mime.TypeByExtension(filepath.Ext(fp)); t != "" {
		return t
	}
	return "application/octet-stream"
}
