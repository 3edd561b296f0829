package droplet

import (
	"crypto/rand"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dropletd/droplet/httpd"
	"github.com/dropletd/droplet/internal/obs"
)

var fileNameReplacer = strings.NewReplacer(
	"/", "_", `\`, "_", "&", "_", "?", "_", `"`, "_", "'", "_",
	"*", "_", "~", "_", "|", "_", ":", "_", "<", "_", ">", "_",
)

// SanitizeFileName replaces path separators and shell metacharacters in a
// client-supplied name with underscores.
func SanitizeFileName(name string) string {
	return fileNameReplacer.Replace(name)
}

const prefixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func randomPrefix(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = prefixAlphabet[int(b[i])%len(prefixAlphabet)]
	}
	return string(b), nil
}

// Upload stores the request body under a random-prefixed version of the
// :file parameter and answers with the stored name. The body is read up to
// the declared Content-Length; without one the request is rejected.
func Upload(req *httpd.Request[State]) (*httpd.Response, error) {
	fileName, ok := req.Params["file"]
	if !ok {
		return httpd.Status(400), nil
	}

	size, err := strconv.ParseUint(req.Header.Get("Content-Length"), 10, 64)
	if err != nil {
		return httpd.Status(400), nil
	}
	if size > uint64(req.State.Config.MaxFileSize) {
		return httpd.Status(413), nil
	}

	prefix, err := randomPrefix(req.State.Config.PrefixLength)
	if err != nil {
		return nil, err
	}
	targetName := prefix + "." + SanitizeFileName(fileName)
	targetPath := filepath.Join(req.State.Config.UploadDir, targetName)

	if _, err := os.Stat(targetPath); err == nil {
		// The random prefix collided (62^n odds).
		return httpd.Status(503), nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	req.State.logf(obs.Info, "(%s) uploading %q as %q (%s)",
		req.RemoteAddr, fileName, targetName, humanize.Bytes(size))

	f, err := os.OpenFile(targetPath, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	written, err := io.Copy(f, io.LimitReader(req.Body, int64(size)))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}

	req.State.Stats.RecordUpload(uint64(written))
	return httpd.Text(targetName), nil
}
