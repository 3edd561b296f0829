package droplet

import (
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/dropletd/droplet/httpd"
	"github.com/dropletd/droplet/internal/config"
)

func TestStatsSnapshot(t *testing.T) {
	s := NewStats()
	s.RecordUpload(100)
	s.RecordUpload(50)
	s.RecordServe()

	snap := s.Snapshot()
	if snap.Uploads != 2 || snap.UploadedBytes != 150 || snap.FilesServed != 1 {
		t.Fatalf("snapshot=%+v", snap)
	}
}

func TestStatsConcurrent(t *testing.T) {
	s := NewStats()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.RecordUpload(1)
				s.RecordServe()
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if snap.Uploads != 1000 || snap.UploadedBytes != 1000 || snap.FilesServed != 1000 {
		t.Fatalf("snapshot=%+v", snap)
	}
}

func TestStatsHandler(t *testing.T) {
	state := State{Config: config.Default(), Stats: NewStats()}
	state.Stats.RecordUpload(42)

	resp, err := StatsHandler(&httpd.Request[State]{
		State: state,
		HTTPRequest: httpd.HTTPRequest{
			Method: httpd.MethodGet,
			Path:   "/stats",
			Header: httpd.Headers{},
		},
	})
	if err != nil {
		t.Fatalf("StatsHandler: %v", err)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type=%q", got)
	}

	b, _ := io.ReadAll(resp.Body)
	var snap StatsSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		t.Fatalf("decoding %q: %v", b, err)
	}
	if snap.Uploads != 1 || snap.UploadedBytes != 42 {
		t.Fatalf("snapshot=%+v", snap)
	}
}
