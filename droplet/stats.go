package droplet

import (
	"bytes"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dropletd/droplet/httpd"
	"github.com/dropletd/droplet/internal/obs"
)

// Stats tracks application counters. Safe for concurrent use.
type Stats struct {
	mu            sync.Mutex
	uploads       uint64
	uploadedBytes uint64
	filesServed   uint64
	startedAt     time.Time
}

func NewStats() *Stats {
	return &Stats{startedAt: time.Now()}
}

func (s *Stats) RecordUpload(bytes uint64) {
	s.mu.Lock()
	s.uploads++
	s.uploadedBytes += bytes
	s.mu.Unlock()
}

func (s *Stats) RecordServe() {
	s.mu.Lock()
	s.filesServed++
	s.mu.Unlock()
}

// Snapshot copies the counters for reporting.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsSnapshot{
		Uploads:       s.uploads,
		UploadedBytes: s.uploadedBytes,
		FilesServed:   s.filesServed,
		UptimeSeconds: int64(time.Since(s.startedAt) / time.Second),
	}
}

type StatsSnapshot struct {
	Uploads       uint64 `json:"uploads"`
	UploadedBytes uint64 `json:"uploaded_bytes"`
	FilesServed   uint64 `json:"files_served"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// LogEvery logs a snapshot at each interval until stop is closed.
func (s *Stats) LogEvery(interval time.Duration, logger obs.Logger, stop <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			snap := s.Snapshot()
			logger.Logf(obs.Info, "stats: %d uploads (%s), %d files served",
				snap.Uploads, humanize.Bytes(snap.UploadedBytes), snap.FilesServed)
		case <-stop:
			return
		}
	}
}

// StatsHandler answers with a JSON snapshot of the counters.
func StatsHandler(req *httpd.Request[State]) (*httpd.Response, error) {
	b, err := json.Marshal(req.State.Stats.Snapshot())
	if err != nil {
		return nil, err
	}
	return &httpd.Response{
		StatusCode: 200,
		Header: httpd.Headers{
			"Content-Type":   "application/json",
			"Content-Length": strconv.Itoa(len(b)),
		},
		Body: bytes.NewReader(b),
	}, nil
}
