package main

import (
	"log"
	"os"
	"time"

	"github.com/dropletd/droplet/droplet"
	"github.com/dropletd/droplet/httpd"
	"github.com/dropletd/droplet/internal/config"
	"github.com/dropletd/droplet/internal/obs"
)

func main() {
	logger := obs.StdLogger{L: log.New(os.Stderr, "", log.LstdFlags), Min: obs.Info}
	if os.Getenv("DROPLET_DEBUG") != "" {
		logger.Min = obs.Debug
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Logf(obs.Debug, "loading configuration: %v", err)
		logger.Logf(obs.Info, "using default configuration")
		cfg = config.Default()
	} else {
		logger.Logf(obs.Info, "loaded configuration")
	}

	for _, dir := range []string{cfg.UploadDir, cfg.TempDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Logf(obs.Error, "creating %s: %v", dir, err)
			os.Exit(1)
		}
	}

	state := droplet.State{Config: cfg, Stats: droplet.NewStats(), Log: logger}
	app := httpd.New(state)
	app.Logger = logger

	must := func(err error) {
		if err != nil {
			logger.Logf(obs.Error, "registering routes: %v", err)
			os.Exit(1)
		}
	}
	must(app.HandleFunc(httpd.MethodPut, "/:file", droplet.Upload))
	must(app.HandleFunc(httpd.MethodGet, "/file/:file", droplet.StaticParam(cfg.UploadDir, "file")))
	must(app.HandleFunc(httpd.MethodGet, "/stats", droplet.StatsHandler))
	must(app.HandleFunc(httpd.MethodGet, "/*", droplet.Static("static")))

	if cfg.StatsInterval > 0 {
		stop := make(chan struct{})
		defer close(stop)
		go state.Stats.LogEvery(time.Duration(cfg.StatsInterval)*time.Second, logger, stop)
	}

	if err := app.Listen(cfg.Addr()); err != nil {
		logger.Logf(obs.Error, "server: %v", err)
		os.Exit(1)
	}
}
