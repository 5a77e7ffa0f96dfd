// Package main provides the easy-inspect entry point.
package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/gsteasy/internal/app/inspect"
	"github.com/osa030/gsteasy/internal/infra/gstreamer"
	"github.com/osa030/gsteasy/internal/infra/logger"
)

var (
	app     = kingpin.New("easy-inspect", "List installed GStreamer element factories")
	verbose = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	// Logs go to stderr so that stdout carries the listing only
	level := "warn"
	if *verbose {
		level = "debug"
	}
	if _, err := logger.Init(logger.Config{Output: "stderr", Level: level}); err != nil {
		app.Fatalf("failed to initialize logger: %v", err)
	}

	if err := gstreamer.Init(""); err != nil {
		zlog.Fatal().Msgf("Failed to initialize GStreamer: %v", err)
	}

	lister := inspect.NewLister(gstreamer.NewRegistry())
	if err := lister.List(os.Stdout); err != nil {
		zlog.Fatal().Msgf("Failed to list plugins: %v", err)
	}
}
