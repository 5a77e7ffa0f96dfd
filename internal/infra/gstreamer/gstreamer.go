// Package gstreamer adapts GStreamer to the player and inspect packages.
package gstreamer

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-gst/go-gst/gst"
	zlog "github.com/rs/zerolog/log"
)

// Init initializes GStreamer. A non-empty debug level list is exported as
// GST_DEBUG first so that it is picked up during initialization.
func Init(debug string) error {
	if debug != "" {
		if err := os.Setenv("GST_DEBUG", debug); err != nil {
			return errors.Wrap(err, "failed to set GST_DEBUG")
		}
	}
	gst.Init(nil)
	zlog.Debug().Msgf("gstreamer: initialized %s", version())
	return nil
}
