// Package inspect lists the element factories provided by installed plugins.
package inspect

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/gsteasy/internal/domain/plugin"
)

// Registry is the read-only view of the plugin registry.
type Registry interface {
	// Plugins returns every currently registered plugin.
	Plugins() []plugin.Plugin
	// Features returns the features registered under the given plugin name.
	Features(pluginName string) []plugin.Feature
}

// Lister prints one line per element factory.
type Lister struct {
	registry Registry
}

// NewLister creates a new lister.
func NewLister(registry Registry) *Lister {
	return &Lister{registry: registry}
}

// List writes "<plugin>: <factory>: <long-name>" for every element factory of
// every non-blacklisted plugin, followed by the factories registered under
// the placeholder plugin name.
func (l *Lister) List(w io.Writer) error {
	plugins := l.registry.Plugins()
	zlog.Debug().Msgf("inspect: %d plugins registered", len(plugins))

	for _, p := range plugins {
		if p.Blacklisted {
			zlog.Debug().Msgf("inspect: skipping blacklisted plugin: %s", p.Name)
			continue
		}
		if err := l.listFeatures(w, p.Name); err != nil {
			return err
		}
	}

	return l.listFeatures(w, plugin.NullPluginName)
}

func (l *Lister) listFeatures(w io.Writer, pluginName string) error {
	for _, f := range l.registry.Features(pluginName) {
		if !f.ElementFactory {
			continue
		}
		if _, err := fmt.Fprintln(w, f.Line(pluginName)); err != nil {
			return errors.Wrapf(err, "failed to write factory %s", f.Name)
		}
	}
	return nil
}
