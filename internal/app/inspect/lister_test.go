package inspect

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/gsteasy/internal/domain/plugin"
)

// fakeRegistry is an in-memory Registry.
type fakeRegistry struct {
	plugins  []plugin.Plugin
	features map[string][]plugin.Feature
	queried  []string
}

func (r *fakeRegistry) Plugins() []plugin.Plugin {
	return r.plugins
}

func (r *fakeRegistry) Features(pluginName string) []plugin.Feature {
	r.queried = append(r.queried, pluginName)
	return r.features[pluginName]
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		plugins: []plugin.Plugin{
			{Name: "coreelements"},
			{Name: "broken", Blacklisted: true},
			{Name: "typefindfunctions"},
		},
		features: map[string][]plugin.Feature{
			"coreelements": {
				{Name: "fakesrc", ElementFactory: true, LongName: "Fake Source"},
				{Name: "fakesink", ElementFactory: true, LongName: "Fake Sink"},
			},
			"broken": {
				{Name: "brokensrc", ElementFactory: true, LongName: "Broken Source"},
			},
			"typefindfunctions": {
				{Name: "video/x-matroska", ElementFactory: false},
			},
			plugin.NullPluginName: {
				{Name: "bin", ElementFactory: true, LongName: "Generic bin"},
				{Name: "pipeline", ElementFactory: true, LongName: "Pipeline object"},
			},
		},
	}
}

func TestLister_List(t *testing.T) {
	registry := newFakeRegistry()
	var buf bytes.Buffer

	err := NewLister(registry).List(&buf)
	require.NoError(t, err)

	expected := "coreelements: fakesrc: Fake Source\n" +
		"coreelements: fakesink: Fake Sink\n" +
		"NULL: bin: Generic bin\n" +
		"NULL: pipeline: Pipeline object\n"
	assert.Equal(t, expected, buf.String())
}

func TestLister_List_SkipsBlacklisted(t *testing.T) {
	registry := newFakeRegistry()

	err := NewLister(registry).List(&bytes.Buffer{})
	require.NoError(t, err)

	assert.NotContains(t, registry.queried, "broken", "blacklisted plugin features should not be queried")
	assert.Equal(t, []string{"coreelements", "typefindfunctions", plugin.NullPluginName}, registry.queried)
}

func TestLister_List_EmptyRegistry(t *testing.T) {
	registry := &fakeRegistry{}
	var buf bytes.Buffer

	err := NewLister(registry).List(&buf)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
	assert.Equal(t, []string{plugin.NullPluginName}, registry.queried)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestLister_List_WriteError(t *testing.T) {
	err := NewLister(newFakeRegistry()).List(failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fakesrc")
}
