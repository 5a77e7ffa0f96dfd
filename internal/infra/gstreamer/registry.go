package gstreamer

/*
#include <stdlib.h>
#include <gst/gst.h>

static gboolean easy_plugin_blacklisted(GstPlugin *plugin) {
	return GST_OBJECT_FLAG_IS_SET(plugin, GST_PLUGIN_FLAG_BLACKLISTED);
}

static gboolean easy_feature_is_factory(GstPluginFeature *feature) {
	return GST_IS_ELEMENT_FACTORY(feature);
}

static const gchar *easy_factory_long_name(GstPluginFeature *feature) {
	return gst_element_factory_get_metadata(GST_ELEMENT_FACTORY(feature), GST_ELEMENT_METADATA_LONGNAME);
}

static const gchar *easy_object_name(gpointer object) {
	return GST_OBJECT_NAME(object);
}
*/
import "C"

import (
	"unsafe"

	"github.com/osa030/gsteasy/internal/domain/plugin"
)

// Registry reads the default GStreamer registry. Init must be called first.
type Registry struct{}

// NewRegistry creates a new registry reader.
func NewRegistry() *Registry {
	return &Registry{}
}

// Plugins returns every plugin in the registry.
func (r *Registry) Plugins() []plugin.Plugin {
	list := C.gst_registry_get_plugin_list(C.gst_registry_get())
	defer C.gst_plugin_list_free(list)

	var plugins []plugin.Plugin
	for l := list; l != nil; l = l.next {
		p := (*C.GstPlugin)(unsafe.Pointer(l.data))
		plugins = append(plugins, plugin.Plugin{
			Name:        goString(C.gst_plugin_get_name(p)),
			Blacklisted: C.easy_plugin_blacklisted(p) != 0,
		})
	}
	return plugins
}

// Features returns the features registered under pluginName.
func (r *Registry) Features(pluginName string) []plugin.Feature {
	name := C.CString(pluginName)
	defer C.free(unsafe.Pointer(name))

	list := C.gst_registry_get_feature_list_by_plugin(C.gst_registry_get(), (*C.gchar)(unsafe.Pointer(name)))
	defer C.gst_plugin_feature_list_free(list)

	var features []plugin.Feature
	for l := list; l != nil; l = l.next {
		f := (*C.GstPluginFeature)(unsafe.Pointer(l.data))
		feature := plugin.Feature{
			Name: goString(C.easy_object_name(C.gpointer(unsafe.Pointer(f)))),
		}
		if C.easy_feature_is_factory(f) != 0 {
			feature.ElementFactory = true
			feature.LongName = goString(C.easy_factory_long_name(f))
		}
		features = append(features, feature)
	}
	return features
}
