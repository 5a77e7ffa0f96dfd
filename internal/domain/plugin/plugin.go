// Package plugin provides the registry entities listed by easy-inspect.
package plugin

// NullPluginName is the placeholder plugin name under which features
// that do not belong to any loaded plugin are registered.
const NullPluginName = "NULL"

// Plugin represents an installed plugin.
type Plugin struct {
	Name        string // Plugin name, e.g. "coreelements"
	Blacklisted bool   // Plugin failed to load and was blacklisted
}

// Feature represents a feature registered by a plugin.
type Feature struct {
	Name           string // Feature name, e.g. "fakesrc"
	ElementFactory bool   // Feature is an element factory
	LongName       string // Element factory long-name metadata (factories only)
}

// Line formats a factory line as printed by easy-inspect.
func (f Feature) Line(pluginName string) string {
	return pluginName + ": " + f.Name + ": " + f.LongName
}
