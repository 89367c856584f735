// Package config defines the shape of the dictionary-factory configuration
// from spec.md §6. Loading a config from disk, resolving anchored paths,
// and dynamically loading plugin classes are explicit non-goals (spec.md
// §1); this package only defines and validates the in-memory shape.
package config

import "fmt"

// PluginSpec names one plugin and carries its free-form settings, mirroring
// the `{class, ...settings}` shape from spec.md §6. Settings is tagged
// `json:"-"`, so encoding/json decodes only Class and leaves Settings nil;
// the caller fills it. The caller is also responsible for resolving
// `Class` to a constructor; this package does not perform dynamic loading.
type PluginSpec struct {
	Class    string                 `json:"class"`
	Settings map[string]interface{} `json:"-"`
}

// Config is the JSON object passed into the Dictionary factory (spec.md §6).
type Config struct {
	SystemDict                     string       `json:"systemDict"`
	UserDict                       []string     `json:"userDict,omitempty"`
	EnableDefaultCompoundParticles *bool        `json:"enableDefaultCompoundParticles,omitempty"`
	InputTextPlugin                []PluginSpec `json:"inputTextPlugin,omitempty"`
	OovProviderPlugin               []PluginSpec `json:"oovProviderPlugin,omitempty"`
	PathRewritePlugin               []PluginSpec `json:"pathRewritePlugin,omitempty"`
	EditConnectionCostPlugin        []PluginSpec `json:"editConnectionCostPlugin,omitempty"`
}

// CompoundParticlesEnabled returns the effective value of
// EnableDefaultCompoundParticles, defaulting to true per spec.md §6.
func (c *Config) CompoundParticlesEnabled() bool {
	if c.EnableDefaultCompoundParticles == nil {
		return true
	}
	return *c.EnableDefaultCompoundParticles
}

// Validate checks the invariants this package is responsible for: that a
// system dictionary path was given. It does not check that the path
// exists or is readable — that is a load-time concern of the dictionary
// package, not a config-shape concern.
func (c *Config) Validate() error {
	if c.SystemDict == "" {
		return fmt.Errorf("config: systemDict is required")
	}
	return nil
}
