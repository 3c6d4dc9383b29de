// Package config loads the MCP tool-enable configuration. All tools default
// to enabled; the YAML file is an opt-out list so a deployment can expose a
// read-only subset.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// KnownTools lists every tool the server can register.
var KnownTools = []string{
	"list_components",
	"get_component",
	"update_component",
	"update_schematic_info",
	"rename_net",
	"list_net_classes",
	"update_net_class",
}

// File is the on-disk shape of config.yaml.
type File struct {
	Tools map[string]bool `yaml:"tools"`
}

// ToolConfig maps tool name to enabled state for every known tool.
type ToolConfig struct {
	Enabled  map[string]bool
	Warnings []string // unknown tool names found in the file
}

// Default returns a config with every tool enabled.
func Default() *ToolConfig {
	enabled := make(map[string]bool, len(KnownTools))
	for _, name := range KnownTools {
		enabled[name] = true
	}
	return &ToolConfig{Enabled: enabled}
}

// Load reads a YAML config from path and applies it over the defaults.
// Unknown tool names are collected as warnings rather than errors so a
// config written for a newer release still loads.
func Load(path string) (*ToolConfig, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	names := make([]string, 0, len(file.Tools))
	for name := range file.Tools {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, known := cfg.Enabled[name]; !known {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown tool in config: %q", name))
			continue
		}
		cfg.Enabled[name] = file.Tools[name]
	}
	return cfg, nil
}

// EnabledTools returns the enabled tool names in stable order.
func (c *ToolConfig) EnabledTools() []string {
	var names []string
	for _, name := range KnownTools {
		if c.Enabled[name] {
			names = append(names, name)
		}
	}
	return names
}

// DisabledTools returns the disabled tool names in stable order.
func (c *ToolConfig) DisabledTools() []string {
	var names []string
	for _, name := range KnownTools {
		if !c.Enabled[name] {
			names = append(names, name)
		}
	}
	return names
}
