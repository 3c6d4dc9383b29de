// Package project reads and edits KiCad project files (.kicad_pro). Unlike
// schematics these are plain JSON, so no span surgery is involved; the file
// is decoded, modified, and rewritten with stable two-space indentation.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
)

// Numeric rule fields a net class may carry. Unknown keys are rejected so a
// typo does not silently create a dead rule.
var netClassRuleFields = map[string]bool{
	"clearance":         true,
	"track_width":       true,
	"via_diameter":      true,
	"via_drill":         true,
	"microvia_diameter": true,
	"microvia_drill":    true,
	"diff_pair_width":   true,
	"diff_pair_gap":     true,
}

// NetClass is one entry of net_settings.classes.
type NetClass struct {
	Name     string             `json:"name"`
	Patterns []string           `json:"patterns"`
	Rules    map[string]float64 `json:"rules,omitempty"`
}

// Project is a loaded .kicad_pro file. The full JSON document is retained
// so unrelated settings survive a save untouched.
type Project struct {
	path string
	data map[string]any
}

// Load reads and decodes the project file at path.
func Load(path string) (*Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON in project file %s: %w", path, err)
	}
	return &Project{path: path, data: data}, nil
}

// NetClasses returns all net classes defined under net_settings.classes.
func (p *Project) NetClasses() []NetClass {
	var results []NetClass
	for _, raw := range p.rawClasses() {
		cls, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		entry := NetClass{Rules: make(map[string]float64)}
		entry.Name, _ = cls["name"].(string)
		if nets, ok := cls["nets"].([]any); ok {
			for _, n := range nets {
				if s, ok := n.(string); ok {
					entry.Patterns = append(entry.Patterns, s)
				}
			}
		}
		for field := range netClassRuleFields {
			if v, ok := cls[field].(float64); ok {
				entry.Rules[field] = v
			}
		}
		results = append(results, entry)
	}
	return results
}

// UpdateNetClass creates or updates the named net class. Rules merge over
// existing values; addPattern appends a wildcard net pattern, ignoring
// duplicates. Returns whether the class was created and a change summary.
func (p *Project) UpdateNetClass(name string, rules map[string]float64, addPattern string) (bool, []string, error) {
	for field := range rules {
		if !netClassRuleFields[field] {
			return false, nil, fmt.Errorf("unknown net class rule %q", field)
		}
	}

	settings, ok := p.data["net_settings"].(map[string]any)
	if !ok {
		settings = make(map[string]any)
		p.data["net_settings"] = settings
	}
	classes, ok := settings["classes"].([]any)
	if !ok {
		classes = nil
	}

	var target map[string]any
	for _, raw := range classes {
		if cls, ok := raw.(map[string]any); ok && cls["name"] == name {
			target = cls
			break
		}
	}

	created := false
	if target == nil {
		target = map[string]any{"name": name, "nets": []any{}}
		classes = append(classes, target)
		created = true
	}
	settings["classes"] = classes

	var changes []string
	fields := make([]string, 0, len(rules))
	for field := range rules {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		old, had := target[field]
		value := rules[field]
		target[field] = value
		if !had || old != any(value) {
			changes = append(changes, fmt.Sprintf("%s: %v -> %v", field, old, value))
		}
	}

	if addPattern != "" {
		nets, _ := target["nets"].([]any)
		exists := false
		for _, n := range nets {
			if n == addPattern {
				exists = true
				break
			}
		}
		if exists {
			changes = append(changes, fmt.Sprintf("pattern %q already present", addPattern))
		} else {
			target["nets"] = append(nets, addPattern)
			changes = append(changes, fmt.Sprintf("added pattern %q", addPattern))
		}
	}

	return created, changes, nil
}

// Save writes the project back to its source path atomically.
func (p *Project) Save() error {
	return p.SaveTo(p.path)
}

// SaveTo writes the project JSON to path via a sibling temp file and rename.
func (p *Project) SaveTo(path string) error {
	out, err := json.MarshalIndent(p.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project JSON: %w", err)
	}
	out = append(out, '\n')

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s", filepath.Base(path), uuid.NewString()))
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func (p *Project) rawClasses() []any {
	settings, ok := p.data["net_settings"].(map[string]any)
	if !ok {
		return nil
	}
	classes, _ := settings["classes"].([]any)
	return classes
}
