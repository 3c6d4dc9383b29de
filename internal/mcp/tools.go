package mcp

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceSchEdit/pkg/kicad/project"
	"github.com/OpenTraceLab/OpenTraceSchEdit/pkg/kicad/schematic"
)

// Tool describes one MCP tool for tools/list.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolHandler runs one tool call.
type ToolHandler func(args map[string]interface{}) (interface{}, error)

// registerTools wires the handlers for every enabled tool.
func (s *Server) registerTools() {
	all := map[string]ToolHandler{
		"list_components":       s.toolListComponents,
		"get_component":         s.toolGetComponent,
		"update_component":      s.toolUpdateComponent,
		"update_schematic_info": s.toolUpdateSchematicInfo,
		"rename_net":            s.toolRenameNet,
		"list_net_classes":      s.toolListNetClasses,
		"update_net_class":      s.toolUpdateNetClass,
	}
	for name, handler := range all {
		if s.cfg.Enabled[name] {
			s.handlers[name] = handler
		}
	}
}

// toolDefinitions returns definitions for the enabled tools in stable order.
func (s *Server) toolDefinitions() []Tool {
	defs := []Tool{
		{
			Name:        "list_components",
			Description: "List schematic components with reference, value, and footprint",
			InputSchema: objectSchema(map[string]interface{}{
				"schematic_path": stringProp("Path to a .kicad_sch file"),
				"filter":         stringProp("Optional reference prefix, e.g. 'C' for capacitors"),
			}, "schematic_path"),
		},
		{
			Name:        "get_component",
			Description: "Get all properties of one component, with visibility flags",
			InputSchema: objectSchema(map[string]interface{}{
				"schematic_path": stringProp("Path to a .kicad_sch file"),
				"reference":      stringProp("Exact reference designator, e.g. 'C5'"),
			}, "schematic_path", "reference"),
		},
		{
			Name: "update_component",
			Description: "Modify component properties surgically and save. Map values: " +
				"a string sets the value, null removes the property, " +
				"{value, visible} sets value with explicit visibility",
			InputSchema: objectSchema(map[string]interface{}{
				"schematic_path": stringProp("Path to a .kicad_sch file"),
				"reference":      stringProp("Exact reference designator"),
				"properties": map[string]interface{}{
					"type":        "object",
					"description": "Property name to new value (string, null, or {value, visible})",
				},
			}, "schematic_path", "reference", "properties"),
		},
		{
			Name:        "update_schematic_info",
			Description: "Update title block fields (author is stored in comment 1)",
			InputSchema: objectSchema(map[string]interface{}{
				"schematic_path": stringProp("Path to a .kicad_sch file"),
				"title":          stringProp("New title"),
				"date":           stringProp("New date (YYYY-MM-DD recommended)"),
				"revision":       stringProp("New revision"),
				"company":        stringProp("New company name"),
				"author":         stringProp("Author name, stored in title block comment 1"),
			}, "schematic_path"),
		},
		{
			Name:        "rename_net",
			Description: "Rename all matching net labels (local, global, hierarchical)",
			InputSchema: objectSchema(map[string]interface{}{
				"schematic_path": stringProp("Path to a .kicad_sch file"),
				"old_name":       stringProp("Exact net label text to find"),
				"new_name":       stringProp("Replacement net label text"),
			}, "schematic_path", "old_name", "new_name"),
		},
		{
			Name:        "list_net_classes",
			Description: "List net classes from a KiCad project file",
			InputSchema: objectSchema(map[string]interface{}{
				"project_path": stringProp("Path to a .kicad_pro file"),
			}, "project_path"),
		},
		{
			Name:        "update_net_class",
			Description: "Create or update a net class: merge rule overrides, add a net pattern",
			InputSchema: objectSchema(map[string]interface{}{
				"project_path": stringProp("Path to a .kicad_pro file"),
				"class_name":   stringProp("Net class name, e.g. 'Default' or 'USB'"),
				"rules": map[string]interface{}{
					"type":        "object",
					"description": "Rule overrides, e.g. {\"track_width\": 0.5}",
				},
				"add_pattern": stringProp("Wildcard net pattern to add, e.g. 'USB_D?'"),
			}, "project_path", "class_name"),
		},
	}

	var enabled []Tool
	for _, def := range defs {
		if _, ok := s.handlers[def.Name]; ok {
			enabled = append(enabled, def)
		}
	}
	return enabled
}

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc}
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

func stringArg(args map[string]interface{}, name string) (string, error) {
	v, ok := args[name]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", name)
	}
	return s, nil
}

func optionalStringArg(args map[string]interface{}, name string) (string, bool, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("argument %q must be a string", name)
	}
	return s, true, nil
}

func (s *Server) toolListComponents(args map[string]interface{}) (interface{}, error) {
	path, err := stringArg(args, "schematic_path")
	if err != nil {
		return nil, err
	}
	filter, _, err := optionalStringArg(args, "filter")
	if err != nil {
		return nil, err
	}
	sch, err := schematic.Load(path)
	if err != nil {
		return nil, err
	}
	comps := sch.ListComponents(filter)
	return map[string]interface{}{
		"components": comps,
		"count":      len(comps),
	}, nil
}

func (s *Server) toolGetComponent(args map[string]interface{}) (interface{}, error) {
	path, err := stringArg(args, "schematic_path")
	if err != nil {
		return nil, err
	}
	reference, err := stringArg(args, "reference")
	if err != nil {
		return nil, err
	}
	sch, err := schematic.Load(path)
	if err != nil {
		return nil, err
	}
	return sch.GetComponent(reference)
}

func (s *Server) toolUpdateComponent(args map[string]interface{}) (interface{}, error) {
	path, err := stringArg(args, "schematic_path")
	if err != nil {
		return nil, err
	}
	reference, err := stringArg(args, "reference")
	if err != nil {
		return nil, err
	}
	rawProps, ok := args["properties"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("argument \"properties\" must be an object")
	}
	edits, err := parsePropertyEdits(rawProps)
	if err != nil {
		return nil, err
	}

	sch, err := schematic.Load(path)
	if err != nil {
		return nil, err
	}
	result, err := sch.UpdateComponent(reference, edits)
	if err != nil {
		return nil, err
	}
	if err := sch.Commit(path); err != nil {
		return nil, err
	}
	return result, nil
}

// parsePropertyEdits maps JSON tool arguments onto PropertyEdit values:
// string sets, null removes, {value, visible} sets with visibility.
func parsePropertyEdits(raw map[string]interface{}) (map[string]schematic.PropertyEdit, error) {
	edits := make(map[string]schematic.PropertyEdit, len(raw))
	for name, v := range raw {
		switch val := v.(type) {
		case nil:
			edits[name] = schematic.PropertyEdit{Remove: true}
		case string:
			edits[name] = schematic.SetValue(val)
		case map[string]interface{}:
			var edit schematic.PropertyEdit
			if value, ok := val["value"]; ok {
				str, ok := value.(string)
				if !ok {
					return nil, fmt.Errorf("property %q: \"value\" must be a string", name)
				}
				edit.Value = &str
			}
			if visible, ok := val["visible"]; ok {
				b, ok := visible.(bool)
				if !ok {
					return nil, fmt.Errorf("property %q: \"visible\" must be a boolean", name)
				}
				edit.Visible = &b
			}
			if remove, ok := val["remove"]; ok {
				b, ok := remove.(bool)
				if !ok {
					return nil, fmt.Errorf("property %q: \"remove\" must be a boolean", name)
				}
				edit.Remove = b
			}
			if edit.Value == nil && edit.Visible == nil && !edit.Remove {
				return nil, fmt.Errorf("property %q: need \"value\", \"visible\", or \"remove\"", name)
			}
			edits[name] = edit
		default:
			return nil, fmt.Errorf("property %q: unsupported value type %T", name, v)
		}
	}
	return edits, nil
}

func (s *Server) toolUpdateSchematicInfo(args map[string]interface{}) (interface{}, error) {
	path, err := stringArg(args, "schematic_path")
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	for arg, field := range map[string]string{
		"title":    "title",
		"date":     "date",
		"revision": "rev",
		"company":  "company",
		// Author lives in title block comment 1 by KiCad convention.
		"author": "comment1",
	} {
		if v, ok, err := optionalStringArg(args, arg); err != nil {
			return nil, err
		} else if ok {
			fields[field] = v
		}
	}

	sch, err := schematic.Load(path)
	if err != nil {
		return nil, err
	}
	count, err := sch.UpdateTitleBlock(fields)
	if err != nil {
		return nil, err
	}
	if err := sch.Commit(path); err != nil {
		return nil, err
	}
	return map[string]interface{}{"updated": count}, nil
}

func (s *Server) toolRenameNet(args map[string]interface{}) (interface{}, error) {
	path, err := stringArg(args, "schematic_path")
	if err != nil {
		return nil, err
	}
	oldName, err := stringArg(args, "old_name")
	if err != nil {
		return nil, err
	}
	newName, err := stringArg(args, "new_name")
	if err != nil {
		return nil, err
	}

	sch, err := schematic.Load(path)
	if err != nil {
		return nil, err
	}
	count, err := sch.RenameNet(oldName, newName)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		if err := sch.Commit(path); err != nil {
			return nil, err
		}
	}
	return map[string]interface{}{"renamed": count}, nil
}

func (s *Server) toolListNetClasses(args map[string]interface{}) (interface{}, error) {
	path, err := stringArg(args, "project_path")
	if err != nil {
		return nil, err
	}
	proj, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	classes := proj.NetClasses()
	return map[string]interface{}{
		"classes": classes,
		"count":   len(classes),
	}, nil
}

func (s *Server) toolUpdateNetClass(args map[string]interface{}) (interface{}, error) {
	path, err := stringArg(args, "project_path")
	if err != nil {
		return nil, err
	}
	className, err := stringArg(args, "class_name")
	if err != nil {
		return nil, err
	}
	addPattern, _, err := optionalStringArg(args, "add_pattern")
	if err != nil {
		return nil, err
	}

	var rules map[string]float64
	if raw, ok := args["rules"].(map[string]interface{}); ok {
		rules = make(map[string]float64, len(raw))
		for field, v := range raw {
			f, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("rule %q must be a number", field)
			}
			rules[field] = f
		}
	}

	proj, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	created, changes, err := proj.UpdateNetClass(className, rules, addPattern)
	if err != nil {
		return nil, err
	}
	if err := proj.Save(); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"created": created,
		"changes": changes,
	}, nil
}
