package actions

import (
	"strings"
)

// Formatter turns raw command descriptions into validated Instances.
type Formatter struct {
	registry *Registry
}

// NewFormatter creates a formatter backed by reg.
func NewFormatter(reg *Registry) *Formatter {
	return &Formatter{registry: reg}
}

// Registry returns the registry commands are looked up in.
func (f *Formatter) Registry() *Registry {
	return f.registry
}

// FormatActions formats every element of raw, which must be a list. The
// first failing element aborts the whole batch.
func (f *Formatter) FormatActions(raw any) ([]Instance, error) {
	var items []any
	switch list := raw.(type) {
	case []Instance:
		for _, inst := range list {
			items = append(items, inst)
		}
	case []any:
		items = list
	case []string:
		for _, s := range list {
			items = append(items, s)
		}
	case []RawAction:
		for _, a := range list {
			items = append(items, a)
		}
	case []map[string]any:
		for _, m := range list {
			items = append(items, m)
		}
	default:
		return nil, parseErrorf(raw, "actions must be a list")
	}

	out := make([]Instance, 0, len(items))
	for _, item := range items {
		inst, err := f.FormatAction(item)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// FormatAction formats one command given as a template string, a RawAction,
// a map with name/template/meta keys or an already formatted Instance
// (which is validated again).
func (f *Formatter) FormatAction(raw any) (Instance, error) {
	switch a := raw.(type) {
	case string:
		fields := strings.Fields(a)
		if len(fields) == 0 {
			return Instance{}, parseErrorf(a, "invalid action '%s'", a)
		}
		return f.format(fields[0], &a, nil)
	case RawAction:
		return f.formatRaw(a)
	case *RawAction:
		if a == nil {
			return Instance{}, parseErrorf(raw, "invalid action <nil>")
		}
		return f.formatRaw(*a)
	case Instance:
		return f.format(a.Name, nil, a.Meta)
	case map[string]any:
		return f.formatMap(a)
	default:
		return Instance{}, parseErrorf(raw, "invalid action %v", raw)
	}
}

func (f *Formatter) formatRaw(a RawAction) (Instance, error) {
	if a.Template != "" {
		return f.format(a.Name, &a.Template, nil)
	}
	return f.format(a.Name, nil, a.Meta)
}

func (f *Formatter) formatMap(m map[string]any) (Instance, error) {
	name, _ := m["name"].(string)

	if template, ok := m["template"].(string); ok {
		return f.format(name, &template, nil)
	}

	var meta map[string]any
	switch v := m["meta"].(type) {
	case map[string]any:
		meta = v
	case Meta:
		meta = v
	case nil:
	default:
		return Instance{}, parseErrorf(m, "action '%s' meta must be a mapping", name)
	}
	return f.format(name, nil, meta)
}

// format resolves meta from template when given, otherwise from the record
// meta, then validates it.
func (f *Formatter) format(name string, template *string, raw map[string]any) (Instance, error) {
	cmd, ok := f.registry.Lookup(name)
	if name == "" || !ok {
		return Instance{}, parseErrorf(name, "invalid action name '%s'", name)
	}

	var meta Meta
	if template != nil {
		g := cmd.Grammar()
		if g == nil {
			return Instance{}, parseErrorf(*template,
				"action '%s' does not support templates, it must be defined as a record", name)
		}
		parsed, ok := g.Parse(*template)
		if !ok {
			return Instance{}, parseErrorf(*template, "action template string is not valid: '%s'", *template)
		}
		if note, ok := parsed["note"].(string); ok {
			parsed["note"] = strings.TrimSpace(note)
		}
		meta = parsed
	} else {
		meta = make(Meta, len(raw))
		for k, v := range raw {
			meta[k] = v
		}
	}

	normalized := make(Meta, len(cmd.MetaKeys()))
	for _, key := range cmd.MetaKeys() {
		normalized[key] = meta[key]
	}

	if err := cmd.Validate(f, normalized); err != nil {
		return Instance{}, &ValidationError{Command: name, Err: err}
	}

	debugLog.Debugf("Formatted %s", name)
	return Instance{Name: name, Meta: normalized}, nil
}
