package options

import (
	"encoding/json"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// Entry selects a registered component and configures it. In a spec it is
// written either as the bare type name or as a map holding "type" next to
// the component's own settings:
//
//	item: simple
//	item: {type: simple, width: 160}
type Entry struct {
	Type   string
	Config map[string]any
}

// NewEntry builds an entry from a type name and optional key/value settings.
func NewEntry(typ string, kv ...any) *Entry {
	e := &Entry{Type: typ}
	for i := 0; i+1 < len(kv); i += 2 {
		if e.Config == nil {
			e.Config = map[string]any{}
		}
		e.Config[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return e
}

// fromValue accepts the decoded form of an entry: a string or a map.
func (e *Entry) fromValue(v any) error {
	switch v := v.(type) {
	case string:
		*e = Entry{Type: v}
		return nil
	case map[string]any:
		typ, ok := v["type"].(string)
		if !ok || typ == "" {
			return fmt.Errorf("design entry: type is required")
		}
		cfg := maps.Clone(v)
		delete(cfg, "type")
		if len(cfg) == 0 {
			cfg = nil
		}
		*e = Entry{Type: typ, Config: cfg}
		return nil
	}
	return fmt.Errorf("design entry: want a type name or a map, got %T", v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return e.fromValue(v)
}

// MarshalJSON writes the short string form when there is no config.
func (e Entry) MarshalJSON() ([]byte, error) {
	if len(e.Config) == 0 {
		return json.Marshal(e.Type)
	}
	m := maps.Clone(e.Config)
	m["type"] = e.Type
	return json.Marshal(m)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Entry) UnmarshalYAML(n *yaml.Node) error {
	var v any
	if err := n.Decode(&v); err != nil {
		return err
	}
	return e.fromValue(v)
}

// UnmarshalTOML implements toml.Unmarshaler.
func (e *Entry) UnmarshalTOML(v any) error {
	return e.fromValue(v)
}

// Padding is the space between the content and the edge of the canvas. A
// spec writes it CSS style: one number for all sides, or a list of two,
// three or four numbers.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// Uniform returns equal padding on all sides.
func Uniform(v float64) Padding { return Padding{v, v, v, v} }

// IsZero reports whether no side is padded.
func (p Padding) IsZero() bool { return p == Padding{} }

func (p *Padding) fromValue(v any) error {
	switch v := v.(type) {
	case nil:
		*p = Padding{}
		return nil
	case []any:
		vals := make([]float64, len(v))
		for i, x := range v {
			f, ok := number(x)
			if !ok {
				return fmt.Errorf("padding: %v is not a number", x)
			}
			vals[i] = f
		}
		switch len(vals) {
		case 1:
			*p = Uniform(vals[0])
		case 2:
			*p = Padding{vals[0], vals[1], vals[0], vals[1]}
		case 3:
			*p = Padding{vals[0], vals[1], vals[2], vals[1]}
		case 4:
			*p = Padding{vals[0], vals[1], vals[2], vals[3]}
		default:
			return fmt.Errorf("padding: want 1 to 4 values, got %d", len(vals))
		}
		return nil
	}
	f, ok := number(v)
	if !ok {
		return fmt.Errorf("padding: want a number or a list, got %T", v)
	}
	*p = Uniform(f)
	return nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Padding) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return p.fromValue(v)
}

// MarshalJSON writes a single number when all sides match.
func (p Padding) MarshalJSON() ([]byte, error) {
	if p.Top == p.Right && p.Top == p.Bottom && p.Top == p.Left {
		return json.Marshal(p.Top)
	}
	return json.Marshal([]float64{p.Top, p.Right, p.Bottom, p.Left})
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Padding) UnmarshalYAML(n *yaml.Node) error {
	var v any
	if err := n.Decode(&v); err != nil {
		return err
	}
	return p.fromValue(v)
}

// UnmarshalTOML implements toml.Unmarshaler.
func (p *Padding) UnmarshalTOML(v any) error {
	return p.fromValue(v)
}
