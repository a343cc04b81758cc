// Package options loads infographic specifications and resolves them into
// the components that draw them.
//
// A specification names a template and/or a design (structure, title and
// item renderers), the data to draw and the theme. It can be written as
// JSON, YAML or TOML; all three decode into the same [Options]:
//
//	template: list-row-simple
//	theme: dark
//	design:
//	  item:
//	    type: simple
//	    width: 160
//	data:
//	  title: Roadmap
//	  items:
//	    - label: Plan
//	    - label: Build
//
// [Parse] validates the specification against the registries and returns a
// [Parsed] value whose [Parsed.Compose] produces the element tree. Every
// configuration problem is reported by Parse with an error code from
// pkg/errors; composing never fails.
package options

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/infographic/pkg/data"
	"github.com/matzehuels/infographic/pkg/element"
	"github.com/matzehuels/infographic/pkg/errors"
	"github.com/matzehuels/infographic/pkg/theme"
)

// Spec file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Options is a complete infographic specification.
type Options struct {
	// Template names a catalog entry whose design is used as the base.
	Template string `json:"template,omitempty" yaml:"template,omitempty" toml:"template,omitempty"`
	// Design overrides the template part by part.
	Design Design    `json:"design,omitempty" yaml:"design,omitempty" toml:"design,omitempty"`
	Data   data.Data `json:"data" yaml:"data" toml:"data"`
	// Theme names a built-in theme; ThemeConfig overrides its fields.
	Theme       string       `json:"theme,omitempty" yaml:"theme,omitempty" toml:"theme,omitempty"`
	ThemeConfig theme.Config `json:"themeConfig,omitempty" yaml:"themeConfig,omitempty" toml:"themeConfig,omitempty"`
	Padding     Padding      `json:"padding,omitempty" yaml:"padding,omitempty" toml:"padding,omitempty"`
	// Width and Height fix the rendered size. Zero keeps the content size.
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`

	// Measurer overrides the text measurer. Nil uses the embedded fonts.
	Measurer element.TextMeasurer `json:"-" yaml:"-" toml:"-"`
}

// Design selects the components of an infographic.
type Design struct {
	Structure *Entry `json:"structure,omitempty" yaml:"structure,omitempty" toml:"structure,omitempty"`
	Title     *Entry `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Item      *Entry `json:"item,omitempty" yaml:"item,omitempty" toml:"item,omitempty"`
	// Items assigns item renderers per hierarchy level.
	Items []Entry `json:"items,omitempty" yaml:"items,omitempty" toml:"items,omitempty"`
}

// Merge overlays the parts set in override on d.
func (d Design) Merge(override Design) Design {
	if override.Structure != nil {
		d.Structure = override.Structure
	}
	if override.Title != nil {
		d.Title = override.Title
	}
	if override.Item != nil {
		d.Item = override.Item
	}
	if len(override.Items) > 0 {
		d.Items = override.Items
	}
	return d
}

// FormatFromPath infers the spec format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported spec file %q (use .json, .yaml or .toml)", filepath.Base(path))
}

// Load reads a spec file, picking the decoder by extension.
func Load(path string) (Options, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Options{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "spec file not found: %s", path)
		}
		return Options{}, fmt.Errorf("read spec: %w", err)
	}
	return Decode(bytes.NewReader(raw), format)
}

// Decode reads a spec in the given format. Unknown top-level keys are
// rejected.
func Decode(r io.Reader, format string) (Options, error) {
	var o Options
	switch format {
	case FormatJSON:
		if err := decodeJSON(r, &o); err != nil {
			return Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json spec")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&o); err != nil && err != io.EOF {
			return Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml spec")
		}
	case FormatTOML:
		// TOML goes through its generic form so that entries and padding
		// share the JSON decoding rules, unknown keys included.
		var generic map[string]any
		if _, err := toml.NewDecoder(r).Decode(&generic); err != nil {
			return Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml spec")
		}
		raw, err := json.Marshal(generic)
		if err != nil {
			return Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml spec")
		}
		if err := decodeJSON(bytes.NewReader(raw), &o); err != nil {
			return Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml spec")
		}
	default:
		return Options{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported spec format %q", format)
	}
	return o, nil
}

func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Encode writes o in the given format. YAML and TOML output is produced
// from the JSON form so that design entries keep their short string form.
func Encode(w io.Writer, o Options, format string) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(o)
	}

	raw, err := json.Marshal(o)
	if err != nil {
		return err
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(generic)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported spec format %q", format)
}
