// Package config loads declarative fuzzy system definitions from YAML or TOML
// and builds engines from them.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
)

// DefaultSamples is used when a variable does not set samples.
const DefaultSamples = 101

// Definition describes a complete Mamdani system.
type Definition struct {
	Name      string         `yaml:"name" toml:"name"`
	Inputs    []Variable     `yaml:"inputs" toml:"inputs"`
	Output    Variable       `yaml:"output" toml:"output"`
	Sets      map[string]Set `yaml:"sets" toml:"sets"`
	Rules     []Rule         `yaml:"rules" toml:"rules"`
	Aggregate string         `yaml:"aggregate" toml:"aggregate"` // t-conorm, default maximum
	Defuzz    string         `yaml:"defuzz" toml:"defuzz"`       // default centroid
}

// Variable is a named universe of discourse sampled on [Min, Max].
type Variable struct {
	Name    string  `yaml:"name" toml:"name"`
	Min     float64 `yaml:"min" toml:"min"`
	Max     float64 `yaml:"max" toml:"max"`
	Samples int     `yaml:"samples" toml:"samples"`
}

// Set is a membership function by shape name and positional parameters.
type Set struct {
	Type   string    `yaml:"type" toml:"type"`
	Params []float64 `yaml:"params" toml:"params"`
}

// Rule is one IF ... THEN ... statement. Each If term is a set name optionally
// preceded by hedge words, for example "very cold" or "not somewhat warm".
type Rule struct {
	If          []string `yaml:"if" toml:"if"`
	Operators   []string `yaml:"operators" toml:"operators"`
	Then        string   `yaml:"then" toml:"then"`
	DOM         string   `yaml:"dom" toml:"dom"`                 // default minimum
	TNorm       string   `yaml:"tnorm" toml:"tnorm"`             // default minimum
	TCoNorm     string   `yaml:"tconorm" toml:"tconorm"`         // default maximum
	Implication string   `yaml:"implication" toml:"implication"` // default minimum
}

// Format selects the decoder.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", errors.Wrapf(internalerr.ErrInvalidConfig, "config: unsupported extension for %s", path)
}

// Load reads and decodes a definition file. It does not validate it.
func Load(path string) (*Definition, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}
	def, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return def, nil
}

// Parse decodes data. Unknown fields are rejected.
func Parse(data []byte, format Format) (*Definition, error) {
	var def Definition
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "decode yaml"), internalerr.ErrInvalidConfig)
		}
	case TOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "decode toml"), internalerr.ErrInvalidConfig)
		}
	default:
		return nil, errors.Wrapf(internalerr.ErrInvalidConfig, "unknown format %q", format)
	}
	def.applyDefaults()
	return &def, nil
}

func (d *Definition) applyDefaults() {
	if d.Aggregate == "" {
		d.Aggregate = "maximum"
	}
	if d.Defuzz == "" {
		d.Defuzz = "centroid"
	}
	for i := range d.Inputs {
		if d.Inputs[i].Samples == 0 {
			d.Inputs[i].Samples = DefaultSamples
		}
	}
	if d.Output.Samples == 0 {
		d.Output.Samples = DefaultSamples
	}
	for i := range d.Rules {
		r := &d.Rules[i]
		if r.DOM == "" {
			r.DOM = "minimum"
		}
		if r.TNorm == "" {
			r.TNorm = "minimum"
		}
		if r.TCoNorm == "" {
			r.TCoNorm = "maximum"
		}
		if r.Implication == "" {
			r.Implication = "minimum"
		}
	}
}
