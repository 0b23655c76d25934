package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/autolayout/pkg/errors"
)

// Encoding is a scenario document syntax.
type Encoding string

const (
	TOML Encoding = "toml"
	YAML Encoding = "yaml"
	JSON Encoding = "json"
)

// EncodingFor picks the encoding from a file extension.
func EncodingFor(path string) (Encoding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported scenario extension %q (want .toml, .yaml or .json)", filepath.Ext(path))
}

// Document is the decoded form of a scenario file.
type Document struct {
	Name string `toml:"name" yaml:"name" json:"name"`
	// Root is the root element ID. It defaults to "root".
	Root        string             `toml:"root" yaml:"root" json:"root"`
	Environment Environment        `toml:"environment" yaml:"environment" json:"environment"`
	Metrics     map[string]float64 `toml:"metrics" yaml:"metrics" json:"metrics"`
	Elements    []Element          `toml:"elements" yaml:"elements" json:"elements"`
	Guides      []Guide            `toml:"guides" yaml:"guides" json:"guides"`
	Constraints []string           `toml:"constraints" yaml:"constraints" json:"constraints"`
	Formats     []VisualFormat     `toml:"formats" yaml:"formats" json:"formats"`
	Stacks      []Stack            `toml:"stacks" yaml:"stacks" json:"stacks"`
	Switches    []Switch           `toml:"switches" yaml:"switches" json:"switches"`
	Keyboard    []KeyboardSet      `toml:"keyboard" yaml:"keyboard" json:"keyboard"`
}

// Environment describes the container the scenario is solved in.
type Environment struct {
	Width               float64   `toml:"width" yaml:"width" json:"width"`
	Height              float64   `toml:"height" yaml:"height" json:"height"`
	SafeArea            *Insets   `toml:"safe_area" yaml:"safe_area" json:"safe_area,omitempty"`
	Margins             *Insets   `toml:"margins" yaml:"margins" json:"margins,omitempty"`
	ContentScale        float64   `toml:"content_scale" yaml:"content_scale" json:"content_scale,omitempty"`
	HorizontalSizeClass string    `toml:"horizontal_size_class" yaml:"horizontal_size_class" json:"horizontal_size_class,omitempty"`
	VerticalSizeClass   string    `toml:"vertical_size_class" yaml:"vertical_size_class" json:"vertical_size_class,omitempty"`
	Keyboard            *Keyboard `toml:"keyboard" yaml:"keyboard" json:"keyboard,omitempty"`
}

// Insets are edge distances.
type Insets struct {
	Top      float64 `toml:"top" yaml:"top" json:"top"`
	Leading  float64 `toml:"leading" yaml:"leading" json:"leading"`
	Bottom   float64 `toml:"bottom" yaml:"bottom" json:"bottom"`
	Trailing float64 `toml:"trailing" yaml:"trailing" json:"trailing"`
}

// Keyboard is a visible keyboard's frame in root coordinates.
type Keyboard struct {
	Visible  bool    `toml:"visible" yaml:"visible" json:"visible"`
	Undocked bool    `toml:"undocked" yaml:"undocked" json:"undocked"`
	X        float64 `toml:"x" yaml:"x" json:"x"`
	Y        float64 `toml:"y" yaml:"y" json:"y"`
	Width    float64 `toml:"width" yaml:"width" json:"width"`
	Height   float64 `toml:"height" yaml:"height" json:"height"`
}

// Element declares a layout element. Parent defaults to the root.
type Element struct {
	ID     string `toml:"id" yaml:"id" json:"id"`
	Parent string `toml:"parent" yaml:"parent" json:"parent,omitempty"`
	// Intrinsic is the natural [width, height]; a negative metric means none.
	Intrinsic []float64 `toml:"intrinsic" yaml:"intrinsic" json:"intrinsic,omitempty"`
	// ScaledText makes the intrinsic size follow the content scale.
	ScaledText  bool          `toml:"scaled_text" yaml:"scaled_text" json:"scaled_text,omitempty"`
	Hugging     *AxisPriority `toml:"hugging" yaml:"hugging" json:"hugging,omitempty"`
	Compression *AxisPriority `toml:"compression" yaml:"compression" json:"compression,omitempty"`
	Margins     *Insets       `toml:"margins" yaml:"margins" json:"margins,omitempty"`
	Hidden      bool          `toml:"hidden" yaml:"hidden" json:"hidden,omitempty"`
	Scrollable  bool          `toml:"scrollable" yaml:"scrollable" json:"scrollable,omitempty"`
}

// AxisPriority sets a per-axis priority. Zero leaves the default.
type AxisPriority struct {
	Horizontal float64 `toml:"horizontal" yaml:"horizontal" json:"horizontal,omitempty"`
	Vertical   float64 `toml:"vertical" yaml:"vertical" json:"vertical,omitempty"`
}

// Guide declares a custom layout guide.
type Guide struct {
	ID    string `toml:"id" yaml:"id" json:"id"`
	Owner string `toml:"owner" yaml:"owner" json:"owner,omitempty"`
}

// VisualFormat is a visual format string with its options.
type VisualFormat struct {
	Format string `toml:"format" yaml:"format" json:"format"`
	// Align is an attribute every view in the format is aligned on.
	Align string `toml:"align" yaml:"align" json:"align,omitempty"`
	// ID prefixes the generated constraint identifiers.
	ID string `toml:"id" yaml:"id" json:"id,omitempty"`
}

// Stack declares a stack container.
type Stack struct {
	Element         string             `toml:"element" yaml:"element" json:"element"`
	Arranged        []string           `toml:"arranged" yaml:"arranged" json:"arranged"`
	Axis            string             `toml:"axis" yaml:"axis" json:"axis,omitempty"`
	Spacing         float64            `toml:"spacing" yaml:"spacing" json:"spacing,omitempty"`
	Distribution    string             `toml:"distribution" yaml:"distribution" json:"distribution,omitempty"`
	Alignment       string             `toml:"alignment" yaml:"alignment" json:"alignment,omitempty"`
	MarginsRelative bool               `toml:"margins_relative" yaml:"margins_relative" json:"margins_relative,omitempty"`
	CustomSpacing   map[string]float64 `toml:"custom_spacing" yaml:"custom_spacing" json:"custom_spacing,omitempty"`
}

// Switch declares mutually exclusive constraint variants. The first variant
// whose condition matches the environment is selected.
type Switch struct {
	Name     string    `toml:"name" yaml:"name" json:"name"`
	Variants []Variant `toml:"variants" yaml:"variants" json:"variants"`
}

// Variant is one alternative of a switch.
type Variant struct {
	Name        string         `toml:"name" yaml:"name" json:"name"`
	When        Condition      `toml:"when" yaml:"when" json:"when"`
	Constraints []string       `toml:"constraints" yaml:"constraints" json:"constraints,omitempty"`
	Formats     []VisualFormat `toml:"formats" yaml:"formats" json:"formats,omitempty"`
}

// Condition restricts a variant to matching environments. Empty fields
// match anything.
type Condition struct {
	MinWidth   *float64 `toml:"min_width" yaml:"min_width" json:"min_width,omitempty"`
	MaxWidth   *float64 `toml:"max_width" yaml:"max_width" json:"max_width,omitempty"`
	Horizontal string   `toml:"horizontal" yaml:"horizontal" json:"horizontal,omitempty"`
	Vertical   string   `toml:"vertical" yaml:"vertical" json:"vertical,omitempty"`
	Landscape  *bool    `toml:"landscape" yaml:"landscape" json:"landscape,omitempty"`
}

// KeyboardSet is a constraint set active while the keyboard is near the
// Near edges and away from the Away edges. Edges are "|" separated.
type KeyboardSet struct {
	Near        string   `toml:"near" yaml:"near" json:"near,omitempty"`
	Away        string   `toml:"away" yaml:"away" json:"away,omitempty"`
	Constraints []string `toml:"constraints" yaml:"constraints" json:"constraints"`
}

// Decode parses a document in the given encoding.
func Decode(data []byte, enc Encoding) (*Document, error) {
	var doc Document
	var err error
	switch enc {
	case TOML:
		err = toml.Unmarshal(data, &doc)
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown encoding %q", enc)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode %s", enc)
	}
	return &doc, nil
}

// Load reads and decodes the scenario at path.
func Load(path string) (*Document, error) {
	enc, err := EncodingFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Decode(data, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}
