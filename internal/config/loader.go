package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"memfootprint/internal/diagnostic"
	"memfootprint/primitive"
	"memfootprint/utils"
)

// MaxWidth bounds every configured width.
const MaxWidth = 64

// File is the YAML configuration file.
type File struct {
	Version  string            `yaml:"version" json:"version"`
	Pointer  uint64            `yaml:"pointer,omitempty" json:"pointer,omitempty"`
	CodeUnit uint64            `yaml:"codeUnit,omitempty" json:"codeUnit,omitempty"`
	Widths   map[string]uint64 `yaml:"widths,omitempty" json:"widths,omitempty"`
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	// widths absent from data keep their default, an explicit 0 is left for Validate
	f := File{
		Pointer:  primitive.PointerWidth,
		CodeUnit: primitive.CodeUnitWidth,
	}

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// FromWidths describes w as a File listing every kind.
func FromWidths(w primitive.Widths) *File {
	f := &File{
		Version:  "1",
		Pointer:  w.Pointer,
		CodeUnit: w.CodeUnit,
		Widths:   make(map[string]uint64, primitive.KindTotal),
	}

	for k := primitive.KindEnum(1); int(k) < primitive.KindTotal; k++ {
		f.Widths[k.Name()] = w.Of(k)
	}

	return f
}

// Validate reports every problem of f.
func (f *File) Validate() diagnostic.Diagnostics {
	var d diagnostic.Diagnostics

	if f.Version != "1" {
		d.AddError("E_VERSION", fmt.Sprintf("unsupported version %q", f.Version), "version")
	}

	if !utils.IsInRange(1, f.Pointer, MaxWidth) {
		d.AddError("E_RANGE", fmt.Sprintf("pointer width %d is outside 1..%d", f.Pointer, MaxWidth), "pointer")
	}

	if !utils.IsInRange(1, f.CodeUnit, 4) {
		d.AddError("E_RANGE", fmt.Sprintf("code unit width %d is outside 1..4", f.CodeUnit), "codeUnit")
	}

	names := make([]string, 0, len(f.Widths))
	for name := range f.Widths {
		names = append(names, name)
	}
	slices.Sort(names)

	spelled := make(map[primitive.KindEnum]string)
	for _, name := range names {
		key := "widths." + name

		kind, ok := primitive.ParseKind(name)
		if !ok {
			d.AddError("E_UNKNOWN_KIND", fmt.Sprintf("%q is not a primitive kind", name), key)
			continue
		}

		if width := f.Widths[name]; !utils.IsInRange(1, width, MaxWidth) {
			d.AddError("E_RANGE", fmt.Sprintf("width %d is outside 1..%d", width, MaxWidth), key)
		}

		if prev, ok := spelled[kind]; ok {
			d.AddWarning("W_DUPLICATE_KIND", fmt.Sprintf("%s is also set as %q, the last one wins", kind.Name(), prev), key)
		}
		spelled[kind] = name
	}

	return d
}

// Table validates f and builds the width table it describes on top of the defaults.
func (f *File) Table() (primitive.Widths, error) {
	d := f.Validate()
	if err := d.Error(); err != nil {
		return primitive.Widths{}, fmt.Errorf("invalid config: %w", err)
	}

	w := primitive.DefaultWidths()
	w.Pointer = f.Pointer
	w.CodeUnit = f.CodeUnit

	names := make([]string, 0, len(f.Widths))
	for name := range f.Widths {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		kind, _ := primitive.ParseKind(name)
		w = w.With(kind, f.Widths[name])
	}

	return w, nil
}
