package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"focusnav/internal/jsonutil"

	"gopkg.in/yaml.v3"
)

// Format names a scene file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var ErrUnknownFormat = errors.New("unknown scene format")

// Spec is the on-disk description of one node and its subtree.
type Spec struct {
	Name      string `yaml:"name" json:"name"`
	Focusable bool   `yaml:"focusable,omitempty" json:"focusable,omitempty"`
	Visible   *bool  `yaml:"visible,omitempty" json:"visible,omitempty"`
	Children  []Spec `yaml:"children,omitempty" json:"children,omitempty"`
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Load reads a scene file and builds its tree.
func Load(path string) (*Tree, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	t, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Decode parses a scene description in the given format.
func Decode(r io.Reader, format Format) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var spec Spec
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document leaves spec zero, which Build rejects by name.
		if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode scene yaml: %w", err)
		}
	case FormatJSON:
		if err := jsonutil.UnmarshalStrict(data, &spec, "decode scene json"); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	return Build(spec)
}

// Build creates a tree from a spec. The spec's top node becomes the root.
func Build(spec Spec) (*Tree, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("root: %w", ErrEmptyName)
	}
	t := New(spec.Name, spec.options()...)
	for _, c := range spec.Children {
		if err := t.addSpec(t.Root(), c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tree) addSpec(parent ID, spec Spec) error {
	if spec.Name == "" {
		return fmt.Errorf("child of %q: %w", t.Name(parent), ErrEmptyName)
	}
	id, err := t.Add(parent, spec.Name, spec.options()...)
	if err != nil {
		return err
	}
	for _, c := range spec.Children {
		if err := t.addSpec(id, c); err != nil {
			return err
		}
	}
	return nil
}

func (s Spec) options() []Option {
	opts := []Option{Focusable(s.Focusable)}
	if s.Visible != nil {
		opts = append(opts, Visible(*s.Visible))
	}
	return opts
}

// Spec converts the tree back to its on-disk description.
func (t *Tree) Spec() Spec {
	return t.spec(t.Root())
}

func (t *Tree) spec(id ID) Spec {
	n := t.nodes[id]
	s := Spec{Name: n.name, Focusable: n.focusable}
	if !n.visible {
		hidden := false
		s.Visible = &hidden
	}
	for _, c := range n.children {
		s.Children = append(s.Children, t.spec(c))
	}
	return s
}
