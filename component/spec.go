package component

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrDuplicateID   = errors.New("duplicate component id")
	ErrUnknownParent = errors.New("unknown parent component")
	ErrMissingID     = errors.New("component without id")
	ErrBadLayout     = errors.New("bad layout kind")
)

// Spec describes a component and its descendants.
type Spec struct {
	ID          string      `yaml:"id"`
	Width       string      `yaml:"width,omitempty"`
	Height      string      `yaml:"height,omitempty"`
	Layout      LayoutKind  `yaml:"layout,omitempty"`
	Orientation Orientation `yaml:"orientation,omitempty"`
	Scrolls     bool        `yaml:"scrolls,omitempty"`
	Hidden      bool        `yaml:"hidden,omitempty"`
	Content     Content     `yaml:"content,omitempty"`
	Children    []Spec      `yaml:"children,omitempty"`
}

// Content is the intrinsic size of a leaf. Text is a character count that
// wraps when the width is constrained.
type Content struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
	Text   int `yaml:"text,omitempty"`
}

func LoadSpec(path string) (Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return Spec{}, fmt.Errorf("open spec: %w", err)
	}
	defer f.Close()
	return DecodeSpec(f)
}

func DecodeSpec(r io.Reader) (Spec, error) {
	var s Spec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Spec{}, fmt.Errorf("decode spec: %w", err)
	}
	return s, nil
}

func (s Spec) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode spec: %w", err)
	}
	return enc.Close()
}

func (s Spec) String() string {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return err.Error()
	}
	return buf.String()
}

// Build creates a registry holding the described tree.
func (s Spec) Build() (*Registry, error) {
	r := NewRegistry()
	if _, err := r.Add("", s); err != nil {
		return nil, err
	}
	return r, nil
}

// MustBuild is Build for fixtures known to be valid.
func (s Spec) MustBuild() *Registry {
	r, err := s.Build()
	if err != nil {
		panic(err)
	}
	return r
}

func (s Spec) node() (*Node, error) {
	if s.ID == "" {
		return nil, ErrMissingID
	}
	width, err := ParseSize(s.Width)
	if err != nil {
		return nil, fmt.Errorf("width of %s: %w", s.ID, err)
	}
	height, err := ParseSize(s.Height)
	if err != nil {
		return nil, fmt.Errorf("height of %s: %w", s.ID, err)
	}
	switch s.Layout {
	case LayoutNone, LayoutSimple, LayoutDirectional:
	default:
		return nil, fmt.Errorf("%w: %q for %s", ErrBadLayout, s.Layout, s.ID)
	}
	if s.Layout == LayoutNone && len(s.Children) > 0 {
		return nil, fmt.Errorf("%w: %s has children but no layout", ErrBadLayout, s.ID)
	}
	orientation := s.Orientation
	switch orientation {
	case "":
		orientation = Vertical
	case Vertical, Horizontal:
	default:
		return nil, fmt.Errorf("%w: orientation %q for %s", ErrBadLayout, orientation, s.ID)
	}
	return &Node{
		id:          s.ID,
		sizes:       [2]Size{width, height},
		layout:      s.Layout,
		orientation: orientation,
		scrolls:     s.Scrolls,
		hidden:      s.Hidden,
		content:     [2]int{s.Content.Width, s.Content.Height},
		text:        s.Content.Text,
	}, nil
}
