package component

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/delaneyj/layoutparty/deptree"
)

var ErrBadSize = errors.New("bad size definition")

const emPixels = 16

// Size is a parsed width or height definition such as "", "100%", "50px" or "2em".
type Size struct {
	Definition string
	Mode       deptree.SizeMode
	// Value is a percentage for relative sizes and pixels for fixed ones.
	Value float64
}

func ParseSize(definition string) (Size, error) {
	definition = strings.TrimSpace(definition)
	s := Size{Definition: definition, Mode: deptree.SizeModeOf(definition)}
	if s.Mode == deptree.SizeUndefined {
		return s, nil
	}

	number, scale := definition, 1.0
	switch {
	case strings.HasSuffix(definition, "%"):
		number = strings.TrimSuffix(definition, "%")
	case strings.HasSuffix(definition, "px"):
		number = strings.TrimSuffix(definition, "px")
	case strings.HasSuffix(definition, "em"):
		number = strings.TrimSuffix(definition, "em")
		scale = emPixels
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(number), 64)
	if err != nil || v < 0 {
		return Size{}, fmt.Errorf("%w: %q", ErrBadSize, definition)
	}
	s.Value = v * scale
	return s, nil
}

// Pixels resolves the size against the space available from the parent.
// Undefined sizes resolve to zero.
func (s Size) Pixels(available int) int {
	switch s.Mode {
	case deptree.SizeFixed:
		return int(s.Value + 0.5)
	case deptree.SizeRelative:
		return int(float64(available)*s.Value/100 + 0.5)
	default:
		return 0
	}
}

func (s Size) String() string {
	if s.Mode == deptree.SizeUndefined {
		return "undefined"
	}
	return s.Definition
}
