package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// SizeMode selects how a node is sized along one axis.
type SizeMode uint8

const (
	SizeHug   SizeMode = iota // Size to content
	SizeFixed                 // Literal pixels, children ignored
	SizeFill                  // Percentage of the parent's content extent
)

// Sizing is a per-axis sizing constraint.
// For SizeFixed, Value is pixels. For SizeFill, Value is a percentage on a
// 0-100 scale; zero means 100.
type Sizing struct {
	Mode  SizeMode
	Value float64
}

// Hug sizes to content.
func Hug() Sizing { return Sizing{Mode: SizeHug} }

// Fixed sizes to px pixels.
func Fixed(px float64) Sizing { return Sizing{Mode: SizeFixed, Value: px} }

// Fill takes 100% of the parent's content extent.
func Fill() Sizing { return Sizing{Mode: SizeFill, Value: 100} }

// FillPercent takes p percent (0-100] of the parent's content extent.
// A non-positive p means 100.
func FillPercent(p float64) Sizing { return Sizing{Mode: SizeFill, Value: p} }

func (s Sizing) percent() float64 {
	if s.Value <= 0 {
		return 100
	}
	return s.Value
}

// String returns the textual form accepted by ParseSizing.
func (s Sizing) String() string {
	switch s.Mode {
	case SizeFixed:
		return strconv.FormatFloat(s.Value, 'f', -1, 64)
	case SizeFill:
		if p := s.percent(); p != 100 {
			return strconv.FormatFloat(p, 'f', -1, 64) + "%"
		}
		return "fill"
	default:
		return "hug"
	}
}

// ParseSizing parses "hug", "fill", "50%", "120" or "120px".
// The empty string parses as Hug. Percentages must be positive.
func ParseSizing(s string) (Sizing, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "hug", "auto":
		return Hug(), nil
	case "fill":
		return Fill(), nil
	}
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v <= 0 {
			return Sizing{}, fmt.Errorf("layout: invalid percentage %q", s)
		}
		return FillPercent(v), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil || v < 0 {
		return Sizing{}, fmt.Errorf("layout: invalid size %q", s)
	}
	return Fixed(v), nil
}
