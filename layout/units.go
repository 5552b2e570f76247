package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for lengths and paper sizes.

// Unit represents the original unit of a length value as written by the author.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like factors
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// To converts this length to the target unit. Supported targets: UnitMM, UnitPT.
// Same-unit conversions return the value untouched so author-written
// sizes are not distorted by round-tripping through mm.
func (l Length) To(target Unit) float64 {
	if l.Unit == target {
		return l.Value
	}
	mm := l.Value
	switch l.Unit {
	case UnitCM:
		mm = l.Value * 10
	case UnitIN:
		mm = l.Value * 25.4
	case UnitPT:
		mm = l.Value * PtToMm
	}
	if target == UnitPT {
		return mm * MmToPt
	}
	return mm
}

func (l Length) ToMM() float64 { return l.To(UnitMM) }
func (l Length) ToPT() float64 { return l.To(UnitPT) }

// ParseLength parses a length string like "12pt" or "6mm" preserving its unit.
// Bare numbers keep UnitNone so callers can apply a context-dependent default.
func ParseLength(value string) Length {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return Length{}
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}
	}
	return Length{Value: f, Unit: unit}
}

// paperPresets maps preset names to portrait sizes in mm.
var paperPresets = map[string]Size{
	"A3":     {Width: 297, Height: 420},
	"A4":     {Width: 210, Height: 297},
	"A5":     {Width: 148, Height: 210},
	"LETTER": {Width: 215.9, Height: 279.4},
	"LEGAL":  {Width: 215.9, Height: 355.6},
}

// PaperPreset returns the page size for a preset name (case-insensitive),
// optionally flipped to landscape.
func PaperPreset(name string, landscape bool) (Size, error) {
	size, ok := paperPresets[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Size{}, fmt.Errorf("暂不支持的纸张尺寸：%s", name)
	}
	if landscape {
		size.Width, size.Height = size.Height, size.Width
	}
	return size, nil
}
