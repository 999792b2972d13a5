package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// This file defines length units and conversions between them. Points are the common base.

// ErrInvalidUnit is returned for unit symbols outside the supported set.
var ErrInvalidUnit = errors.New("units: unknown unit")

// Unit identifies the unit a length value is expressed in.
type Unit int

const (
	Invalid Unit = iota
	Inch         // inches
	CM           // centimeters
	MM           // millimeters
	Point        // PostScript points, 1/72 in
	Pixel        // CSS pixels, 1/96 in
	Dot          // printer dots, 1/300 in
)

// Conversion constants between pt and mm.
const (
	MmToPt = 72.0 / 25.4
	PtToMm = 1.0 / MmToPt
)

// pointsPer holds how many points one unit spans. fromPoints divides by the same scalar,
// so the forward and inverse conversions are exact inverses.
var pointsPer = map[Unit]float64{
	Inch:  72.0,
	CM:    72.0 / 2.54,
	MM:    MmToPt,
	Point: 1.0,
	Pixel: 72.0 / 96.0,
	Dot:   72.0 / 300.0,
}

// String returns the short symbol of a Unit value.
func (u Unit) String() string {
	switch u {
	case Inch:
		return "in"
	case CM:
		return "cm"
	case MM:
		return "mm"
	case Point:
		return "pt"
	case Pixel:
		return "px"
	case Dot:
		return "dots"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	_, ok := pointsPer[u]
	return ok
}

// Parse maps a unit symbol to a Unit.
func Parse(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "inch", "inches":
		return Inch, nil
	case "cm":
		return CM, nil
	case "mm":
		return MM, nil
	case "pt", "point", "points":
		return Point, nil
	case "px", "pixel", "pixels":
		return Pixel, nil
	case "dots", "dot":
		return Dot, nil
	}
	return Invalid, fmt.Errorf("%w: %q", ErrInvalidUnit, s)
}

// ToPoints converts v expressed in u into points.
func ToPoints(v float64, u Unit) (float64, error) {
	f, ok := pointsPer[u]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrInvalidUnit, u)
	}
	return v * f, nil
}

// FromPoints converts v points into u.
func FromPoints(v float64, u Unit) (float64, error) {
	f, ok := pointsPer[u]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrInvalidUnit, u)
	}
	return v / f, nil
}

// Convert converts v from one unit to another, routing through points.
func Convert(v float64, from, to Unit) (float64, error) {
	if !from.Valid() {
		return 0, fmt.Errorf("%w: from %v", ErrInvalidUnit, from)
	}
	if !to.Valid() {
		return 0, fmt.Errorf("%w: to %v", ErrInvalidUnit, to)
	}
	if from == to {
		return v, nil
	}
	pt, _ := ToPoints(v, from)
	return FromPoints(pt, to)
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// To converts this length to the target unit.
func (l Length) To(target Unit) (float64, error) { return Convert(l.Value, l.Unit, target) }

// Points converts this length to points.
func (l Length) Points() (float64, error) { return ToPoints(l.Value, l.Unit) }

func (l Length) String() string { return fmt.Sprintf("%g%s", l.Value, l.Unit) }

// ParseLength parses "2.25in", "18pt" or a bare number. Bare numbers take def.
func ParseLength(s string, def Unit) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return Length{}, fmt.Errorf("%w: empty length", ErrInvalidUnit)
	}
	unit := def
	num := v
	i := len(v)
	for i > 0 && (v[i-1] >= 'a' && v[i-1] <= 'z') {
		i--
	}
	if i < len(v) {
		u, err := Parse(v[i:])
		if err != nil {
			return Length{}, err
		}
		unit, num = u, strings.TrimSpace(v[:i])
	}
	if !unit.Valid() {
		return Length{}, fmt.Errorf("%w: %q has no unit", ErrInvalidUnit, s)
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q: %w", s, err)
	}
	return Length{Value: f, Unit: unit}, nil
}
