// Package paper 提供纸张规格表，并按方向与单位换算页面尺寸。
package paper

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ByLCY/tuckbox/units"
)

var (
	// ErrInvalidFormat 表示纸张规格不在规格表中。
	ErrInvalidFormat = errors.New("paper: unknown format")
	// ErrInvalidOrientation 表示纸张方向既不是 portrait 也不是 landscape。
	ErrInvalidOrientation = errors.New("paper: unknown orientation")
)

// Orientation 表示纸张方向。
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// ParseOrientation 解析 portrait/landscape。
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "portrait":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	}
	return Portrait, fmt.Errorf("%w: %q", ErrInvalidOrientation, s)
}

// Paper 描述一张纸的宽高（纵向为基准）及其单位。
type Paper struct {
	Name   string     `json:"name"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Units  units.Unit `json:"units"`
}

// 规格表，尺寸均为纵向、原生单位。
var catalog = map[string]Paper{
	"letter":  {Name: "letter", Width: 8.5, Height: 11, Units: units.Inch},
	"legal":   {Name: "legal", Width: 8.5, Height: 14, Units: units.Inch},
	"tabloid": {Name: "tabloid", Width: 11, Height: 17, Units: units.Inch},
	"a3":      {Name: "a3", Width: 297, Height: 420, Units: units.MM},
	"a4":      {Name: "a4", Width: 210, Height: 297, Units: units.MM},
	"a5":      {Name: "a5", Width: 148, Height: 210, Units: units.MM},
}

// Lookup 返回规格的原生尺寸（纵向）。
func Lookup(format string) (Paper, error) {
	p, ok := catalog[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return Paper{}, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
	return p, nil
}

// Oriented 返回指定方向下的原生尺寸，landscape 时交换宽高。
func Oriented(format string, o Orientation) (Paper, error) {
	p, err := Lookup(format)
	if err != nil {
		return Paper{}, err
	}
	switch o {
	case Portrait:
	case Landscape:
		p.Width, p.Height = p.Height, p.Width
	default:
		return Paper{}, fmt.Errorf("%w: %v", ErrInvalidOrientation, int(o))
	}
	return p, nil
}

// Size 在 Oriented 的基础上把宽高换算为目标单位。
func Size(format string, u units.Unit, o Orientation) (Paper, error) {
	p, err := Oriented(format, o)
	if err != nil {
		return Paper{}, err
	}
	w, err := units.Convert(p.Width, p.Units, u)
	if err != nil {
		return Paper{}, err
	}
	h, err := units.Convert(p.Height, p.Units, u)
	if err != nil {
		return Paper{}, err
	}
	return Paper{Name: p.Name, Width: w, Height: h, Units: u}, nil
}

// Formats 返回按名称排序的规格列表。
func Formats() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Details 返回类似 "letter 11x8.5in" 的描述。
func (p Paper) Details() string {
	return fmt.Sprintf("%s %gx%g%s", p.Name, round(p.Width), round(p.Height), p.Units)
}

func round(v float64) float64 {
	const prec = 1000
	if v < 0 {
		return -round(-v)
	}
	return float64(int64(v*prec+0.5)) / prec
}
