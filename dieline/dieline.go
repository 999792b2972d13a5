// Package dieline 计算纸盒展开图的面板位置，并按盒型描出外轮廓、内切线与压痕线。
//
// 所有长度单位由调用方决定（生成器使用 pt），本包只做几何计算，不关心单位。
package dieline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFace 表示未知的面名称。
	ErrInvalidFace = errors.New("dieline: invalid face")
	// ErrInvalidStyle 表示未知的盒型。
	ErrInvalidStyle = errors.New("dieline: invalid style")
)

// Size 是成品盒的宽、高、深。
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Expand 每个方向加上两倍纸厚。
func (s Size) Expand(thickness float64) Size {
	return Size{
		Width:  s.Width + 2*thickness,
		Height: s.Height + 2*thickness,
		Depth:  s.Depth + 2*thickness,
	}
}

// Rect 是左上角 + 宽高的矩形。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center 返回矩形中心点。
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Face 表示纸盒的六个面。
type Face int

const (
	Front Face = iota
	Back
	Top
	Bottom
	Left
	Right
)

var faceNames = [...]string{"front", "back", "top", "bottom", "left", "right"}

// Faces 按固定顺序返回六个面。
func Faces() []Face { return []Face{Front, Back, Top, Bottom, Left, Right} }

func (f Face) String() string {
	if f < Front || f > Right {
		return fmt.Sprintf("face(%d)", int(f))
	}
	return faceNames[f]
}

// Valid 判断是否为六个面之一。
func (f Face) Valid() bool { return f >= Front && f <= Right }

// MarshalText 让 Face 可以作为 JSON 键。
func (f Face) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFace, int(f))
	}
	return []byte(f.String()), nil
}

func (f *Face) UnmarshalText(b []byte) error {
	v, err := ParseFace(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Opposite 返回对面：front↔back，top↔bottom，left↔right。
func (f Face) Opposite() Face {
	switch f {
	case Front:
		return Back
	case Back:
		return Front
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	}
	return f
}

// ParseFace 解析面名称（不区分大小写）。
func ParseFace(s string) (Face, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range faceNames {
		if n == name {
			return Face(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFace, s)
}

// Style 为盒型。
type Style int

const (
	// StyleDefault 底部为方形插舌并在背面下方带粘合翼。
	StyleDefault Style = iota
	// StyleDoubleTuck 上下都是圆角插舌，只有侧边一个粘合翼。
	StyleDoubleTuck
)

func (s Style) String() string {
	switch s {
	case StyleDefault:
		return "default"
	case StyleDoubleTuck:
		return "double-tuck"
	}
	return fmt.Sprintf("style(%d)", int(s))
}

func (s Style) MarshalText() ([]byte, error) {
	if s != StyleDefault && s != StyleDoubleTuck {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStyle, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Style) UnmarshalText(b []byte) error {
	v, err := ParseStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStyle 解析盒型，空字符串视为 default。
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return StyleDefault, nil
	case "double-tuck", "doubletuck", "double_tuck":
		return StyleDoubleTuck, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStyle, s)
}

// Layout 是一次生成使用的展开图面板位置，创建后不再修改。
type Layout struct {
	// Size 为加上纸厚后的有效尺寸。
	Size      Size    `json:"size"`
	Thickness float64 `json:"thickness"`
	Margin    float64 `json:"margin"`
	Front     Rect    `json:"front"`
	Back      Rect    `json:"back"`
}

// NewLayout 计算正面与背面的位置。正面上方预留顶盖与插舌（depth + 0.2*width），
// 左侧预留一个 depth 宽的侧面；背面紧跟在正面右侧一个 depth 之后。
func NewLayout(size Size, thickness, margin float64) Layout {
	eff := size.Expand(thickness)
	front := Rect{
		X:      eff.Depth + margin,
		Y:      eff.Depth + eff.Width*0.2 + margin,
		Width:  eff.Width,
		Height: eff.Height,
	}
	back := Rect{
		X:      front.X + front.Width + eff.Depth,
		Y:      front.Y,
		Width:  front.Width,
		Height: front.Height,
	}
	return Layout{Size: eff, Thickness: thickness, Margin: margin, Front: front, Back: back}
}

// Depth 返回有效深度。
func (l Layout) Depth() float64 { return l.Size.Depth }

// FaceDimensions 返回某个面的可印刷尺寸：有效尺寸每个方向减去两倍安全边距。
// front/back 为 width×height，left/right 为 height×depth，top/bottom 为 width×depth。
func FaceDimensions(face Face, size Size, thickness, safe float64) (w, h float64, err error) {
	eff := size.Expand(thickness)
	width := eff.Width - 2*safe
	height := eff.Height - 2*safe
	depth := eff.Depth - 2*safe
	switch face {
	case Front, Back:
		return width, height, nil
	case Left, Right:
		return height, depth, nil
	case Top, Bottom:
		return width, depth, nil
	}
	return 0, 0, fmt.Errorf("%w: %d", ErrInvalidFace, int(face))
}
