// Package surface 定义生成器使用的二维绘图接口，语义与 HTML canvas 2D 上下文一致：
// 变换栈、当前路径、描边/填充/裁剪、文本测量与绘制、位图绘制。
//
// 坐标系以左上角为原点，y 轴向下，角度为弧度并按屏幕上的顺时针方向增长。
package surface

import (
	"errors"
	"image"
	"image/color"

	"github.com/tdewolff/canvas"
)

// ErrSurface 表示底层绘图后端失败，例如无法分配画布或字体不可用。
var ErrSurface = errors.New("surface: drawing backend failed")

// Align 为水平文本对齐方式。
type Align int

const (
	AlignStart Align = iota
	AlignLeft
	AlignCenter
	AlignEnd
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	case AlignRight:
		return "right"
	default:
		return "start"
	}
}

// AlignFraction 返回对齐方式对应的水平偏移比例：center→0.5，end/right→1，其余→0。
func AlignFraction(a Align) float64 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignEnd, AlignRight:
		return 1
	default:
		return 0
	}
}

// Baseline 为文本基线位置。
type Baseline int

const (
	BaselineAlphabetic Baseline = iota
	BaselineTop
	BaselineMiddle
	BaselineBottom
)

// FontSpec 描述 SetFont 使用的字体：字族、字号（pt）与字重（100-900）。
type FontSpec struct {
	Family string
	Size   float64
	Weight int
}

// TextMetrics 为 MeasureText 的结果，Ascent/Descent 为零表示后端无法提供。
type TextMetrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Surface 是生成器需要的全部绘图能力。
//
// 路径不属于 Save/Restore 保存的状态；其余属性（变换、颜色、线宽、虚线、字体、对齐、裁剪）都随
// Save/Restore 入栈出栈。绘制失败不会中断调用，后端记录首个错误，由 Err 返回。
type Surface interface {
	Save()
	Restore()

	Translate(x, y float64)
	Rotate(angle float64)
	Scale(sx, sy float64)
	Transform() canvas.Matrix
	SetTransform(m canvas.Matrix)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, r, start, end float64, ccw bool)
	ClosePath()
	Stroke()
	Fill()
	Clip()

	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)
	SetLineDash(dashes []float64)

	SetFont(f FontSpec)
	SetTextAlign(a Align)
	TextAlign() Align
	SetTextBaseline(b Baseline)
	MeasureText(text string) TextMetrics
	FillText(text string, x, y float64)
	StrokeText(text string, x, y float64)

	DrawImage(img image.Image, x, y, w, h float64)

	Err() error
}

// Transparent 用于关闭描边。
var Transparent = color.NRGBA{R: 1, G: 1, B: 1, A: 0}
