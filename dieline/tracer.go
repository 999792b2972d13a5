package dieline

import (
	"fmt"
	"math"
)

// ScoreDash 为压痕线虚线样式 {0.1in, 0.05in}，单位 pt。
var ScoreDash = []float64{0.1 * 72, 0.05 * 72}

// GlueFlap 描述一个需要上胶的翼片及其粘合到的面板。
type GlueFlap struct {
	Label string `json:"label"`
	Flap  Rect   `json:"flap"`
	Mate  Rect   `json:"mate"`
	// Angle 为标签的旋转角（弧度），竖直翼片为 π/2。
	Angle float64 `json:"angle"`
}

// Tracer 描出某一盒型的外轮廓、内切线、压痕线，并给出粘合翼位置。
type Tracer interface {
	Style() Style
	Outline(l Layout) *Path
	Cuts(l Layout) *Path
	Scores(l Layout) *Path
	GlueFlaps(l Layout) []GlueFlap
}

// TracerFor 按盒型选择描线策略。
func TracerFor(style Style) (Tracer, error) {
	switch style {
	case StyleDefault:
		return defaultStyle{}, nil
	case StyleDoubleTuck:
		return doubleTuck{}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidStyle, int(style))
}

// defaultStyle：底部方形翼片，背面下方有第二个粘合翼。
type defaultStyle struct{}

// doubleTuck：上下都是圆角插舌，侧翼转角更小。
type doubleTuck struct{}

func (defaultStyle) Style() Style { return StyleDefault }
func (doubleTuck) Style() Style   { return StyleDoubleTuck }

func (defaultStyle) Outline(l Layout) *Path {
	p := outlineTop(l, 0.5)
	f, b, d := l.Front, l.Back, l.Size.Depth
	// 背面底部粘合翼
	p.LineTo(b.Right(), b.Bottom()+d*0.8)
	p.LineTo(b.X, b.Bottom()+d*0.8)
	outlineSides(p, l)
	// 正面底部方形翼片
	p.LineTo(f.Right(), f.Bottom()+d)
	p.LineTo(f.X, f.Bottom()+d)
	p.LineTo(f.X, f.Bottom()+d*0.6)
	return outlineLeft(p, l, 0.5)
}

func (doubleTuck) Outline(l Layout) *Path {
	p := outlineTop(l, 0.3)
	f, b, d := l.Front, l.Back, l.Size.Depth
	p.LineTo(b.X, b.Bottom())
	outlineSides(p, l)
	// 底部圆角插舌，与顶部对称
	r := f.Width * 0.2
	p.Arc(f.Right()-r, f.Bottom()+d, r, 0, math.Pi*0.5, false)
	p.Arc(f.X+r, f.Bottom()+d, r, math.Pi*0.5, math.Pi, false)
	p.LineTo(f.X, f.Bottom()+d*0.6)
	return outlineLeft(p, l, 0.3)
}

// outlineTop 从正面顶部插舌左侧起笔，顺时针经过右侧侧翼、背面缺口和侧边粘合翼，停在背面右下角。
func outlineTop(l Layout, corner float64) *Path {
	f, b, d := l.Front, l.Back, l.Size.Depth
	r := f.Width * 0.2
	rc := d * corner
	p := &Path{}
	p.MoveTo(f.X, f.Y-d*0.6)
	p.LineTo(f.X, f.Y-d)
	p.Arc(f.X+r, f.Y-d, r, math.Pi, math.Pi*1.5, false)
	p.Arc(f.Right()-r, f.Y-d, r, math.Pi*1.5, math.Pi*2, false)
	p.LineTo(f.Right(), f.Y-d*0.6)

	p.Arc(f.Right()+d-rc, f.Y-d*0.6+rc, rc, math.Pi*1.5, math.Pi*2, false)
	p.LineTo(b.X, b.Y)

	notch := b.Width * 0.15
	p.LineTo(b.X+b.Width*0.5-notch, b.Y)
	p.Arc(b.X+b.Width*0.5, b.Y, notch, math.Pi, 0, true)
	p.LineTo(b.Right(), b.Y)

	p.LineTo(b.Right()+d*0.8, b.Y)
	p.LineTo(b.Right()+d*0.8, b.Bottom())
	p.LineTo(b.Right(), b.Bottom())
	return p
}

// outlineSides 沿右侧面底部翼片回到正面右下方。
func outlineSides(p *Path, l Layout) {
	f, b, d := l.Front, l.Back, l.Size.Depth
	p.LineTo(b.X, b.Bottom()+d*0.6)
	p.LineTo(f.Right(), f.Bottom()+d*0.6)
}

// outlineLeft 沿左侧面向上，经圆角回到起点并闭合。
func outlineLeft(p *Path, l Layout, corner float64) *Path {
	f, d := l.Front, l.Size.Depth
	rc := d * corner
	p.LineTo(f.X-d, f.Bottom()+d*0.6)
	p.LineTo(f.X-d, f.Y)
	p.Arc(f.X-d+rc, f.Y-d*0.6+rc, rc, math.Pi, math.Pi*1.5, false)
	p.LineTo(f.X, f.Y-d*0.6)
	return p.Close()
}

func (defaultStyle) Cuts(l Layout) *Path {
	p := cutsCommon(l)
	b, d := l.Back, l.Size.Depth
	// 分开背面底部粘合翼与右侧面底部翼片
	p.MoveTo(b.X, b.Bottom()+d*0.6)
	p.LineTo(b.X, b.Bottom())
	return p
}

func (doubleTuck) Cuts(l Layout) *Path {
	p := cutsCommon(l)
	f, d := l.Front, l.Size.Depth
	p.MoveTo(f.X, f.Bottom()+d)
	p.LineTo(f.X+f.Width*0.1, f.Bottom()+d)
	p.MoveTo(f.X+f.Width*0.9, f.Bottom()+d)
	p.LineTo(f.Right(), f.Bottom()+d)
	return p
}

func cutsCommon(l Layout) *Path {
	f, d := l.Front, l.Size.Depth
	p := &Path{}
	// 顶部插舌两端的短切口
	p.MoveTo(f.X, f.Y-d)
	p.LineTo(f.X+f.Width*0.1, f.Y-d)
	p.MoveTo(f.Right(), f.Y-d)
	p.LineTo(f.X+f.Width*0.9, f.Y-d)
	// 顶盖与侧翼分开
	p.MoveTo(f.X, f.Y)
	p.LineTo(f.X, f.Y-d*0.6)
	p.MoveTo(f.Right(), f.Y)
	p.LineTo(f.Right(), f.Y-d*0.6)
	// 底部翼片与侧翼分开
	p.MoveTo(f.X, f.Bottom())
	p.LineTo(f.X, f.Bottom()+d*0.6)
	p.MoveTo(f.Right(), f.Bottom())
	p.LineTo(f.Right(), f.Bottom()+d*0.6)
	return p
}

func (defaultStyle) Scores(l Layout) *Path {
	return scoresCommon(l, true)
}

func (doubleTuck) Scores(l Layout) *Path {
	p := scoresCommon(l, false)
	f, d := l.Front, l.Size.Depth
	p.MoveTo(f.X+f.Width*0.1, f.Bottom()+d)
	p.LineTo(f.X+f.Width*0.9, f.Bottom()+d)
	return p
}

func scoresCommon(l Layout, backBottom bool) *Path {
	f, b, d := l.Front, l.Back, l.Size.Depth
	p := &Path{}
	p.MoveTo(f.X, f.Bottom())
	p.LineTo(f.Right(), f.Bottom())

	// 左侧面
	p.MoveTo(f.X-d, f.Y)
	p.LineTo(f.X, f.Y)
	p.LineTo(f.X, f.Bottom())
	p.LineTo(f.X-d, f.Bottom())

	// 右侧面
	p.MoveTo(f.Right(), f.Y)
	p.LineTo(f.Right()+d, f.Y)
	p.LineTo(f.Right()+d, f.Bottom())
	p.LineTo(f.Right(), f.Bottom())
	p.LineTo(f.Right(), f.Y)

	// 背面右边与底边
	p.MoveTo(b.Right(), b.Y)
	p.LineTo(b.Right(), b.Bottom())
	if backBottom {
		p.LineTo(b.X, b.Bottom())
	}

	// 顶盖与插舌
	p.MoveTo(f.X, f.Y)
	p.LineTo(f.Right(), f.Y)
	p.MoveTo(f.X+f.Width*0.1, f.Y-d)
	p.LineTo(f.X+f.Width*0.9, f.Y-d)
	return p
}

func (defaultStyle) GlueFlaps(l Layout) []GlueFlap {
	return []GlueFlap{sideFlap(l), bottomFlap(l)}
}

func (doubleTuck) GlueFlaps(l Layout) []GlueFlap {
	return []GlueFlap{sideFlap(l)}
}

// sideFlap：背面右侧粘合翼 A，粘到正面左侧面。
func sideFlap(l Layout) GlueFlap {
	f, b, d := l.Front, l.Back, l.Size.Depth
	return GlueFlap{
		Label: "A",
		Flap:  Rect{X: b.Right(), Y: b.Y, Width: d * 0.8, Height: b.Height},
		Mate:  Rect{X: f.X - d, Y: f.Y, Width: d, Height: f.Height},
		Angle: math.Pi * 0.5,
	}
}

// bottomFlap：背面下方粘合翼 B，粘到正面底部翼片。
func bottomFlap(l Layout) GlueFlap {
	f, b, d := l.Front, l.Back, l.Size.Depth
	return GlueFlap{
		Label: "B",
		Flap:  Rect{X: b.X, Y: b.Bottom(), Width: b.Width, Height: d * 0.8},
		Mate:  Rect{X: f.X, Y: f.Bottom(), Width: f.Width, Height: d},
		Angle: 0,
	}
}
