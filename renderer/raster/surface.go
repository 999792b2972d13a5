package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/tdewolff/canvas"
	"golang.org/x/image/font"

	"github.com/ByLCY/tuckbox/surface"
)

type state struct {
	matrix    canvas.Matrix
	fill      color.Color
	stroke    color.Color
	lineWidth float64
	dash      []float64
	font      surface.FontSpec
	align     surface.Align
	baseline  surface.Baseline
	mask      *image.Alpha
}

// Surface 是基于 gg 的位图绘图面。坐标单位为 pt，每 pt 对应 scale 个像素。
// 路径在设备空间中构建，文字与图片通过同步 gg 的变换矩阵绘制；裁剪由自身维护的蒙版实现。
type Surface struct {
	dc    *gg.Context
	scale float64
	fonts *FontCache

	st    state
	stack []state
	path  [][]canvas.Point
	err   error
}

var _ surface.Surface = (*Surface)(nil)

// NewSurface 创建 width×height（pt）的白底位图绘图面。
func NewSurface(width, height, scale float64, fonts *FontCache) *Surface {
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(int(math.Ceil(width*scale)), int(math.Ceil(height*scale)))
	dc.SetColor(color.White)
	dc.Clear()
	return &Surface{
		dc:    dc,
		scale: scale,
		fonts: fonts,
		st: state{
			matrix:    canvas.Identity,
			fill:      color.Black,
			stroke:    color.Black,
			lineWidth: 1,
			font:      surface.FontSpec{Family: "sans-serif", Size: 10, Weight: 400},
		},
	}
}

// Image 返回绘制结果。
func (s *Surface) Image() image.Image { return s.dc.Image() }

func (s *Surface) Err() error { return s.err }

func (s *Surface) fail(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

func (s *Surface) Save() {
	saved := s.st
	saved.dash = append([]float64(nil), s.st.dash...)
	s.stack = append(s.stack, saved)
}

func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.st = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.applyMask()
}

func (s *Surface) applyMask() {
	if s.st.mask == nil {
		s.dc.ResetClip()
		return
	}
	if err := s.dc.SetMask(s.st.mask); err != nil {
		s.fail(err)
	}
}

func (s *Surface) Translate(x, y float64)       { s.st.matrix = s.st.matrix.Translate(x, y) }
func (s *Surface) Rotate(angle float64)         { s.st.matrix = s.st.matrix.Rotate(surface.Degrees(angle)) }
func (s *Surface) Scale(sx, sy float64)         { s.st.matrix = s.st.matrix.Scale(sx, sy) }
func (s *Surface) Transform() canvas.Matrix     { return s.st.matrix }
func (s *Surface) SetTransform(m canvas.Matrix) { s.st.matrix = m }
func (s *Surface) SetFillColor(c color.Color)   { s.st.fill = c }
func (s *Surface) SetStrokeColor(c color.Color) { s.st.stroke = c }
func (s *Surface) SetLineWidth(w float64)       { s.st.lineWidth = w }
func (s *Surface) SetFont(f surface.FontSpec)   { s.st.font = f }
func (s *Surface) SetTextAlign(a surface.Align) { s.st.align = a }
func (s *Surface) TextAlign() surface.Align     { return s.st.align }

func (s *Surface) SetTextBaseline(b surface.Baseline) { s.st.baseline = b }

func (s *Surface) SetLineDash(d []float64) {
	s.st.dash = append([]float64(nil), d...)
}

// device 返回用户坐标到像素坐标的变换。
func (s *Surface) device() canvas.Matrix {
	return canvas.Identity.Scale(s.scale, s.scale).Mul(s.st.matrix)
}

func (s *Surface) BeginPath() { s.path = nil }

func (s *Surface) MoveTo(x, y float64) {
	px, py := surface.Apply(s.device(), x, y)
	s.path = append(s.path, []canvas.Point{{X: px, Y: py}})
}

func (s *Surface) LineTo(x, y float64) {
	px, py := surface.Apply(s.device(), x, y)
	s.lineToDevice(px, py)
}

func (s *Surface) lineToDevice(x, y float64) {
	if len(s.path) == 0 {
		s.path = append(s.path, nil)
	}
	last := len(s.path) - 1
	s.path[last] = append(s.path[last], canvas.Point{X: x, Y: y})
}

func (s *Surface) Arc(x, y, r, start, end float64, ccw bool) {
	m := s.device()
	for _, p := range surface.ArcPoints(x, y, r, start, end, ccw, 0.01) {
		s.lineToDevice(surface.Apply(m, p.X, p.Y))
	}
}

func (s *Surface) ClosePath() {
	if len(s.path) == 0 || len(s.path[len(s.path)-1]) == 0 {
		return
	}
	last := s.path[len(s.path)-1]
	last = append(last, last[0])
	s.path[len(s.path)-1] = last
	s.path = append(s.path, []canvas.Point{last[0]})
}

func replay(dc *gg.Context, path [][]canvas.Point) {
	dc.ClearPath()
	for _, sp := range path {
		if len(sp) < 2 {
			continue
		}
		dc.MoveTo(sp[0].X, sp[0].Y)
		for _, p := range sp[1:] {
			dc.LineTo(p.X, p.Y)
		}
	}
}

func (s *Surface) magnitude() float64 {
	return s.scale * math.Sqrt(math.Abs(s.st.matrix.Det()))
}

func (s *Surface) Stroke() {
	k := s.magnitude()
	dashes := make([]float64, len(s.st.dash))
	for i, d := range s.st.dash {
		dashes[i] = d * k
	}
	s.dc.Identity()
	replay(s.dc, s.path)
	s.dc.SetColor(s.st.stroke)
	s.dc.SetLineWidth(s.st.lineWidth * k)
	s.dc.SetDash(dashes...)
	s.dc.Stroke()
	s.dc.SetDash()
}

func (s *Surface) Fill() {
	s.dc.Identity()
	replay(s.dc, closed(s.path))
	s.dc.SetColor(s.st.fill)
	s.dc.SetFillRule(gg.FillRuleWinding)
	s.dc.Fill()
}

func closed(path [][]canvas.Point) [][]canvas.Point {
	out := make([][]canvas.Point, 0, len(path))
	for _, sp := range path {
		if len(sp) > 1 && sp[0] != sp[len(sp)-1] {
			sp = append(append([]canvas.Point(nil), sp...), sp[0])
		}
		out = append(out, sp)
	}
	return out
}

// Clip 把当前路径光栅化为蒙版，与已有裁剪取交集。
func (s *Surface) Clip() {
	w, h := s.dc.Width(), s.dc.Height()
	region := gg.NewContext(w, h)
	replay(region, closed(s.path))
	region.SetColor(color.White)
	region.Fill()
	mask := region.AsMask()
	if s.st.mask != nil {
		for i, a := range s.st.mask.Pix {
			if a < mask.Pix[i] {
				mask.Pix[i] = a
			}
		}
	}
	s.st.mask = mask
	s.applyMask()
}

func (s *Surface) face() font.Face {
	face, err := s.fonts.Face(s.st.font)
	if err != nil {
		s.fail(err)
		return nil
	}
	return face
}

func (s *Surface) MeasureText(text string) surface.TextMetrics {
	face := s.face()
	if face == nil {
		return surface.TextMetrics{}
	}
	m := face.Metrics()
	return surface.TextMetrics{
		Width:   float64(font.MeasureString(face, text)) / 64,
		Ascent:  float64(m.Ascent) / 64,
		Descent: float64(m.Descent) / 64,
	}
}

// setMatrix 把仿射变换 m 分解为 平移·旋转·剪切·缩放 写入 gg。
func (s *Surface) setMatrix(m canvas.Matrix) bool {
	s.dc.Identity()
	a, c, e := m[0][0], m[0][1], m[0][2]
	b, d, f := m[1][0], m[1][1], m[1][2]
	sy := math.Hypot(c, d)
	det := a*d - b*c
	if sy == 0 || det == 0 {
		return false
	}
	sx := det / sy
	q := (a*c + b*d) / sy
	s.dc.Translate(e, f)
	s.dc.Rotate(math.Atan2(-c, d))
	s.dc.Shear(0, q/sx)
	s.dc.Scale(sx, sy)
	return true
}

func (s *Surface) drawText(text string, x, y float64, col color.Color) {
	face := s.face()
	if face == nil || text == "" {
		return
	}
	tm := s.MeasureText(text)
	left := x - tm.Width*surface.AlignFraction(s.st.align)
	switch s.st.baseline {
	case surface.BaselineTop:
		y += tm.Ascent
	case surface.BaselineMiddle:
		y += (tm.Ascent - tm.Descent) / 2
	case surface.BaselineBottom:
		y -= tm.Descent
	}
	if !s.setMatrix(s.device()) {
		return
	}
	defer s.dc.Identity()
	s.dc.SetFontFace(face)
	s.dc.SetColor(col)
	s.dc.DrawString(text, left, y)
}

func (s *Surface) FillText(text string, x, y float64) {
	s.drawText(text, x, y, s.st.fill)
}

// StrokeText 在八个方向偏移半个线宽绘制，近似文字描边。gg 不提供字形轮廓，斜向会有细小缺口。
func (s *Surface) StrokeText(text string, x, y float64) {
	if _, _, _, a := s.st.stroke.RGBA(); a == 0 {
		return
	}
	r := s.st.lineWidth / 2
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		s.drawText(text, x+r*math.Cos(a), y+r*math.Sin(a), s.st.stroke)
	}
}

// DrawImage 先用 imaging 把图片缩放到目标像素尺寸，再按当前变换绘制。
func (s *Surface) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	d := surface.Decompose(s.device())
	pw := int(math.Max(1, math.Round(w*math.Abs(d.ScaleX))))
	ph := int(math.Max(1, math.Round(h*math.Abs(d.ScaleY))))
	fitted := imaging.Resize(img, pw, ph, imaging.Lanczos)
	m := s.device().Translate(x, y).Scale(w/float64(pw), h/float64(ph))
	if !s.setMatrix(m) {
		return
	}
	defer s.dc.Identity()
	s.dc.DrawImage(fitted, 0, 0)
}
