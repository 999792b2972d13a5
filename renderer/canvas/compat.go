package canvasrenderer

import (
	"image"
	"math"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/tuckbox/surface"
)

// Backing 是 Compat 包装的底层 PDF 绘图面。
type Backing interface {
	surface.Surface
	DrawImageRotated(img image.Image, x, y, w, h, angle float64)
	ClipOps() ClipOps
	SetClipOps(ops ClipOps)
}

// Compat 修正 PDF 绘图面与画布语义之间的差异，对外表现得与浏览器画布一致。
type Compat struct {
	Backing
}

var _ surface.Surface = (*Compat)(nil)

// NewCompat 包装 b。
func NewCompat(b Backing) *Compat {
	return &Compat{Backing: b}
}

// FillText 按当前对齐方式自行计算起点，并抵消底层文字的 72:96 横向映射。
func (c *Compat) FillText(text string, x, y float64) {
	c.text(text, x, y, c.Backing.FillText)
}

func (c *Compat) StrokeText(text string, x, y float64) {
	c.text(text, x, y, c.Backing.StrokeText)
}

func (c *Compat) text(text string, x, y float64, draw func(string, float64, float64)) {
	w := c.MeasureText(text).Width
	left := x - w*surface.AlignFraction(c.TextAlign())

	c.Save()
	defer c.Restore()
	c.Scale(pxPerPt, 1)
	c.SetTextAlign(surface.AlignLeft)
	draw(text, left/pxPerPt, y)
}

// DrawImage 把变换中的旋转交给 DrawImageRotated，并补偿其以左下角为中心的旋转。
func (c *Compat) DrawImage(img image.Image, x, y, w, h float64) {
	m := c.Transform()
	tlx, tly := surface.Apply(m, x, y)
	d := surface.Decompose(m)
	w2 := w * math.Abs(d.ScaleX)
	h2 := h * d.ScaleY
	sin, cos := math.Sincos(d.Rotation)

	c.Save()
	defer c.Restore()
	c.SetTransform(canvas.Identity)
	c.DrawImageRotated(img, tlx-h2*sin, tly-h2*(1-cos), w2, h2, d.Rotation)
}

// Clip 让当前路径的所有子路径作为一个裁剪区域提交。
func (c *Compat) Clip() {
	real := c.ClipOps()
	func() {
		noop := func() {}
		c.SetClipOps(ClipOps{Clip: noop, Discard: noop})
		defer c.SetClipOps(real)
		c.Backing.Clip()
	}()
	real.Clip()
	real.Discard()
}

// Arc 在镜像变换下翻转角度与方向。
func (c *Compat) Arc(x, y, r, start, end float64, ccw bool) {
	if d := surface.Decompose(c.Transform()); d.ScaleX < 0 {
		start = surface.NormalizeAngle(math.Pi - start)
		end = surface.NormalizeAngle(math.Pi - end)
		ccw = !ccw
	}
	c.Backing.Arc(x, y, r, start, end, ccw)
}
