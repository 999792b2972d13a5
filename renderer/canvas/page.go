package canvasrenderer

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
	"github.com/tdewolff/canvas"

	"github.com/ByLCY/tuckbox/surface"
	"github.com/ByLCY/tuckbox/units"
)

// pxPerPt 是 PDF 页面文字映射使用的设备像素与点的比例。
const pxPerPt = 96.0 / 72.0

// ClipOps 是 Page 提交裁剪区域的一对操作：Clip 把暂存区域提交为裁剪，Discard 丢弃暂存区域。
type ClipOps struct {
	Clip    func()
	Discard func()
}

type subpath struct {
	pts    []canvas.Point
	closed bool
}

type pageState struct {
	matrix    canvas.Matrix
	fill      color.Color
	stroke    color.Color
	lineWidth float64
	dash      []float64
	font      surface.FontSpec
	align     surface.Align
	baseline  surface.Baseline
	clips     [][]subpath
}

// Page 是直接建立在 tdewolff/canvas 上的 PDF 页面绘图面，保留 PDF 原语本身的行为：
//   - 文字按 72:96 横向映射，且忽略对齐方式；
//   - DrawImage 只使用变换的平移与缩放，忽略旋转；DrawImageRotated 以图片左下角为旋转中心；
//   - Clip 通过可替换的 ClipOps 逐个子路径提交裁剪区域；
//   - Arc 的方向不随镜像变换翻转。
//
// 这些差异由 Compat 统一修正。页面坐标单位为 pt，原点在左上角。
type Page struct {
	c      *canvas.Canvas
	ctx    *canvas.Context
	view   canvas.Matrix
	width  float64
	height float64
	fonts  *FontCache

	st     pageState
	stack  []pageState
	path   []subpath
	staged []subpath
	ops    ClipOps
	err    error
}

var _ surface.Surface = (*Page)(nil)

// NewPage 在画布 c 上创建 width×height（pt）的页面，c 的尺寸应为对应的毫米值。
func NewPage(c *canvas.Canvas, width, height float64, fonts *FontCache) *Page {
	p := &Page{
		c:      c,
		ctx:    canvas.NewContext(c),
		view:   canvas.Identity.Translate(0, height*units.PtToMm).Scale(units.PtToMm, -units.PtToMm),
		width:  width,
		height: height,
		fonts:  fonts,
		st: pageState{
			matrix:    canvas.Identity,
			fill:      color.Black,
			stroke:    color.Black,
			lineWidth: 1,
			font:      surface.FontSpec{Family: "sans-serif", Size: 10, Weight: 400},
		},
	}
	p.ops = ClipOps{Clip: p.commitClip, Discard: p.discardClip}
	return p
}

func (p *Page) fail(err error) {
	if p.err == nil && err != nil {
		p.err = err
	}
}

func (p *Page) Err() error { return p.err }

// ClipOps 返回当前的裁剪提交操作。
func (p *Page) ClipOps() ClipOps { return p.ops }

// SetClipOps 替换裁剪提交操作。
func (p *Page) SetClipOps(ops ClipOps) { p.ops = ops }

// ClipDepth 返回当前状态中已提交的裁剪区域数量。
func (p *Page) ClipDepth() int { return len(p.st.clips) }

func (p *Page) Save() {
	saved := p.st
	saved.dash = append([]float64(nil), p.st.dash...)
	saved.clips = append([][]subpath(nil), p.st.clips...)
	p.stack = append(p.stack, saved)
}

func (p *Page) Restore() {
	if len(p.stack) == 0 {
		return
	}
	p.st = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *Page) Translate(x, y float64)             { p.st.matrix = p.st.matrix.Translate(x, y) }
func (p *Page) Rotate(angle float64)               { p.st.matrix = p.st.matrix.Rotate(surface.Degrees(angle)) }
func (p *Page) Scale(sx, sy float64)               { p.st.matrix = p.st.matrix.Scale(sx, sy) }
func (p *Page) Transform() canvas.Matrix           { return p.st.matrix }
func (p *Page) SetTransform(m canvas.Matrix)       { p.st.matrix = m }
func (p *Page) SetFillColor(c color.Color)         { p.st.fill = c }
func (p *Page) SetStrokeColor(c color.Color)       { p.st.stroke = c }
func (p *Page) SetLineWidth(w float64)             { p.st.lineWidth = w }
func (p *Page) SetFont(f surface.FontSpec)         { p.st.font = f }
func (p *Page) SetTextAlign(a surface.Align)       { p.st.align = a }
func (p *Page) TextAlign() surface.Align           { return p.st.align }
func (p *Page) SetTextBaseline(b surface.Baseline) { p.st.baseline = b }

func (p *Page) SetLineDash(d []float64) {
	p.st.dash = append([]float64(nil), d...)
}

func (p *Page) BeginPath() { p.path = nil }

func (p *Page) MoveTo(x, y float64) {
	px, py := surface.Apply(p.st.matrix, x, y)
	p.path = append(p.path, subpath{pts: []canvas.Point{{X: px, Y: py}}})
}

func (p *Page) LineTo(x, y float64) {
	p.lineToPage(surface.Apply(p.st.matrix, x, y))
}

func (p *Page) lineToPage(x, y float64) {
	if len(p.path) == 0 {
		p.path = append(p.path, subpath{})
	}
	last := &p.path[len(p.path)-1]
	last.pts = append(last.pts, canvas.Point{X: x, Y: y})
}

// Arc 在页面坐标中展平圆弧：圆心经过完整变换，角度只加上变换的旋转角，方向保持调用方给定的值。
func (p *Page) Arc(x, y, r, start, end float64, ccw bool) {
	d := surface.Decompose(p.st.matrix)
	cx, cy := surface.Apply(p.st.matrix, x, y)
	radius := r * d.ScaleY
	for _, pt := range surface.ArcPoints(cx, cy, radius, start+d.Rotation, end+d.Rotation, ccw, 0.05) {
		p.lineToPage(pt.X, pt.Y)
	}
}

func (p *Page) ClosePath() {
	if len(p.path) == 0 {
		return
	}
	last := &p.path[len(p.path)-1]
	if len(last.pts) == 0 {
		return
	}
	last.closed = true
	p.path = append(p.path, subpath{pts: []canvas.Point{last.pts[0]}})
}

// canvasPath 把页面坐标的子路径转换为画布坐标（mm，y 轴向上）。
func (p *Page) canvasPath(subs []subpath, closeAll bool) *canvas.Path {
	out := &canvas.Path{}
	for _, sp := range subs {
		if len(sp.pts) < 2 {
			continue
		}
		for i, pt := range sp.pts {
			q := p.view.Dot(pt)
			if i == 0 {
				out.MoveTo(q.X, q.Y)
			} else {
				out.LineTo(q.X, q.Y)
			}
		}
		if sp.closed || closeAll {
			out.Close()
		}
	}
	return out
}

// userScale 为当前变换下线宽的缩放（pt→mm 一并计入）。
func (p *Page) userScale() float64 {
	return math.Sqrt(math.Abs(p.st.matrix.Det())) * units.PtToMm
}

func (p *Page) Stroke() {
	path := p.canvasPath(p.path, false)
	if path.Empty() {
		return
	}
	scale := p.userScale()
	dashes := make([]float64, len(p.st.dash))
	for i, d := range p.st.dash {
		dashes[i] = d * scale
	}
	p.ctx.Push()
	defer p.ctx.Pop()
	p.ctx.SetFillColor(canvas.Transparent)
	p.ctx.SetStrokeColor(p.st.stroke)
	p.ctx.SetStrokeWidth(p.st.lineWidth * scale)
	p.ctx.SetDashes(0, dashes...)
	p.ctx.DrawPath(0, 0, path)
}

// Fill 按非零环绕规则填充，并与当前所有裁剪区域求交。
func (p *Page) Fill() {
	path := p.canvasPath(p.path, true)
	for _, region := range p.st.clips {
		path = path.And(p.canvasPath(region, true))
	}
	if path.Empty() {
		return
	}
	p.ctx.Push()
	defer p.ctx.Pop()
	p.ctx.SetStrokeColor(canvas.Transparent)
	p.ctx.SetFillColor(p.st.fill)
	p.ctx.DrawPath(0, 0, path)
}

// Clip 把当前路径的每个子路径分别暂存并提交，最后再提交一次。
func (p *Page) Clip() {
	for _, sp := range p.path {
		if len(sp.pts) < 2 {
			continue
		}
		p.staged = append(p.staged, sp)
		p.ops.Clip()
		p.ops.Discard()
	}
	p.ops.Clip()
	p.ops.Discard()
}

func (p *Page) commitClip() {
	if len(p.staged) == 0 {
		return
	}
	region := make([]subpath, len(p.staged))
	copy(region, p.staged)
	p.st.clips = append(p.st.clips, region)
	p.staged = nil
}

func (p *Page) discardClip() { p.staged = nil }

func (p *Page) face(col color.Color) *canvas.FontFace {
	face, err := p.fonts.Face(p.st.font, col)
	if err != nil {
		p.fail(err)
		return nil
	}
	return face
}

func (p *Page) MeasureText(text string) surface.TextMetrics {
	face := p.face(color.Black)
	if face == nil {
		return surface.TextMetrics{}
	}
	m := face.Metrics()
	return surface.TextMetrics{
		Width:   face.TextWidth(text),
		Ascent:  math.Abs(m.Ascent),
		Descent: math.Abs(m.Descent),
	}
}

func (p *Page) baselineShift(face *canvas.FontFace) float64 {
	m := face.Metrics()
	asc, desc := math.Abs(m.Ascent), math.Abs(m.Descent)
	switch p.st.baseline {
	case surface.BaselineTop:
		return asc
	case surface.BaselineMiddle:
		return (asc - desc) / 2
	case surface.BaselineBottom:
		return -desc
	}
	return 0
}

// textMatrix 为文字在画布上的变换：总是左对齐，字形横向按 72/96 压缩。
func (p *Page) textMatrix(face *canvas.FontFace, x, y float64) canvas.Matrix {
	return p.view.Mul(p.st.matrix).Translate(x, y+p.baselineShift(face)).Scale(1/pxPerPt, -1)
}

func (p *Page) FillText(text string, x, y float64) {
	face := p.face(p.st.fill)
	if face == nil || text == "" {
		return
	}
	p.c.RenderText(canvas.NewTextLine(face, text, canvas.Left), p.textMatrix(face, x, y))
}

// StrokeText 取字形轮廓，以与 FillText 相同的变换描边一次。
func (p *Page) StrokeText(text string, x, y float64) {
	if _, _, _, a := p.st.stroke.RGBA(); a == 0 || text == "" {
		return
	}
	face := p.face(p.st.stroke)
	if face == nil {
		return
	}
	glyphs, _, err := face.ToPath(text)
	if err != nil {
		p.fail(err)
		return
	}
	if glyphs.Empty() {
		return
	}
	p.ctx.Push()
	defer p.ctx.Pop()
	p.ctx.SetFillColor(canvas.Transparent)
	p.ctx.SetStrokeColor(p.st.stroke)
	// 线宽按字形所在空间计算，与字形一起受 72:96 映射影响。
	scale := math.Sqrt(math.Abs(p.st.matrix.Det())/pxPerPt) * units.PtToMm
	p.ctx.SetStrokeWidth(p.st.lineWidth * scale)
	p.ctx.SetDashes(0)
	p.ctx.DrawPath(0, 0, glyphs.Transform(p.textMatrix(face, x, y)))
}

// DrawImage 把 (x, y) 经变换后的位置作为左上角，按变换的缩放放置图片，不旋转。
func (p *Page) DrawImage(img image.Image, x, y, w, h float64) {
	d := surface.Decompose(p.st.matrix)
	px, py := surface.Apply(p.st.matrix, x, y)
	p.placeImage(img, px, py, w*math.Abs(d.ScaleX), h*math.Abs(d.ScaleY), 0)
}

// DrawImageRotated 在页面坐标中放置图片：未旋转时左上角为 (x, y)，旋转以左下角 (x, y+h) 为中心，
// 与当前变换无关。
func (p *Page) DrawImageRotated(img image.Image, x, y, w, h, angle float64) {
	p.placeImage(img, x, y, w, h, angle)
}

func (p *Page) placeImage(img image.Image, x, y, w, h, angle float64) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	deg := surface.Degrees(angle)
	pixels := canvas.Identity.Translate(x, y+h).Rotate(deg).Translate(0, -h).Scale(w/iw, h/ih)
	img = p.clipImage(img, pixels)
	m := p.view.Translate(x, y+h).Rotate(deg).Scale(w/iw, -h/ih)
	p.c.RenderImage(img, m)
}

// clipImage 把裁剪区域映射到图片像素空间，生成带透明度的副本。
func (p *Page) clipImage(img image.Image, pixels canvas.Matrix) image.Image {
	if len(p.st.clips) == 0 {
		return img
	}
	b := img.Bounds()
	inv := pixels.Inv()
	mask := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	for i := range mask.Pix {
		mask.Pix[i] = 0xff
	}
	for _, region := range p.st.clips {
		dc := gg.NewContext(b.Dx(), b.Dy())
		for _, sp := range region {
			for i, pt := range sp.pts {
				q := inv.Dot(pt)
				if i == 0 {
					dc.MoveTo(q.X, q.Y)
				} else {
					dc.LineTo(q.X, q.Y)
				}
			}
			dc.ClosePath()
		}
		dc.SetRGBA(1, 1, 1, 1)
		dc.Fill()
		alpha := dc.AsMask()
		for i, a := range alpha.Pix {
			if a < mask.Pix[i] {
				mask.Pix[i] = a
			}
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.DrawMask(dst, dst.Bounds(), img, b.Min, mask, image.Point{}, draw.Over)
	return dst
}
