package canvasrenderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/tuckbox/surface"
	"github.com/ByLCY/tuckbox/units"
)

type renderedPath struct {
	bounds canvas.Rect
	style  canvas.Style
}

// countingRenderer 记录画布最终输出的路径与文字对象。
type countingRenderer struct {
	w, h  float64
	paths []renderedPath
	texts int
}

func (r *countingRenderer) Size() (float64, float64) { return r.w, r.h }

func (r *countingRenderer) RenderPath(path *canvas.Path, style canvas.Style, m canvas.Matrix) {
	r.paths = append(r.paths, renderedPath{bounds: path.Transform(m).Bounds(), style: style})
}

func (r *countingRenderer) RenderText(text *canvas.Text, m canvas.Matrix) { r.texts++ }

func (r *countingRenderer) RenderImage(img image.Image, m canvas.Matrix) {}

func TestStrokeTextDrawsOneOutline(t *testing.T) {
	const w, h = 600.0, 400.0
	c := canvas.New(w*units.PtToMm, h*units.PtToMm)
	page := NewPage(c, w, h, NewFontCache("", nil))
	s := NewCompat(page)
	s.SetFont(surface.FontSpec{Family: "Helvetica", Size: 24, Weight: 700})
	s.SetTextAlign(surface.AlignLeft)
	s.SetStrokeColor(color.White)
	s.SetLineWidth(2)
	s.StrokeText("Deck", 100, 200)
	s.FillText("Deck", 100, 200)
	if err := page.Err(); err != nil {
		t.Fatalf("绘制失败: %v", err)
	}

	r := &countingRenderer{w: w * units.PtToMm, h: h * units.PtToMm}
	c.RenderTo(r)
	if len(r.paths) != 1 || r.texts != 1 {
		t.Fatalf("描边应为一条路径、填充为一个文字对象，实际 paths=%d texts=%d", len(r.paths), r.texts)
	}
	got := r.paths[0]
	if math.Abs(got.style.StrokeWidth-2*units.PtToMm) > 1e-9 {
		t.Fatalf("描边宽度错误: %g", got.style.StrokeWidth)
	}

	width := s.MeasureText("Deck").Width * units.PtToMm
	left := 100 * units.PtToMm
	if math.Abs(got.bounds.X0-left) > 2 || got.bounds.X1 > left+width+1 || got.bounds.X1-got.bounds.X0 < width/2 {
		t.Fatalf("轮廓应与填充文字重合: bounds=%+v left=%g width=%g", got.bounds, left, width)
	}
	// 页面 y=200pt 的基线对应画布 y=(400-200)pt，字形在基线之上。
	base := (h - 200) * units.PtToMm
	if got.bounds.Y0 < base-2 || got.bounds.Y1 <= base {
		t.Fatalf("轮廓应位于基线之上: bounds=%+v base=%g", got.bounds, base)
	}
}

func TestStrokeTextSkipsTransparent(t *testing.T) {
	c := canvas.New(100, 100)
	page := NewPage(c, 100/units.PtToMm, 100/units.PtToMm, NewFontCache("", nil))
	page.SetStrokeColor(color.Transparent)
	page.StrokeText("Deck", 10, 10)
	r := &countingRenderer{w: 100, h: 100}
	c.RenderTo(r)
	if len(r.paths) != 0 || r.texts != 0 {
		t.Fatalf("透明描边不应输出任何对象: paths=%d texts=%d", len(r.paths), r.texts)
	}
}
