package tuckbox

import (
	"errors"
	"fmt"

	"github.com/ByLCY/tuckbox/compose"
	"github.com/ByLCY/tuckbox/dieline"
	"github.com/ByLCY/tuckbox/rgb"
	"github.com/ByLCY/tuckbox/surface"
	"github.com/ByLCY/tuckbox/textlayout"
)

const lineWidth = 1.0

// frame 描述双面背面的镜像：路径通过变换镜像，文字只镜像锚点以保持可读。
type frame struct {
	mirrored bool
	width    float64
}

func (f frame) apply(s surface.Surface) {
	if f.mirrored {
		s.Translate(f.width, 0)
		s.Scale(-1, 1)
	}
}

func (f frame) x(x float64) float64 {
	if f.mirrored {
		return f.width - x
	}
	return x
}

func (f frame) align(a surface.Align) surface.Align {
	if !f.mirrored {
		return a
	}
	switch a {
	case surface.AlignStart, surface.AlignLeft:
		return surface.AlignRight
	case surface.AlignEnd, surface.AlignRight:
		return surface.AlignLeft
	}
	return a
}

// Generate 在绘图面上完成一次刀版绘制。顺序：背景 → 图片 → 文字 → 外轮廓 → 内切线 → 压痕 →
// 粘合翼标注 → 组装说明；每一步都用 save/restore 包裹。
func Generate(s surface.Surface, opts Options) error {
	if s == nil {
		return fmt.Errorf("%w: 绘图面为空", surface.ErrSurface)
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	tracer, err := dieline.TracerFor(opts.Style)
	if err != nil {
		return err
	}
	l := opts.Layout()
	outline := tracer.Outline(l)
	fr := frame{mirrored: opts.Mirrored(), width: opts.Page.Width}

	drawn := rgb.White
	if opts.HasDesign() {
		if !opts.Background.IsWhite() {
			fillBackground(s, outline, opts.Background, opts.Bleed)
			drawn = opts.Background
		}
		var clip *dieline.Path
		if opts.Mode == ModePretty {
			clip = outline
		}
		compose.Draw(s, l, opts.images(), opts.Safe, clip)
		drawLabels(s, l, opts.Faces)
	}

	cut, score := rgb.Contrast(drawn)
	if opts.Mode != ModePretty {
		strokePath(s, fr, outline, cut, nil)
	}
	strokePath(s, fr, tracer.Cuts(l), cut, nil)
	strokePath(s, fr, tracer.Scores(l), score, dieline.ScoreDash)

	if opts.Mode != ModePretty {
		drawLegend(s, fr, tracer.GlueFlaps(l), opts.Mirrored(), cut, score)
	}
	if opts.HasInstructions() {
		drawInstructions(s, fr, opts, outline.Bounds())
	}

	if err := s.Err(); err != nil {
		if errors.Is(err, surface.ErrSurface) {
			return fmt.Errorf("生成刀版失败: %w", err)
		}
		return fmt.Errorf("生成刀版失败: %w: %w", surface.ErrSurface, err)
	}
	return nil
}

// fillBackground 填充外轮廓，并用 2×bleed 的描边把颜色延伸到出血区。
func fillBackground(s surface.Surface, outline *dieline.Path, bg rgb.RGB, bleed float64) {
	s.Save()
	defer s.Restore()
	s.SetLineDash(nil)
	s.SetFillColor(bg.Color())
	s.SetStrokeColor(bg.Color())
	s.SetLineWidth(bleed * 2)
	s.BeginPath()
	outline.Trace(s)
	if bleed > 0 {
		s.Stroke()
	}
	s.Fill()
}

func strokePath(s surface.Surface, fr frame, p *dieline.Path, c rgb.RGB, dash []float64) {
	s.Save()
	defer s.Restore()
	fr.apply(s)
	s.BeginPath()
	p.Trace(s)
	s.SetLineDash(dash)
	s.SetLineWidth(lineWidth)
	s.SetStrokeColor(c.Color())
	s.Stroke()
}

func drawLabels(s surface.Surface, l dieline.Layout, faces map[dieline.Face]Panel) {
	labeled := false
	for _, p := range faces {
		if p.Text != "" && p.Font != nil {
			labeled = true
			break
		}
	}
	if !labeled {
		return
	}

	s.Save()
	defer s.Restore()
	s.BeginPath()
	s.SetFillColor(rgb.Black.Color())
	s.SetTextAlign(surface.AlignCenter)
	s.SetTextBaseline(surface.BaselineMiddle)

	anchors := textlayout.Anchors(l)
	for _, face := range dieline.Faces() {
		p := faces[face]
		if p.Text == "" || p.Font == nil {
			continue
		}
		anchors[face].Write(s, p.Text, *p.Font)
	}
}
