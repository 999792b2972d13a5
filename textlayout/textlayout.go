// Package textlayout 负责标签的换行、行高计算以及在旋转坐标系中的居中绘制。
package textlayout

import (
	"math"
	"strings"

	"github.com/ByLCY/tuckbox/dieline"
	"github.com/ByLCY/tuckbox/rgb"
	"github.com/ByLCY/tuckbox/surface"
)

// Font 描述标签字体。OutlineWidth 为 0 时不描边。
type Font struct {
	Family       string  `json:"family"`
	Size         float64 `json:"size"`
	Weight       int     `json:"weight"`
	Color        rgb.RGB `json:"color"`
	OutlineColor rgb.RGB `json:"outlineColor"`
	OutlineWidth float64 `json:"outlineWidth"`
}

// Spec 转为绘图面使用的字体描述。
func (f Font) Spec() surface.FontSpec {
	weight := f.Weight
	if weight == 0 {
		weight = 400
	}
	return surface.FontSpec{Family: f.Family, Size: f.Size, Weight: weight}
}

// Measurer 是换行所需的最小能力，surface.Surface 满足该接口。
type Measurer interface {
	MeasureText(text string) surface.TextMetrics
}

// Wrap 先按换行符分组，再在组内按空白分词贪心填充：加入下一个词后宽度超过 maxWidth 时另起一行。
// 单个超宽的词独占一行；空组保留为空行。
func Wrap(m Measurer, text string, maxWidth float64) []string {
	var lines []string
	for _, group := range strings.Split(text, "\n") {
		words := strings.Fields(group)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, word := range words {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if line != "" && m.MeasureText(candidate).Width > maxWidth {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// LineHeight 优先使用 "M" 的上升+下降，后端不提供时退化为宽度 × 1.05。
func LineHeight(m Measurer) float64 {
	metrics := m.MeasureText("M")
	if h := metrics.Ascent + metrics.Descent; h > 0 {
		return h
	}
	return metrics.Width * 1.05
}

func applyFont(s surface.Surface, font Font) {
	s.SetFont(font.Spec())
	s.SetFillColor(font.Color.Color())
	if font.OutlineWidth > 0 {
		s.SetStrokeColor(font.OutlineColor.Color())
		s.SetLineWidth(font.OutlineWidth)
	} else {
		s.SetStrokeColor(surface.Transparent)
		s.SetLineWidth(1)
	}
}

// drawLine 先描边再填充，保证轮廓与填充对齐。
func drawLine(s surface.Surface, text string, x, y float64) {
	s.StrokeText(text, x, y)
	s.FillText(text, x, y)
}

// WriteLine 从 (x, y) 开始逐行向下绘制，对齐方式沿用绘图面当前设置。
func WriteLine(s surface.Surface, text string, font Font, x, y, maxWidth float64) {
	s.Save()
	defer s.Restore()
	applyFont(s, font)

	lh := LineHeight(s)
	for i, line := range Wrap(s, text, maxWidth) {
		if line == "" {
			continue
		}
		drawLine(s, line, x, y+float64(i)*lh)
	}
}

// WriteCenterAngle 以 (x, y) 为原点旋转 angle 后绘制。对齐偏移按每一行自身的宽度计算，
// 绘制时强制左对齐，结束后恢复原来的对齐方式。
func WriteCenterAngle(s surface.Surface, text string, font Font, x, y, angle, maxWidth float64) {
	s.Save()
	defer s.Restore()
	applyFont(s, font)
	s.Translate(x, y)
	s.Rotate(angle)

	align := s.TextAlign()
	xs := surface.AlignFraction(align)
	lh := LineHeight(s)
	lines := Wrap(s, text, maxWidth)

	s.SetTextAlign(surface.AlignLeft)
	for i, line := range lines {
		if line == "" {
			continue
		}
		w := s.MeasureText(line).Width
		drawLine(s, line, -w*xs, float64(i)*lh)
	}
	s.SetTextAlign(align)
}

// Anchor 是某个面标签的锚点、旋转角与最大行宽。
type Anchor struct {
	Face     dieline.Face `json:"face"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Angle    float64      `json:"angle"`
	MaxWidth float64      `json:"maxWidth"`
}

// Write 在锚点处绘制文本，未旋转的面直接逐行绘制。
func (a Anchor) Write(s surface.Surface, text string, font Font) {
	if a.Angle == 0 {
		WriteLine(s, text, font, a.X, a.Y, a.MaxWidth)
		return
	}
	WriteCenterAngle(s, text, font, a.X, a.Y, a.Angle, a.MaxWidth)
}

// Anchors 返回六个面的标签位置：正反面在 25% 高度处；顶盖倒置、底部正置，位于 depth 中线；
// 左右侧面分别旋转 90° 与 270°。
func Anchors(l dieline.Layout) map[dieline.Face]Anchor {
	f, b, d := l.Front, l.Back, l.Size.Depth
	return map[dieline.Face]Anchor{
		dieline.Front:  {Face: dieline.Front, X: f.X + f.Width*0.5, Y: f.Y + f.Height*0.25, MaxWidth: f.Width * 0.9},
		dieline.Back:   {Face: dieline.Back, X: b.X + b.Width*0.5, Y: b.Y + b.Height*0.25, MaxWidth: b.Width * 0.9},
		dieline.Top:    {Face: dieline.Top, X: f.X + f.Width*0.5, Y: f.Y - d*0.5, Angle: math.Pi, MaxWidth: b.Width * 0.9},
		dieline.Bottom: {Face: dieline.Bottom, X: f.X + f.Width*0.5, Y: f.Bottom() + d*0.5, MaxWidth: f.Width * 0.9},
		dieline.Left:   {Face: dieline.Left, X: f.X - d*0.5, Y: f.Y + f.Height*0.5, Angle: math.Pi * 0.5, MaxWidth: f.Height * 0.9},
		dieline.Right:  {Face: dieline.Right, X: f.Right() + d*0.5, Y: f.Y + f.Height*0.5, Angle: math.Pi * 1.5, MaxWidth: f.Height * 0.9},
	}
}
