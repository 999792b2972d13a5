// Package surfacetest 提供记录绘图调用的 surface.Surface 测试替身。
package surfacetest

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/tuckbox/surface"
)

// Call 是一次方法调用的记录。
type Call struct {
	Op   string
	Args []float64
	Text string
}

func (c Call) String() string {
	if c.Text != "" {
		return fmt.Sprintf("%s(%q %v)", c.Op, c.Text, c.Args)
	}
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

// PathRecord 是一次 Stroke/Fill/Clip 时的路径快照，坐标为页面坐标。
type PathRecord struct {
	Op        string
	Subpaths  [][]canvas.Point
	Closed    []bool
	Fill      color.Color
	Stroke    color.Color
	LineWidth float64
	Dash      []float64
	Matrix    canvas.Matrix
}

// TextRecord 是一次 FillText/StrokeText 的快照。
type TextRecord struct {
	Op       string
	Text     string
	X, Y     float64 // 局部坐标
	PageX    float64
	PageY    float64
	Matrix   canvas.Matrix
	Align    surface.Align
	Baseline surface.Baseline
	Font     surface.FontSpec
	Fill     color.Color
	Stroke   color.Color
	Width    float64
}

// ImageRecord 是一次 DrawImage 的快照。
type ImageRecord struct {
	Image      image.Image
	X, Y, W, H float64
	Matrix     canvas.Matrix
	ClipDepth  int
}

type state struct {
	matrix    canvas.Matrix
	fill      color.Color
	stroke    color.Color
	lineWidth float64
	dash      []float64
	font      surface.FontSpec
	align     surface.Align
	baseline  surface.Baseline
	clips     int
}

// Recorder 记录所有调用；文本度量是确定的：宽度 = 字符数 × 字号 × 0.5，上升 0.8×字号，下降 0.2×字号。
// NoAscent 为 true 时 MeasureText 不返回上升/下降，用于验证行高的回退逻辑。
type Recorder struct {
	Calls  []Call
	Paths  []PathRecord
	Texts  []TextRecord
	Images []ImageRecord

	NoAscent bool
	MaxDepth int
	Fail     error

	st    state
	stack []state

	subpaths [][]canvas.Point
	closed   []bool
}

var _ surface.Surface = (*Recorder)(nil)

// New 创建一个初始状态与 canvas 2D 上下文一致的 Recorder。
func New() *Recorder {
	return &Recorder{st: defaultState()}
}

func defaultState() state {
	return state{
		matrix:    canvas.Identity,
		fill:      color.Black,
		stroke:    color.Black,
		lineWidth: 1,
		font:      surface.FontSpec{Family: "sans-serif", Size: 10, Weight: 400},
	}
}

func (r *Recorder) record(op string, text string, args ...float64) {
	r.Calls = append(r.Calls, Call{Op: op, Args: args, Text: text})
}

// Depth 返回当前 Save 嵌套层数。
func (r *Recorder) Depth() int { return len(r.stack) }

// Count 统计某个操作出现的次数。
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Ops 返回按顺序排列的操作名。
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Reset 清空记录与状态。
func (r *Recorder) Reset() {
	*r = Recorder{st: defaultState(), NoAscent: r.NoAscent}
}

func (r *Recorder) Save() {
	r.record("save", "")
	saved := r.st
	saved.dash = append([]float64(nil), r.st.dash...)
	r.stack = append(r.stack, saved)
	if len(r.stack) > r.MaxDepth {
		r.MaxDepth = len(r.stack)
	}
}

func (r *Recorder) Restore() {
	r.record("restore", "")
	if len(r.stack) == 0 {
		return
	}
	r.st = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Translate(x, y float64) {
	r.record("translate", "", x, y)
	r.st.matrix = r.st.matrix.Translate(x, y)
}

func (r *Recorder) Rotate(angle float64) {
	r.record("rotate", "", angle)
	r.st.matrix = r.st.matrix.Rotate(surface.Degrees(angle))
}

func (r *Recorder) Scale(sx, sy float64) {
	r.record("scale", "", sx, sy)
	r.st.matrix = r.st.matrix.Scale(sx, sy)
}

func (r *Recorder) Transform() canvas.Matrix { return r.st.matrix }

func (r *Recorder) SetTransform(m canvas.Matrix) {
	r.record("setTransform", "", m[0][0], m[1][0], m[0][1], m[1][1], m[0][2], m[1][2])
	r.st.matrix = m
}

func (r *Recorder) BeginPath() {
	r.record("beginPath", "")
	r.subpaths = nil
	r.closed = nil
}

func (r *Recorder) MoveTo(x, y float64) {
	r.record("moveTo", "", x, y)
	px, py := surface.Apply(r.st.matrix, x, y)
	r.subpaths = append(r.subpaths, []canvas.Point{{X: px, Y: py}})
	r.closed = append(r.closed, false)
}

func (r *Recorder) LineTo(x, y float64) {
	r.record("lineTo", "", x, y)
	r.lineToPage(surface.Apply(r.st.matrix, x, y))
}

func (r *Recorder) lineToPage(px, py float64) {
	if len(r.subpaths) == 0 {
		r.subpaths = append(r.subpaths, nil)
		r.closed = append(r.closed, false)
	}
	last := len(r.subpaths) - 1
	r.subpaths[last] = append(r.subpaths[last], canvas.Point{X: px, Y: py})
}

func (r *Recorder) Arc(x, y, radius, start, end float64, ccw bool) {
	flag := 0.0
	if ccw {
		flag = 1
	}
	r.record("arc", "", x, y, radius, start, end, flag)
	for _, p := range surface.ArcPoints(x, y, radius, start, end, ccw, 0.01) {
		r.lineToPage(surface.Apply(r.st.matrix, p.X, p.Y))
	}
}

func (r *Recorder) ClosePath() {
	r.record("closePath", "")
	if n := len(r.subpaths); n > 0 {
		r.closed[n-1] = true
		first := r.subpaths[n-1][0]
		r.subpaths = append(r.subpaths, []canvas.Point{first})
		r.closed = append(r.closed, false)
	}
}

func (r *Recorder) snapshot(op string) {
	subs := make([][]canvas.Point, 0, len(r.subpaths))
	closed := make([]bool, 0, len(r.subpaths))
	for i, sp := range r.subpaths {
		if len(sp) < 2 && !r.closed[i] {
			continue
		}
		subs = append(subs, append([]canvas.Point(nil), sp...))
		closed = append(closed, r.closed[i])
	}
	r.Paths = append(r.Paths, PathRecord{
		Op:        op,
		Subpaths:  subs,
		Closed:    closed,
		Fill:      r.st.fill,
		Stroke:    r.st.stroke,
		LineWidth: r.st.lineWidth,
		Dash:      append([]float64(nil), r.st.dash...),
		Matrix:    r.st.matrix,
	})
}

func (r *Recorder) Stroke() {
	r.record("stroke", "")
	r.snapshot("stroke")
}

func (r *Recorder) Fill() {
	r.record("fill", "")
	r.snapshot("fill")
}

func (r *Recorder) Clip() {
	r.record("clip", "")
	r.snapshot("clip")
	r.st.clips++
}

func (r *Recorder) SetFillColor(c color.Color) {
	r.record("fillColor", "")
	r.st.fill = c
}

func (r *Recorder) SetStrokeColor(c color.Color) {
	r.record("strokeColor", "")
	r.st.stroke = c
}

func (r *Recorder) SetLineWidth(w float64) {
	r.record("lineWidth", "", w)
	r.st.lineWidth = w
}

func (r *Recorder) SetLineDash(d []float64) {
	r.record("lineDash", "", d...)
	r.st.dash = append([]float64(nil), d...)
}

func (r *Recorder) SetFont(f surface.FontSpec) {
	r.record("font", f.Family, f.Size, float64(f.Weight))
	r.st.font = f
}

func (r *Recorder) SetTextAlign(a surface.Align) {
	r.record("textAlign", a.String())
	r.st.align = a
}

func (r *Recorder) TextAlign() surface.Align { return r.st.align }

func (r *Recorder) SetTextBaseline(b surface.Baseline) {
	r.record("textBaseline", "", float64(b))
	r.st.baseline = b
}

func (r *Recorder) MeasureText(text string) surface.TextMetrics {
	size := r.st.font.Size
	m := surface.TextMetrics{Width: float64(utf8.RuneCountInString(text)) * size * 0.5}
	if !r.NoAscent {
		m.Ascent = 0.8 * size
		m.Descent = 0.2 * size
	}
	return m
}

func (r *Recorder) text(op, text string, x, y float64) {
	r.record(op, text, x, y)
	px, py := surface.Apply(r.st.matrix, x, y)
	r.Texts = append(r.Texts, TextRecord{
		Op:       op,
		Text:     text,
		X:        x,
		Y:        y,
		PageX:    px,
		PageY:    py,
		Matrix:   r.st.matrix,
		Align:    r.st.align,
		Baseline: r.st.baseline,
		Font:     r.st.font,
		Fill:     r.st.fill,
		Stroke:   r.st.stroke,
		Width:    r.st.lineWidth,
	})
}

func (r *Recorder) FillText(text string, x, y float64)   { r.text("fillText", text, x, y) }
func (r *Recorder) StrokeText(text string, x, y float64) { r.text("strokeText", text, x, y) }

func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) {
	r.record("drawImage", "", x, y, w, h)
	r.Images = append(r.Images, ImageRecord{Image: img, X: x, Y: y, W: w, H: h, Matrix: r.st.matrix, ClipDepth: r.st.clips})
}

func (r *Recorder) Err() error { return r.Fail }

// TextsMatching 返回内容包含 substr 的文本记录。
func (r *Recorder) TextsMatching(substr string) []TextRecord {
	var out []TextRecord
	for _, t := range r.Texts {
		if strings.Contains(t.Text, substr) {
			out = append(out, t)
		}
	}
	return out
}

// Bounds 返回路径记录所有点的包围盒。
func (p PathRecord) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, sp := range p.Subpaths {
		for _, pt := range sp {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	return
}
