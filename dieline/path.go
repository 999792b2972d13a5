package dieline

import (
	"math"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/tuckbox/surface"
)

// OpKind 为路径指令类型。
type OpKind int

const (
	OpMove OpKind = iota
	OpLine
	OpArc
	OpClose
)

// Op 是一条路径指令。Arc 使用 X/Y 作为圆心。
type Op struct {
	Kind  OpKind  `json:"kind"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r,omitempty"`
	Start float64 `json:"start,omitempty"`
	End   float64 `json:"end,omitempty"`
	CCW   bool    `json:"ccw,omitempty"`
}

// Path 按顺序保存路径指令，Trace 时原样回放到绘图面上。
type Path struct {
	ops []Op
}

func (p *Path) MoveTo(x, y float64) *Path {
	p.ops = append(p.ops, Op{Kind: OpMove, X: x, Y: y})
	return p
}

func (p *Path) LineTo(x, y float64) *Path {
	p.ops = append(p.ops, Op{Kind: OpLine, X: x, Y: y})
	return p
}

// Arc 与 canvas 的 arc 一致：若已有当前点，先连线到圆弧起点。
func (p *Path) Arc(cx, cy, r, start, end float64, ccw bool) *Path {
	p.ops = append(p.ops, Op{Kind: OpArc, X: cx, Y: cy, R: r, Start: start, End: end, CCW: ccw})
	return p
}

func (p *Path) Close() *Path {
	p.ops = append(p.ops, Op{Kind: OpClose})
	return p
}

// Ops 返回指令副本。
func (p *Path) Ops() []Op {
	return append([]Op(nil), p.ops...)
}

func (p *Path) Len() int { return len(p.ops) }

// Trace 把指令追加到绘图面的当前路径，不调用 BeginPath。
func (p *Path) Trace(s surface.Surface) {
	for _, op := range p.ops {
		switch op.Kind {
		case OpMove:
			s.MoveTo(op.X, op.Y)
		case OpLine:
			s.LineTo(op.X, op.Y)
		case OpArc:
			s.Arc(op.X, op.Y, op.R, op.Start, op.End, op.CCW)
		case OpClose:
			s.ClosePath()
		}
	}
}

// Subpaths 将路径展平为折线，每个 MoveTo 开始一个新的子路径。
func (p *Path) Subpaths() [][]canvas.Point {
	var (
		out     [][]canvas.Point
		current []canvas.Point
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, current)
		}
		current = nil
	}
	for _, op := range p.ops {
		switch op.Kind {
		case OpMove:
			flush()
			current = []canvas.Point{{X: op.X, Y: op.Y}}
		case OpLine:
			current = append(current, canvas.Point{X: op.X, Y: op.Y})
		case OpArc:
			current = append(current, surface.ArcPoints(op.X, op.Y, op.R, op.Start, op.End, op.CCW, 0.01)...)
		case OpClose:
			if len(current) > 0 {
				first := current[0]
				current = append(current, first)
				flush()
				current = []canvas.Point{first}
			}
		}
	}
	if len(current) > 1 {
		flush()
	}
	return out
}

// Start 返回路径的第一个点。
func (p *Path) Start() canvas.Point {
	for _, op := range p.ops {
		switch op.Kind {
		case OpMove, OpLine:
			return canvas.Point{X: op.X, Y: op.Y}
		case OpArc:
			return canvas.Point{X: op.X + op.R*math.Cos(op.Start), Y: op.Y + op.R*math.Sin(op.Start)}
		}
	}
	return canvas.Point{}
}

// End 返回关闭前最后落笔的点，用于检查外轮廓是否首尾相接。
func (p *Path) End() canvas.Point {
	for i := len(p.ops) - 1; i >= 0; i-- {
		op := p.ops[i]
		switch op.Kind {
		case OpMove, OpLine:
			return canvas.Point{X: op.X, Y: op.Y}
		case OpArc:
			a := op.Start + surface.ArcSweep(op.Start, op.End, op.CCW)
			return canvas.Point{X: op.X + op.R*math.Cos(a), Y: op.Y + op.R*math.Sin(a)}
		}
	}
	return canvas.Point{}
}

// Closed 判断路径是否以 Close 结束。
func (p *Path) Closed() bool {
	return len(p.ops) > 0 && p.ops[len(p.ops)-1].Kind == OpClose
}

// Bounds 返回展平后的包围盒。
func (p *Path) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sp := range p.Subpaths() {
		for _, pt := range sp {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Segments 返回所有直线段（MoveTo 之后的 LineTo），用于比较内切线与压痕线。
func (p *Path) Segments() [][2]canvas.Point {
	var (
		out  [][2]canvas.Point
		cur  canvas.Point
		have bool
	)
	for _, op := range p.ops {
		switch op.Kind {
		case OpMove:
			cur, have = canvas.Point{X: op.X, Y: op.Y}, true
		case OpLine:
			next := canvas.Point{X: op.X, Y: op.Y}
			if have {
				out = append(out, [2]canvas.Point{cur, next})
			}
			cur, have = next, true
		case OpArc:
			a := op.Start + surface.ArcSweep(op.Start, op.End, op.CCW)
			cur, have = canvas.Point{X: op.X + op.R*math.Cos(a), Y: op.Y + op.R*math.Sin(a)}, true
		}
	}
	return out
}
