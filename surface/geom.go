package surface

import (
	"math"

	"github.com/tdewolff/canvas"
)

// Decomposition 为仿射矩阵分解出的平移、旋转（弧度）与缩放。
// 镜像体现在 ScaleX 为负，旋转角保持在 (-π, π]。
type Decomposition struct {
	TX, TY   float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
}

// Decompose 以 y 列求旋转与纵向缩放，再由行列式得到带符号的横向缩放。
func Decompose(m canvas.Matrix) Decomposition {
	a, b := m[0][0], m[1][0]
	c, d := m[0][1], m[1][1]
	sy := math.Hypot(c, d)
	det := a*d - b*c
	var rot, sx float64
	if sy == 0 {
		rot = math.Atan2(b, a)
		sx = math.Hypot(a, b)
	} else {
		rot = math.Atan2(-c, d)
		sx = det / sy
	}
	return Decomposition{TX: m[0][2], TY: m[1][2], Rotation: rot, ScaleX: sx, ScaleY: sy}
}

// Apply 将点 (x, y) 变换到页面坐标。
func Apply(m canvas.Matrix, x, y float64) (float64, float64) {
	p := m.Dot(canvas.Point{X: x, Y: y})
	return p.X, p.Y
}

// Degrees 把弧度换算为 canvas.Matrix 使用的角度。
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// NormalizeAngle 将角度归一到 [0, 2π)。
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// ArcSweep 按 canvas 规则返回从 start 出发的有向扫掠角：顺时针为正，逆时针为负，
// 差值达到一整圈时为完整圆。
func ArcSweep(start, end float64, ccw bool) float64 {
	const full = 2 * math.Pi
	if !ccw {
		if end-start >= full {
			return full
		}
		return posMod(end-start, full)
	}
	if start-end >= full {
		return -full
	}
	return -posMod(start-end, full)
}

func posMod(v, m float64) float64 {
	v = math.Mod(v, m)
	if v < 0 {
		v += m
	}
	return v
}

// ArcPoints 将圆弧展平为折线，包含起点与终点。tolerance 为弦高上限。
func ArcPoints(cx, cy, r, start, end float64, ccw bool, tolerance float64) []canvas.Point {
	sweep := ArcSweep(start, end, ccw)
	if tolerance <= 0 {
		tolerance = 0.05
	}
	n := 1
	if r > tolerance {
		step := 2 * math.Acos(1-tolerance/r)
		n = int(math.Ceil(math.Abs(sweep) / step))
	}
	if n < 1 {
		n = 1
	}
	pts := make([]canvas.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		pts = append(pts, canvas.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	return pts
}
