package surface

import (
	"math"
	"testing"

	"github.com/tdewolff/canvas"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDecomposeRotationAndMirror(t *testing.T) {
	m := canvas.Identity.Translate(10, 20).Rotate(90).Scale(2, 3)
	d := Decompose(m)
	if !near(d.TX, 10) || !near(d.TY, 20) {
		t.Fatalf("平移分解错误: %+v", d)
	}
	if !near(d.Rotation, math.Pi/2) || !near(d.ScaleX, 2) || !near(d.ScaleY, 3) {
		t.Fatalf("旋转/缩放分解错误: %+v", d)
	}

	mirror := canvas.Identity.Translate(792, 0).Scale(-1, 1)
	d = Decompose(mirror)
	if !near(d.ScaleX, -1) || !near(d.ScaleY, 1) || !near(d.Rotation, 0) {
		t.Fatalf("镜像应表现为负的 x 缩放: %+v", d)
	}

	mirroredRot := mirror.Rotate(90)
	d = Decompose(mirroredRot)
	if !near(d.ScaleX, -1) || !near(d.Rotation, -math.Pi/2) {
		t.Fatalf("镜像后旋转分解错误: %+v", d)
	}
}

func TestArcSweepRules(t *testing.T) {
	cases := []struct {
		start, end float64
		ccw        bool
		want       float64
	}{
		{math.Pi, 1.5 * math.Pi, false, 0.5 * math.Pi},
		{1.5 * math.Pi, 2 * math.Pi, false, 0.5 * math.Pi},
		{math.Pi, 0, true, -math.Pi},
		{0, 2 * math.Pi, false, 2 * math.Pi},
		{0, 3 * math.Pi, false, 2 * math.Pi},
		{0.5 * math.Pi, 0, false, 1.5 * math.Pi},
		{1.5 * math.Pi, math.Pi, true, -0.5 * math.Pi},
	}
	for _, tc := range cases {
		if got := ArcSweep(tc.start, tc.end, tc.ccw); !near(got, tc.want) {
			t.Fatalf("ArcSweep(%g, %g, %v) = %g, want %g", tc.start, tc.end, tc.ccw, got, tc.want)
		}
	}
}

func TestArcPointsEndpoints(t *testing.T) {
	pts := ArcPoints(0, 0, 10, math.Pi, 0, true, 0.01)
	if len(pts) < 3 {
		t.Fatalf("圆弧应被展平为多段折线，实际 %d 个点", len(pts))
	}
	first, last := pts[0], pts[len(pts)-1]
	if !near(first.X, -10) || math.Abs(first.Y) > 1e-9 || !near(last.X, 10) || math.Abs(last.Y) > 1e-9 {
		t.Fatalf("端点错误: first=%v last=%v", first, last)
	}
	// 逆时针从 π 到 0 经过 y>0（屏幕下方）
	mid := pts[len(pts)/2]
	if mid.Y <= 0 {
		t.Fatalf("逆时针半圆应经过下方: %v", mid)
	}
}

func TestAlignFraction(t *testing.T) {
	if AlignFraction(AlignCenter) != 0.5 || AlignFraction(AlignEnd) != 1 || AlignFraction(AlignRight) != 1 {
		t.Fatalf("center/end/right 比例错误")
	}
	if AlignFraction(AlignStart) != 0 || AlignFraction(AlignLeft) != 0 {
		t.Fatalf("start/left 比例应为 0")
	}
}

func TestNormalizeAngle(t *testing.T) {
	if got := NormalizeAngle(-0.5 * math.Pi); !near(got, 1.5*math.Pi) {
		t.Fatalf("负角度归一错误: %g", got)
	}
	if got := NormalizeAngle(2 * math.Pi); got != 0 {
		t.Fatalf("2π 应归一为 0: %g", got)
	}
}
