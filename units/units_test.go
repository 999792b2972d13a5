package units

import (
	"errors"
	"math"
	"testing"
)

var all = []Unit{Inch, CM, MM, Point, Pixel, Dot}

// TestRoundTrip 验证任意两种单位之间往返换算的精度（允许极小的浮点误差）。
func TestRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 2.25, 12, 14.4, 72, 96, 144, 1000}
	for _, a := range all {
		for _, b := range all {
			for _, v := range samples {
				there, err := Convert(v, a, b)
				if err != nil {
					t.Fatalf("%v→%v 换算失败: %v", a, b, err)
				}
				back, err := Convert(there, b, a)
				if err != nil {
					t.Fatalf("%v→%v 换算失败: %v", b, a, err)
				}
				if diff := math.Abs(back - v); diff > 1e-9*math.Max(1, v) {
					t.Fatalf("%v→%v→%v 往返误差过大: in=%g back=%g diff=%g", a, b, a, v, back, diff)
				}
			}
		}
	}
}

// TestKnownConversions 覆盖常见单位间的换算结果。
func TestKnownConversions(t *testing.T) {
	cases := []struct {
		v        float64
		from, to Unit
		want     float64
	}{
		{1, Inch, Point, 72},
		{2.54, CM, Inch, 1},
		{25.4, MM, Point, 72},
		{96, Pixel, Point, 72},
		{72, Point, Pixel, 96},
		{300, Dot, Inch, 1},
		{10, MM, CM, 1},
	}
	for _, c := range cases {
		got, err := Convert(c.v, c.from, c.to)
		if err != nil {
			t.Fatalf("%g%v→%v 换算失败: %v", c.v, c.from, c.to, err)
		}
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("%g%v→%v 期望 %g，实际 %g", c.v, c.from, c.to, c.want, got)
		}
	}
}

func TestIdentityShortCircuit(t *testing.T) {
	got, err := Convert(1.2345, MM, MM)
	if err != nil || got != 1.2345 {
		t.Fatalf("同单位换算应原样返回: got=%g err=%v", got, err)
	}
}

func TestPixelScalarsAreInverse(t *testing.T) {
	pt, _ := ToPoints(1, Pixel)
	px, _ := FromPoints(pt, Pixel)
	if px != 1 {
		t.Fatalf("px→pt→px 应精确互逆，实际 %g", px)
	}
}

func TestUnknownUnit(t *testing.T) {
	if _, err := Parse("furlong"); !errors.Is(err, ErrInvalidUnit) {
		t.Fatalf("未知单位应返回 ErrInvalidUnit，实际 %v", err)
	}
	if _, err := Convert(1, Unit(42), Point); !errors.Is(err, ErrInvalidUnit) {
		t.Fatalf("未知源单位应返回 ErrInvalidUnit，实际 %v", err)
	}
	if _, err := Convert(1, Point, Invalid); !errors.Is(err, ErrInvalidUnit) {
		t.Fatalf("未知目标单位应返回 ErrInvalidUnit，实际 %v", err)
	}
}

func TestParseSymbols(t *testing.T) {
	for sym, want := range map[string]Unit{"in": Inch, "CM": CM, " mm ": MM, "pt": Point, "px": Pixel, "dots": Dot} {
		got, err := Parse(sym)
		if err != nil || got != want {
			t.Fatalf("解析 %q 期望 %v，实际 %v (err=%v)", sym, want, got, err)
		}
		if got.String() == "" {
			t.Fatalf("%v 缺少符号", got)
		}
	}
}

func TestLengthPoints(t *testing.T) {
	l := Length{Value: 0.25, Unit: Inch}
	pt, err := l.Points()
	if err != nil || math.Abs(pt-18) > 1e-9 {
		t.Fatalf("0.25in 应为 18pt，实际 %g (err=%v)", pt, err)
	}
	mm, err := l.To(MM)
	if err != nil || math.Abs(mm-6.35) > 1e-9 {
		t.Fatalf("0.25in 应为 6.35mm，实际 %g (err=%v)", mm, err)
	}
}

func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		def  Unit
		want Length
	}{
		{"2.25in", Invalid, Length{2.25, Inch}},
		{" 18PT ", Invalid, Length{18, Point}},
		{"300dots", Invalid, Length{300, Dot}},
		{"3.5 cm", Invalid, Length{3.5, CM}},
		{"12", MM, Length{12, MM}},
	}
	for _, tc := range cases {
		got, err := ParseLength(tc.in, tc.def)
		if err != nil || got != tc.want {
			t.Fatalf("解析 %q 期望 %v，实际 %v (err=%v)", tc.in, tc.want, got, err)
		}
	}
	for _, bad := range []string{"", "12", "1furlong", "abcin"} {
		if _, err := ParseLength(bad, Invalid); err == nil {
			t.Fatalf("%q 应解析失败", bad)
		}
	}
}
