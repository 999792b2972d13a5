package textlayout

import (
	"math"
	"reflect"
	"testing"

	"github.com/ByLCY/tuckbox/dieline"
	"github.com/ByLCY/tuckbox/rgb"
	"github.com/ByLCY/tuckbox/surface"
	"github.com/ByLCY/tuckbox/surface/surfacetest"
)

func newRecorder(size float64) *surfacetest.Recorder {
	rec := surfacetest.New()
	rec.SetFont(surface.FontSpec{Family: "serif", Size: size})
	return rec
}

func TestWrapGreedy(t *testing.T) {
	rec := newRecorder(10) // 每个字符 5pt
	lines := Wrap(rec, "one two three four", 40)
	want := []string{"one two", "three", "four"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("换行结果错误: got=%q want=%q", lines, want)
	}
}

func TestWrapKeepsBlankGroupsAndLongWords(t *testing.T) {
	rec := newRecorder(10)
	lines := Wrap(rec, "alpha\n\nsupercalifragilistic end", 40)
	want := []string{"alpha", "", "supercalifragilistic", "end"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got=%q want=%q", lines, want)
	}
}

func TestWrapIdempotent(t *testing.T) {
	rec := newRecorder(12)
	texts := []string{
		"Shuffle the deck and deal seven cards to every player at the table",
		"a bb ccc dddd eeeee ffffff ggggggg",
		"Line one\nLine two is a little bit longer than the first",
	}
	for _, text := range texts {
		for _, max := range []float64{30, 60, 100, 250} {
			first := Wrap(rec, text, max)
			for _, line := range first {
				again := Wrap(rec, line, max)
				if line == "" {
					continue
				}
				if len(again) != 1 || again[0] != line {
					t.Fatalf("重新换行改变了行边界: line=%q max=%g again=%q", line, max, again)
				}
			}
		}
	}
}

func TestLineHeightFallback(t *testing.T) {
	rec := newRecorder(20)
	if got := LineHeight(rec); math.Abs(got-20) > 1e-9 {
		t.Fatalf("上升+下降应为 20，实际 %g", got)
	}
	rec.NoAscent = true
	if got := LineHeight(rec); math.Abs(got-10*1.05) > 1e-9 {
		t.Fatalf("回退行高应为 M 宽 ×1.05，实际 %g", got)
	}
}

func TestWriteLineStrokesBeforeFill(t *testing.T) {
	rec := surfacetest.New()
	font := Font{Family: "serif", Size: 10, Weight: 700, Color: rgb.Black}
	WriteLine(rec, "one two three four", font, 100, 50, 40)

	if rec.Depth() != 0 {
		t.Fatalf("save/restore 不平衡")
	}
	if len(rec.Texts) != 6 {
		t.Fatalf("三行文本应各描边+填充一次，实际 %d", len(rec.Texts))
	}
	for i := 0; i < len(rec.Texts); i += 2 {
		s, f := rec.Texts[i], rec.Texts[i+1]
		if s.Op != "strokeText" || f.Op != "fillText" || s.Text != f.Text || s.X != f.X || s.Y != f.Y {
			t.Fatalf("第 %d 行应先描边后填充且位置一致: %+v %+v", i/2, s, f)
		}
		if y := 50 + float64(i/2)*10; math.Abs(f.Y-y) > 1e-9 {
			t.Fatalf("第 %d 行 y 错误: %g want %g", i/2, f.Y, y)
		}
	}
	if _, _, _, a := rec.Texts[0].Stroke.RGBA(); a != 0 {
		t.Fatalf("OutlineWidth 为 0 时描边应透明")
	}
}

func TestWriteLineOutline(t *testing.T) {
	rec := surfacetest.New()
	font := Font{Family: "serif", Size: 10, Color: rgb.White, OutlineColor: rgb.Black, OutlineWidth: 2}
	WriteLine(rec, "Deck", font, 0, 0, 100)
	st := rec.Texts[0]
	if st.Width != 2 {
		t.Fatalf("描边宽度应为 2，实际 %g", st.Width)
	}
	if r, g, b, a := st.Stroke.RGBA(); r != 0 || g != 0 || b != 0 || a == 0 {
		t.Fatalf("描边颜色应为不透明黑色")
	}
}

func TestWriteCenterAnglePerLineOffsets(t *testing.T) {
	rec := surfacetest.New()
	rec.SetTextAlign(surface.AlignCenter)
	font := Font{Family: "serif", Size: 10, Color: rgb.Black}
	WriteCenterAngle(rec, "aa bbbbbb", font, 200, 300, math.Pi/2, 40)

	fills := []surfacetest.TextRecord{}
	for _, tr := range rec.Texts {
		if tr.Op == "fillText" {
			fills = append(fills, tr)
		}
	}
	if len(fills) != 2 {
		t.Fatalf("应换成两行，实际 %d", len(fills))
	}
	// 每行以自身宽度居中：aa 宽 10，bbbbbb 宽 30
	if fills[0].X != -5 || fills[1].X != -15 {
		t.Fatalf("居中偏移应基于每行宽度: %g %g", fills[0].X, fills[1].X)
	}
	for _, f := range fills {
		if f.Align != surface.AlignLeft {
			t.Fatalf("绘制时应强制左对齐，实际 %v", f.Align)
		}
	}
	// 旋转 90° 后，局部 y 方向的第二行在页面上向左偏移一个行高
	if math.Abs(fills[0].PageX-200) > 1e-9 || math.Abs(fills[1].PageX-190) > 1e-9 {
		t.Fatalf("旋转后页面 x 错误: %g %g", fills[0].PageX, fills[1].PageX)
	}
	if rec.TextAlign() != surface.AlignCenter || rec.Depth() != 0 {
		t.Fatalf("调用结束后应恢复对齐与状态")
	}
}

func TestAnchors(t *testing.T) {
	l := dieline.NewLayout(dieline.Size{Width: 162, Height: 252, Depth: 72}, 0, 18)
	a := Anchors(l)
	if len(a) != 6 {
		t.Fatalf("应有六个锚点")
	}
	if a[dieline.Front].Y != l.Front.Y+l.Front.Height*0.25 || a[dieline.Front].Angle != 0 {
		t.Fatalf("front 锚点错误: %+v", a[dieline.Front])
	}
	if a[dieline.Top].Angle != math.Pi || a[dieline.Top].Y != l.Front.Y-36 {
		t.Fatalf("top 锚点错误: %+v", a[dieline.Top])
	}
	if a[dieline.Right].Angle != 1.5*math.Pi || a[dieline.Left].Angle != 0.5*math.Pi {
		t.Fatalf("侧面角度错误")
	}
	if math.Abs(a[dieline.Left].MaxWidth-0.9*252) > 1e-9 {
		t.Fatalf("侧面最大宽度应为 0.9×height: %g", a[dieline.Left].MaxWidth)
	}
}
