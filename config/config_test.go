package config

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByLCY/tuckbox/dieline"
	"github.com/ByLCY/tuckbox/paper"
	"github.com/ByLCY/tuckbox/rgb"
	"github.com/ByLCY/tuckbox/tuckbox"
)

const sampleTuck = `
box "Hearts" {
  meta {
    author: "Sam"
    edition: "2nd"
  }
  size: 63mm 88mm 20mm
  page: a4 portrait
  style: double-tuck
  mode: two-sided
  background: #224466
  margin: 0.5in

  font Big {
    family: "Helvetica"
    size: 24pt
    weight: bold
    color: #fff
    outline: #000 2pt
  }

  face front {
    text: "${title}" "${edition} edition"
    font: Big
  }
  face back same-as front
  face top { text: "by ${author}" }

  instructions {
    "Fold"
    "Glue"
  }
}
`

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestDecodeTuck(t *testing.T) {
	box, err := Decode(strings.NewReader(sampleTuck), "tuck")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	opts, err := box.Resolve(".")
	if err != nil {
		t.Fatalf("Resolve 失败: %v", err)
	}

	if !near(opts.Size.Width, 63*72/25.4) || !near(opts.Size.Depth, 20*72/25.4) {
		t.Fatalf("尺寸换算错误: %+v", opts.Size)
	}
	if opts.Page.Width > opts.Page.Height {
		t.Fatalf("portrait 页面应为纵向: %+v", opts.Page)
	}
	if opts.Style != dieline.StyleDoubleTuck || opts.Mode != tuckbox.ModeTwoSided {
		t.Fatalf("盒型或模式错误: %v %v", opts.Style, opts.Mode)
	}
	if opts.Background != (rgb.RGB{R: 0x22, G: 0x44, B: 0x66}) {
		t.Fatalf("背景色错误: %v", opts.Background)
	}
	if !near(opts.Margin, 36) || !near(opts.Bleed, 0.12*72) {
		t.Fatalf("未写出的长度应取默认值: margin=%g bleed=%g", opts.Margin, opts.Bleed)
	}
	if opts.Instructions != "Fold\nGlue" {
		t.Fatalf("说明错误: %q", opts.Instructions)
	}

	front := opts.Faces[dieline.Front]
	if front.Text != "Hearts\n2nd edition" {
		t.Fatalf("正面文字插值错误: %q", front.Text)
	}
	if front.Font == nil || front.Font.Weight != 700 || front.Font.OutlineWidth != 2 || front.Font.Color != rgb.White {
		t.Fatalf("字体解析错误: %+v", front.Font)
	}
	if back := opts.Faces[dieline.Back]; back.Text != front.Text || back.Font == nil {
		t.Fatalf("same-as 应复制正面内容: %+v", back)
	}
	top := opts.Faces[dieline.Top]
	if top.Text != "by Sam" || top.Font == nil || top.Font.Family != "Times-Roman" {
		t.Fatalf("未指定字体时应使用默认标签字体: %+v", top)
	}
}

const sampleTOML = `
title = "Clubs"
units = "mm"
width = 63
height = 88.5
depth = "0.5in"
paper = "letter"
background = "rgb(10, 20, 30)"

[fonts.label]
family = "Helvetica"
size = "12pt"

[faces.left]
text = "Clubs"

[faces.right]
same_as = "left"
image = "ignored.png"
`

func TestDecodeTOML(t *testing.T) {
	box, err := Decode(strings.NewReader(sampleTOML), "toml")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	opts, err := box.Resolve(".")
	if err != nil {
		t.Fatalf("Resolve 失败: %v", err)
	}
	if !near(opts.Size.Width, 63*72/25.4) || !near(opts.Size.Height, 88.5*72/25.4) || !near(opts.Size.Depth, 36) {
		t.Fatalf("裸数字应按 units 换算: %+v", opts.Size)
	}
	if !near(opts.Page.Width, 792) || !near(opts.Page.Height, 612) {
		t.Fatalf("letter 默认横向: %+v", opts.Page)
	}
	if _, ok := opts.Faces[dieline.Front]; ok {
		t.Fatalf("描述了面时不应再加默认正面")
	}
	if right := opts.Faces[dieline.Right]; right.Text != "Clubs" || right.Image != nil {
		t.Fatalf("same-as 应完全复制 left: %+v", right)
	}
	if opts.Faces[dieline.Left].Font.Size != 12 {
		t.Fatalf("字号错误: %+v", opts.Faces[dieline.Left].Font)
	}
}

func TestDefaultBox(t *testing.T) {
	opts, err := Default().Resolve("")
	if err != nil {
		t.Fatalf("默认配置应可解析: %v", err)
	}
	if !near(opts.Size.Width, 162) || !near(opts.Size.Height, 252) || !near(opts.Size.Depth, 72) {
		t.Fatalf("默认尺寸错误: %+v", opts.Size)
	}
	front := opts.Faces[dieline.Front]
	if front.Text != "Sample" || front.Font.Size != 18 || front.Font.Weight != 700 {
		t.Fatalf("默认正面标签错误: %+v", front)
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(filepath.Join(dir, "art.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	src := "box \"x\" {\n  face front { image: \"art.png\" }\n  face back same-as front\n}\n"
	if err := os.WriteFile(filepath.Join(dir, "box.tuck"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	box, err := Load(filepath.Join(dir, "box.tuck"))
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	opts, err := box.Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve 失败: %v", err)
	}
	front, back := opts.Faces[dieline.Front].Image, opts.Faces[dieline.Back].Image
	if front == nil || front.Bounds().Dx() != 3 || front != back {
		t.Fatalf("图片应加载一次并共享: %v %v", front, back)
	}
	if opts.Faces[dieline.Front].Font != nil {
		t.Fatalf("没有文字时不应解析字体")
	}
}

func TestResolveErrors(t *testing.T) {
	cases := []struct {
		src  string
		want error
	}{
		{`box "x" { colour: red }`, ErrInvalidBox},
		{`box "x" { size: 1in 2in }`, ErrInvalidBox},
		{"box \"x\" {\n face middle { text: \"a\" }\n}", dieline.ErrInvalidFace},
		{"box \"x\" {\n face back same-as front\n}", ErrInvalidBox},
		{"box \"x\" {\n face front { text: \"a\"; font: Missing }\n}", ErrInvalidBox},
		{`box "x" { paper: b5 }`, paper.ErrInvalidFormat},
		{`box "x" { width: -2in }`, tuckbox.ErrInvalidOptions},
	}
	for _, tc := range cases {
		box, err := Decode(strings.NewReader(tc.src), "tuck")
		if err == nil {
			_, err = box.Resolve("")
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("%q 期望 %v，实际 %v", tc.src, tc.want, err)
		}
	}
	if _, err := Decode(strings.NewReader(""), "yaml"); !errors.Is(err, ErrInvalidBox) {
		t.Fatalf("未知格式应返回 ErrInvalidBox: %v", err)
	}
}

func TestUnresolved(t *testing.T) {
	box := Default()
	box.Faces["top"] = Face{Text: "${title} ${publisher}"}
	if got := box.Unresolved(); len(got) != 1 || got[0] != "publisher" {
		t.Fatalf("Unresolved = %v", got)
	}
}

func TestFontSizeIgnoresBoxUnits(t *testing.T) {
	src := "box \"x\" {\n  units: mm\n  font label {\n    family: \"Helvetica\"\n    size: 18\n    outline: #fff 1.5\n  }\n  face front { text: \"a\" }\n}\n"
	box, err := Decode(strings.NewReader(src), "tuck")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	opts, err := box.Resolve("")
	if err != nil {
		t.Fatalf("Resolve 失败: %v", err)
	}
	font := opts.Faces[dieline.Front].Font
	if font == nil || !near(font.Size, 18) || !near(font.OutlineWidth, 1.5) {
		t.Fatalf("裸数字字号与描边宽度应按 pt 计: %+v", font)
	}

	tomlSrc := "[fonts.label]\nfamily = \"Helvetica\"\nsize = 18\noutline = \"#000\"\noutline_width = 2\n\n[faces.front]\ntext = \"a\"\n"
	box, err = Decode(strings.NewReader(tomlSrc), "toml")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if opts, err = box.Resolve(""); err != nil {
		t.Fatalf("Resolve 失败: %v", err)
	}
	font = opts.Faces[dieline.Front].Font
	if font == nil || !near(font.Size, 18) || !near(font.OutlineWidth, 2) {
		t.Fatalf("TOML 裸数字字号应按 pt 计: %+v", font)
	}
	if !near(opts.Size.Width, 2.25*72) {
		t.Fatalf("盒子尺寸仍按 units 换算: %g", opts.Size.Width)
	}
}
