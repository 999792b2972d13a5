package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/tuckbox/dsl"
)

const sampleDSL = `
// 卡牌盒
box "Card Deck" v1 {
  meta {
    title: "Hearts"
    author: "Sam"
  }

  size: 2.25in 3.5in 1in
  page: letter landscape
  style: double-tuck; mode: pretty
  background: #224466
  bleed: 0.12in
  /* 印刷安全区 */
  safe: 3mm

  font Label {
    family: "Times-Roman"
    size: 18pt
    weight: 700
    color: #fff
    outline: #000 1pt
  }

  face front {
    text: "${title}"
    font: Label
    image: "art/front.png"
  }
  face back same-as front

  instructions {
    "Assembly"
    "1. Cut along the solid lines."
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Card Deck" || doc.Version != "v1" {
		t.Fatalf("文档头解析错误: %q %q", doc.Name, doc.Version)
	}

	var kinds []string
	for _, s := range doc.Sections {
		kinds = append(kinds, s.Kind())
	}
	want := "meta setting setting setting setting setting setting setting font face face instructions"
	if got := strings.Join(kinds, " "); got != want {
		t.Fatalf("条目顺序错误:\n got %s\nwant %s", got, want)
	}

	meta := doc.Sections[0].Meta.Block.Assignments()
	if meta["title"].Joined() != "Hearts" || meta["author"].Joined() != "Sam" {
		t.Fatalf("meta 解析错误: %+v", meta)
	}

	size := doc.Sections[1].Setting
	if size.Key != "size" || strings.Join(size.Texts(), ",") != "2.25in,3.5in,1in" {
		t.Fatalf("size 解析错误: %s %v", size.Key, size.Texts())
	}
	if bg := doc.Sections[5].Setting; bg.Values[0].Color == nil || *bg.Values[0].Color != "#224466" {
		t.Fatalf("颜色应解析为 Color token: %+v", bg.Values[0])
	}

	font := doc.Sections[8].Font
	if font.Name != "Label" {
		t.Fatalf("字体名称错误: %s", font.Name)
	}
	outline := font.Block.Assignments()["outline"]
	if outline == nil || outline.Joined() != "#000 1pt" {
		t.Fatalf("outline 解析错误: %+v", outline)
	}

	front := doc.Sections[9].Face
	if front.Name != "front" || front.SameAs != "" {
		t.Fatalf("front 面解析错误: %+v", front)
	}
	if got := front.Block.Assignments()["text"].Joined(); got != "${title}" {
		t.Fatalf("文字应保留占位符，实际 %q", got)
	}
	back := doc.Sections[10].Face
	if back.Name != "back" || back.SameAs != "front" || back.Block != nil {
		t.Fatalf("same-as 解析错误: %+v", back)
	}

	lines := doc.Sections[11].Instructions.Block.Lines()
	if len(lines) != 2 || lines[1] != "1. Cut along the solid lines." {
		t.Fatalf("说明行解析错误: %q", lines)
	}
}

func TestHashCommentIsNotColor(t *testing.T) {
	doc, err := dsl.ParseString("box \"x\" {\n  # fade out later\n  margin: 0.25in\n}\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].Setting.Key != "margin" {
		t.Fatalf("注释应被忽略: %+v", doc.Sections)
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		`box {}`,
		`box "x" { size 1in }`,
		`box "x" { face front }`,
		`box "x" { margin: 1in`,
	} {
		if _, err := dsl.Parse(strings.NewReader(src)); err == nil {
			t.Fatalf("%q 应解析失败", src)
		}
	}
}
