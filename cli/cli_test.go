package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestOutputName(t *testing.T) {
	cases := map[string]string{
		"Card Deck":       "card-deck-tuckbox.pdf",
		"  Hearts & Co. ": "hearts-co-tuckbox.pdf",
		"":                "tuckbox.pdf",
	}
	for title, want := range cases {
		if got := OutputName(title, "pdf"); got != want {
			t.Fatalf("OutputName(%q) = %q，期望 %q", title, got, want)
		}
	}
	if got := withSuffix("out/box.png", "-back"); got != "out/box-back.png" {
		t.Fatalf("withSuffix 错误: %s", got)
	}
}

func TestConvert(t *testing.T) {
	out, err := run(t, "convert", "2.25in", "pt")
	if err != nil || !strings.Contains(out, "162pt") {
		t.Fatalf("2.25in 应为 162pt: %q (err=%v)", out, err)
	}
	out, err = run(t, "convert", "300", "dots", "in")
	if err != nil || !strings.Contains(out, "1in") {
		t.Fatalf("300 dots 应为 1in: %q (err=%v)", out, err)
	}
	if _, err := run(t, "convert", "2furlong", "pt"); err == nil {
		t.Fatalf("未知单位应报错")
	}
}

func TestPaper(t *testing.T) {
	out, err := run(t, "paper", "--units", "pt")
	if err != nil {
		t.Fatalf("paper 失败: %v", err)
	}
	if !strings.Contains(out, "letter 792x612pt") || !strings.Contains(out, "a4") {
		t.Fatalf("缺少纸张信息: %s", out)
	}
}

func TestFaces(t *testing.T) {
	out, err := run(t, "faces", "--units", "pt")
	if err != nil {
		t.Fatalf("faces 失败: %v", err)
	}
	for _, face := range []string{"front", "back", "top", "bottom", "left", "right"} {
		if !strings.Contains(out, face) {
			t.Fatalf("缺少面 %s: %s", face, out)
		}
	}
}

func TestRenderWritesFiles(t *testing.T) {
	dir := t.TempDir()
	src := "box \"My Deck\" {\n  size: 2in 3in 0.5in\n  face front { text: \"${title} ${missing}\" }\n}\n"
	path := filepath.Join(dir, "deck.tuck")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	pdfPath := filepath.Join(dir, "out", "deck.pdf")
	out, err := run(t, "render", path, "--out", pdfPath, "--debug", filepath.Join(dir, "debug", "deck.json"))
	if err != nil {
		t.Fatalf("render 失败: %v", err)
	}
	if !strings.Contains(out, "${missing}") {
		t.Fatalf("应提示无法解析的占位符: %s", out)
	}
	data, err := os.ReadFile(pdfPath)
	if err != nil || !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("PDF 未写出: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "debug", "deck.json")); err != nil {
		t.Fatalf("调试 JSON 未写出: %v", err)
	}

	pngPath := filepath.Join(dir, "deck.png")
	if _, err := run(t, "render", path, "-f", "png", "--mode", "two-sided", "--scale", "36", "-o", pngPath); err != nil {
		t.Fatalf("render png 失败: %v", err)
	}
	for _, name := range []string{"deck-front.png", "deck-back.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("缺少 %s: %v", name, err)
		}
	}

	if _, err := run(t, "render", path, "-f", "svg", "-o", filepath.Join(dir, "x.svg")); err == nil {
		t.Fatalf("不支持的格式应报错")
	}
}
