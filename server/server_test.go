package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/tuckbox/config"
	"github.com/ByLCY/tuckbox/renderer/raster"
)

const box = `box "Preview" {
  size: 2in 3in 0.75in
  mode: two-sided
  face front { text: "${title}" }
}
`

func newTestServer(t *testing.T, src string) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "box.tuck")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return New(path, log.New(&bytes.Buffer{}))
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestFaces(t *testing.T) {
	rec := get(newTestServer(t, box), "/faces")
	if rec.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d: %s", rec.Code, rec.Body)
	}
	var info struct {
		Mode  string                    `json:"mode"`
		Faces map[string]map[string]any `json:"faces"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("JSON 解析失败: %v", err)
	}
	if info.Mode != "two-sided" || len(info.Faces) != 6 {
		t.Fatalf("面信息错误: %+v", info)
	}
	if info.Faces["front"]["text"] != "Preview" {
		t.Fatalf("正面文字应已插值: %v", info.Faces["front"])
	}
	if rec.Header().Get("X-Job-Id") == "" {
		t.Fatalf("响应应带 X-Job-Id")
	}
}

func TestPreviewAndPDF(t *testing.T) {
	s := newTestServer(t, box)
	for _, target := range []string{"/preview.png?dpi=36", "/preview.png?dpi=36&side=back"} {
		rec := get(s, target)
		if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
			t.Fatalf("%s 期望 PNG，实际 %d %s", target, rec.Code, rec.Body)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
			t.Fatalf("%s 输出不是 PNG", target)
		}
	}
	rec := get(s, "/box.pdf?mode=standard")
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("期望 PDF，实际 %d", rec.Code)
	}
}

func TestPreviewRendersRequestedSide(t *testing.T) {
	s := newTestServer(t, box)
	front := get(s, "/preview.png?dpi=36").Body.Bytes()
	back := get(s, "/preview.png?dpi=36&side=back").Body.Bytes()
	if bytes.Equal(front, back) {
		t.Fatalf("双面模式下正反面预览应不同")
	}

	b, err := config.Load(s.path)
	if err != nil {
		t.Fatal(err)
	}
	b.Side = "back"
	opts, err := b.Resolve(s.baseDir)
	if err != nil {
		t.Fatal(err)
	}
	want, err := raster.NewRenderer(raster.Options{BaseDir: s.baseDir, DPI: 36}).RenderSide(opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, want) {
		t.Fatalf("side=back 预览应等于单独绘制背面的结果")
	}
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t, box)
	for _, target := range []string{"/preview.png?dpi=abc", "/faces?mode=sideways", "/box.pdf?side=middle"} {
		if rec := get(s, target); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s 期望 400，实际 %d", target, rec.Code)
		}
	}
	broken := newTestServer(t, `box "x" { width: 0in }`)
	if rec := get(broken, "/faces"); rec.Code != http.StatusBadRequest {
		t.Fatalf("非法尺寸应返回 400，实际 %d", rec.Code)
	}
}
