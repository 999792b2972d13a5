// Package server 提供纸盒描述文件的 HTTP 预览。
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ByLCY/tuckbox/config"
	"github.com/ByLCY/tuckbox/renderer"
	canvasrenderer "github.com/ByLCY/tuckbox/renderer/canvas"
	"github.com/ByLCY/tuckbox/renderer/raster"
	"github.com/ByLCY/tuckbox/tuckbox"
)

// Server 每次请求都重新读取描述文件，编辑后刷新即可看到结果。
type Server struct {
	router  chi.Router
	path    string
	baseDir string
	logger  *log.Logger
	pdf     renderer.Renderer
}

// New 创建服务，path 为纸盒描述文件。
func New(path string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	baseDir := filepath.Dir(path)
	s := &Server{
		router:  chi.NewRouter(),
		path:    path,
		baseDir: baseDir,
		logger:  logger,
		pdf:     canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{BaseDir: baseDir, Logger: logger}),
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLog)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.router.Get("/faces", s.handleFaces)
	s.router.Get("/preview.png", s.handlePreview)
	s.router.Get("/box.pdf", s.handlePDF)
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Job-Id", id)
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request", "job", id, "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "took", time.Since(start).Round(time.Millisecond))
	})
}

// load 读取描述文件并应用查询参数 mode、side。
func (s *Server) load(r *http.Request) (tuckbox.Options, error) {
	box, err := config.Load(s.path)
	if err != nil {
		return tuckbox.Options{}, err
	}
	q := r.URL.Query()
	if v := q.Get("mode"); v != "" {
		box.Mode = v
	}
	if v := q.Get("side"); v != "" {
		box.Side = v
	}
	return box.Resolve(s.baseDir)
}

func (s *Server) handleFaces(w http.ResponseWriter, r *http.Request) {
	opts, err := s.load(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	info, err := tuckbox.Debug(opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handlePreview 输出单张 PNG；双面模式按 side 参数选择一面。
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	opts, err := s.load(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	dpi := raster.DefaultDPI
	if v := r.URL.Query().Get("dpi"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 18 || n > 600 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "dpi 必须是 18 到 600 之间的整数"})
			return
		}
		dpi = n
	}
	png := raster.NewRenderer(raster.Options{BaseDir: s.baseDir, DPI: float64(dpi), Logger: s.logger})
	data, err := png.RenderSide(opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	opts, err := s.load(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	out, err := s.pdf.Render(opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Write(out[0].Data)
}

// fail 把描述文件错误映射为 400，其余为 500。
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, config.ErrInvalidBox) || errors.Is(err, tuckbox.ErrInvalidOptions) ||
		errors.Is(err, tuckbox.ErrInvalidMode) || errors.Is(err, tuckbox.ErrInvalidSide) {
		status = http.StatusBadRequest
	}
	s.logger.Error("render failed", "err", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
