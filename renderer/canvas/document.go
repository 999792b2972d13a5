// Package canvasrenderer 用 github.com/tdewolff/canvas 把纸盒刀版输出为 PDF。
package canvasrenderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/tuckbox/renderer"
	"github.com/ByLCY/tuckbox/tuckbox"
	"github.com/ByLCY/tuckbox/units"
)

const creator = "tuckbox"

// Renderer 把一次生成写成 PDF。双面模式下正反面各占一页。
type Renderer struct {
	title  string
	author string
	logger *log.Logger
	fonts  *FontCache
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the PDF renderer.
type Options struct {
	BaseDir string
	Logger  *log.Logger
	Title   string
	Author  string
}

// NewRenderer 创建 PDF 渲染器，字体相对路径以 baseDir 为根。
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions 按选项创建渲染器。
func NewRendererWithOptions(opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	title := opts.Title
	if title == "" {
		title = "Tuckbox"
	}
	return &Renderer{
		title:  title,
		author: opts.Author,
		logger: logger,
		fonts:  NewFontCache(opts.BaseDir, logger),
	}
}

func (r *Renderer) Ext() string { return "pdf" }

// Render 生成 PDF。返回单个无后缀的输出。
func (r *Renderer) Render(opts tuckbox.Options) ([]renderer.Output, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	wMM := opts.Page.Width * units.PtToMm
	hMM := opts.Page.Height * units.PtToMm
	job := uuid.New()

	var buf bytes.Buffer
	writer := pdf.New(&buf, wMM, hMM, nil)
	r.applyMeta(writer, opts, job)

	for i, side := range renderer.Sides(opts) {
		if i > 0 {
			writer.NewPage(wMM, hMM)
		}
		c := canvas.New(wMM, hMM)
		page := NewPage(c, opts.Page.Width, opts.Page.Height, r.fonts)
		if err := tuckbox.Generate(NewCompat(page), side); err != nil {
			return nil, fmt.Errorf("绘制第 %d 页失败: %w", i+1, err)
		}
		c.RenderTo(writer)
		r.logger.Debug("页面完成", "job", job, "page", i+1, "side", side.Side, "mode", side.Mode)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return []renderer.Output{{Data: buf.Bytes()}}, nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, opts tuckbox.Options, job uuid.UUID) {
	keywords := strings.Join([]string{
		"tuckbox",
		opts.Style.String(),
		opts.Mode.String(),
		"job:" + job.String(),
	}, ", ")
	subject := fmt.Sprintf("%gx%gx%g pt", opts.Size.Width, opts.Size.Height, opts.Size.Depth)
	writer.SetInfo(r.title, subject, keywords, r.author, creator)
}
