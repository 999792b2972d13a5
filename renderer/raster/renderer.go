// Package raster 用 github.com/fogleman/gg 把纸盒刀版输出为 PNG 预览图。
package raster

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/tuckbox/renderer"
	"github.com/ByLCY/tuckbox/tuckbox"
)

// DefaultDPI 为未指定分辨率时的输出 DPI。
const DefaultDPI = 150

// Renderer 把每一面输出为一张 PNG。
type Renderer struct {
	dpi    float64
	logger *log.Logger
	fonts  *FontCache
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the PNG renderer.
type Options struct {
	BaseDir string
	DPI     float64
	Logger  *log.Logger
}

// NewRenderer 创建 PNG 渲染器。
func NewRenderer(opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Renderer{dpi: dpi, logger: logger, fonts: NewFontCache(opts.BaseDir, logger)}
}

func (r *Renderer) Ext() string { return "png" }

// Render 绘制并编码。双面模式输出 "-front"、"-back" 两张图。
func (r *Renderer) Render(opts tuckbox.Options) ([]renderer.Output, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	sides := renderer.Sides(opts)
	out := make([]renderer.Output, 0, len(sides))
	for _, side := range sides {
		data, err := r.render(side)
		if err != nil {
			return nil, err
		}
		suffix := ""
		if len(sides) > 1 {
			suffix = "-" + side.Side.String()
		}
		out = append(out, renderer.Output{Suffix: suffix, Data: data})
	}
	return out, nil
}

// RenderSide 只绘制 opts.Side 指定的一面，用于预览。
func (r *Renderer) RenderSide(opts tuckbox.Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return r.render(opts)
}

func (r *Renderer) render(side tuckbox.Options) ([]byte, error) {
	s := NewSurface(side.Page.Width, side.Page.Height, r.dpi/72, r.fonts)
	if err := tuckbox.Generate(s, side); err != nil {
		return nil, fmt.Errorf("绘制 %s 面失败: %w", side.Side, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.Image()); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	r.logger.Debug("位图完成", "side", side.Side, "bytes", buf.Len())
	return buf.Bytes(), nil
}
