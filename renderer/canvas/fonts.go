package canvasrenderer

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tdewolff/canvas"

	"github.com/ByLCY/tuckbox/fonts"
	"github.com/ByLCY/tuckbox/surface"
	"github.com/ByLCY/tuckbox/units"
)

// FontCache 按字体来源缓存 canvas.FontFamily，多页共用。
type FontCache struct {
	baseDir string
	logger  *log.Logger

	mu       sync.Mutex
	families map[string]*canvas.FontFamily
	fallback *canvas.FontFamily
}

// NewFontCache 创建字体缓存，baseDir 用于解析相对字体路径。
func NewFontCache(baseDir string, logger *log.Logger) *FontCache {
	if logger == nil {
		logger = log.Default()
	}
	return &FontCache{
		baseDir:  baseDir,
		logger:   logger,
		families: map[string]*canvas.FontFamily{},
	}
}

// Face 返回指定字体与颜色的字体面。字号按 pt×(72/25.4) 创建，使字体面的 mm 数值等于 pt，
// 页面内部统一以 pt 计算。
func (fc *FontCache) Face(spec surface.FontSpec, col color.Color) (*canvas.FontFace, error) {
	family, err := fc.family(spec)
	if err != nil {
		return nil, err
	}
	size := spec.Size
	if size <= 0 {
		size = 10
	}
	return family.Face(size*units.MmToPt, col, canvas.FontRegular, canvas.FontNormal), nil
}

func (fc *FontCache) family(spec surface.FontSpec) (*canvas.FontFamily, error) {
	data, key, err := fonts.Bytes(spec.Family, spec.Weight, fc.baseDir)

	fc.mu.Lock()
	defer fc.mu.Unlock()

	if err != nil {
		fc.logger.Warn("字体不可用，使用内置字体", "font", spec.Family, "err", err)
		return fc.fallbackFamily()
	}
	if family, ok := fc.families[key]; ok {
		return family, nil
	}
	family := canvas.NewFontFamily(key)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		fc.logger.Warn("加载字体失败，使用内置字体", "font", spec.Family, "err", err)
		return fc.fallbackFamily()
	}
	fc.families[key] = family
	return family, nil
}

func (fc *FontCache) fallbackFamily() (*canvas.FontFamily, error) {
	if fc.fallback != nil {
		return fc.fallback, nil
	}
	data, err := fonts.Load(fonts.Fallback)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("tuckbox-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载内置字体失败: %w", err)
	}
	fc.fallback = family
	return family, nil
}
