package raster

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/ByLCY/tuckbox/fonts"
	"github.com/ByLCY/tuckbox/surface"
)

type faceKey struct {
	key  string
	size float64
}

// FontCache 缓存解析后的 OpenType 字体与各字号的字体面。
type FontCache struct {
	baseDir string
	logger  *log.Logger

	mu    sync.Mutex
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

// NewFontCache 创建字体缓存。
func NewFontCache(baseDir string, logger *log.Logger) *FontCache {
	if logger == nil {
		logger = log.Default()
	}
	return &FontCache{
		baseDir: baseDir,
		logger:  logger,
		fonts:   map[string]*opentype.Font{},
		faces:   map[faceKey]font.Face{},
	}
}

// Face 返回字号以 pt 计的字体面（72 DPI，1 单位 = 1pt）。
func (fc *FontCache) Face(spec surface.FontSpec) (font.Face, error) {
	size := spec.Size
	if size <= 0 {
		size = 10
	}
	data, key, err := fonts.Bytes(spec.Family, spec.Weight, fc.baseDir)
	if err != nil {
		fc.logger.Warn("字体不可用，使用内置字体", "font", spec.Family, "err", err)
		if data, err = fonts.Load(fonts.Fallback); err != nil {
			return nil, err
		}
		key = fonts.Fallback
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	if face, ok := fc.faces[faceKey{key, size}]; ok {
		return face, nil
	}
	f, ok := fc.fonts[key]
	if !ok {
		if f, err = opentype.Parse(data); err != nil {
			return nil, fmt.Errorf("解析字体 %s 失败: %w", key, err)
		}
		fc.fonts[key] = f
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("创建字体面 %s 失败: %w", key, err)
	}
	fc.faces[faceKey{key, size}] = face
	return face, nil
}
