package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体使用 Go 字体族，按名称索引。
var builtin = map[string][]byte{
	"Go-Regular":    goregular.TTF,
	"Go-Medium":     gomedium.TTF,
	"Go-Bold":       gobold.TTF,
	"Go-Italic":     goitalic.TTF,
	"Go-BoldItalic": gobolditalic.TTF,
	"Go-Mono":       gomono.TTF,
	"Go-Mono-Bold":  gomonobold.TTF,
}

// Fallback 为找不到匹配字体时使用的名称。
const Fallback = "Go-Regular"

// Load 返回内置字体的字节数据，path 可写为 "embed:Go-Bold.ttf" 或直接 "Go-Bold"。
func Load(path string) ([]byte, error) {
	name := strings.TrimPrefix(path, "embed:")
	name = strings.TrimSuffix(name, ".ttf")
	data, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 不存在", path)
	}
	return data, nil
}

// Names 返回全部内置字体名称。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve 把 CSS 风格的字族与字重映射到内置字体：等宽字族映射到 Go-Mono，其余都映射到比例字体；
// 字重 ≥600 为粗体，500 为中粗。
func Resolve(family string, weight int) string {
	f := strings.ToLower(family)
	italic := strings.Contains(f, "italic") || strings.Contains(f, "oblique")
	bold := weight >= 600 || strings.Contains(f, "bold")
	if strings.Contains(f, "mono") || strings.Contains(f, "courier") {
		if bold {
			return "Go-Mono-Bold"
		}
		return "Go-Mono"
	}
	switch {
	case bold && italic:
		return "Go-BoldItalic"
	case bold:
		return "Go-Bold"
	case italic:
		return "Go-Italic"
	case weight == 500:
		return "Go-Medium"
	}
	return Fallback
}
