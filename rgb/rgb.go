// Package rgb 负责颜色字符串的解析与格式化，并根据背景亮度挑选刀线颜色。
package rgb

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor 表示无法识别的颜色字符串。
var ErrInvalidColor = errors.New("rgb: invalid color")

// RGB 是 0-255 的三通道颜色。
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	White = RGB{255, 255, 255}
	Black = RGB{0, 0, 0}

	lightScore = MustParse("#eeeeee")
	darkScore  = MustParse("#111111")
)

// Hex 返回 #rrggbb 形式。
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// CSS 返回 rgb(r, g, b) 形式。
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func (c RGB) String() string { return c.Hex() }

// Color 转为不透明的 color.NRGBA。
func (c RGB) Color() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// IsWhite 判断是否为纯白。
func (c RGB) IsWhite() bool { return c == White }

// Parse 支持 #rgb、#rrggbb 以及 rgb(r, g, b)。
func Parse(s string) (RGB, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		var out [3]uint8
		for i, part := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || v < 0 || v > 255 {
				return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			out[i] = uint8(v)
		}
		return RGB{out[0], out[1], out[2]}, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) == 4 {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// MustParse 用于常量颜色，解析失败时 panic。
func MustParse(s string) RGB {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Luminosity 估算感知亮度，白色约为 2.04，阈值 0.7 以下视为深色。
func Luminosity(c RGB) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 125
}

// Contrast 根据背景亮度返回切割线与压痕线的颜色。
func Contrast(bg RGB) (cut, score RGB) {
	if Luminosity(bg) < 0.7 {
		return White, lightScore
	}
	return Black, darkScore
}
