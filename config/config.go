// Package config 读取纸盒描述文件（.tuck 或 .toml），并解析为生成参数。
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ByLCY/tuckbox/dsl"
)

// ErrInvalidBox 表示描述文件内容不合法。
var ErrInvalidBox = errors.New("config: invalid box description")

// Length 保留文件中书写的长度（如 "2.25in"），解析时才换算为 pt；裸数字使用 Box.Units。
type Length string

// UnmarshalTOML 接受字符串或数字。
func (l *Length) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*l = Length(x)
	case int64:
		*l = Length(strconv.FormatInt(x, 10))
	case float64:
		*l = Length(strconv.FormatFloat(x, 'g', -1, 64))
	default:
		return fmt.Errorf("%w: 无法作为长度: %v", ErrInvalidBox, v)
	}
	return nil
}

// Font 为具名字体。
type Font struct {
	Family       string `toml:"family"`
	Size         Length `toml:"size"`
	Weight       int    `toml:"weight"`
	Color        string `toml:"color"`
	Outline      string `toml:"outline"`
	OutlineWidth Length `toml:"outline_width"`
}

// Face 为某个面的内容。SameAs 非空时复制该面的全部内容。
type Face struct {
	Text   string `toml:"text"`
	Font   string `toml:"font"`
	Image  string `toml:"image"`
	SameAs string `toml:"same_as"`
}

// Box 是描述文件解码后的结构，字段均为文件中的原始写法。
type Box struct {
	Title        string            `toml:"title"`
	Author       string            `toml:"author"`
	Meta         map[string]string `toml:"meta"`
	Units        string            `toml:"units"`
	Width        Length            `toml:"width"`
	Height       Length            `toml:"height"`
	Depth        Length            `toml:"depth"`
	Paper        string            `toml:"paper"`
	Orientation  string            `toml:"orientation"`
	Style        string            `toml:"style"`
	Mode         string            `toml:"mode"`
	Side         string            `toml:"side"`
	Background   string            `toml:"background"`
	Bleed        Length            `toml:"bleed"`
	Safe         Length            `toml:"safe"`
	Margin       Length            `toml:"margin"`
	Thickness    Length            `toml:"thickness"`
	Fonts        map[string]Font   `toml:"fonts"`
	Faces        map[string]Face   `toml:"faces"`
	Instructions string            `toml:"instructions"`
}

// DefaultFont 为未指定字体的标签所用字体名。
const DefaultFont = "label"

// Default 返回默认纸盒：letter 横向，2.25×3.5×1in，正面标签 "Sample"。
func Default() *Box {
	return &Box{
		Title:       "Sample",
		Units:       "in",
		Width:       "2.25",
		Height:      "3.5",
		Depth:       "1.0",
		Paper:       "letter",
		Orientation: "landscape",
		Style:       "default",
		Mode:        "standard",
		Background:  "#ffffff",
		Bleed:       "0.12",
		Safe:        "0.12",
		Margin:      "0.25",
		Thickness:   "0.02",
		Fonts: map[string]Font{
			DefaultFont: {Family: "Times-Roman", Size: "18pt", Weight: 700, Color: "#000000"},
		},
		Faces: map[string]Face{
			"front": {Text: "Sample", Font: DefaultFont},
		},
	}
}

// Load 按扩展名读取描述文件，未写出的字段取 Default 的值；文件未描述任何面时使用默认正面标签。
func Load(path string) (*Box, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开描述文件 %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// Decode 解码 format（"tuck" 或 "toml"）格式的描述。
func Decode(r io.Reader, format string) (*Box, error) {
	box := Default()
	defaults := box.Faces
	box.Faces = nil
	switch format {
	case "toml":
		if _, err := toml.NewDecoder(r).Decode(box); err != nil {
			return nil, fmt.Errorf("解析 TOML 失败: %w", err)
		}
	case "tuck", "":
		doc, err := dsl.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("解析 DSL 失败: %w", err)
		}
		if err := box.apply(doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: 不支持的格式 %q", ErrInvalidBox, format)
	}
	if len(box.Faces) == 0 {
		box.Faces = defaults
	}
	return box, nil
}

// Data 返回标签插值使用的数据：title、author 与 meta 中的所有键。
func (b *Box) Data() map[string]any {
	data := map[string]any{"title": b.Title, "author": b.Author}
	for k, v := range b.Meta {
		data[k] = v
	}
	return data
}
