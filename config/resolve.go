package config

import (
	"fmt"
	"image"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ByLCY/tuckbox/binding"
	"github.com/ByLCY/tuckbox/dieline"
	"github.com/ByLCY/tuckbox/paper"
	"github.com/ByLCY/tuckbox/rgb"
	"github.com/ByLCY/tuckbox/textlayout"
	"github.com/ByLCY/tuckbox/tuckbox"
	"github.com/ByLCY/tuckbox/units"
)

var weights = map[string]int{
	"thin": 100, "light": 300, "normal": 400, "regular": 400,
	"medium": 500, "semibold": 600, "bold": 700, "black": 900,
}

func parseWeight(s string) (int, error) {
	if w, ok := weights[strings.ToLower(s)]; ok {
		return w, nil
	}
	w, err := strconv.Atoi(s)
	if err != nil || w < 1 || w > 1000 {
		return 0, fmt.Errorf("无效的字重 %q", s)
	}
	return w, nil
}

// Unit 返回裸数字使用的单位，未指定时为英寸。
func (b *Box) Unit() (units.Unit, error) {
	if b.Units == "" {
		return units.Inch, nil
	}
	return units.Parse(b.Units)
}

// Points 把长度换算为 pt，空值为 0。
func (b *Box) Points(l Length) (float64, error) {
	if strings.TrimSpace(string(l)) == "" {
		return 0, nil
	}
	u, err := b.Unit()
	if err != nil {
		return 0, err
	}
	parsed, err := units.ParseLength(string(l), u)
	if err != nil {
		return 0, err
	}
	return parsed.Points()
}

// fontPoints 解析字号与描边宽度，裸数字按 pt 计，不受 units 影响。
func fontPoints(l Length) (float64, error) {
	if strings.TrimSpace(string(l)) == "" {
		return 0, nil
	}
	parsed, err := units.ParseLength(string(l), units.Point)
	if err != nil {
		return 0, err
	}
	return parsed.Points()
}

// PaperSize 返回以 pt 计的页面尺寸，方向默认为横向。
func (b *Box) PaperSize() (paper.Paper, error) {
	o := paper.Landscape
	if b.Orientation != "" {
		var err error
		if o, err = paper.ParseOrientation(b.Orientation); err != nil {
			return paper.Paper{}, err
		}
	}
	return paper.Size(b.Paper, units.Point, o)
}

// ResolveFaces 展开 same-as 并校验面名。same-as 只允许指向内容面，不允许链式引用。
func (b *Box) ResolveFaces() (map[dieline.Face]Face, error) {
	out := map[dieline.Face]Face{}
	for name, f := range b.Faces {
		face, err := dieline.ParseFace(name)
		if err != nil {
			return nil, err
		}
		if f.SameAs != "" {
			src, ok := b.Faces[f.SameAs]
			if _, err := dieline.ParseFace(f.SameAs); err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("%w: %s 引用了未描述的面 %s", ErrInvalidBox, name, f.SameAs)
			}
			if src.SameAs != "" {
				return nil, fmt.Errorf("%w: %s 引用的面 %s 本身也是引用", ErrInvalidBox, name, f.SameAs)
			}
			f = src
		}
		out[face] = f
	}
	return out, nil
}

// Unresolved 返回标签文字中无法插值的占位符。
func (b *Box) Unresolved() []string {
	var out []string
	data := b.Data()
	for _, f := range b.Faces {
		out = append(out, binding.Missing(f.Text, data)...)
	}
	return out
}

func (b *Box) font(name string) (*textlayout.Font, error) {
	if name == "" {
		name = DefaultFont
	}
	f, ok := b.Fonts[name]
	if !ok {
		return nil, fmt.Errorf("%w: 未定义字体 %s", ErrInvalidBox, name)
	}
	size, err := fontPoints(f.Size)
	if err != nil {
		return nil, fmt.Errorf("字体 %s 字号: %w", name, err)
	}
	if size <= 0 {
		size = 18
	}
	width, err := fontPoints(f.OutlineWidth)
	if err != nil {
		return nil, fmt.Errorf("字体 %s 描边宽度: %w", name, err)
	}
	out := &textlayout.Font{Family: f.Family, Size: size, Weight: f.Weight, Color: rgb.Black}
	if f.Color != "" {
		if out.Color, err = rgb.Parse(f.Color); err != nil {
			return nil, fmt.Errorf("字体 %s 颜色: %w", name, err)
		}
	}
	if f.Outline != "" {
		if out.OutlineColor, err = rgb.Parse(f.Outline); err != nil {
			return nil, fmt.Errorf("字体 %s 描边颜色: %w", name, err)
		}
		if width <= 0 {
			width = 1
		}
		out.OutlineWidth = width
	}
	return out, nil
}

func loadImage(baseDir, path string) (image.Image, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", path, err)
	}
	return img, nil
}

// Resolve 换算单位、查找纸张、展开 same-as、加载图片并插值标签，得到生成参数。
// 相对图片路径以 baseDir 为根。
func (b *Box) Resolve(baseDir string) (tuckbox.Options, error) {
	var opts tuckbox.Options
	lengths := []struct {
		name string
		src  Length
		dst  *float64
	}{
		{"width", b.Width, &opts.Size.Width},
		{"height", b.Height, &opts.Size.Height},
		{"depth", b.Depth, &opts.Size.Depth},
		{"bleed", b.Bleed, &opts.Bleed},
		{"safe", b.Safe, &opts.Safe},
		{"margin", b.Margin, &opts.Margin},
		{"thickness", b.Thickness, &opts.Thickness},
	}
	for _, l := range lengths {
		v, err := b.Points(l.src)
		if err != nil {
			return opts, fmt.Errorf("%s: %w", l.name, err)
		}
		*l.dst = v
	}

	p, err := b.PaperSize()
	if err != nil {
		return opts, err
	}
	opts.Page = tuckbox.Page{Width: p.Width, Height: p.Height}

	if opts.Style, err = dieline.ParseStyle(b.Style); err != nil {
		return opts, err
	}
	if opts.Mode, err = tuckbox.ParseMode(b.Mode); err != nil {
		return opts, err
	}
	if opts.Side, err = tuckbox.ParseSide(b.Side); err != nil {
		return opts, err
	}
	opts.Background = rgb.White
	if b.Background != "" {
		if opts.Background, err = rgb.Parse(b.Background); err != nil {
			return opts, err
		}
	}
	opts.Instructions = b.Instructions

	faces, err := b.ResolveFaces()
	if err != nil {
		return opts, err
	}
	data := b.Data()
	images := map[string]image.Image{}
	opts.Faces = map[dieline.Face]tuckbox.Panel{}
	for face, f := range faces {
		var panel tuckbox.Panel
		if f.Text != "" {
			if panel.Font, err = b.font(f.Font); err != nil {
				return opts, err
			}
			panel.Text = binding.Interpolate(f.Text, data)
		}
		if f.Image != "" {
			img, ok := images[f.Image]
			if !ok {
				if img, err = loadImage(baseDir, f.Image); err != nil {
					return opts, err
				}
				images[f.Image] = img
			}
			panel.Image = img
		}
		opts.Faces[face] = panel
	}
	return opts, opts.Validate()
}
