package config

import (
	"fmt"
	"strings"

	"github.com/ByLCY/tuckbox/dsl"
)

// apply 把 .tuck 文档写入 b，只覆盖文档中出现的字段。
func (b *Box) apply(doc *dsl.Document) error {
	if doc.Name != "" {
		b.Title = string(doc.Name)
	}
	for _, sec := range doc.Sections {
		var err error
		switch {
		case sec.Meta != nil:
			err = b.applyMeta(sec.Meta.Block)
		case sec.Font != nil:
			err = b.applyFont(sec.Font)
		case sec.Face != nil:
			err = b.applyFace(sec.Face)
		case sec.Instructions != nil:
			b.Instructions = strings.Join(sec.Instructions.Block.Lines(), "\n")
		case sec.Setting != nil:
			err = b.applySetting(sec.Setting)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func invalid(a *dsl.Assignment, format string, args ...any) error {
	return fmt.Errorf("%w: 第 %d 行 %s: %s", ErrInvalidBox, a.Pos.Line, a.Key, fmt.Sprintf(format, args...))
}

func want(a *dsl.Assignment, min, max int) error {
	if n := len(a.Values); n < min || n > max {
		return invalid(a, "需要 %d 到 %d 个值，实际 %d 个", min, max, n)
	}
	return nil
}

func (b *Box) applySetting(a *dsl.Assignment) error {
	v := a.Texts()
	single := map[string]*string{
		"title":       &b.Title,
		"author":      &b.Author,
		"units":       &b.Units,
		"paper":       &b.Paper,
		"orientation": &b.Orientation,
		"style":       &b.Style,
		"mode":        &b.Mode,
		"side":        &b.Side,
		"background":  &b.Background,
	}
	lengths := map[string]*Length{
		"width":     &b.Width,
		"height":    &b.Height,
		"depth":     &b.Depth,
		"bleed":     &b.Bleed,
		"safe":      &b.Safe,
		"margin":    &b.Margin,
		"thickness": &b.Thickness,
	}
	if dst, ok := single[a.Key]; ok {
		if err := want(a, 1, 1); err != nil {
			return err
		}
		*dst = v[0]
		return nil
	}
	if dst, ok := lengths[a.Key]; ok {
		if err := want(a, 1, 1); err != nil {
			return err
		}
		*dst = Length(v[0])
		return nil
	}
	switch a.Key {
	case "size":
		if err := want(a, 3, 3); err != nil {
			return err
		}
		b.Width, b.Height, b.Depth = Length(v[0]), Length(v[1]), Length(v[2])
	case "page":
		if err := want(a, 1, 2); err != nil {
			return err
		}
		b.Paper = v[0]
		if len(v) == 2 {
			b.Orientation = v[1]
		}
	default:
		return invalid(a, "未知设置")
	}
	return nil
}

func (b *Box) applyMeta(block *dsl.Block) error {
	for key, a := range block.Assignments() {
		switch key {
		case "title":
			b.Title = a.Joined()
		case "author":
			b.Author = a.Joined()
		default:
			if b.Meta == nil {
				b.Meta = map[string]string{}
			}
			b.Meta[key] = a.Joined()
		}
	}
	return nil
}

func (b *Box) applyFont(sec *dsl.FontSection) error {
	font := b.Fonts[sec.Name]
	for key, a := range sec.Block.Assignments() {
		v := a.Texts()
		switch key {
		case "family":
			font.Family = a.Joined()
		case "size":
			if err := want(a, 1, 1); err != nil {
				return err
			}
			font.Size = Length(v[0])
		case "weight":
			if err := want(a, 1, 1); err != nil {
				return err
			}
			w, err := parseWeight(v[0])
			if err != nil {
				return invalid(a, "%v", err)
			}
			font.Weight = w
		case "color":
			if err := want(a, 1, 1); err != nil {
				return err
			}
			font.Color = v[0]
		case "outline":
			if err := want(a, 1, 2); err != nil {
				return err
			}
			font.Outline = v[0]
			if len(v) == 2 {
				font.OutlineWidth = Length(v[1])
			}
		default:
			return invalid(a, "未知字体属性")
		}
	}
	if b.Fonts == nil {
		b.Fonts = map[string]Font{}
	}
	b.Fonts[sec.Name] = font
	return nil
}

func (b *Box) applyFace(sec *dsl.FaceSection) error {
	if b.Faces == nil {
		b.Faces = map[string]Face{}
	}
	if sec.SameAs != "" {
		b.Faces[sec.Name] = Face{SameAs: sec.SameAs}
		return nil
	}
	face := b.Faces[sec.Name]
	for key, a := range sec.Block.Assignments() {
		switch key {
		case "text":
			face.Text = strings.Join(a.Texts(), "\n")
		case "font":
			face.Font = a.Joined()
		case "image":
			face.Image = a.Joined()
		default:
			return invalid(a, "未知面属性")
		}
	}
	b.Faces[sec.Name] = face
	return nil
}
