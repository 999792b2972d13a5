// Package tuckbox 按渲染模式与纸面组合生成纸盒刀版：背景、图片、标签、外轮廓、切线、压痕、
// 粘合翼标注与组装说明。
package tuckbox

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/ByLCY/tuckbox/dieline"
	"github.com/ByLCY/tuckbox/rgb"
	"github.com/ByLCY/tuckbox/textlayout"
)

var (
	// ErrInvalidMode 表示未知的渲染模式。
	ErrInvalidMode = errors.New("tuckbox: invalid mode")
	// ErrInvalidSide 表示未知的纸面。
	ErrInvalidSide = errors.New("tuckbox: invalid side")
	// ErrInvalidOptions 表示尺寸等参数不合法。
	ErrInvalidOptions = errors.New("tuckbox: invalid options")
)

// Mode 为渲染模式。
type Mode int

const (
	// ModeStandard 单面打印：设计、刀线、标注与说明都在同一页。
	ModeStandard Mode = iota
	// ModePretty 预览成品效果：图片裁剪到外轮廓内，不描外轮廓，不画标注。
	ModePretty
	// ModeTwoSided 双面打印，每一面调用一次。
	ModeTwoSided
)

func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModePretty:
		return "pretty"
	case ModeTwoSided:
		return "two-sided"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode 解析渲染模式，空字符串视为 standard。
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "print":
		return ModeStandard, nil
	case "pretty":
		return ModePretty, nil
	case "two-sided", "twosided", "duplex":
		return ModeTwoSided, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Side 为双面打印时的纸面。
type Side int

const (
	SideFront Side = iota
	SideBack
)

func (s Side) String() string {
	switch s {
	case SideFront:
		return "front"
	case SideBack:
		return "back"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ParseSide 解析纸面，空字符串视为 front。
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "front":
		return SideFront, nil
	case "back":
		return SideBack, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSide, s)
}

// Panel 是某个面的内容。Text 为空或 Font 为 nil 时不画文字，Image 为 nil 时不画图片。
type Panel struct {
	Text  string
	Font  *textlayout.Font
	Image image.Image
}

// Page 为页面尺寸（pt）。
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Options 汇总一次生成所需的全部输入，生成期间只读。长度单位均为 pt。
type Options struct {
	Size       dieline.Size
	Page       Page
	Style      dieline.Style
	Background rgb.RGB
	Bleed      float64
	Safe       float64
	Margin     float64
	Thickness  float64
	Mode       Mode
	Side       Side
	Faces      map[dieline.Face]Panel
	// Instructions 覆盖内置的组装说明，为空时按盒型使用默认文本。
	Instructions string
}

// Validate 在绘制之前检查枚举值与尺寸。
func (o Options) Validate() error {
	if o.Mode < ModeStandard || o.Mode > ModeTwoSided {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(o.Mode))
	}
	if o.Side != SideFront && o.Side != SideBack {
		return fmt.Errorf("%w: %d", ErrInvalidSide, int(o.Side))
	}
	if _, err := dieline.TracerFor(o.Style); err != nil {
		return err
	}
	for face := range o.Faces {
		if !face.Valid() {
			return fmt.Errorf("%w: %d", dieline.ErrInvalidFace, int(face))
		}
	}
	if o.Size.Width <= 0 || o.Size.Height <= 0 || o.Size.Depth <= 0 {
		return fmt.Errorf("%w: 盒子尺寸必须为正数 (%gx%gx%g)", ErrInvalidOptions, o.Size.Width, o.Size.Height, o.Size.Depth)
	}
	if o.Bleed < 0 || o.Safe < 0 || o.Margin < 0 || o.Thickness < 0 {
		return fmt.Errorf("%w: bleed/safe/margin/thickness 不能为负数", ErrInvalidOptions)
	}
	if o.Page.Width <= 0 || o.Page.Height <= 0 {
		return fmt.Errorf("%w: 页面尺寸必须为正数", ErrInvalidOptions)
	}
	return nil
}

// Layout 计算本次生成使用的面板位置。
func (o Options) Layout() dieline.Layout {
	return dieline.NewLayout(o.Size, o.Thickness, o.Margin)
}

// HasDesign 表示本次调用是否绘制背景、图片与文字。
func (o Options) HasDesign() bool {
	return o.Mode != ModeTwoSided || o.Side == SideFront
}

// HasInstructions 表示本次调用是否绘制组装说明。
func (o Options) HasInstructions() bool {
	return o.Mode == ModeStandard || (o.Mode == ModeTwoSided && o.Side == SideBack)
}

// Mirrored 表示双面模式的背面，需要沿页面竖直中线镜像。
func (o Options) Mirrored() bool {
	return o.Mode == ModeTwoSided && o.Side == SideBack
}

// WithSide 返回只修改纸面的副本，用于双面模式的两次调用。
func (o Options) WithSide(side Side) Options {
	o.Side = side
	return o
}

func (o Options) images() map[dieline.Face]image.Image {
	out := map[dieline.Face]image.Image{}
	for face, p := range o.Faces {
		if p.Image != nil {
			out[face] = p.Image
		}
	}
	return out
}
