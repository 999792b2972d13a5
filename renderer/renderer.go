package renderer

import (
	"github.com/ByLCY/tuckbox/tuckbox"
)

// Output 是渲染产生的一个文件。Suffix 用于双面 PNG 区分 "-front"/"-back"，单文件时为空。
type Output struct {
	Suffix string
	Data   []byte
}

// Renderer 将一次纸盒生成输出为最终文件，例如 PDF 或 PNG。
type Renderer interface {
	// Ext 返回输出文件扩展名（不含点）。
	Ext() string
	Render(opts tuckbox.Options) ([]Output, error)
}

// Sides 返回需要生成的纸面：双面模式依次为正面与背面，其余模式原样返回。
func Sides(opts tuckbox.Options) []tuckbox.Options {
	if opts.Mode != tuckbox.ModeTwoSided {
		return []tuckbox.Options{opts}
	}
	return []tuckbox.Options{opts.WithSide(tuckbox.SideFront), opts.WithSide(tuckbox.SideBack)}
}
