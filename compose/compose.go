// Package compose 把每个面的图片按展开图的方向放到对应面板上。
package compose

import (
	"image"
	"math"

	"github.com/ByLCY/tuckbox/dieline"
	"github.com/ByLCY/tuckbox/surface"
)

// Placement 是某个面的图片原点、旋转角与面板尺寸（旋转后的局部坐标系）。
type Placement struct {
	Face   dieline.Face `json:"face"`
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Angle  float64      `json:"angle"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
}

// Panels 返回六个面的摆放方式：正反面不旋转；顶盖倒置贴在正面上沿；底部正置贴在正面下沿；
// 左侧面旋转 90°，右侧面以背面左下角为原点旋转 270°。
func Panels(l dieline.Layout) []Placement {
	f, b, d := l.Front, l.Back, l.Size.Depth
	return []Placement{
		{Face: dieline.Front, X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
		{Face: dieline.Back, X: b.X, Y: b.Y, Width: b.Width, Height: b.Height},
		{Face: dieline.Top, X: f.Right(), Y: f.Y, Angle: math.Pi, Width: f.Width, Height: d},
		{Face: dieline.Bottom, X: f.X, Y: f.Bottom(), Width: f.Width, Height: d},
		{Face: dieline.Left, X: f.X, Y: f.Y, Angle: math.Pi * 0.5, Width: f.Height, Height: d},
		{Face: dieline.Right, X: b.X - d, Y: b.Bottom(), Angle: math.Pi * 1.5, Width: b.Height, Height: d},
	}
}

// Draw 绘制所有有图片的面。安全边距是旋转后局部坐标系中的内缩量，因此在旋转之后平移。
// clip 不为 nil 时整组图片裁剪到该路径内；没有任何图片时不产生绘图调用。
func Draw(s surface.Surface, l dieline.Layout, images map[dieline.Face]image.Image, safe float64, clip *dieline.Path) {
	if len(images) == 0 {
		return
	}
	s.Save()
	defer s.Restore()

	if clip != nil {
		s.BeginPath()
		clip.Trace(s)
		s.Clip()
	}
	for _, p := range Panels(l) {
		img := images[p.Face]
		if img == nil {
			continue
		}
		drawPanel(s, p, img, safe)
	}
}

func drawPanel(s surface.Surface, p Placement, img image.Image, safe float64) {
	s.Save()
	defer s.Restore()
	s.Translate(p.X, p.Y)
	if p.Angle != 0 {
		s.Rotate(p.Angle)
	}
	s.Translate(safe, safe)
	s.DrawImage(img, 0, 0, p.Width-2*safe, p.Height-2*safe)
}
