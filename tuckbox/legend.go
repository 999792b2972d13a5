package tuckbox

import (
	"math"

	"github.com/ByLCY/tuckbox/dieline"
	"github.com/ByLCY/tuckbox/rgb"
	"github.com/ByLCY/tuckbox/surface"
	"github.com/ByLCY/tuckbox/textlayout"
)

// 说明文字放在右侧时至少需要的宽度（1in）。
const minInstructionsWidth = 72.0

var legendFont = textlayout.Font{Family: "Helvetica", Size: 8, Weight: 700}

var instructionsFont = textlayout.Font{Family: "Helvetica", Size: 9, Weight: 400, Color: rgb.Black}

var defaultInstructions = map[dieline.Style]string{
	dieline.StyleDefault: "Assembly\n" +
		"1. Cut along the solid outline and the short inner cut lines.\n" +
		"2. Crease every dashed score line and fold it inward.\n" +
		"3. Glue flap A to the inside of the left side panel.\n" +
		"4. Glue flap B to the inside of the bottom flap.\n" +
		"5. Insert the deck and close the top tuck flap.",
	dieline.StyleDoubleTuck: "Assembly\n" +
		"1. Cut along the solid outline and the short inner cut lines.\n" +
		"2. Crease every dashed score line and fold it inward.\n" +
		"3. Glue flap A to the inside of the left side panel.\n" +
		"4. Insert the deck and close both tuck flaps.",
}

// Instructions 返回某个盒型的内置组装说明。
func Instructions(style dieline.Style) string {
	return defaultInstructions[style]
}

// drawLegend 设计面在粘合翼上标注 "Glue Here"；双面背面改为在正面对应的粘合面上标注 "Side"。
func drawLegend(s surface.Surface, fr frame, flaps []dieline.GlueFlap, back bool, cut, score rgb.RGB) {
	for _, flap := range flaps {
		rect, text := flap.Flap, "Glue Here ("+flap.Label+")"
		if back {
			rect, text = flap.Mate, "Side ("+flap.Label+")"
		}
		legendRect(s, fr, rect, score)
		legendLabel(s, fr, rect, flap.Angle, text, cut)
	}
}

func legendRect(s surface.Surface, fr frame, r dieline.Rect, c rgb.RGB) {
	inset := math.Min(r.Width, r.Height) * 0.1
	s.Save()
	defer s.Restore()
	fr.apply(s)
	s.BeginPath()
	s.MoveTo(r.X+inset, r.Y+inset)
	s.LineTo(r.Right()-inset, r.Y+inset)
	s.LineTo(r.Right()-inset, r.Bottom()-inset)
	s.LineTo(r.X+inset, r.Bottom()-inset)
	s.ClosePath()
	s.SetLineDash(nil)
	s.SetLineWidth(0.5)
	s.SetStrokeColor(c.Color())
	s.Stroke()
}

func legendLabel(s surface.Surface, fr frame, r dieline.Rect, angle float64, text string, c rgb.RGB) {
	s.Save()
	defer s.Restore()
	s.SetTextAlign(surface.AlignCenter)
	s.SetTextBaseline(surface.BaselineMiddle)

	font := legendFont
	font.Color = c
	short := math.Min(r.Width, r.Height)
	font.Size = math.Min(font.Size, short*0.4)
	long := r.Width
	if angle != 0 {
		long = r.Height
	}
	x, y := r.Center()
	textlayout.WriteCenterAngle(s, text, font, fr.x(x), y, angle, long*0.9)
}

// drawInstructions 把说明放在展开图右侧；右侧不足 1in 时放到展开图下方。
func drawInstructions(s surface.Surface, fr frame, opts Options, bounds dieline.Rect) {
	text := opts.Instructions
	if text == "" {
		text = Instructions(opts.Style)
	}
	if text == "" {
		return
	}

	x := bounds.Right() + opts.Margin
	y := bounds.Y + opts.Margin
	maxWidth := opts.Page.Width - x - opts.Margin
	if maxWidth < minInstructionsWidth {
		x = bounds.X
		y = bounds.Bottom() + opts.Margin
		maxWidth = bounds.Width
	}

	s.Save()
	defer s.Restore()
	s.SetTextAlign(fr.align(surface.AlignLeft))
	s.SetTextBaseline(surface.BaselineTop)
	textlayout.WriteLine(s, text, instructionsFont, fr.x(x), y, maxWidth)
}
