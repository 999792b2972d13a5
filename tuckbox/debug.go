package tuckbox

import (
	"encoding/json"
	"os"

	"github.com/ByLCY/tuckbox/compose"
	"github.com/ByLCY/tuckbox/dieline"
	"github.com/ByLCY/tuckbox/textlayout"
)

// FaceDebug 记录某个面的可印刷尺寸、图片摆放与标签锚点。
type FaceDebug struct {
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	Placement compose.Placement `json:"placement"`
	Anchor    textlayout.Anchor `json:"anchor"`
	Text      string            `json:"text,omitempty"`
	HasImage  bool              `json:"hasImage"`
}

// DebugInfo 是一次生成的几何摘要，单位 pt。
type DebugInfo struct {
	Mode         Mode                       `json:"mode"`
	Side         Side                       `json:"side"`
	Style        dieline.Style              `json:"style"`
	Page         Page                       `json:"page"`
	Layout       dieline.Layout             `json:"layout"`
	Outline      dieline.Rect               `json:"outline"`
	Faces        map[dieline.Face]FaceDebug `json:"faces"`
	GlueFlaps    []dieline.GlueFlap         `json:"glueFlaps"`
	Design       bool                       `json:"design"`
	Instructions bool                       `json:"instructions"`
}

// Debug 计算与 Generate 相同的几何信息，但不绘制。
func Debug(opts Options) (*DebugInfo, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	tracer, err := dieline.TracerFor(opts.Style)
	if err != nil {
		return nil, err
	}
	l := opts.Layout()
	info := &DebugInfo{
		Mode:         opts.Mode,
		Side:         opts.Side,
		Style:        opts.Style,
		Page:         opts.Page,
		Layout:       l,
		Outline:      tracer.Outline(l).Bounds(),
		Faces:        map[dieline.Face]FaceDebug{},
		GlueFlaps:    tracer.GlueFlaps(l),
		Design:       opts.HasDesign(),
		Instructions: opts.HasInstructions(),
	}
	anchors := textlayout.Anchors(l)
	for _, p := range compose.Panels(l) {
		w, h, err := dieline.FaceDimensions(p.Face, opts.Size, opts.Thickness, opts.Safe)
		if err != nil {
			return nil, err
		}
		panel := opts.Faces[p.Face]
		info.Faces[p.Face] = FaceDebug{
			Width:     w,
			Height:    h,
			Placement: p,
			Anchor:    anchors[p.Face],
			Text:      panel.Text,
			HasImage:  panel.Image != nil,
		}
	}
	return info, nil
}

// WriteDebugJSON 将几何摘要输出为 JSON，便于调试或可视化。
func WriteDebugJSON(info *DebugInfo, path string) error {
	if info == nil {
		return nil
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
