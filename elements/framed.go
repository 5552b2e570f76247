package elements

import (
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/style"
)

// FramedElement 给内部元素画边框。跨页时断口两侧保持开放：
// 第一段只画顶边和两条侧边，中间段只画侧边，最后一段补上底边。
type FramedElement struct {
	child layout.Element
	line  style.LineStyle
	top   bool
}

// Framed 用默认或给定线型的边框包装一个元素。
func Framed(child layout.Element, line style.LineStyle) *FramedElement {
	return &FramedElement{child: child, line: line, top: true}
}

// Render 实现 layout.Element。
func (f *FramedElement) Render(ctx *layout.Context, area layout.Area, st style.Style) (layout.RenderResult, error) {
	res, err := f.child.Render(ctx, area.Free(), st)
	if err != nil {
		return layout.RenderResult{}, err
	}
	h := res.Size.Height
	w := area.Width()
	if h > 0 || res.Continuation == nil {
		if f.top {
			area.DrawLine(layout.Position{X: 0, Y: 0}, layout.Position{X: w, Y: 0}, f.line)
		}
		area.DrawLine(layout.Position{X: 0, Y: 0}, layout.Position{X: 0, Y: h}, f.line)
		area.DrawLine(layout.Position{X: w, Y: 0}, layout.Position{X: w, Y: h}, f.line)
		if res.Continuation == nil {
			area.DrawLine(layout.Position{X: 0, Y: h}, layout.Position{X: w, Y: h}, f.line)
		}
	}
	res.Size.Width = w
	if res.Continuation != nil {
		// 本页一无所画时顶边尚未落笔，继续体保留闭合的顶边。
		top := f.top && h <= 0
		res.Continuation = &FramedElement{child: res.Continuation, line: f.line, top: top}
	}
	return res, nil
}
