package elements

import (
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/style"
)

// Break 是按行数计的垂直空白，行高取自生效样式。
// 空白会被页底截断，不跨页延续。
type Break struct {
	lines float64
}

// NewBreak 创建 lines 行高度的空白（允许小数行）。
func NewBreak(lines float64) *Break {
	return &Break{lines: lines}
}

// Render 实现 layout.Element。
func (b *Break) Render(ctx *layout.Context, area layout.Area, st style.Style) (layout.RenderResult, error) {
	if b.lines <= 0 {
		return layout.Complete(layout.Size{}), nil
	}
	h := b.lines * st.LineHeight()
	if h > area.Remaining() {
		h = area.Remaining()
	}
	return layout.Complete(layout.Size{Height: h}), nil
}

// PageBreak 强制其后的内容从新的一页开始：它消耗当前区域的全部剩余高度。
// 置于页首时会产生一个空页。
type PageBreak struct{}

// NewPageBreak 创建强制分页元素。
func NewPageBreak() *PageBreak { return &PageBreak{} }

// Render 实现 layout.Element。
func (p *PageBreak) Render(ctx *layout.Context, area layout.Area, st style.Style) (layout.RenderResult, error) {
	return layout.Complete(layout.Size{Height: area.Remaining()}), nil
}
