// Package elements 实现布局引擎的封闭元素集合：
// Text、Paragraph、Break、PageBreak、LinearLayout、TableLayout
// 以及 Styled/Framed/Padded 三种包装器。
// 所有元素的 Render 都遵循 layout.Element 的约定：
// 不修改自身，空间不足时返回纯数据的继续体。
package elements

import (
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/style"
)

// Text 是不折行的单行文本。宽度超出区域时照常绘制（由调用方保证合理），
// 高度不足一行时整体推迟到下一页。
type Text struct {
	content string
	style   style.Style
}

// NewText 创建单行文本元素。
func NewText(content string) *Text {
	return &Text{content: content}
}

// NewStyledText 创建带局部样式覆盖的单行文本元素。
func NewStyledText(content string, st style.Style) *Text {
	return &Text{content: content, style: st}
}

// Render 实现 layout.Element。
func (t *Text) Render(ctx *layout.Context, area layout.Area, st style.Style) (layout.RenderResult, error) {
	eff := st.Merge(t.style)
	lineHeight := eff.LineHeight()
	if area.Remaining() < lineHeight {
		return layout.Continued(layout.Size{}, t), nil
	}
	if t.content == "" {
		return layout.Complete(layout.Size{Height: lineHeight}), nil
	}
	face, err := ctx.Fonts.Face(eff)
	if err != nil {
		return layout.RenderResult{}, err
	}
	baseline := face.Ascent(eff.FontSize())
	area.DrawText(layout.Position{X: 0, Y: baseline}, t.content, eff)
	width := face.TextWidth(t.content, eff.FontSize())
	return layout.Complete(layout.Size{Width: width, Height: lineHeight}), nil
}
