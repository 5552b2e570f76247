package elements

import (
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/style"
)

// StyledElement 把一个样式覆盖推入子树的解析链：
// 子元素（及其后代）以 ancestor.Merge(override) 作为继承样式渲染，
// 子元素自身不被修改。
type StyledElement struct {
	child layout.Element
	style style.Style
}

// Styled 用样式覆盖包装一个元素。
func Styled(child layout.Element, st style.Style) *StyledElement {
	return &StyledElement{child: child, style: st}
}

// Render 实现 layout.Element。
func (s *StyledElement) Render(ctx *layout.Context, area layout.Area, st style.Style) (layout.RenderResult, error) {
	res, err := s.child.Render(ctx, area, st.Merge(s.style))
	if err != nil {
		return layout.RenderResult{}, err
	}
	if res.Continuation != nil {
		res.Continuation = &StyledElement{child: res.Continuation, style: s.style}
	}
	return res, nil
}
