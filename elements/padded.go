package elements

import (
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/style"
)

// PaddedElement 在内部元素四周留出空白。跨页时续排段不再重复顶部留白。
type PaddedElement struct {
	child   layout.Element
	padding layout.Margins
}

// Padded 用四边留白包装一个元素。
func Padded(child layout.Element, padding layout.Margins) *PaddedElement {
	return &PaddedElement{child: child, padding: padding}
}

// Render 实现 layout.Element。
func (p *PaddedElement) Render(ctx *layout.Context, area layout.Area, st style.Style) (layout.RenderResult, error) {
	inner := area.Free().Shrink(p.padding)
	if inner.Width() <= 0 {
		return layout.RenderResult{}, layout.NewLayoutError(
			"留白 %.1f+%.1f mm 超出可用宽度 %.1f mm", p.padding.Left, p.padding.Right, area.Width())
	}
	if inner.Height() < 0 {
		return layout.Continued(layout.Size{}, p), nil
	}
	res, err := p.child.Render(ctx, inner, st)
	if err != nil {
		return layout.RenderResult{}, err
	}
	res.Size.Width += p.padding.Left + p.padding.Right
	res.Size.Height += p.padding.Top
	if res.Continuation != nil {
		rest := &PaddedElement{child: res.Continuation, padding: p.padding}
		rest.padding.Top = 0
		return layout.Continued(res.Size, rest), nil
	}
	res.Size.Height += p.padding.Bottom
	return res, nil
}
