package elements

import (
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/style"
)

// LinearLayout 从上到下依次渲染子元素的垂直容器。
type LinearLayout struct {
	children []layout.Element
}

// NewLinearLayout 创建一个空的垂直布局。
func NewLinearLayout() *LinearLayout {
	return &LinearLayout{}
}

// Push 追加一个子元素。nil 元素会被忽略。
func (l *LinearLayout) Push(e layout.Element) *LinearLayout {
	if e != nil {
		l.children = append(l.children, e)
	}
	return l
}

// Render 实现 layout.Element。子元素按序渲染并向下推进游标；
// 某个子元素返回延续时，当前容器以 [延续, 其余子元素] 作为自身延续返回。
func (l *LinearLayout) Render(ctx *layout.Context, area layout.Area, st style.Style) (layout.RenderResult, error) {
	var total layout.Size
	for i, child := range l.children {
		res, err := child.Render(ctx, area.Free(), st)
		if err != nil {
			return layout.RenderResult{}, err
		}
		total = total.Stack(res.Size)
		area.Advance(res.Size.Height)
		if res.Continuation != nil {
			rest := &LinearLayout{}
			rest.children = append(rest.children, res.Continuation)
			rest.children = append(rest.children, l.children[i+1:]...)
			return layout.Continued(total, rest), nil
		}
	}
	return layout.Complete(total), nil
}
