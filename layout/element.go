package layout

import (
	"github.com/ByLCY/vellum/fonts"
	"github.com/ByLCY/vellum/style"
)

// Element 是布局树的节点。Render 把自身内容画入给定区域，
// 上报实际占用的尺寸；当区域空间不足时返回继续体（Continuation），
// 由分页循环在下一页的新区域中恢复渲染。
//
// 约定：Render 不得修改元素自身，继续体是新的纯数据值，
// 同一棵树在一次渲染期间被视为只读。
type Element interface {
	Render(ctx *Context, area Area, st style.Style) (RenderResult, error)
}

// RenderResult 描述一次渲染的结果。
// Continuation 为 nil 表示元素已完整渲染（Complete）；
// 否则它携带尚未渲染的剩余内容（Continued），在下一页代替原元素继续。
type RenderResult struct {
	Size         Size
	Continuation Element
}

// Complete 构造完整渲染结果。
func Complete(size Size) RenderResult {
	return RenderResult{Size: size}
}

// Continued 构造带继续体的渲染结果。
func Continued(size Size, rest Element) RenderResult {
	return RenderResult{Size: size, Continuation: rest}
}

// Context 携带一次渲染期间所有元素共享的状态。
// Fonts 是只读的字体后端；Page 是当前页号（从 1 开始）。
type Context struct {
	Fonts *fonts.Collection
	Page  int
}
