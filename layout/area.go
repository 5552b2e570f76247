package layout

import "github.com/ByLCY/vellum/style"

// Area 是元素了解可用空间、上报占用空间的唯一通道：
// 它在页面的一个矩形区域上维护一个自上而下的游标，
// 并把相对坐标的绘制调用转换为页面绝对坐标转发给 Page。
// page 为 nil 时处于测量模式，所有绘制调用会被丢弃。
type Area struct {
	page   Page
	origin Position // 区域左上角的页面绝对坐标
	size   Size
	cursor float64 // 已消耗的纵向空间，不变式：0 ≤ cursor ≤ size.Height
}

// NewArea 以页面绝对坐标创建一个区域。
func NewArea(page Page, origin Position, size Size) Area {
	return Area{page: page, origin: origin, size: size}
}

// Width 返回区域宽度（mm）。
func (a Area) Width() float64 { return a.size.Width }

// Height 返回区域高度（mm）。
func (a Area) Height() float64 { return a.size.Height }

// Cursor 返回已消耗的纵向空间（mm）。
func (a Area) Cursor() float64 { return a.cursor }

// Remaining 返回剩余可用高度（mm）。
func (a Area) Remaining() float64 { return a.size.Height - a.cursor }

// Advance 将游标向下推进 h，超出高度时截断到底部。
func (a *Area) Advance(h float64) {
	a.cursor += h
	if a.cursor > a.size.Height {
		a.cursor = a.size.Height
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// Free 返回从当前游标开始的剩余子区域，其游标归零。
func (a Area) Free() Area {
	return Area{
		page:   a.page,
		origin: a.origin.Add(0, a.cursor),
		size:   Size{Width: a.size.Width, Height: a.Remaining()},
	}
}

// SubArea 返回水平切片：从 x 偏移开始、宽度为 width 的子区域（表格列使用）。
func (a Area) SubArea(x, width float64) Area {
	return Area{
		page:   a.page,
		origin: a.origin.Add(x, 0),
		size:   Size{Width: width, Height: a.size.Height},
	}
}

// WithHeight 返回高度被限制为 h 的副本（h 超过剩余高度时取剩余高度）。
func (a Area) WithHeight(h float64) Area {
	out := a.Free()
	if h < out.size.Height {
		out.size.Height = h
	}
	return out
}

// Shrink 返回按四边留白收缩后的子区域。收缩后的宽高可能为非正值，由调用方校验。
func (a Area) Shrink(m Margins) Area {
	return Area{
		page:   a.page,
		origin: a.origin.Add(m.Left, m.Top),
		size: Size{
			Width:  a.size.Width - m.Left - m.Right,
			Height: a.size.Height - m.Top - m.Bottom,
		},
	}
}

// Measuring 返回丢弃所有绘制调用的副本，用于先测量后绘制的两遍布局。
func (a Area) Measuring() Area {
	out := a
	out.page = nil
	return out
}

// IsMeasuring 报告区域是否处于测量模式。
func (a Area) IsMeasuring() bool { return a.page == nil }

// DrawText 在区域相对坐标 pos（基线左端点）绘制一段单行文本。
func (a Area) DrawText(pos Position, text string, st style.Style) {
	if a.page == nil {
		return
	}
	a.page.DrawText(a.origin.Add(pos.X, pos.Y), text, st)
}

// DrawLine 以区域相对坐标绘制一条线段。
func (a Area) DrawLine(from, to Position, ls style.LineStyle) {
	if a.page == nil {
		return
	}
	a.page.DrawLine(a.origin.Add(from.X, from.Y), a.origin.Add(to.X, to.Y), ls)
}

// FillRect 以区域相对坐标填充一个矩形（表格行背景使用）。
func (a Area) FillRect(r Rect, c style.Color) {
	if a.page == nil {
		return
	}
	a.page.DrawRect(Rect{
		X:      a.origin.X + r.X,
		Y:      a.origin.Y + r.Y,
		Width:  r.Width,
		Height: r.Height,
	}, &c, nil)
}
