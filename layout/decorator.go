package layout

import "github.com/ByLCY/vellum/style"

// PageDecorator 在每页开始时裁出本页的内容区域（应用页边距），
// 并可先渲染一个页眉元素占用区域顶部。
type PageDecorator interface {
	// DecoratePage 返回内容区域；其游标可能已被页眉推进。
	// 内容区域宽高非正时必须返回 ConfigurationError。
	DecoratePage(ctx *Context, area Area, st style.Style) (Area, error)
}

// SimpleDecorator 是缺省装饰器：统一页边距加可选的按页号生成的页眉。
// 页眉回调以显式页号调用，每页重新生成，不携带隐藏的可变状态。
type SimpleDecorator struct {
	margins Margins
	header  func(page int) Element
}

// NewSimpleDecorator 返回四边 20mm 留白、无页眉的装饰器。
func NewSimpleDecorator() *SimpleDecorator {
	return &SimpleDecorator{margins: UniformMargins(20)}
}

// SetMargins 设置四边留白。
func (d *SimpleDecorator) SetMargins(m Margins) { d.margins = m }

// SetUniformMargins 设置四边相同的留白（mm）。
func (d *SimpleDecorator) SetUniformMargins(v float64) { d.margins = UniformMargins(v) }

// SetHeader 设置页眉回调。回调返回 nil 表示该页不绘制页眉。
func (d *SimpleDecorator) SetHeader(fn func(page int) Element) { d.header = fn }

// DecoratePage 实现 PageDecorator。
func (d *SimpleDecorator) DecoratePage(ctx *Context, area Area, st style.Style) (Area, error) {
	content := area.Shrink(d.margins)
	if content.Width() <= 0 || content.Height() <= 0 {
		return Area{}, NewConfigurationError(
			"页边距之内没有可用的内容区域（%g×%gmm，留白 上%g 右%g 下%g 左%g）",
			area.Width(), area.Height(),
			d.margins.Top, d.margins.Right, d.margins.Bottom, d.margins.Left)
	}
	if d.header == nil {
		return content, nil
	}
	el := d.header(ctx.Page)
	if el == nil {
		return content, nil
	}
	res, err := el.Render(ctx, content.Free(), st)
	if err != nil {
		return Area{}, err
	}
	if res.Continuation != nil {
		return Area{}, NewConfigurationError("第 %d 页的页眉超出页面内容区域", ctx.Page)
	}
	content.Advance(res.Size.Height)
	return content, nil
}
