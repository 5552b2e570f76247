package layout

import (
	"log/slog"

	"github.com/ByLCY/vellum/fonts"
	"github.com/ByLCY/vellum/style"
)

// Document 持有根元素序列、缺省样式、纸张尺寸与页面装饰器，
// 并驱动分页循环。配置方法应在单次 Render 之前调用完毕；
// 一次渲染期间元素树被视为只读，Render 本身不修改 Document。
type Document struct {
	fonts     *fonts.Collection
	style     style.Style
	paper     Size
	meta      Meta
	decorator PageDecorator
	elements  []Element
}

// NewDocument 创建一个 A4 纸张、缺省样式的空文档。
// 字体集合由调用方注入，可跨文档共享。
func NewDocument(fc *fonts.Collection) *Document {
	paper, _ := PaperPreset("A4", false)
	return &Document{
		fonts: fc,
		paper: paper,
		meta:  Meta{Creator: "Vellum"},
	}
}

// SetPaperSize 设置纸张尺寸（mm）。
func (d *Document) SetPaperSize(width, height float64) {
	d.paper = Size{Width: width, Height: height}
}

// SetPaperPreset 按预设名称设置纸张尺寸。
func (d *Document) SetPaperPreset(name string, landscape bool) error {
	size, err := PaperPreset(name, landscape)
	if err != nil {
		return err
	}
	d.paper = size
	return nil
}

// PaperSize 返回当前纸张尺寸（mm）。
func (d *Document) PaperSize() Size { return d.paper }

// SetDefaultStyle 设置根样式；未设置的字段按 style 包的缺省值解析。
func (d *Document) SetDefaultStyle(st style.Style) { d.style = st }

// DefaultStyle 返回根样式。
func (d *Document) DefaultStyle() style.Style { return d.style }

// SetMeta 设置文档元信息。
func (d *Document) SetMeta(meta Meta) { d.meta = meta }

// SetPageDecorator 设置页面装饰器；nil 表示整页都是内容区域。
func (d *Document) SetPageDecorator(p PageDecorator) { d.decorator = p }

// Push 追加一个根元素。
func (d *Document) Push(e Element) {
	if e != nil {
		d.elements = append(d.elements, e)
	}
}

// Render 驱动分页循环直至所有根元素渲染完毕，返回后端产出的字节流。
//
// 每页依次经历：请求新页 → 装饰（页边距与页眉）→ 渲染内容 → 页完成；
// 任一根元素返回继续体时推进到下一页，用继续体代替原元素恢复渲染。
// 严格单遍、无回溯：已提交到某页的内容不会被移动。
// 配置错误在产生任何页面之前返回；渲染期间的错误中止整个过程，
// 不返回部分页面构成的文档。
func (d *Document) Render(backend Backend) ([]byte, error) {
	if backend == nil {
		return nil, NewConfigurationError("缺少渲染后端")
	}
	if d.fonts == nil {
		return nil, NewConfigurationError("缺少字体集合")
	}
	if d.paper.Width <= 0 || d.paper.Height <= 0 {
		return nil, NewConfigurationError("纸张尺寸非法：%g×%gmm", d.paper.Width, d.paper.Height)
	}
	if _, err := d.fonts.Family(d.style.FontFamily()); err != nil {
		return nil, NewConfigurationError("缺省字体族不可用: %v", err)
	}

	ctx := &Context{Fonts: d.fonts, Page: 1}

	// 预检：在测量区域上运行一次装饰器，保证配置错误先于任何页面产生。
	if d.decorator != nil {
		probe := NewArea(nil, Position{}, d.paper)
		if _, err := d.decorator.DecoratePage(ctx, probe, d.style); err != nil {
			return nil, err
		}
	}

	if mw, ok := backend.(MetaWriter); ok {
		mw.SetMeta(d.meta)
	}

	queue := append([]Element(nil), d.elements...)
	pageNum := 0
	for {
		pageNum++
		ctx.Page = pageNum
		page := backend.BeginPage(d.paper.Width, d.paper.Height)
		area := NewArea(page, Position{}, d.paper)
		if d.decorator != nil {
			var err error
			area, err = d.decorator.DecoratePage(ctx, area, d.style)
			if err != nil {
				return nil, err
			}
		}

		progressed := false
		continued := false
		for len(queue) > 0 {
			res, err := queue[0].Render(ctx, area.Free(), d.style)
			if err != nil {
				return nil, err
			}
			area.Advance(res.Size.Height)
			if res.Size.Height > 0 {
				progressed = true
			}
			if res.Continuation != nil {
				queue[0] = res.Continuation
				continued = true
				break
			}
			progressed = true
			queue = queue[1:]
		}
		slog.Debug("页面渲染完成", "page", pageNum, "remaining", len(queue))

		if len(queue) == 0 {
			break
		}
		// 终止性保障：继续体在整页空间内毫无进展时报错而不是无限换页。
		if continued && !progressed {
			return nil, NewLayoutError("元素无法在第 %d 页的内容区域内推进", pageNum)
		}
	}

	return backend.Finish()
}
