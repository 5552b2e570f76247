// Package canvasrenderer 基于 github.com/tdewolff/canvas 的 PDF 渲染后端，
// 实现 layout.Backend：按页接收绘制调用，Finish 时输出完整的 PDF 字节流。
package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/vellum/fonts"
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/style"
)

// Renderer 把布局核心的绘制调用转写为 PDF。
// PDF writer 在第一页开始时才创建（writer 需要首页尺寸），
// 页面级绘制错误被暂存，由 Finish 统一上报。
type Renderer struct {
	collection *fonts.Collection

	buf    bytes.Buffer
	writer *pdf.PDF
	page   *canvas.Canvas
	ctx    *canvas.Context
	meta   *layout.Meta
	err    error

	fontMu   sync.Mutex
	families map[familyKey]*canvas.FontFamily
}

var (
	_ layout.Backend    = (*Renderer)(nil)
	_ layout.MetaWriter = (*Renderer)(nil)
)

type familyKey struct {
	name   string
	bold   bool
	italic bool
}

// New 创建一个从给定字体集合取字的渲染器。
func New(collection *fonts.Collection) *Renderer {
	return &Renderer{
		collection: collection,
		families:   map[familyKey]*canvas.FontFamily{},
	}
}

// SetMeta 实现 layout.MetaWriter。
func (r *Renderer) SetMeta(meta layout.Meta) {
	r.meta = &meta
	if r.writer != nil {
		r.applyMeta()
	}
}

func (r *Renderer) applyMeta() {
	if r.meta == nil {
		return
	}
	m := r.meta
	r.writer.SetInfo(m.Title, m.Subject, strings.Join(m.Keywords, ", "), m.Author, m.Creator)
}

// BeginPage 实现 layout.Backend。宽高单位为 mm。
func (r *Renderer) BeginPage(width, height float64) layout.Page {
	r.flushPage()
	if r.writer == nil {
		r.writer = pdf.New(&r.buf, width, height, nil)
		r.applyMeta()
	} else {
		r.writer.NewPage(width, height)
	}
	r.page = canvas.New(width, height)
	r.ctx = canvas.NewContext(r.page)
	r.ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	return page{r}
}

func (r *Renderer) flushPage() {
	if r.page == nil {
		return
	}
	r.page.RenderTo(r.writer)
	r.page = nil
	r.ctx = nil
}

// Finish 实现 layout.Backend：落盘最后一页并关闭 writer。
func (r *Renderer) Finish() ([]byte, error) {
	r.flushPage()
	if r.writer == nil {
		return nil, fmt.Errorf("没有任何可输出的页面")
	}
	if err := r.writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	if r.err != nil {
		return nil, r.err
	}
	return r.buf.Bytes(), nil
}

func (r *Renderer) setErr(err error) {
	if r.err == nil {
		r.err = err
	}
}

// face 按样式解析 canvas 字体面，按（字体族，粗，斜）缓存已加载的字体。
func (r *Renderer) face(st style.Style) (*canvas.FontFace, error) {
	fam, err := r.collection.Family(st.FontFamily())
	if err != nil {
		return nil, err
	}
	key := familyKey{name: fam.Name(), bold: st.IsBold(), italic: st.IsItalic()}
	fs := canvasFontStyle(key.bold, key.italic)

	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	cf, ok := r.families[key]
	if !ok {
		face := fam.Face(key.bold, key.italic)
		if face == nil {
			return nil, fmt.Errorf("字体族 %s 没有任何可用的字体面", fam.Name())
		}
		cf = canvas.NewFontFamily(fam.Name())
		if err := cf.LoadFont(face.Data(), 0, fs); err != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", fam.Name(), err)
		}
		r.families[key] = cf
	}
	return cf.Face(st.FontSize(), toColor(st.Color()), fs, canvas.FontNormal), nil
}

// page 是当前页的绘制视图，所有坐标为 mm、左上角为原点。
type page struct {
	r *Renderer
}

var _ layout.Page = page{}

// DrawText 在基线左端点 pos 绘制一行文本。
func (p page) DrawText(pos layout.Position, text string, st style.Style) {
	face, err := p.r.face(st)
	if err != nil {
		p.r.setErr(err)
		return
	}
	p.r.ctx.DrawText(pos.X, pos.Y, canvas.NewTextLine(face, text, canvas.Left))
}

// DrawLine 绘制一条线段。
func (p page) DrawLine(from, to layout.Position, ls style.LineStyle) {
	ctx := p.r.ctx
	ctx.SetFillColor(color.RGBA{})
	ctx.SetStrokeColor(toColor(ls.Color()))
	ctx.SetStrokeWidth(ls.Thickness())
	path := &canvas.Path{}
	path.MoveTo(0, 0)
	path.LineTo(to.X-from.X, to.Y-from.Y)
	ctx.DrawPath(from.X, from.Y, path)
}

// DrawRect 绘制矩形，fill 与 stroke 均可为 nil。
func (p page) DrawRect(rc layout.Rect, fill *style.Color, stroke *style.LineStyle) {
	if fill == nil && stroke == nil {
		return
	}
	ctx := p.r.ctx
	if fill != nil {
		ctx.SetFillColor(toColor(*fill))
	} else {
		ctx.SetFillColor(color.RGBA{})
	}
	if stroke != nil {
		ctx.SetStrokeColor(toColor(stroke.Color()))
		ctx.SetStrokeWidth(stroke.Thickness())
	} else {
		ctx.SetStrokeColor(color.RGBA{})
		ctx.SetStrokeWidth(0)
	}
	ctx.DrawPath(rc.X, rc.Y, canvas.Rectangle(rc.Width, rc.Height))
}

func canvasFontStyle(bold, italic bool) canvas.FontStyle {
	fs := canvas.FontRegular
	if bold {
		fs = canvas.FontBold
	}
	if italic {
		fs |= canvas.FontItalic
	}
	return fs
}

func toColor(c style.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
