package layout

import "github.com/ByLCY/vellum/style"

// 渲染后端只接收按页组织的绘制原语，布局核心不关心输出格式的字节编码。

// Page 是单页的绘制原语接收器。所有坐标为页面绝对坐标（mm，左上角原点）；
// 文本坐标为基线左端点。
type Page interface {
	// DrawText 在基线位置绘制一段单行文本。
	DrawText(pos Position, text string, st style.Style)
	// DrawLine 绘制一条线段。
	DrawLine(from, to Position, ls style.LineStyle)
	// DrawRect 绘制矩形；fill 为 nil 表示不填充，stroke 为 nil 表示不描边。
	DrawRect(r Rect, fill *style.Color, stroke *style.LineStyle)
}

// Backend 产出最终文档。BeginPage 按渲染顺序被逐页调用，
// Finish 是终结操作，返回完整的输出字节流。
type Backend interface {
	BeginPage(width, height float64) Page
	Finish() ([]byte, error)
}

// Meta 保存文档元信息。
type Meta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

// MetaWriter 由支持元信息的后端实现（例如 PDF 的 Info 字典）。
type MetaWriter interface {
	SetMeta(meta Meta)
}
