package layout

import (
	"encoding/json"
	"os"

	"github.com/ByLCY/vellum/style"
)

// Recorder 是一个记录式渲染后端：把每页收到的绘制原语
// 保存为纯数据，Finish 时输出为 JSON，便于调试、可视化与测试断言。

// RecordedText 是一条被记录的文本原语（坐标为基线左端点）。
type RecordedText struct {
	Pos      Position    `json:"pos"`
	Text     string      `json:"text"`
	Family   string      `json:"family,omitempty"`
	FontSize float64     `json:"fontSize"`
	Color    style.Color `json:"color"`
	Bold     bool        `json:"bold,omitempty"`
	Italic   bool        `json:"italic,omitempty"`
}

// RecordedLine 是一条被记录的线段原语。
type RecordedLine struct {
	From      Position    `json:"from"`
	To        Position    `json:"to"`
	Thickness float64     `json:"thickness"`
	Color     style.Color `json:"color"`
}

// RecordedRect 是一条被记录的矩形原语。
type RecordedRect struct {
	Rect   Rect          `json:"rect"`
	Fill   *style.Color  `json:"fill,omitempty"`
	Stroke *RecordedLine `json:"stroke,omitempty"`
}

// RecordedPage 保存单页的全部原语。
type RecordedPage struct {
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Texts  []RecordedText `json:"texts,omitempty"`
	Lines  []RecordedLine `json:"lines,omitempty"`
	Rects  []RecordedRect `json:"rects,omitempty"`
}

// DrawText 实现 Page。
func (p *RecordedPage) DrawText(pos Position, text string, st style.Style) {
	p.Texts = append(p.Texts, RecordedText{
		Pos:      pos,
		Text:     text,
		Family:   st.FontFamily(),
		FontSize: st.FontSize(),
		Color:    st.Color(),
		Bold:     st.IsBold(),
		Italic:   st.IsItalic(),
	})
}

// DrawLine 实现 Page。
func (p *RecordedPage) DrawLine(from, to Position, ls style.LineStyle) {
	p.Lines = append(p.Lines, RecordedLine{
		From:      from,
		To:        to,
		Thickness: ls.Thickness(),
		Color:     ls.Color(),
	})
}

// DrawRect 实现 Page。
func (p *RecordedPage) DrawRect(r Rect, fill *style.Color, stroke *style.LineStyle) {
	rec := RecordedRect{Rect: r}
	if fill != nil {
		c := *fill
		rec.Fill = &c
	}
	if stroke != nil {
		rec.Stroke = &RecordedLine{Thickness: stroke.Thickness(), Color: stroke.Color()}
	}
	p.Rects = append(p.Rects, rec)
}

// Recorder 实现 Backend 与 MetaWriter。
type Recorder struct {
	Meta  Meta            `json:"meta"`
	Pages []*RecordedPage `json:"pages"`
}

// NewRecorder 返回一个空的记录后端。
func NewRecorder() *Recorder { return &Recorder{} }

// BeginPage 实现 Backend。
func (r *Recorder) BeginPage(width, height float64) Page {
	page := &RecordedPage{Width: width, Height: height}
	r.Pages = append(r.Pages, page)
	return page
}

// SetMeta 实现 MetaWriter。
func (r *Recorder) SetMeta(meta Meta) { r.Meta = meta }

// Finish 实现 Backend，输出记录内容的 JSON。
func (r *Recorder) Finish() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// WriteDebugJSON 把记录结果写入文件，便于调试或可视化。
func WriteDebugJSON(r *Recorder, path string) error {
	if r == nil {
		return nil
	}
	data, err := r.Finish()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
