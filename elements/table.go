package elements

import (
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/style"
)

// CellContext 描述被装饰单元格在表格中的位置与分页状态。
type CellContext struct {
	Row          int // 表格内的绝对行号，从 0 开始
	Column       int
	Columns      int
	FirstOnPage  bool // 本行是上一页被截断行的续排段
	LastRow      bool
	RowContinues bool // 本行在本页被截断，将在下一页继续
	Height       float64
}

// CellDecorator 在单元格内容绘制完成后装饰单元格区域。
type CellDecorator interface {
	DecorateCell(area layout.Area, cc CellContext)
}

// FrameCellDecorator 给单元格画边框。inner 控制行列之间的内部边框，
// outer 控制表格外缘边框，cont 控制截断行续排段顶部是否补画边框。
// 内部横线作为下一行的顶边绘制，内部竖线作为右侧单元格的左边绘制，
// 避免相邻单元格重复画线。
type FrameCellDecorator struct {
	inner bool
	outer bool
	cont  bool
	line  style.LineStyle
}

// NewFrameCellDecorator 创建一个使用默认线型的边框装饰器。
func NewFrameCellDecorator(inner, outer, cont bool) *FrameCellDecorator {
	return &FrameCellDecorator{inner: inner, outer: outer, cont: cont, line: style.NewLineStyle()}
}

// SetLineStyle 设置边框线型。
func (d *FrameCellDecorator) SetLineStyle(ls style.LineStyle) *FrameCellDecorator {
	d.line = ls
	return d
}

// DecorateCell 实现 CellDecorator。
func (d *FrameCellDecorator) DecorateCell(area layout.Area, cc CellContext) {
	w := area.Width()
	h := cc.Height
	left := d.outer
	if cc.Column > 0 {
		left = d.inner
	}
	right := d.outer && cc.Column == cc.Columns-1
	var top bool
	switch {
	case cc.FirstOnPage:
		top = d.cont
	case cc.Row == 0:
		top = d.outer
	default:
		top = d.inner
	}
	bottom := d.outer && cc.LastRow && !cc.RowContinues
	if top {
		area.DrawLine(layout.Position{X: 0, Y: 0}, layout.Position{X: w, Y: 0}, d.line)
	}
	if bottom {
		area.DrawLine(layout.Position{X: 0, Y: h}, layout.Position{X: w, Y: h}, d.line)
	}
	if left {
		area.DrawLine(layout.Position{X: 0, Y: 0}, layout.Position{X: 0, Y: h}, d.line)
	}
	if right {
		area.DrawLine(layout.Position{X: w, Y: 0}, layout.Position{X: w, Y: h}, d.line)
	}
}

type tableRow struct {
	cells      []layout.Element
	background *style.Color
}

// TableLayout 按列权重分配宽度、逐行渲染的表格。
// 行高取该行所有单元格高度的最大值；一行放不下时整行推到下一页，
// 只有当它已经是本页第一行时才在行内截断。
type TableLayout struct {
	weights   []float64
	rows      []tableRow
	decorator CellDecorator
	startRow  int  // 首行的绝对行号，续排段非 0
	splitTop  bool // 首行是被截断行的续排段
}

// NewTableLayout 以列权重创建表格。列宽 = 可用宽度 × 权重 / 权重和。
func NewTableLayout(weights []float64) *TableLayout {
	return &TableLayout{weights: weights}
}

// SetCellDecorator 设置单元格装饰器。
func (t *TableLayout) SetCellDecorator(d CellDecorator) *TableLayout {
	t.decorator = d
	return t
}

// RowBuilder 逐个收集单元格，Push 时校验列数后追加到表格。
type RowBuilder struct {
	table      *TableLayout
	cells      []layout.Element
	background *style.Color
}

// Row 开始构造新的一行。
func (t *TableLayout) Row() *RowBuilder {
	return &RowBuilder{table: t}
}

// Element 追加一个单元格。
func (r *RowBuilder) Element(e layout.Element) *RowBuilder {
	r.cells = append(r.cells, e)
	return r
}

// SetBackground 设置整行背景色。
func (r *RowBuilder) SetBackground(c style.Color) *RowBuilder {
	r.background = &c
	return r
}

// Push 把行追加到表格，单元格数与列数不符时返回布局错误。
func (r *RowBuilder) Push() error {
	if len(r.cells) != len(r.table.weights) {
		return layout.NewLayoutError("行有 %d 个单元格，表格有 %d 列",
			len(r.cells), len(r.table.weights))
	}
	r.table.rows = append(r.table.rows, tableRow{cells: r.cells, background: r.background})
	return nil
}

func (t *TableLayout) columnWidths(total float64) ([]float64, error) {
	if len(t.weights) == 0 {
		return nil, layout.NewLayoutError("表格没有定义任何列")
	}
	sum := 0.0
	for i, w := range t.weights {
		if w <= 0 {
			return nil, layout.NewLayoutError("第 %d 列的权重 %v 不是正数", i, w)
		}
		sum += w
	}
	widths := make([]float64, len(t.weights))
	acc := 0.0
	for i, w := range t.weights[:len(t.weights)-1] {
		widths[i] = total * w / sum
		acc += widths[i]
	}
	// 余量归入最后一列，保证各列宽度之和恰好等于总宽度。
	widths[len(widths)-1] = total - acc
	return widths, nil
}

// Render 实现 layout.Element。
func (t *TableLayout) Render(ctx *layout.Context, area layout.Area, st style.Style) (layout.RenderResult, error) {
	widths, err := t.columnWidths(area.Width())
	if err != nil {
		return layout.RenderResult{}, err
	}
	total := layout.Size{Width: area.Width()}
	for i, row := range t.rows {
		rowArea := area.Free()

		// 第一遍测量：得到行高，并判断本行能否在剩余高度内排完。
		rowHeight := 0.0
		split := false
		x := 0.0
		for c, cell := range row.cells {
			sub := rowArea.SubArea(x, widths[c]).Measuring()
			res, err := cell.Render(ctx, sub, st)
			if err != nil {
				return layout.RenderResult{}, err
			}
			if res.Size.Height > rowHeight {
				rowHeight = res.Size.Height
			}
			if res.Continuation != nil {
				split = true
			}
			x += widths[c]
		}
		if split && i > 0 {
			rest := &TableLayout{
				weights:   t.weights,
				rows:      t.rows[i:],
				decorator: t.decorator,
				startRow:  t.startRow + i,
			}
			return layout.Continued(total, rest), nil
		}

		// 第二遍绘制：先填背景，再渲染单元格内容，最后装饰边框。
		if row.background != nil {
			rowArea.FillRect(layout.Rect{Width: area.Width(), Height: rowHeight}, *row.background)
		}
		conts := make([]layout.Element, len(row.cells))
		x = 0.0
		for c, cell := range row.cells {
			sub := rowArea.SubArea(x, widths[c]).WithHeight(rowHeight)
			res, err := cell.Render(ctx, sub, st)
			if err != nil {
				return layout.RenderResult{}, err
			}
			conts[c] = res.Continuation
			if t.decorator != nil {
				t.decorator.DecorateCell(sub, CellContext{
					Row:          t.startRow + i,
					Column:       c,
					Columns:      len(row.cells),
					FirstOnPage:  i == 0 && t.splitTop,
					LastRow:      i == len(t.rows)-1,
					RowContinues: split,
					Height:       rowHeight,
				})
			}
			x += widths[c]
		}
		total.Height += rowHeight
		area.Advance(rowHeight)

		if split {
			cells := make([]layout.Element, len(conts))
			for c, e := range conts {
				if e == nil {
					e = emptyElement{}
				}
				cells[c] = e
			}
			rest := &TableLayout{
				weights:   t.weights,
				decorator: t.decorator,
				startRow:  t.startRow + i,
				splitTop:  true,
			}
			rest.rows = append(rest.rows, tableRow{cells: cells, background: row.background})
			rest.rows = append(rest.rows, t.rows[i+1:]...)
			return layout.Continued(total, rest), nil
		}
	}
	return layout.Complete(total), nil
}

// emptyElement 占据截断行续排段中已经排完的单元格。
type emptyElement struct{}

func (emptyElement) Render(*layout.Context, layout.Area, style.Style) (layout.RenderResult, error) {
	return layout.Complete(layout.Size{}), nil
}
