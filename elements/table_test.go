package elements_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ByLCY/vellum/elements"
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/style"
)

func TestRowBuilderValidatesShape(t *testing.T) {
	table := elements.NewTableLayout([]float64{2, 2})

	if err := table.Row().Element(elements.NewText("only one")).Push(); err == nil {
		t.Fatalf("expected error for 1 cell in a 2 column table")
	}
	if err := table.Row().
		Element(elements.NewText("a")).
		Element(elements.NewText("b")).
		Element(elements.NewText("c")).
		Push(); err == nil {
		t.Fatalf("expected error for 3 cells in a 2 column table")
	}
	if err := table.Row().
		Element(elements.NewText("a")).
		Element(elements.NewText("b")).
		Push(); err != nil {
		t.Fatalf("matching row must push: %v", err)
	}
}

func TestTableRejectsBadWeights(t *testing.T) {
	page := &layout.RecordedPage{}
	area := layout.NewArea(page, layout.Position{}, layout.Size{Width: 100, Height: 100})

	_, err := elements.NewTableLayout(nil).Render(testContext(), area, style.New())
	var layoutErr *layout.LayoutError
	if !errors.As(err, &layoutErr) {
		t.Fatalf("expected LayoutError for empty weights, got %v", err)
	}

	_, err = elements.NewTableLayout([]float64{1, 0}).Render(testContext(), area, style.New())
	if !errors.As(err, &layoutErr) {
		t.Fatalf("expected LayoutError for zero weight, got %v", err)
	}
}

func TestTableColumnWidthsAreExact(t *testing.T) {
	table := elements.NewTableLayout([]float64{1, 1, 1})
	if err := table.Row().
		Element(elements.NewText("a")).
		Element(elements.NewText("b")).
		Element(elements.NewText("c")).
		Push(); err != nil {
		t.Fatalf("push row: %v", err)
	}

	// 100/3 不能被浮点数精确表示，余量必须归入最后一列。
	width := 100.0
	page, _ := renderInto(t, table, width, 100)
	if len(page.Texts) != 3 {
		t.Fatalf("expected 3 cell texts, got %d", len(page.Texts))
	}
	if page.Texts[0].Pos.X != 0 {
		t.Fatalf("first column must start at 0")
	}
	if math.Abs(page.Texts[1].Pos.X-width/3) > 1e-9 {
		t.Fatalf("second column offset: got %g", page.Texts[1].Pos.X)
	}
	if math.Abs(page.Texts[2].Pos.X-2*width/3) > 1e-6 {
		t.Fatalf("third column offset: got %g", page.Texts[2].Pos.X)
	}
}

func TestTableRowBackground(t *testing.T) {
	grey := style.Color{R: 240, G: 240, B: 240}
	table := elements.NewTableLayout([]float64{1, 1})
	if err := table.Row().
		Element(elements.NewText("a")).
		Element(elements.NewText("b")).
		SetBackground(grey).
		Push(); err != nil {
		t.Fatalf("push row: %v", err)
	}

	page, res := renderInto(t, table, 100, 100)
	if len(page.Rects) != 1 {
		t.Fatalf("expected one background rect, got %d", len(page.Rects))
	}
	rect := page.Rects[0]
	if rect.Fill == nil || *rect.Fill != grey {
		t.Fatalf("background color mismatch: %+v", rect.Fill)
	}
	if rect.Rect.Width != 100 || math.Abs(rect.Rect.Height-res.Size.Height) > 1e-9 {
		t.Fatalf("background must span the whole row: %+v", rect.Rect)
	}
}

func TestFrameCellDecoratorEdges(t *testing.T) {
	table := elements.NewTableLayout([]float64{1, 1})
	table.SetCellDecorator(elements.NewFrameCellDecorator(true, true, false))
	for i := 0; i < 2; i++ {
		if err := table.Row().
			Element(elements.NewText("x")).
			Element(elements.NewText("y")).
			Push(); err != nil {
			t.Fatalf("push row: %v", err)
		}
	}

	page, _ := renderInto(t, table, 100, 100)
	// 每个单元格最多四条边，内部边不重复绘制：
	// 第 0 行：上边 2、左边 1、列间 1、右边 1 = 5
	// 第 1 行：上边（即内部横线）2、左 1、列间 1、右 1、下边 2 = 7
	if len(page.Lines) != 12 {
		t.Fatalf("expected 12 border lines, got %d", len(page.Lines))
	}
}

func TestTablePushesWholeRowToNextPage(t *testing.T) {
	table := elements.NewTableLayout([]float64{1})
	if err := table.Row().Element(elements.NewParagraph("first row")).Push(); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := table.Row().Element(elements.NewParagraph("second row with more words to wrap")).Push(); err != nil {
		t.Fatalf("push: %v", err)
	}

	lineHeight := style.New().LineHeight()
	page1 := &layout.RecordedPage{}
	// 第一行放得下，第二行（多行）放不下：整行推到下一页。
	area := layout.NewArea(page1, layout.Position{}, layout.Size{Width: 30, Height: lineHeight * 2.5})
	res, err := table.Render(testContext(), area, style.New())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Continuation == nil {
		t.Fatalf("expected table continuation")
	}
	for _, tb := range page1.Texts {
		if strings.Contains(tb.Text, "second") {
			t.Fatalf("second row must not be split onto the first page")
		}
	}

	page2 := &layout.RecordedPage{}
	area2 := layout.NewArea(page2, layout.Position{}, layout.Size{Width: 30, Height: 200})
	res2, err := res.Continuation.Render(testContext(), area2, style.New())
	if err != nil {
		t.Fatalf("continuation render: %v", err)
	}
	if res2.Continuation != nil {
		t.Fatalf("table must complete on the second page")
	}
	if len(page2.Texts) == 0 {
		t.Fatalf("second row missing from the second page")
	}
}

func TestTableSplitsRowWhenFirstOnPage(t *testing.T) {
	table := elements.NewTableLayout([]float64{1})
	if err := table.Row().
		Element(elements.NewParagraph("one two three four five six seven eight nine ten")).
		Push(); err != nil {
		t.Fatalf("push: %v", err)
	}

	lineHeight := style.New().LineHeight()
	page1 := &layout.RecordedPage{}
	area := layout.NewArea(page1, layout.Position{}, layout.Size{Width: 20, Height: lineHeight * 2.5})
	res, err := table.Render(testContext(), area, style.New())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Continuation == nil {
		t.Fatalf("a row that is alone on the page must split")
	}
	if len(page1.Texts) == 0 {
		t.Fatalf("the first part of the split row must be drawn")
	}
	if res.Size.Height <= 0 {
		t.Fatalf("split row must report consumed height")
	}

	page2 := &layout.RecordedPage{}
	area2 := layout.NewArea(page2, layout.Position{}, layout.Size{Width: 20, Height: 300})
	res2, err := res.Continuation.Render(testContext(), area2, style.New())
	if err != nil {
		t.Fatalf("continuation render: %v", err)
	}
	if res2.Continuation != nil {
		t.Fatalf("row must complete on the second page")
	}
	if len(page2.Texts) == 0 {
		t.Fatalf("remaining lines missing from the second page")
	}
}
