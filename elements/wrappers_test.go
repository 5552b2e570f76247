package elements_test

import (
	"testing"

	"github.com/ByLCY/vellum/elements"
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/style"
)

func TestTextTruncatesNothing(t *testing.T) {
	page, res := renderInto(t, elements.NewText("single line"), 100, 50)
	if res.Continuation != nil {
		t.Fatalf("text must complete in a roomy area")
	}
	if len(page.Texts) != 1 || page.Texts[0].Text != "single line" {
		t.Fatalf("unexpected texts: %+v", page.Texts)
	}
}

func TestTextDefersWhenLineDoesNotFit(t *testing.T) {
	page := &layout.RecordedPage{}
	area := layout.NewArea(page, layout.Position{}, layout.Size{Width: 100, Height: 1})
	res, err := elements.NewText("tall").Render(testContext(), area, style.New())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Continuation == nil {
		t.Fatalf("text must defer to the next page when the line does not fit")
	}
	if len(page.Texts) != 0 {
		t.Fatalf("nothing must be drawn when deferring")
	}
}

func TestBreakConsumesLines(t *testing.T) {
	_, res := renderInto(t, elements.NewBreak(2), 100, 50)
	want := 2 * style.New().LineHeight()
	if res.Continuation != nil || res.Size.Height != want {
		t.Fatalf("break: %+v, want height %g", res, want)
	}
}

func TestPageBreakConsumesRemainingSpace(t *testing.T) {
	_, res := renderInto(t, elements.NewPageBreak(), 100, 50)
	if res.Continuation != nil {
		t.Fatalf("page break always completes")
	}
	if res.Size.Height != 50 {
		t.Fatalf("page break must consume the remaining height, got %g", res.Size.Height)
	}
}

func TestLinearLayoutStacksChildren(t *testing.T) {
	stack := elements.NewLinearLayout().
		Push(elements.NewText("one")).
		Push(elements.NewText("two"))
	page, res := renderInto(t, stack, 100, 50)
	if len(page.Texts) != 2 {
		t.Fatalf("expected both children drawn, got %d", len(page.Texts))
	}
	if page.Texts[1].Pos.Y <= page.Texts[0].Pos.Y {
		t.Fatalf("children must stack downward: %+v", page.Texts)
	}
	if res.Size.Height <= style.New().LineHeight() {
		t.Fatalf("stacked height must accumulate, got %g", res.Size.Height)
	}
}

func TestLinearLayoutContinuation(t *testing.T) {
	lineHeight := style.New().LineHeight()
	stack := elements.NewLinearLayout().
		Push(elements.NewText("one")).
		Push(elements.NewText("two")).
		Push(elements.NewText("three"))

	page1 := &layout.RecordedPage{}
	area := layout.NewArea(page1, layout.Position{}, layout.Size{Width: 100, Height: lineHeight * 2.5})
	res, err := stack.Render(testContext(), area, style.New())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Continuation == nil {
		t.Fatalf("expected continuation for third child")
	}
	if len(page1.Texts) != 2 {
		t.Fatalf("expected 2 children on the first page, got %d", len(page1.Texts))
	}

	page2 := &layout.RecordedPage{}
	area2 := layout.NewArea(page2, layout.Position{}, layout.Size{Width: 100, Height: 100})
	if _, err := res.Continuation.Render(testContext(), area2, style.New()); err != nil {
		t.Fatalf("continuation render: %v", err)
	}
	if len(page2.Texts) != 1 || page2.Texts[0].Text != "three" {
		t.Fatalf("expected the third child on page 2, got %+v", page2.Texts)
	}
}

func TestStyledOverridesChildStyle(t *testing.T) {
	styled := elements.Styled(elements.NewText("x"), style.New().Bold().WithFontSize(18))
	page, _ := renderInto(t, styled, 100, 50)
	if !page.Texts[0].Bold || page.Texts[0].FontSize != 18 {
		t.Fatalf("style override missing: %+v", page.Texts[0])
	}
}

func TestFramedDrawsAllEdgesWhenComplete(t *testing.T) {
	framed := elements.Framed(elements.NewText("inside"), style.NewLineStyle())
	page, res := renderInto(t, framed, 100, 50)
	if res.Continuation != nil {
		t.Fatalf("framed text must complete")
	}
	if len(page.Lines) != 4 {
		t.Fatalf("expected a closed frame of 4 lines, got %d", len(page.Lines))
	}
}

func TestFramedLeavesBreakEdgesOpen(t *testing.T) {
	lineHeight := style.New().LineHeight()
	framed := elements.Framed(
		elements.NewParagraph("one two three four five six seven eight nine ten"),
		style.NewLineStyle(),
	)

	page1 := &layout.RecordedPage{}
	area := layout.NewArea(page1, layout.Position{}, layout.Size{Width: 20, Height: lineHeight * 2.5})
	res, err := framed.Render(testContext(), area, style.New())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Continuation == nil {
		t.Fatalf("expected a split frame")
	}
	// 第一段：顶边 + 两条侧边，底边开放。
	if len(page1.Lines) != 3 {
		t.Fatalf("first segment must leave the bottom open, got %d lines", len(page1.Lines))
	}

	page2 := &layout.RecordedPage{}
	area2 := layout.NewArea(page2, layout.Position{}, layout.Size{Width: 20, Height: 300})
	res2, err := res.Continuation.Render(testContext(), area2, style.New())
	if err != nil {
		t.Fatalf("continuation render: %v", err)
	}
	if res2.Continuation != nil {
		t.Fatalf("frame must complete on the second page")
	}
	// 最后一段：两条侧边 + 底边，顶边开放。
	if len(page2.Lines) != 3 {
		t.Fatalf("last segment must leave the top open, got %d lines", len(page2.Lines))
	}
}

func TestFramedDeferredFromEmptySliverKeepsTopEdge(t *testing.T) {
	framed := elements.Framed(elements.NewText("inside"), style.NewLineStyle())

	// 剩余空间不足一行：本页什么都画不下，边框整体顺延。
	page1 := &layout.RecordedPage{}
	area1 := layout.NewArea(page1, layout.Position{}, layout.Size{Width: 100, Height: 1})
	res, err := framed.Render(testContext(), area1, style.New())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Continuation == nil {
		t.Fatalf("frame must defer when nothing fits")
	}
	if len(page1.Lines) != 0 {
		t.Fatalf("nothing must be drawn on the empty sliver, got %d lines", len(page1.Lines))
	}

	// 内容真正开始的页面仍然要有闭合的顶边：完整的 4 条边。
	page2 := &layout.RecordedPage{}
	area2 := layout.NewArea(page2, layout.Position{}, layout.Size{Width: 100, Height: 50})
	res2, err := res.Continuation.Render(testContext(), area2, style.New())
	if err != nil {
		t.Fatalf("continuation render: %v", err)
	}
	if res2.Continuation != nil {
		t.Fatalf("frame must complete on the roomy page")
	}
	if len(page2.Lines) != 4 {
		t.Fatalf("expected a closed frame of 4 lines where content begins, got %d", len(page2.Lines))
	}
	foundTop := false
	for _, ln := range page2.Lines {
		if ln.From.Y == 0 && ln.To.Y == 0 && ln.From.X != ln.To.X {
			foundTop = true
		}
	}
	if !foundTop {
		t.Fatalf("top border missing: %+v", page2.Lines)
	}
}

func TestPaddedInsetsChild(t *testing.T) {
	padded := elements.Padded(elements.NewText("x"), layout.UniformMargins(5))
	page, res := renderInto(t, padded, 100, 50)
	tb := page.Texts[0]
	if tb.Pos.X != 5 || tb.Pos.Y <= 5 {
		t.Fatalf("child must be inset by the padding: %+v", tb.Pos)
	}
	want := style.New().LineHeight() + 10
	if res.Size.Height != want {
		t.Fatalf("padded height: got %g want %g", res.Size.Height, want)
	}
}

func TestPaddedContinuationSkipsTopPadding(t *testing.T) {
	lineHeight := style.New().LineHeight()
	padded := elements.Padded(
		elements.NewParagraph("one two three four five six seven eight nine ten"),
		layout.UniformMargins(4),
	)

	page1 := &layout.RecordedPage{}
	area := layout.NewArea(page1, layout.Position{}, layout.Size{Width: 25, Height: lineHeight*2 + 8})
	res, err := padded.Render(testContext(), area, style.New())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Continuation == nil {
		t.Fatalf("expected padded continuation")
	}

	page2 := &layout.RecordedPage{}
	area2 := layout.NewArea(page2, layout.Position{}, layout.Size{Width: 25, Height: 300})
	if _, err := res.Continuation.Render(testContext(), area2, style.New()); err != nil {
		t.Fatalf("continuation render: %v", err)
	}
	if len(page2.Texts) == 0 {
		t.Fatalf("remaining content missing")
	}
	if page2.Texts[0].Pos.X != 4 {
		t.Fatalf("left padding must persist: %+v", page2.Texts[0].Pos)
	}
	// 首行基线应直接落在区域顶部（仅首段有 4mm 顶部留白）。
	if page2.Texts[0].Pos.Y >= 4 {
		t.Fatalf("top padding must not repeat on continuation: %+v", page2.Texts[0].Pos)
	}
}
