package canvasrenderer

import (
	"bytes"
	"testing"

	"github.com/ByLCY/vellum/elements"
	"github.com/ByLCY/vellum/fonts"
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/style"
)

func TestRenderProducesPDF(t *testing.T) {
	doc := layout.NewDocument(fonts.NewCollection())
	doc.Push(elements.NewParagraph("hello world"))

	out, err := doc.Render(New(fonts.NewCollection()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected PDF output")
	}
}

func TestRenderMultiplePages(t *testing.T) {
	doc := layout.NewDocument(fonts.NewCollection())
	doc.SetPaperSize(100, 30)
	for i := 0; i < 40; i++ {
		doc.Push(elements.NewParagraph("line of content"))
	}

	out, err := doc.Render(New(fonts.NewCollection()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected non-empty PDF")
	}
}

func TestRenderAppliesMeta(t *testing.T) {
	doc := layout.NewDocument(fonts.NewCollection())
	doc.SetMeta(layout.Meta{Title: "样例文档", Author: "vellum"})
	doc.Push(elements.NewText("meta"))

	if _, err := doc.Render(New(fonts.NewCollection())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRenderDrawsShapes(t *testing.T) {
	doc := layout.NewDocument(fonts.NewCollection())
	doc.Push(elements.Framed(elements.NewParagraph("boxed"), style.NewLineStyle()))

	table := elements.NewTableLayout([]float64{1, 1})
	table.SetCellDecorator(elements.NewFrameCellDecorator(true, true, false))
	if err := table.Row().
		Element(elements.NewText("a")).
		Element(elements.NewText("b")).
		SetBackground(style.Color{R: 240, G: 240, B: 240}).
		Push(); err != nil {
		t.Fatalf("push row: %v", err)
	}
	doc.Push(table)

	out, err := doc.Render(New(fonts.NewCollection()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected PDF output")
	}
}

func TestFinishWithoutPages(t *testing.T) {
	r := New(fonts.NewCollection())
	if _, err := r.Finish(); err == nil {
		t.Fatalf("expected error when no page was begun")
	}
}
