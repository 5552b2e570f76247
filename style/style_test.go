package style_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/vellum/style"
)

func TestZeroStyleResolvesDefaults(t *testing.T) {
	st := style.New()
	if st.FontSize() != style.DefaultFontSize {
		t.Fatalf("expected default size %g, got %g", style.DefaultFontSize, st.FontSize())
	}
	if st.LineSpacing() != style.DefaultLineSpacing {
		t.Fatalf("expected default spacing %g, got %g", style.DefaultLineSpacing, st.LineSpacing())
	}
	if st.Color() != style.Black {
		t.Fatalf("expected black, got %+v", st.Color())
	}
	if st.IsBold() || st.IsItalic() {
		t.Fatalf("zero style must not be bold or italic")
	}
}

func TestMergeOverrideWins(t *testing.T) {
	base := style.New().WithFontFamily("serif").WithFontSize(10).WithColor(style.RGB(10, 20, 30))
	over := style.New().WithFontSize(18).Bold()

	merged := base.Merge(over)
	if merged.FontSize() != 18 {
		t.Fatalf("override size must win, got %g", merged.FontSize())
	}
	if !merged.IsBold() {
		t.Fatalf("override bold must win")
	}
	if merged.FontFamily() != "serif" {
		t.Fatalf("unset fields must inherit, got %q", merged.FontFamily())
	}
	if diff := cmp.Diff(style.RGB(10, 20, 30), merged.Color()); diff != "" {
		t.Fatalf("color mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeUnsetKeepsAncestor(t *testing.T) {
	base := style.New().WithFontSize(14).Italic()
	merged := base.Merge(style.New())
	if merged.FontSize() != 14 || !merged.IsItalic() {
		t.Fatalf("merging an empty style must not change anything: %+v", merged)
	}
}

func TestMergeIsLeftToRight(t *testing.T) {
	a := style.New().WithFontSize(10)
	b := style.New().WithFontSize(12)
	c := style.New().WithFontSize(14)
	if got := a.Merge(b).Merge(c).FontSize(); got != 14 {
		t.Fatalf("last override must win, got %g", got)
	}
}

func TestLineHeight(t *testing.T) {
	st := style.New().WithFontSize(12).WithLineSpacing(1.2)
	want := 12 * 0.352777 * 1.2
	if math.Abs(st.LineHeight()-want) > 1e-9 {
		t.Fatalf("line height mismatch: got %g want %g", st.LineHeight(), want)
	}
}

func TestLineStyleDefaults(t *testing.T) {
	ls := style.NewLineStyle()
	if ls.Thickness() != style.DefaultLineThickness {
		t.Fatalf("expected default thickness, got %g", ls.Thickness())
	}
	if got := ls.WithThickness(0.5).Thickness(); got != 0.5 {
		t.Fatalf("expected 0.5, got %g", got)
	}
}
