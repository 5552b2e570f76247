package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/vellum/dsl"
)

const sampleDSL = `
doc invoice v1 {
  meta {
    title: "Invoice"
    keywords: [
      "finance"
      "internal"
    ]
  }

  resources {
    style heading { size: 18pt; bold: true }
    style accent { color: #0F62FE }
  }

  page A4 {
    margins: 18mm
    header "第 %d 页"

    paragraph heading {
      "Hello, ${user.name}!"
    }

    table {
      columns: [2, 1]
      borders: all
      row {
        cell { text "Name" }
        cell { text "Total" }
      }
    }
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if doc.Name != "invoice" {
		t.Fatalf("expected document name invoice, got %s", doc.Name)
	}
	if doc.Version != "v1" {
		t.Fatalf("expected version v1, got %s", doc.Version)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}

	meta := doc.Sections[0].Meta
	if meta == nil {
		t.Fatalf("meta section missing")
	}
	title := meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" {
		t.Fatalf("expected title assignment, got %+v", meta.Block.Statements[0])
	}
	if got := string(*title.Value.String); got != "Invoice" {
		t.Fatalf("expected title Invoice, got %s", got)
	}
	keywords := meta.Block.Statements[1].Assignment
	if keywords == nil || keywords.Value.Array == nil {
		t.Fatalf("expected keywords array assignment")
	}
	if len(keywords.Value.Array.Values) != 2 {
		t.Fatalf("expected 2 keywords, got %d", len(keywords.Value.Array.Values))
	}

	resources := doc.Sections[1].Resources
	if resources == nil {
		t.Fatalf("resources section missing")
	}
	styleCmd := resources.Block.Statements[0].Command
	if styleCmd == nil || styleCmd.Name != "style" {
		t.Fatalf("expected style command, got %+v", resources.Block.Statements[0])
	}
	if len(styleCmd.Args) != 1 || styleCmd.Args[0].Value != "heading" {
		t.Fatalf("unexpected style args: %+v", styleCmd.Args)
	}
	if styleCmd.Block == nil || len(styleCmd.Block.Statements) != 2 {
		t.Fatalf("style block missing assignments")
	}

	page := doc.Sections[2].Page
	if page == nil {
		t.Fatalf("page section missing")
	}
	if page.Spec.Size != "A4" {
		t.Fatalf("expected page size A4, got %s", page.Spec.Size)
	}

	margins := page.Block.Statements[0].Assignment
	if margins == nil || margins.Key != "margins" || margins.Value.Number == nil {
		t.Fatalf("expected margins assignment, got %+v", page.Block.Statements[0])
	}
	if *margins.Value.Number != "18mm" {
		t.Fatalf("expected margins 18mm, got %s", *margins.Value.Number)
	}

	header := page.Block.Statements[1].Command
	if header == nil || header.Name != "header" {
		t.Fatalf("expected header command, got %+v", page.Block.Statements[1])
	}
	if len(header.Args) != 1 || header.Args[0].Type != "String" {
		t.Fatalf("unexpected header args: %+v", header.Args)
	}

	para := page.Block.Statements[2].Command
	if para == nil || para.Name != "paragraph" {
		t.Fatalf("expected paragraph command, got %+v", page.Block.Statements[2])
	}
	if len(para.Args) != 1 || para.Args[0].Value != "heading" {
		t.Fatalf("unexpected paragraph args: %+v", para.Args)
	}
	if para.Block == nil || para.Block.Statements[0].Text == nil {
		t.Fatalf("paragraph missing literal content")
	}
	if got := string(para.Block.Statements[0].Text.Value); !strings.Contains(got, "${user.name}") {
		t.Fatalf("expected interpolation placeholder, got %s", got)
	}

	table := page.Block.Statements[3].Command
	if table == nil || table.Name != "table" {
		t.Fatalf("expected table command, got %+v", page.Block.Statements[3])
	}
	columns := table.Block.Statements[0].Assignment
	if columns == nil || columns.Value.Array == nil {
		t.Fatalf("expected columns array, got %+v", table.Block.Statements[0])
	}
	if len(columns.Value.Array.Values) != 2 {
		t.Fatalf("expected 2 column weights, got %d", len(columns.Value.Array.Values))
	}
	row := table.Block.Statements[2].Command
	if row == nil || row.Name != "row" {
		t.Fatalf("expected row command, got %+v", table.Block.Statements[2])
	}
	if len(row.Block.Statements) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(row.Block.Statements))
	}
}

func TestParseColorLiterals(t *testing.T) {
	// 6 位和 8 位颜色必须整体识别，不能在 3 位处截断。
	for _, hex := range []string{"#666", "#666666", "#0F62FE", "#0F62FE80"} {
		src := `doc c v1 { resources { style s { color: ` + hex + ` } } }`
		doc, err := dsl.ParseString(src)
		if err != nil {
			t.Fatalf("parse %s: %v", hex, err)
		}
		blk := doc.Sections[0].Resources.Block.Statements[0].Command.Block
		val := blk.Statements[0].Assignment.Value
		if val.Color == nil || *val.Color != hex {
			t.Fatalf("color %s lexed as %+v", hex, val)
		}
	}
}

func TestParseRejectsBrokenInput(t *testing.T) {
	if _, err := dsl.ParseString(`doc broken v1 { page A4 `); err == nil {
		t.Fatalf("expected parse error for unterminated block")
	}
}
