package dsl

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ByLCY/vellum/binding"
	"github.com/ByLCY/vellum/elements"
	"github.com/ByLCY/vellum/fonts"
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/style"
)

// compiler 持有一次降解过程的上下文：字体集合、插值数据、
// 资源目录（相对字体路径的根）与已声明的具名样式。
type compiler struct {
	fonts   *fonts.Collection
	data    any
	baseDir string
	styles  map[string]style.Style
}

// Compile 把解析后的 AST 降解为可渲染的 layout.Document。
// data 用于 ${path} 插值，baseDir 是字体等相对路径的解析根。
func Compile(ast *Document, fc *fonts.Collection, data any, baseDir string) (*layout.Document, error) {
	if ast == nil {
		return nil, fmt.Errorf("文档 AST 为空")
	}
	c := &compiler{fonts: fc, data: data, baseDir: baseDir, styles: map[string]style.Style{}}
	doc := layout.NewDocument(fc)

	var pageSeen bool
	for _, section := range ast.Sections {
		switch {
		case section.Meta != nil:
			if err := c.compileMeta(doc, section.Meta.Block); err != nil {
				return nil, err
			}
		case section.Resources != nil:
			if err := c.compileResources(section.Resources.Block); err != nil {
				return nil, err
			}
		case section.Page != nil:
			if pageSeen {
				return nil, fmt.Errorf("只支持一个 page 段")
			}
			pageSeen = true
			if err := c.compilePage(doc, section.Page); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

func (s *Statement) line() int {
	switch {
	case s.Assignment != nil:
		return s.Assignment.Pos.Line
	case s.Command != nil:
		return s.Command.Pos.Line
	case s.Text != nil:
		return s.Text.Pos.Line
	default:
		return 0
	}
}

func (c *compiler) compileMeta(doc *layout.Document, block *Block) error {
	meta := layout.Meta{Creator: "Vellum"}
	for _, stmt := range block.Statements {
		a := stmt.Assignment
		if a == nil {
			return fmt.Errorf("第 %d 行: meta 段只接受赋值语句", stmt.line())
		}
		switch a.Key {
		case "title":
			meta.Title = c.stringValue(a.Value)
		case "author":
			meta.Author = c.stringValue(a.Value)
		case "subject":
			meta.Subject = c.stringValue(a.Value)
		case "creator":
			meta.Creator = c.stringValue(a.Value)
		case "keywords":
			if a.Value.Array == nil {
				return fmt.Errorf("第 %d 行: keywords 需要一个数组", a.Pos.Line)
			}
			for _, v := range a.Value.Array.Values {
				meta.Keywords = append(meta.Keywords, c.stringValue(v))
			}
		default:
			return fmt.Errorf("第 %d 行: 未知的 meta 属性 %q", a.Pos.Line, a.Key)
		}
	}
	doc.SetMeta(meta)
	return nil
}

var fontVariants = map[string]fonts.Variant{
	"regular":    fonts.Regular,
	"bold":       fonts.Bold,
	"italic":     fonts.Italic,
	"bolditalic": fonts.BoldItalic,
}

func (c *compiler) compileResources(block *Block) error {
	for _, stmt := range block.Statements {
		cmd := stmt.Command
		if cmd == nil {
			return fmt.Errorf("第 %d 行: resources 段只接受 font 或 style 命令", stmt.line())
		}
		switch cmd.Name {
		case "font":
			if err := c.compileFont(cmd); err != nil {
				return err
			}
		case "style":
			if err := c.compileStyleDef(cmd); err != nil {
				return err
			}
		default:
			return fmt.Errorf("第 %d 行: 未知的资源命令 %q", cmd.Pos.Line, cmd.Name)
		}
	}
	return nil
}

// compileFont 处理 `font <族名> "常规.ttf" [bold "粗体.ttf" ...]`。
func (c *compiler) compileFont(cmd *Command) error {
	if len(cmd.Args) < 2 {
		return fmt.Errorf("第 %d 行: font 命令需要族名与字体文件", cmd.Pos.Line)
	}
	family := cmd.Args[0].Value
	if err := c.loadFont(family, fonts.Regular, cmd.Args[1]); err != nil {
		return err
	}
	rest := cmd.Args[2:]
	for len(rest) >= 2 {
		variant, ok := fontVariants[strings.ToLower(rest[0].Value)]
		if !ok {
			return fmt.Errorf("第 %d 行: 未知的字体形态 %q", rest[0].Pos.Line, rest[0].Value)
		}
		if err := c.loadFont(family, variant, rest[1]); err != nil {
			return err
		}
		rest = rest[2:]
	}
	if len(rest) != 0 {
		return fmt.Errorf("第 %d 行: font 命令的形态参数必须成对出现", cmd.Pos.Line)
	}
	return nil
}

func (c *compiler) loadFont(family string, v fonts.Variant, arg *Lexeme) error {
	path := arg.Value
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.baseDir, path)
	}
	return c.fonts.LoadFontFile(family, v, path)
}

// compileStyleDef 处理 `style <名字> { size: 18pt; bold: true; ... }`。
func (c *compiler) compileStyleDef(cmd *Command) error {
	if len(cmd.Args) != 1 || cmd.Block == nil {
		return fmt.Errorf("第 %d 行: style 命令需要名字和属性块", cmd.Pos.Line)
	}
	st, err := c.compileStyle(cmd.Block)
	if err != nil {
		return err
	}
	c.styles[cmd.Args[0].Value] = st
	return nil
}

func (c *compiler) compileStyle(block *Block) (style.Style, error) {
	st := style.New()
	for _, stmt := range block.Statements {
		a := stmt.Assignment
		if a == nil {
			return st, fmt.Errorf("第 %d 行: 样式块只接受赋值语句", stmt.line())
		}
		var err error
		st, err = c.applyStyleKey(st, a)
		if err != nil {
			return st, err
		}
	}
	return st, nil
}

func (c *compiler) applyStyleKey(st style.Style, a *Assignment) (style.Style, error) {
	switch a.Key {
	case "font":
		st = st.WithFontFamily(c.stringValue(a.Value))
	case "size":
		l, err := lengthValue(a.Value)
		if err != nil {
			return st, fmt.Errorf("第 %d 行: %v", a.Pos.Line, err)
		}
		// 裸数字按 pt 处理，带单位的长度换算到 pt。
		if l.Unit == layout.UnitNone {
			st = st.WithFontSize(l.Value)
		} else {
			st = st.WithFontSize(l.ToPT())
		}
	case "spacing":
		n, ok := numberValue(a.Value)
		if !ok {
			return st, fmt.Errorf("第 %d 行: spacing 需要一个数字", a.Pos.Line)
		}
		st = st.WithLineSpacing(n)
	case "color":
		col, err := colorValue(a.Value)
		if err != nil {
			return st, fmt.Errorf("第 %d 行: %v", a.Pos.Line, err)
		}
		st = st.WithColor(col)
	case "bold":
		if boolValue(a.Value) {
			st = st.Bold()
		}
	case "italic":
		if boolValue(a.Value) {
			st = st.Italic()
		}
	default:
		return st, fmt.Errorf("第 %d 行: 未知的样式属性 %q", a.Pos.Line, a.Key)
	}
	return st, nil
}

func (c *compiler) compilePage(doc *layout.Document, page *PageSection) error {
	landscape := false
	for _, p := range page.Spec.Params {
		switch strings.ToLower(p.Value) {
		case "landscape":
			landscape = true
		case "portrait":
		default:
			return fmt.Errorf("第 %d 行: 未知的页面参数 %q", p.Pos.Line, p.Value)
		}
	}
	if err := doc.SetPaperPreset(page.Spec.Size, landscape); err != nil {
		return err
	}

	decorator := layout.NewSimpleDecorator()
	doc.SetPageDecorator(decorator)

	for _, stmt := range page.Block.Statements {
		switch {
		case stmt.Assignment != nil:
			a := stmt.Assignment
			switch a.Key {
			case "margins":
				m, err := marginsValue(a.Value)
				if err != nil {
					return fmt.Errorf("第 %d 行: %v", a.Pos.Line, err)
				}
				decorator.SetMargins(m)
			case "font", "size", "spacing", "color", "bold", "italic":
				st, err := c.applyStyleKey(doc.DefaultStyle(), a)
				if err != nil {
					return err
				}
				doc.SetDefaultStyle(st)
			default:
				return fmt.Errorf("第 %d 行: 未知的页面属性 %q", a.Pos.Line, a.Key)
			}
		case stmt.Command != nil && stmt.Command.Name == "header":
			if err := c.compileHeader(decorator, stmt.Command); err != nil {
				return err
			}
		case stmt.Command != nil:
			el, err := c.compileElement(stmt.Command)
			if err != nil {
				return err
			}
			doc.Push(el)
		case stmt.Text != nil:
			doc.Push(elements.NewParagraph(c.interpolate(string(stmt.Text.Value))))
		}
	}
	return nil
}

// compileHeader 处理 `header "第 %d 页" [样式名]`。
// 格式串含 %d 时代入页码，首页不绘制页眉。
func (c *compiler) compileHeader(decorator *layout.SimpleDecorator, cmd *Command) error {
	if len(cmd.Args) == 0 {
		return fmt.Errorf("第 %d 行: header 命令需要格式串", cmd.Pos.Line)
	}
	format := c.interpolate(cmd.Args[0].Value)
	st, hasStyle, err := c.styleArg(cmd.Args[1:])
	if err != nil {
		return err
	}
	decorator.SetHeader(func(page int) layout.Element {
		if page == 1 {
			return nil
		}
		text := format
		if strings.Contains(format, "%d") {
			text = fmt.Sprintf(format, page)
		}
		if hasStyle {
			return elements.NewStyledText(text, st)
		}
		return elements.NewText(text)
	})
	return nil
}

func (c *compiler) compileElement(cmd *Command) (layout.Element, error) {
	switch cmd.Name {
	case "paragraph":
		return c.compileParagraph(cmd)
	case "text":
		return c.compileText(cmd)
	case "break":
		lines := 1.0
		if len(cmd.Args) > 0 {
			n, err := strconv.ParseFloat(cmd.Args[0].Value, 64)
			if err != nil {
				return nil, fmt.Errorf("第 %d 行: break 的行数非法: %q", cmd.Pos.Line, cmd.Args[0].Value)
			}
			lines = n
		}
		return elements.NewBreak(lines), nil
	case "pagebreak":
		return elements.NewPageBreak(), nil
	case "stack":
		return c.compileStack(cmd)
	case "framed":
		return c.compileFramed(cmd)
	case "padded":
		return c.compilePadded(cmd)
	case "table":
		return c.compileTable(cmd)
	default:
		return nil, fmt.Errorf("第 %d 行: 未知的布局命令 %q", cmd.Pos.Line, cmd.Name)
	}
}

// compileParagraph 处理 `paragraph [样式名] [left|center|right] { ... }`。
// 块内裸字符串是正文段，`run <样式名> "文本"` 追加带覆盖样式的文本段。
func (c *compiler) compileParagraph(cmd *Command) (layout.Element, error) {
	p := elements.NewParagraph("")
	var wrap style.Style
	hasWrap := false
	for _, arg := range cmd.Args {
		switch strings.ToLower(arg.Value) {
		case "left":
			p.SetAlignment(elements.AlignLeft)
		case "center":
			p.SetAlignment(elements.AlignCenter)
		case "right":
			p.SetAlignment(elements.AlignRight)
		default:
			st, ok := c.styles[arg.Value]
			if !ok {
				return nil, fmt.Errorf("第 %d 行: 未定义的样式 %q", arg.Pos.Line, arg.Value)
			}
			wrap = wrap.Merge(st)
			hasWrap = true
		}
	}
	if cmd.Block != nil {
		for _, stmt := range cmd.Block.Statements {
			switch {
			case stmt.Text != nil:
				p.Append(c.interpolate(string(stmt.Text.Value)))
			case stmt.Command != nil && stmt.Command.Name == "run":
				if err := c.compileRun(p, stmt.Command); err != nil {
					return nil, err
				}
			default:
				return nil, fmt.Errorf("第 %d 行: paragraph 块只接受文本或 run 命令", stmt.line())
			}
		}
	}
	if hasWrap {
		return elements.Styled(p, wrap), nil
	}
	return p, nil
}

func (c *compiler) compileRun(p *elements.Paragraph, cmd *Command) error {
	var text string
	var st style.Style
	hasStyle := false
	for _, arg := range cmd.Args {
		if arg.Type == "String" {
			text = arg.Value
			continue
		}
		s, ok := c.styles[arg.Value]
		if !ok {
			return fmt.Errorf("第 %d 行: 未定义的样式 %q", arg.Pos.Line, arg.Value)
		}
		st = st.Merge(s)
		hasStyle = true
	}
	if text == "" {
		return fmt.Errorf("第 %d 行: run 命令需要文本", cmd.Pos.Line)
	}
	if hasStyle {
		p.AppendStyled(c.interpolate(text), st)
	} else {
		p.Append(c.interpolate(text))
	}
	return nil
}

// compileText 处理 `text [样式名] "内容"`。
func (c *compiler) compileText(cmd *Command) (layout.Element, error) {
	var content string
	hasContent := false
	var rest []*Lexeme
	for _, arg := range cmd.Args {
		if arg.Type == "String" && !hasContent {
			content = arg.Value
			hasContent = true
			continue
		}
		rest = append(rest, arg)
	}
	if !hasContent {
		return nil, fmt.Errorf("第 %d 行: text 命令需要内容字符串", cmd.Pos.Line)
	}
	st, hasStyle, err := c.styleArg(rest)
	if err != nil {
		return nil, err
	}
	if hasStyle {
		return elements.NewStyledText(c.interpolate(content), st), nil
	}
	return elements.NewText(c.interpolate(content)), nil
}

func (c *compiler) compileStack(cmd *Command) (layout.Element, error) {
	stack := elements.NewLinearLayout()
	if cmd.Block != nil {
		for _, stmt := range cmd.Block.Statements {
			if stmt.Command == nil {
				return nil, fmt.Errorf("第 %d 行: stack 块只接受布局命令", stmt.line())
			}
			el, err := c.compileElement(stmt.Command)
			if err != nil {
				return nil, err
			}
			stack.Push(el)
		}
	}
	return stack, nil
}

// compileFramed 处理 `framed { thickness: 0.5; color: #333; <子命令>... }`。
func (c *compiler) compileFramed(cmd *Command) (layout.Element, error) {
	line := style.NewLineStyle()
	inner := elements.NewLinearLayout()
	if cmd.Block != nil {
		for _, stmt := range cmd.Block.Statements {
			switch {
			case stmt.Assignment != nil:
				a := stmt.Assignment
				switch a.Key {
				case "thickness":
					l, err := lengthValue(a.Value)
					if err != nil {
						return nil, fmt.Errorf("第 %d 行: %v", a.Pos.Line, err)
					}
					line = line.WithThickness(l.ToMM())
				case "color":
					col, err := colorValue(a.Value)
					if err != nil {
						return nil, fmt.Errorf("第 %d 行: %v", a.Pos.Line, err)
					}
					line = line.WithColor(col)
				default:
					return nil, fmt.Errorf("第 %d 行: 未知的边框属性 %q", a.Pos.Line, a.Key)
				}
			case stmt.Command != nil:
				el, err := c.compileElement(stmt.Command)
				if err != nil {
					return nil, err
				}
				inner.Push(el)
			default:
				return nil, fmt.Errorf("第 %d 行: framed 块内的语句非法", stmt.line())
			}
		}
	}
	return elements.Framed(inner, line), nil
}

// compilePadded 处理 `padded 5mm { ... }`。
func (c *compiler) compilePadded(cmd *Command) (layout.Element, error) {
	if len(cmd.Args) == 0 {
		return nil, fmt.Errorf("第 %d 行: padded 命令需要留白尺寸", cmd.Pos.Line)
	}
	pad := layout.ParseLength(cmd.Args[0].Value).ToMM()
	inner := elements.NewLinearLayout()
	if cmd.Block != nil {
		for _, stmt := range cmd.Block.Statements {
			if stmt.Command == nil {
				return nil, fmt.Errorf("第 %d 行: padded 块只接受布局命令", stmt.line())
			}
			el, err := c.compileElement(stmt.Command)
			if err != nil {
				return nil, err
			}
			inner.Push(el)
		}
	}
	return elements.Padded(inner, layout.UniformMargins(pad)), nil
}

// compileTable 处理表格块：
//
//	table {
//	    columns: [2, 1]
//	    borders: all        // none | outer | all
//	    row { background: #f8f8f8; cell { ... } cell { ... } }
//	}
func (c *compiler) compileTable(cmd *Command) (layout.Element, error) {
	if cmd.Block == nil {
		return nil, fmt.Errorf("第 %d 行: table 命令需要块", cmd.Pos.Line)
	}
	var table *elements.TableLayout
	var pending []*Command
	for _, stmt := range cmd.Block.Statements {
		switch {
		case stmt.Assignment != nil:
			a := stmt.Assignment
			switch a.Key {
			case "columns":
				if a.Value.Array == nil {
					return nil, fmt.Errorf("第 %d 行: columns 需要一个数字数组", a.Pos.Line)
				}
				var weights []float64
				for _, v := range a.Value.Array.Values {
					n, ok := numberValue(v)
					if !ok {
						return nil, fmt.Errorf("第 %d 行: 列权重必须是数字", a.Pos.Line)
					}
					weights = append(weights, n)
				}
				table = elements.NewTableLayout(weights)
			case "borders":
				if table == nil {
					return nil, fmt.Errorf("第 %d 行: borders 必须出现在 columns 之后", a.Pos.Line)
				}
				switch strings.ToLower(c.exprIdent(a.Value)) {
				case "none":
				case "outer":
					table.SetCellDecorator(elements.NewFrameCellDecorator(false, true, false))
				case "all":
					table.SetCellDecorator(elements.NewFrameCellDecorator(true, true, true))
				default:
					return nil, fmt.Errorf("第 %d 行: 未知的边框模式", a.Pos.Line)
				}
			default:
				return nil, fmt.Errorf("第 %d 行: 未知的表格属性 %q", a.Pos.Line, a.Key)
			}
		case stmt.Command != nil && stmt.Command.Name == "row":
			if table == nil {
				pending = append(pending, stmt.Command)
				continue
			}
			if err := c.compileRow(table, stmt.Command); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("第 %d 行: table 块内的语句非法", stmt.line())
		}
	}
	if table == nil {
		return nil, fmt.Errorf("第 %d 行: 表格缺少 columns 定义", cmd.Pos.Line)
	}
	for _, row := range pending {
		if err := c.compileRow(table, row); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func (c *compiler) compileRow(table *elements.TableLayout, cmd *Command) error {
	row := table.Row()
	if cmd.Block != nil {
		for _, stmt := range cmd.Block.Statements {
			switch {
			case stmt.Assignment != nil && stmt.Assignment.Key == "background":
				col, err := colorValue(stmt.Assignment.Value)
				if err != nil {
					return fmt.Errorf("第 %d 行: %v", stmt.Assignment.Pos.Line, err)
				}
				row.SetBackground(col)
			case stmt.Command != nil && stmt.Command.Name == "cell":
				cell := elements.NewLinearLayout()
				if stmt.Command.Block != nil {
					for _, inner := range stmt.Command.Block.Statements {
						switch {
						case inner.Command != nil:
							el, err := c.compileElement(inner.Command)
							if err != nil {
								return err
							}
							cell.Push(el)
						case inner.Text != nil:
							cell.Push(elements.NewParagraph(c.interpolate(string(inner.Text.Value))))
						default:
							return fmt.Errorf("第 %d 行: cell 块内的语句非法", inner.line())
						}
					}
				}
				row.Element(cell)
			default:
				return fmt.Errorf("第 %d 行: row 块只接受 background 与 cell", stmt.line())
			}
		}
	}
	return row.Push()
}

// styleArg 解析参数尾部的可选样式名列表。
func (c *compiler) styleArg(args []*Lexeme) (style.Style, bool, error) {
	var st style.Style
	has := false
	for _, arg := range args {
		s, ok := c.styles[arg.Value]
		if !ok {
			return st, false, fmt.Errorf("第 %d 行: 未定义的样式 %q", arg.Pos.Line, arg.Value)
		}
		st = st.Merge(s)
		has = true
	}
	return st, has, nil
}

func (c *compiler) interpolate(text string) string {
	return binding.Interpolate(text, c.data)
}

func (c *compiler) stringValue(v *Value) string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return c.interpolate(string(*v.String))
	case v.Number != nil:
		return *v.Number
	case v.Expr != nil:
		parts := make([]string, 0, len(v.Expr.Parts))
		for _, p := range v.Expr.Parts {
			parts = append(parts, p.Value)
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

func (c *compiler) exprIdent(v *Value) string {
	if v != nil && v.Expr != nil && len(v.Expr.Parts) == 1 {
		return v.Expr.Parts[0].Value
	}
	return ""
}

func numberValue(v *Value) (float64, bool) {
	if v == nil || v.Number == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimRight(*v.Number, "ptmcin"), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func lengthValue(v *Value) (layout.Length, error) {
	if v == nil || v.Number == nil {
		return layout.Length{}, fmt.Errorf("需要一个长度值")
	}
	return layout.ParseLength(*v.Number), nil
}

func boolValue(v *Value) bool {
	if v == nil || v.Expr == nil || len(v.Expr.Parts) != 1 {
		return false
	}
	return strings.EqualFold(v.Expr.Parts[0].Value, "true")
}

func colorValue(v *Value) (style.Color, error) {
	if v == nil || v.Color == nil {
		return style.Color{}, fmt.Errorf("需要一个 #RRGGBB 颜色")
	}
	return parseHexColor(*v.Color)
}

func parseHexColor(s string) (style.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 8 {
		hex = hex[:6] // 忽略透明度分量
	}
	if len(hex) != 6 {
		return style.Color{}, fmt.Errorf("非法的颜色 %q", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return style.Color{}, fmt.Errorf("非法的颜色 %q", s)
	}
	return style.RGB(int(n>>16&0xff), int(n>>8&0xff), int(n&0xff)), nil
}

func marginsValue(v *Value) (layout.Margins, error) {
	if v == nil {
		return layout.Margins{}, fmt.Errorf("需要一个长度或四元数组")
	}
	if v.Number != nil {
		return layout.UniformMargins(layout.ParseLength(*v.Number).ToMM()), nil
	}
	if v.Array != nil {
		if len(v.Array.Values) != 4 {
			return layout.Margins{}, fmt.Errorf("margins 数组需要 [上, 右, 下, 左] 四个值")
		}
		vals := make([]float64, 4)
		for i, item := range v.Array.Values {
			if item.Number == nil {
				return layout.Margins{}, fmt.Errorf("margins 数组元素必须是长度")
			}
			vals[i] = layout.ParseLength(*item.Number).ToMM()
		}
		return layout.Margins{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
	return layout.Margins{}, fmt.Errorf("需要一个长度或四元数组")
}
