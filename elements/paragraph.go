package elements

import (
	"unicode"

	"github.com/ByLCY/vellum/fonts"
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/style"
)

// Alignment 控制段落内各行的水平对齐方式。
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// StyledString 是段落中带样式覆盖的一段文本。
type StyledString struct {
	Text  string
	Style style.Style
}

// Paragraph 把若干段带样式的文本按可用宽度折行渲染，
// 行内自动应用字距调整，跨页时从中断的词元继续。
type Paragraph struct {
	runs  []StyledString
	align Alignment
}

// NewParagraph 创建一个只含一段无覆盖文本的段落。
func NewParagraph(text string) *Paragraph {
	p := &Paragraph{}
	if text != "" {
		p.runs = append(p.runs, StyledString{Text: text})
	}
	return p
}

// Append 追加一段无样式覆盖的文本。
func (p *Paragraph) Append(text string) *Paragraph {
	p.runs = append(p.runs, StyledString{Text: text})
	return p
}

// AppendStyled 追加一段带样式覆盖的文本。
func (p *Paragraph) AppendStyled(text string, st style.Style) *Paragraph {
	p.runs = append(p.runs, StyledString{Text: text, Style: st})
	return p
}

// SetAlignment 设置水平对齐方式。
func (p *Paragraph) SetAlignment(a Alignment) *Paragraph {
	p.align = a
	return p
}

// frag 是词元中样式一致的一段文本，宽度含内部字距调整。
type frag struct {
	text  string
	style style.Style
	face  *fonts.Face
	width float64
}

// token 要么是一个词（一个或多个样式不同的 frag），要么是一个空格。
type token struct {
	frags []frag
	space bool
	width float64
}

// Render 实现 layout.Element。
func (p *Paragraph) Render(ctx *layout.Context, area layout.Area, st style.Style) (layout.RenderResult, error) {
	tokens, err := p.tokenize(ctx, st)
	if err != nil {
		return layout.RenderResult{}, err
	}
	if len(tokens) == 0 {
		return layout.Complete(layout.Size{Height: st.LineHeight()}), nil
	}
	return layoutTokens(area, tokens, p.align)
}

// tokenize 把各段文本切分为词与空格词元。相邻且有效样式相同的
// 文本段先合并，保证同一词在同一样式下的切分方式与书写方式无关。
func (p *Paragraph) tokenize(ctx *layout.Context, st style.Style) ([]token, error) {
	type blob struct {
		text  string
		style style.Style
		face  *fonts.Face
	}
	var blobs []blob
	for _, run := range p.runs {
		eff := st.Merge(run.Style)
		if len(blobs) > 0 && blobs[len(blobs)-1].style == eff {
			blobs[len(blobs)-1].text += run.Text
			continue
		}
		face, err := ctx.Fonts.Face(eff)
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, blob{text: run.Text, style: eff, face: face})
	}

	var tokens []token
	var word token
	flushWord := func() {
		if len(word.frags) > 0 {
			tokens = append(tokens, word)
			word = token{}
		}
	}
	for _, b := range blobs {
		start := -1
		flushFrag := func(end int) {
			if start < 0 {
				return
			}
			text := b.text[start:end]
			f := frag{text: text, style: b.style, face: b.face}
			f.width = b.face.TextWidth(text, b.style.FontSize())
			word.frags = append(word.frags, f)
			word.width += f.width
			start = -1
		}
		for i, r := range b.text {
			if unicode.IsSpace(r) {
				flushFrag(i)
				flushWord()
				if len(tokens) > 0 && !tokens[len(tokens)-1].space {
					sp := frag{text: " ", style: b.style, face: b.face}
					sp.width = b.face.Advance(' ', b.style.FontSize())
					tokens = append(tokens, token{frags: []frag{sp}, space: true, width: sp.width})
				}
				continue
			}
			if start < 0 {
				start = i
			}
		}
		flushFrag(len(b.text))
	}
	flushWord()
	for len(tokens) > 0 && tokens[len(tokens)-1].space {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens, nil
}

// paragraphRest 是段落跨页后的延续：词元已经携带有效样式，直接续排。
type paragraphRest struct {
	tokens []token
	align  Alignment
}

func (p *paragraphRest) Render(ctx *layout.Context, area layout.Area, st style.Style) (layout.RenderResult, error) {
	return layoutTokens(area, p.tokens, p.align)
}

// layoutTokens 贪心折行并绘制。一行中的词元按词测宽，
// 折行处的空格不占宽度；区域剩余高度放不下下一行时，
// 以未排词元构造延续返回。
func layoutTokens(area layout.Area, tokens []token, align Alignment) (layout.RenderResult, error) {
	var total layout.Size
	i := 0
	for i < len(tokens) {
		// 跳过行首空格。
		for i < len(tokens) && tokens[i].space {
			i++
		}
		if i >= len(tokens) {
			break
		}
		lineStart := i
		lineWidth := 0.0
		pending := 0.0 // 行尾待定空格宽度，折行时丢弃
		for i < len(tokens) {
			t := tokens[i]
			if t.space {
				pending += t.width
				i++
				continue
			}
			if lineWidth+pending+t.width > area.Width() && lineWidth > 0 {
				break
			}
			if t.width > area.Width() {
				word := ""
				for _, f := range t.frags {
					word += f.text
				}
				return layout.RenderResult{}, layout.NewLayoutError(
					"单词 %q 宽 %.1f mm，超出可用宽度 %.1f mm", word, t.width, area.Width())
			}
			lineWidth += pending + t.width
			pending = 0
			i++
		}

		line := tokens[lineStart:i]
		for len(line) > 0 && line[len(line)-1].space {
			line = line[:len(line)-1]
		}
		lineHeight := 0.0
		ascent := 0.0
		for _, t := range line {
			for _, f := range t.frags {
				if h := f.style.LineHeight(); h > lineHeight {
					lineHeight = h
				}
				if a := f.face.Ascent(f.style.FontSize()); a > ascent {
					ascent = a
				}
			}
		}
		if area.Remaining() < lineHeight {
			rest := &paragraphRest{tokens: tokens[lineStart:], align: align}
			return layout.Continued(total, rest), nil
		}

		x := 0.0
		switch align {
		case AlignCenter:
			x = (area.Width() - lineWidth) / 2
		case AlignRight:
			x = area.Width() - lineWidth
		}
		drawLine(area, line, x, area.Cursor()+ascent)

		total.Height += lineHeight
		if lineWidth > total.Width {
			total.Width = lineWidth
		}
		area.Advance(lineHeight)
	}
	return layout.Complete(total), nil
}

// drawLine 绘制一行：相邻且样式相同的 frag 合并成一次文本绘制，
// 使字距调整跨越 frag 边界连续生效。
func drawLine(area layout.Area, line []token, x, baseline float64) {
	var runText string
	var runStyle style.Style
	var runFace *fonts.Face
	flush := func() {
		if runText == "" {
			return
		}
		area.DrawText(layout.Position{X: x, Y: baseline}, runText, runStyle)
		x += runFace.TextWidth(runText, runStyle.FontSize())
		runText = ""
	}
	for _, t := range line {
		for _, f := range t.frags {
			if runText != "" && runStyle != f.style {
				flush()
			}
			if runText == "" {
				runStyle = f.style
				runFace = f.face
			}
			runText += f.text
		}
	}
	flush()
}
