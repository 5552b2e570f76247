// Package style 定义可继承的文本样式与线条样式。
// Style 按“覆盖式合并”组合：子样式未设置的字段沿祖先链继承。
package style

// pt→mm 换算系数（与 layout 包保持一致，style 不依赖 layout）。
const ptToMm = 0.352777

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// 常用颜色。
var (
	Black = Color{R: 0, G: 0, B: 0}
	White = Color{R: 255, G: 255, B: 255}
)

// RGB 构造一个颜色值，通道范围 0-255。
func RGB(r, g, b int) Color { return Color{R: r, G: g, B: b} }

type attrMask uint8

const (
	attrFamily attrMask = 1 << iota
	attrSize
	attrSpacing
	attrColor
	attrBold
	attrItalic
)

// 根样式的缺省值：12pt、黑色、1.2 倍行距。
const (
	DefaultFontSize    = 12.0
	DefaultLineSpacing = 1.2
)

// Style 是一组可继承的文本属性。零值表示“全部继承”，
// 通过 With* 方法逐项设置；Merge 实现覆盖式合并。
// 读取方法对未设置的字段返回缺省值，因此解析总是完整的。
type Style struct {
	fontFamily  string
	fontSize    float64 // pt
	lineSpacing float64 // 行高倍数
	color       Color
	bold        bool
	italic      bool
	set         attrMask
}

// New 返回一个不设置任何字段的样式。
func New() Style { return Style{} }

// WithFontFamily 设置字体族名称。
func (s Style) WithFontFamily(name string) Style {
	s.fontFamily = name
	s.set |= attrFamily
	return s
}

// WithFontSize 设置字号（pt）。
func (s Style) WithFontSize(pt float64) Style {
	s.fontSize = pt
	s.set |= attrSize
	return s
}

// WithLineSpacing 设置行高倍数。
func (s Style) WithLineSpacing(factor float64) Style {
	s.lineSpacing = factor
	s.set |= attrSpacing
	return s
}

// WithColor 设置文本颜色。
func (s Style) WithColor(c Color) Style {
	s.color = c
	s.set |= attrColor
	return s
}

// Bold 设置加粗。
func (s Style) Bold() Style {
	s.bold = true
	s.set |= attrBold
	return s
}

// Italic 设置斜体。
func (s Style) Italic() Style {
	s.italic = true
	s.set |= attrItalic
	return s
}

// FontFamily 返回字体族名称，未设置时为空字符串（由字体后端回退）。
func (s Style) FontFamily() string { return s.fontFamily }

// FontSize 返回字号（pt），未设置时为 DefaultFontSize。
func (s Style) FontSize() float64 {
	if s.set&attrSize == 0 {
		return DefaultFontSize
	}
	return s.fontSize
}

// LineSpacing 返回行高倍数，未设置时为 DefaultLineSpacing。
func (s Style) LineSpacing() float64 {
	if s.set&attrSpacing == 0 {
		return DefaultLineSpacing
	}
	return s.lineSpacing
}

// Color 返回文本颜色，未设置时为黑色。
func (s Style) Color() Color {
	if s.set&attrColor == 0 {
		return Black
	}
	return s.color
}

// IsBold 报告是否加粗。
func (s Style) IsBold() bool { return s.set&attrBold != 0 && s.bold }

// IsItalic 报告是否斜体。
func (s Style) IsItalic() bool { return s.set&attrItalic != 0 && s.italic }

// LineHeight 返回单行占用的高度（mm）= 字号 × 行高倍数。
func (s Style) LineHeight() float64 {
	return s.FontSize() * ptToMm * s.LineSpacing()
}

// Merge 返回覆盖式合并的结果：over 中已设置的字段覆盖 s，
// 其余字段沿用 s。合并满足结合律，可沿祖先链逐层应用。
func (s Style) Merge(over Style) Style {
	out := s
	if over.set&attrFamily != 0 {
		out.fontFamily = over.fontFamily
	}
	if over.set&attrSize != 0 {
		out.fontSize = over.fontSize
	}
	if over.set&attrSpacing != 0 {
		out.lineSpacing = over.lineSpacing
	}
	if over.set&attrColor != 0 {
		out.color = over.color
	}
	if over.set&attrBold != 0 {
		out.bold = over.bold
	}
	if over.set&attrItalic != 0 {
		out.italic = over.italic
	}
	out.set |= over.set
	return out
}

// LineStyle 描述线条的粗细与颜色，用于边框与表格线。
type LineStyle struct {
	thickness float64 // mm
	color     Color
}

// DefaultLineThickness 是未显式设置时的线宽（mm）。
const DefaultLineThickness = 0.1

// NewLineStyle 返回缺省线条样式（0.1mm、黑色）。
func NewLineStyle() LineStyle {
	return LineStyle{thickness: DefaultLineThickness, color: Black}
}

// WithThickness 设置线宽（mm）。
func (l LineStyle) WithThickness(mm float64) LineStyle {
	l.thickness = mm
	return l
}

// WithColor 设置线条颜色。
func (l LineStyle) WithColor(c Color) LineStyle {
	l.color = c
	return l
}

// Thickness 返回线宽（mm），非正值按缺省线宽处理。
func (l LineStyle) Thickness() float64 {
	if l.thickness <= 0 {
		return DefaultLineThickness
	}
	return l.thickness
}

// Color 返回线条颜色。
func (l LineStyle) Color() Color { return l.color }
