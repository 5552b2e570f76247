// Package fonts 是布局核心使用的字体后端：
// 解析 SFNT 字体、按字体族与强调形态管理字形面，
// 并以毫米为单位回答字形宽度、字距与行度量查询。
// 查询接口只读，可在多个文档与渲染过程之间共享。
package fonts

import (
	"fmt"
	"os"
	"sync"

	"github.com/tdewolff/font"

	"github.com/ByLCY/vellum/style"
)

// pt→mm 换算系数（与 layout.PtToMm 一致，fonts 不依赖 layout）。
const ptToMm = 0.352777

// Variant 标识字体族内的一个强调形态。
type Variant int

const (
	Regular Variant = iota
	Bold
	Italic
	BoldItalic
)

// VariantOf 根据加粗/斜体标志返回对应形态。
func VariantOf(bold, italic bool) Variant {
	switch {
	case bold && italic:
		return BoldItalic
	case bold:
		return Bold
	case italic:
		return Italic
	default:
		return Regular
	}
}

// Face 是一个已解析字体的度量视图。
type Face struct {
	sfnt *font.SFNT
	data []byte
}

func newFace(data []byte) (*Face, error) {
	sfnt, err := font.ParseSFNT(data, 0)
	if err != nil {
		return nil, fmt.Errorf("解析字体失败: %w", err)
	}
	return &Face{sfnt: sfnt, data: data}, nil
}

// Data 返回原始字体字节，供渲染后端构建自己的字体对象。
func (f *Face) Data() []byte { return f.data }

// scale 返回“字体单位 → mm”的换算系数。
func (f *Face) scale(sizePt float64) float64 {
	upem := float64(f.sfnt.Head.UnitsPerEm)
	if upem <= 0 {
		upem = 1000
	}
	return sizePt / upem * ptToMm
}

// Advance 返回单个字符的步进宽度（mm）。
func (f *Face) Advance(r rune, sizePt float64) float64 {
	gid := f.sfnt.GlyphIndex(r)
	return float64(f.sfnt.GlyphAdvance(gid)) * f.scale(sizePt)
}

// Kerning 返回相邻字符对的字距调整（mm），无调整时为 0。
func (f *Face) Kerning(prev, next rune, sizePt float64) float64 {
	left := f.sfnt.GlyphIndex(prev)
	right := f.sfnt.GlyphIndex(next)
	return float64(f.sfnt.Kerning(left, right)) * f.scale(sizePt)
}

// TextWidth 返回整段文本的宽度（mm）：逐字形步进宽度之和，
// 加上每个相邻字形对的字距调整。与把文本任意切分后逐段累加
//（段间补上边界字距）的结果一致。
func (f *Face) TextWidth(text string, sizePt float64) float64 {
	scale := f.scale(sizePt)
	width := 0.0
	prev := uint16(0)
	first := true
	for _, r := range text {
		gid := f.sfnt.GlyphIndex(r)
		if !first {
			width += float64(f.sfnt.Kerning(prev, gid)) * scale
		}
		width += float64(f.sfnt.GlyphAdvance(gid)) * scale
		prev = gid
		first = false
	}
	return width
}

// Ascent 返回基线以上的高度（mm）。
func (f *Face) Ascent(sizePt float64) float64 {
	return float64(f.sfnt.Hhea.Ascender) * f.scale(sizePt)
}

// Descent 返回基线以下的深度（mm，正值）。
func (f *Face) Descent(sizePt float64) float64 {
	return -float64(f.sfnt.Hhea.Descender) * f.scale(sizePt)
}

// Family 是一组同名字体面（常规/加粗/斜体/粗斜体）。
type Family struct {
	name  string
	faces [4]*Face
}

// Name 返回字体族名称。
func (fam *Family) Name() string { return fam.name }

// Face 返回请求形态的字体面；缺失的形态按 粗斜→粗→常规 逐级回退。
func (fam *Family) Face(bold, italic bool) *Face {
	order := []Variant{VariantOf(bold, italic)}
	if bold && italic {
		order = append(order, Bold)
	}
	order = append(order, Regular)
	for _, v := range order {
		if fam.faces[v] != nil {
			return fam.faces[v]
		}
	}
	for _, face := range fam.faces {
		if face != nil {
			return face
		}
	}
	return nil
}

// Collection 按名字管理字体族，并在查询失败时回退到内置字体族。
// 所有修改（LoadFont）应在渲染开始前完成；查询方法并发安全。
type Collection struct {
	mu       sync.Mutex
	families map[string]*Family
	fallback *Family
}

// NewCollection 返回一个空的字体集合。内置回退族按需惰性加载。
func NewCollection() *Collection {
	return &Collection{families: map[string]*Family{}}
}

// LoadFont 把一份字体数据注册为 family 的指定形态。
func (c *Collection) LoadFont(family string, v Variant, data []byte) error {
	if family == "" {
		return fmt.Errorf("字体族名称不能为空")
	}
	face, err := newFace(data)
	if err != nil {
		return fmt.Errorf("加载字体 %s 失败: %w", family, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fam, ok := c.families[family]
	if !ok {
		fam = &Family{name: family}
		c.families[family] = fam
	}
	fam.faces[v] = face
	return nil
}

// LoadFontFile 从磁盘文件注册字体。
func (c *Collection) LoadFontFile(family string, v Variant, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取字体文件 %s 失败: %w", path, err)
	}
	return c.LoadFont(family, v, data)
}

// Family 按名字解析字体族。名字为空或未注册时返回内置回退族；
// 内置族也不可用时返回错误（调用方应作为配置错误处理）。
func (c *Collection) Family(name string) (*Family, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name != "" {
		if fam, ok := c.families[name]; ok {
			return fam, nil
		}
	}
	return c.builtinLocked()
}

func (c *Collection) builtinLocked() (*Family, error) {
	if c.fallback != nil {
		return c.fallback, nil
	}
	fam, err := loadBuiltinFamily()
	if err != nil {
		return nil, fmt.Errorf("没有可用的字体族: %w", err)
	}
	c.fallback = fam
	return fam, nil
}

// Face 按样式解析字体面：先解析字体族，再按强调形态取面。
func (c *Collection) Face(st style.Style) (*Face, error) {
	fam, err := c.Family(st.FontFamily())
	if err != nil {
		return nil, err
	}
	face := fam.Face(st.IsBold(), st.IsItalic())
	if face == nil {
		return nil, fmt.Errorf("字体族 %s 没有任何可用的字体面", fam.Name())
	}
	return face, nil
}
