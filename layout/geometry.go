package layout

// 该文件定义布局引擎使用的几何基础类型，单位均为毫米（mm）。
// 坐标系以页面左上角为原点，Y 轴向下（与渲染后端的 CartesianIV 一致）。

// Position 表示页面上的一个点。
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add 返回平移后的位置。
func (p Position) Add(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Size 表示一个矩形范围的宽高。
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Stack 返回两个尺寸垂直堆叠后的包围尺寸：宽取最大值，高相加。
func (s Size) Stack(other Size) Size {
	w := s.Width
	if other.Width > w {
		w = other.Width
	}
	return Size{Width: w, Height: s.Height + other.Height}
}

// Rect 表示一个矩形（左上角坐标 + 宽高）。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Margins 以毫米为单位描述四边留白。
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// UniformMargins 返回四边相同的留白。
func UniformMargins(v float64) Margins {
	return Margins{Top: v, Right: v, Bottom: v, Left: v}
}
