package layout

import "fmt"

// 错误分级：ConfigurationError 在产生任何页面之前报告且不可恢复；
// LayoutError 在构建或渲染元素时报告，调用方修正输入后可以重试。
// 渲染后端自身的错误不做包装，原样向上传递。

// ConfigurationError 表示文档配置无法开始渲染（字体缺失、页面区域非正等）。
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "配置错误: " + e.Reason
}

// NewConfigurationError 按 fmt 格式构造配置错误。
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// LayoutError 表示某个元素无法按给定约束布局（行列不匹配、权重非法、无法折行的超宽词等）。
type LayoutError struct {
	Reason string
}

func (e *LayoutError) Error() string {
	return "布局错误: " + e.Reason
}

// NewLayoutError 按 fmt 格式构造布局错误。
func NewLayoutError(format string, args ...any) *LayoutError {
	return &LayoutError{Reason: fmt.Sprintf(format, args...)}
}
