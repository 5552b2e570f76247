package fonts

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed DejaVu/*.ttf
var fontFS embed.FS

// BuiltinFamily 是内置回退字体族的名称。
const BuiltinFamily = "DejaVu Sans"

// Load 返回内置字体的字节数据，path 可写为 "embed:DejaVu/DejaVuSans.ttf" 或直接 "DejaVu/DejaVuSans.ttf"。
func Load(path string) ([]byte, error) {
	path = strings.TrimPrefix(path, "embed:")
	clean := strings.TrimPrefix(path, "DejaVu/")
	target := "DejaVu/" + clean
	data, err := fontFS.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("读取内置字体 %s 失败: %w", target, err)
	}
	return data, nil
}

// loadBuiltinFamily 构建内置回退族：常规与加粗取自 DejaVu Sans，
// 斜体形态缺失，由 Family.Face 回退到常规。
func loadBuiltinFamily() (*Family, error) {
	fam := &Family{name: BuiltinFamily}
	for _, entry := range []struct {
		v    Variant
		file string
	}{
		{Regular, "DejaVu/DejaVuSans.ttf"},
		{Bold, "DejaVu/DejaVuSans-Bold.ttf"},
	} {
		data, err := Load(entry.file)
		if err != nil {
			return nil, err
		}
		face, err := newFace(data)
		if err != nil {
			return nil, err
		}
		fam.faces[entry.v] = face
	}
	return fam, nil
}
