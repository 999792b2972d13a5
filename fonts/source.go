package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsFile 判断字族是否为字体文件路径。
func IsFile(family string) bool {
	ext := strings.ToLower(filepath.Ext(family))
	return ext == ".ttf" || ext == ".otf"
}

// Bytes 返回字族对应的字体数据与缓存键。字族为 .ttf/.otf 路径时从 baseDir 读取文件，
// "embed:" 前缀直接取内置字体，其余按 Resolve 映射。
func Bytes(family string, weight int, baseDir string) ([]byte, string, error) {
	switch {
	case strings.HasPrefix(family, "embed:"):
		data, err := Load(family)
		return data, family, err
	case IsFile(family):
		path := family
		if !filepath.IsAbs(path) {
			if baseDir == "" {
				return nil, "", fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s", family)
			}
			path = filepath.Join(baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("读取字体 %s 失败: %w", family, err)
		}
		return data, "file:" + path, nil
	}
	name := Resolve(family, weight)
	data, err := Load(name)
	return data, name, err
}
