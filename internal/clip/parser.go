package clip

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseManifestFile 从磁盘读取并解析片段清单
//
// 参数:
//   - path: 清单文件路径，如 "data/book.yaml"
//
// 返回:
//   - *Manifest: 解析并校验后的清单
//   - error: 读取、解析或校验失败时的错误
//
// 用法:
//
//	m, err := ParseManifestFile("data/book.yaml")
//	if err != nil {
//	    log.Fatalf("清单解析失败: %v", err)
//	}
//	fmt.Printf("片段数量: %d\n", len(m.Clips))
func ParseManifestFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clip manifest '%s': %w", path, err)
	}
	return ParseManifest(data, path)
}

// ParseManifestFS 从文件系统（如嵌入数据）读取并解析片段清单
func ParseManifestFS(fsys fs.FS, path string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clip manifest '%s': %w", path, err)
	}
	return ParseManifest(data, path)
}

// ParseManifest 解析清单 YAML，source 只用于错误信息
func ParseManifest(data []byte, source string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse YAML from '%s': %w", source, err)
	}
	if err := validateManifest(&m); err != nil {
		return nil, fmt.Errorf("invalid clip manifest '%s': %w", source, err)
	}
	return &m, nil
}

// validateManifest 验证片段清单的完整性
func validateManifest(m *Manifest) error {
	names := make(map[string]bool, len(m.Clips))
	for i, c := range m.Clips {
		if c == nil {
			return fmt.Errorf("clip #%d is empty", i)
		}
		if c.Name == "" {
			return fmt.Errorf("clip #%d is missing 'name'", i)
		}
		if names[c.Name] {
			return fmt.Errorf("duplicate clip name '%s'", c.Name)
		}
		names[c.Name] = true

		// 时长必须为正：播放驱动不处理无时长的片段
		if c.Duration <= 0 {
			return fmt.Errorf("clip '%s' has non-positive duration %.3f", c.Name, c.Duration)
		}
		if len(c.Tracks) == 0 {
			return fmt.Errorf("clip '%s' has no tracks", c.Name)
		}
	}
	return nil
}
