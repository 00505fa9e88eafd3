package scenes

import (
	"fmt"
	"log"
	"os"

	"github.com/decker502/bookviewer/internal/clip"
	"github.com/decker502/bookviewer/pkg/embedded"
)

// LoadManifest 加载片段清单
//
// 查找顺序：
//  1. path 为空时使用内置示例 data/book.yaml
//  2. 磁盘上存在的文件
//  3. 内置数据中的同名文件
func LoadManifest(path string) (*clip.Manifest, error) {
	if path == "" {
		path = embedded.DefaultManifestPath
	}

	if _, err := os.Stat(path); err == nil {
		log.Printf("[BookScene] 从文件加载片段清单: %s", path)
		return clip.ParseManifestFile(path)
	}

	dataFS, err := embedded.FS()
	if err != nil {
		return nil, fmt.Errorf("manifest %s not found on disk: %w", path, err)
	}
	log.Printf("[BookScene] 从内置数据加载片段清单: %s", path)
	return clip.ParseManifestFS(dataFS, path)
}

// logUnboundTracks 报告绑定不到任何节点的轨道
func logUnboundTracks(m *clip.Manifest) {
	for _, u := range m.UnboundTracks() {
		log.Printf("[BookScene] Warning: 片段 %s 的轨道 %s 找不到节点 %q", u.Clip, u.Track, u.Node)
	}
}
