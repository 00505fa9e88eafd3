package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/bookviewer/pkg/book"
	"github.com/decker502/bookviewer/pkg/components"
)

// TestDefaultViewerConfig 测试默认配置有效且与原始查看器一致
func TestDefaultViewerConfig(t *testing.T) {
	c := DefaultViewerConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.Policy.LaterPages != LaterPagesAutoClose || c.Policy.AutoOpenBook {
		t.Errorf("unexpected default policy: %+v", c.Policy)
	}
	if !c.Pan.Enabled || c.Pan.Radius != 10 {
		t.Errorf("unexpected default pan: %+v", c.Pan)
	}
	if got := c.Pan.OriginVec(); got != (components.Vec3{X: -9.121, Y: 0.358, Z: -3.984}) {
		t.Errorf("pan origin = %v", got)
	}
	if c.BookPolicy() != book.DefaultPolicy() {
		t.Errorf("BookPolicy() = %+v, want default", c.BookPolicy())
	}
}

// TestParseViewerConfig 测试部分覆盖默认值
func TestParseViewerConfig(t *testing.T) {
	data := []byte(`
policy:
  later_pages: reject
  auto_open_book: true
playback:
  speed: 2
pan:
  enabled: false
`)
	c, err := ParseViewerConfig(data, "test.yaml")
	if err != nil {
		t.Fatalf("ParseViewerConfig() error: %v", err)
	}

	want := book.Policy{LaterPages: book.RejectLaterPages, AutoOpenBook: true}
	if got := c.BookPolicy(); got != want {
		t.Errorf("BookPolicy() = %+v, want %+v", got, want)
	}
	if c.Playback.Speed != 2 || c.Playback.TPS != 60 {
		t.Errorf("playback = %+v, want speed 2 and default tps", c.Playback)
	}
	if c.Pan.Enabled {
		t.Error("pan.enabled should be overridden to false")
	}
	if c.Pan.Radius != 10 {
		t.Errorf("pan.radius = %v, want default 10", c.Pan.Radius)
	}
}

// TestParseViewerConfig_Invalid 测试校验错误
func TestParseViewerConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"未知策略", "policy:\n  later_pages: sometimes\n", "policy.later_pages"},
		{"非正 TPS", "playback:\n  tps: 0\n", "playback.tps"},
		{"非正速度", "playback:\n  speed: -1\n", "playback.speed"},
		{"镜头位置分量不足", "camera:\n  desktop:\n    position: [1, 2]\n", "camera.desktop"},
		{"视角超出范围", "camera:\n  mobile:\n    fov: 190\n", "camera.mobile"},
		{"距离限制颠倒", "camera:\n  mobile:\n    min_distance: 50\n", "min_distance"},
		{"负半径", "pan:\n  radius: -1\n", "pan.radius"},
		{"原点分量不足", "pan:\n  origin: [1]\n", "pan.origin"},
		{"YAML 语法错误", "policy: [\n", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseViewerConfig([]byte(tt.yaml), "bad.yaml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

// TestLoadViewerConfig 测试从文件与 fs.FS 加载
func TestLoadViewerConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer_config.yaml")
	if err := os.WriteFile(path, []byte("playback:\n  tps: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadViewerConfig(path)
	if err != nil {
		t.Fatalf("LoadViewerConfig() error: %v", err)
	}
	if c.Playback.TPS != 30 {
		t.Errorf("tps = %d, want 30", c.Playback.TPS)
	}

	if _, err := LoadViewerConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	fsys := fstest.MapFS{
		"data/viewer_config.yaml": {Data: []byte("policy:\n  auto_open_book: true\n")},
	}
	c, err = LoadViewerConfigFS(fsys, "data/viewer_config.yaml")
	if err != nil {
		t.Fatalf("LoadViewerConfigFS() error: %v", err)
	}
	if !c.Policy.AutoOpenBook {
		t.Error("auto_open_book not loaded")
	}
}

// TestCameraPreset 测试镜头预设选择与组件创建
func TestCameraPreset(t *testing.T) {
	c := DefaultViewerConfig()

	desktop := c.Camera.Preset(false).NewCamera()
	if desktop.Position != (components.Vec3{X: -4.459, Y: 0.474, Z: 21.784}) {
		t.Errorf("desktop position = %v", desktop.Position)
	}
	if desktop.MaxDistance != 0 {
		t.Error("desktop zoom should be unlimited")
	}

	mobile := c.Camera.Preset(true).NewCamera()
	if mobile.FOV != 45 || mobile.MinDistance == 0 || mobile.MaxDistance == 0 {
		t.Errorf("mobile camera = %+v", mobile)
	}
}

// TestVec3Of 测试分量不足时补 0
func TestVec3Of(t *testing.T) {
	if got := Vec3Of([]float64{1, 2}); got != (components.Vec3{X: 1, Y: 2}) {
		t.Errorf("Vec3Of() = %v", got)
	}
}
