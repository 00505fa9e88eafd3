package config

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/decker502/bookviewer/pkg/book"
	"github.com/decker502/bookviewer/pkg/components"
	"gopkg.in/yaml.v3"
)

// ViewerConfig 查看器配置
//
// 配置文件位置: data/viewer_config.yaml
// 文件中未出现的字段保留 DefaultViewerConfig 的默认值。
type ViewerConfig struct {
	// Policy 状态机行为策略
	Policy PolicyConfig `yaml:"policy"`

	// Playback 播放参数
	Playback PlaybackConfig `yaml:"playback"`

	// Camera 镜头预设
	Camera CameraConfig `yaml:"camera"`

	// Pan 平移边界
	Pan PanConfig `yaml:"pan"`
}

// PolicyConfig 状态机策略
type PolicyConfig struct {
	// LaterPages "auto_close"（默认）或 "reject"
	LaterPages string `yaml:"later_pages"`

	// AutoOpenBook 书合着时打开书页是否先自动打开锁扣和封面
	AutoOpenBook bool `yaml:"auto_open_book"`
}

// PlaybackConfig 播放配置
type PlaybackConfig struct {
	TPS   int     `yaml:"tps"`   // 渲染循环目标 TPS
	Speed float64 `yaml:"speed"` // 动画速度倍率，1.0 为原速
}

// CameraConfig 桌面与移动设备的默认镜头
type CameraConfig struct {
	Desktop CameraPreset `yaml:"desktop"`
	Mobile  CameraPreset `yaml:"mobile"`
}

// CameraPreset 镜头预设
type CameraPreset struct {
	Position []float64 `yaml:"position"` // [x, y, z]
	Target   []float64 `yaml:"target"`   // [x, y, z]
	FOV      float64   `yaml:"fov"`

	// MinDistance / MaxDistance 缩放距离限制，0 表示不限制
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
}

// PanConfig 平移边界：注视点离 Origin 的距离不超过 Radius
type PanConfig struct {
	Enabled bool      `yaml:"enabled"`
	Radius  float64   `yaml:"radius"`
	Origin  []float64 `yaml:"origin"` // [x, y, z]
}

// 策略名
const (
	LaterPagesAutoClose = "auto_close"
	LaterPagesReject    = "reject"
)

// DefaultViewerConfig 返回默认配置
func DefaultViewerConfig() *ViewerConfig {
	return &ViewerConfig{
		Policy: PolicyConfig{
			LaterPages: LaterPagesAutoClose,
		},
		Playback: PlaybackConfig{
			TPS:   60,
			Speed: 1.0,
		},
		Camera: CameraConfig{
			Desktop: CameraPreset{
				Position: []float64{-4.459, 0.474, 21.784},
				Target:   []float64{-4.459, -0.269, -0.411},
				FOV:      45,
			},
			Mobile: CameraPreset{
				Position:    []float64{0.848, 2.395, 37.029},
				Target:      []float64{-1.148, 0.010, -4.349},
				FOV:         45,
				MinDistance: 9.052,
				MaxDistance: 38.888,
			},
		},
		Pan: PanConfig{
			Enabled: true,
			Radius:  10,
			Origin:  []float64{-9.121, 0.358, -3.984},
		},
	}
}

// LoadViewerConfig 从文件系统路径加载配置
func LoadViewerConfig(path string) (*ViewerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read viewer config: %w", err)
	}
	return ParseViewerConfig(data, path)
}

// LoadViewerConfigFS 从 fs.FS（如嵌入的默认数据）加载配置
func LoadViewerConfigFS(fsys fs.FS, path string) (*ViewerConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read viewer config: %w", err)
	}
	return ParseViewerConfig(data, path)
}

// ParseViewerConfig 解析 YAML 配置并校验；source 只用于错误信息
func ParseViewerConfig(data []byte, source string) (*ViewerConfig, error) {
	config := DefaultViewerConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse viewer config %s: %w", source, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid viewer config %s: %w", source, err)
	}
	return config, nil
}

// Validate 验证配置有效性
func (c *ViewerConfig) Validate() error {
	switch c.Policy.LaterPages {
	case LaterPagesAutoClose, LaterPagesReject:
	default:
		return fmt.Errorf("policy.later_pages must be %q or %q, got %q",
			LaterPagesAutoClose, LaterPagesReject, c.Policy.LaterPages)
	}

	if c.Playback.TPS <= 0 {
		return fmt.Errorf("playback.tps must be positive, got %d", c.Playback.TPS)
	}
	if c.Playback.Speed <= 0 {
		return fmt.Errorf("playback.speed must be positive, got %.2f", c.Playback.Speed)
	}

	for name, preset := range map[string]CameraPreset{"desktop": c.Camera.Desktop, "mobile": c.Camera.Mobile} {
		if err := preset.validate(); err != nil {
			return fmt.Errorf("camera.%s: %w", name, err)
		}
	}

	if c.Pan.Radius < 0 {
		return fmt.Errorf("pan.radius must be >= 0, got %.2f", c.Pan.Radius)
	}
	if len(c.Pan.Origin) != 3 {
		return fmt.Errorf("pan.origin must have 3 components, got %d", len(c.Pan.Origin))
	}
	return nil
}

func (p CameraPreset) validate() error {
	if len(p.Position) != 3 {
		return fmt.Errorf("position must have 3 components, got %d", len(p.Position))
	}
	if len(p.Target) != 3 {
		return fmt.Errorf("target must have 3 components, got %d", len(p.Target))
	}
	if p.FOV <= 0 || p.FOV >= 180 {
		return fmt.Errorf("fov must be in (0, 180), got %.1f", p.FOV)
	}
	if p.MinDistance < 0 || p.MaxDistance < 0 {
		return fmt.Errorf("distance limits must be >= 0")
	}
	if p.MaxDistance > 0 && p.MinDistance > p.MaxDistance {
		return fmt.Errorf("min_distance(%.3f) > max_distance(%.3f)", p.MinDistance, p.MaxDistance)
	}
	return nil
}

// BookPolicy 转换为状态机策略
func (c *ViewerConfig) BookPolicy() book.Policy {
	policy := book.Policy{AutoOpenBook: c.Policy.AutoOpenBook}
	if c.Policy.LaterPages == LaterPagesReject {
		policy.LaterPages = book.RejectLaterPages
	}
	return policy
}

// Preset 返回设备对应的镜头预设
func (c *CameraConfig) Preset(mobile bool) CameraPreset {
	if mobile {
		return c.Mobile
	}
	return c.Desktop
}

// NewCamera 根据预设创建镜头组件
func (p CameraPreset) NewCamera() *components.CameraComponent {
	return &components.CameraComponent{
		Position:    Vec3Of(p.Position),
		Target:      Vec3Of(p.Target),
		FOV:         p.FOV,
		MinDistance: p.MinDistance,
		MaxDistance: p.MaxDistance,
	}
}

// OriginVec 返回平移原点
func (p PanConfig) OriginVec() components.Vec3 {
	return Vec3Of(p.Origin)
}

// Vec3Of 把 [x, y, z] 转换为向量；分量不足时补 0
func Vec3Of(v []float64) components.Vec3 {
	var out [3]float64
	copy(out[:], v)
	return components.Vec3{X: out[0], Y: out[1], Z: out[2]}
}
