package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides 环境变量覆盖项，优先级高于命令行参数的默认值
type EnvOverrides struct {
	// Model 片段清单路径
	Model string `env:"BOOKVIEWER_MODEL"`
	// Config 查看器配置路径
	Config string `env:"BOOKVIEWER_CONFIG"`
	// Verbose 输出调试日志
	Verbose bool `env:"BOOKVIEWER_VERBOSE"`
	// MobileEmulate 在桌面上模拟移动设备（镜头预设、触摸平移）
	MobileEmulate bool `env:"BOOKVIEWER_MOBILE_EMULATE"`
}

// ParseEnv 从环境变量加载配置
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnvOverrides 读取 BOOKVIEWER_* 环境变量
func LoadEnvOverrides() (EnvOverrides, error) {
	var overrides EnvOverrides
	if err := ParseEnv(&overrides); err != nil {
		return EnvOverrides{}, err
	}
	return overrides, nil
}
