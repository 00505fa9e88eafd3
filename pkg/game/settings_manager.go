package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerSettings 持久化的查看器偏好
// 部件开合状态从不持久化，每次加载模型都从全部合上开始
type ViewerSettings struct {
	// 平移边界
	PanLimitEnabled bool    `yaml:"panLimitEnabled"`
	PanLimitRadius  float64 `yaml:"panLimitRadius"` // 世界单位

	// 显示设置
	ShowCameraHUD bool `yaml:"showCameraHUD"`

	// LastModel 上次打开的片段清单路径，为空表示使用内置示例
	LastModel string `yaml:"lastModel"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		PanLimitEnabled: true,
		PanLimitRadius:  10,
		ShowCameraHUD:   true,
	}
}

// SettingsManager 设置管理器
// 负责查看器偏好的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // 可为 nil（降级模式，仅内存设置）
	defaults     *ViewerSettings // 没有保存的设置时使用
	settings     *ViewerSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//   - defaults: 默认设置（通常来自查看器配置），为 nil 时使用 DefaultSettings()
//
// 加载失败不是致命错误：记录警告并使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager, defaults *ViewerSettings) (*SettingsManager, error) {
	if defaults == nil {
		defaults = DefaultSettings()
	}
	sm := &SettingsManager{
		gdataManager: gdataManager,
		defaults:     defaults,
	}
	sm.settings = sm.defaultCopy()

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm, nil
}

func (sm *SettingsManager) defaultCopy() *ViewerSettings {
	s := *sm.defaults
	return &s
}

// Load 从 gdata 加载设置；没有保存过时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = sm.defaultCopy()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = sm.defaultCopy()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 在默认值之上解码，旧版本文件缺少的字段保留默认值
	loaded := sm.defaultCopy()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = sm.defaultCopy()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata；降级模式下不做任何事
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// SetPanLimit 设置平移边界，半径小于 0 时按 0 处理（等同于不限制）
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetPanLimit(enabled bool, radius float64) {
	if radius < 0 {
		radius = 0
	}
	sm.settings.PanLimitEnabled = enabled
	sm.settings.PanLimitRadius = radius
}

// SetShowCameraHUD 设置是否显示镜头 HUD
func (sm *SettingsManager) SetShowCameraHUD(show bool) {
	sm.settings.ShowCameraHUD = show
}

// SetLastModel 记录最近打开的模型
func (sm *SettingsManager) SetLastModel(path string) {
	sm.settings.LastModel = path
}
