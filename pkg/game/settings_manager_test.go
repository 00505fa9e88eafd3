package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata
func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: "test_bookviewer"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认值与原始查看器一致
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if !s.PanLimitEnabled || s.PanLimitRadius != 10 {
		t.Errorf("pan limit = %v/%v, want true/10", s.PanLimitEnabled, s.PanLimitRadius)
	}
	if !s.ShowCameraHUD {
		t.Error("ShowCameraHUD should default to true")
	}
	if s.LastModel != "" {
		t.Errorf("LastModel = %q, want empty", s.LastModel)
	}
}

// TestNewSettingsManagerNilGdata 测试降级模式
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil, nil)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	if sm.GetSettings().PanLimitRadius != 10 {
		t.Error("expected default settings")
	}
	sm.SetPanLimit(false, 3)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should not fail: %v", err)
	}
	if !sm.GetSettings().PanLimitEnabled {
		t.Error("Load() in degraded mode should reset to defaults")
	}
}

// TestNewSettingsManagerCustomDefaults 测试使用配置提供的默认值
func TestNewSettingsManagerCustomDefaults(t *testing.T) {
	defaults := &ViewerSettings{PanLimitEnabled: false, PanLimitRadius: 4}
	sm, _ := NewSettingsManager(openTestGdata(t), defaults)

	if s := sm.GetSettings(); s.PanLimitEnabled || s.PanLimitRadius != 4 {
		t.Errorf("settings = %+v, want custom defaults", s)
	}

	// 修改设置不应影响默认值
	sm.SetPanLimit(true, 8)
	if defaults.PanLimitRadius != 4 {
		t.Error("defaults were mutated")
	}
}

// TestSettingsLoadSave 测试保存后重新加载
func TestSettingsLoadSave(t *testing.T) {
	gm := openTestGdata(t)

	sm, _ := NewSettingsManager(gm, nil)
	sm.SetPanLimit(false, 25)
	sm.SetShowCameraHUD(false)
	sm.SetLastModel("/models/atlas.yaml")
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, _ := NewSettingsManager(gm, nil)
	s := sm2.GetSettings()
	if s.PanLimitEnabled || s.PanLimitRadius != 25 {
		t.Errorf("pan limit = %v/%v, want false/25", s.PanLimitEnabled, s.PanLimitRadius)
	}
	if s.ShowCameraHUD {
		t.Error("ShowCameraHUD should be false")
	}
	if s.LastModel != "/models/atlas.yaml" {
		t.Errorf("LastModel = %q", s.LastModel)
	}
}

// TestSettingsLoadPartialFile 测试缺少字段的旧文件保留默认值
func TestSettingsLoadPartialFile(t *testing.T) {
	gm := openTestGdata(t)
	if err := gm.SaveObjectProp(settingsObject, settingsProperty, []byte("lastModel: old.yaml\n")); err != nil {
		t.Fatal(err)
	}

	sm, _ := NewSettingsManager(gm, nil)
	s := sm.GetSettings()
	if s.LastModel != "old.yaml" || !s.PanLimitEnabled || s.PanLimitRadius != 10 {
		t.Errorf("settings = %+v", s)
	}
}

// TestSettingsLoadCorrupted 测试损坏的数据回退到默认值
func TestSettingsLoadCorrupted(t *testing.T) {
	gm := openTestGdata(t)
	if err := gm.SaveObjectProp(settingsObject, settingsProperty, []byte("panLimitRadius: [oops\n")); err != nil {
		t.Fatal(err)
	}

	sm, err := NewSettingsManager(gm, nil)
	if err != nil {
		t.Fatalf("NewSettingsManager() should not fail: %v", err)
	}
	if sm.GetSettings().PanLimitRadius != 10 {
		t.Error("corrupted settings should fall back to defaults")
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report the unmarshal error")
	}
}

// TestSetPanLimitNegativeRadius 测试负半径
func TestSetPanLimitNegativeRadius(t *testing.T) {
	sm, _ := NewSettingsManager(nil, nil)
	sm.SetPanLimit(true, -5)
	if sm.GetSettings().PanLimitRadius != 0 {
		t.Errorf("radius = %v, want 0", sm.GetSettings().PanLimitRadius)
	}
}
