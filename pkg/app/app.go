// Package app 提供查看器应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/decker502/bookviewer/pkg/config"
	"github.com/decker502/bookviewer/pkg/embedded"
	"github.com/decker502/bookviewer/pkg/game"
	"github.com/decker502/bookviewer/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储目录名
const AppName = "bookviewer"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ModelPath 片段清单路径，为空则使用上次打开的模型或内置示例
	ModelPath string
	// ConfigPath 查看器配置路径，为空则使用内置默认配置
	ConfigPath string
	// Mobile 使用移动设备的镜头预设
	Mobile bool
}

// App 是查看器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	mobile                   bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化查看器应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	viewerConfig, err := loadViewerConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("查看器配置加载失败: %w", err)
	}
	log.Printf("[Config] 策略: later_pages=%s auto_open_book=%v", viewerConfig.Policy.LaterPages, viewerConfig.Policy.AutoOpenBook)

	ebiten.SetTPS(viewerConfig.Playback.TPS)

	settings, err := openSettings(viewerConfig)
	if err != nil {
		return nil, fmt.Errorf("偏好设置初始化失败: %w", err)
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(modelPath string) game.Scene {
		manifest, err := scenes.LoadManifest(modelPath)
		if err != nil {
			log.Printf("[App] 片段清单加载失败: %v", err)
			return nil
		}
		return scenes.NewBookScene(manifest, viewerConfig, settings, cfg.Mobile)
	})

	// 确定加载哪个模型：命令行 > 上次打开 > 内置示例
	switch {
	case cfg.ModelPath != "":
		if !sceneManager.LoadModel(cfg.ModelPath) {
			return nil, fmt.Errorf("无法加载模型: %s", cfg.ModelPath)
		}
		settings.SetLastModel(cfg.ModelPath)
	case settings.GetSettings().LastModel != "" && sceneManager.LoadModel(settings.GetSettings().LastModel):
		log.Printf("[App] 打开上次的模型: %s", sceneManager.CurrentModel())
	default:
		settings.SetLastModel("")
		if !sceneManager.LoadModel(embedded.DefaultManifestPath) {
			return nil, fmt.Errorf("无法加载内置示例模型")
		}
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		mobile:       cfg.Mobile,
	}, nil
}

// loadViewerConfig 加载查看器配置：指定路径 > 内置默认配置 > 代码默认值
func loadViewerConfig(path string) (*config.ViewerConfig, error) {
	if path != "" {
		return config.LoadViewerConfig(path)
	}
	dataFS, err := embedded.FS()
	if err != nil {
		return nil, err
	}
	if !embedded.Exists(embedded.DefaultConfigPath) {
		log.Printf("[Config] 未找到 %s，使用默认配置", embedded.DefaultConfigPath)
		return config.DefaultViewerConfig(), nil
	}
	return config.LoadViewerConfigFS(dataFS, embedded.DefaultConfigPath)
}

// openSettings 打开 gdata 存储并加载偏好
// 存储不可用时（如只读 HOME）退化为仅内存的偏好
func openSettings(viewerConfig *config.ViewerConfig) (*game.SettingsManager, error) {
	defaults := game.DefaultSettings()
	defaults.PanLimitEnabled = viewerConfig.Pan.Enabled
	defaults.PanLimitRadius = viewerConfig.Pan.Radius

	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata 不可用，偏好不会保存: %v", err)
		gdataManager = nil
	}

	return game.NewSettingsManager(gdataManager, defaults)
}

// Update 更新查看器逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(scenes.WindowWidth, scenes.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// Esc 退出（桌面端）
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && !a.IsMobile() {
		return ebiten.Termination
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return scenes.WindowWidth, scenes.WindowHeight
}

// SaveOnExit 退出时保存当前场景和偏好
func (a *App) SaveOnExit() {
	if !a.sceneManager.SaveOnExit() {
		fmt.Fprintln(os.Stderr, "Warning: 偏好保存失败")
	}
}

// IsMobile 返回是否使用移动设备预设
func (a *App) IsMobile() bool {
	return a.mobile
}
