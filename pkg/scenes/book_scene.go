package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"

	"github.com/decker502/bookviewer/internal/clip"
	"github.com/decker502/bookviewer/pkg/book"
	"github.com/decker502/bookviewer/pkg/components"
	"github.com/decker502/bookviewer/pkg/config"
	"github.com/decker502/bookviewer/pkg/ecs"
	"github.com/decker502/bookviewer/pkg/game"
	"github.com/decker502/bookviewer/pkg/systems"
	"github.com/decker502/bookviewer/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 部件列表布局（逻辑像素）
const (
	rowLeft     = 20
	rowTop      = 70
	rowHeight   = 30
	labelWidth  = 150
	barWidth    = 320
	barHeight   = 16
	toastBottom = WindowHeight - 40
	hudLeft     = WindowWidth - 260
)

const (
	panKeySpeed    = 6.0  // 方向键平移速度（世界单位/秒）
	panPerPixel    = 0.02 // 拖拽平移：每像素对应的世界单位（按镜头距离 10 归一化）
	zoomPerWheel   = 0.9  // 滚轮每格的缩放系数
	radiusStep     = 1.0  // [ / ] 调整平移半径的步长
	defaultLimitSz = 10.0
)

var (
	colorBackground = color.RGBA{R: 30, G: 32, B: 40, A: 255}
	colorBarEmpty   = color.RGBA{R: 70, G: 72, B: 84, A: 255}
	colorOpen       = color.RGBA{R: 90, G: 190, B: 110, A: 255}
	colorMoving     = color.RGBA{R: 230, G: 180, B: 60, A: 255}
)

// BookScene 书本查看场景
//
// 每帧顺序：输入 → PartCommandSystem（把请求提交给状态机）→ MixerSystem（推进播放，
// 触发完成回调）→ PanSystem → ToastSystem → 删除标记的实体。
// 画面是部件姿态的示意图：每个部件一行，横条长度为片段的当前进度。
type BookScene struct {
	manifest *clip.Manifest
	cfg      *config.ViewerConfig
	settings *game.SettingsManager
	mobile   bool

	entityManager *ecs.EntityManager
	mixer         *systems.MixerSystem
	machine       *book.Machine
	commands      *systems.PartCommandSystem
	pan           *systems.PanSystem
	toasts        *systems.ToastSystem

	drag    utils.DragTracker
	lastErr error
}

// keyBinding 按键到场景动作的映射
type keyBinding struct {
	key    ebiten.Key
	action func(s *BookScene)
}

var keyBindings = []keyBinding{
	{ebiten.KeyL, func(s *BookScene) { s.commands.Toggle(book.Latch) }},
	{ebiten.KeyC, func(s *BookScene) { s.commands.Toggle(book.FrontCover) }},
	{ebiten.KeyO, (*BookScene).openBook},
	{ebiten.KeyX, (*BookScene).closeBook},
	{ebiten.KeyP, (*BookScene).togglePanLimit},
	{ebiten.KeyH, (*BookScene).toggleHUD},
	{ebiten.KeyBracketLeft, func(s *BookScene) { s.adjustPanRadius(-radiusStep) }},
	{ebiten.KeyBracketRight, func(s *BookScene) { s.adjustPanRadius(radiusStep) }},
	{ebiten.KeyR, (*BookScene).resetCamera},
	{ebiten.KeyF5, (*BookScene).Reload},
}

// digitKeys 1-9 切换第 N 张书页（按书页顺序，不是解析出的索引）
var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// NewBookScene 为片段清单创建查看场景
//
// settings 可以为 nil（不持久化偏好）。
func NewBookScene(manifest *clip.Manifest, cfg *config.ViewerConfig, settings *game.SettingsManager, mobile bool) *BookScene {
	if cfg == nil {
		cfg = config.DefaultViewerConfig()
	}

	em := ecs.NewEntityManager()
	mixer := systems.NewMixerSystem(em, cfg.Playback.Speed)
	machine := book.NewMachine(mixer, cfg.BookPolicy())

	s := &BookScene{
		manifest:      manifest,
		cfg:           cfg,
		settings:      settings,
		mobile:        mobile,
		entityManager: em,
		mixer:         mixer,
		machine:       machine,
		commands:      systems.NewPartCommandSystem(em, machine),
		pan:           systems.NewPanSystem(em, cfg.Camera.Preset(mobile).NewCamera()),
		toasts:        systems.NewToastSystem(em),
	}

	machine.SetWarningHandler(func(err *book.TransitionError) {
		s.toasts.Show(components.NewWarningToast(err.Error()))
	})

	enabled, radius := cfg.Pan.Enabled, cfg.Pan.Radius
	if settings != nil {
		prefs := settings.GetSettings()
		enabled, radius = prefs.PanLimitEnabled, prefs.PanLimitRadius
	}
	s.pan.SetLimit(enabled, radius, cfg.Pan.OriginVec())

	logUnboundTracks(manifest)
	machine.Load(manifest.Clips)
	log.Printf("[BookScene] 模型 %q 加载完成: %d 个片段, 部件 %v", manifest.Name, len(manifest.Clips), machine.Catalog().Parts())
	return s
}

// Machine 返回交互状态机
func (s *BookScene) Machine() *book.Machine {
	return s.machine
}

// Mixer 返回混合器
func (s *BookScene) Mixer() *systems.MixerSystem {
	return s.mixer
}

// Pan 返回镜头系统
func (s *BookScene) Pan() *systems.PanSystem {
	return s.pan
}

// Toasts 返回提示系统
func (s *BookScene) Toasts() *systems.ToastSystem {
	return s.toasts
}

// Update 处理输入并推进一帧
func (s *BookScene) Update(deltaTime float64) {
	s.handleInput(deltaTime)
	s.step(deltaTime)
}

// step 推进所有系统一帧（不读取输入）
func (s *BookScene) step(deltaTime float64) {
	s.commands.Update(deltaTime)
	s.mixer.Update(deltaTime)
	s.pan.Update(deltaTime)
	s.toasts.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

func (s *BookScene) handleInput(deltaTime float64) {
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			b.action(s)
		}
	}
	for i, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.togglePageAt(i)
		}
	}

	// 方向键平移
	var move components.Vec3
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move.X += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move.Y += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move.Y -= 1
	}
	if move != (components.Vec3{}) {
		s.pan.Pan(move.Scale(panKeySpeed * deltaTime))
	}

	// 滚轮缩放
	if _, wy := ebiten.Wheel(); wy != 0 {
		s.pan.Zoom(math.Pow(zoomPerWheel, wy))
	}

	// 拖拽平移；几乎不动的点击切换所在行的部件
	dx, dy := s.drag.Poll()
	if dx != 0 || dy != 0 {
		s.panByPixels(dx, dy)
	}
	if clicked, x, y := s.drag.Clicked(); clicked {
		s.clickAt(x, y)
	}
}

// panByPixels 把屏幕拖拽位移换算为世界平移（拖动画面，镜头反向移动）
func (s *BookScene) panByPixels(dx, dy int) {
	scale := panPerPixel
	if cam := s.pan.Camera(); cam != nil && cam.Distance() > 0 {
		scale *= cam.Distance() / 10
	}
	s.pan.Pan(components.Vec3{X: -float64(dx) * scale, Y: float64(dy) * scale})
}

// clickAt 切换点击位置所在行的部件
func (s *BookScene) clickAt(x, y int) {
	if part, ok := s.partAt(x, y); ok {
		s.commands.Toggle(part)
	}
}

// partAt 返回屏幕坐标所在的部件行
func (s *BookScene) partAt(x, y int) (book.Part, bool) {
	if x < rowLeft || x >= rowLeft+labelWidth+barWidth || y < rowTop {
		return book.Part{}, false
	}
	parts := s.machine.Catalog().Parts()
	row := (y - rowTop) / rowHeight
	if row >= len(parts) {
		return book.Part{}, false
	}
	return parts[row], true
}

// togglePageAt 切换第 i 张书页（从 0 开始）
func (s *BookScene) togglePageAt(i int) {
	pages := s.machine.Catalog().OrderedPages()
	if i < 0 || i >= len(pages) {
		return
	}
	s.commands.Toggle(pages[i])
}

func (s *BookScene) openBook() {
	s.report(s.machine.OpenBook())
}

func (s *BookScene) closeBook() {
	s.report(s.machine.CloseBook())
}

// report 记录最近一次直接请求的结果（非法请求已由警告回调提示）
func (s *BookScene) report(err error) {
	s.lastErr = err
	if err != nil {
		log.Printf("[BookScene] 请求未执行: %v", err)
	}
}

func (s *BookScene) togglePanLimit() {
	enabled, radius, origin := s.pan.Limit()
	if radius <= 0 {
		radius = defaultLimitSz
	}
	s.pan.SetLimit(!enabled, radius, origin)
	s.syncPanSettings()
}

func (s *BookScene) adjustPanRadius(delta float64) {
	enabled, radius, origin := s.pan.Limit()
	radius = math.Max(radiusStep, radius+delta)
	s.pan.SetLimit(enabled, radius, origin)
	s.syncPanSettings()
}

func (s *BookScene) syncPanSettings() {
	enabled, radius, _ := s.pan.Limit()
	log.Printf("[BookScene] 平移边界: enabled=%v radius=%.1f", enabled, radius)
	if s.settings != nil {
		s.settings.SetPanLimit(enabled, radius)
	}
}

func (s *BookScene) toggleHUD() {
	if s.settings != nil {
		s.settings.SetShowCameraHUD(!s.settings.GetSettings().ShowCameraHUD)
	}
}

func (s *BookScene) showHUD() bool {
	return s.settings == nil || s.settings.GetSettings().ShowCameraHUD
}

// resetCamera 恢复设备对应的默认镜头
func (s *BookScene) resetCamera() {
	s.pan.ApplyPreset(s.cfg.Camera.Preset(s.mobile).NewCamera())
}

// Reload 重新加载当前模型：停止所有播放，所有部件回到合上状态
func (s *BookScene) Reload() {
	s.mixer.Reset()
	s.machine.Load(s.manifest.Clips)
	s.resetCamera()
	log.Printf("[BookScene] 模型已重新加载: %s", s.manifest.Name)
}

// SaveOnExit 实现 game.Saveable：保存查看器偏好
func (s *BookScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[BookScene] 保存偏好失败: %v", err)
		return false
	}
	return true
}

// partProgress 返回部件的视觉进度：0 为合上姿态，1 为打开姿态
// 多片段部件取第一个片段
func (s *BookScene) partProgress(p book.Part) float64 {
	clips := s.machine.Catalog().ClipsFor(p)
	if len(clips) == 0 {
		return 0
	}
	if progress, ok := s.mixer.Progress(clips[0].Name); ok {
		return progress
	}
	return 0
}

// partStatus 返回部件状态文本
func (s *BookScene) partStatus(p book.Part) string {
	if dir, moving := s.machine.Motion(p); moving {
		if dir == book.Forward {
			return "opening"
		}
		return "closing"
	}
	return strings.ToLower(s.machine.State(p).String())
}

// Draw 绘制部件示意图、镜头 HUD 和提示
func (s *BookScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	title := fmt.Sprintf("%s  [L]atch [C]over [1-9] pages [O]pen [X]close  [P]an limit [H]UD [R]eset", s.manifest.Name)
	ebitenutil.DebugPrintAt(screen, title, rowLeft, 20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("policy: %s  auto-open: %v", s.machine.Policy().LaterPages, s.machine.Policy().AutoOpenBook), rowLeft, 40)

	for i, part := range s.machine.Catalog().Parts() {
		y := rowTop + i*rowHeight
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%-12s %s", part, s.partStatus(part)), rowLeft, y)

		barX := float32(rowLeft + labelWidth)
		barY := float32(y + 2)
		vector.DrawFilledRect(screen, barX, barY, barWidth, barHeight, colorBarEmpty, false)

		fill := colorOpen
		if s.machine.Transitioning(part) {
			fill = colorMoving
		}
		w := float32(s.partProgress(part)) * barWidth
		if w > 0 {
			vector.DrawFilledRect(screen, barX, barY, w, barHeight, fill, false)
		}
	}

	if s.showHUD() {
		if cam := s.pan.Camera(); cam != nil {
			ebitenutil.DebugPrintAt(screen, cam.HUDText, hudLeft, rowTop)
		}
		enabled, radius, _ := s.pan.Limit()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("pan limit: %v (r=%.1f)", enabled, radius), hudLeft, rowTop+70)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("completions: %d  pending: %d  entities: %d", s.machine.Signal().Emitted(), s.machine.Signal().Pending(), s.entityManager.EntityCount()), hudLeft, rowTop+90)
	}

	s.drawToasts(screen)
}

func (s *BookScene) drawToasts(screen *ebiten.Image) {
	toasts := s.toasts.Active()
	for i, toast := range toasts {
		y := toastBottom - (len(toasts)-1-i)*rowHeight
		clr := toast.Color
		if clr == nil {
			clr = color.White
		}
		r, g, b, _ := clr.RGBA()
		alpha := toast.Alpha()
		bg := color.RGBA{
			R: uint8(float64(r>>8) * alpha),
			G: uint8(float64(g>>8) * alpha),
			B: uint8(float64(b>>8) * alpha),
			A: uint8(255 * alpha),
		}
		vector.DrawFilledRect(screen, rowLeft-6, float32(y-4), WindowWidth-2*(rowLeft-6), 22, bg, false)
		ebitenutil.DebugPrintAt(screen, toast.Text, rowLeft, y)
	}
}
