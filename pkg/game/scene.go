package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 查看器场景
// 每个场景有自己的更新和渲染逻辑
type Scene interface {
	// Update 按经过的时间（秒）更新场景逻辑
	Update(deltaTime float64)

	// Draw 把场景渲染到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：场景退出时保存偏好
//
// 窗口关闭或进程被终止时，当前场景若实现此接口会被调用 SaveOnExit()。
type Saveable interface {
	// SaveOnExit 返回 true 表示保存成功或无需保存
	SaveOnExit() bool
}
