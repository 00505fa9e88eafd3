// Package utils 提供平台检测和指针输入等通用工具
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GetPointerState 获取指针的完整状态（触摸优先）
// 返回：是否按下、X坐标、Y坐标
func GetPointerState() (pressed bool, x, y int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	x, y = ebiten.CursorPosition()
	pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return pressed, x, y
}

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
)

// clickSlop 按下到释放移动不超过此距离（像素）视为点击而非拖拽
const clickSlop = 4

// DragTracker 跟踪单指针拖拽（鼠标左键或单指触摸）
//
// 镜头平移使用每帧位移；按下后几乎没有移动就释放视为一次点击。
type DragTracker struct {
	state          DragState
	startX, startY int
	lastX, lastY   int
	moved          bool
}

// Poll 读取当前指针状态并更新，返回本帧位移
func (d *DragTracker) Poll() (dx, dy int) {
	pressed, x, y := GetPointerState()
	return d.Update(pressed, x, y)
}

// Update 用给定的指针状态推进拖拽，返回本帧位移
func (d *DragTracker) Update(pressed bool, x, y int) (dx, dy int) {
	switch {
	case pressed && (d.state == DragStateNone || d.state == DragStateEnded):
		d.state = DragStateStarted
		d.startX, d.startY = x, y
		d.lastX, d.lastY = x, y
		d.moved = false
		return 0, 0

	case pressed:
		d.state = DragStateDragging
		dx, dy = x-d.lastX, y-d.lastY
		d.lastX, d.lastY = x, y
		if abs(x-d.startX) > clickSlop || abs(y-d.startY) > clickSlop {
			d.moved = true
		}
		return dx, dy

	case d.state == DragStateStarted || d.state == DragStateDragging:
		d.state = DragStateEnded
		return 0, 0

	default:
		d.state = DragStateNone
		return 0, 0
	}
}

// State 返回当前拖拽状态
func (d *DragTracker) State() DragState {
	return d.state
}

// IsDragging 是否处于按下状态
func (d *DragTracker) IsDragging() bool {
	return d.state == DragStateStarted || d.state == DragStateDragging
}

// Clicked 本帧是否刚以点击结束（没有明显移动），返回按下位置
func (d *DragTracker) Clicked() (bool, int, int) {
	if d.state != DragStateEnded || d.moved {
		return false, 0, 0
	}
	return true, d.startX, d.startY
}

// Reset 重置为无拖拽
func (d *DragTracker) Reset() {
	*d = DragTracker{}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
