package scenes

import (
	"github.com/decker502/bookviewer/pkg/game"
)

// BookScene 由 game.SceneManager 驱动
var _ game.Scene = (*BookScene)(nil)

// 逻辑屏幕尺寸，Ebitengine 负责缩放到窗口
const (
	WindowWidth  = 800
	WindowHeight = 600
)
