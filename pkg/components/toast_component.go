package components

import "image/color"

// ToastComponent 屏幕上短暂显示的提示（如被拒绝请求的警告）
//
// 到期后由 ToastSystem 删除实体。
type ToastComponent struct {
	Text  string
	Color color.Color

	// MaxLifetime 显示时长（秒）
	MaxLifetime float64
	// CurrentLifetime 已显示时间（秒）
	CurrentLifetime float64
}

// NewWarningToast 创建警告提示，显示 3 秒
func NewWarningToast(text string) *ToastComponent {
	return &ToastComponent{
		Text:        text,
		Color:       color.RGBA{R: 200, G: 40, B: 40, A: 255},
		MaxLifetime: 3.0,
	}
}

// Alpha 返回淡出透明度：最后 0.5 秒线性淡出
func (t *ToastComponent) Alpha() float64 {
	remaining := t.MaxLifetime - t.CurrentLifetime
	if remaining <= 0 {
		return 0
	}
	if remaining >= 0.5 {
		return 1
	}
	return remaining / 0.5
}
