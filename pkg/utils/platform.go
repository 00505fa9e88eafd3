//go:build !mobile

package utils

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false
func IsMobile() bool {
	return false
}

// UseMobileLayout 是否使用移动设备预设
// emulate 来自解析后的环境变量覆盖项（BOOKVIEWER_MOBILE_EMULATE），用于在桌面上调试移动布局
func UseMobileLayout(emulate bool) bool {
	return IsMobile() || emulate
}
