package book

import "github.com/decker502/bookviewer/internal/clip"

// Engine 定义状态机依赖的外部渲染/动画引擎的最小契约
//
// 具体实现见 systems.MixerSystem。引擎以片段名标识播放；
// 同一片段同一时刻只有一个播放，StartPlayback 会重新定位已有的播放。
type Engine interface {
	// StartPlayback 从 startTime 开始按 dir 方向播放片段（非循环）
	// clampAtEnd 为 true 时播放结束后保持在终点姿态
	StartPlayback(c *clip.Clip, startTime float64, dir Direction, clampAtEnd bool)

	// HaltPlayback 立即停止片段的播放，保持当前姿态，不触发完成通知
	HaltPlayback(clipName string)

	// PlaybackTime 返回片段当前的播放时间（秒），片段从未播放过时返回 false
	PlaybackTime(clipName string) (float64, bool)

	// SetFinishedHandler 注册完成通知：每个非循环播放到达终点时调用一次
	SetFinishedHandler(fn func(clipName string))

	// Tick 推进所有播放的时间线（由渲染循环调用，状态机本身从不调用）
	Tick(deltaTime float64)
}
