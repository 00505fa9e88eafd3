package components

import "github.com/decker502/bookviewer/internal/clip"

// ClipActionComponent 单个动画片段的播放状态（纯数据）
//
// 每个片段对应一个实体，由 MixerSystem 在首次播放时创建（相当于 mixer.clipAction）。
// Time 是片段时间线上的当前位置，范围 [0, Clip.Duration]；
// TimeScale 为 +1 时正向推进，为 -1 时反向推进。
type ClipActionComponent struct {
	// Clip 片段数据
	Clip *clip.Clip

	// Time 当前播放时间（秒）
	Time float64

	// TimeScale 播放方向与速度：+1 正向，-1 反向
	TimeScale float64

	// Playing 是否正在推进；播放结束或被停止后为 false
	Playing bool

	// Enabled 片段是否仍在驱动其节点姿态
	Enabled bool

	// ClampWhenFinished 结束后是否保持终点姿态（非循环播放总是为 true）
	ClampWhenFinished bool

	// Finished 上一次播放是否自然到达终点（停止的播放为 false）
	Finished bool
}

// Progress 返回归一化播放进度 [0, 1]
func (c *ClipActionComponent) Progress() float64 {
	if c.Clip == nil || c.Clip.Duration <= 0 {
		return 0
	}
	p := c.Time / c.Clip.Duration
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
