package book

import (
	"log"
	"sort"

	"github.com/decker502/bookviewer/internal/clip"
)

// InFlightPlayback 一次正在进行的非循环、终点保持的播放
type InFlightPlayback struct {
	ID        PlaybackID
	Clip      *clip.Clip
	Direction Direction
	StartTime float64
}

// PlaybackDriver 包装外部动画引擎
//
// 职责：
//   - 按方向启动片段（正向从 0 开始，反向从结尾开始），非循环并保持终点
//   - 以片段名为键独占记录所有进行中的播放，每个片段最多一个
//   - 引擎报告播放结束时，把记录的方向连同播放 ID 投递到完成信号
//
// 被停止的播放在 haltedAt 中记下停止时的时间，下一次播放该片段时
// 从这个视觉位置继续，避免姿态跳变；取代进行中的播放时同理。
type PlaybackDriver struct {
	engine   Engine
	signal   *CompletionSignal
	nextID   PlaybackID
	inFlight map[string]*InFlightPlayback
	haltedAt map[string]float64
}

// NewPlaybackDriver 创建播放驱动，并接管引擎的完成通知
func NewPlaybackDriver(engine Engine, signal *CompletionSignal) *PlaybackDriver {
	d := &PlaybackDriver{
		engine:   engine,
		signal:   signal,
		inFlight: make(map[string]*InFlightPlayback),
		haltedAt: make(map[string]float64),
	}
	engine.SetFinishedHandler(d.handleFinished)
	return d
}

// Play 启动片段播放并返回新的进行中记录
//
// 同一片段已有进行中的播放时，旧记录被静默取代（其订阅被丢弃），
// 新播放从引擎报告的当前时间开始。
func (d *PlaybackDriver) Play(c *clip.Clip, dir Direction) *InFlightPlayback {
	startTime := d.startTimeFor(c, dir)

	if prev, ok := d.inFlight[c.Name]; ok {
		d.signal.Drop(prev.ID)
		log.Printf("[PlaybackDriver] 取代进行中的播放: clip=%s prev=%d(%s) → %s @%.3f",
			c.Name, prev.ID, prev.Direction, dir, startTime)
	}
	delete(d.haltedAt, c.Name)

	d.nextID++
	pb := &InFlightPlayback{
		ID:        d.nextID,
		Clip:      c,
		Direction: dir,
		StartTime: startTime,
	}
	d.inFlight[c.Name] = pb

	d.engine.StartPlayback(c, startTime, dir, true)
	return pb
}

// startTimeFor 计算播放起点
func (d *PlaybackDriver) startTimeFor(c *clip.Clip, dir Direction) float64 {
	start := 0.0
	if dir == Reverse {
		start = c.Duration
	}

	if _, ok := d.inFlight[c.Name]; ok {
		if t, known := d.engine.PlaybackTime(c.Name); known {
			start = t
		}
	} else if t, ok := d.haltedAt[c.Name]; ok {
		start = t
	}

	if start < 0 {
		start = 0
	}
	if start > c.Duration {
		start = c.Duration
	}
	return start
}

// Halt 停止片段的进行中播放
// 不触发完成信号，不修改部件状态；返回被停止的播放记录
func (d *PlaybackDriver) Halt(clipName string) (*InFlightPlayback, bool) {
	pb, ok := d.inFlight[clipName]
	if !ok {
		return nil, false
	}
	if t, known := d.engine.PlaybackTime(clipName); known {
		d.haltedAt[clipName] = t
	}
	d.engine.HaltPlayback(clipName)
	delete(d.inFlight, clipName)
	d.signal.Drop(pb.ID)
	return pb, true
}

// InFlight 返回片段的进行中播放
func (d *PlaybackDriver) InFlight(clipName string) (*InFlightPlayback, bool) {
	pb, ok := d.inFlight[clipName]
	return pb, ok
}

// Active 返回所有进行中的播放，按启动顺序排列
func (d *PlaybackDriver) Active() []*InFlightPlayback {
	active := make([]*InFlightPlayback, 0, len(d.inFlight))
	for _, pb := range d.inFlight {
		active = append(active, pb)
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].ID < active[j].ID
	})
	return active
}

// Reset 停止所有播放并清空记录（模型重新加载时调用）
func (d *PlaybackDriver) Reset() {
	for name, pb := range d.inFlight {
		d.engine.HaltPlayback(name)
		d.signal.Drop(pb.ID)
	}
	d.inFlight = make(map[string]*InFlightPlayback)
	d.haltedAt = make(map[string]float64)
}

// handleFinished 引擎的完成通知
// 没有进行中记录的片段（已被停止或不由驱动启动）被忽略
func (d *PlaybackDriver) handleFinished(clipName string) {
	pb, ok := d.inFlight[clipName]
	if !ok {
		return
	}
	delete(d.inFlight, clipName)
	delete(d.haltedAt, clipName)

	d.signal.Emit(Completion{
		Playback:  pb.ID,
		Clip:      clipName,
		Direction: pb.Direction,
	})
}
