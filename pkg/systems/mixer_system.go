package systems

import (
	"log"

	"github.com/decker502/bookviewer/internal/clip"
	"github.com/decker502/bookviewer/pkg/book"
	"github.com/decker502/bookviewer/pkg/components"
	"github.com/decker502/bookviewer/pkg/ecs"
)

// MixerSystem 动画混合器：book.Engine 在 ECS 上的实现
//
// 每个片段对应一个带 ClipActionComponent 的实体，首次播放时创建。
// Update 推进所有正在播放的动作，并在全部推进完成后统一回调完成通知，
// 回调中启动的新播放从下一个 tick 开始推进。
type MixerSystem struct {
	entityManager *ecs.EntityManager
	actions       map[string]ecs.EntityID
	onFinished    func(string)

	// speed 全局速度倍率（playback.speed）
	speed float64
}

// NewMixerSystem 创建混合器
func NewMixerSystem(em *ecs.EntityManager, speed float64) *MixerSystem {
	if speed <= 0 {
		speed = 1.0
	}
	return &MixerSystem{
		entityManager: em,
		actions:       make(map[string]ecs.EntityID),
		speed:         speed,
	}
}

// SetSpeed 设置全局速度倍率
func (s *MixerSystem) SetSpeed(speed float64) {
	if speed > 0 {
		s.speed = speed
	}
}

// clipAction 返回片段的动作组件，不存在时创建
func (s *MixerSystem) clipAction(c *clip.Clip) *components.ClipActionComponent {
	if id, ok := s.actions[c.Name]; ok {
		if action, ok := ecs.GetComponent[*components.ClipActionComponent](s.entityManager, id); ok {
			action.Clip = c
			return action
		}
	}

	id := s.entityManager.CreateEntity()
	action := &components.ClipActionComponent{Clip: c, TimeScale: 1}
	ecs.AddComponent(s.entityManager, id, action)
	s.actions[c.Name] = id
	return action
}

// Action 返回片段的动作组件（绘制和 HUD 使用）
func (s *MixerSystem) Action(clipName string) (*components.ClipActionComponent, bool) {
	id, ok := s.actions[clipName]
	if !ok {
		return nil, false
	}
	return ecs.GetComponent[*components.ClipActionComponent](s.entityManager, id)
}

// StartPlayback 实现 book.Engine
func (s *MixerSystem) StartPlayback(c *clip.Clip, startTime float64, dir book.Direction, clampAtEnd bool) {
	action := s.clipAction(c)
	action.Time = startTime
	action.TimeScale = float64(dir)
	action.Playing = true
	action.Enabled = true
	action.ClampWhenFinished = clampAtEnd
	action.Finished = false
}

// HaltPlayback 实现 book.Engine：停止推进，保持当前姿态
func (s *MixerSystem) HaltPlayback(clipName string) {
	if action, ok := s.Action(clipName); ok {
		action.Playing = false
	}
}

// PlaybackTime 实现 book.Engine
func (s *MixerSystem) PlaybackTime(clipName string) (float64, bool) {
	action, ok := s.Action(clipName)
	if !ok {
		return 0, false
	}
	return action.Time, true
}

// SetFinishedHandler 实现 book.Engine
func (s *MixerSystem) SetFinishedHandler(fn func(clipName string)) {
	s.onFinished = fn
}

// Tick 实现 book.Engine
func (s *MixerSystem) Tick(deltaTime float64) {
	s.Update(deltaTime)
}

// Update 推进所有正在播放的动作
func (s *MixerSystem) Update(deltaTime float64) {
	var finished []string

	for _, id := range ecs.GetEntitiesWith1[*components.ClipActionComponent](s.entityManager) {
		action, ok := ecs.GetComponent[*components.ClipActionComponent](s.entityManager, id)
		if !ok || !action.Playing || action.Clip == nil {
			continue
		}

		action.Time += deltaTime * action.TimeScale * s.speed

		duration := action.Clip.Duration
		reachedEnd := action.TimeScale > 0 && action.Time >= duration
		reachedStart := action.TimeScale < 0 && action.Time <= 0
		if !reachedEnd && !reachedStart {
			continue
		}

		if reachedEnd {
			action.Time = duration
		} else {
			action.Time = 0
		}
		action.Playing = false
		action.Finished = true
		if !action.ClampWhenFinished {
			action.Enabled = false
		}
		finished = append(finished, action.Clip.Name)
	}

	// 所有动作推进完成后再回调
	for _, name := range finished {
		log.Printf("[Mixer] 播放结束: %s", name)
		if s.onFinished != nil {
			s.onFinished(name)
		}
	}
}

// Progress 返回片段的归一化进度 [0, 1]；从未播放过的片段返回 0, false
func (s *MixerSystem) Progress(clipName string) (float64, bool) {
	action, ok := s.Action(clipName)
	if !ok {
		return 0, false
	}
	return action.Progress(), true
}

// Reset 删除所有动作实体（模型重新加载时调用）
func (s *MixerSystem) Reset() {
	for _, id := range s.actions {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()
	s.actions = make(map[string]ecs.EntityID)
}
