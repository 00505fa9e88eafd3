package systems

import (
	"github.com/decker502/bookviewer/pkg/book"
	"github.com/decker502/bookviewer/pkg/components"
	"github.com/decker502/bookviewer/pkg/ecs"
)

// PartCommandSystem 把排队的部件请求提交给状态机
//
// 输入处理只负责创建命令实体；所有请求都在 tick 开始时按创建顺序提交，
// 因此状态机始终在渲染线程上被调用。
type PartCommandSystem struct {
	entityManager *ecs.EntityManager
	machine       *book.Machine
	elapsed       float64
}

// NewPartCommandSystem 创建命令系统
func NewPartCommandSystem(em *ecs.EntityManager, machine *book.Machine) *PartCommandSystem {
	return &PartCommandSystem{
		entityManager: em,
		machine:       machine,
	}
}

// Request 排队一个 "把部件设为 desired" 的请求
func (s *PartCommandSystem) Request(part book.Part, desired book.State) ecs.EntityID {
	return s.enqueue(&components.PartCommandComponent{Part: part, Desired: desired})
}

// Toggle 排队一个切换请求
func (s *PartCommandSystem) Toggle(part book.Part) ecs.EntityID {
	return s.enqueue(&components.PartCommandComponent{Part: part, Toggle: true})
}

func (s *PartCommandSystem) enqueue(cmd *components.PartCommandComponent) ecs.EntityID {
	cmd.Timestamp = s.elapsed
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, cmd)
	return id
}

// Pending 返回尚未处理的命令数量
func (s *PartCommandSystem) Pending() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.PartCommandComponent](s.entityManager) {
		if cmd, ok := ecs.GetComponent[*components.PartCommandComponent](s.entityManager, id); ok && !cmd.Processed {
			n++
		}
	}
	return n
}

// Update 提交所有未处理的命令，已处理的命令实体标记删除
func (s *PartCommandSystem) Update(deltaTime float64) {
	s.elapsed += deltaTime

	for _, id := range ecs.GetEntitiesWith1[*components.PartCommandComponent](s.entityManager) {
		cmd, ok := ecs.GetComponent[*components.PartCommandComponent](s.entityManager, id)
		if !ok || cmd.Processed {
			continue
		}

		// 结果通过状态存储和警告回调体现，这里不需要返回值
		if cmd.Toggle {
			_ = s.machine.Toggle(cmd.Part)
		} else {
			_ = s.machine.RequestState(cmd.Part, cmd.Desired)
		}

		cmd.Processed = true
		s.entityManager.DestroyEntity(id)
	}
}
