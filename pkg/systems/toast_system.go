package systems

import (
	"github.com/decker502/bookviewer/pkg/components"
	"github.com/decker502/bookviewer/pkg/ecs"
)

// ToastSystem 管理屏幕提示的生命周期
type ToastSystem struct {
	entityManager *ecs.EntityManager
}

// NewToastSystem 创建提示系统
func NewToastSystem(em *ecs.EntityManager) *ToastSystem {
	return &ToastSystem{entityManager: em}
}

// Show 显示一条提示
func (s *ToastSystem) Show(toast *components.ToastComponent) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, toast)
	return id
}

// Active 返回当前显示的提示，按创建顺序
func (s *ToastSystem) Active() []*components.ToastComponent {
	var toasts []*components.ToastComponent
	for _, id := range ecs.GetEntitiesWith1[*components.ToastComponent](s.entityManager) {
		if toast, ok := ecs.GetComponent[*components.ToastComponent](s.entityManager, id); ok {
			toasts = append(toasts, toast)
		}
	}
	return toasts
}

// Update 累加显示时间，过期的提示标记删除
func (s *ToastSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.ToastComponent](s.entityManager) {
		toast, ok := ecs.GetComponent[*components.ToastComponent](s.entityManager, id)
		if !ok {
			continue
		}
		toast.CurrentLifetime += deltaTime
		if toast.CurrentLifetime >= toast.MaxLifetime {
			s.entityManager.DestroyEntity(id)
		}
	}
}
