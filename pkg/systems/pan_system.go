package systems

import (
	"fmt"

	"github.com/decker502/bookviewer/pkg/components"
	"github.com/decker502/bookviewer/pkg/ecs"
)

// hudInterval 镜头 HUD 刷新间隔（约 10Hz）
const hudInterval = 0.1

// PanSystem 镜头平移、缩放与平移边界
//
// 镜头只平移和缩放，不旋转。启用边界时，注视点离原点的距离被限制在 radius 内：
// 超出时把注视点拉回边界，镜头位置随之移动同样的偏移。
type PanSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID

	limitEnabled bool
	limitRadius  float64
	origin       components.Vec3
}

// NewPanSystem 创建镜头系统和镜头实体
func NewPanSystem(em *ecs.EntityManager, camera *components.CameraComponent) *PanSystem {
	ps := &PanSystem{
		entityManager: em,
		origin:        camera.Target,
	}
	ps.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, ps.cameraEntity, camera)
	ps.refreshHUD(camera)
	return ps
}

// Camera 返回镜头组件
func (ps *PanSystem) Camera() *components.CameraComponent {
	cam, _ := ecs.GetComponent[*components.CameraComponent](ps.entityManager, ps.cameraEntity)
	return cam
}

// SetLimit 设置平移边界；radius <= 0 等同于禁用
func (ps *PanSystem) SetLimit(enabled bool, radius float64, origin components.Vec3) {
	ps.limitEnabled = enabled
	ps.limitRadius = radius
	ps.origin = origin
}

// Limit 返回当前平移边界
func (ps *PanSystem) Limit() (enabled bool, radius float64, origin components.Vec3) {
	return ps.limitEnabled, ps.limitRadius, ps.origin
}

// ApplyPreset 把镜头重置为预设（模型重新加载时调用）
func (ps *PanSystem) ApplyPreset(preset *components.CameraComponent) {
	cam := ps.Camera()
	if cam == nil {
		return
	}
	cam.Position = preset.Position
	cam.Target = preset.Target
	cam.FOV = preset.FOV
	cam.MinDistance = preset.MinDistance
	cam.MaxDistance = preset.MaxDistance
	ps.refreshHUD(cam)
}

// Pan 把镜头和注视点平移 delta（边界在 Update 中施加）
func (ps *PanSystem) Pan(delta components.Vec3) {
	cam := ps.Camera()
	if cam == nil {
		return
	}
	cam.Position = cam.Position.Add(delta)
	cam.Target = cam.Target.Add(delta)
}

// Zoom 沿视线缩放镜头距离，factor < 1 拉近，> 1 拉远
func (ps *PanSystem) Zoom(factor float64) {
	cam := ps.Camera()
	if cam == nil || factor <= 0 {
		return
	}

	offset := cam.Position.Sub(cam.Target)
	dist := offset.Length()
	if dist == 0 {
		return
	}

	newDist := dist * factor
	if cam.MinDistance > 0 && newDist < cam.MinDistance {
		newDist = cam.MinDistance
	}
	if cam.MaxDistance > 0 && newDist > cam.MaxDistance {
		newDist = cam.MaxDistance
	}
	cam.Position = cam.Target.Add(offset.Scale(newDist / dist))
}

// Update 施加平移边界，并按约 10Hz 刷新 HUD 文本
func (ps *PanSystem) Update(deltaTime float64) {
	cam := ps.Camera()
	if cam == nil {
		return
	}

	if ps.limitEnabled && ps.limitRadius > 0 {
		delta := cam.Target.Sub(ps.origin)
		if dist := delta.Length(); dist > ps.limitRadius {
			clamped := ps.origin.Add(delta.Scale(ps.limitRadius / dist))
			adjust := clamped.Sub(cam.Target)
			cam.Target = clamped
			cam.Position = cam.Position.Add(adjust)
		}
	}

	cam.HUDElapsed += deltaTime
	if cam.HUDElapsed >= hudInterval {
		ps.refreshHUD(cam)
	}
}

func (ps *PanSystem) refreshHUD(cam *components.CameraComponent) {
	cam.HUDElapsed = 0
	cam.HUDText = fmt.Sprintf("pos    %s\ntarget %s\nfov    %.3f\ndist   %.3f",
		cam.Position, cam.Target, cam.FOV, cam.Distance())
}
