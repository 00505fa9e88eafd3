package components

import (
	"fmt"
	"math"
)

// Vec3 三维向量（世界坐标）
type Vec3 struct {
	X, Y, Z float64
}

// Add 向量相加
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 向量相减
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 向量数乘
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Length 向量长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// DistanceTo 两点距离
func (v Vec3) DistanceTo(o Vec3) float64 {
	return v.Sub(o).Length()
}

// String 以 [x, y, z] 格式输出，保留三位小数，极小值显示为 0
func (v Vec3) String() string {
	return fmt.Sprintf("[%s, %s, %s]", fmtCoord(v.X), fmtCoord(v.Y), fmtCoord(v.Z))
}

func fmtCoord(n float64) string {
	if math.Abs(n) < 1e-4 {
		n = 0
	}
	return fmt.Sprintf("%.3f", n)
}

// CameraComponent 查看器镜头（只平移和缩放，不旋转）
//
// Target 是镜头注视点；平移时 Position 与 Target 同步移动。
// 缩放沿 Position→Target 方向移动 Position，距离限制在 [MinDistance, MaxDistance]，
// 值为 0 表示不限制。
type CameraComponent struct {
	Position Vec3
	Target   Vec3

	// FOV 垂直视角（度）
	FOV float64

	MinDistance float64
	MaxDistance float64

	// HUDText 镜头信息文本，由 PanSystem 以约 10Hz 刷新
	HUDText string

	// HUDElapsed 距上次刷新 HUD 的时间（秒）
	HUDElapsed float64
}

// Distance 返回镜头到注视点的距离
func (c *CameraComponent) Distance() float64 {
	return c.Position.DistanceTo(c.Target)
}
