package components

import "github.com/decker502/bookviewer/pkg/book"

// PartCommandComponent 部件状态请求命令（纯数据）
//
// 输入处理（按键、点击、终端命令）不直接调用状态机，而是把请求作为组件
// 挂到命令实体上，由 PartCommandSystem 在每个 tick 开始时按实体顺序提交。
//
// 生命周期:
//  1. 输入处理创建实体并添加此组件
//  2. PartCommandSystem 提交请求并标记 Processed = true
//  3. 已处理的命令实体在同一帧末被删除
type PartCommandComponent struct {
	// Part 目标部件
	Part book.Part

	// Desired 期望状态（Toggle 为 true 时忽略）
	Desired book.State

	// Toggle 为 true 时请求与当前记录相反的状态
	Toggle bool

	// Processed 是否已被 PartCommandSystem 处理
	Processed bool

	// Timestamp 命令创建时间（查看器运行时间，单位：秒），调试用
	Timestamp float64
}
