// Package book 实现书本模型的交互状态机
//
// 书本由若干独立动画的刚体部件组成：锁扣（Latch）、封面（FrontCover）和一组有序的
// 书页（Page）。每个部件都有预制的开/合动画片段：正向播放表示打开，反向播放表示合上。
//
// 本包负责：
//   - 片段分类（ClassifyClip）与书页排序（Catalog）
//   - 冲突解决（ConflictResolver）：新播放总是抢占共享节点的旧播放
//   - 播放驱动（PlaybackDriver）：包装外部动画引擎，记录每次播放的方向
//   - 完成信号（CompletionSignal）：每个非循环播放结束时触发一次
//   - 部件状态存储（PartStateStore）：只在播放完成时更新
//   - 交互状态机（Machine）：校验请求合法性、计算级联步骤并按序执行
//
// 所有操作运行在单线程的渲染 tick 中，不阻塞，等待通过完成信号上的延续表达。
package book

import "fmt"

// PartKind 部件类型
type PartKind int

const (
	// KindLatch 锁扣
	KindLatch PartKind = iota
	// KindFrontCover 封面
	KindFrontCover
	// KindPage 书页
	KindPage
)

// String 返回部件类型的字符串表示（用于日志）
func (k PartKind) String() string {
	switch k {
	case KindLatch:
		return "Latch"
	case KindFrontCover:
		return "FrontCover"
	case KindPage:
		return "Page"
	default:
		return "Unknown"
	}
}

// Part 是一个逻辑铰接部件，具有开/合两种状态
//
// 书页以它在书页顺序中的位置标识（从 0 开始）：Page(0) 是第一张书页。
// 节点名解析出的数字只决定顺序，解析出相同数字的书页仍是不同的部件。
type Part struct {
	Kind  PartKind
	Index int // 仅 KindPage 使用
}

var (
	// Latch 锁扣部件
	Latch = Part{Kind: KindLatch}
	// FrontCover 封面部件
	FrontCover = Part{Kind: KindFrontCover}
)

// Page 返回第 n 张书页（从 0 开始）
func Page(n int) Part {
	return Part{Kind: KindPage, Index: n}
}

// IsPage 判断是否为书页部件
func (p Part) IsPage() bool {
	return p.Kind == KindPage
}

// String 返回部件的可读名称，如 "Latch"、"Page(2)"
func (p Part) String() string {
	if p.Kind != KindPage {
		return p.Kind.String()
	}
	return fmt.Sprintf("Page(%d)", p.Index)
}

// State 部件的逻辑状态
type State int

const (
	// Closed 合上（片段起始姿态）
	Closed State = iota
	// Open 打开（片段结束姿态）
	Open
)

// String 返回状态名
func (s State) String() string {
	if s == Open {
		return "Open"
	}
	return "Closed"
}

// Opposite 返回相反的状态
func (s State) Opposite() State {
	if s == Open {
		return Closed
	}
	return Open
}

// Direction 播放方向
type Direction int

const (
	// Forward 从片段开头播放到结尾（打开）
	Forward Direction = 1
	// Reverse 从片段结尾倒放到开头（合上）
	Reverse Direction = -1
)

// String 返回方向名
func (d Direction) String() string {
	if d == Reverse {
		return "Reverse"
	}
	return "Forward"
}

// Target 返回该方向播放完成后部件所处的状态
func (d Direction) Target() State {
	if d == Reverse {
		return Closed
	}
	return Open
}

// DirectionFor 返回到达指定状态所需的播放方向
func DirectionFor(s State) Direction {
	if s == Open {
		return Forward
	}
	return Reverse
}
