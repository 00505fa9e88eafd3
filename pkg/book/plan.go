package book

import "github.com/decker502/bookviewer/internal/clip"

// LaterPagePolicy 打开书页 n 时，后面已打开书页的处理策略
type LaterPagePolicy int

const (
	// AutoCloseLaterPages 先按索引降序逐页合上后面的书页，再打开目标页
	AutoCloseLaterPages LaterPagePolicy = iota
	// RejectLaterPages 拒绝请求，要求调用方先手动合上后面的书页
	RejectLaterPages
)

// String 返回策略名
func (p LaterPagePolicy) String() string {
	if p == RejectLaterPages {
		return "reject"
	}
	return "auto_close"
}

// Policy 状态机的行为策略
type Policy struct {
	// LaterPages 打开较前书页时对后面已打开书页的处理
	LaterPages LaterPagePolicy

	// AutoOpenBook 为 true 时，书合着的情况下打开书页会先级联打开锁扣和封面；
	// 为 false 时此类请求被拒绝
	AutoOpenBook bool
}

// DefaultPolicy 默认策略：自动合上后面的书页，书合着时拒绝翻页
func DefaultPolicy() Policy {
	return Policy{LaterPages: AutoCloseLaterPages}
}

// step 级联中的一步：把一个部件的所有片段按同一方向播放
type step struct {
	part  Part
	dir   Direction
	clips []*clip.Clip

	// companions 同向同时播放的附属片段，只作装饰，不跟踪状态
	companions []*clip.Clip
}

// planner 根据当前状态计算级联步骤
//
// 判定使用严格语义：
//   - isOpen(X)：状态为 Open，且 X 没有正在进行的反向播放
//   - isClosed(X)：状态为 Closed，且 X 没有正在进行的正向播放
//
// 正在过渡的部件两者都不满足；模型中不存在的部件两者都满足（缺失的能力不构成前置条件）。
type planner struct {
	cat    *Catalog
	store  *PartStateStore
	driver *PlaybackDriver
	policy Policy
}

// transitioning 返回部件进行中播放的方向
func (pl *planner) transitioning(p Part) (Direction, bool) {
	for _, c := range pl.cat.ClipsFor(p) {
		if pb, ok := pl.driver.InFlight(c.Name); ok {
			return pb.Direction, true
		}
	}
	return 0, false
}

func (pl *planner) isOpen(p Part) bool {
	if !pl.cat.Has(p) {
		return true
	}
	if dir, moving := pl.transitioning(p); moving && dir == Reverse {
		return false
	}
	return pl.store.Get(p) == Open
}

func (pl *planner) isClosed(p Part) bool {
	if !pl.cat.Has(p) {
		return true
	}
	if dir, moving := pl.transitioning(p); moving && dir == Forward {
		return false
	}
	return pl.store.Get(p) == Closed
}

// needs 判断部件是否需要一步播放才能到达 s
func (pl *planner) needs(p Part, s State) bool {
	if !pl.cat.Has(p) {
		return false
	}
	if s == Open {
		return !pl.isOpen(p)
	}
	return !pl.isClosed(p)
}

func (pl *planner) stepFor(p Part, s State) step {
	st := step{part: p, dir: DirectionFor(s), clips: pl.cat.ClipsFor(p)}
	if p == FrontCover {
		st.companions = pl.cat.Ancillary()
	}
	return st
}

// plan 计算把部件 p 设为 desired 所需的有序步骤
// 返回空切片表示无操作；返回 *TransitionError 表示非法请求
func (pl *planner) plan(p Part, desired State) ([]step, error) {
	if !pl.cat.Has(p) {
		return nil, missing(p)
	}

	switch p.Kind {
	case KindLatch:
		return pl.planLatch(desired)
	case KindFrontCover:
		return pl.planFrontCover(desired)
	default:
		return pl.planPage(p, desired)
	}
}

func (pl *planner) planLatch(desired State) ([]step, error) {
	if !pl.needs(Latch, desired) {
		return nil, nil
	}
	if desired == Closed && !pl.isClosed(FrontCover) {
		return nil, illegal(Latch, desired, reasonFrontCoverIsOpen)
	}
	return []step{pl.stepFor(Latch, desired)}, nil
}

func (pl *planner) planFrontCover(desired State) ([]step, error) {
	if !pl.needs(FrontCover, desired) {
		return nil, nil
	}

	var steps []step
	if desired == Open {
		// 打开封面前先打开锁扣
		if pl.needs(Latch, Open) {
			steps = append(steps, pl.stepFor(Latch, Open))
		}
		return append(steps, pl.stepFor(FrontCover, Open)), nil
	}

	// 合上封面：先按索引降序合上所有打开的书页，最后合上锁扣
	pages := pl.cat.OrderedPages()
	for i := len(pages) - 1; i >= 0; i-- {
		if pl.needs(pages[i], Closed) {
			steps = append(steps, pl.stepFor(pages[i], Closed))
		}
	}
	steps = append(steps, pl.stepFor(FrontCover, Closed))
	if pl.needs(Latch, Closed) {
		steps = append(steps, pl.stepFor(Latch, Closed))
	}
	return steps, nil
}

func (pl *planner) planPage(p Part, desired State) ([]step, error) {
	if !pl.needs(p, desired) {
		return nil, nil
	}

	var steps []step

	if !pl.isOpen(Latch) || !pl.isOpen(FrontCover) {
		if desired == Closed || !pl.policy.AutoOpenBook {
			return nil, illegal(p, desired, reasonBookClosed)
		}
		if pl.needs(Latch, Open) {
			steps = append(steps, pl.stepFor(Latch, Open))
		}
		if pl.needs(FrontCover, Open) {
			steps = append(steps, pl.stepFor(FrontCover, Open))
		}
	}

	later := pl.cat.pagesAfter(p)
	var laterOpen []Part
	for _, page := range later {
		if !pl.isClosed(page) {
			laterOpen = append(laterOpen, page)
		}
	}

	if desired == Closed {
		if len(laterOpen) > 0 {
			return nil, illegal(p, desired, reasonLaterPagesOpen)
		}
		return append(steps, pl.stepFor(p, Closed)), nil
	}

	if len(laterOpen) > 0 {
		if pl.policy.LaterPages == RejectLaterPages {
			return nil, illegal(p, desired, reasonLaterPagesOpen)
		}
		for i := len(laterOpen) - 1; i >= 0; i-- {
			steps = append(steps, pl.stepFor(laterOpen[i], Closed))
		}
	}

	for _, page := range pl.cat.pagesBefore(p) {
		if pl.needs(page, Open) {
			steps = append(steps, pl.stepFor(page, Open))
		}
	}
	return append(steps, pl.stepFor(p, Open)), nil
}
