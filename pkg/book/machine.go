package book

import (
	"errors"
	"log"

	"github.com/decker502/bookviewer/internal/clip"
)

// WarningFunc 被拒绝请求的警告回调（非致命）
type WarningFunc func(err *TransitionError)

// chain 一次顶层请求产生的顺序级联
// 第 N+1 步只在第 N 步的完成信号触发、状态存储更新之后才开始
type chain struct {
	id        uint64
	part      Part
	desired   State
	steps     []step
	next      int
	pending   map[PlaybackID]bool
	cancelled bool
}

// Machine 交互状态机
//
// 调用方（UI）通过 RequestState 请求把某个部件设为打开或合上。状态机根据
// 部件状态存储校验合法性，计算所需的级联步骤，并通过冲突解决器、播放驱动
// 和完成信号异步地按序执行。
//
// 最新的请求总是胜出：一个被接受的非空请求会取代上一条级联（丢弃其尚未执行的步骤）。
// 上一条级联正在播放的片段若未被新级联接管或因冲突停止，会自然播放完成并更新状态。
//
// Machine 不是并发安全的，所有方法都必须在渲染 tick 所在的线程调用。
type Machine struct {
	policy   Policy
	clips    []*clip.Clip
	store    *PartStateStore
	signal   *CompletionSignal
	driver   *PlaybackDriver
	resolver *ConflictResolver
	warn     WarningFunc

	current   *chain
	nextChain uint64
}

// NewMachine 创建交互状态机
func NewMachine(engine Engine, policy Policy) *Machine {
	signal := NewCompletionSignal()
	driver := NewPlaybackDriver(engine, signal)
	return &Machine{
		policy:   policy,
		store:    NewPartStateStore(),
		signal:   signal,
		driver:   driver,
		resolver: NewConflictResolver(driver),
	}
}

// SetWarningHandler 设置被拒绝请求的警告回调
func (m *Machine) SetWarningHandler(fn WarningFunc) {
	m.warn = fn
}

// SetPolicy 替换行为策略，对之后的请求生效
func (m *Machine) SetPolicy(p Policy) {
	m.policy = p
}

// Policy 返回当前策略
func (m *Machine) Policy() Policy {
	return m.policy
}

// Load 载入新模型的片段
//
// 停止所有播放，丢弃所有级联与订阅，并把所有发现的部件初始化为 Closed。
func (m *Machine) Load(clips []*clip.Clip) {
	m.driver.Reset()
	m.signal.Reset()
	if m.current != nil {
		m.current.cancelled = true
		m.current = nil
	}

	m.clips = clips
	cat := Discover(clips)
	m.store.Reset(cat.Parts())

	log.Printf("[BookMachine] 模型已加载: clips=%d, pages=%d, latch=%v, frontCover=%v, ancillary=%d",
		len(clips), len(cat.OrderedPages()), cat.Has(Latch), cat.Has(FrontCover), len(cat.Ancillary()))
	for _, c := range clips {
		if c == nil {
			continue
		}
		cls := ClassifyClip(c)
		log.Printf("[BookMachine]   - %s: class=%s nodes=%v", c.Name, cls.Class, c.TargetNodes())
	}
}

// Catalog 返回从当前片段集合重新推导的部件目录
func (m *Machine) Catalog() *Catalog {
	return Discover(m.clips)
}

// Store 返回部件状态存储
func (m *Machine) Store() *PartStateStore {
	return m.store
}

// Driver 返回播放驱动
func (m *Machine) Driver() *PlaybackDriver {
	return m.driver
}

// Signal 返回完成信号
func (m *Machine) Signal() *CompletionSignal {
	return m.signal
}

// State 返回部件当前记录的状态
func (m *Machine) State(p Part) State {
	return m.store.Get(p)
}

// Busy 判断是否有级联尚未完成
func (m *Machine) Busy() bool {
	return m.current != nil
}

// Transitioning 判断部件是否有进行中的播放
func (m *Machine) Transitioning(p Part) bool {
	_, moving := m.Motion(p)
	return moving
}

// Motion 返回部件进行中播放的方向，没有播放时第二个返回值为 false
func (m *Machine) Motion(p Part) (Direction, bool) {
	return m.planner(m.Catalog()).transitioning(p)
}

// RequestState 请求把部件 p 设为 desired
//
// 返回值：
//   - nil：请求被接受（级联已开始）或无操作
//   - 包装 ErrMissingAsset 的错误：模型缺少相关片段，请求被静默忽略
//   - *TransitionError（errors.Is ErrIllegalTransition）：非法请求，已发出警告，状态与播放均未改变
//
// UI 调用方可以忽略返回值，结果全部通过副作用体现。
func (m *Machine) RequestState(p Part, desired State) error {
	cat := m.Catalog()
	steps, err := m.planner(cat).plan(p, desired)
	if err != nil {
		var te *TransitionError
		if errors.As(err, &te) {
			log.Printf("[BookMachine] Warning: %v", te)
			if m.warn != nil {
				m.warn(te)
			}
		} else {
			log.Printf("[BookMachine] 忽略请求 %s → %s: %v", p, desired, err)
		}
		return err
	}

	if len(steps) == 0 {
		return nil
	}

	m.nextChain++
	ch := &chain{
		id:      m.nextChain,
		part:    p,
		desired: desired,
		steps:   steps,
	}

	if prev := m.current; prev != nil {
		prev.cancelled = true
		log.Printf("[BookMachine] 级联 #%d (%s → %s) 被级联 #%d 取代",
			prev.id, prev.part, prev.desired, ch.id)
	}
	m.current = ch

	log.Printf("[BookMachine] 级联 #%d: %s → %s, %d 步", ch.id, p, desired, len(steps))
	m.advance(ch)
	return nil
}

// Toggle 把部件设为与当前记录相反的状态
func (m *Machine) Toggle(p Part) error {
	return m.RequestState(p, m.store.Get(p).Opposite())
}

// OpenBook 打开书（必要时先打开锁扣）
func (m *Machine) OpenBook() error {
	return m.RequestState(FrontCover, Open)
}

// CloseBook 合上书：合上所有书页和封面，再合上锁扣
// 封面已合上时只合上锁扣
func (m *Machine) CloseBook() error {
	cat := m.Catalog()
	if cat.Has(FrontCover) && m.planner(cat).needs(FrontCover, Closed) {
		return m.RequestState(FrontCover, Closed)
	}
	return m.RequestState(Latch, Closed)
}

func (m *Machine) planner(cat *Catalog) *planner {
	return &planner{
		cat:    cat,
		store:  m.store,
		driver: m.driver,
		policy: m.policy,
	}
}

// advance 执行级联的下一步；级联被取代后不再继续
func (m *Machine) advance(ch *chain) {
	if ch.cancelled {
		return
	}
	if ch.next >= len(ch.steps) {
		log.Printf("[BookMachine] 级联 #%d 完成: %s → %s", ch.id, ch.part, ch.desired)
		if m.current == ch {
			m.current = nil
		}
		return
	}

	st := ch.steps[ch.next]
	ch.next++
	m.runStep(ch, st)
}

// runStep 执行单步 "以方向 D 播放片段 C"：
//  1. 计算 C 影响的节点
//  2. 停止与之冲突的其他播放（排除 C 自身）
//  3. 启动播放
//  4. 注册绑定到该次播放的一次性完成订阅
func (m *Machine) runStep(ch *chain, st step) {
	names := make([]string, 0, len(st.clips)+len(st.companions))
	for _, c := range st.clips {
		names = append(names, c.Name)
	}
	for _, c := range st.companions {
		names = append(names, c.Name)
	}

	m.resolver.Resolve(NodesOf(st.clips...), names...)

	ch.pending = make(map[PlaybackID]bool, len(st.clips))
	for _, c := range st.clips {
		pb := m.driver.Play(c, st.dir)
		ch.pending[pb.ID] = true
		m.signal.Once(pb.ID, func(done Completion) {
			m.onStepClipDone(ch, st, done)
		})
	}

	log.Printf("[BookMachine] 级联 #%d 第 %d/%d 步: %s %s (%d 个片段)",
		ch.id, ch.next, len(ch.steps), st.part, st.dir, len(st.clips))

	if len(st.companions) > 0 {
		m.resolver.Resolve(NodesOf(st.companions...), names...)
		for _, c := range st.companions {
			m.driver.Play(c, st.dir)
		}
		log.Printf("[BookMachine] 附属片段同步播放: %d 个, dir=%s", len(st.companions), st.dir)
	} else if st.part == FrontCover {
		log.Printf("[BookMachine] Warning: 没有可与封面同步播放的 spline 片段")
	}
}

// onStepClipDone 单个片段播放完成
// 该步所有片段都完成后才更新部件状态并继续下一步
func (m *Machine) onStepClipDone(ch *chain, st step, done Completion) {
	delete(ch.pending, done.Playback)
	if len(ch.pending) > 0 {
		return
	}

	m.store.set(st.part, done.Direction.Target())
	log.Printf("[BookMachine] %s → %s", st.part, done.Direction.Target())

	m.advance(ch)
}
