package book

// StateChangeFunc 部件状态变化回调
type StateChangeFunc func(part Part, state State)

// PartStateStore 是部件状态的唯一权威记录
//
// 只在播放完成时由状态机更新（正向完成 → Open，反向完成 → Closed），
// 从不在请求时预先修改。被抢占的播放不会改变状态。
type PartStateStore struct {
	states    map[Part]State
	observers []StateChangeFunc
}

// NewPartStateStore 创建空的状态存储
func NewPartStateStore() *PartStateStore {
	return &PartStateStore{
		states: make(map[Part]State),
	}
}

// Reset 清空存储，并把给定部件全部初始化为 Closed
func (s *PartStateStore) Reset(parts []Part) {
	s.states = make(map[Part]State, len(parts))
	for _, p := range parts {
		s.states[p] = Closed
	}
}

// Get 返回部件状态；未知部件视为 Closed
func (s *PartStateStore) Get(p Part) State {
	return s.states[p]
}

// Snapshot 返回当前状态的副本
func (s *PartStateStore) Snapshot() map[Part]State {
	snap := make(map[Part]State, len(s.states))
	for p, st := range s.states {
		snap[p] = st
	}
	return snap
}

// Subscribe 注册状态变化观察者（UI、测试用）
func (s *PartStateStore) Subscribe(fn StateChangeFunc) {
	s.observers = append(s.observers, fn)
}

// set 记录部件状态并通知观察者
// 仅由状态机的完成处理函数调用
func (s *PartStateStore) set(p Part, st State) {
	s.states[p] = st
	for _, fn := range s.observers {
		fn(p, st)
	}
}
