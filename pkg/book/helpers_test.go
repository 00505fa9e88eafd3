package book

import (
	"sort"
	"testing"

	"github.com/decker502/bookviewer/internal/clip"
)

// fakeAction 测试引擎中的单个片段动作
type fakeAction struct {
	clip    *clip.Clip
	time    float64
	dir     Direction
	playing bool
}

// startCall 记录一次 StartPlayback 调用
type startCall struct {
	clip      string
	startTime float64
	dir       Direction
}

// fakeEngine 确定性的测试引擎：按固定步长推进，结束时回调完成通知
type fakeEngine struct {
	actions  map[string]*fakeAction
	finished func(string)
	starts   []startCall
	halts    []string
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{actions: make(map[string]*fakeAction)}
}

func (e *fakeEngine) StartPlayback(c *clip.Clip, startTime float64, dir Direction, clampAtEnd bool) {
	e.actions[c.Name] = &fakeAction{clip: c, time: startTime, dir: dir, playing: true}
	e.starts = append(e.starts, startCall{clip: c.Name, startTime: startTime, dir: dir})
}

func (e *fakeEngine) HaltPlayback(name string) {
	if a, ok := e.actions[name]; ok {
		a.playing = false
	}
	e.halts = append(e.halts, name)
}

func (e *fakeEngine) PlaybackTime(name string) (float64, bool) {
	a, ok := e.actions[name]
	if !ok {
		return 0, false
	}
	return a.time, true
}

func (e *fakeEngine) SetFinishedHandler(fn func(string)) {
	e.finished = fn
}

func (e *fakeEngine) Tick(dt float64) {
	names := make([]string, 0, len(e.actions))
	for name := range e.actions {
		names = append(names, name)
	}
	sort.Strings(names)

	var done []string
	for _, name := range names {
		a := e.actions[name]
		if !a.playing {
			continue
		}
		a.time += dt * float64(a.dir)
		if a.dir == Forward && a.time >= a.clip.Duration {
			a.time = a.clip.Duration
			a.playing = false
			done = append(done, name)
		} else if a.dir == Reverse && a.time <= 0 {
			a.time = 0
			a.playing = false
			done = append(done, name)
		}
	}

	for _, name := range done {
		if e.finished != nil {
			e.finished(name)
		}
	}
}

// startedClips 返回按调用顺序启动过的片段名
func (e *fakeEngine) startedClips() []string {
	names := make([]string, 0, len(e.starts))
	for _, s := range e.starts {
		names = append(names, s.clip)
	}
	return names
}

// lastStart 返回片段最近一次启动记录
func (e *fakeEngine) lastStart(name string) (startCall, bool) {
	for i := len(e.starts) - 1; i >= 0; i-- {
		if e.starts[i].clip == name {
			return e.starts[i], true
		}
	}
	return startCall{}, false
}

const testStep = 0.25

func newClip(name string, duration float64, tracks ...string) *clip.Clip {
	return &clip.Clip{Name: name, Duration: duration, Tracks: tracks}
}

// bookClips 一本完整的测试书：锁扣、封面、书脊和三页
func bookClips() []*clip.Clip {
	return []*clip.Clip{
		newClip("LatchOpen", 0.5, "latch.quaternion"),
		newClip("FrontCoverOpen", 1.0, "front_cover.quaternion", "front_cover.position"),
		newClip("SplineBend", 1.0, "spline.morphTargetInfluences"),
		newClip("Page3Turn", 1.0, "page3.quaternion"),
		newClip("Page1Turn", 1.0, "page1.quaternion"),
		newClip("Page2Turn", 1.0, "page2.quaternion"),
	}
}

// newTestMachine 创建载入 clips 的状态机，并收集警告
func newTestMachine(t *testing.T, policy Policy, clips []*clip.Clip) (*Machine, *fakeEngine, *[]*TransitionError) {
	t.Helper()
	eng := newFakeEngine()
	m := NewMachine(eng, policy)
	warnings := &[]*TransitionError{}
	m.SetWarningHandler(func(err *TransitionError) {
		*warnings = append(*warnings, err)
	})
	m.Load(clips)
	return m, eng, warnings
}

// settle 推进引擎直到没有进行中的级联和播放
func settle(t *testing.T, m *Machine, eng *fakeEngine) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if !m.Busy() && len(m.Driver().Active()) == 0 {
			return
		}
		eng.Tick(testStep)
	}
	t.Fatalf("machine did not settle: busy=%v active=%d", m.Busy(), len(m.Driver().Active()))
}

// mustRequest 发起请求并要求被接受
func mustRequest(t *testing.T, m *Machine, p Part, s State) {
	t.Helper()
	if err := m.RequestState(p, s); err != nil {
		t.Fatalf("RequestState(%s, %s) error: %v", p, s, err)
	}
}

// assertStates 检查多个部件的状态
func assertStates(t *testing.T, m *Machine, want map[Part]State) {
	t.Helper()
	for p, st := range want {
		if got := m.State(p); got != st {
			t.Errorf("State(%s) = %s, want %s", p, got, st)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
