package book

import "testing"

// TestCompletionSignal_OnceFiresOnce 测试订阅只触发一次
func TestCompletionSignal_OnceFiresOnce(t *testing.T) {
	s := NewCompletionSignal()
	calls := 0
	s.Once(1, func(c Completion) {
		calls++
		if c.Direction != Forward {
			t.Errorf("Direction = %s, want Forward", c.Direction)
		}
	})

	s.Emit(Completion{Playback: 1, Clip: "A", Direction: Forward})
	s.Emit(Completion{Playback: 1, Clip: "A", Direction: Forward})

	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
	if s.Emitted() != 2 {
		t.Errorf("Emitted() = %d, want 2", s.Emitted())
	}
}

// TestCompletionSignal_BoundToPlayback 测试订阅只响应绑定的播放
func TestCompletionSignal_BoundToPlayback(t *testing.T) {
	s := NewCompletionSignal()
	fired := false
	s.Once(2, func(Completion) { fired = true })

	s.Emit(Completion{Playback: 1, Clip: "A", Direction: Forward})
	if fired {
		t.Fatal("handler fired for another playback")
	}

	s.Drop(2)
	s.Emit(Completion{Playback: 2, Clip: "A", Direction: Forward})
	if fired {
		t.Error("dropped handler fired")
	}
}

// TestCompletionSignal_ResubscribeInsideHandler 测试处理函数内注册新订阅
func TestCompletionSignal_ResubscribeInsideHandler(t *testing.T) {
	s := NewCompletionSignal()
	var order []PlaybackID
	s.Once(1, func(c Completion) {
		order = append(order, c.Playback)
		s.Once(2, func(c Completion) {
			order = append(order, c.Playback)
		})
	})

	s.Emit(Completion{Playback: 1})
	if s.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", s.Pending())
	}
	s.Emit(Completion{Playback: 2})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
}

// TestCompletionSignal_Reset 测试清空订阅
func TestCompletionSignal_Reset(t *testing.T) {
	s := NewCompletionSignal()
	s.Once(1, func(Completion) { t.Error("handler fired after Reset") })
	s.Reset()
	s.Emit(Completion{Playback: 1})
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}
