package book

import "testing"

// TestPlaybackDriver_StartTimes 测试正向从 0、反向从结尾开始
func TestPlaybackDriver_StartTimes(t *testing.T) {
	eng := newFakeEngine()
	d := NewPlaybackDriver(eng, NewCompletionSignal())
	c := newClip("Page1Turn", 1.0, "page1.quaternion")

	d.Play(c, Forward)
	if s, _ := eng.lastStart("Page1Turn"); s.startTime != 0 || s.dir != Forward {
		t.Errorf("forward start = %+v, want t=0 Forward", s)
	}

	eng.Tick(1.0)
	d.Play(c, Reverse)
	if s, _ := eng.lastStart("Page1Turn"); s.startTime != 1.0 || s.dir != Reverse {
		t.Errorf("reverse start = %+v, want t=1 Reverse", s)
	}
}

// TestPlaybackDriver_CompletionCarriesDirection 测试完成事件携带记录的方向与播放 ID
func TestPlaybackDriver_CompletionCarriesDirection(t *testing.T) {
	eng := newFakeEngine()
	sig := NewCompletionSignal()
	d := NewPlaybackDriver(eng, sig)
	c := newClip("LatchOpen", 0.5, "latch.quaternion")

	pb := d.Play(c, Reverse)
	var got *Completion
	sig.Once(pb.ID, func(done Completion) { got = &done })

	eng.Tick(testStep)
	if got != nil {
		t.Fatal("completion fired early")
	}
	eng.Tick(testStep)
	if got == nil {
		t.Fatal("completion did not fire")
	}
	if got.Direction != Reverse || got.Clip != "LatchOpen" || got.Playback != pb.ID {
		t.Errorf("completion = %+v", *got)
	}
	if _, ok := d.InFlight("LatchOpen"); ok {
		t.Error("finished playback still in flight")
	}
}

// TestPlaybackDriver_SupersedeResumesFromCurrentTime 测试取代进行中播放时从当前时间继续
func TestPlaybackDriver_SupersedeResumesFromCurrentTime(t *testing.T) {
	eng := newFakeEngine()
	sig := NewCompletionSignal()
	d := NewPlaybackDriver(eng, sig)
	c := newClip("FrontCoverOpen", 1.0, "front_cover.quaternion")

	first := d.Play(c, Forward)
	fired := false
	sig.Once(first.ID, func(Completion) { fired = true })
	eng.Tick(testStep)

	second := d.Play(c, Reverse)
	if second.ID == first.ID {
		t.Fatal("superseding playback must get a new ID")
	}
	if second.StartTime != testStep {
		t.Errorf("StartTime = %v, want %v", second.StartTime, testStep)
	}
	if sig.Pending() != 0 {
		t.Errorf("superseded subscription still pending")
	}

	eng.Tick(testStep)
	if !fired && len(d.Active()) != 0 {
		t.Errorf("reverse playback should have finished after %v", 2*testStep)
	}
	if fired {
		t.Error("superseded playback fired its completion")
	}
}

// TestPlaybackDriver_Halt 测试停止播放不触发完成且记录停止位置
func TestPlaybackDriver_Halt(t *testing.T) {
	eng := newFakeEngine()
	sig := NewCompletionSignal()
	d := NewPlaybackDriver(eng, sig)
	c := newClip("Page2Turn", 1.0, "page2.quaternion")

	pb := d.Play(c, Forward)
	sig.Once(pb.ID, func(Completion) { t.Error("halted playback fired") })
	eng.Tick(0.5)

	halted, ok := d.Halt("Page2Turn")
	if !ok || halted.ID != pb.ID {
		t.Fatalf("Halt() = %v,%v", halted, ok)
	}
	if _, ok := d.Halt("Page2Turn"); ok {
		t.Error("second Halt() should report nothing in flight")
	}
	for i := 0; i < 10; i++ {
		eng.Tick(testStep)
	}

	d.Play(c, Reverse)
	if s, _ := eng.lastStart("Page2Turn"); s.startTime != 0.5 {
		t.Errorf("resume start = %v, want 0.5", s.startTime)
	}
}

// TestPlaybackDriver_Active 测试进行中播放按启动顺序排列
func TestPlaybackDriver_Active(t *testing.T) {
	eng := newFakeEngine()
	d := NewPlaybackDriver(eng, NewCompletionSignal())
	d.Play(newClip("B", 1, "b.x"), Forward)
	d.Play(newClip("A", 1, "a.x"), Forward)

	active := d.Active()
	if len(active) != 2 || active[0].Clip.Name != "B" || active[1].Clip.Name != "A" {
		t.Errorf("Active() order wrong: %v", active)
	}

	d.Reset()
	if len(d.Active()) != 0 {
		t.Error("Reset() should clear in-flight playbacks")
	}
	if len(eng.halts) != 2 {
		t.Errorf("Reset() halted %d clips, want 2", len(eng.halts))
	}
}
