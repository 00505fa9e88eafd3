package main

import (
	"time"

	"github.com/decker502/bookviewer/pkg/book"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// beepCues 用简单的正弦音提示：警告为低音，打开为高音，合上为中音
type beepCues struct{}

// newBeepCues 初始化扬声器；失败时返回错误，调用方可退回 silentCues
func newBeepCues() (*beepCues, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	return &beepCues{}, nil
}

func (c *beepCues) tone(freq float64, d time.Duration) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

func (c *beepCues) Warning() {
	c.tone(220, 150*time.Millisecond)
}

func (c *beepCues) StateChanged(state book.State) {
	if state == book.Open {
		c.tone(880, 40*time.Millisecond)
		return
	}
	c.tone(660, 40*time.Millisecond)
}

func (c *beepCues) Close() {
	speaker.Close()
}
