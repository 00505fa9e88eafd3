package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/decker502/bookviewer/internal/clip"
	"github.com/decker502/bookviewer/pkg/book"
	"github.com/decker502/bookviewer/pkg/config"
	"github.com/decker502/bookviewer/pkg/ecs"
	"github.com/decker502/bookviewer/pkg/systems"
	"github.com/gdamore/tcell/v2"
)

const (
	barCells       = 24
	messageSeconds = 3.0
)

// cuePlayer 状态机事件的提示音
type cuePlayer interface {
	Warning()
	StateChanged(state book.State)
}

// silentCues 不发声（音频不可用或测试时使用）
type silentCues struct{}

func (silentCues) Warning()                 {}
func (silentCues) StateChanged(book.State) {}

// bookView 终端界面的状态：与 ebiten 场景共用同一套混合器、命令系统和状态机
type bookView struct {
	manifest      *clip.Manifest
	entityManager *ecs.EntityManager
	mixer         *systems.MixerSystem
	machine       *book.Machine
	commands      *systems.PartCommandSystem
	cues          cuePlayer

	message    string
	messageAge float64
}

func newBookView(manifest *clip.Manifest, cfg *config.ViewerConfig, cues cuePlayer) *bookView {
	if cues == nil {
		cues = silentCues{}
	}
	em := ecs.NewEntityManager()
	mixer := systems.NewMixerSystem(em, cfg.Playback.Speed)
	machine := book.NewMachine(mixer, cfg.BookPolicy())

	v := &bookView{
		manifest:      manifest,
		entityManager: em,
		mixer:         mixer,
		machine:       machine,
		commands:      systems.NewPartCommandSystem(em, machine),
		cues:          cues,
	}
	machine.SetWarningHandler(func(err *book.TransitionError) {
		v.showMessage(err.Error())
		v.cues.Warning()
	})
	machine.Store().Subscribe(func(part book.Part, state book.State) {
		v.cues.StateChanged(state)
	})
	machine.Load(manifest.Clips)
	return v
}

func (v *bookView) showMessage(msg string) {
	v.message = msg
	v.messageAge = 0
}

// tick 推进一帧：命令 → 混合器 → 删除实体
func (v *bookView) tick(dt float64) {
	v.commands.Update(dt)
	v.mixer.Update(dt)
	v.entityManager.RemoveMarkedEntities()

	if v.message != "" {
		v.messageAge += dt
		if v.messageAge >= messageSeconds {
			v.message = ""
		}
	}
}

// handleKey 处理按键，返回 false 表示退出
func (v *bookView) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch {
	case r == 'q':
		return false
	case r == 'l':
		v.commands.Toggle(book.Latch)
	case r == 'c':
		v.commands.Toggle(book.FrontCover)
	case r == 'o':
		v.report(v.machine.OpenBook())
	case r == 'x':
		v.report(v.machine.CloseBook())
	case r == 'p':
		policy := v.machine.Policy()
		if policy.LaterPages == book.AutoCloseLaterPages {
			policy.LaterPages = book.RejectLaterPages
		} else {
			policy.LaterPages = book.AutoCloseLaterPages
		}
		v.machine.SetPolicy(policy)
	case r == 'a':
		policy := v.machine.Policy()
		policy.AutoOpenBook = !policy.AutoOpenBook
		v.machine.SetPolicy(policy)
	case r == 'r':
		v.mixer.Reset()
		v.machine.Load(v.manifest.Clips)
		v.showMessage("reloaded")
	case r >= '1' && r <= '9':
		pages := v.machine.Catalog().OrderedPages()
		if i := int(r - '1'); i < len(pages) {
			v.commands.Toggle(pages[i])
		}
	}
	return true
}

func (v *bookView) report(err error) {
	if err != nil {
		log.Printf("[BookTUI] 请求未执行: %v", err)
	}
}

// lines 返回要显示的文本行
func (v *bookView) lines() []string {
	policy := v.machine.Policy()
	out := []string{
		fmt.Sprintf("%s  (%d clips)  completions: %d", v.manifest.Name, len(v.manifest.Clips), v.machine.Signal().Emitted()),
		fmt.Sprintf("policy: later pages=%s  auto-open=%v", policy.LaterPages, policy.AutoOpenBook),
		"",
	}

	for _, part := range v.machine.Catalog().Parts() {
		progress := 0.0
		if clips := v.machine.Catalog().ClipsFor(part); len(clips) > 0 {
			progress, _ = v.mixer.Progress(clips[0].Name)
		}
		filled := int(progress*barCells + 0.5)
		bar := strings.Repeat("#", filled) + strings.Repeat(".", barCells-filled)
		out = append(out, fmt.Sprintf("%-10s %-8s [%s] %3.0f%%", part, v.status(part), bar, progress*100))
	}

	out = append(out, "", "l latch  c cover  1-9 pages  o open  x close  p policy  a auto-open  r reload  q quit")
	if v.message != "" {
		out = append(out, "", "! "+v.message)
	}
	return out
}

func (v *bookView) status(part book.Part) string {
	if dir, moving := v.machine.Motion(part); moving {
		if dir == book.Forward {
			return "opening"
		}
		return "closing"
	}
	return strings.ToLower(v.machine.State(part).String())
}

// draw 把文本行写到终端
func (v *bookView) draw(screen tcell.Screen) {
	screen.Clear()
	for y, line := range v.lines() {
		style := tcell.StyleDefault
		switch {
		case strings.HasPrefix(line, "! "):
			style = style.Foreground(tcell.ColorRed)
		case strings.Contains(line, "opening"), strings.Contains(line, "closing"):
			style = style.Foreground(tcell.ColorYellow)
		case strings.Contains(line, " open "):
			style = style.Foreground(tcell.ColorGreen)
		}
		for x, r := range []rune(line) {
			screen.SetContent(x, y, r, nil, style)
		}
	}
	screen.Show()
}
