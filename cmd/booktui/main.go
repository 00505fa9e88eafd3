// booktui 在终端中交互式地驱动书本状态机
//
// 与图形查看器共用片段清单、配置和状态机，只把示意图画成文本。
//
// 用法:
//
//	go run ./cmd/booktui [-model data/book.yaml] [-config data/viewer_config.yaml] [-tps 30] [-log booktui.log] [-mute]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/bookviewer/internal/clip"
	"github.com/decker502/bookviewer/pkg/config"
	"github.com/gdamore/tcell/v2"
)

func main() {
	modelPath := flag.String("model", "data/book.yaml", "片段清单路径")
	configPath := flag.String("config", "", "查看器配置路径（默认使用内置默认值）")
	tps := flag.Int("tps", 0, "每秒 tick 数（默认使用配置中的 playback.tps）")
	logPath := flag.String("log", "", "日志文件（终端界面运行时不能输出到标准输出）")
	mute := flag.Bool("mute", false, "关闭提示音")
	flag.Parse()

	env, err := config.LoadEnvOverrides()
	if err != nil {
		fmt.Fprintf(os.Stderr, "环境变量解析失败: %v\n", err)
		os.Exit(1)
	}
	if env.Model != "" && !isFlagSet("model") {
		*modelPath = env.Model
	}
	if env.Config != "" && *configPath == "" {
		*configPath = env.Config
	}

	if err := setupLog(*logPath); err != nil {
		fmt.Fprintf(os.Stderr, "日志文件打开失败: %v\n", err)
		os.Exit(1)
	}

	cfg := config.DefaultViewerConfig()
	if *configPath != "" {
		if cfg, err = config.LoadViewerConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
	if *tps <= 0 {
		*tps = cfg.Playback.TPS
	}

	manifest, err := clip.ParseManifestFile(*modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	var cues cuePlayer = silentCues{}
	if !*mute {
		if bc, err := newBeepCues(); err != nil {
			log.Printf("[BookTUI] 音频初始化失败，静音运行: %v", err)
		} else {
			defer bc.Close()
			cues = bc
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	run(screen, newBookView(manifest, cfg, cues), *tps)
}

// run 固定步长循环：事件在独立 goroutine 中读取，所有状态只在主循环中修改
func run(screen tcell.Screen, v *bookView, tps int) {
	interval := time.Second / time.Duration(tps)
	dt := interval.Seconds()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	v.draw(screen)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.handleKey(ev.Key(), ev.Rune()) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			v.tick(dt)
			v.draw(screen)
		}
	}
}

func setupLog(path string) error {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	return nil
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
