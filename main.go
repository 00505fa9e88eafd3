package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/decker502/bookviewer/pkg/app"
	"github.com/decker502/bookviewer/pkg/config"
	"github.com/decker502/bookviewer/pkg/embedded"
	"github.com/decker502/bookviewer/pkg/scenes"
	"github.com/decker502/bookviewer/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	modelPath := flag.String("model", "", "片段清单路径（默认使用上次打开的模型或内置示例）")
	configPath := flag.String("config", "", "查看器配置路径（默认使用内置配置）")
	flag.Parse()

	// 环境变量只在命令行未指定时生效
	env, err := config.LoadEnvOverrides()
	if err != nil {
		fmt.Fprintf(os.Stderr, "环境变量解析失败: %v\n", err)
		os.Exit(1)
	}
	if *modelPath == "" {
		*modelPath = env.Model
	}
	if *configPath == "" {
		*configPath = env.Config
	}

	embedded.Init(dataFS)

	viewer, err := app.NewApp(app.Config{
		Verbose:    *verbose || env.Verbose,
		ModelPath:  *modelPath,
		ConfigPath: *configPath,
		Mobile:     utils.UseMobileLayout(env.MobileEmulate),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "查看器初始化失败: %v\n", err)
		os.Exit(1)
	}

	// 被信号终止时也保存偏好
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Printf("[Main] 收到终止信号，保存偏好")
		viewer.SaveOnExit()
		os.Exit(0)
	}()

	ebiten.SetWindowSize(scenes.WindowWidth, scenes.WindowHeight)
	ebiten.SetWindowTitle("Book Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
	viewer.SaveOnExit()
}
