// Command backdrop 在窗口中运行雪花或气泡背景效果
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--config <path>    配置文件路径（默认使用内置 data/backdrop.yaml）
//	--effect <name>    启动效果：snow / bubble / none
//	--verbose          输出详细日志
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/gonewx/backdrop/pkg/app"
	"github.com/gonewx/backdrop/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	configFlag  = flag.String("config", "", "Path to the YAML config file (default: embedded data/backdrop.yaml)")
	effectFlag  = flag.String("effect", "", "Initial effect: snow, bubble or none")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（assetsFS 和 dataFS 在 embed.go 中声明）
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Effect:     *effectFlag,
	})
	if err != nil {
		// 日志可能已被关闭，错误直接输出到 stderr
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	cfg := gameApp.AppConfig()
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.Window.Fullscreen || gameApp.Settings().GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, ebiten.Termination) {
		log.SetOutput(os.Stderr)
		log.Printf("运行失败: %v", err)
		gameApp.Close()
		os.Exit(1)
	}
}
