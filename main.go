package main

import (
	"flag"
	"log"

	"github.com/decker502/nightgarden/pkg/app"
	"github.com/decker502/nightgarden/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	flag.Parse()

	// 嵌入的内容配置交给 config 包统一访问
	config.Init(dataFS)

	game, err := app.NewApp(app.Config{
		Verbose: *verbose,
	})
	if err != nil {
		log.Fatalf("[Main] Failed to initialize: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Night Garden")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
