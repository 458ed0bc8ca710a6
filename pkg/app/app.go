// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：装配配置、存储、音频、
// 进度和场景，并实现 ebiten.Game 接口充当帧调度器。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/nightgarden/pkg/config"
	"github.com/decker502/nightgarden/pkg/game"
	"github.com/decker502/nightgarden/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
}

// App 游戏应用的核心包装器，实现 ebiten.Game 接口
//
// Update 是唯一的帧调度入口（合作式，每个显示帧调用一次）：
// 驱动场景切换与当前场景，场景内部按固定顺序依次推进粒子、
// 闲置摆动、寄语展示、音频（渐变与看门狗）、迷你游戏、终章
// 时间表；每个子更新都在恢复保护下执行，单个子系统的故障
// 只丢掉它本帧的更新，不中断循环。
type App struct {
	gameState    *game.GameState
	sceneManager *game.SceneManager
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 config.Init() 注入嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 加载内容配置
	content, err := config.LoadContentConfig()
	if err != nil {
		return nil, fmt.Errorf("内容配置加载失败: %w", err)
	}
	log.Printf("[App] Content loaded: %d keepsakes, %d phrases", len(content.Keepsakes), len(content.Phrases))

	// 初始化跨平台存储；失败降级为仅内存模式
	gdataManager, err := gdata.Open(gdata.Config{AppName: "nightgarden"})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (progress will not persist)", err)
		gdataManager = nil
	}

	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		log.Printf("[App] Warning: settings degraded: %v", err)
	}
	progressManager := game.NewProgressManager(gdataManager, content.Phrases, len(content.Keepsakes))

	gameState := game.NewGameState(len(content.Keepsakes))
	gameState.SetSettingsManager(settingsManager)
	gameState.SetProgressManager(progressManager)

	resourceManager := game.NewResourceManager()
	audioManager := game.NewAudioManager(resourceManager, progressManager)
	gameState.SetAudioManager(audioManager)
	log.Printf("[App] AudioManager initialized")

	// 创建场景管理器和工厂
	sceneManager := game.NewSceneManager(gameState)
	sceneManager.SetSceneFactory(func(id game.SceneID) game.Scene {
		switch id {
		case game.SceneWorld:
			return scenes.NewWorldScene(gameState, sceneManager, content)
		case game.SceneFinal:
			return scenes.NewFinalScene(gameState, sceneManager, content)
		default:
			return scenes.NewIntroScene(gameState, sceneManager, content)
		}
	})

	// 无论进度如何，每次启动都从开场进入
	sceneManager.SwitchTo(game.SceneIntro)

	if settingsManager != nil && settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		gameState:    gameState,
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	a.handleFullscreenToggle()

	// 场景在自己的 Update 里按固定顺序驱动各子更新
	// （粒子、闲置摆动、寄语展示、音频、迷你游戏/终章时间表），
	// 每个子更新各自带恢复保护
	deltaTime := 1.0 / 60.0
	game.SafeUpdate("SceneManager", func() {
		a.sceneManager.Update(deltaTime)
	})
	return nil
}

// handleFullscreenToggle F11 切换全屏
func (a *App) handleFullscreenToggle() {
	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}

	target := !ebiten.IsFullscreen()
	if target {
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}

	if sm := a.gameState.GetSettingsManager(); sm != nil {
		sm.SetFullscreen(target)
		if err := sm.Save(); err != nil {
			log.Printf("[App] Warning: failed to save settings: %v", err)
		}
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
