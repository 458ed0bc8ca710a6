// Package scenes 实现三个互斥的顶层场景：开场、世界、终章
package scenes

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nightgarden/pkg/config"
	"github.com/decker502/nightgarden/pkg/game"
	"github.com/decker502/nightgarden/pkg/utils"
)

// IntroScene 开场场景
//
// 只展示标题和开始提示；开始点击是满足音频解锁前提的合格手势，
// 在同一次手势里尝试解锁环境音轨并切换到世界场景。
// 解锁失败不阻塞开始（音频保持静默，后续手势可重试）。
type IntroScene struct {
	gameState    *game.GameState
	sceneManager *game.SceneManager
	content      *config.ContentConfig

	clock   float64
	started bool
}

// NewIntroScene 创建开场场景
func NewIntroScene(gs *game.GameState, sm *game.SceneManager, content *config.ContentConfig) *IntroScene {
	return &IntroScene{
		gameState:    gs,
		sceneManager: sm,
		content:      content,
	}
}

// Update 推进音频并处理开始点击
func (s *IntroScene) Update(deltaTime float64) {
	s.clock += deltaTime

	if am := s.gameState.GetAudioManager(); am != nil {
		game.SafeUpdate("AudioManager", func() { am.Update(deltaTime) })
	}

	if s.started || s.sceneManager.IsTransitioning() {
		return
	}

	input := utils.GetInputState()
	if !input.JustPressed {
		return
	}

	// 合格手势：先尝试音频解锁，再开始切换
	if am := s.gameState.GetAudioManager(); am != nil {
		am.Unlock(game.TrackAmbient)
	}

	s.started = true
	s.sceneManager.TransitionTo(game.SceneWorld)
}

// Draw 绘制标题和呼吸的开始提示
func (s *IntroScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 10, B: 24, A: 255})

	cx := float64(config.GameWindowWidth) / 2
	utils.DrawTextCenter(screen, s.content.Title, utils.RegularFace(42), cx, 220, color.RGBA{R: 222, G: 228, B: 255, A: 255})

	// 提示文字的呼吸节奏
	pulse := 0.55 + 0.45*math.Sin(s.clock*2.2)
	a := uint8(utils.Clamp01(pulse) * 255)
	utils.DrawTextCenter(screen, s.content.Subtitle, utils.ItalicFace(18), cx, 330,
		color.RGBA{R: uint8(150 * pulse), G: uint8(160 * pulse), B: uint8(200 * pulse), A: a})
}
