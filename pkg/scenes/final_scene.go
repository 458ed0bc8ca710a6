package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nightgarden/pkg/config"
	"github.com/decker502/nightgarden/pkg/game"
	"github.com/decker502/nightgarden/pkg/utils"
)

// FinalScene 终章场景
//
// 在自身音轨下分段揭示结束文本。时间表在每次进入时重建；
// 全部揭示后点击返回世界场景（黑暗撤除、切回环境音轨）。
// 进入即记录 seenFinal。
type FinalScene struct {
	gameState    *game.GameState
	sceneManager *game.SceneManager
	content      *config.ContentConfig

	timeline *finaleTimeline
	leaving  bool
}

// NewFinalScene 创建终章场景并重建揭示时间表
func NewFinalScene(gs *game.GameState, sm *game.SceneManager, content *config.ContentConfig) *FinalScene {
	s := &FinalScene{
		gameState:    gs,
		sceneManager: sm,
		content:      content,
		timeline:     newFinaleTimeline(len(content.Finale.Segments), gs.ReducedMotion),
	}

	if pm := gs.GetProgressManager(); pm != nil {
		pm.MarkSeenFinal()
	}

	return s
}

// Update 推进音频与时间表（音频渐变先于时间表）；全部揭示后接受返回点击
func (s *FinalScene) Update(deltaTime float64) {
	if am := s.gameState.GetAudioManager(); am != nil {
		game.SafeUpdate("AudioManager", func() { am.Update(deltaTime) })
	}
	game.SafeUpdate("FinaleTimeline", func() { s.timeline.Update(deltaTime) })

	if s.leaving || !s.timeline.Done() || s.sceneManager.IsTransitioning() {
		return
	}

	input := utils.GetInputState()
	if !input.JustPressed {
		return
	}

	s.leaving = true
	s.sceneManager.SetDarkness(false)
	if am := s.gameState.GetAudioManager(); am != nil {
		am.SwitchTo(game.TrackAmbient)
	}
	s.sceneManager.TransitionTo(game.SceneWorld)
}

// Draw 绘制已揭示的文本段，每段在揭示后短暂淡入
func (s *FinalScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 4, G: 5, B: 14, A: 255})

	cx := float64(config.GameWindowWidth) / 2
	startY := 160.0

	for i := 0; i < s.timeline.Revealed(); i++ {
		alpha := utils.Clamp01(s.timeline.SinceReveal(i) / 0.8)
		a := uint8(alpha * 255)
		utils.DrawTextCenter(screen, s.content.Finale.Segments[i], utils.ItalicFace(19),
			cx, startY+float64(i)*52,
			color.RGBA{R: uint8(225 * alpha), G: uint8(230 * alpha), B: uint8(255 * alpha), A: a})
	}

	if s.timeline.Done() && !s.leaving {
		utils.DrawTextCenter(screen, "touch to return", utils.RegularFace(13),
			cx, float64(config.GameWindowHeight)-70,
			color.RGBA{R: 130, G: 138, B: 180, A: 190})
	}
}
