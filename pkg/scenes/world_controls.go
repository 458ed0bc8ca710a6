package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/nightgarden/pkg/config"
	"github.com/decker502/nightgarden/pkg/game"
	"github.com/decker502/nightgarden/pkg/utils"
)

// controlButton 圆形按钮的位置和标签
type controlButton struct {
	x, y  float64
	label string
}

const controlRadius = 16.0

// playerControls 世界场景左下角的音频控件和右下角的日记按钮
type playerControls struct {
	gameState *game.GameState

	mute    controlButton
	volDown controlButton
	volUp   controlButton
	diary   controlButton
}

// newPlayerControls 创建玩家控件
func newPlayerControls(gs *game.GameState) *playerControls {
	h := float64(config.GameWindowHeight)
	w := float64(config.GameWindowWidth)
	return &playerControls{
		gameState: gs,
		mute:      controlButton{x: 32, y: h - 32, label: "M"},
		volDown:   controlButton{x: 76, y: h - 32, label: "-"},
		volUp:     controlButton{x: 120, y: h - 32, label: "+"},
		diary:     controlButton{x: w - 32, y: h - 32, label: "D"},
	}
}

// hit 返回点击是否命中按钮
func (b controlButton) hit(x, y float64) bool {
	dx, dy := x-b.x, y-b.y
	return dx*dx+dy*dy <= controlRadius*controlRadius
}

// handleTap 处理控件点击，消耗了点击时返回 true
func (pc *playerControls) handleTap(x, y float64, diary *diaryPanel) bool {
	am := pc.gameState.GetAudioManager()

	switch {
	case pc.mute.hit(x, y):
		if am != nil {
			am.SetMuted(!am.Muted())
		}
		return true
	case pc.volDown.hit(x, y):
		if am != nil {
			am.SetMasterVolume(am.MasterVolume() - 0.1)
		}
		return true
	case pc.volUp.hit(x, y):
		if am != nil {
			am.SetMasterVolume(am.MasterVolume() + 0.1)
		}
		return true
	case pc.diary.hit(x, y):
		diary.open = true
		return true
	}
	return false
}

// Draw 绘制控件按钮
func (pc *playerControls) Draw(screen *ebiten.Image) {
	am := pc.gameState.GetAudioManager()

	muted := am != nil && am.Muted()
	pc.drawButton(screen, pc.mute, muted)
	pc.drawButton(screen, pc.volDown, false)
	pc.drawButton(screen, pc.volUp, false)
	pc.drawButton(screen, pc.diary, false)
}

// drawButton 绘制单个圆形按钮，active 时高亮
func (pc *playerControls) drawButton(screen *ebiten.Image, b controlButton, active bool) {
	bg := color.RGBA{R: 24, G: 30, B: 58, A: 190}
	if active {
		bg = color.RGBA{R: 70, G: 56, B: 40, A: 210}
	}
	vector.DrawFilledCircle(screen, float32(b.x), float32(b.y), controlRadius, bg, true)
	vector.StrokeCircle(screen, float32(b.x), float32(b.y), controlRadius, 1,
		color.RGBA{R: 120, G: 130, B: 175, A: 160}, true)
	utils.DrawTextCenter(screen, b.label, utils.RegularFace(13), b.x, b.y-8,
		color.RGBA{R: 200, G: 208, B: 240, A: 230})
}
