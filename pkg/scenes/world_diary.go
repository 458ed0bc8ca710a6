package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/nightgarden/pkg/config"
	"github.com/decker502/nightgarden/pkg/game"
	"github.com/decker502/nightgarden/pkg/utils"
)

// diaryPanel 日记面板
// 按解锁发生的顺序列出已发现的纪念品和它们的寄语；
// 打开期间的任意点击关闭面板
type diaryPanel struct {
	gameState *game.GameState
	open      bool
}

// newDiaryPanel 创建日记面板
func newDiaryPanel(gs *game.GameState) *diaryPanel {
	return &diaryPanel{gameState: gs}
}

// Draw 绘制日记面板
func (d *diaryPanel) Draw(screen *ebiten.Image) {
	if !d.open {
		return
	}

	w := float64(config.GameWindowWidth)
	h := float64(config.GameWindowHeight)
	panelW, panelH := w*0.62, h*0.68
	x, y := (w-panelW)/2, (h-panelH)/2

	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.RGBA{A: 140}, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(panelW), float32(panelH),
		color.RGBA{R: 16, G: 20, B: 42, A: 242}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(panelW), float32(panelH), 1.5,
		color.RGBA{R: 120, G: 130, B: 175, A: 200}, false)

	utils.DrawTextCenter(screen, "Diary", utils.RegularFace(22), w/2, y+16,
		color.RGBA{R: 222, G: 228, B: 255, A: 255})

	pm := d.gameState.GetProgressManager()
	if pm == nil {
		return
	}

	history := pm.History()
	total := d.gameState.TotalKeepsakes
	utils.DrawTextCenter(screen, fmt.Sprintf("%d / %d found", len(history), total),
		utils.RegularFace(13), w/2, y+50, color.RGBA{R: 150, G: 158, B: 200, A: 220})

	if len(history) == 0 {
		utils.DrawTextCenter(screen, "Nothing found yet. The garden waits.",
			utils.ItalicFace(14), w/2, y+panelH/2, color.RGBA{R: 150, G: 158, B: 200, A: 200})
		return
	}

	lineY := y + 84
	for _, entry := range history {
		utils.DrawTextLeft(screen, entry.ID, utils.RegularFace(14), x+28, lineY,
			color.RGBA{R: 222, G: 228, B: 255, A: 255})
		utils.DrawTextLeft(screen, entry.Phrase, utils.ItalicFace(13), x+120, lineY+1,
			color.RGBA{R: 168, G: 176, B: 215, A: 230})
		lineY += 34
		if lineY > y+panelH-30 {
			break
		}
	}
}
