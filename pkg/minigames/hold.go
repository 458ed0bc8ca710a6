package minigames

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/nightgarden/pkg/config"
	"github.com/decker502/nightgarden/pkg/utils"
)

// HoldGame 长按时长门
// 持续按压累计到阈值即完成；中途松开把进度清零
type HoldGame struct {
	surface  Surface
	complete func()

	held    bool
	elapsed float64
	done    bool
}

// NewHoldGame 创建长按迷你游戏
func NewHoldGame() *HoldGame {
	return &HoldGame{}
}

// Title 返回标题
func (g *HoldGame) Title() string {
	return "Hold the light"
}

// Hint 返回操作提示
func (g *HoldGame) Hint() string {
	return "Press and hold until the glow fills"
}

// Mount 挂载到游玩区域
func (g *HoldGame) Mount(surface Surface, complete func()) error {
	g.surface = surface
	g.complete = complete
	g.held = false
	g.elapsed = 0
	g.done = false
	return nil
}

// Unmount 卸载
func (g *HoldGame) Unmount() error {
	g.complete = nil
	return nil
}

// HandlePress 更新按压状态，松开清零进度
func (g *HoldGame) HandlePress(pressed bool) {
	if g.done {
		return
	}
	g.held = pressed
	if !pressed {
		g.elapsed = 0
	}
}

// Progress 返回当前进度 0-1（用于视觉反馈）
func (g *HoldGame) Progress() float64 {
	return utils.Clamp01(g.elapsed / config.HoldDuration)
}

// Update 累计按压时长，达到阈值时发出完成信号
func (g *HoldGame) Update(dt float64) {
	if g.done || !g.held {
		return
	}
	g.elapsed += dt
	if g.elapsed >= config.HoldDuration {
		g.done = true
		if g.complete != nil {
			g.complete()
		}
	}
}

// Draw 绘制按压进度：外圈轮廓 + 随进度增长的内圈辉光
func (g *HoldGame) Draw(screen *ebiten.Image) {
	cx := float32(g.surface.CenterX())
	cy := float32(g.surface.CenterY())
	outer := float32(min(g.surface.W, g.surface.H) * 0.28)

	vector.StrokeCircle(screen, cx, cy, outer, 2, scaledRGBA(0.7, 0.75, 0.86, 0.6), true)

	p := g.Progress()
	if p > 0 {
		inner := outer * float32(p)
		vector.DrawFilledCircle(screen, cx, cy, inner, scaledRGBA(1, 0.84, 0.47, 0.35+p*0.55), true)
	}
}
