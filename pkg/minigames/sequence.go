package minigames

import (
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/nightgarden/pkg/config"
)

// seqPhase 记忆复现游戏的阶段
type seqPhase int

const (
	seqLeadIn   seqPhase = iota // 出题前的停顿
	seqPlayback                 // 逐步点亮目标图案
	seqGrace                    // 回放结束到接受输入之间的缓冲
	seqInput                    // 玩家复现
	seqDone
)

// 游玩区域内 4 个固定位置（以区域宽高的比例表示）
var seqPadAnchors = [4][2]float64{
	{0.3, 0.35},
	{0.7, 0.35},
	{0.3, 0.7},
	{0.7, 0.7},
}

// SequenceGame 记忆复现
// 挂载时从 4 个固定位置随机选 3 个为目标图案，回放后由玩家
// 按序复现；错按把进度清零（不判负），连续输入有去重窗口
type SequenceGame struct {
	surface  Surface
	complete func()

	pads    [4][2]float64 // 4 个位置的绝对坐标
	pattern []int         // 目标图案（pads 下标序列）

	phase   seqPhase
	clock   float64 // 当前阶段内的累积时间
	now     float64 // 挂载以来的累积时间
	matched int     // 已正确复现的步数

	lastTapAt float64 // 上一次被接受处理的输入时刻
}

// NewSequenceGame 创建记忆复现迷你游戏
func NewSequenceGame() *SequenceGame {
	return &SequenceGame{}
}

// Title 返回标题
func (g *SequenceGame) Title() string {
	return "Echo the pattern"
}

// Hint 返回操作提示
func (g *SequenceGame) Hint() string {
	return "Watch the lights, then repeat them in order"
}

// Mount 挂载并随机出题
func (g *SequenceGame) Mount(surface Surface, complete func()) error {
	g.surface = surface
	g.complete = complete

	for i, anchor := range seqPadAnchors {
		g.pads[i][0] = surface.X + surface.W*anchor[0]
		g.pads[i][1] = surface.Y + surface.H*anchor[1]
	}
	g.pattern = rand.Perm(len(seqPadAnchors))[:3]

	g.phase = seqLeadIn
	g.clock = 0
	g.now = 0
	g.matched = 0
	g.lastTapAt = -config.SequenceTapDebounce
	return nil
}

// Unmount 卸载
func (g *SequenceGame) Unmount() error {
	g.complete = nil
	return nil
}

// stepPeriod 回放中单步的总时长（点亮 + 间隔）
func stepPeriod() float64 {
	return config.SequenceStepLit + config.SequenceStepGap
}

// Update 推进阶段时钟
func (g *SequenceGame) Update(dt float64) {
	g.now += dt
	g.clock += dt

	switch g.phase {
	case seqLeadIn:
		if g.clock >= config.SequenceLeadIn {
			g.phase = seqPlayback
			g.clock = 0
		}
	case seqPlayback:
		if g.clock >= float64(len(g.pattern))*stepPeriod() {
			g.phase = seqGrace
			g.clock = 0
		}
	case seqGrace:
		if g.clock >= config.SequenceGrace {
			g.phase = seqInput
			g.clock = 0
		}
	}
}

// litPad 返回回放阶段当前点亮的位置下标，无点亮返回 -1
func (g *SequenceGame) litPad() int {
	if g.phase != seqPlayback {
		return -1
	}
	step := int(g.clock / stepPeriod())
	if step >= len(g.pattern) {
		return -1
	}
	within := g.clock - float64(step)*stepPeriod()
	if within < config.SequenceStepLit {
		return g.pattern[step]
	}
	return -1
}

// AcceptingInput 返回是否处于输入阶段（测试/提示用）
func (g *SequenceGame) AcceptingInput() bool {
	return g.phase == seqInput
}

// Matched 返回已正确复现的步数
func (g *SequenceGame) Matched() int {
	return g.matched
}

// padAt 返回坐标命中的位置下标，未命中返回 -1
func (g *SequenceGame) padAt(x, y float64) int {
	r := g.padRadius()
	for i, p := range g.pads {
		dx, dy := x-p[0], y-p[1]
		if dx*dx+dy*dy <= r*r {
			return i
		}
	}
	return -1
}

// padRadius 返回位置的命中/绘制半径
func (g *SequenceGame) padRadius() float64 {
	return min(g.surface.W, g.surface.H) * 0.11
}

// HandleTap 处理复现输入
//
// 仅在输入阶段有效；距上一次输入不足去重窗口的点击被忽略
// （重复事件抑制）。错按清零进度，按完整个图案发出完成信号。
func (g *SequenceGame) HandleTap(x, y float64) {
	if g.phase != seqInput {
		return
	}
	if g.now-g.lastTapAt < config.SequenceTapDebounce {
		return
	}
	g.lastTapAt = g.now

	idx := g.padAt(x, y)
	if idx < 0 {
		return
	}

	if idx != g.pattern[g.matched] {
		g.matched = 0
		return
	}

	g.matched++
	if g.matched >= len(g.pattern) {
		g.phase = seqDone
		if g.complete != nil {
			g.complete()
		}
	}
}

// Draw 绘制 4 个位置，回放点亮和已复现的步数高亮显示
func (g *SequenceGame) Draw(screen *ebiten.Image) {
	lit := g.litPad()
	r := float32(g.padRadius())

	for i, p := range g.pads {
		x, y := float32(p[0]), float32(p[1])
		switch {
		case i == lit:
			vector.DrawFilledCircle(screen, x, y, r, scaledRGBA(0.68, 0.87, 1, 0.9), true)
		default:
			vector.DrawFilledCircle(screen, x, y, r, scaledRGBA(0.45, 0.5, 0.66, 0.35), true)
		}
		vector.StrokeCircle(screen, x, y, r, 1.5, scaledRGBA(0.8, 0.84, 0.95, 0.5), true)
	}

	// 输入阶段用底部的小圆点反馈已复现的步数
	if g.phase == seqInput || g.phase == seqDone {
		for i := 0; i < len(g.pattern); i++ {
			x := float32(g.surface.CenterX() + float64(i-1)*18)
			y := float32(g.surface.Y + g.surface.H*0.9)
			if i < g.matched {
				vector.DrawFilledCircle(screen, x, y, 5, scaledRGBA(1, 0.84, 0.47, 0.9), true)
			} else {
				vector.StrokeCircle(screen, x, y, 5, 1, scaledRGBA(0.7, 0.75, 0.86, 0.5), true)
			}
		}
	}
}
