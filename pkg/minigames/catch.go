package minigames

import (
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	catchTargetCount = 5
	catchGoal        = 3
)

// catchTarget 单个游走目标
type catchTarget struct {
	x, y   float64
	vx, vy float64
	phase  float64 // 游走抖动的相位
	alive  bool
}

// CatchGame 点击移动目标
// 5 个目标在游玩区域内永续游走（碰边反弹），点掉 3 个即完成；
// 剩余目标继续动画直到卸载
type CatchGame struct {
	surface  Surface
	complete func()

	targets [catchTargetCount]catchTarget
	caught  int
	done    bool
	clock   float64
}

// NewCatchGame 创建点击目标迷你游戏
func NewCatchGame() *CatchGame {
	return &CatchGame{}
}

// Title 返回标题
func (g *CatchGame) Title() string {
	return "Catch the sparks"
}

// Hint 返回操作提示
func (g *CatchGame) Hint() string {
	return "Tap three of the drifting sparks"
}

// Mount 挂载并随机撒布目标
func (g *CatchGame) Mount(surface Surface, complete func()) error {
	g.surface = surface
	g.complete = complete
	g.caught = 0
	g.done = false
	g.clock = 0

	for i := range g.targets {
		t := &g.targets[i]
		t.x = surface.X + surface.W*(0.15+0.7*rand.Float64())
		t.y = surface.Y + surface.H*(0.15+0.7*rand.Float64())
		angle := rand.Float64() * 2 * math.Pi
		speed := 40 + rand.Float64()*50
		t.vx = math.Cos(angle) * speed
		t.vy = math.Sin(angle) * speed
		t.phase = rand.Float64() * 2 * math.Pi
		t.alive = true
	}
	return nil
}

// Unmount 卸载
func (g *CatchGame) Unmount() error {
	g.complete = nil
	return nil
}

// Caught 返回已点掉的目标数
func (g *CatchGame) Caught() int {
	return g.caught
}

// AliveCount 返回仍存活的目标数
func (g *CatchGame) AliveCount() int {
	n := 0
	for i := range g.targets {
		if g.targets[i].alive {
			n++
		}
	}
	return n
}

// targetRadius 返回目标的命中/绘制半径
func (g *CatchGame) targetRadius() float64 {
	return min(g.surface.W, g.surface.H) * 0.06
}

// Update 推进目标游走，超出边界时反弹
func (g *CatchGame) Update(dt float64) {
	g.clock += dt
	r := g.targetRadius()

	for i := range g.targets {
		t := &g.targets[i]
		if !t.alive {
			continue
		}

		// 游走：速度方向叠加缓慢的正弦偏转
		wander := math.Sin(g.clock*1.7+t.phase) * 30 * dt
		cos, sin := math.Cos(wander*math.Pi/180), math.Sin(wander*math.Pi/180)
		t.vx, t.vy = t.vx*cos-t.vy*sin, t.vx*sin+t.vy*cos

		t.x += t.vx * dt
		t.y += t.vy * dt

		if t.x < g.surface.X+r {
			t.x = g.surface.X + r
			t.vx = math.Abs(t.vx)
		}
		if t.x > g.surface.X+g.surface.W-r {
			t.x = g.surface.X + g.surface.W - r
			t.vx = -math.Abs(t.vx)
		}
		if t.y < g.surface.Y+r {
			t.y = g.surface.Y + r
			t.vy = math.Abs(t.vy)
		}
		if t.y > g.surface.Y+g.surface.H-r {
			t.y = g.surface.Y + g.surface.H - r
			t.vy = -math.Abs(t.vy)
		}
	}
}

// HandleTap 点击命中一个存活目标则移除它，点够即完成
func (g *CatchGame) HandleTap(x, y float64) {
	if g.done {
		return
	}
	r := g.targetRadius()

	for i := range g.targets {
		t := &g.targets[i]
		if !t.alive {
			continue
		}
		dx, dy := x-t.x, y-t.y
		if dx*dx+dy*dy > r*r {
			continue
		}

		t.alive = false
		g.caught++
		if g.caught >= catchGoal {
			g.done = true
			if g.complete != nil {
				g.complete()
			}
		}
		return
	}
}

// Draw 绘制存活目标和底部的捕获计数
func (g *CatchGame) Draw(screen *ebiten.Image) {
	r := float32(g.targetRadius())

	for i := range g.targets {
		t := &g.targets[i]
		if !t.alive {
			continue
		}
		x, y := float32(t.x), float32(t.y)
		vector.DrawFilledCircle(screen, x, y, r*1.6, scaledRGBA(1, 0.84, 0.47, 0.15), true)
		vector.DrawFilledCircle(screen, x, y, r, scaledRGBA(1, 0.88, 0.55, 0.85), true)
	}

	for i := 0; i < catchGoal; i++ {
		x := float32(g.surface.CenterX() + float64(i-1)*18)
		y := float32(g.surface.Y + g.surface.H*0.9)
		if i < g.caught {
			vector.DrawFilledCircle(screen, x, y, 5, scaledRGBA(1, 0.84, 0.47, 0.9), true)
		} else {
			vector.StrokeCircle(screen, x, y, 5, 1, scaledRGBA(0.7, 0.75, 0.86, 0.5), true)
		}
	}
}
