package systems

import (
	"image/color"

	"github.com/decker502/nightgarden/pkg/components"
	"github.com/decker502/nightgarden/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RenderSystem 绘制装饰层实体（萤光粒子和纪念品光晕）
//
// 项目不携带图片资源，所有形状用 vector 绘制。
// 渲染与更新分离：本系统只读组件，不修改任何状态。
type RenderSystem struct {
	EntityManager *ecs.EntityManager
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{EntityManager: em}
}

// Draw 绘制所有可见实体
func (rs *RenderSystem) Draw(screen *ebiten.Image) {
	rs.drawMotes(screen)
	rs.drawKeepsakes(screen)
}

// drawMotes 绘制萤光粒子
func (rs *RenderSystem) drawMotes(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.MoteComponent, *components.PositionComponent](rs.EntityManager)

	for _, id := range entities {
		mote, ok := ecs.GetComponent[*components.MoteComponent](rs.EntityManager, id)
		if !ok {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](rs.EntityManager, id)
		if !ok {
			continue
		}

		clr := scaledRGBA(mote.Red, mote.Green, mote.Blue, mote.Alpha)
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), float32(mote.Radius), clr, true)
	}
}

// drawKeepsakes 绘制纪念品光晕
// 已发现的纪念品亮度更高并带一圈描边
func (rs *RenderSystem) drawKeepsakes(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.KeepsakeComponent, *components.PositionComponent](rs.EntityManager)

	for _, id := range entities {
		k, ok := ecs.GetComponent[*components.KeepsakeComponent](rs.EntityManager, id)
		if !ok {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](rs.EntityManager, id)
		if !ok {
			continue
		}

		scale := 1.0
		if idle, ok := ecs.GetComponent[*components.IdleMotionComponent](rs.EntityManager, id); ok && idle.Scale > 0 {
			scale = idle.Scale
		}
		r := k.Radius * scale

		base := 0.35
		if k.Discovered {
			base = 0.9
		}

		x, y := float32(pos.X), float32(pos.Y)
		// 外圈柔光
		vector.DrawFilledCircle(screen, x, y, float32(r*1.8), scaledRGBA(k.Red, k.Green, k.Blue, base*0.18), true)
		// 核心
		vector.DrawFilledCircle(screen, x, y, float32(r), scaledRGBA(k.Red, k.Green, k.Blue, base), true)
		if k.Discovered {
			vector.StrokeCircle(screen, x, y, float32(r*1.35), 1.5, scaledRGBA(1, 1, 1, 0.5), true)
		}
	}
}

// scaledRGBA 将 0-1 的颜色通道和透明度转换为预乘 alpha 的 RGBA
func scaledRGBA(r, g, b, a float64) color.RGBA {
	return color.RGBA{
		R: uint8(r * a * 255),
		G: uint8(g * a * 255),
		B: uint8(b * a * 255),
		A: uint8(a * 255),
	}
}
