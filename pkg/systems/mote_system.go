// Package systems 实现装饰层的各个系统
//
// 系统遵循 ECS 零耦合原则：只通过 EntityManager 读写组件，
// 更新逻辑全部基于 deltaTime 累积，与帧率无关。
package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/nightgarden/pkg/components"
	"github.com/decker502/nightgarden/pkg/ecs"
)

// MoteSystem 管理萤光粒子池
//
// 池大小固定：粒子越过屏幕顶部后不销毁，
// 而是在底部以新的随机参数重生（无限循环，无持久状态）。
type MoteSystem struct {
	EntityManager *ecs.EntityManager

	screenWidth  float64
	screenHeight float64
}

// NewMoteSystem 创建粒子系统并生成指定大小的粒子池
//
// 参数：
//   - em: EntityManager 实例
//   - count: 粒子池大小（减少动态偏好下调用方传入更小的值）
//   - width, height: 逻辑屏幕尺寸
func NewMoteSystem(em *ecs.EntityManager, count int, width, height float64) *MoteSystem {
	ms := &MoteSystem{
		EntityManager: em,
		screenWidth:   width,
		screenHeight:  height,
	}

	for i := 0; i < count; i++ {
		id := em.CreateEntity()
		mote := &components.MoteComponent{}
		randomizeMote(mote)
		em.AddComponent(id, mote)
		// 初始位置散布在整个屏幕，避免启动时粒子集中在底部
		em.AddComponent(id, &components.PositionComponent{
			X: rand.Float64() * width,
			Y: rand.Float64() * height,
		})
	}

	return ms
}

// Update 推进所有粒子一帧
// dt 为距上一帧的时间（秒）
func (ms *MoteSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith2[*components.MoteComponent, *components.PositionComponent](ms.EntityManager)

	for _, id := range entities {
		mote, ok := ecs.GetComponent[*components.MoteComponent](ms.EntityManager, id)
		if !ok {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](ms.EntityManager, id)
		if !ok {
			continue
		}

		mote.Age += dt

		// 速度积分加横向正弦漂移
		drift := math.Sin(mote.Age*mote.DriftFrequency+mote.Phase) * mote.DriftAmplitude
		pos.X += (mote.VelocityX + drift) * dt
		pos.Y += mote.VelocityY * dt

		// 水平方向环绕
		if pos.X < -mote.Radius {
			pos.X = ms.screenWidth + mote.Radius
		} else if pos.X > ms.screenWidth+mote.Radius {
			pos.X = -mote.Radius
		}

		// 越过顶部：在底部重生，参数重新随机
		if pos.Y < -mote.Radius {
			randomizeMote(mote)
			pos.X = rand.Float64() * ms.screenWidth
			pos.Y = ms.screenHeight + mote.Radius
		}
	}
}

// randomizeMote 为粒子生成一组新的随机参数
func randomizeMote(m *components.MoteComponent) {
	m.VelocityX = (rand.Float64() - 0.5) * 4
	m.VelocityY = -(8 + rand.Float64()*18) // 向上漂
	m.DriftAmplitude = 2 + rand.Float64()*8
	m.DriftFrequency = 0.4 + rand.Float64()*1.2
	m.Phase = rand.Float64() * 2 * math.Pi
	m.Radius = 1 + rand.Float64()*2.5
	m.Alpha = 0.25 + rand.Float64()*0.5
	m.Age = 0

	// 暖黄到冷青之间的萤光色
	warm := rand.Float64()
	m.Red = 0.55 + warm*0.45
	m.Green = 0.75 + rand.Float64()*0.25
	m.Blue = 0.45 + (1-warm)*0.5
}
