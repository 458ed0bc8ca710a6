package systems

import (
	"math"

	"github.com/decker502/nightgarden/pkg/components"
	"github.com/decker502/nightgarden/pkg/ecs"
)

// IdleMotionSystem 驱动纪念品的闲置摆动
//
// 对每个带 IdleMotionComponent 的实体，以其 Seed 为相位基准
// 计算小幅正弦偏移并写回 PositionComponent/Rotation/Scale。
// 纯装饰，不参与点击判定（判定使用锚点坐标）。
type IdleMotionSystem struct {
	EntityManager *ecs.EntityManager

	// reducedMotion 为 true 时跳过非必要振荡（旋转/缩放），
	// 只保留极小的位置起伏
	reducedMotion bool
}

// NewIdleMotionSystem 创建闲置摆动系统
func NewIdleMotionSystem(em *ecs.EntityManager, reducedMotion bool) *IdleMotionSystem {
	return &IdleMotionSystem{
		EntityManager: em,
		reducedMotion: reducedMotion,
	}
}

// Update 推进所有闲置摆动一帧
func (s *IdleMotionSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith2[*components.IdleMotionComponent, *components.PositionComponent](s.EntityManager)

	for _, id := range entities {
		idle, ok := ecs.GetComponent[*components.IdleMotionComponent](s.EntityManager, id)
		if !ok {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.EntityManager, id)
		if !ok {
			continue
		}

		idle.Clock += dt
		t := idle.Clock + idle.Seed

		if s.reducedMotion {
			pos.X = idle.BaseX
			pos.Y = idle.BaseY + math.Sin(t*0.8)*1.5
			idle.Rotation = 0
			idle.Scale = 1
			continue
		}

		// 位置/旋转/缩放使用彼此不成整数比的频率，避免出现明显的循环感
		pos.X = idle.BaseX + math.Sin(t*0.9)*idle.AmplitudeX
		pos.Y = idle.BaseY + math.Sin(t*1.3+1.7)*idle.AmplitudeY
		idle.Rotation = math.Sin(t*0.7+0.5) * idle.RotAmp
		idle.Scale = 1 + math.Sin(t*1.1+3.1)*idle.ScaleAmp
	}
}
