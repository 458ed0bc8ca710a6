package systems

import (
	"math"
	"testing"

	"github.com/decker502/nightgarden/pkg/components"
	"github.com/decker502/nightgarden/pkg/ecs"
)

// newIdleEntity 创建一个带闲置摆动的测试实体
func newIdleEntity(em *ecs.EntityManager, seed float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.IdleMotionComponent{
		BaseX:      100,
		BaseY:      200,
		Seed:       seed,
		AmplitudeX: 4,
		AmplitudeY: 3,
		RotAmp:     0.08,
		ScaleAmp:   0.05,
		Scale:      1,
	})
	em.AddComponent(id, &components.PositionComponent{X: 100, Y: 200})
	return id
}

// TestIdleMotionStaysNearAnchor 测试摆动始终围绕锚点小幅偏移
func TestIdleMotionStaysNearAnchor(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewIdleMotionSystem(em, false)
	id := newIdleEntity(em, 0.7)

	for i := 0; i < 600; i++ {
		s.Update(1.0 / 60.0)
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if math.Abs(pos.X-100) > 4.01 || math.Abs(pos.Y-200) > 3.01 {
		t.Errorf("偏移超过幅度: pos = (%v, %v), 锚点 (100, 200)", pos.X, pos.Y)
	}

	idle, _ := ecs.GetComponent[*components.IdleMotionComponent](em, id)
	if math.Abs(idle.Rotation) > 0.0801 {
		t.Errorf("旋转超过幅度: %v", idle.Rotation)
	}
	if idle.Scale < 0.94 || idle.Scale > 1.06 {
		t.Errorf("缩放超过幅度: %v", idle.Scale)
	}
}

// TestIdleMotionSeedDesync 测试不同种子的对象摆动彼此错开
func TestIdleMotionSeedDesync(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewIdleMotionSystem(em, false)
	a := newIdleEntity(em, 0)
	b := newIdleEntity(em, 2.5)

	s.Update(0.5)

	posA, _ := ecs.GetComponent[*components.PositionComponent](em, a)
	posB, _ := ecs.GetComponent[*components.PositionComponent](em, b)

	if posA.X == posB.X && posA.Y == posB.Y {
		t.Error("不同种子的对象在同一时刻偏移完全相同，期望错开")
	}
}

// TestIdleMotionReducedMotion 测试减少动态偏好跳过旋转和缩放
func TestIdleMotionReducedMotion(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewIdleMotionSystem(em, true)
	id := newIdleEntity(em, 1.2)

	s.Update(0.37)

	idle, _ := ecs.GetComponent[*components.IdleMotionComponent](em, id)
	if idle.Rotation != 0 {
		t.Errorf("减少动态下 Rotation = %v, 期望 0", idle.Rotation)
	}
	if idle.Scale != 1 {
		t.Errorf("减少动态下 Scale = %v, 期望 1", idle.Scale)
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.X != 100 {
		t.Errorf("减少动态下 X = %v, 期望保持锚点 100", pos.X)
	}
	if math.Abs(pos.Y-200) > 1.51 {
		t.Errorf("减少动态下 Y 偏移过大: %v", pos.Y)
	}
}
