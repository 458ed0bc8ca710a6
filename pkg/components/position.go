// Package components 定义纯数据组件
//
// 遵循 ECS 原则：组件只存数据，不含方法；
// 所有行为由 pkg/systems 中的系统实现。
package components

// PositionComponent 实体在逻辑屏幕上的位置（像素）
type PositionComponent struct {
	X float64
	Y float64
}
