package components

// IdleMotionComponent 纪念品的闲置摆动状态
//
// 以 BaseX/BaseY 为锚点施加小幅正弦偏移（位置/旋转/缩放），
// Seed 按对象确定，使各对象的摆动在视觉上彼此错开。
// 仅在世界场景激活时更新；减少动态偏好下跳过非必要振荡。
type IdleMotionComponent struct {
	BaseX float64 // 锚点 X（内容配置的静态坐标）
	BaseY float64 // 锚点 Y
	Seed  float64 // 相位种子，按对象确定

	AmplitudeX float64 // 水平摆动幅度（像素）
	AmplitudeY float64 // 垂直摆动幅度（像素）
	RotAmp     float64 // 旋转摆动幅度（弧度）
	ScaleAmp   float64 // 缩放摆动幅度（相对 1.0）

	// 当前帧计算结果，由 IdleMotionSystem 写入、渲染系统读取
	Rotation float64
	Scale    float64

	// Clock 累计时间（秒）
	Clock float64
}
