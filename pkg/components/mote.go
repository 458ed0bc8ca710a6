package components

// MoteComponent 单个萤光粒子的运行时状态
//
// 粒子纯粹是装饰：固定大小的粒子池缓慢上升，
// 越过屏幕顶部后在底部以新的随机参数重生，不影响任何游戏逻辑。
type MoteComponent struct {
	// Velocity (速度, 像素/秒)。VelocityY 为负值（向上漂）
	VelocityX float64
	VelocityY float64

	// 横向正弦漂移
	DriftAmplitude float64 // 漂移幅度（像素）
	DriftFrequency float64 // 漂移频率（弧度/秒）
	Phase          float64 // 振荡相位，生成时随机，避免粒子同步

	// 视觉属性
	Radius float64 // 半径（像素）
	Alpha  float64 // 基础透明度 0-1

	// 颜色通道 (0-1)
	Red   float64
	Green float64
	Blue  float64

	// Age 粒子本次生命周期内的累计时间（秒），驱动相位计算
	Age float64
}
