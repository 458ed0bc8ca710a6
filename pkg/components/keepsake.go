package components

// KeepsakeComponent 世界场景中一个可点击的纪念品
type KeepsakeComponent struct {
	ID         string  // 唯一且稳定的标识，对应内容配置中的 id
	Discovered bool    // 是否已被发现；只会由 false 翻转为 true
	Radius     float64 // 点击判定和光晕的基础半径（像素）

	// 光晕颜色 (0-1)
	Red   float64
	Green float64
	Blue  float64
}
