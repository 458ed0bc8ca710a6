package game

// GameState 跨场景共享的会话状态持有者
//
// 每个字段有唯一的权威修改路径：
//   - Scene 只由 SceneManager 在场景替换时写入
//   - 发现进度只通过 ProgressManager.Unlock 变化
//   - 音频电平只通过 AudioManager 的操作变化
//
// 实例在启动时创建一次，按引用传给需要它的组件（无全局单例）。
type GameState struct {
	// Scene 当前可见的场景，由 SceneManager 维护
	Scene SceneID

	// TotalKeepsakes 纪念品总数，启动时从内容配置确定
	TotalKeepsakes int

	// ReducedMotion 减少动态偏好（来自设置），
	// 粒子数量和非必要振荡据此降级
	ReducedMotion bool

	settingsManager *SettingsManager
	progressManager *ProgressManager
	audioManager    *AudioManager
}

// NewGameState 创建会话状态持有者
func NewGameState(totalKeepsakes int) *GameState {
	return &GameState{
		Scene:          SceneIntro,
		TotalKeepsakes: totalKeepsakes,
	}
}

// SetSettingsManager 注入设置管理器
func (gs *GameState) SetSettingsManager(sm *SettingsManager) {
	gs.settingsManager = sm
	if sm != nil {
		gs.ReducedMotion = sm.GetSettings().ReducedMotion
	}
}

// GetSettingsManager 返回设置管理器，可能为 nil
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// SetProgressManager 注入进度管理器
func (gs *GameState) SetProgressManager(pm *ProgressManager) {
	gs.progressManager = pm
}

// GetProgressManager 返回进度管理器，可能为 nil
func (gs *GameState) GetProgressManager() *ProgressManager {
	return gs.progressManager
}

// SetAudioManager 注入音频管理器
func (gs *GameState) SetAudioManager(am *AudioManager) {
	gs.audioManager = am
}

// GetAudioManager 返回音频管理器，可能为 nil
func (gs *GameState) GetAudioManager() *AudioManager {
	return gs.audioManager
}

// IsComplete 返回是否所有纪念品都已被发现
func (gs *GameState) IsComplete() bool {
	if gs.progressManager == nil {
		return false
	}
	return gs.progressManager.DiscoveredCount() >= gs.TotalKeepsakes
}
