package game

import "testing"

// TestSettingsManagerDefaults 测试降级模式下使用默认设置
func TestSettingsManagerDefaults(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager failed: %v", err)
	}

	settings := sm.GetSettings()
	if settings.ReducedMotion {
		t.Error("默认 ReducedMotion 应为 false")
	}
	if settings.Fullscreen {
		t.Error("默认 Fullscreen 应为 false")
	}

	// 降级模式下 Save 不报错
	if err := sm.Save(); err != nil {
		t.Errorf("降级模式 Save 应返回 nil: %v", err)
	}
}

// TestSettingsManagerRoundTrip 测试设置的存取往返
func TestSettingsManagerRoundTrip(t *testing.T) {
	manager := createTestGdataManager(t, "settings")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	sm, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("NewSettingsManager failed: %v", err)
	}
	sm.SetReducedMotion(true)
	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	sm2, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("重载 NewSettingsManager failed: %v", err)
	}
	settings := sm2.GetSettings()
	if !settings.ReducedMotion {
		t.Error("重载后 ReducedMotion 应为 true")
	}
	if !settings.Fullscreen {
		t.Error("重载后 Fullscreen 应为 true")
	}
}

// TestGameStateReducedMotionFromSettings 测试减少动态偏好传播到会话状态
func TestGameStateReducedMotionFromSettings(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	sm.SetReducedMotion(true)

	gs := NewGameState(9)
	gs.SetSettingsManager(sm)
	if !gs.ReducedMotion {
		t.Error("注入设置管理器后 ReducedMotion 应同步")
	}
}
