package game

import "testing"

// TestSafeUpdateRecovers 测试子系统 panic 不会中断调用方
func TestSafeUpdateRecovers(t *testing.T) {
	ran := false
	SafeUpdate("Broken", func() {
		panic("boom")
	})
	SafeUpdate("Healthy", func() {
		ran = true
	})
	if !ran {
		t.Error("一个子系统的 panic 不应影响后续子系统的更新")
	}
}
