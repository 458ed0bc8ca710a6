package game

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

var testPhrasePool = []string{
	"phrase-a", "phrase-b", "phrase-c", "phrase-d", "phrase-e",
}

// createTestGdataManager 创建用于测试的 gdata Manager
func createTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	appName := fmt.Sprintf("nightgarden_test_%s_%d", testName, time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil
	}

	// 注册清理函数，测试结束后删除测试目录
	t.Cleanup(func() {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			testDir := filepath.Join(homeDir, ".local", "share", appName)
			os.RemoveAll(testDir)
		}
	})

	return manager
}

// TestProgressManagerDefaults 测试降级模式下的默认记录
func TestProgressManagerDefaults(t *testing.T) {
	pm := NewProgressManager(nil, testPhrasePool, 5)

	if pm.DiscoveredCount() != 0 {
		t.Errorf("DiscoveredCount: got %d, want 0", pm.DiscoveredCount())
	}
	if pm.IsComplete() {
		t.Error("IsComplete: got true, want false")
	}
	if pm.Muted() {
		t.Error("Muted: got true, want false")
	}
	if pm.Volume() != 0.7 {
		t.Errorf("Volume: got %v, want 0.7", pm.Volume())
	}
	if pm.SeenFinal() {
		t.Error("SeenFinal: got true, want false")
	}
}

// TestProgressManagerUnlock 测试解锁流程
func TestProgressManagerUnlock(t *testing.T) {
	pm := NewProgressManager(nil, testPhrasePool, 3)

	phrase, newly := pm.Unlock("star")
	if !newly {
		t.Error("首次解锁应返回 newly=true")
	}
	if phrase == "" {
		t.Error("首次解锁应分配非空寄语")
	}
	if !pm.IsDiscovered("star") {
		t.Error("解锁后 IsDiscovered 应为 true")
	}
	if pm.DiscoveredCount() != 1 {
		t.Errorf("DiscoveredCount: got %d, want 1", pm.DiscoveredCount())
	}

	// 重复解锁是无操作：寄语不变，不重复计数
	again, newly2 := pm.Unlock("star")
	if newly2 {
		t.Error("重复解锁应返回 newly=false")
	}
	if again != phrase {
		t.Errorf("重复解锁的寄语应不变: got %q, want %q", again, phrase)
	}
	if pm.DiscoveredCount() != 1 {
		t.Errorf("重复解锁后 DiscoveredCount: got %d, want 1", pm.DiscoveredCount())
	}

	history := pm.History()
	if len(history) != 1 || history[0].ID != "star" || history[0].Phrase != phrase {
		t.Errorf("History: got %v", history)
	}
}

// TestProgressManagerPhraseUniqueness 测试寄语池未耗尽时分配无重复
func TestProgressManagerPhraseUniqueness(t *testing.T) {
	pm := NewProgressManager(nil, testPhrasePool, 5)

	ids := []string{"star", "lantern", "shell", "feather", "acorn"}
	seen := make(map[string]string)
	for _, id := range ids {
		phrase, _ := pm.Unlock(id)
		if prev, dup := seen[phrase]; dup {
			t.Errorf("寄语 %q 被重复分配给 %q 和 %q", phrase, prev, id)
		}
		seen[phrase] = id
	}
}

// TestProgressManagerPhrasePoolExhausted 测试寄语池耗尽后的回落
func TestProgressManagerPhrasePoolExhausted(t *testing.T) {
	pool := []string{"only-one", "only-two"}
	pm := NewProgressManager(nil, pool, 4)

	for _, id := range []string{"a", "b", "c", "d"} {
		phrase, _ := pm.Unlock(id)
		if phrase == "" {
			t.Errorf("寄语池耗尽后 Unlock(%q) 仍应分配非空寄语", id)
		}
	}
}

// TestProgressManagerPhraseDeterministic 测试寄语分配的确定性
func TestProgressManagerPhraseDeterministic(t *testing.T) {
	pm1 := NewProgressManager(nil, testPhrasePool, 3)
	pm2 := NewProgressManager(nil, testPhrasePool, 3)

	for _, id := range []string{"star", "shell", "key"} {
		p1, _ := pm1.Unlock(id)
		p2, _ := pm2.Unlock(id)
		if p1 != p2 {
			t.Errorf("同样的解锁过程应产生同样的分配: %q got %q / %q", id, p1, p2)
		}
	}
}

// TestProgressManagerCompletionJustReached 测试完成阈值只触发一次
func TestProgressManagerCompletionJustReached(t *testing.T) {
	pm := NewProgressManager(nil, testPhrasePool, 2)

	pm.Unlock("a")
	if pm.CompletionJustReached() {
		t.Error("未达阈值时 CompletionJustReached 应为 false")
	}

	pm.Unlock("b")
	if !pm.CompletionJustReached() {
		t.Error("首次达到阈值时 CompletionJustReached 应为 true")
	}
	if pm.CompletionJustReached() {
		t.Error("第二次调用 CompletionJustReached 应为 false")
	}

	// 完成后继续解锁其他ID也不再触发
	pm.Unlock("c")
	if pm.CompletionJustReached() {
		t.Error("完成后继续解锁不应再触发")
	}
}

// TestProgressManagerPersistence 测试进度记录的存取往返
func TestProgressManagerPersistence(t *testing.T) {
	manager := createTestGdataManager(t, "persist")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	pm := NewProgressManager(manager, testPhrasePool, 3)
	phrase, _ := pm.Unlock("star")
	pm.Unlock("shell")
	pm.SetMuted(true)
	pm.SetVolume(0.4)
	pm.MarkSeenFinal()

	// 重新加载
	pm2 := NewProgressManager(manager, testPhrasePool, 3)
	if pm2.DiscoveredCount() != 2 {
		t.Errorf("重载后 DiscoveredCount: got %d, want 2", pm2.DiscoveredCount())
	}
	if !pm2.IsDiscovered("star") || !pm2.IsDiscovered("shell") {
		t.Error("重载后发现集合丢失")
	}
	if pm2.AssignedPhrase("star") != phrase {
		t.Errorf("重载后寄语分配应保持: got %q, want %q", pm2.AssignedPhrase("star"), phrase)
	}
	if !pm2.Muted() {
		t.Error("重载后 Muted 应为 true")
	}
	if pm2.Volume() != 0.4 {
		t.Errorf("重载后 Volume: got %v, want 0.4", pm2.Volume())
	}
	if !pm2.SeenFinal() {
		t.Error("重载后 SeenFinal 应为 true")
	}

	history := pm2.History()
	if len(history) != 2 || history[0].ID != "star" || history[1].ID != "shell" {
		t.Errorf("重载后 History 顺序错误: %v", history)
	}
}

// TestProgressManagerMalformedRecord 测试畸形存档回落到默认值
func TestProgressManagerMalformedRecord(t *testing.T) {
	manager := createTestGdataManager(t, "malformed")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	if err := manager.SaveObjectProp(progressObject, progressProperty, []byte("{{not yaml")); err != nil {
		t.Fatalf("写入畸形存档失败: %v", err)
	}

	pm := NewProgressManager(manager, testPhrasePool, 3)
	if pm.DiscoveredCount() != 0 {
		t.Errorf("畸形存档应回落到空进度: got %d", pm.DiscoveredCount())
	}
	if pm.Volume() != 0.7 {
		t.Errorf("畸形存档应回落到默认音量: got %v", pm.Volume())
	}
}

// TestProgressManagerPartialRecord 测试部分成形的存档被修复
func TestProgressManagerPartialRecord(t *testing.T) {
	manager := createTestGdataManager(t, "partial")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	partial := ProgressRecord{
		DiscoveredIDs: []string{"star"},
		Volume:        3.5, // 超出范围
		UnlockedOrder: []string{"star", "star"}, // 含重复
	}
	data, err := yaml.Marshal(&partial)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := manager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		t.Fatalf("写入存档失败: %v", err)
	}

	pm := NewProgressManager(manager, testPhrasePool, 3)
	if pm.DiscoveredCount() != 1 {
		t.Errorf("DiscoveredCount: got %d, want 1", pm.DiscoveredCount())
	}
	if pm.Volume() != 1 {
		t.Errorf("超范围音量应被限幅到 1: got %v", pm.Volume())
	}
	if len(pm.History()) != 1 {
		t.Errorf("重复的 UnlockedOrder 应被去重: got %d 条", len(pm.History()))
	}
	// 旧存档可能缺失 assignedPhrases：已发现但无寄语的ID重复解锁不崩溃
	phrase, newly := pm.Unlock("star")
	if newly {
		t.Error("已发现的ID重复解锁应返回 newly=false")
	}
	_ = phrase
}

// TestProgressManagerMissingFieldsDefault 测试缺失字段回落默认值
func TestProgressManagerMissingFieldsDefault(t *testing.T) {
	manager := createTestGdataManager(t, "missing_fields")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	// 旧版本存档：只有 discoveredIds，没有 volume 等字段
	data := []byte("discoveredIds: [star]\n")
	if err := manager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		t.Fatalf("写入存档失败: %v", err)
	}

	pm := NewProgressManager(manager, testPhrasePool, 3)
	if pm.DiscoveredCount() != 1 {
		t.Errorf("DiscoveredCount: got %d, want 1", pm.DiscoveredCount())
	}
	// 缺失的 volume 必须保留默认值 0.7，而不是解码成 0（永久静音）
	if pm.Volume() != 0.7 {
		t.Errorf("缺失的 volume 应保留默认值 0.7: got %v", pm.Volume())
	}
	if pm.Muted() {
		t.Error("缺失的 muted 应默认为 false")
	}
	if pm.SeenFinal() {
		t.Error("缺失的 seenFinal 应默认为 false")
	}
}

// TestProgressManagerDuplicateDiscoveredIDs 测试畸形存档中重复的发现ID被去重
func TestProgressManagerDuplicateDiscoveredIDs(t *testing.T) {
	manager := createTestGdataManager(t, "dup_discovered")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	data := []byte("discoveredIds: [star, star, moon]\nvolume: 0.5\n")
	if err := manager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		t.Fatalf("写入存档失败: %v", err)
	}

	pm := NewProgressManager(manager, testPhrasePool, 3)
	if pm.DiscoveredCount() != 2 {
		t.Errorf("重复ID应被去重: got %d, want 2", pm.DiscoveredCount())
	}
	// 去重后 2/3，不应误判完成
	if pm.IsComplete() {
		t.Error("去重后未达阈值，不应判定完成")
	}
	if pm.Volume() != 0.5 {
		t.Errorf("存档中的 volume 应被保留: got %v", pm.Volume())
	}
}

// TestProgressManagerCompletionRestoredOnLoad 测试重启后完成提示不重复触发
func TestProgressManagerCompletionRestoredOnLoad(t *testing.T) {
	manager := createTestGdataManager(t, "complete_restore")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	pm := NewProgressManager(manager, testPhrasePool, 2)
	pm.Unlock("a")
	pm.Unlock("b")
	if !pm.CompletionJustReached() {
		t.Fatal("达到阈值时应触发一次")
	}

	pm2 := NewProgressManager(manager, testPhrasePool, 2)
	if pm2.CompletionJustReached() {
		t.Error("重启加载已完成的进度后不应再次触发完成提示")
	}
}
