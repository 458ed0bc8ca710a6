package game

import (
	"hash/fnv"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ProgressRecord 进度存档数据结构
//
// 这是唯一的持久外部契约。字段全部可选：
// 缺失、畸形或旧版本的存档都必须能安全回落到默认值
// （新增字段默认安全，绝不设为必填，保证向后兼容）。
type ProgressRecord struct {
	DiscoveredIDs   []string          `yaml:"discoveredIds"`   // 已发现的纪念品ID集合
	Muted           bool              `yaml:"muted"`           // 静音开关
	Volume          float64           `yaml:"volume"`          // 主音量 0.0 ~ 1.0
	AssignedPhrases map[string]string `yaml:"assignedPhrases"` // 纪念品ID -> 已分配寄语（分配后永不改变）
	UnlockedOrder   []string          `yaml:"unlockedOrder"`   // 解锁发生的顺序（无重复）
	SeenFinal       bool              `yaml:"seenFinal"`       // 终章是否已看过
}

// defaultProgressRecord 返回结构上完整的空记录
func defaultProgressRecord() *ProgressRecord {
	return &ProgressRecord{
		DiscoveredIDs:   []string{},
		Volume:          0.7,
		AssignedPhrases: map[string]string{},
		UnlockedOrder:   []string{},
	}
}

// HistoryEntry 解锁历史中的一条记录（日记读数）
type HistoryEntry struct {
	ID     string // 纪念品ID
	Phrase string // 分配给它的寄语
}

// ProgressManager 发现/进度账本
//
// 职责：
//   - 维护纪念品的发现状态（只增不减）
//   - 首次解锁时分配稳定的寄语（first-touch-wins，分配后永不改写）
//   - 维护解锁顺序并推导可读历史
//   - 每次影响状态的操作后整体持久化进度记录
//
// 持久化契约：
//   - Load 从不失败：任何读取/解析错误都回落到默认记录
//   - Save 即发即弃：存储错误只记日志，绝不向上传播
type ProgressManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存进度）
	record       *ProgressRecord
	phrasePool   []string // 固定寄语池，启动时来自内容配置
	total        int      // 纪念品总数

	// completionFired 本会话内完成提示是否已触发过
	// （每次穿越完成阈值最多提示一次；重启后由场景依据记录决定是否重现）
	completionFired bool
}

// 存储路径常量
const (
	progressObject   = "progress"
	progressProperty = "record"
)

// NewProgressManager 创建进度管理器并立即加载存档
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式）
//   - phrasePool: 固定寄语池（按内容配置顺序）
//   - total: 纪念品总数
func NewProgressManager(gdataManager *gdata.Manager, phrasePool []string, total int) *ProgressManager {
	pm := &ProgressManager{
		gdataManager: gdataManager,
		record:       defaultProgressRecord(),
		phrasePool:   phrasePool,
		total:        total,
	}
	pm.Load()

	// 加载的进度已达完成阈值时，视为本会话已提示过，
	// 避免重启后重复弹出完成提示
	if pm.DiscoveredCount() >= total && total > 0 {
		pm.completionFired = true
	}

	return pm
}

// Load 加载进度记录
// 从不返回错误：任何失败都回落到结构完整的默认记录
func (pm *ProgressManager) Load() {
	pm.record = defaultProgressRecord()

	if pm.gdataManager == nil {
		return
	}
	if !pm.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		return
	}

	data, err := pm.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		log.Printf("[ProgressManager] Warning: Failed to load progress: %v (using defaults)", err)
		return
	}

	// 解码到默认记录之上：存档里缺失的字段保留默认值
	// （直接解码到零值结构会把缺失的 volume 变成 0，导致永久静音）
	loaded := defaultProgressRecord()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		log.Printf("[ProgressManager] Warning: Malformed progress record: %v (using defaults)", err)
		return
	}

	pm.record = loaded
	pm.sanitize()
	log.Printf("[ProgressManager] Progress loaded: %d discovered", len(pm.record.DiscoveredIDs))
}

// sanitize 修复部分成形的记录：补齐缺失字段、去重、限幅
func (pm *ProgressManager) sanitize() {
	r := pm.record
	if r.DiscoveredIDs == nil {
		r.DiscoveredIDs = []string{}
	}
	if r.AssignedPhrases == nil {
		r.AssignedPhrases = map[string]string{}
	}
	if r.UnlockedOrder == nil {
		r.UnlockedOrder = []string{}
	}
	if r.Volume < 0 {
		r.Volume = 0
	}
	if r.Volume > 1 {
		r.Volume = 1
	}

	// DiscoveredIDs 去重（重复ID会虚增发现计数，进而误判完成）
	seenDiscovered := make(map[string]bool, len(r.DiscoveredIDs))
	discovered := r.DiscoveredIDs[:0]
	for _, id := range r.DiscoveredIDs {
		if !seenDiscovered[id] {
			seenDiscovered[id] = true
			discovered = append(discovered, id)
		}
	}
	r.DiscoveredIDs = discovered

	// UnlockedOrder 去重（保留首次出现的位置）
	seen := make(map[string]bool, len(r.UnlockedOrder))
	order := r.UnlockedOrder[:0]
	for _, id := range r.UnlockedOrder {
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	r.UnlockedOrder = order
}

// Save 持久化进度记录（即发即弃）
// 存储错误只记日志，绝不向调用方传播
func (pm *ProgressManager) Save() {
	if pm.gdataManager == nil {
		return
	}

	data, err := yaml.Marshal(pm.record)
	if err != nil {
		log.Printf("[ProgressManager] Warning: Failed to marshal progress: %v", err)
		return
	}

	if err := pm.gdataManager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		log.Printf("[ProgressManager] Warning: Failed to save progress: %v", err)
	}
}

// IsDiscovered 返回纪念品是否已被发现
func (pm *ProgressManager) IsDiscovered(id string) bool {
	for _, d := range pm.record.DiscoveredIDs {
		if d == id {
			return true
		}
	}
	return false
}

// DiscoveredCount 返回已发现的纪念品数量
func (pm *ProgressManager) DiscoveredCount() int {
	return len(pm.record.DiscoveredIDs)
}

// IsComplete 返回是否已达到完成阈值
func (pm *ProgressManager) IsComplete() bool {
	return pm.total > 0 && pm.DiscoveredCount() >= pm.total
}

// Unlock 解锁一个纪念品
//
// 已发现的ID是无操作（返回已分配的寄语和 newly=false）：
// 不改变 assignedPhrases，不追加 unlockedOrder。
// 真正的新解锁会标记发现、分配寄语、追加解锁顺序并整体持久化。
//
// 返回：
//   - phrase: 分配给该纪念品的寄语
//   - newly: 是否为本次新解锁
func (pm *ProgressManager) Unlock(id string) (phrase string, newly bool) {
	if pm.IsDiscovered(id) {
		return pm.record.AssignedPhrases[id], false
	}

	pm.record.DiscoveredIDs = append(pm.record.DiscoveredIDs, id)
	phrase = pm.assignPhrase(id)

	// 仅在不存在时追加（顺序无重复的不变量）
	inOrder := false
	for _, o := range pm.record.UnlockedOrder {
		if o == id {
			inOrder = true
			break
		}
	}
	if !inOrder {
		pm.record.UnlockedOrder = append(pm.record.UnlockedOrder, id)
	}

	pm.Save()
	log.Printf("[ProgressManager] Unlocked %q (%d/%d)", id, pm.DiscoveredCount(), pm.total)

	return phrase, true
}

// assignPhrase 为纪念品分配寄语（first-touch-wins）
//
// 已有分配直接返回；否则从未被任何其他ID占用的寄语中确定性地
// 选一条（按ID哈希索引），寄语耗尽后回落到整个池重新抽取。
// 确定性保证同样的解锁过程可复现同样的分配，无需持久化随机种子。
func (pm *ProgressManager) assignPhrase(id string) string {
	if p, ok := pm.record.AssignedPhrases[id]; ok {
		return p
	}
	if len(pm.phrasePool) == 0 {
		return ""
	}

	used := make(map[string]bool, len(pm.record.AssignedPhrases))
	for _, p := range pm.record.AssignedPhrases {
		used[p] = true
	}

	unused := make([]string, 0, len(pm.phrasePool))
	for _, p := range pm.phrasePool {
		if !used[p] {
			unused = append(unused, p)
		}
	}
	// 池耗尽：从整个池重新抽取
	if len(unused) == 0 {
		unused = pm.phrasePool
	}

	h := fnv.New32a()
	h.Write([]byte(id))
	phrase := unused[int(h.Sum32())%len(unused)]

	pm.record.AssignedPhrases[id] = phrase
	return phrase
}

// AssignedPhrase 返回纪念品已分配的寄语（未分配返回空串）
func (pm *ProgressManager) AssignedPhrase(id string) string {
	return pm.record.AssignedPhrases[id]
}

// CompletionJustReached 完成阈值穿越检测
//
// 仅在发现数量首次达到总数后的第一次调用返回 true；
// 之后（包括完成后继续点击）永远返回 false。
func (pm *ProgressManager) CompletionJustReached() bool {
	if pm.completionFired {
		return false
	}
	if !pm.IsComplete() {
		return false
	}
	pm.completionFired = true
	return true
}

// History 按解锁顺序推导可读历史
func (pm *ProgressManager) History() []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(pm.record.UnlockedOrder))
	for _, id := range pm.record.UnlockedOrder {
		entries = append(entries, HistoryEntry{
			ID:     id,
			Phrase: pm.record.AssignedPhrases[id],
		})
	}
	return entries
}

// SetMuted 记录静音状态并持久化
func (pm *ProgressManager) SetMuted(muted bool) {
	pm.record.Muted = muted
	pm.Save()
}

// Muted 返回持久化的静音状态
func (pm *ProgressManager) Muted() bool {
	return pm.record.Muted
}

// SetVolume 记录主音量并持久化（限幅到 0.0 ~ 1.0）
func (pm *ProgressManager) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	pm.record.Volume = v
	pm.Save()
}

// Volume 返回持久化的主音量
func (pm *ProgressManager) Volume() float64 {
	return pm.record.Volume
}

// MarkSeenFinal 记录终章已被看过并持久化
func (pm *ProgressManager) MarkSeenFinal() {
	if pm.record.SeenFinal {
		return
	}
	pm.record.SeenFinal = true
	pm.Save()
}

// SeenFinal 返回终章是否已被看过
func (pm *ProgressManager) SeenFinal() bool {
	return pm.record.SeenFinal
}
