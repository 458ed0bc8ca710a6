package scenes

import "github.com/decker502/nightgarden/pkg/config"

// finaleTimeline 终章文本的分段揭示时间表
//
// 每段的揭示时刻为 base + i*step；揭示只增不减。
// 每次进入终章场景时重建，退出即丢弃。
type finaleTimeline struct {
	baseDelay float64
	stepDelay float64
	total     int

	clock    float64
	revealed int
}

// newFinaleTimeline 创建时间表；减少动态偏好下用更短的延迟
func newFinaleTimeline(total int, reducedMotion bool) *finaleTimeline {
	t := &finaleTimeline{
		baseDelay: config.FinaleBaseDelay,
		stepDelay: config.FinaleStepDelay,
		total:     total,
	}
	if reducedMotion {
		t.baseDelay = config.FinaleBaseDelayReduced
		t.stepDelay = config.FinaleStepDelayReduced
	}
	return t
}

// revealTime 返回第 i 段的揭示时刻
func (t *finaleTimeline) revealTime(i int) float64 {
	return t.baseDelay + float64(i)*t.stepDelay
}

// Update 推进时钟并揭示到期的段
func (t *finaleTimeline) Update(dt float64) {
	t.clock += dt
	for t.revealed < t.total && t.clock >= t.revealTime(t.revealed) {
		t.revealed++
	}
}

// Revealed 返回已揭示的段数（单调不减）
func (t *finaleTimeline) Revealed() int {
	return t.revealed
}

// Done 返回是否全部揭示完毕
func (t *finaleTimeline) Done() bool {
	return t.revealed >= t.total
}

// SinceReveal 返回第 i 段揭示以来经过的时间（未揭示返回 0）
func (t *finaleTimeline) SinceReveal(i int) float64 {
	if i >= t.revealed {
		return 0
	}
	return t.clock - t.revealTime(i)
}
