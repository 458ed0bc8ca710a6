package minigames

import (
	"log"

	"github.com/decker502/nightgarden/pkg/config"
)

// NewForKind 按内容配置的类型创建迷你游戏实例
// 未知类型回落到长按变体（内容校验应已拦截，这里只兜底）
func NewForKind(kind config.MiniGameKind) MiniGame {
	switch kind {
	case config.MiniGameHold:
		return NewHoldGame()
	case config.MiniGameSequence:
		return NewSequenceGame()
	case config.MiniGameCatch:
		return NewCatchGame()
	default:
		log.Printf("[MiniGameManager] Unknown kind %q, falling back to hold", kind)
		return NewHoldGame()
	}
}
