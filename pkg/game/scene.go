package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneID 标识三个互斥的顶层展示模式
type SceneID int

const (
	// SceneIntro 开场：标题与开始提示。每次启动都从这里开始，
	// 即使存档显示终章已看过（刻意保留的行为）
	SceneIntro SceneID = iota
	// SceneWorld 世界：纪念品散布的夜间场景
	SceneWorld
	// SceneFinal 终章：分段揭示的结束文本
	SceneFinal
)

// String 返回场景的可读名称（用于日志）
func (id SceneID) String() string {
	switch id {
	case SceneIntro:
		return "Intro"
	case SceneWorld:
		return "World"
	case SceneFinal:
		return "Final"
	default:
		return "Unknown"
	}
}

// Scene represents a game scene (e.g., intro, world, finale).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}
