package game

import (
	"image/color"
	"log"

	"github.com/decker502/nightgarden/pkg/config"
	"github.com/decker502/nightgarden/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SceneFactory 场景工厂函数类型
// 用于创建指定ID的场景，避免 game 包与 scenes 包的循环依赖
type SceneFactory func(id SceneID) Scene

// transitionPhase 场景切换遮罩的阶段
type transitionPhase int

const (
	phaseIdle     transitionPhase = iota // 无切换进行中
	phaseCoverIn                         // 遮罩淡入
	phaseHold                            // 完全覆盖，停留后切换场景
	phaseSettle                          // 切换完成后的短暂停留
	phaseCoverOut                        // 遮罩淡出
)

// SceneManager 管理场景切换和全屏遮罩
//
// 同一时间只有一个场景可见。TransitionTo 驱动一个多帧的遮罩状态机：
// 遮罩淡入 → 覆盖停留（期间完成场景替换）→ 短暂停留 → 遮罩淡出。
// 切换期间再次调用 TransitionTo 属于调用方契约违反（行为未定义），
// 调用方应先检查 IsTransitioning()。
//
// 独立于切换遮罩，还维护一层"黑暗"氛围遮罩（darkness），
// 由终章入口序列在场景切换之前单独开启以渲染气氛。
type SceneManager struct {
	gameState *GameState

	currentScene Scene
	sceneFactory SceneFactory

	// 切换遮罩状态机
	phase      transitionPhase
	phaseClock float64
	pending    SceneID
	coverAlpha float64

	// 黑暗氛围遮罩（与切换遮罩独立）
	darknessOn    bool
	darknessAlpha float64
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or TransitionTo
// to set the initial scene.
func NewSceneManager(gs *GameState) *SceneManager {
	return &SceneManager{
		gameState: gs,
	}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 立即切换到指定场景（无遮罩动画）
// 仅用于启动时设置初始场景
func (sm *SceneManager) SwitchTo(id SceneID) {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return
	}
	sm.currentScene = sm.sceneFactory(id)
	if sm.gameState != nil {
		sm.gameState.Scene = id
	}
	log.Printf("[SceneManager] Switched to scene: %s", id)
}

// TransitionTo 启动一次带遮罩的场景切换
//
// 调用方契约：不得在上一次切换的遮罩移除之前再次调用
// （用 IsTransitioning() 检查）。
func (sm *SceneManager) TransitionTo(target SceneID) {
	if sm.phase != phaseIdle {
		log.Printf("[SceneManager] Warning: TransitionTo(%s) called mid-transition (caller contract violation)", target)
	}
	log.Printf("[SceneManager] Transition to scene: %s", target)
	sm.pending = target
	sm.phase = phaseCoverIn
	sm.phaseClock = 0
}

// IsTransitioning 返回是否有场景切换进行中
// 切换期间调用方应拒绝用户输入
func (sm *SceneManager) IsTransitioning() bool {
	return sm.phase != phaseIdle
}

// SetDarkness 开关黑暗氛围遮罩
// 遮罩透明度按固定时长渐变，与场景切换遮罩互不影响
func (sm *SceneManager) SetDarkness(on bool) {
	sm.darknessOn = on
}

// GetCurrentScene 返回当前活动的场景，没有则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update 更新当前场景和遮罩状态机
// deltaTime 为距上一帧的时间（秒）
func (sm *SceneManager) Update(deltaTime float64) {
	sm.updateTransition(deltaTime)
	sm.updateDarkness(deltaTime)

	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// updateTransition 推进切换遮罩状态机
func (sm *SceneManager) updateTransition(dt float64) {
	if sm.phase == phaseIdle {
		return
	}

	sm.phaseClock += dt

	switch sm.phase {
	case phaseCoverIn:
		progress := utils.Clamp01(sm.phaseClock / config.TransitionCoverFadeIn)
		sm.coverAlpha = utils.EaseInOutQuad(progress)
		if progress >= 1 {
			sm.phase = phaseHold
			sm.phaseClock = 0
		}

	case phaseHold:
		sm.coverAlpha = 1
		if sm.phaseClock >= config.TransitionCoverHold {
			// 覆盖期间完成实际的场景替换
			sm.swapScene()
			sm.phase = phaseSettle
			sm.phaseClock = 0
		}

	case phaseSettle:
		sm.coverAlpha = 1
		if sm.phaseClock >= config.TransitionSettle {
			sm.phase = phaseCoverOut
			sm.phaseClock = 0
		}

	case phaseCoverOut:
		progress := utils.Clamp01(sm.phaseClock / config.TransitionCoverFadeOut)
		sm.coverAlpha = 1 - utils.EaseInOutQuad(progress)
		if progress >= 1 {
			sm.coverAlpha = 0
			sm.phase = phaseIdle
		}
	}
}

// swapScene 在遮罩完全覆盖时替换当前场景
func (sm *SceneManager) swapScene() {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set, cannot swap scene")
		return
	}
	sm.currentScene = sm.sceneFactory(sm.pending)
	if sm.gameState != nil {
		sm.gameState.Scene = sm.pending
	}
	log.Printf("[SceneManager] Scene swapped to: %s", sm.pending)
}

// updateDarkness 推进黑暗遮罩的渐变
func (sm *SceneManager) updateDarkness(dt float64) {
	target := 0.0
	if sm.darknessOn {
		target = 1.0
	}
	step := dt / config.DarknessFadeDuration
	if sm.darknessAlpha < target {
		sm.darknessAlpha = min(sm.darknessAlpha+step, target)
	} else if sm.darknessAlpha > target {
		sm.darknessAlpha = max(sm.darknessAlpha-step, target)
	}
}

// Draw 绘制当前场景，再叠加黑暗遮罩和切换遮罩
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}

	if sm.darknessAlpha > 0 {
		drawOverlay(screen, sm.darknessAlpha*0.72)
	}
	if sm.coverAlpha > 0 {
		drawOverlay(screen, sm.coverAlpha)
	}
}

// drawOverlay 以指定透明度绘制全屏黑色遮罩
func drawOverlay(screen *ebiten.Image, alpha float64) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	a := uint8(utils.Clamp01(alpha) * 255)
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.RGBA{A: a}, false)
}
