package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/nightgarden/pkg/components"
	"github.com/decker502/nightgarden/pkg/config"
	"github.com/decker502/nightgarden/pkg/ecs"
	"github.com/decker502/nightgarden/pkg/game"
	"github.com/decker502/nightgarden/pkg/minigames"
	"github.com/decker502/nightgarden/pkg/systems"
	"github.com/decker502/nightgarden/pkg/utils"
)

// completionPrompt 所有纪念品集齐时的一次性提示
const completionPrompt = "The garden is awake. Touch the moon."

// WorldScene 世界场景
//
// 夜晚花园：光尘粒子上升，纪念品带闲置摆动地散布各处。
// 点击未发现的纪念品打开对应的迷你游戏，完成后解锁寄语；
// 重复点击已发现的给出低强调确认。集齐后出现月亮入口，
// 点击进入终章序列（黑暗渐变 + 音轨切换 + 场景切换）。
type WorldScene struct {
	gameState    *game.GameState
	sceneManager *game.SceneManager
	content      *config.ContentConfig

	entityManager *ecs.EntityManager
	moteSystem    *systems.MoteSystem
	idleSystem    *systems.IdleMotionSystem
	renderSystem  *systems.RenderSystem

	miniGames *minigames.Manager
	message   *MessageDisplay
	diary     *diaryPanel
	controls  *playerControls

	// keepsakeEntities 纪念品ID到实体的映射，解锁后翻转发现标记用
	keepsakeEntities map[string]ecs.EntityID

	finaleGateOn   bool // 月亮入口是否可见
	enteringFinale bool
}

// NewWorldScene 创建世界场景并从内容配置和进度搭建实体
func NewWorldScene(gs *game.GameState, sm *game.SceneManager, content *config.ContentConfig) *WorldScene {
	s := &WorldScene{
		gameState:        gs,
		sceneManager:     sm,
		content:          content,
		entityManager:    ecs.NewEntityManager(),
		message:          NewMessageDisplay(),
		keepsakeEntities: make(map[string]ecs.EntityID),
	}

	moteCount := config.MoteCount
	if gs.ReducedMotion {
		moteCount = config.MoteCountReduced
	}
	s.moteSystem = systems.NewMoteSystem(s.entityManager, moteCount,
		float64(config.GameWindowWidth), float64(config.GameWindowHeight))
	s.idleSystem = systems.NewIdleMotionSystem(s.entityManager, gs.ReducedMotion)
	s.renderSystem = systems.NewRenderSystem(s.entityManager)

	s.spawnKeepsakes()

	s.miniGames = minigames.NewManager(minigames.Surface{X: 200, Y: 140, W: 400, H: 300})
	s.diary = newDiaryPanel(gs)
	s.controls = newPlayerControls(gs)

	// 终章入口对已完成的进度持续可用（完成提示本身只出现一次）
	if pm := gs.GetProgressManager(); pm != nil && pm.IsComplete() {
		s.finaleGateOn = true
	}

	// 从终章返回时撤掉黑暗遮罩
	sm.SetDarkness(false)

	return s
}

// spawnKeepsakes 按内容配置创建纪念品实体
func (s *WorldScene) spawnKeepsakes() {
	pm := s.gameState.GetProgressManager()

	for i, kc := range s.content.Keepsakes {
		id := s.entityManager.CreateEntity()

		s.entityManager.AddComponent(id, &components.PositionComponent{X: kc.X, Y: kc.Y})
		s.entityManager.AddComponent(id, &components.KeepsakeComponent{
			ID:         kc.ID,
			Discovered: pm != nil && pm.IsDiscovered(kc.ID),
			Radius:     14,
			Red:        float64(kc.Color[0]) / 255,
			Green:      float64(kc.Color[1]) / 255,
			Blue:       float64(kc.Color[2]) / 255,
		})
		s.entityManager.AddComponent(id, &components.IdleMotionComponent{
			BaseX:      kc.X,
			BaseY:      kc.Y,
			Seed:       float64(i) * 1.7,
			AmplitudeX: 2.5,
			AmplitudeY: 4,
			RotAmp:     0.05,
			ScaleAmp:   0.06,
			Scale:      1,
		})

		s.keepsakeEntities[kc.ID] = id
	}
}

// Update 每帧推进：先解析输入，再按固定顺序驱动各子系统
func (s *WorldScene) Update(deltaTime float64) {
	s.handleInput()
	s.updateSubsystems(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// updateSubsystems 子更新按固定顺序执行：
// 粒子、闲置摆动、寄语展示、音频（渐变与看门狗）、迷你游戏。
// 每个子更新单独在恢复保护下运行，单项故障只丢掉它本帧的推进。
func (s *WorldScene) updateSubsystems(deltaTime float64) {
	game.SafeUpdate("MoteSystem", func() { s.moteSystem.Update(deltaTime) })
	game.SafeUpdate("IdleMotionSystem", func() { s.idleSystem.Update(deltaTime) })
	game.SafeUpdate("MessageDisplay", func() { s.message.Update(deltaTime) })
	if am := s.gameState.GetAudioManager(); am != nil {
		game.SafeUpdate("AudioManager", func() { am.Update(deltaTime) })
	}
	game.SafeUpdate("MiniGameManager", func() { s.miniGames.Update(deltaTime) })
}

// Draw 绘制场景各层
func (s *WorldScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 13, B: 30, A: 255})

	s.renderSystem.Draw(screen)
	s.drawFinaleGate(screen)
	s.controls.Draw(screen)
	s.diary.Draw(screen)
	s.message.Draw(screen)
	s.drawMiniGame(screen)
}

// drawFinaleGate 绘制集齐后的月亮入口
func (s *WorldScene) drawFinaleGate(screen *ebiten.Image) {
	if !s.finaleGateOn {
		return
	}
	x := float32(config.GameWindowWidth) / 2
	y := float32(finaleGateY)
	vector.DrawFilledCircle(screen, x, y, finaleGateRadius*1.5, color.RGBA{R: 40, G: 42, B: 60, A: 70}, true)
	vector.DrawFilledCircle(screen, x, y, finaleGateRadius, color.RGBA{R: 235, G: 238, B: 220, A: 235}, true)
}

// drawMiniGame 绘制迷你游戏面板（压暗背景 + 面板 + 标题提示）
func (s *WorldScene) drawMiniGame(screen *ebiten.Image) {
	if !s.miniGames.IsOpen() {
		return
	}
	surface := s.miniGames.Surface()

	vector.DrawFilledRect(screen, 0, 0,
		float32(config.GameWindowWidth), float32(config.GameWindowHeight),
		color.RGBA{A: 150}, false)
	vector.DrawFilledRect(screen, float32(surface.X), float32(surface.Y),
		float32(surface.W), float32(surface.H),
		color.RGBA{R: 16, G: 20, B: 42, A: 240}, false)
	vector.StrokeRect(screen, float32(surface.X), float32(surface.Y),
		float32(surface.W), float32(surface.H), 1.5,
		color.RGBA{R: 120, G: 130, B: 175, A: 200}, false)

	active := s.miniGames.Active()
	utils.DrawTextCenter(screen, active.Title(), utils.RegularFace(20),
		surface.CenterX(), surface.Y+14, color.RGBA{R: 222, G: 228, B: 255, A: 255})
	utils.DrawTextCenter(screen, active.Hint(), utils.ItalicFace(13),
		surface.CenterX(), surface.Y+44, color.RGBA{R: 150, G: 158, B: 200, A: 220})

	s.miniGames.Draw(screen)
}
