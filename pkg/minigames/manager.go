package minigames

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nightgarden/pkg/config"
)

// Outcome 一次 Open 调用的延迟结果
// 由管理器保证恰好解析一次：true 表示完成，false 表示取消
type Outcome struct {
	resolved bool
	result   bool
	then     func(completed bool)
}

// Then 注册结果回调
// 结果已解析时立即同步调用；否则在解析时调用
func (o *Outcome) Then(fn func(completed bool)) {
	if o.resolved {
		fn(o.result)
		return
	}
	o.then = fn
}

// Resolved 返回结果是否已解析（测试/调试用）
func (o *Outcome) Resolved() bool {
	return o.resolved
}

// Result 返回已解析的结果，未解析时返回 false
func (o *Outcome) Result() bool {
	return o.result
}

// resolve 解析结果，重复调用是无操作
func (o *Outcome) resolve(completed bool) {
	if o.resolved {
		return
	}
	o.resolved = true
	o.result = completed
	if o.then != nil {
		o.then(completed)
	}
}

// Manager 迷你游戏生命周期管理器
//
// 同一时间至多一个迷你游戏打开；打开期间外部交互
// （点击纪念品、打开日记等）由调用方通过 IsOpen 拒绝。
type Manager struct {
	surface Surface

	active  MiniGame
	outcome *Outcome

	// openElapsed 距本次打开的累积时间，
	// 早于关闭保护窗的手势解散被忽略
	openElapsed float64
}

// NewManager 创建管理器，surface 为所有迷你游戏共用的游玩区域
func NewManager(surface Surface) *Manager {
	return &Manager{surface: surface}
}

// Surface 返回游玩区域
func (m *Manager) Surface() Surface {
	return m.surface
}

// IsOpen 返回是否有迷你游戏打开
func (m *Manager) IsOpen() bool {
	return m.active != nil
}

// Active 返回当前打开的迷你游戏，没有则返回 nil
func (m *Manager) Active() MiniGame {
	return m.active
}

// Open 打开一个迷你游戏并返回其延迟结果
//
// 已有打开的游戏先以取消结果关闭。挂载失败时游戏不进入
// 打开状态，结果立即解析为取消。
func (m *Manager) Open(game MiniGame) *Outcome {
	if m.active != nil {
		m.close(false)
	}

	outcome := &Outcome{}

	// 完成信号闭包绑定本次的 game 和 outcome：
	// 迟到的完成信号（游戏已被替换或关闭）不会误解析新结果
	complete := func() {
		if m.active != game {
			return
		}
		m.close(true)
	}

	if err := game.Mount(m.surface, complete); err != nil {
		log.Printf("[MiniGameManager] Mount failed for %q: %v", game.Title(), err)
		outcome.resolve(false)
		return outcome
	}

	m.active = game
	m.outcome = outcome
	m.openElapsed = 0
	log.Printf("[MiniGameManager] Opened %q", game.Title())

	return outcome
}

// Dismiss 手势解散当前迷你游戏（取消结果）
//
// 打开后 ~280ms 内的解散被忽略，避免打开迷你游戏的同一个
// 输入事件同时把它关掉。
func (m *Manager) Dismiss() {
	if m.active == nil {
		return
	}
	if m.openElapsed < config.MiniGameDismissGuard {
		return
	}
	log.Printf("[MiniGameManager] Dismissed %q", m.active.Title())
	m.close(false)
}

// ForceClose 无视保护窗立即关闭（场景退出等非手势路径）
func (m *Manager) ForceClose() {
	if m.active == nil {
		return
	}
	m.close(false)
}

// close 卸载并清空活动状态，然后解析结果
// 活动状态先清空再解析，保证解析回调中的重入看到一致状态
func (m *Manager) close(completed bool) {
	game := m.active
	outcome := m.outcome
	m.active = nil
	m.outcome = nil

	if game != nil {
		if err := game.Unmount(); err != nil {
			log.Printf("[MiniGameManager] Warning: unmount failed for %q: %v", game.Title(), err)
		}
	}
	if outcome != nil {
		outcome.resolve(completed)
	}
}

// Update 驱动当前迷你游戏的帧更新
func (m *Manager) Update(dt float64) {
	if m.active == nil {
		return
	}
	m.openElapsed += dt
	m.active.Update(dt)
}

// Draw 绘制当前迷你游戏
func (m *Manager) Draw(screen *ebiten.Image) {
	if m.active == nil {
		return
	}
	m.active.Draw(screen)
}

// HandleTap 把游玩区域内的点击转发给当前迷你游戏
func (m *Manager) HandleTap(x, y float64) {
	if m.active == nil {
		return
	}
	if handler, ok := m.active.(TapHandler); ok {
		handler.HandleTap(x, y)
	}
}

// HandlePress 把按压状态转发给当前迷你游戏
func (m *Manager) HandlePress(pressed bool) {
	if m.active == nil {
		return
	}
	if handler, ok := m.active.(PressHandler); ok {
		handler.HandlePress(pressed)
	}
}
