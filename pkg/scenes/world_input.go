package scenes

import (
	"log"

	"github.com/decker502/nightgarden/pkg/components"
	"github.com/decker502/nightgarden/pkg/config"
	"github.com/decker502/nightgarden/pkg/ecs"
	"github.com/decker502/nightgarden/pkg/game"
	"github.com/decker502/nightgarden/pkg/minigames"
	"github.com/decker502/nightgarden/pkg/utils"
)

// 月亮入口的位置和命中半径
const (
	finaleGateY      = 64.0
	finaleGateRadius = 26.0
)

// handleInput 读取本帧输入并解析
func (s *WorldScene) handleInput() {
	if s.miniGames.IsOpen() {
		s.miniGames.HandlePress(utils.IsPointerPressed())
	}

	input := utils.GetInputState()
	if input.JustPressed {
		s.handleTap(float64(input.X), float64(input.Y))
	}
}

// handleTap 解析一次点击
//
// 解析优先级：场景切换中全部拒绝 → 打开中的迷你游戏（面板内
// 转发、面板外解散）→ 打开中的日记（关闭）→ 玩家控件 →
// 月亮入口 → 纪念品。
func (s *WorldScene) handleTap(x, y float64) {
	if s.sceneManager.IsTransitioning() || s.enteringFinale {
		return
	}

	// 世界里的每次点击都是合格手势：
	// 开场手势被宿主拒绝时，在此重试音频解锁
	if am := s.gameState.GetAudioManager(); am != nil && !am.Unlocked() {
		am.Unlock(game.TrackAmbient)
	}

	if s.miniGames.IsOpen() {
		if s.miniGames.Surface().Contains(x, y) {
			s.miniGames.HandleTap(x, y)
		} else {
			s.miniGames.Dismiss()
		}
		return
	}

	if s.diary.open {
		s.diary.open = false
		return
	}

	if s.controls.handleTap(x, y, s.diary) {
		return
	}

	if s.finaleGateOn && s.hitFinaleGate(x, y) {
		s.beginFinale()
		return
	}

	s.handleKeepsakeTap(x, y)
}

// hitFinaleGate 返回点击是否命中月亮入口
func (s *WorldScene) hitFinaleGate(x, y float64) bool {
	cx := float64(config.GameWindowWidth) / 2
	dx, dy := x-cx, y-finaleGateY
	r := finaleGateRadius * 1.4
	return dx*dx+dy*dy <= r*r
}

// handleKeepsakeTap 命中检测纪念品并按发现状态分派
func (s *WorldScene) handleKeepsakeTap(x, y float64) {
	pm := s.gameState.GetProgressManager()

	for _, kc := range s.content.Keepsakes {
		entityID, ok := s.keepsakeEntities[kc.ID]
		if !ok {
			continue
		}
		k, ok := ecs.GetComponent[*components.KeepsakeComponent](s.entityManager, entityID)
		if !ok {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
		if !ok {
			continue
		}

		dx, dy := x-pos.X, y-pos.Y
		hitR := k.Radius * 1.8
		if dx*dx+dy*dy > hitR*hitR {
			continue
		}

		if k.Discovered {
			// 低强调确认：不重开迷你游戏，不改变分配
			if pm != nil {
				if phrase := pm.AssignedPhrase(kc.ID); phrase != "" {
					s.message.Show(phrase, true)
				}
			}
			return
		}

		s.openKeepsakeGame(kc)
		return
	}
}

// openKeepsakeGame 为未发现的纪念品打开对应变体的迷你游戏
func (s *WorldScene) openKeepsakeGame(kc config.KeepsakeConfig) {
	keepsakeID := kc.ID
	outcome := s.miniGames.Open(minigames.NewForKind(kc.Kind))

	outcome.Then(func(completed bool) {
		if !completed {
			return
		}
		s.resolveUnlock(keepsakeID)
	})
}

// resolveUnlock 迷你游戏完成后记账并呈现寄语
func (s *WorldScene) resolveUnlock(keepsakeID string) {
	pm := s.gameState.GetProgressManager()
	if pm == nil {
		return
	}

	phrase, newly := pm.Unlock(keepsakeID)

	if entityID, ok := s.keepsakeEntities[keepsakeID]; ok {
		if k, ok := ecs.GetComponent[*components.KeepsakeComponent](s.entityManager, entityID); ok {
			k.Discovered = true
		}
	}

	if newly && phrase != "" {
		s.message.Show(phrase, false)
	}

	if pm.CompletionJustReached() {
		s.finaleGateOn = true
		s.message.Show(completionPrompt, false)
	} else if pm.IsComplete() {
		s.finaleGateOn = true
	}
}

// beginFinale 终章入口序列：黑暗渐变 + 音轨切换 + 场景切换
func (s *WorldScene) beginFinale() {
	if s.enteringFinale {
		return
	}
	s.enteringFinale = true
	log.Printf("[WorldScene] Entering finale")

	s.sceneManager.SetDarkness(true)
	if am := s.gameState.GetAudioManager(); am != nil {
		am.SwitchTo(game.TrackFinale)
	}
	s.sceneManager.TransitionTo(game.SceneFinal)
}
