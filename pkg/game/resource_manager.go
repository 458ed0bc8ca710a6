package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	synth "github.com/decker502/nightgarden/internal/audio"
)

const audioSampleRate = 44100

// ResourceManager 资源管理器
//
// 职责：
//   - 持有全局音频上下文（ebiten 要求进程内唯一）
//   - 按需合成并缓存音轨播放器
//
// 所有方法对失败降级：合成或播放器创建出错时返回 nil，
// 上层（AudioManager）对 nil 播放器按无声处理。
type ResourceManager struct {
	audioContext *audio.Context
	players      map[TrackID]*audio.Player
}

// NewResourceManager 创建资源管理器
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		audioContext: audio.NewContext(audioSampleRate),
		players:      make(map[TrackID]*audio.Player),
	}
}

// TrackPlayer 返回指定音轨的循环播放器，首次调用时合成并缓存
func (rm *ResourceManager) TrackPlayer(id TrackID) *audio.Player {
	if p, ok := rm.players[id]; ok {
		return p
	}

	var stream *synth.Stream
	switch id {
	case TrackAmbient:
		stream = synth.AmbientTheme(audioSampleRate)
	case TrackFinale:
		stream = synth.FinaleTheme(audioSampleRate)
	default:
		log.Printf("[ResourceManager] Unknown track %s", id)
		return nil
	}

	loop := audio.NewInfiniteLoop(stream, stream.Length())
	player, err := rm.audioContext.NewPlayer(loop)
	if err != nil {
		log.Printf("[ResourceManager] Failed to create player for %s: %v", id, err)
		return nil
	}

	rm.players[id] = player
	return player
}
