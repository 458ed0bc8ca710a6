// Package minigames 迷你游戏生命周期管理
//
// 职责：
//   - 定义迷你游戏的统一能力集（多态接口，新变体通过实现接口加入，
//     外部绝不按类型分支）
//   - 管理器保证同一时间至多一个迷你游戏打开，结果恰好解析一次
//
// 变体：Hold（长按时长门）、Sequence（记忆复现）、Catch（点击移动目标）
package minigames

import "github.com/hajimehoshi/ebiten/v2"

// Surface 迷你游戏的游玩区域（逻辑坐标矩形）
type Surface struct {
	X, Y, W, H float64
}

// CenterX 返回区域水平中心
func (s Surface) CenterX() float64 {
	return s.X + s.W/2
}

// CenterY 返回区域垂直中心
func (s Surface) CenterY() float64 {
	return s.Y + s.H/2
}

// Contains 返回点是否落在区域内
func (s Surface) Contains(x, y float64) bool {
	return x >= s.X && x < s.X+s.W && y >= s.Y && y < s.Y+s.H
}

// MiniGame 迷你游戏的统一能力集
//
// Mount 把游戏挂载到游玩区域；complete 是完成信号，游戏在
// 完成条件满足时恰好调用一次。Update 每帧由管理器驱动，
// dt 为秒。Unmount 释放资源，失败被管理器容忍（不向外抛出）。
type MiniGame interface {
	Mount(surface Surface, complete func()) error
	Update(dt float64)
	Draw(screen *ebiten.Image)
	Unmount() error
	Title() string
	Hint() string
}

// TapHandler 接收游玩区域内点击的变体实现此接口
type TapHandler interface {
	HandleTap(x, y float64)
}

// PressHandler 跟踪持续按压状态的变体实现此接口
type PressHandler interface {
	HandlePress(pressed bool)
}
