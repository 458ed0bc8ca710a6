package game

import (
	"log"

	"github.com/decker502/nightgarden/pkg/config"
	"github.com/decker502/nightgarden/pkg/utils"
)

// TrackID 逻辑音轨标识
type TrackID int

const (
	// TrackAmbient 环境氛围音轨（世界场景循环）
	TrackAmbient TrackID = iota
	// TrackFinale 终章音轨
	TrackFinale

	trackCount
)

// String 返回音轨的可读名称（用于日志）
func (id TrackID) String() string {
	switch id {
	case TrackAmbient:
		return "ambient"
	case TrackFinale:
		return "finale"
	default:
		return "unknown"
	}
}

// trackPlayer 抽象底层播放器的最小接口
// *audio.Player 直接满足；测试中注入假实现
type trackPlayer interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
}

// channelState 单个音轨的状态机
type channelState int

const (
	channelStopped channelState = iota
	channelFadingIn
	channelHolding
	channelFadingOut
)

// audioChannel 单个逻辑音轨的运行时状态
type audioChannel struct {
	player trackPlayer
	fade   utils.Fade
	level  float64      // 当前计算出的基础电平 0-1
	target float64      // 该通道应收敛到的电平（看门狗据此判断"应当可闻"）
	state  channelState
}

// AudioManager 音频连续性控制器
//
// 职责：
//   - 管理两条逻辑音轨（环境氛围、终章）的淡入淡出和交叉切换
//   - 静音/主音量控制（持久化到进度记录）
//   - 首次播放的手势解锁（宿主策略：无用户手势时播放会被拒绝）
//   - 播放恢复看门狗：补偿宿主层面的播放挂起
//
// 共享资源策略：两条音轨及其电平是唯一被多个调用点（用户开关、
// 场景切换、看门狗）修改的资源，所有修改必须经过本控制器的操作，
// 外部绝不直接操作播放器，以保证"该通道应是什么电平"的单一事实来源。
//
// 失败语义：每次播放尝试都被包裹，拒绝绝不会穿透本组件，
// 只翻转内部 unlocked 标志，下一次手势可安全重试。
type AudioManager struct {
	progress *ProgressManager // muted/volume 的持久化，可为 nil

	channels [trackCount]audioChannel
	active   TrackID

	unlocked bool
	muted    bool
	master   float64

	// now 本控制器的累积时钟（秒），渐变时间轴的基准
	now float64
	// watchdogElapsed 距上次看门狗检查的累积时间
	watchdogElapsed float64
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于构建音轨播放器，可为 nil，降级为无声模式）
//   - pm: ProgressManager 实例（静音/音量的持久化来源，可为 nil）
func NewAudioManager(rm *ResourceManager, pm *ProgressManager) *AudioManager {
	am := &AudioManager{
		progress: pm,
		master:   0.7,
	}

	if pm != nil {
		am.muted = pm.Muted()
		am.master = pm.Volume()
	}

	if rm != nil {
		// 空指针不进接口值，降级判断全部走 ch.player == nil
		if p := rm.TrackPlayer(TrackAmbient); p != nil {
			am.channels[TrackAmbient].player = p
		}
		if p := rm.TrackPlayer(TrackFinale); p != nil {
			am.channels[TrackFinale].player = p
		}
	}

	return am
}

// SetChannelPlayer 替换指定音轨的播放器（测试注入用）
func (am *AudioManager) SetChannelPlayer(id TrackID, p trackPlayer) {
	am.channels[id].player = p
}

// Unlocked 返回宿主播放权限是否已通过用户手势解锁
func (am *AudioManager) Unlocked() bool {
	return am.unlocked
}

// Muted 返回静音状态
func (am *AudioManager) Muted() bool {
	return am.muted
}

// MasterVolume 返回主音量
func (am *AudioManager) MasterVolume() float64 {
	return am.master
}

// ChannelLevel 返回指定音轨当前计算出的基础电平（测试/调试用）
func (am *AudioManager) ChannelLevel(id TrackID) float64 {
	return am.channels[id].level
}

// Unlock 尝试解锁播放并淡入目标音轨
//
// 必须且只能作为用户手势的直接后果调用（宿主的自动播放策略）。
// 成功时目标音轨在约 2.2 秒内淡入；失败时回到 Locked 状态并返回
// false，调用方可在下一次手势时重试。
func (am *AudioManager) Unlock(target TrackID) bool {
	if am.unlocked {
		return true
	}

	if !am.attemptPlay(target) {
		// 手势被宿主拒绝：保持 Locked，等待下一次手势
		log.Printf("[AudioManager] Unlock rejected for track %s, staying locked", target)
		am.unlocked = false
		return false
	}

	am.unlocked = true
	am.active = target

	ch := &am.channels[target]
	ch.target = 1
	if am.muted {
		// 静音下成功解锁：通道保持暂停，电平立即为 0
		am.attemptPause(target)
		ch.level = 0
		ch.state = channelHolding
	} else {
		ch.fade.Start(am.now, 0, 1, config.AudioUnlockFadeIn)
		ch.state = channelFadingIn
		am.applyVolume(target)
	}

	log.Printf("[AudioManager] Unlocked, fading in track %s", target)
	return true
}

// SwitchTo 交叉切换到指定音轨
//
// 新音轨开始播放并从 0 淡入到目标电平，同一窗口内旧音轨从当前
// 电平淡出到 0；旧音轨淡出到 0 后播放被暂停（而非仅静音）以节省
// 资源。对同一通道重复发起渐变采用后写者胜，无排队。
func (am *AudioManager) SwitchTo(target TrackID) {
	if target == am.active && am.channels[target].target > 0 {
		return
	}

	previous := am.active
	am.active = target

	newCh := &am.channels[target]
	newCh.target = 1
	oldCh := &am.channels[previous]
	oldCh.target = 0

	if am.muted || !am.unlocked {
		// 静音或未解锁：只更新"应当可闻"的目标，不发起任何播放
		newCh.level = 0
		oldCh.level = 0
		return
	}

	am.attemptPlay(target)
	newCh.fade.Start(am.now, 0, 1, config.AudioCrossfade)
	newCh.state = channelFadingIn

	oldCh.fade.Start(am.now, oldCh.level, 0, config.AudioCrossfade)
	oldCh.state = channelFadingOut

	am.applyVolume(target)
	log.Printf("[AudioManager] Crossfade %s -> %s", previous, target)
}

// SetMuted 设置静音
//
// 静音是立即的非动画转变，区别于淡出：取消所有进行中的渐变，
// 把两条音轨的可闻电平强制为 0 并立即暂停。取消后不再有任何
// 自动电平变化，直到取消静音。
func (am *AudioManager) SetMuted(muted bool) {
	if am.muted == muted {
		return
	}
	am.muted = muted

	if am.progress != nil {
		am.progress.SetMuted(muted)
	}

	if muted {
		for i := range am.channels {
			ch := &am.channels[i]
			ch.fade.Cancel()
			ch.level = 0
			ch.state = channelStopped
			am.attemptPause(TrackID(i))
		}
		log.Printf("[AudioManager] Muted")
		return
	}

	// 取消静音：活动音轨直接恢复到其目标电平（不做淡入）
	for i := range am.channels {
		ch := &am.channels[i]
		if ch.target > 0 && am.unlocked {
			ch.level = ch.target
			ch.state = channelHolding
			am.attemptPlay(TrackID(i))
			am.applyVolume(TrackID(i))
		}
	}
	log.Printf("[AudioManager] Unmuted")
}

// SetMasterVolume 设置主音量
//
// 只重新缩放当前已计算出的基础电平，绝不重启渐变：
// 进行中的渐变保持其时间轴，最终输出 = 基础电平 × 主音量。
func (am *AudioManager) SetMasterVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	am.master = v

	if am.progress != nil {
		am.progress.SetVolume(v)
	}

	for i := range am.channels {
		am.applyVolume(TrackID(i))
	}
}

// Update 推进渐变和看门狗
// dt 为距上一帧的时间（秒），每帧由调度器调用
func (am *AudioManager) Update(dt float64) {
	am.now += dt

	if !am.muted {
		for i := range am.channels {
			am.updateChannel(TrackID(i))
		}
	}

	am.updateWatchdog(dt)
}

// updateChannel 推进单条音轨的渐变状态机
func (am *AudioManager) updateChannel(id TrackID) {
	ch := &am.channels[id]
	if ch.fade.Done() {
		return
	}

	ch.level = ch.fade.Value(am.now)
	am.applyVolume(id)

	if ch.fade.Done() {
		// 渐变刚结束：收敛到持有或停止
		if ch.level <= 0 {
			am.attemptPause(id)
			ch.state = channelStopped
		} else {
			ch.state = channelHolding
		}
	}
}

// updateWatchdog 播放恢复看门狗
//
// 以不高于 ~2.5 秒一次的频率检查：任何"应当可闻"（目标电平 > 0）
// 却被发现处于暂停的音轨会被重新拉起播放，补偿本系统控制之外的
// 宿主级播放挂起。
func (am *AudioManager) updateWatchdog(dt float64) {
	am.watchdogElapsed += dt
	if am.watchdogElapsed < config.AudioWatchdogInterval {
		return
	}
	am.watchdogElapsed = 0

	if !am.unlocked || am.muted {
		return
	}

	for i := range am.channels {
		ch := &am.channels[i]
		if ch.target > 0 && ch.player != nil && !ch.player.IsPlaying() {
			log.Printf("[AudioManager] Watchdog: track %s should be audible but is paused, restarting", TrackID(i))
			am.attemptPlay(TrackID(i))
			am.applyVolume(TrackID(i))
		}
	}
}

// applyVolume 把基础电平 × 主音量写到播放器
func (am *AudioManager) applyVolume(id TrackID) {
	ch := &am.channels[id]
	if ch.player == nil {
		return
	}
	ch.player.SetVolume(ch.level * am.master)
}

// attemptPlay 发起一次受保护的播放尝试
// 播放器缺失或宿主拒绝（panic）都按失败处理，绝不向外传播
func (am *AudioManager) attemptPlay(id TrackID) (ok bool) {
	ch := &am.channels[id]
	if ch.player == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[AudioManager] Warning: play attempt for %s rejected: %v", id, r)
			ok = false
		}
	}()
	ch.player.Play()
	return true
}

// attemptPause 受保护的暂停
func (am *AudioManager) attemptPause(id TrackID) {
	ch := &am.channels[id]
	if ch.player == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[AudioManager] Warning: pause attempt for %s failed: %v", id, r)
		}
	}()
	ch.player.Pause()
}
