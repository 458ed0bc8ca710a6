package game

import (
	"math"
	"testing"

	"github.com/decker502/nightgarden/pkg/config"
)

// fakePlayer 测试用假播放器
type fakePlayer struct {
	playing    bool
	volume     float64
	rejectPlay bool // 模拟宿主拒绝播放（Play panic）
	playCalls  int
}

func (f *fakePlayer) Play() {
	f.playCalls++
	if f.rejectPlay {
		panic("autoplay rejected")
	}
	f.playing = true
}

func (f *fakePlayer) Pause() {
	f.playing = false
}

func (f *fakePlayer) IsPlaying() bool {
	return f.playing
}

func (f *fakePlayer) SetVolume(v float64) {
	f.volume = v
}

// newTestAudioManager 创建带假播放器的音频管理器
func newTestAudioManager() (*AudioManager, *fakePlayer, *fakePlayer) {
	am := NewAudioManager(nil, nil)
	ambient := &fakePlayer{}
	finale := &fakePlayer{}
	am.SetChannelPlayer(TrackAmbient, ambient)
	am.SetChannelPlayer(TrackFinale, finale)
	return am, ambient, finale
}

// advance 以固定步长推进音频管理器
func advance(am *AudioManager, seconds float64) {
	const step = 1.0 / 60.0
	for t := 0.0; t < seconds; t += step {
		am.Update(step)
	}
}

// TestAudioManagerUnlockFadeIn 测试解锁后淡入到满电平
func TestAudioManagerUnlockFadeIn(t *testing.T) {
	am, ambient, _ := newTestAudioManager()

	if am.Unlocked() {
		t.Fatal("初始状态应为 Locked")
	}
	if !am.Unlock(TrackAmbient) {
		t.Fatal("Unlock 应成功")
	}
	if !am.Unlocked() {
		t.Error("成功解锁后 Unlocked 应为 true")
	}
	if !ambient.playing {
		t.Error("解锁后环境音轨应在播放")
	}

	advance(am, config.AudioUnlockFadeIn+0.1)
	if math.Abs(am.ChannelLevel(TrackAmbient)-1) > 1e-9 {
		t.Errorf("淡入结束后电平应为 1: got %v", am.ChannelLevel(TrackAmbient))
	}
	if math.Abs(ambient.volume-am.MasterVolume()) > 1e-9 {
		t.Errorf("最终输出应为 电平×主音量: got %v, want %v", ambient.volume, am.MasterVolume())
	}
}

// TestAudioManagerUnlockRejected 测试宿主拒绝后保持 Locked 且可重试
func TestAudioManagerUnlockRejected(t *testing.T) {
	am, ambient, _ := newTestAudioManager()
	ambient.rejectPlay = true

	if am.Unlock(TrackAmbient) {
		t.Fatal("被拒绝的解锁应返回 false")
	}
	if am.Unlocked() {
		t.Error("被拒绝后应保持 Locked")
	}

	// 下一次手势重试成功
	ambient.rejectPlay = false
	if !am.Unlock(TrackAmbient) {
		t.Error("重试解锁应成功")
	}
	if !am.Unlocked() {
		t.Error("重试成功后应为 Unlocked")
	}
}

// TestAudioManagerCrossfade 测试交叉切换：旧音轨淡出到 0 后被暂停
func TestAudioManagerCrossfade(t *testing.T) {
	am, ambient, finale := newTestAudioManager()
	am.Unlock(TrackAmbient)
	advance(am, config.AudioUnlockFadeIn+0.1)

	am.SwitchTo(TrackFinale)
	if !finale.playing {
		t.Error("切换后终章音轨应开始播放")
	}

	// 切换窗口中段：两条音轨都有非零电平
	advance(am, config.AudioCrossfade/2)
	if am.ChannelLevel(TrackFinale) <= 0 {
		t.Error("切换中段新音轨电平应大于 0")
	}
	if am.ChannelLevel(TrackAmbient) <= 0 {
		t.Error("切换中段旧音轨电平应仍大于 0")
	}

	advance(am, config.AudioCrossfade/2+0.2)
	if math.Abs(am.ChannelLevel(TrackFinale)-1) > 1e-9 {
		t.Errorf("切换结束后新音轨电平应为 1: got %v", am.ChannelLevel(TrackFinale))
	}
	if am.ChannelLevel(TrackAmbient) != 0 {
		t.Errorf("切换结束后旧音轨电平应为 0: got %v", am.ChannelLevel(TrackAmbient))
	}
	if ambient.playing {
		t.Error("旧音轨淡出到 0 后应被暂停")
	}
}

// TestAudioManagerMuteIsImmediate 测试静音立即生效并取消进行中的渐变
func TestAudioManagerMuteIsImmediate(t *testing.T) {
	am, ambient, _ := newTestAudioManager()
	am.Unlock(TrackAmbient)
	advance(am, config.AudioUnlockFadeIn/2) // 淡入进行中

	am.SetMuted(true)
	if !am.Muted() {
		t.Fatal("Muted 应为 true")
	}
	if ambient.playing {
		t.Error("静音后播放器应立即暂停")
	}
	if am.ChannelLevel(TrackAmbient) != 0 {
		t.Errorf("静音后电平应立即为 0: got %v", am.ChannelLevel(TrackAmbient))
	}

	// 静音期间不再有任何自动电平变化
	advance(am, config.AudioUnlockFadeIn)
	if am.ChannelLevel(TrackAmbient) != 0 {
		t.Errorf("静音期间电平不应变化: got %v", am.ChannelLevel(TrackAmbient))
	}
	if ambient.playing {
		t.Error("静音期间播放器不应被拉起")
	}

	// 取消静音：活动音轨直接恢复到目标电平
	am.SetMuted(false)
	if !ambient.playing {
		t.Error("取消静音后活动音轨应恢复播放")
	}
	if math.Abs(am.ChannelLevel(TrackAmbient)-1) > 1e-9 {
		t.Errorf("取消静音后电平应直接恢复到目标: got %v", am.ChannelLevel(TrackAmbient))
	}
}

// TestAudioManagerMasterVolumeRescales 测试主音量只重缩放不重启渐变
func TestAudioManagerMasterVolumeRescales(t *testing.T) {
	am, ambient, _ := newTestAudioManager()
	am.Unlock(TrackAmbient)
	advance(am, config.AudioUnlockFadeIn+0.1)

	am.SetMasterVolume(0.5)
	if math.Abs(ambient.volume-0.5) > 1e-9 {
		t.Errorf("输出应为 1×0.5: got %v", ambient.volume)
	}
	if math.Abs(am.ChannelLevel(TrackAmbient)-1) > 1e-9 {
		t.Errorf("主音量变化不应影响基础电平: got %v", am.ChannelLevel(TrackAmbient))
	}

	// 渐变进行中调整主音量：渐变时间轴不变
	am.SwitchTo(TrackFinale)
	advance(am, config.AudioCrossfade/2)
	levelBefore := am.ChannelLevel(TrackFinale)
	am.SetMasterVolume(0.2)
	if am.ChannelLevel(TrackFinale) != levelBefore {
		t.Error("调整主音量不应触碰进行中的渐变")
	}

	// 限幅
	am.SetMasterVolume(1.5)
	if am.MasterVolume() != 1 {
		t.Errorf("主音量应限幅到 1: got %v", am.MasterVolume())
	}
	am.SetMasterVolume(-0.3)
	if am.MasterVolume() != 0 {
		t.Errorf("主音量应限幅到 0: got %v", am.MasterVolume())
	}
}

// TestAudioManagerWatchdog 测试看门狗拉起被宿主挂起的音轨
func TestAudioManagerWatchdog(t *testing.T) {
	am, ambient, _ := newTestAudioManager()
	am.Unlock(TrackAmbient)
	advance(am, config.AudioUnlockFadeIn+0.1)

	// 模拟宿主级挂起
	ambient.playing = false
	calls := ambient.playCalls

	// 单帧内不检查，最多一个周期后被拉起
	am.Update(1.0 / 600.0)
	if ambient.playing {
		t.Error("看门狗不应逐帧检查")
	}

	advance(am, config.AudioWatchdogInterval+0.1)
	if !ambient.playing {
		t.Error("看门狗应拉起应当可闻却被挂起的音轨")
	}
	if ambient.playCalls <= calls {
		t.Error("看门狗应发起新的播放尝试")
	}
}

// TestAudioManagerWatchdogRespectsMute 测试静音期间看门狗不拉起播放
func TestAudioManagerWatchdogRespectsMute(t *testing.T) {
	am, ambient, _ := newTestAudioManager()
	am.Unlock(TrackAmbient)
	advance(am, config.AudioUnlockFadeIn+0.1)

	am.SetMuted(true)
	advance(am, config.AudioWatchdogInterval*2)
	if ambient.playing {
		t.Error("静音期间看门狗不应拉起播放")
	}
}

// TestAudioManagerNilPlayers 测试无播放器的降级模式不崩溃
func TestAudioManagerNilPlayers(t *testing.T) {
	am := NewAudioManager(nil, nil)

	if am.Unlock(TrackAmbient) {
		t.Error("无播放器时解锁应失败")
	}
	am.SwitchTo(TrackFinale)
	am.SetMuted(true)
	am.SetMuted(false)
	am.SetMasterVolume(0.5)
	advance(am, config.AudioWatchdogInterval*2)
}

// TestAudioManagerMutePersists 测试静音和音量写入进度记录
func TestAudioManagerMutePersists(t *testing.T) {
	pm := NewProgressManager(nil, testPhrasePool, 3)
	am := NewAudioManager(nil, pm)

	am.SetMuted(true)
	if !pm.Muted() {
		t.Error("静音应写入进度记录")
	}
	am.SetMasterVolume(0.25)
	if pm.Volume() != 0.25 {
		t.Errorf("主音量应写入进度记录: got %v", pm.Volume())
	}

	// 新会话从记录恢复
	am2 := NewAudioManager(nil, pm)
	if !am2.Muted() {
		t.Error("新会话应从记录恢复静音状态")
	}
	if am2.MasterVolume() != 0.25 {
		t.Errorf("新会话应从记录恢复主音量: got %v", am2.MasterVolume())
	}
}
