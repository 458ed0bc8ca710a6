package config

// 时间参数：全部以秒为单位，驱动逻辑均基于 deltaTime 累积，
// 与帧率无关（不按帧数计数）。

// 场景切换
const (
	// TransitionCoverFadeIn 遮罩淡入时长
	TransitionCoverFadeIn = 0.45
	// TransitionCoverHold 遮罩完全覆盖后的停留时长（期间完成场景切换）
	TransitionCoverHold = 1.15
	// TransitionSettle 场景切换后、遮罩移除前的短暂停留
	TransitionSettle = 0.14
	// TransitionCoverFadeOut 遮罩淡出时长
	TransitionCoverFadeOut = 0.45
	// DarknessFadeDuration 黑暗氛围遮罩的渐变时长
	DarknessFadeDuration = 1.6
)

// 音频
const (
	// AudioUnlockFadeIn 首次解锁播放时的淡入时长
	AudioUnlockFadeIn = 2.2
	// AudioCrossfade 双轨交叉淡化时长
	AudioCrossfade = 2.4
	// AudioWatchdogInterval 播放恢复看门狗的最小检查间隔
	AudioWatchdogInterval = 2.5
)

// 迷你游戏
const (
	// MiniGameDismissGuard 打开后忽略关闭手势的保护窗口，
	// 防止同一次点击既打开又关闭迷你游戏
	MiniGameDismissGuard = 0.28
	// HoldDuration 长按游戏需要的连续按住时长
	HoldDuration = 2.1
	// SequenceStepLit 序列游戏回放时每步的点亮时长
	SequenceStepLit = 0.98
	// SequenceStepGap 序列游戏回放时步与步之间的间隔
	SequenceStepGap = 0.62
	// SequenceLeadIn 序列游戏回放前的停顿
	SequenceLeadIn = 1.3
	// SequenceGrace 回放结束到接受输入之间的缓冲
	SequenceGrace = 1.5
	// SequenceTapDebounce 序列游戏的重复输入抑制窗口
	SequenceTapDebounce = 0.24
)

// 消息展示
const (
	// MessageFadeIn 寄语淡入时长
	MessageFadeIn = 0.8
	// MessageHold 寄语完全可见的停留时长
	MessageHold = 4.5
	// MessageHoldBrief 低强调提示（重复点击已发现对象）的停留时长
	MessageHoldBrief = 1.8
	// MessageFadeOut 寄语淡出时长
	MessageFadeOut = 1.0
)

// 终章时间线
const (
	// FinaleBaseDelay 进入终章后第一段文本的揭示延迟
	FinaleBaseDelay = 2.2
	// FinaleStepDelay 相邻两段文本之间的揭示间隔
	FinaleStepDelay = 1.6
	// FinaleBaseDelayReduced 减少动态偏好下的首段延迟
	FinaleBaseDelayReduced = 0.8
	// FinaleStepDelayReduced 减少动态偏好下的段间隔
	FinaleStepDelayReduced = 0.6
)

// 粒子
const (
	// MoteCount 萤光粒子池的固定大小
	MoteCount = 36
	// MoteCountReduced 减少动态偏好下的粒子数量上限
	MoteCountReduced = 10
)
