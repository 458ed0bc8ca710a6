package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/nightgarden/pkg/config"
	"github.com/decker502/nightgarden/pkg/utils"
)

// messagePhase 寄语展示的阶段
type messagePhase int

const (
	messageHidden messagePhase = iota
	messageEnter
	messageHold
	messageExit
)

// MessageDisplay 寄语展示
//
// 解锁后的寄语经淡入、停留、淡出三段呈现，由渐变引擎驱动；
// 低强调确认（重复点击已发现的纪念品）用更短的停留时间。
// 新消息直接替换进行中的展示（后写者胜）。
type MessageDisplay struct {
	text  string
	phase messagePhase
	fade  utils.Fade
	alpha float64

	clock float64 // 展示组件自己的累积时钟
	hold  float64 // 本条消息的停留时长
	held  float64 // 停留阶段的累积时间
}

// NewMessageDisplay 创建寄语展示组件
func NewMessageDisplay() *MessageDisplay {
	return &MessageDisplay{}
}

// Show 展示一条寄语
// brief 为低强调模式：停留时间更短，用于重复点击的确认
func (md *MessageDisplay) Show(text string, brief bool) {
	md.text = text
	md.phase = messageEnter
	md.hold = config.MessageHold
	if brief {
		md.hold = config.MessageHoldBrief
	}
	md.held = 0
	md.fade.Start(md.clock, md.alpha, 1, config.MessageFadeIn)
}

// Visible 返回当前是否有寄语在展示
func (md *MessageDisplay) Visible() bool {
	return md.phase != messageHidden
}

// Text 返回当前展示的寄语
func (md *MessageDisplay) Text() string {
	return md.text
}

// Update 推进展示阶段
func (md *MessageDisplay) Update(dt float64) {
	md.clock += dt

	switch md.phase {
	case messageEnter:
		md.alpha = md.fade.Value(md.clock)
		if md.fade.Done() {
			md.phase = messageHold
			md.held = 0
		}
	case messageHold:
		md.alpha = 1
		md.held += dt
		if md.held >= md.hold {
			md.phase = messageExit
			md.fade.Start(md.clock, 1, 0, config.MessageFadeOut)
		}
	case messageExit:
		md.alpha = md.fade.Value(md.clock)
		if md.fade.Done() {
			md.phase = messageHidden
			md.alpha = 0
		}
	}
}

// Draw 绘制寄语面板
func (md *MessageDisplay) Draw(screen *ebiten.Image) {
	if md.phase == messageHidden || md.alpha <= 0 {
		return
	}

	w := float64(config.GameWindowWidth)
	panelW, panelH := w*0.7, 64.0
	x := (w - panelW) / 2
	y := float64(config.GameWindowHeight) * 0.72

	bgAlpha := md.alpha * 0.55
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(panelW), float32(panelH),
		color.RGBA{R: uint8(10 * bgAlpha), G: uint8(12 * bgAlpha), B: uint8(30 * bgAlpha), A: uint8(bgAlpha * 255)}, false)

	a := md.alpha
	utils.DrawTextCenter(screen, md.text, utils.ItalicFace(18), w/2, y+22,
		color.RGBA{R: uint8(230 * a), G: uint8(234 * a), B: uint8(255 * a), A: uint8(a * 255)})
}
