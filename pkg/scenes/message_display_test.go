package scenes

import (
	"testing"

	"github.com/decker502/nightgarden/pkg/config"
)

// tickMessage 以固定步长推进寄语展示
func tickMessage(md *MessageDisplay, seconds float64) {
	const dt = 1.0 / 60.0
	for e := 0.0; e < seconds; e += dt {
		md.Update(dt)
	}
}

// TestMessageDisplayLifecycle 测试淡入、停留、淡出的完整流程
func TestMessageDisplayLifecycle(t *testing.T) {
	md := NewMessageDisplay()
	if md.Visible() {
		t.Fatal("初始不应有消息展示")
	}

	md.Show("hello", false)
	if !md.Visible() {
		t.Fatal("Show 后应可见")
	}
	if md.Text() != "hello" {
		t.Errorf("Text: got %q", md.Text())
	}

	// 淡入 + 停留期间保持可见
	tickMessage(md, config.MessageFadeIn+config.MessageHold/2)
	if !md.Visible() {
		t.Error("停留期间应可见")
	}

	// 停留结束 + 淡出后隐藏
	tickMessage(md, config.MessageHold/2+config.MessageFadeOut+0.2)
	if md.Visible() {
		t.Error("淡出结束后应隐藏")
	}
}

// TestMessageDisplayBriefHold 测试低强调模式的停留更短
func TestMessageDisplayBriefHold(t *testing.T) {
	md := NewMessageDisplay()
	md.Show("brief", true)

	tickMessage(md, config.MessageFadeIn+config.MessageHoldBrief+config.MessageFadeOut+0.2)
	if md.Visible() {
		t.Error("低强调消息应在更短的窗口内结束")
	}

	md2 := NewMessageDisplay()
	md2.Show("normal", false)
	tickMessage(md2, config.MessageFadeIn+config.MessageHoldBrief+config.MessageFadeOut+0.2)
	if !md2.Visible() {
		t.Error("常规消息在同一窗口内应仍在展示")
	}
}

// TestMessageDisplayReplaced 测试新消息替换进行中的展示
func TestMessageDisplayReplaced(t *testing.T) {
	md := NewMessageDisplay()
	md.Show("first", false)
	tickMessage(md, config.MessageFadeIn+0.5)

	md.Show("second", false)
	if md.Text() != "second" {
		t.Errorf("新消息应替换旧消息: got %q", md.Text())
	}
	if !md.Visible() {
		t.Error("替换后应保持可见")
	}

	tickMessage(md, config.MessageFadeIn+config.MessageHold+config.MessageFadeOut+0.2)
	if md.Visible() {
		t.Error("替换后的消息按完整流程结束")
	}
}
