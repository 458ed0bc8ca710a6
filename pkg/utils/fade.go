package utils

// Fade 通用的基于时间的数值渐变描述符
//
// 一个 Fade 描述从 From 到 To 的一次插值，时间轴由调用方维护
// （通常是各自组件累积的 deltaTime 时钟），因此进度对帧率变化免疫。
// 同一描述符上再次调用 Start 即覆盖旧渐变（后写者胜，无排队）。
type Fade struct {
	From      float64 // 起始值
	To        float64 // 目标值
	StartTime float64 // 启动时刻（调用方时钟，秒）
	Duration  float64 // 渐变时长（秒）
	Active    bool    // 是否还在进行中
}

// Start 以当前时刻 now 启动一次新的渐变
// duration <= 0 视为立即跳变到目标值（描述符立刻失活）
func (f *Fade) Start(now, from, to, duration float64) {
	f.From = from
	f.To = to
	f.StartTime = now
	f.Duration = duration
	if duration <= 0 {
		f.Active = false
		f.From = to
		return
	}
	f.Active = true
}

// Cancel 立即终止渐变，不改变 From/To
// 终止后 Value 返回的是目标值；调用方若需冻结当前值应先取样
func (f *Fade) Cancel() {
	f.Active = false
}

// Value 返回 now 时刻的插值结果，并在进度达到 1 时使描述符失活
// 使用 EaseInOutQuad 缓动曲线
func (f *Fade) Value(now float64) float64 {
	if !f.Active {
		return f.To
	}
	progress := Clamp01((now - f.StartTime) / f.Duration)
	if progress >= 1 {
		f.Active = false
		return f.To
	}
	return Lerp(f.From, f.To, EaseInOutQuad(progress))
}

// Done 返回渐变是否已结束（未启动的描述符视为已结束）
func (f *Fade) Done() bool {
	return !f.Active
}
