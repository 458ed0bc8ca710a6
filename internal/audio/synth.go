// Package audio 提供程序化合成的 PCM 音频流
//
// 项目不携带音频资源文件，两条音轨（环境氛围、终章）在启动时
// 由正弦叠加合成为 16-bit 立体声小端 PCM，整段长度对齐到完整
// 波形周期，适合配合 Ebitengine 的 audio.NewInfiniteLoop 无缝循环。
package audio

import (
	"fmt"
	"io"
	"math"
)

// Stream 内存中的 PCM 音频流 (16-bit signed LE, 立体声)
// 实现 io.ReadSeeker，可直接交给 Ebitengine 的音频播放器。
type Stream struct {
	data       []byte // PCM 数据 (16-bit signed LE, 交错立体声)
	sampleRate int64  // 采样率 (Hz)
	offset     int64  // 当前读取位置
}

// Read 读取 PCM 数据，实现 io.Reader
func (s *Stream) Read(p []byte) (n int, err error) {
	if s.offset >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n = copy(p, s.data[s.offset:])
	s.offset += int64(n)
	return n, nil
}

// Seek 移动读取位置，实现 io.Seeker
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = s.offset + offset
	case io.SeekEnd:
		abs = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("invalid seek whence: %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("negative seek position: %d", abs)
	}
	s.offset = abs
	return abs, nil
}

// Length 返回 PCM 数据的总字节数
// 传给 audio.NewInfiniteLoop 作为循环长度
func (s *Stream) Length() int64 {
	return int64(len(s.data))
}

// SampleRate 返回流的采样率
func (s *Stream) SampleRate() int64 {
	return s.sampleRate
}

// voice 合成中的单个声部
type voice struct {
	freq    float64 // 基频 (Hz)
	gain    float64 // 线性增益 0-1
	tremolo float64 // 振幅颤音频率 (Hz)，0 表示无颤音
}

// synthesize 将一组声部叠加为指定时长的循环友好 PCM 流
//
// 时长会向下对齐到最低频声部的整数个周期，使首尾相位衔接；
// 每个声部附加轻微的振幅颤音，避免长时间聆听时的"静止感"。
func synthesize(sampleRate int, voices []voice, seconds float64) *Stream {
	if len(voices) == 0 || seconds <= 0 {
		return &Stream{sampleRate: int64(sampleRate)}
	}

	// 对齐到最低频声部的整周期，保证循环无缝
	lowest := voices[0].freq
	for _, v := range voices {
		if v.freq < lowest {
			lowest = v.freq
		}
	}
	period := 1.0 / lowest
	cycles := math.Floor(seconds / period)
	if cycles < 1 {
		cycles = 1
	}
	alignedSeconds := cycles * period

	sampleCount := int(alignedSeconds * float64(sampleRate))
	data := make([]byte, sampleCount*4) // 2 字节/采样 × 2 声道

	for i := 0; i < sampleCount; i++ {
		t := float64(i) / float64(sampleRate)

		var sum float64
		for _, v := range voices {
			amp := v.gain
			if v.tremolo > 0 {
				amp *= 0.8 + 0.2*math.Sin(2*math.Pi*v.tremolo*t)
			}
			sum += amp * math.Sin(2*math.Pi*v.freq*t)
		}

		// 软限幅，避免声部叠加削波
		sum = math.Tanh(sum)

		sample := int16(sum * 28000)
		// 左右声道相同（立体声交错）
		data[i*4] = byte(sample)
		data[i*4+1] = byte(sample >> 8)
		data[i*4+2] = byte(sample)
		data[i*4+3] = byte(sample >> 8)
	}

	return &Stream{
		data:       data,
		sampleRate: int64(sampleRate),
	}
}

// AmbientTheme 合成环境氛围音轨
// 低音量的纯五度持续音加轻微颤音，适合长时间循环
func AmbientTheme(sampleRate int) *Stream {
	return synthesize(sampleRate, []voice{
		{freq: 110.00, gain: 0.22, tremolo: 0.13}, // A2
		{freq: 164.81, gain: 0.16, tremolo: 0.09}, // E3
		{freq: 220.00, gain: 0.10, tremolo: 0.07}, // A3
		{freq: 329.63, gain: 0.05, tremolo: 0.17}, // E4
	}, 8.0)
}

// FinaleTheme 合成终章音轨
// 大三和弦铺底，音色比环境音轨更明亮
func FinaleTheme(sampleRate int) *Stream {
	return synthesize(sampleRate, []voice{
		{freq: 130.81, gain: 0.20, tremolo: 0.11}, // C3
		{freq: 196.00, gain: 0.15, tremolo: 0.08}, // G3
		{freq: 261.63, gain: 0.12, tremolo: 0.06}, // C4
		{freq: 329.63, gain: 0.08, tremolo: 0.14}, // E4
		{freq: 392.00, gain: 0.05, tremolo: 0.10}, // G4
	}, 8.0)
}
