package utils

import (
	"bytes"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// 文本渲染辅助
//
// 项目不携带字体资源文件，字形来自 golang.org/x/image 内置的 Go 字体，
// 通过 text/v2 的 GoTextFaceSource 渲染。FaceSource 初始化一次后复用。

var (
	fontOnce      sync.Once
	regularSource *text.GoTextFaceSource
	italicSource  *text.GoTextFaceSource
)

func initFonts() {
	fontOnce.Do(func() {
		var err error
		regularSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("[Text] Warning: Failed to load regular font: %v", err)
		}
		italicSource, err = text.NewGoTextFaceSource(bytes.NewReader(goitalic.TTF))
		if err != nil {
			log.Printf("[Text] Warning: Failed to load italic font: %v", err)
		}
	})
}

// RegularFace 返回指定字号的常规字体
func RegularFace(size float64) text.Face {
	initFonts()
	if regularSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: regularSource, Size: size}
}

// ItalicFace 返回指定字号的斜体字体（寄语和终章文本使用）
func ItalicFace(size float64) text.Face {
	initFonts()
	if italicSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: italicSource, Size: size}
}

// DrawTextCenter 以 (x, y) 为水平中心绘制单行文本
func DrawTextCenter(dst *ebiten.Image, str string, face text.Face, x, y float64, clr color.Color) {
	if face == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(dst, str, face, op)
}

// DrawTextLeft 以 (x, y) 为左上角绘制单行文本
func DrawTextLeft(dst *ebiten.Image, str string, face text.Face, x, y float64, clr color.Color) {
	if face == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, face, op)
}
