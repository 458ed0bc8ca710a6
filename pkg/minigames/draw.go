package minigames

import "image/color"

// scaledRGBA 将 0-1 的颜色通道和透明度转换为预乘 alpha 的 RGBA
func scaledRGBA(r, g, b, a float64) color.RGBA {
	return color.RGBA{
		R: uint8(r * a * 255),
		G: uint8(g * a * 255),
		B: uint8(b * a * 255),
		A: uint8(a * 255),
	}
}
