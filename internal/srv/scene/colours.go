package scene

import "image/color"

var (
	Black           = color.RGBA{0, 0, 0, 255}
	White           = color.RGBA{255, 255, 255, 255}
	Grey            = color.RGBA{192, 192, 192, 255}
	LightGrey       = color.RGBA{128, 128, 128, 255}
	Red             = color.RGBA{255, 0, 0, 255}
	LightRed        = color.RGBA{255, 64, 64, 255}
	LightLightRed   = color.RGBA{255, 128, 128, 255}
	LightOrange     = color.RGBA{255, 160, 64, 255}
	LightMidOrange  = color.RGBA{255, 128, 0, 255}
	LightDarkOrange = color.RGBA{224, 96, 0, 255}
	LightYellow     = color.RGBA{255, 255, 96, 255}
	LightGreen      = color.RGBA{96, 255, 96, 255}
	LightMidGreen   = color.RGBA{0, 224, 64, 255}
	LightTeal       = color.RGBA{64, 224, 208, 255}
	LightDarkTeal   = color.RGBA{0, 128, 128, 255}
	LightBlue       = color.RGBA{96, 160, 255, 255}
	LightMidBlue    = color.RGBA{64, 128, 255, 255}
	LightDarkBlue   = color.RGBA{32, 64, 224, 255}
	DarkBlue        = color.RGBA{0, 0, 160, 255}
	LightPink       = color.RGBA{255, 128, 192, 255}
	LightPurple     = color.RGBA{192, 96, 255, 255}
	DarkPurple      = color.RGBA{48, 0, 96, 255}
	DarkMidPurple   = color.RGBA{112, 48, 176, 255}
)

// gradient mixes a and b, ratio 0 giving a and 1 giving b
func gradient(a, b color.RGBA, ratio float64) color.RGBA {
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*ratio)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}

func scale(c color.RGBA, ratio float64) color.RGBA {
	return gradient(Black, c, ratio)
}
