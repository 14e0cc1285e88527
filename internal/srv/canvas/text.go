package canvas

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"image"
	"image/color"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

type rgbaDisplayer struct {
	frame *Frame
}

var _ drivers.Displayer = rgbaDisplayer{}

func (d rgbaDisplayer) Size() (x, y int16) {
	size := d.frame.Bounds().Size()
	return int16(size.X), int16(size.Y)
}

func (d rgbaDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.frame.SetPixel(int(x), int(y), c)
}

func (d rgbaDisplayer) Display() error {
	return nil
}

// DrawGlyphs writes text with a tinyfont font, y being the baseline, and returns the advance in pixels
func (f *Frame) DrawGlyphs(fnt tinyfont.Fonter, x, y int, text string, c color.RGBA) int {
	if text == "" {
		return 0
	}
	tinyfont.WriteLine(rgbaDisplayer{f}, fnt, int16(x), int16(y), text, c)
	return GlyphsWidth(fnt, text)
}

// GlyphsWidth returns the advance of text written with a tinyfont font
func GlyphsWidth(fnt tinyfont.Fonter, text string) int {
	_, outboxWidth := tinyfont.LineWidth(fnt, text)
	return int(outboxWidth)
}

// DrawString writes text with a font face, y being the baseline, and returns the advance in pixels
func (f *Frame) DrawString(face font.Face, x, y int, text string, c color.Color) int {
	d := &font.Drawer{
		Dst:  f.back,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
	return d.Dot.X.Round() - x
}

func StringWidth(face font.Face, text string) int {
	return font.MeasureString(face, text).Round()
}
