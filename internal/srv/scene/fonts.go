package scene

import (
	"github.com/hajimehoshi/bitmapfont/v2"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	LargeFont      = bitmapfont.Face
	SmallFont      = &proggy.TinySZ8pt7b
	TinyFont       = &tinyfont.Org01
	ExtraSmallFont = &tinyfont.TomThumb
)
