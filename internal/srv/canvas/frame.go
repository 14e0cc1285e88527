package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
)

var Black = color.RGBA{0, 0, 0, 255}

// Output receives presented frames
type Output interface {
	Show(img image.Image) error
	SetBrightness(level int) error
}

// Frame is a double buffered pixel canvas. Drawing always happens on the back buffer.
// Swap presents the back buffer and hands back the former front buffer as is.
type Frame struct {
	output Output

	back  *image.RGBA
	front *image.RGBA

	brightness int
	swapCount  int

	snapshotLock sync.RWMutex
	snapshot     *image.RGBA
}

func NewFrame(width, height int, output Output) *Frame {
	bounds := image.Rect(0, 0, width, height)
	f := &Frame{
		output:     output,
		back:       image.NewRGBA(bounds),
		front:      image.NewRGBA(bounds),
		snapshot:   image.NewRGBA(bounds),
		brightness: -1,
	}
	draw.Draw(f.back, bounds, image.NewUniform(Black), image.Point{}, draw.Src)
	draw.Draw(f.front, bounds, image.NewUniform(Black), image.Point{}, draw.Src)
	draw.Draw(f.snapshot, bounds, image.NewUniform(Black), image.Point{}, draw.Src)
	return f
}

func (f *Frame) Bounds() image.Rectangle {
	return f.back.Bounds()
}

// Back returns the buffer being drawn
func (f *Frame) Back() *image.RGBA {
	return f.back
}

func (f *Frame) Clear() {
	f.Fill(f.back.Bounds(), Black)
}

// ClearAll blanks both buffers, so the buffer handed back by the next Swap holds nothing drawn before
func (f *Frame) ClearAll() {
	draw.Draw(f.back, f.back.Bounds(), image.NewUniform(Black), image.Point{}, draw.Src)
	draw.Draw(f.front, f.front.Bounds(), image.NewUniform(Black), image.Point{}, draw.Src)
}

func (f *Frame) Fill(r image.Rectangle, c color.Color) {
	r = r.Intersect(f.back.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(f.back, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func (f *Frame) SetPixel(x, y int, c color.Color) {
	if !image.Pt(x, y).In(f.back.Bounds()) {
		return
	}
	f.back.Set(x, y, c)
}

// DrawLine draws a segment with both ends included
func (f *Frame) DrawLine(x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		f.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawImage blits img with its top left corner at pt, keeping transparency
func (f *Frame) DrawImage(img image.Image, pt image.Point) {
	b := img.Bounds()
	draw.Draw(f.back, image.Rectangle{Min: pt, Max: pt.Add(b.Size())}, img, b.Min, draw.Over)
}

// Swap presents the back buffer
func (f *Frame) Swap() error {
	f.back, f.front = f.front, f.back

	f.snapshotLock.Lock()
	copy(f.snapshot.Pix, f.front.Pix)
	f.snapshotLock.Unlock()

	f.swapCount++
	if f.output == nil {
		return nil
	}
	return f.output.Show(f.front)
}

func (f *Frame) SwapCount() int {
	return f.swapCount
}

// Snapshot returns a copy of the last presented frame. Safe for concurrent use.
func (f *Frame) Snapshot() *image.RGBA {
	f.snapshotLock.RLock()
	defer f.snapshotLock.RUnlock()

	img := image.NewRGBA(f.snapshot.Bounds())
	copy(img.Pix, f.snapshot.Pix)
	return img
}

// Brightness returns the last level written, -1 before the first write
func (f *Frame) Brightness() int {
	return f.brightness
}

func (f *Frame) SetBrightness(level int) error {
	if level < 0 {
		level = 0
	} else if level > 100 {
		level = 100
	}
	f.brightness = level
	if f.output == nil {
		return nil
	}
	return f.output.SetBrightness(level)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
