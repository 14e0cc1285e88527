package scene

import (
	"github.com/jypelle/skyview/apimodel"
	"github.com/jypelle/skyview/internal/images"
	"github.com/jypelle/skyview/internal/srv/canvas"
	"github.com/jypelle/skyview/internal/srv/screen"
	"golang.org/x/image/font"
	"image"
	"image/color"
	"time"
	"tinygo.org/x/tinyfont"
)

type nopOutput struct{}

func (nopOutput) Show(img image.Image) error    { return nil }
func (nopOutput) SetBrightness(level int) error { return nil }

// fakeSurface draws on a real frame and lets tests drive the controller state
type fakeSurface struct {
	frame      *canvas.Frame
	token      int
	redrawAll  bool
	now        time.Time
	flights    *screen.FlightCursor
	processing bool
	resets     int
	draws      int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		frame:   canvas.NewFrame(64, 32, nopOutput{}),
		now:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		flights: &screen.FlightCursor{},
	}
}

func (s *fakeSurface) Bounds() image.Rectangle {
	return s.frame.Bounds()
}

func (s *fakeSurface) ClearRegion(r image.Rectangle) {
	s.frame.Fill(r, canvas.Black)
}

func (s *fakeSurface) Fill(r image.Rectangle, c color.Color) {
	s.draws++
	s.frame.Fill(r, c)
}

func (s *fakeSurface) SetPixel(x, y int, c color.Color) {
	s.draws++
	s.frame.SetPixel(x, y, c)
}

func (s *fakeSurface) DrawLine(x0, y0, x1, y1 int, c color.Color) {
	s.draws++
	s.frame.DrawLine(x0, y0, x1, y1, c)
}

func (s *fakeSurface) DrawGlyphs(f tinyfont.Fonter, x, y int, text string, c color.RGBA) int {
	s.draws++
	return s.frame.DrawGlyphs(f, x, y, text, c)
}

func (s *fakeSurface) DrawString(face font.Face, x, y int, text string, c color.Color) int {
	s.draws++
	return s.frame.DrawString(face, x, y, text, c)
}

func (s *fakeSurface) DrawImage(img image.Image, pt image.Point) {
	s.draws++
	s.frame.DrawImage(img, pt)
}

func (s *fakeSurface) ClearToken() int               { return s.token }
func (s *fakeSurface) RedrawAll() bool               { return s.redrawAll }
func (s *fakeSurface) Frame() int                    { return 0 }
func (s *fakeSurface) Paused() bool                  { return false }
func (s *fakeSurface) Mode() screen.Mode             { return screen.ActiveMode }
func (s *fakeSurface) TagActive(tag string) bool     { return true }
func (s *fakeSurface) Now() time.Time                { return s.now }
func (s *fakeSurface) Flights() *screen.FlightCursor { return s.flights }
func (s *fakeSurface) Processing() bool              { return s.processing }

func (s *fakeSurface) ResetScene() error {
	s.resets++
	return nil
}

func (s *fakeSurface) lit(x, y int) bool {
	return s.frame.Back().RGBAAt(x, y) != canvas.Black
}

func (s *fakeSurface) litIn(r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if s.lit(x, y) {
				n++
			}
		}
	}
	return n
}

type fakeWeather struct {
	weather apimodel.Weather
	err     error
}

func (w *fakeWeather) Weather() (apimodel.Weather, error) {
	return w.weather, w.err
}

type fakeNet struct {
	status apimodel.NetStatus
}

func (n *fakeNet) Status() apimodel.NetStatus {
	return n.status
}

type fakeImages map[string]image.Image

func (f fakeImages) Load(name string) (image.Image, error) {
	if img, ok := f[name]; ok {
		return img, nil
	}
	return nil, images.ErrNotFound
}

func float(v float64) *float64 {
	return &v
}
