package screen

import (
	"github.com/jypelle/skyview/apimodel"
	"github.com/jypelle/skyview/internal/srv/animator"
	"github.com/jypelle/skyview/internal/srv/canvas"
	"github.com/jypelle/skyview/internal/srv/config"
	"image"
	"image/color"
	"testing"
	"time"
)

var white = color.RGBA{255, 255, 255, 255}

type fakeState struct {
	cfg config.ScreenStateConfig
}

func (f *fakeState) Current() config.ScreenStateConfig {
	return f.cfg
}

type fakeFeed struct {
	newData    bool
	processing bool
	data       []apimodel.Flight
	grabs      int
}

func (f *fakeFeed) NewData() bool    { return f.newData }
func (f *fakeFeed) Processing() bool { return f.processing }
func (f *fakeFeed) Grab()            { f.grabs++ }
func (f *fakeFeed) Data() []apimodel.Flight {
	f.newData = false
	return f.data
}

type fakeNet struct {
	status apimodel.NetStatus
}

func (f *fakeNet) Status() apimodel.NetStatus { return f.status }

type fakeOutput struct {
	shown      []*image.RGBA
	brightness []int
}

func (o *fakeOutput) Show(img image.Image) error {
	rgba := image.NewRGBA(img.Bounds())
	copy(rgba.Pix, img.(*image.RGBA).Pix)
	o.shown = append(o.shown, rgba)
	return nil
}

func (o *fakeOutput) SetBrightness(level int) error {
	o.brightness = append(o.brightness, level)
	return nil
}

func (o *fakeOutput) lastBrightness() int {
	if len(o.brightness) == 0 {
		return -1
	}
	return o.brightness[len(o.brightness)-1]
}

func blank(img *image.RGBA) bool {
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			return false
		}
	}
	return true
}

// litOutside returns the first lit pixel of img outside r
func litOutside(img *image.RGBA, r image.Rectangle) (image.Point, bool) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := image.Pt(x, y)
			if p.In(r) {
				continue
			}
			if c := img.RGBAAt(x, y); c.R != 0 || c.G != 0 || c.B != 0 {
				return p, true
			}
		}
	}
	return image.Point{}, false
}

func litIn(img *image.RGBA, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if c := img.RGBAAt(x, y); c.R != 0 || c.G != 0 || c.B != 0 {
				return true
			}
		}
	}
	return false
}

// funcWidget builds its tasks from a closure
type funcWidget func(s Surface) []animator.Task

func (f funcWidget) Tasks(s Surface) []animator.Task {
	return f(s)
}

// drawingWidget draws one pixel every tick and owns a slow no-op task, so swaps need a forced redraw
func drawingWidget(tag string, calls *[]string) Widget {
	return funcWidget(func(s Surface) []animator.Task {
		return []animator.Task{
			{Name: tag + "_reset", Tag: tag, Run: func(int) (bool, error) {
				*calls = append(*calls, tag+"_reset")
				return false, nil
			}},
			{Name: tag + "_draw", Period: 1, Tag: tag, Run: func(int) (bool, error) {
				*calls = append(*calls, tag+"_draw")
				s.SetPixel(1, 1, white)
				return false, nil
			}},
			{Name: tag + "_slow", Period: 10, Tag: tag, Run: func(int) (bool, error) {
				return false, nil
			}},
		}
	})
}

// regionWidget fills r with a grey of *value when the value changes, the canvas was cleared or a redraw is forced
func regionWidget(tag string, r image.Rectangle, value *uint8) Widget {
	return funcWidget(func(s Surface) []animator.Task {
		var cursor TokenCursor
		var last uint8
		return []animator.Task{
			{Name: tag + "_reset", Tag: tag, Run: func(int) (bool, error) {
				cursor.Invalidate()
				return false, nil
			}},
			{Name: tag + "_draw", Period: 1, Tag: tag, Run: func(int) (bool, error) {
				token := s.ClearToken()
				if !cursor.Stale(token) && !s.RedrawAll() && *value == last {
					return false, nil
				}
				cursor.Mark(token)
				last = *value
				s.Fill(r, color.RGBA{*value, *value, *value, 255})
				return false, nil
			}},
			{Name: tag + "_slow", Period: 10, Tag: tag, Run: func(int) (bool, error) {
				return false, nil
			}},
		}
	})
}

type eventLog struct {
	events []Event
}

func (l *eventLog) Observe(ev Event) {
	l.events = append(l.events, ev)
}

func (l *eventLog) kinds(frame int) []EventKind {
	var kinds []EventKind
	for _, ev := range l.events {
		if ev.Frame == frame {
			kinds = append(kinds, ev.Kind)
		}
	}
	return kinds
}

type fixture struct {
	state  *fakeState
	feed   *fakeFeed
	net    *fakeNet
	output *fakeOutput
	frame  *canvas.Frame
	log    *eventLog
	clock  time.Time
	c      *Controller
}

func newFixture(t *testing.T, layout Layout, widgets ...Widget) *fixture {
	t.Helper()
	f := &fixture{
		state:  &fakeState{cfg: config.ScreenStateConfig{Screen: config.ScreenOn, Mode: config.ModeAuto}},
		feed:   &fakeFeed{},
		net:    &fakeNet{status: apimodel.NetStatusOk},
		output: &fakeOutput{},
		log:    &eventLog{},
		clock:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local),
	}
	f.frame = canvas.NewFrame(64, 32, f.output)
	var err error
	f.c, err = NewController(f.frame, f.state, f.feed, f.net, Options{
		Brightness:      80,
		NightBrightness: 0,
		Night:           config.NightWindow{Enabled: true, Start: 22 * 60, End: 7 * 60},
		Layout:          layout,
		Now:             func() time.Time { return f.clock },
		Observer:        f.log,
	}, widgets...)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *fixture) tick(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := f.c.Tick(); err != nil {
			t.Fatal(err)
		}
	}
}
