package screen

import (
	"context"
	"fmt"
	"github.com/jypelle/skyview/apimodel"
	"github.com/jypelle/skyview/internal/srv/animator"
	"github.com/jypelle/skyview/internal/srv/canvas"
	"github.com/jypelle/skyview/internal/srv/config"
	"golang.org/x/image/font"
	"image"
	"image/color"
	"time"
	"tinygo.org/x/tinyfont"
)

const (
	checkForLoadedDataPeriod = animator.PerSecond * 5
	grabNewDataPeriod        = animator.PerSecond * 30
)

type Options struct {
	Brightness      int
	NightBrightness int
	Night           config.NightWindow
	Layout          Layout
	TickDelay       time.Duration
	Now             func() time.Time
	Observer        Observer
}

// Controller owns the canvas and drives every widget through one animator
type Controller struct {
	frame    *canvas.Frame
	animator *animator.Animator

	state   StateSource
	flights FlightFeed
	net     NetSource

	brightness      int
	nightBrightness int
	night           config.NightWindow
	layout          Layout
	now             func() time.Time
	observer        Observer

	flightCursor FlightCursor

	dirty      bool
	cleared    bool
	clearToken int

	reconciled      bool
	presentOwed     bool
	forceRedrawNext bool
	redrawAll       bool

	off  bool
	mode Mode
}

func NewController(frame *canvas.Frame, state StateSource, flights FlightFeed, net NetSource, options Options, widgets ...Widget) (*Controller, error) {
	c := &Controller{
		frame:           frame,
		state:           state,
		flights:         flights,
		net:             net,
		brightness:      options.Brightness,
		nightBrightness: options.NightBrightness,
		night:           options.Night,
		layout:          options.Layout,
		now:             options.Now,
		observer:        options.Observer,
		cleared:         true,
		mode:            IdleMode,
	}
	if c.layout == nil {
		c.layout = DefaultLayout()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.observer == nil {
		c.observer = LogObserver{}
	}

	tasks := []animator.Task{
		{Name: "clear_screen", Period: 0, Order: -1000, Run: c.clearScreen},
		{Name: "policy", Period: 1, Order: -100, RunWhilePaused: true, Run: c.policy},
		{Name: "check_for_loaded_data", Period: checkForLoadedDataPeriod, Order: -50, Run: c.checkForLoadedData},
		{Name: "grab_new_data", Period: grabNewDataPeriod, Order: -50, Run: c.grabNewData},
		{Name: "present", Period: 1, Order: 1000, RunWhilePaused: true, Run: c.present},
	}
	for _, widget := range widgets {
		tasks = append(tasks, widget.Tasks(c)...)
	}

	var err error
	c.animator, err = animator.New(options.TickDelay, tasks...)
	if err != nil {
		return nil, err
	}
	c.animator.SetTags(c.layout[c.mode])

	return c, nil
}

// Run animates the screen until ctx is cancelled or a task fails
func (c *Controller) Run(ctx context.Context) error {
	return c.animator.Run(ctx)
}

func (c *Controller) Tick() error {
	return c.animator.Tick()
}

// Drawing primitives

func (c *Controller) Bounds() image.Rectangle {
	return c.frame.Bounds()
}

func (c *Controller) ClearRegion(r image.Rectangle) {
	c.frame.Fill(r, canvas.Black)
	c.markDirty()
}

func (c *Controller) Fill(r image.Rectangle, col color.Color) {
	c.frame.Fill(r, col)
	c.markDirty()
}

func (c *Controller) SetPixel(x, y int, col color.Color) {
	c.frame.SetPixel(x, y, col)
	c.markDirty()
}

func (c *Controller) DrawLine(x0, y0, x1, y1 int, col color.Color) {
	c.frame.DrawLine(x0, y0, x1, y1, col)
	c.markDirty()
}

func (c *Controller) DrawGlyphs(f tinyfont.Fonter, x, y int, text string, col color.RGBA) int {
	c.markDirty()
	return c.frame.DrawGlyphs(f, x, y, text, col)
}

func (c *Controller) DrawString(face font.Face, x, y int, text string, col color.Color) int {
	c.markDirty()
	return c.frame.DrawString(face, x, y, text, col)
}

func (c *Controller) DrawImage(img image.Image, pt image.Point) {
	c.frame.DrawImage(img, pt)
	c.markDirty()
}

func (c *Controller) markDirty() {
	c.dirty = true
	c.cleared = false
}

// ClearCanvas wipes both buffers and invalidates every widget
func (c *Controller) ClearCanvas(reason string) {
	c.frame.ClearAll()
	c.dirty = true
	c.cleared = true
	c.clearToken++
	c.reconciled = false
	c.presentOwed = false
	c.emit(ClearEvent, reason)
}

// ModeSwitch enables the tags of mode and reinitialises their widgets on a blank canvas
func (c *Controller) ModeSwitch(mode Mode, reason string) error {
	tags, ok := c.layout[mode]
	if !ok {
		return fmt.Errorf("unknown mode %s", mode)
	}
	c.animator.SetTags(tags)
	c.mode = mode
	c.ClearCanvas(reason)
	c.emit(ModeSwitchEvent, reason)
	return c.animator.Reset()
}

// Read-only state

func (c *Controller) ClearToken() int {
	return c.clearToken
}

func (c *Controller) RedrawAll() bool {
	return c.redrawAll
}

func (c *Controller) Frame() int {
	return c.animator.Frame()
}

func (c *Controller) Paused() bool {
	return c.animator.Paused()
}

func (c *Controller) Mode() Mode {
	return c.mode
}

func (c *Controller) TagActive(tag string) bool {
	return c.animator.TagActive(tag)
}

func (c *Controller) Tags() animator.TagSet {
	return c.animator.Tags()
}

func (c *Controller) Now() time.Time {
	return c.now()
}

func (c *Controller) Dirty() bool {
	return c.dirty
}

func (c *Controller) Off() bool {
	return c.off
}

func (c *Controller) Brightness() int {
	return c.frame.Brightness()
}

func (c *Controller) Flights() *FlightCursor {
	return &c.flightCursor
}

func (c *Controller) Processing() bool {
	return c.flights != nil && c.flights.Processing()
}

// ResetScene reruns every reset task of the enabled widgets
func (c *Controller) ResetScene() error {
	return c.animator.Reset()
}

// Tasks

func (c *Controller) clearScreen(count int) (bool, error) {
	if !c.cleared {
		c.ClearCanvas("reset")
	}
	return false, nil
}

func (c *Controller) policy(count int) (bool, error) {
	c.redrawAll = c.forceRedrawNext
	c.forceRedrawNext = false

	state := c.state.Current()
	night := c.night.Contains(c.now())
	target := c.brightness
	if night {
		target = c.nightBrightness
	}
	shouldBeOff := !state.On() || (night && target <= 0)

	if shouldBeOff && !c.off {
		c.off = true
		c.animator.Pause()
		c.ClearCanvas("policy_off")
		c.emit(PowerEvent, "policy_off")
	} else if !shouldBeOff && c.off {
		c.off = false
		c.animator.Resume()
		c.ClearCanvas("policy_on_resume")
		c.flightCursor.Rewind()
		c.emit(PowerEvent, "policy_on_resume")
		// widgets restart from their reset state in this very tick
		if err := c.animator.Reset(); err != nil {
			return false, err
		}
	}

	if c.off {
		target = 0
	}
	if c.frame.Brightness() != target {
		if err := c.frame.SetBrightness(target); err != nil {
			return false, fmt.Errorf("set brightness: %w", err)
		}
		c.emit(BrightnessEvent, "policy")
	}

	mode, reason := c.targetMode(state)
	if mode != c.mode {
		if err := c.ModeSwitch(mode, reason); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (c *Controller) targetMode(state config.ScreenStateConfig) (Mode, string) {
	if c.net != nil {
		if status := c.net.Status(); status != apimodel.NetStatusOk {
			return NetStatusMode, string(status)
		}
	}
	switch state.Mode {
	case config.ModeIdle:
		return IdleMode, "override"
	case config.ModeActive:
		return ActiveMode, "override"
	}
	if c.flightCursor.Len() > 0 {
		return ActiveMode, "flights"
	}
	return IdleMode, "no_flights"
}

func (c *Controller) checkForLoadedData(count int) (bool, error) {
	if c.flights == nil || !c.flights.NewData() {
		return false, nil
	}
	thereIsData := c.flightCursor.Len() > 0
	flights := c.flights.Data()
	thereIsData = thereIsData || len(flights) > 0

	if apimodel.SameFlights(c.flightCursor.Flights(), flights) {
		return false, nil
	}
	c.flightCursor.Replace(flights)
	if thereIsData {
		return false, c.ResetScene()
	}
	return false, nil
}

func (c *Controller) grabNewData(count int) (bool, error) {
	if c.flights == nil {
		return false, nil
	}
	if c.flights.Processing() {
		return false, nil
	}
	if c.flightCursor.AllLooped() || c.flightCursor.Len() <= 1 {
		c.flights.Grab()
	}
	return false, nil
}

func (c *Controller) present(count int) (bool, error) {
	if c.off {
		c.frame.Clear()
		c.dirty = false
		c.reconciled = false
		c.presentOwed = false
		if err := c.frame.Swap(); err != nil {
			return false, fmt.Errorf("swap: %w", err)
		}
		return false, nil
	}

	if !c.dirty && !c.presentOwed {
		return false, nil
	}

	if c.animator.RequiresPostSwapRedraw() && !c.reconciled {
		c.dirty = false
		if c.redrawAll {
			c.reconciled = true
			c.presentOwed = true
			c.emit(ReconcileEvent, "redraw_all")
		} else {
			c.forceRedrawNext = true
			c.emit(DeferEvent, "stale_back_buffer")
		}
		return false, nil
	}

	c.dirty = false
	c.reconciled = false
	c.presentOwed = false
	if err := c.frame.Swap(); err != nil {
		return false, fmt.Errorf("swap: %w", err)
	}
	c.emit(SwapEvent, "dirty")
	return false, nil
}

func (c *Controller) emit(kind EventKind, reason string) {
	c.observer.Observe(Event{
		Kind:       kind,
		Reason:     reason,
		Frame:      c.animator.Frame(),
		ClearToken: c.clearToken,
		Mode:       c.mode,
		Tags:       c.animator.Tags().String(),
		Brightness: c.frame.Brightness(),
		Off:        c.off,
	})
}
