package screen

import (
	"fmt"
	"github.com/jypelle/skyview/apimodel"
	"github.com/jypelle/skyview/internal/srv/animator"
	"github.com/jypelle/skyview/internal/srv/config"
	"image"
	"reflect"
	"testing"
	"time"
)

func singleLayout(tag string) Layout {
	tags := animator.NewTagSet(tag)
	return Layout{IdleMode: tags, ActiveMode: tags, NetStatusMode: tags}
}

func TestPresentDefersUntilReconciled(t *testing.T) {
	var calls []string
	var redrawAll []bool
	probe := funcWidget(func(s Surface) []animator.Task {
		return []animator.Task{{Name: "probe", Period: 1, Run: func(int) (bool, error) {
			redrawAll = append(redrawAll, s.RedrawAll())
			return false, nil
		}}}
	})
	f := newFixture(t, singleLayout("w"), drawingWidget("w", &calls), probe)

	want := [][]EventKind{
		{BrightnessEvent, DeferEvent},
		{ReconcileEvent},
		{SwapEvent},
		{DeferEvent},
		{ReconcileEvent},
		{SwapEvent},
	}
	for frame, kinds := range want {
		f.tick(t, 1)
		if got := f.log.kinds(frame); !reflect.DeepEqual(got, kinds) {
			t.Errorf("frame %d events %v, want %v", frame, got, kinds)
		}
	}
	if len(f.output.shown) != 2 {
		t.Errorf("%d swaps, want 2", len(f.output.shown))
	}
	if want := []bool{false, true, false, false, true, false}; !reflect.DeepEqual(redrawAll, want) {
		t.Errorf("RedrawAll per tick %v, want %v", redrawAll, want)
	}
}

func TestPresentSwapsOwedFrameWithoutNewDrawing(t *testing.T) {
	drawing := true
	w := funcWidget(func(s Surface) []animator.Task {
		return []animator.Task{
			{Name: "draw", Period: 1, Tag: "w", Run: func(int) (bool, error) {
				if drawing || s.RedrawAll() {
					s.SetPixel(0, 0, white)
				}
				return false, nil
			}},
			{Name: "slow", Period: 10, Tag: "w", Run: func(int) (bool, error) { return false, nil }},
		}
	})
	f := newFixture(t, singleLayout("w"), w)

	f.tick(t, 1)
	drawing = false
	f.tick(t, 2)

	if len(f.output.shown) != 1 {
		t.Fatalf("%d swaps, want 1", len(f.output.shown))
	}
	if blank(f.output.shown[0]) {
		t.Error("presented frame should hold the drawing")
	}
	f.tick(t, 5)
	if len(f.output.shown) != 1 {
		t.Errorf("clean canvas should not be presented again, %d swaps", len(f.output.shown))
	}
}

func TestPresentSwapsEveryDirtyTickWithoutSlowTasks(t *testing.T) {
	w := funcWidget(func(s Surface) []animator.Task {
		return []animator.Task{{Name: "draw", Period: 1, Tag: "w", Run: func(count int) (bool, error) {
			if count%2 == 0 {
				s.SetPixel(count%64, 0, white)
			}
			return false, nil
		}}}
	})
	f := newFixture(t, singleLayout("w"), w)

	f.tick(t, 6)

	if len(f.output.shown) != 3 {
		t.Errorf("%d swaps, want 3", len(f.output.shown))
	}
}

func TestSwapNeverExposesUnreconciledBuffer(t *testing.T) {
	var calls []string
	f := newFixture(t, Layout{
		IdleMode:      animator.NewTagSet("a"),
		ActiveMode:    animator.NewTagSet("b"),
		NetStatusMode: animator.NewTagSet("a", "b"),
	}, drawingWidget("a", &calls), drawingWidget("b", &calls))

	runScript(t, f)

	reconciled := false
	swaps := 0
	for _, ev := range f.log.events {
		switch ev.Kind {
		case ClearEvent:
			reconciled = false
		case ReconcileEvent:
			reconciled = true
		case SwapEvent:
			swaps++
			if !reconciled {
				t.Fatalf("swap at frame %d exposed an unreconciled buffer", ev.Frame)
			}
			reconciled = false
		}
	}
	if swaps == 0 {
		t.Error("script should present frames")
	}
}

func TestModeSwitchLeavesNoStalePixels(t *testing.T) {
	idleValue, activeValue := uint8(100), uint8(100)
	idleRegion := image.Rect(0, 0, 2, 1)
	activeRegion := image.Rect(10, 10, 12, 11)
	f := newFixture(t, Layout{
		IdleMode:      animator.NewTagSet("a"),
		ActiveMode:    animator.NewTagSet("b"),
		NetStatusMode: animator.NewTagSet("a", "b"),
	}, regionWidget("a", idleRegion, &idleValue), regionWidget("b", activeRegion, &activeValue))

	f.tick(t, 5)
	idleValue = 200
	f.tick(t, 5)
	if len(f.output.shown) < 2 || !litIn(f.output.shown[len(f.output.shown)-1], idleRegion) {
		t.Fatalf("idle widget should be presented on both buffers, %d swaps", len(f.output.shown))
	}
	switched := len(f.output.shown)

	f.state.cfg.Mode = config.ModeActive
	f.tick(t, 3)
	activeValue = 200
	f.tick(t, 12)

	shown := f.output.shown[switched:]
	if len(shown) < 2 {
		t.Fatalf("%d swaps after the mode switch, want at least 2", len(shown))
	}
	for i, img := range shown {
		if p, ok := litOutside(img, activeRegion); ok {
			t.Errorf("swap %d after the mode switch shows %v, drawn before the switch", i, p)
		}
	}
	if !litIn(shown[len(shown)-1], activeRegion) {
		t.Error("active widget is missing from the last presented frame")
	}
}

func TestScreenOffBlanksOutput(t *testing.T) {
	var calls []string
	f := newFixture(t, singleLayout("w"), drawingWidget("w", &calls))
	f.tick(t, 3)
	if f.output.lastBrightness() != 80 {
		t.Fatalf("brightness = %d, want 80", f.output.lastBrightness())
	}

	f.state.cfg.Screen = config.ScreenOff
	calls = nil
	f.tick(t, 4)

	if !f.c.Off() || !f.c.Paused() {
		t.Error("controller should be off and paused")
	}
	if f.output.lastBrightness() != 0 {
		t.Errorf("brightness = %d, want 0", f.output.lastBrightness())
	}
	if len(calls) != 0 {
		t.Errorf("widgets ran while off: %v", calls)
	}
	for i, img := range f.output.shown[len(f.output.shown)-4:] {
		if !blank(img) {
			t.Errorf("off swap %d is not blank", i)
		}
	}

	f.state.cfg.Screen = config.ScreenOn
	token := f.c.ClearToken()
	f.tick(t, 1)
	if want := []string{"w_reset", "w_draw"}; !reflect.DeepEqual(calls, want) {
		t.Errorf("resume tick calls %v, want %v", calls, want)
	}
	f.tick(t, 1)
	if got := f.c.ClearToken() - token; got != 1 {
		t.Errorf("clear token moved by %d on resume, want 1", got)
	}

	if f.c.Off() || f.c.Paused() {
		t.Error("controller should be running again")
	}
	if f.output.lastBrightness() != 80 {
		t.Errorf("brightness = %d, want 80", f.output.lastBrightness())
	}
	resets := 0
	for _, call := range calls {
		if call == "w_reset" {
			resets++
		}
	}
	if resets != 1 {
		t.Errorf("widget reset %d times after resume, want 1", resets)
	}
}

func TestNightWindow(t *testing.T) {
	var calls []string
	f := newFixture(t, singleLayout("w"), drawingWidget("w", &calls))
	f.clock = time.Date(2024, 3, 1, 23, 0, 0, 0, time.Local)
	f.tick(t, 2)
	if !f.c.Off() || f.output.lastBrightness() != 0 {
		t.Error("zero night brightness should turn the screen off")
	}

	f.c.nightBrightness = 10
	f.tick(t, 1)
	if f.c.Off() || f.output.lastBrightness() != 10 {
		t.Errorf("night dimming expected, off=%v brightness=%d", f.c.Off(), f.output.lastBrightness())
	}

	f.clock = time.Date(2024, 3, 2, 7, 0, 0, 0, time.Local)
	writes := len(f.output.brightness)
	f.tick(t, 3)
	if f.output.lastBrightness() != 80 || len(f.output.brightness) != writes+1 {
		t.Errorf("day brightness should be written once, writes=%v", f.output.brightness[writes:])
	}
}

func TestModeSwitchReinitialisesNewTags(t *testing.T) {
	var calls []string
	f := newFixture(t, Layout{
		IdleMode:   animator.NewTagSet("a"),
		ActiveMode: animator.NewTagSet("b"),
	}, drawingWidget("a", &calls), drawingWidget("b", &calls))
	f.net = nil
	f.c.net = nil
	f.tick(t, 3)
	token := f.c.ClearToken()

	calls = nil
	f.state.cfg.Mode = config.ModeActive
	f.tick(t, 2)

	if f.c.Mode() != ActiveMode || !f.c.Tags().Equal(animator.NewTagSet("b")) {
		t.Errorf("mode %s tags %s", f.c.Mode(), f.c.Tags())
	}
	if got := f.c.ClearToken() - token; got != 1 {
		t.Errorf("clear token moved by %d, want 1", got)
	}
	if want := []string{"b_reset", "b_draw", "b_draw"}; !reflect.DeepEqual(calls, want) {
		t.Errorf("calls %v, want %v", calls, want)
	}
}

func TestFlightsDriveMode(t *testing.T) {
	f := newFixture(t, nil)
	f.feed.newData = true
	f.feed.data = []apimodel.Flight{{Callsign: "BAW123", Direction: "arrival"}, {Callsign: "UAL1", Direction: "departure"}}

	f.tick(t, 2)

	if f.c.Mode() != ActiveMode {
		t.Errorf("mode = %s, want active", f.c.Mode())
	}
	if f.c.Flights().Len() != 2 {
		t.Errorf("%d flights adopted", f.c.Flights().Len())
	}
	if f.feed.grabs != 0 {
		t.Errorf("fresh flight list should not be refreshed, %d grabs", f.feed.grabs)
	}

	f.state.cfg.Mode = config.ModeIdle
	f.tick(t, 1)
	if f.c.Mode() != IdleMode {
		t.Errorf("override mode = %s, want idle", f.c.Mode())
	}

	f.state.cfg.Mode = config.ModeAuto
	f.net.status = apimodel.NetStatusNoWifi
	f.tick(t, 1)
	if f.c.Mode() != NetStatusMode {
		t.Errorf("mode = %s, want net_status", f.c.Mode())
	}
}

func TestCheckForLoadedDataIgnoresSameFlights(t *testing.T) {
	resets := 0
	counter := funcWidget(func(s Surface) []animator.Task {
		return []animator.Task{{Name: "count_resets", Run: func(int) (bool, error) {
			resets++
			return false, nil
		}}}
	})
	f := newFixture(t, nil, counter)
	flights := []apimodel.Flight{{Callsign: "BAW123", Direction: "arrival"}}
	f.feed.newData = true
	f.feed.data = flights
	// adoption at frame 0, mode switch at frame 1
	f.tick(t, 2)
	afterFirst := resets

	f.feed.newData = true
	f.feed.data = []apimodel.Flight{{Callsign: "BAW123", Direction: "arrival", Distance: new(float64)}}
	f.tick(t, checkForLoadedDataPeriod)

	if f.feed.newData {
		t.Error("new data should be consumed")
	}
	if resets != afterFirst {
		t.Errorf("same flights reset the scene %d times", resets-afterFirst)
	}
}

func TestGrabNewData(t *testing.T) {
	f := newFixture(t, nil)
	f.tick(t, 1)
	if f.feed.grabs != 1 {
		t.Errorf("empty list should be refreshed, %d grabs", f.feed.grabs)
	}

	f.feed.processing = true
	f.tick(t, grabNewDataPeriod)
	if f.feed.grabs != 1 {
		t.Errorf("refresh requested while processing, %d grabs", f.feed.grabs)
	}
}

func TestTokenCursorSkipsUnchangedValue(t *testing.T) {
	value := 1
	draws := 0
	w := funcWidget(func(s Surface) []animator.Task {
		var cursor TokenCursor
		last := 0
		return []animator.Task{{Name: "value", Period: 1, Tag: "w", Run: func(int) (bool, error) {
			token := s.ClearToken()
			if !cursor.Stale(token) && value == last {
				return false, nil
			}
			cursor.Mark(token)
			last = value
			draws++
			s.ClearRegion(image.Rect(0, 0, 8, 8))
			s.SetPixel(value, 0, white)
			return false, nil
		}}}
	})
	f := newFixture(t, singleLayout("w"), w)

	f.tick(t, 3)
	if draws != 1 {
		t.Fatalf("%d draws, want 1", draws)
	}
	value = 2
	f.tick(t, 2)
	if draws != 2 {
		t.Errorf("%d draws after value change, want 2", draws)
	}
	f.c.ClearCanvas("test")
	f.tick(t, 2)
	if draws != 3 {
		t.Errorf("%d draws after clear, want 3", draws)
	}
	if f.c.Dirty() {
		t.Error("canvas should be clean")
	}
}

func TestDeterminism(t *testing.T) {
	trace := func() []string {
		var calls []string
		f := newFixture(t, Layout{
			IdleMode:      animator.NewTagSet("a"),
			ActiveMode:    animator.NewTagSet("b"),
			NetStatusMode: animator.NewTagSet("a", "b"),
		}, drawingWidget("a", &calls), drawingWidget("b", &calls))
		return runScript(t, f)
	}

	first := trace()
	second := trace()
	if len(first) == 0 || !reflect.DeepEqual(first, second) {
		t.Errorf("traces differ:\n%v\n%v", first, second)
	}
}

// runScript feeds a fixed sequence of signals and returns the controller state after each tick
func runScript(t *testing.T, f *fixture) []string {
	t.Helper()
	var trace []string
	for i := 0; i < 60; i++ {
		switch i {
		case 8:
			f.state.cfg.Mode = config.ModeActive
		case 15:
			f.state.cfg.Screen = config.ScreenOff
		case 22:
			f.state.cfg.Screen = config.ScreenOn
		case 30:
			f.net.status = apimodel.NetStatusNoNet
		case 36:
			f.net.status = apimodel.NetStatusOk
			f.state.cfg.Mode = config.ModeAuto
		case 45:
			f.clock = f.clock.Add(11 * time.Hour)
		}
		f.tick(t, 1)
		trace = append(trace, fmt.Sprintf("%s|%v|%d|%d", f.c.Tags(), f.c.Dirty(), f.c.ClearToken(), f.c.Brightness()))
	}
	return trace
}

func TestFlightCursor(t *testing.T) {
	var fc FlightCursor
	if _, ok := fc.Current(); ok || fc.Advance() {
		t.Error("empty cursor has no current flight")
	}
	fc.Replace([]apimodel.Flight{{Callsign: "A"}, {Callsign: "B"}, {Callsign: "C"}})
	fc.Advance()
	fc.Advance()
	if flight, _ := fc.Current(); flight.Callsign != "C" || fc.AllLooped() {
		t.Errorf("current %s looped %v", flight.Callsign, fc.AllLooped())
	}
	fc.Advance()
	if fc.Index() != 0 || !fc.AllLooped() {
		t.Errorf("index %d looped %v", fc.Index(), fc.AllLooped())
	}
	fc.Rewind()
	if fc.AllLooped() {
		t.Error("rewind clears the looped flag")
	}
}
