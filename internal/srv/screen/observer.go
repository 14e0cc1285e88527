package screen

import "github.com/sirupsen/logrus"

type EventKind string

const (
	ClearEvent      EventKind = "clear"
	SwapEvent       EventKind = "swap"
	DeferEvent      EventKind = "defer_swap"
	ReconcileEvent  EventKind = "reconcile"
	BrightnessEvent EventKind = "brightness"
	ModeSwitchEvent EventKind = "mode_switch"
	PowerEvent      EventKind = "power"
)

type Event struct {
	Kind       EventKind
	Reason     string
	Frame      int
	ClearToken int
	Mode       Mode
	Tags       string
	Brightness int
	Off        bool
}

type Observer interface {
	Observe(ev Event)
}

type ObserverFunc func(ev Event)

func (f ObserverFunc) Observe(ev Event) {
	f(ev)
}

// LogObserver traces controller events at debug level
type LogObserver struct{}

func (LogObserver) Observe(ev Event) {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	logrus.WithFields(logrus.Fields{
		"reason":      ev.Reason,
		"frame":       ev.Frame,
		"clear_token": ev.ClearToken,
		"mode":        ev.Mode,
		"tags":        ev.Tags,
		"brightness":  ev.Brightness,
		"off":         ev.Off,
	}).Debugf("Screen %s", ev.Kind)
}
