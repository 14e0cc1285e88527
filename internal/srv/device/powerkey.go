package device

import (
	"fmt"
	"github.com/holoplot/go-evdev"
	"github.com/jypelle/skyview/internal/srv/config"
	"github.com/jypelle/skyview/internal/srv/event"
	"github.com/sirupsen/logrus"
	"sync"
	"time"
)

const powerKeyDebounce = 500 * time.Millisecond

// PowerKey turns presses of the board power key into button events
type PowerKey struct {
	lock         sync.Mutex
	eventChannel chan event.ButtonEvent
	param        config.PowerKeyParam
	simulation   bool

	inputDevice *evdev.InputDevice
	lastPress   time.Time

	done chan bool
}

func NewPowerKey(param config.PowerKeyParam, simulation bool) *PowerKey {
	return &PowerKey{
		eventChannel: make(chan event.ButtonEvent),
		param:        param,
		simulation:   simulation,
		done:         make(chan bool),
	}
}

func (d *PowerKey) Start() {
	logrus.Infof("Start power key device")

	if !d.param.Enabled || d.simulation {
		return
	}

	devPath, err := findInputDevice(d.param.DeviceName)
	if err != nil {
		logrus.Warnf("Power key disabled: %v", err)
		return
	}

	inputDevice, err := evdev.Open(devPath)
	if err != nil {
		logrus.Warnf("Power key disabled, unable to open %s: %v", devPath, err)
		return
	}
	if err := inputDevice.Grab(); err != nil {
		logrus.Warnf("Unable to grab %s: %v", devPath, err)
	}

	d.lock.Lock()
	d.inputDevice = inputDevice
	d.lock.Unlock()

	logrus.Debugf("Power key read from %s", devPath)

	go func() {
		for {
			ev, err := inputDevice.ReadOne()
			if err != nil {
				d.lock.Lock()
				closed := d.inputDevice == nil
				d.lock.Unlock()
				if closed {
					break
				}
				logrus.Warnf("Power key read error: %v", err)
				time.Sleep(100 * time.Millisecond)
				continue
			}
			if ev.Type != evdev.EV_KEY || ev.Code != evdev.KEY_POWER {
				continue
			}
			if buttonEvent, ok := d.translate(ev.Value, time.Now()); ok {
				d.eventChannel <- buttonEvent
			}
		}
		d.done <- true
	}()
}

// translate maps a key value (1 press, 0 release) to a button event, dropping bounces
func (d *PowerKey) translate(value int32, now time.Time) (event.ButtonEvent, bool) {
	switch value {
	case 1:
		if now.Sub(d.lastPress) < powerKeyDebounce {
			return event.ButtonEvent{}, false
		}
		d.lastPress = now
		return event.ButtonEvent{ButtonId: event.POWER_KEY, ButtonEventType: event.PRESS_EVENT_TYPE, PressStepCount: 1}, true
	case 0:
		return event.ButtonEvent{ButtonId: event.POWER_KEY, ButtonEventType: event.RELEASE_EVENT_TYPE, PressStepCount: 1}, true
	default:
		return event.ButtonEvent{}, false
	}
}

func (d *PowerKey) StopSendingEvent() {
	logrus.Infof("Stop power key device")

	d.lock.Lock()
	inputDevice := d.inputDevice
	d.inputDevice = nil
	d.lock.Unlock()

	if inputDevice == nil {
		return
	}
	inputDevice.Ungrab()
	inputDevice.Close()
	<-d.done
}

func (d *PowerKey) EventChannel() chan event.ButtonEvent {
	return d.eventChannel
}

func findInputDevice(name string) (string, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return "", err
	}
	for _, p := range paths {
		if p.Name == name {
			return p.Path, nil
		}
	}
	return "", fmt.Errorf("no input device named %q", name)
}
