package srv

import (
	"github.com/jypelle/skyview/internal/srv/event"
	"github.com/sirupsen/logrus"
	"syscall"
)

// a screen button held this many steps halts the system
const haltPressStepCount = 20

func (s *ServerApp) eventLoop() {
	for loop := true; loop; {
		select {
		case ev := <-s.buttonsDevice.EventChannel():
			s.handleButtonEvent(ev)
		case ev := <-s.powerKeyDevice.EventChannel():
			s.handleButtonEvent(ev)
		case ev := <-s.apiDevice.EventChannel():
			ev.Result <- s.handleApiEvent(ev)
		case <-s.eventLoopAskDone:
			loop = false
		}
	}
	s.eventLoopDone <- true
}

func (s *ServerApp) handleButtonEvent(ev event.ButtonEvent) {
	logrus.Debugf("Receive button event: %s, %d, %d", ev.ButtonId, ev.ButtonEventType, ev.PressStepCount)
	switch ev.ButtonId {
	case event.SCREEN_BUTTON:
		if ev.ButtonEventType == event.RELEASE_EVENT_TYPE && ev.PressStepCount < haltPressStepCount {
			s.toggleScreen()
		} else if ev.ButtonEventType == event.PRESS_EVENT_TYPE && ev.PressStepCount == haltPressStepCount {
			logrus.Debugf("See you!")
			syscall.Kill(syscall.Getpid(), syscall.SIGUSR1)
		}
	case event.POWER_KEY:
		if ev.ButtonEventType == event.PRESS_EVENT_TYPE {
			s.toggleScreen()
		}
	}
}

func (s *ServerApp) toggleScreen() {
	screen, err := s.ScreenState.ToggleScreen()
	if err != nil {
		logrus.Warnf("Unable to toggle screen: %v", err)
		return
	}
	logrus.Infof("Screen %s", screen)
}

func (s *ServerApp) handleApiEvent(ev event.ApiEvent) error {
	switch data := ev.Data.(type) {
	case event.ApiEventScreenData:
		logrus.Infof("Screen %s", data.Screen)
		return s.ScreenState.SetScreen(data.Screen)
	case event.ApiEventToggleScreenData:
		_, err := s.ScreenState.ToggleScreen()
		return err
	case event.ApiEventModeData:
		logrus.Infof("Mode %s", data.Mode)
		return s.ScreenState.SetMode(data.Mode)
	default:
		logrus.Warnf("Unknown api event %T", data)
		return nil
	}
}
