package srv

import (
	"context"
	"github.com/jypelle/skyview/internal/images"
	"github.com/jypelle/skyview/internal/srv/canvas"
	"github.com/jypelle/skyview/internal/srv/config"
	"github.com/jypelle/skyview/internal/srv/device"
	"github.com/jypelle/skyview/internal/srv/scene"
	"github.com/jypelle/skyview/internal/srv/screen"
	"github.com/jypelle/skyview/internal/version"
	"github.com/sirupsen/logrus"
	"image"
	"os"
	"os/exec"
	"time"
)

const (
	logoSize = 16
	iconSize = 10
)

type ServerApp struct {
	*config.ServerConfig
	displayDevice     *device.Display
	flightFeedDevice  *device.FlightFeed
	weatherFeedDevice *device.WeatherFeed
	netProbeDevice    *device.NetProbe
	buttonsDevice     *device.Buttons
	powerKeyDevice    *device.PowerKey
	apiDevice         *device.Api

	frame      *canvas.Frame
	controller *screen.Controller

	cancelScreen  context.CancelFunc
	screenFailed  chan error
	screenStopped chan bool

	eventLoopAskDone chan bool
	eventLoopDone    chan bool
}

func NewServerApp(configDir string, debugMode bool, simulationMode bool) *ServerApp {

	logrus.Debugf("Creation of skyview server %s ...", version.AppVersion.String())

	app := &ServerApp{
		screenFailed:     make(chan error, 1),
		screenStopped:    make(chan bool),
		eventLoopAskDone: make(chan bool),
		eventLoopDone:    make(chan bool),
		ServerConfig:     config.NewServerConfig(configDir, debugMode, simulationMode),
	}

	displayParam := app.ServerParam.DisplayParam
	app.displayDevice = device.NewDisplay(displayParam, app.SimulationMode)
	app.flightFeedDevice = device.NewFlightFeed(app.GetCompleteFlightFixtureFilename(), app.ServerParam.FlightParam.MaxFlights)
	app.weatherFeedDevice = device.NewWeatherFeed(app.GetCompleteWeatherFilename(), app.ServerParam.WeatherParam)
	app.netProbeDevice = device.NewNetProbe(app.ServerParam.NetworkParam, app.GetCompleteFlagsFolder())
	app.buttonsDevice = device.NewButtons(app.ServerParam.ButtonParam, app.SimulationMode)
	app.powerKeyDevice = device.NewPowerKey(app.ServerParam.PowerKeyParam, app.SimulationMode)

	app.frame = canvas.NewFrame(displayParam.Width, displayParam.Height, app.displayDevice)
	app.apiDevice = device.NewApi(app.ServerConfig, app.frame)

	night, err := app.ServerParam.NightParam.Window()
	if err != nil {
		logrus.Fatalf("Invalid night window: %v", err)
	}

	app.controller, err = screen.NewController(
		app.frame,
		app.ServerConfig,
		app.flightFeedDevice,
		app.netProbeDevice,
		screen.Options{
			Brightness:      displayParam.Brightness,
			NightBrightness: app.ServerParam.NightParam.Brightness,
			Night:           night,
			TickDelay:       displayParam.TickDelay(),
			Observer:        screen.LogObserver{},
		},
		app.widgets(night)...,
	)
	if err != nil {
		logrus.Fatalf("Unable to create screen controller: %v", err)
	}

	logrus.Debugln("Server created")

	return app
}

// widgets lists the scenes in drawing order
func (s *ServerApp) widgets(night config.NightWindow) []screen.Widget {
	logos := images.NewLoader(s.GetCompleteLogoFolder(), logoSize)
	icons := images.NewLoader(s.GetCompleteIconFolder(), iconSize)
	imperial := s.ServerParam.UnitsParam.Imperial()
	journeyParam := s.ServerParam.JourneyParam

	return []screen.Widget{
		scene.NewClock(s.ServerParam.ClockParam.TwelveHour(), night),
		scene.NewDate(s.weatherFeedDevice),
		scene.NewTemperature(s.weatherFeedDevice),
		scene.NewForecast(s.weatherFeedDevice, icons),
		scene.NewFlightLogo(logos),
		scene.NewJourney(journeyParam.SelectedCode, journeyParam.BlankFiller, s.ServerParam.UnitsParam.Distance),
		scene.NewFlightDetails(),
		scene.NewPlaneDetails(imperial),
		scene.NewLoadingPulse(),
		scene.NewNetworkStatus(s.netProbeDevice),
	}
}

func (s *ServerApp) Start() {
	logrus.Printf("Starting skyview server ...")

	logrus.Printf("Starting devices ...")

	// Start display device
	s.displayDevice.Start()

	// Display startup screen
	s.showIntro()
	time.Sleep(2 * time.Second)

	// Start data devices
	s.netProbeDevice.Start()
	s.weatherFeedDevice.Start()
	s.flightFeedDevice.Start()

	// Start event loop
	go s.eventLoop()

	// Start input devices
	s.buttonsDevice.Start()
	s.powerKeyDevice.Start()
	s.apiDevice.Start()

	// Start screen
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelScreen = cancel
	go func() {
		if err := s.controller.Run(ctx); err != nil {
			s.screenFailed <- err
		}
		close(s.screenStopped)
	}()
}

// ScreenFailed delivers the error that stopped the screen
func (s *ServerApp) ScreenFailed() <-chan error {
	return s.screenFailed
}

func (s *ServerApp) showIntro() {
	if err := s.frame.SetBrightness(s.ServerParam.DisplayParam.Brightness); err != nil {
		logrus.Warnf("Unable to set brightness: %v", err)
	}
	s.frame.Clear()
	s.frame.DrawImage(images.IntroImage, image.Point{})
	if err := s.frame.Swap(); err != nil {
		logrus.Warnf("Unable to show intro: %v", err)
	}
}

func (s *ServerApp) Stop(halt bool, exitCode int) {
	logrus.Printf("Stopping skyview server ...")

	// Stop input devices
	s.apiDevice.StopSendingEvent()
	s.powerKeyDevice.StopSendingEvent()
	s.buttonsDevice.StopSendingEvent()

	// Stop event loop
	logrus.Infof("Stop event loop")
	s.eventLoopAskDone <- true
	<-s.eventLoopDone

	// Stop screen
	logrus.Infof("Stop screen")
	s.cancelScreen()
	<-s.screenStopped

	// Blank the panel
	s.frame.Clear()
	if err := s.frame.Swap(); err != nil {
		logrus.Warnf("Unable to blank the screen: %v", err)
	}

	// Stop data devices
	s.flightFeedDevice.Stop()
	s.weatherFeedDevice.Stop()
	s.netProbeDevice.Stop()

	// Stop display device
	s.displayDevice.Stop()

	logrus.Printf("Server stopped")

	if halt {
		logrus.Printf("System halt")
		haltCmd := exec.Command("sudo", "halt")
		err := haltCmd.Run()
		if err != nil {
			logrus.Panicf("Unable to halt the system: %v", err)
		}
	}
	os.Exit(exitCode)
}
