package config

import (
	"fmt"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	ScreenOn  = "on"
	ScreenOff = "off"
)

const (
	ModeAuto   = "auto"
	ModeIdle   = "idle"
	ModeActive = "active"
)

// ScreenStateConfig is the persisted power record. JSON content is accepted too.
type ScreenStateConfig struct {
	Screen string `yaml:"screen" json:"screen"`
	Mode   string `yaml:"mode" json:"mode"`
}

func (ssc ScreenStateConfig) On() bool {
	return ssc.Screen != ScreenOff
}

func defaultScreenStateConfig() ScreenStateConfig {
	return ScreenStateConfig{Screen: ScreenOn, Mode: ModeAuto}
}

func normalizeScreenStateConfig(raw ScreenStateConfig) ScreenStateConfig {
	normalized := defaultScreenStateConfig()
	switch screen := strings.ToLower(strings.TrimSpace(raw.Screen)); screen {
	case ScreenOn, ScreenOff:
		normalized.Screen = screen
	case "":
	default:
		logrus.Warnf("Unknown screen value %q, screen kept on", raw.Screen)
	}
	switch mode := strings.ToLower(strings.TrimSpace(raw.Mode)); mode {
	case ModeAuto, ModeIdle, ModeActive:
		normalized.Mode = mode
	case "":
	default:
		logrus.Warnf("Unknown mode value %q, mode kept auto", raw.Mode)
	}
	return normalized
}

// ScreenState tracks the screen state file, which can also be edited by hand while the server runs.
type ScreenState struct {
	lock                    sync.RWMutex
	completeScreenStateFile string
	modTime                 time.Time
	size                    int64
	screenStateConfig       ScreenStateConfig
}

func NewScreenState(completeScreenStateFile string) *ScreenState {
	screenState := &ScreenState{
		completeScreenStateFile: completeScreenStateFile,
		screenStateConfig:       defaultScreenStateConfig(),
	}

	screenState.lock.Lock()
	defer screenState.lock.Unlock()

	_, err := os.Stat(completeScreenStateFile)
	if err != nil && os.IsNotExist(err) {
		logrus.Infof("Create default screen state file")
		if err = screenState.save(); err != nil {
			logrus.Warnf("Unable to create screen state file: %v", err)
		}
	} else {
		screenState.reload()
	}

	return screenState
}

// Current returns the screen state, reloading the file when it changed on disk
func (ss *ScreenState) Current() ScreenStateConfig {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	ss.reload()
	return ss.screenStateConfig
}

func (ss *ScreenState) SetScreen(screen string) error {
	if screen != ScreenOn && screen != ScreenOff {
		return fmt.Errorf("unknown screen value %q", screen)
	}

	ss.lock.Lock()
	defer ss.lock.Unlock()

	ss.reload()
	ss.screenStateConfig.Screen = screen
	return ss.save()
}

// ToggleScreen switches the screen and returns the new value
func (ss *ScreenState) ToggleScreen() (string, error) {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	ss.reload()
	if ss.screenStateConfig.On() {
		ss.screenStateConfig.Screen = ScreenOff
	} else {
		ss.screenStateConfig.Screen = ScreenOn
	}
	return ss.screenStateConfig.Screen, ss.save()
}

func (ss *ScreenState) SetMode(mode string) error {
	if mode != ModeAuto && mode != ModeIdle && mode != ModeActive {
		return fmt.Errorf("unknown mode value %q", mode)
	}

	ss.lock.Lock()
	defer ss.lock.Unlock()

	ss.reload()
	ss.screenStateConfig.Mode = mode
	return ss.save()
}

func (ss *ScreenState) reload() {
	fileInfo, err := os.Stat(ss.completeScreenStateFile)
	if err != nil {
		if !ss.modTime.IsZero() {
			logrus.Warnf("Screen state file unavailable, default state used: %v", err)
			ss.modTime = time.Time{}
			ss.size = 0
			ss.screenStateConfig = defaultScreenStateConfig()
		}
		return
	}
	if fileInfo.ModTime().Equal(ss.modTime) && fileInfo.Size() == ss.size {
		return
	}
	ss.modTime = fileInfo.ModTime()
	ss.size = fileInfo.Size()

	rawState, err := os.ReadFile(ss.completeScreenStateFile)
	if err != nil {
		logrus.Warnf("Unable to read screen state file, default state used: %v", err)
		ss.screenStateConfig = defaultScreenStateConfig()
		return
	}

	var screenStateConfig ScreenStateConfig
	err = yaml.Unmarshal(rawState, &screenStateConfig)
	if err != nil {
		logrus.Warnf("Unable to interpret screen state file, default state used: %v", err)
		ss.screenStateConfig = defaultScreenStateConfig()
		return
	}
	ss.screenStateConfig = normalizeScreenStateConfig(screenStateConfig)
	logrus.Debugf("Screen state loaded: screen=%s mode=%s", ss.screenStateConfig.Screen, ss.screenStateConfig.Mode)
}

func (ss *ScreenState) save() error {
	logrus.Infof("Save screen state file: %s", ss.completeScreenStateFile)
	rawState, err := yaml.Marshal(&ss.screenStateConfig)
	if err != nil {
		return err
	}
	err = os.WriteFile(ss.completeScreenStateFile, rawState, 0660)
	if err != nil {
		return err
	}
	if fileInfo, err := os.Stat(ss.completeScreenStateFile); err == nil {
		ss.modTime = fileInfo.ModTime()
		ss.size = fileInfo.Size()
	}
	return nil
}
