package config

import (
	_ "embed"
	"fmt"
	"time"
)

//go:embed param_default.yaml
var ParamDefaultFile []byte

type ServerParam struct {
	DisplayParam    DisplayParam  `yaml:"display"`
	NightParam      NightParam    `yaml:"night"`
	ClockParam      ClockParam    `yaml:"clock"`
	UnitsParam      UnitsParam    `yaml:"units"`
	JourneyParam    JourneyParam  `yaml:"journey"`
	FlightParam     FlightParam   `yaml:"flight"`
	WeatherParam    WeatherParam  `yaml:"weather"`
	NetworkParam    NetworkParam  `yaml:"network"`
	ButtonParam     ButtonParam   `yaml:"button"`
	PowerKeyParam   PowerKeyParam `yaml:"power_key"`
	LogoFolder      string        `yaml:"logo_folder"`
	IconFolder      string        `yaml:"icon_folder"`
	ScreenStateFile string        `yaml:"screen_state_file"`
	ApiParam        ApiParam      `yaml:"api"`
}

type DisplayParam struct {
	Output      string `yaml:"output"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Scale       int    `yaml:"scale"`
	I2cBus      string `yaml:"i2c_bus"`
	Brightness  int    `yaml:"brightness"`
	TickDelayMs int64  `yaml:"tick_delay_ms"`
}

func (dp DisplayParam) TickDelay() time.Duration {
	if dp.TickDelayMs <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(dp.TickDelayMs) * time.Millisecond
}

type NightParam struct {
	Enabled    bool   `yaml:"enabled"`
	Start      string `yaml:"start"`
	End        string `yaml:"end"`
	Brightness int    `yaml:"brightness"`
}

// Window parses the start and end of the night period
func (np NightParam) Window() (NightWindow, error) {
	if !np.Enabled {
		return NightWindow{}, nil
	}
	start, err := parseTimeOfDay(np.Start)
	if err != nil {
		return NightWindow{}, fmt.Errorf("night start: %w", err)
	}
	end, err := parseTimeOfDay(np.End)
	if err != nil {
		return NightWindow{}, fmt.Errorf("night end: %w", err)
	}
	return NightWindow{Enabled: true, Start: start, End: end}, nil
}

// NightWindow holds minutes since midnight. End may be before Start when the window wraps midnight.
type NightWindow struct {
	Enabled bool
	Start   int
	End     int
}

func (nw NightWindow) Contains(t time.Time) bool {
	if !nw.Enabled {
		return false
	}
	now := t.Hour()*60 + t.Minute()
	if nw.Start < nw.End {
		return nw.Start <= now && now < nw.End
	}
	return now >= nw.Start || now < nw.End
}

func parseTimeOfDay(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

type ClockParam struct {
	Format string `yaml:"format"`
}

func (cp ClockParam) TwelveHour() bool {
	return cp.Format == "12hr"
}

type UnitsParam struct {
	Distance    string `yaml:"distance"`
	Temperature string `yaml:"temperature"`
}

func (up UnitsParam) Imperial() bool {
	return up.Distance == "imperial"
}

type JourneyParam struct {
	SelectedCode string `yaml:"selected_code"`
	BlankFiller  string `yaml:"blank_filler"`
}

type FlightParam struct {
	FixtureFile string `yaml:"fixture_file"`
	MaxFlights  int    `yaml:"max_flights"`
}

type WeatherParam struct {
	File           string `yaml:"file"`
	RefreshSeconds int64  `yaml:"refresh_seconds"`
	RetrySeconds   int64  `yaml:"retry_seconds"`
}

type NetworkParam struct {
	Enabled      bool   `yaml:"enabled"`
	Host         string `yaml:"host"`
	CheckSeconds int64  `yaml:"check_seconds"`
	FlagsFolder  string `yaml:"flags_folder"`
}

type ButtonParam struct {
	Enabled bool   `yaml:"enabled"`
	Pin     string `yaml:"pin"`
}

type PowerKeyParam struct {
	Enabled    bool   `yaml:"enabled"`
	DeviceName string `yaml:"device_name"`
}

type ApiParam struct {
	Enabled          bool     `yaml:"enabled"`
	SslPort          int64    `yaml:"ssl_port"`
	ApiKey           string   `yaml:"api_key"`
	CertOrganization string   `yaml:"cert_organization"`
	CertHosts        []string `yaml:"cert_hosts"`
	CertValidityDays int      `yaml:"cert_validity_days"`
}
