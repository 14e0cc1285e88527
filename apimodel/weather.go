package apimodel

import (
	"errors"
	"time"
)

var ErrWeatherPending = errors.New("weather not fetched yet")

type Weather struct {
	Temperature *float64      `yaml:"temperature" json:"temperature"`
	Humidity    *float64      `yaml:"humidity" json:"humidity"`
	MoonPhase   *int          `yaml:"moon_phase" json:"moon_phase"`
	Forecast    []ForecastDay `yaml:"forecast" json:"forecast"`
}

type ForecastDay struct {
	StartTime      time.Time `yaml:"start_time" json:"start_time"`
	WeatherCode    string    `yaml:"weather_code" json:"weather_code"`
	TemperatureMin *float64  `yaml:"temperature_min" json:"temperature_min"`
	TemperatureMax *float64  `yaml:"temperature_max" json:"temperature_max"`
}
