package scene

import (
	"errors"
	"fmt"
	"github.com/jypelle/skyview/apimodel"
	"github.com/jypelle/skyview/internal/srv/animator"
	"github.com/jypelle/skyview/internal/srv/canvas"
	"github.com/jypelle/skyview/internal/srv/screen"
	"image"
)

var forecastRegion = image.Rect(0, 12, 64, 32)

const (
	forecastDays         = 3
	forecastIconSize     = 10
	forecastFontSize     = 5
	forecastBottom       = 32
	forecastDayY         = forecastBottom - forecastFontSize - forecastIconSize
	forecastIconY        = forecastDayY + 1
	forecastTemperatureY = forecastBottom
)

var (
	forecastDayColour = LightPink
	forecastMinColour = LightMidBlue
	forecastMaxColour = LightDarkOrange
)

// Forecast shows three days of weather, refreshed every hour
type Forecast struct {
	weather WeatherSource
	icons   ImageSource

	s      screen.Surface
	cursor screen.TokenCursor

	hour int
	days []apimodel.ForecastDay
}

func NewForecast(weather WeatherSource, icons ImageSource) *Forecast {
	return &Forecast{
		weather: weather,
		icons:   icons,
		hour:    -1,
	}
}

func (f *Forecast) Tasks(s screen.Surface) []animator.Task {
	f.s = s
	return []animator.Task{
		{Name: "forecast_reset", Tag: screen.TagDefault, Run: f.reset},
		{Name: "forecast", Period: animator.PerSecond, Tag: screen.TagDefault, Run: f.forecast},
		repaintTask("forecast_repaint", screen.TagDefault, s, f.paint),
	}
}

func (f *Forecast) reset(count int) (bool, error) {
	f.hour = -1
	f.cursor.Mark(f.s.ClearToken())
	f.s.ClearRegion(forecastRegion)
	return false, nil
}

func (f *Forecast) forecast(count int) (bool, error) {
	hour := f.s.Now().Hour()
	stale := f.cursor.Stale(f.s.ClearToken())
	if !stale && !f.s.RedrawAll() && hour == f.hour {
		return false, nil
	}

	weather, err := f.weather.Weather()
	if err == nil && len(weather.Forecast) > 0 {
		f.days = weather.Forecast
	} else if len(f.days) == 0 {
		if err != nil && !errors.Is(err, apimodel.ErrWeatherPending) {
			f.hour = hour
		}
		return false, nil
	}

	f.cursor.Mark(f.s.ClearToken())
	f.hour = hour
	f.paint()
	return false, nil
}

func (f *Forecast) paint() {
	if len(f.days) == 0 {
		return
	}
	f.s.ClearRegion(forecastRegion)

	spaceWidth := f.s.Bounds().Dx() / forecastDays
	offset := 1
	for i, day := range f.days {
		if i == forecastDays {
			break
		}
		dayName := "--"
		if !day.StartTime.IsZero() {
			dayName = day.StartTime.Format("Mon")
		}
		minText := formatTemperature(day.TemperatureMin)
		maxText := formatTemperature(day.TemperatureMax)
		minWidth := canvas.GlyphsWidth(ExtraSmallFont, minText)
		maxWidth := canvas.GlyphsWidth(ExtraSmallFont, maxText)

		temperatureX := offset + (spaceWidth-minWidth-maxWidth-1)/2 + 1
		iconX := offset + (spaceWidth-forecastIconSize)/2
		dayX := offset + (spaceWidth-12)/2 + 1

		f.s.DrawGlyphs(ExtraSmallFont, dayX, forecastDayY, dayName, forecastDayColour)
		if f.icons != nil && day.WeatherCode != "" {
			if icon, err := f.icons.Load(day.WeatherCode); err == nil {
				f.s.DrawImage(icon, image.Pt(iconX, forecastIconY))
			}
		}
		f.s.DrawGlyphs(ExtraSmallFont, temperatureX, forecastTemperatureY, maxText, forecastMaxColour)
		f.s.DrawGlyphs(ExtraSmallFont, temperatureX+maxWidth, forecastTemperatureY, minText, forecastMinColour)

		offset += spaceWidth
	}
}

func formatTemperature(value *float64) string {
	if value == nil {
		return "--"
	}
	return fmt.Sprintf("%.0f", *value)
}
