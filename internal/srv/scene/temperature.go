package scene

import (
	"errors"
	"github.com/jypelle/skyview/apimodel"
	"github.com/jypelle/skyview/internal/srv/animator"
	"github.com/jypelle/skyview/internal/srv/canvas"
	"github.com/jypelle/skyview/internal/srv/screen"
	"image"
	"image/color"
	"math"
	"strconv"
)

var temperatureRegion = image.Rect(40, 0, 64, 5)

const temperatureBaseline = 5

type Temperature struct {
	weather WeatherSource

	s      screen.Surface
	cursor screen.TokenCursor

	text   string
	colour color.RGBA
}

func NewTemperature(weather WeatherSource) *Temperature {
	return &Temperature{weather: weather}
}

func (t *Temperature) Tasks(s screen.Surface) []animator.Task {
	t.s = s
	return []animator.Task{
		{Name: "temperature_reset", Tag: screen.TagDefault, Run: t.reset},
		{Name: "temperature", Period: animator.PerSecond, Tag: screen.TagDefault, Run: t.temperature},
		repaintTask("temperature_repaint", screen.TagDefault, s, t.paint),
	}
}

func (t *Temperature) reset(count int) (bool, error) {
	t.text = ""
	t.cursor.Mark(t.s.ClearToken())
	t.s.ClearRegion(temperatureRegion)
	return false, nil
}

func (t *Temperature) temperature(count int) (bool, error) {
	weather, err := t.weather.Weather()
	if errors.Is(err, apimodel.ErrWeatherPending) {
		return false, nil
	}
	text, colour := TemperatureText(weather, err)

	stale := t.cursor.Stale(t.s.ClearToken())
	if !stale && !t.s.RedrawAll() && text == t.text && colour == t.colour {
		return false, nil
	}
	t.cursor.Mark(t.s.ClearToken())
	t.text = text
	t.colour = colour
	t.paint()
	return false, nil
}

func (t *Temperature) paint() {
	if t.text == "" {
		return
	}
	t.s.ClearRegion(temperatureRegion)

	degree := t.text != "ERR"
	width := canvas.GlyphsWidth(TinyFont, t.text)
	if degree {
		width += 3
	}
	middle := (temperatureRegion.Min.X + temperatureRegion.Max.X) / 2
	x := middle - width/2
	x += t.s.DrawGlyphs(TinyFont, x, temperatureBaseline, t.text, t.colour)
	if degree {
		// 2x2 degree mark at the top right of the digits
		y := temperatureRegion.Min.Y
		t.s.SetPixel(x, y, t.colour)
		t.s.SetPixel(x+1, y, t.colour)
		t.s.SetPixel(x, y+1, t.colour)
		t.s.SetPixel(x+1, y+1, t.colour)
	}
}

// TemperatureText renders the rounded temperature tinted by humidity, or ERR
func TemperatureText(weather apimodel.Weather, err error) (string, color.RGBA) {
	if err != nil || weather.Temperature == nil || weather.Humidity == nil {
		return "ERR", Red
	}
	text := strconv.Itoa(int(math.Round(*weather.Temperature)))
	return text, gradient(White, DarkBlue, *weather.Humidity/100)
}
