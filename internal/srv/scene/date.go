package scene

import (
	"github.com/jypelle/skyview/internal/srv/animator"
	"github.com/jypelle/skyview/internal/srv/screen"
	"image"
	"image/color"
)

var dateRegion = image.Rect(40, 7, 64, 12)

var datePosition = image.Pt(40, 11)

const dateCharWidth = 4

var moonPhaseColours = [8][2]color.RGBA{
	{DarkPurple, DarkPurple},
	{DarkPurple, DarkMidPurple},
	{DarkPurple, White},
	{DarkMidPurple, White},
	{Grey, Grey},
	{White, DarkMidPurple},
	{White, DarkPurple},
	{DarkMidPurple, DarkPurple},
}

// MoonPhaseColours gives the gradient of the date text, red when the phase is unknown
func MoonPhaseColours(moonPhase *int) (color.RGBA, color.RGBA) {
	if moonPhase == nil {
		return Red, Red
	}
	m := *moonPhase
	if m < 0 {
		m = 0
	} else if m > 7 {
		m = 7
	}
	return moonPhaseColours[m][0], moonPhaseColours[m][1]
}

type Date struct {
	weather WeatherSource

	s      screen.Surface
	cursor screen.TokenCursor

	text      string
	moonPhase *int
}

func NewDate(weather WeatherSource) *Date {
	return &Date{weather: weather}
}

func (d *Date) Tasks(s screen.Surface) []animator.Task {
	d.s = s
	return []animator.Task{
		{Name: "date_reset", Tag: screen.TagDefault, Run: d.reset},
		{Name: "date", Period: animator.PerSecond, Tag: screen.TagDefault, Run: d.date},
		repaintTask("date_repaint", screen.TagDefault, s, d.paint),
	}
}

func (d *Date) reset(count int) (bool, error) {
	d.text = ""
	d.cursor.Mark(d.s.ClearToken())
	d.s.ClearRegion(dateRegion)
	return false, nil
}

func (d *Date) date(count int) (bool, error) {
	text := d.s.Now().Format("Jan 02")
	var moonPhase *int
	if d.weather != nil {
		if weather, err := d.weather.Weather(); err == nil {
			moonPhase = weather.MoonPhase
		}
	}

	stale := d.cursor.Stale(d.s.ClearToken())
	if !stale && !d.s.RedrawAll() && text == d.text && sameInt(moonPhase, d.moonPhase) {
		return false, nil
	}
	d.cursor.Mark(d.s.ClearToken())
	d.text = text
	d.moonPhase = moonPhase
	d.paint()
	return false, nil
}

func (d *Date) paint() {
	if d.text == "" {
		return
	}
	start, end := MoonPhaseColours(d.moonPhase)
	d.s.ClearRegion(dateRegion)
	n := len(d.text)
	for i, ch := range d.text {
		colour := start
		if n > 1 {
			colour = gradient(start, end, float64(i)/float64(n-1))
		}
		d.s.DrawGlyphs(ExtraSmallFont, datePosition.X+i*dateCharWidth, datePosition.Y, string(ch), colour)
	}
}

func sameInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
