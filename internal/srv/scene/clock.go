package scene

import (
	"github.com/jypelle/skyview/internal/srv/animator"
	"github.com/jypelle/skyview/internal/srv/config"
	"github.com/jypelle/skyview/internal/srv/screen"
	"image"
	"strings"
	"time"
)

var clockRegion = image.Rect(0, 0, 40, 12)

const clockBaseline = 11

var (
	clockDayColour   = LightOrange
	clockNightColour = LightBlue
)

type Clock struct {
	twelveHour bool
	night      config.NightWindow

	s      screen.Surface
	cursor screen.TokenCursor

	text    string
	isNight bool
}

func NewClock(twelveHour bool, night config.NightWindow) *Clock {
	return &Clock{
		twelveHour: twelveHour,
		night:      night,
	}
}

func (c *Clock) Tasks(s screen.Surface) []animator.Task {
	c.s = s
	return []animator.Task{
		{Name: "clock_reset", Tag: screen.TagClock, Run: c.reset},
		{Name: "clock", Period: animator.PerSecond, Tag: screen.TagClock, Run: c.clock},
		repaintTask("clock_repaint", screen.TagClock, s, c.paint),
	}
}

func (c *Clock) reset(count int) (bool, error) {
	c.text = ""
	c.cursor.Mark(c.s.ClearToken())
	c.s.ClearRegion(clockRegion)
	return false, nil
}

func (c *Clock) clock(count int) (bool, error) {
	now := c.s.Now()
	text := FormatClock(now, c.twelveHour)
	isNight := c.night.Contains(now)

	stale := c.cursor.Stale(c.s.ClearToken())
	if !stale && !c.s.RedrawAll() && text == c.text && isNight == c.isNight {
		return false, nil
	}
	c.cursor.Mark(c.s.ClearToken())
	c.text = text
	c.isNight = isNight
	c.paint()
	return false, nil
}

func (c *Clock) paint() {
	if c.text == "" {
		return
	}
	colour := clockDayColour
	if c.isNight {
		colour = clockNightColour
	}
	c.s.ClearRegion(clockRegion)
	c.s.DrawString(LargeFont, clockRegion.Min.X, clockBaseline, c.text, colour)
}

// FormatClock renders hours and minutes, without leading zero in 12 hour format
func FormatClock(t time.Time, twelveHour bool) string {
	if !twelveHour {
		return t.Format("15:04")
	}
	return strings.TrimPrefix(t.Format("03:04"), "0")
}
