package screen

import (
	"github.com/jypelle/skyview/apimodel"
	"github.com/jypelle/skyview/internal/srv/animator"
	"github.com/jypelle/skyview/internal/srv/config"
	"golang.org/x/image/font"
	"image"
	"image/color"
	"time"
	"tinygo.org/x/tinyfont"
)

type Mode string

const (
	IdleMode      Mode = "idle"
	ActiveMode    Mode = "active"
	NetStatusMode Mode = "net_status"
)

// Widget tags
const (
	TagClock      = "clock"
	TagDefault    = "default"
	TagPulse      = "pulse"
	TagFlight     = "flight"
	TagFlightLogo = "flight_logo"
	TagNetStatus  = "net_status"
)

// Layout gives the tags enabled in each mode
type Layout map[Mode]animator.TagSet

func DefaultLayout() Layout {
	return Layout{
		IdleMode:      animator.NewTagSet(TagClock, TagDefault, TagPulse),
		ActiveMode:    animator.NewTagSet(TagFlight, TagFlightLogo, TagPulse),
		NetStatusMode: animator.NewTagSet(TagNetStatus),
	}
}

// Surface is what widgets see of the controller
type Surface interface {
	Bounds() image.Rectangle
	ClearRegion(r image.Rectangle)
	Fill(r image.Rectangle, c color.Color)
	SetPixel(x, y int, c color.Color)
	DrawLine(x0, y0, x1, y1 int, c color.Color)
	DrawGlyphs(f tinyfont.Fonter, x, y int, text string, c color.RGBA) int
	DrawString(face font.Face, x, y int, text string, c color.Color) int
	DrawImage(img image.Image, pt image.Point)

	ClearToken() int
	RedrawAll() bool
	Frame() int
	Paused() bool
	Mode() Mode
	TagActive(tag string) bool
	Now() time.Time

	ResetScene() error
	Flights() *FlightCursor
	Processing() bool
}

// Widget registers its tasks against the surface it draws on
type Widget interface {
	Tasks(s Surface) []animator.Task
}

// StateSource provides the persisted screen state
type StateSource interface {
	Current() config.ScreenStateConfig
}

// FlightFeed is polled for flight lists. Data consumes the new data flag.
type FlightFeed interface {
	NewData() bool
	Processing() bool
	Data() []apimodel.Flight
	Grab()
}

type NetSource interface {
	Status() apimodel.NetStatus
}
