package scene

import (
	"errors"
	"github.com/jypelle/skyview/internal/images"
	"github.com/jypelle/skyview/internal/srv/animator"
	"github.com/jypelle/skyview/internal/srv/screen"
	"github.com/sirupsen/logrus"
	"image"
)

const (
	logoSize        = 16
	defaultLogoName = "default"
)

var logoRegion = image.Rect(0, 0, logoSize, logoSize)

// FlightLogo shows the operator logo of the current flight in the top left corner
type FlightLogo struct {
	logos ImageSource

	s      screen.Surface
	cursor screen.TokenCursor
	name   string
}

func NewFlightLogo(logos ImageSource) *FlightLogo {
	return &FlightLogo{logos: logos}
}

func (fl *FlightLogo) Tasks(s screen.Surface) []animator.Task {
	fl.s = s
	return []animator.Task{
		{Name: "flight_logo_reset", Tag: screen.TagFlightLogo, Run: fl.reset},
		{Name: "flight_logo", Period: 1, Tag: screen.TagFlightLogo, Run: fl.logo},
	}
}

func (fl *FlightLogo) reset(count int) (bool, error) {
	fl.name = ""
	fl.cursor.Mark(fl.s.ClearToken())
	fl.s.ClearRegion(logoRegion)
	return false, nil
}

func (fl *FlightLogo) logo(count int) (bool, error) {
	flight, ok := fl.s.Flights().Current()
	if !ok {
		return false, nil
	}
	name := LogoName(flight.OwnerIcao)

	stale := fl.cursor.Stale(fl.s.ClearToken())
	if !stale && !fl.s.RedrawAll() && name == fl.name {
		return false, nil
	}
	fl.cursor.Mark(fl.s.ClearToken())
	fl.name = name

	img := fl.resolve(name)
	fl.s.ClearRegion(logoRegion)
	fl.s.DrawImage(img, LogoOrigin(img.Bounds()))
	return false, nil
}

func (fl *FlightLogo) resolve(name string) image.Image {
	if fl.logos != nil {
		for _, candidate := range []string{name, defaultLogoName} {
			img, err := fl.logos.Load(candidate)
			if err == nil {
				return img
			}
			if !errors.Is(err, images.ErrNotFound) {
				logrus.Warnf("Unable to load logo %s: %v", candidate, err)
			}
		}
	}
	return images.DefaultLogoImage
}

// LogoName maps an operator code to its logo file name
func LogoName(ownerIcao string) string {
	if ownerIcao == "" || ownerIcao == "N/A" {
		return defaultLogoName
	}
	return ownerIcao
}

// LogoOrigin places a logo bottom aligned and horizontally centred in the logo box
func LogoOrigin(b image.Rectangle) image.Point {
	x := (logoSize - b.Dx()) / 2
	y := logoSize - b.Dy()
	return image.Pt(x, y).Sub(b.Min)
}
