package scene

import (
	"fmt"
	"github.com/jypelle/skyview/apimodel"
	"github.com/jypelle/skyview/internal/srv/animator"
	"github.com/jypelle/skyview/internal/srv/screen"
	"image"
)

const (
	planeBaseline   = 31
	planeTextHeight = 8
)

var (
	planeColour         = LightMidBlue
	planeDistanceColour = LightPink
)

// PlaneDetails scrolls the aircraft type and distance of the current flight on the bottom band
type PlaneDetails struct {
	imperial bool

	s        screen.Surface
	position int
	index    int
}

func NewPlaneDetails(imperial bool) *PlaneDetails {
	return &PlaneDetails{imperial: imperial}
}

func (pd *PlaneDetails) Tasks(s screen.Surface) []animator.Task {
	pd.s = s
	pd.position = s.Bounds().Dx()
	// runs after the other flight widgets so nothing overpaints the bottom band
	return []animator.Task{
		{Name: "plane_details_reset", Tag: screen.TagFlight, Order: 10, Run: pd.reset},
		{Name: "plane_details", Period: 1, Tag: screen.TagFlight, Order: 10, Run: pd.planeDetails},
	}
}

func (pd *PlaneDetails) band() image.Rectangle {
	b := pd.s.Bounds()
	return image.Rect(0, planeBaseline-planeTextHeight, b.Dx(), b.Dy())
}

func (pd *PlaneDetails) reset(count int) (bool, error) {
	pd.position = pd.s.Bounds().Dx()
	pd.index = pd.s.Flights().Index()
	pd.s.ClearRegion(pd.band())
	return false, nil
}

func (pd *PlaneDetails) planeDetails(count int) (bool, error) {
	flights := pd.s.Flights()
	flight, ok := flights.Current()
	if !ok {
		return false, nil
	}
	if flights.Index() != pd.index {
		pd.index = flights.Index()
		pd.position = pd.s.Bounds().Dx()
	}

	planeText, distanceText := PlaneTexts(flight, pd.imperial)

	pd.s.ClearRegion(pd.band())
	width := pd.s.DrawGlyphs(SmallFont, pd.position, planeBaseline, planeText, planeColour)
	width += pd.s.DrawGlyphs(SmallFont, pd.position+width, planeBaseline, distanceText, planeDistanceColour)

	pd.position--
	if pd.position+width < 0 {
		pd.position = pd.s.Bounds().Dx()
	}
	return false, nil
}

// PlaneTexts returns the aircraft label and the distance label of a flight
func PlaneTexts(flight apimodel.Flight, imperial bool) (string, string) {
	units := "KM"
	if imperial {
		units = "mi"
	}
	planeText := ""
	if flight.Plane != "" {
		planeText = flight.Plane + " "
	}
	distanceText := "--" + units
	if flight.Distance != nil {
		distanceText = fmt.Sprintf("%.2f%s", *flight.Distance, units)
	}
	if flight.Direction != "" {
		distanceText += " " + flight.Direction
	}
	return planeText, distanceText
}
