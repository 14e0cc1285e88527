package scene

import (
	"fmt"
	"github.com/jypelle/skyview/apimodel"
	"github.com/jypelle/skyview/internal/srv/animator"
	"github.com/jypelle/skyview/internal/srv/screen"
	"image"
	"image/color"
	"unicode"
)

var (
	journeyPosition    = image.Pt(17, 0)
	distancePosition   = image.Pt(17, 15)
	arrowPointPosition = image.Pt(42, 5)
)

const (
	journeyHeight  = 10
	journeyWidth   = 48
	journeySpacing = 5
	distanceWidth  = 48
	arrowWidth     = 5
	arrowHeight    = 8
)

var (
	journeyRegion  = image.Rect(journeyPosition.X, journeyPosition.Y, journeyPosition.X+journeyWidth, journeyPosition.Y+journeyHeight)
	distanceRegion = image.Rect(distancePosition.X, distancePosition.Y-6, distancePosition.X+distanceWidth, 16)
	arrowRegion    = image.Rect(arrowPointPosition.X-arrowWidth, arrowPointPosition.Y-arrowHeight/2, arrowPointPosition.X+1, arrowPointPosition.Y+arrowHeight/2+1)
)

var (
	arrowColour               = Grey
	distanceOriginColour      = LightGreen
	distanceDestinationColour = LightLightRed
	distanceColour            = LightTeal
	distanceMeasureColour     = LightDarkTeal
)

type journeyKey struct {
	index               int
	origin              string
	destination         string
	distanceOrigin      float64
	distanceDestination float64
	realDeparture       float64
	scheduledDeparture  float64
	estimatedArrival    float64
	scheduledArrival    float64
}

// Journey shows origin and destination airports coloured by delay, with the distance travelled
type Journey struct {
	selectedCode string
	blankFiller  string
	units        string

	s       screen.Surface
	cursor  screen.TokenCursor
	lastKey *journeyKey
}

func NewJourney(selectedCode string, blankFiller string, distanceUnits string) *Journey {
	return &Journey{
		selectedCode: selectedCode,
		blankFiller:  blankFiller,
		units:        JourneyUnits(distanceUnits),
	}
}

func (j *Journey) Tasks(s screen.Surface) []animator.Task {
	j.s = s
	return []animator.Task{
		{Name: "journey_reset", Tag: screen.TagFlight, Run: j.reset},
		{Name: "journey", Period: 1, Tag: screen.TagFlight, Run: j.journey},
	}
}

func (j *Journey) clear() {
	j.s.ClearRegion(journeyRegion)
	j.s.ClearRegion(distanceRegion)
	j.s.ClearRegion(arrowRegion)
}

func (j *Journey) reset(count int) (bool, error) {
	j.lastKey = nil
	j.cursor.Mark(j.s.ClearToken())
	j.clear()
	return false, nil
}

func (j *Journey) journey(count int) (bool, error) {
	flights := j.s.Flights()
	flight, ok := flights.Current()
	if !ok {
		return false, nil
	}

	key := journeyKey{
		index:               flights.Index(),
		origin:              flight.Origin,
		destination:         flight.Destination,
		distanceOrigin:      flight.DistanceOrigin,
		distanceDestination: flight.DistanceDestination,
		realDeparture:       flight.TimeRealDeparture,
		scheduledDeparture:  flight.TimeScheduledDeparture,
		estimatedArrival:    flight.TimeEstimatedArrival,
		scheduledArrival:    flight.TimeScheduledArrival,
	}
	stale := j.cursor.Stale(j.s.ClearToken())
	if !stale && !j.s.RedrawAll() && j.lastKey != nil && *j.lastKey == key {
		return false, nil
	}
	j.cursor.Mark(j.s.ClearToken())
	j.lastKey = &key

	j.clear()
	j.drawAirports(flight)
	j.drawDistances(flight)
	j.drawArrow(flight)
	return false, nil
}

func (j *Journey) drawAirports(flight apimodel.Flight) {
	originColour := DelayColour(DelayMinutes(flight.TimeRealDeparture, flight.TimeScheduledDeparture))
	destinationColour := DelayColour(DelayMinutes(flight.TimeEstimatedArrival, flight.TimeScheduledArrival))

	origin := flight.Origin
	if origin == "" {
		origin = j.blankFiller
	}
	destination := flight.Destination
	if destination == "" {
		destination = j.blankFiller
	}

	originWidth := j.drawAirport(journeyPosition.X, origin, originColour, flight.Origin == j.selectedCode)
	j.drawAirport(journeyPosition.X+originWidth+journeySpacing+1, destination, destinationColour, flight.Destination == j.selectedCode)
}

// drawAirport writes an airport code, the selected one in bold
func (j *Journey) drawAirport(x int, code string, colour color.RGBA, bold bool) int {
	width := j.s.DrawGlyphs(SmallFont, x, journeyHeight, code, colour)
	if bold {
		j.s.DrawGlyphs(SmallFont, x+1, journeyHeight, code, colour)
		width++
	}
	return width
}

func (j *Journey) drawDistances(flight apimodel.Flight) {
	originText := fmt.Sprintf("%.0f%s", flight.DistanceOrigin, j.units)
	destinationText := fmt.Sprintf("%.0f%s", flight.DistanceDestination, j.units)

	const charWidth = 4
	centerX := (16 + 64) / 2
	halfWidth := (64 - 16) / 2
	originX := centerX - halfWidth + (halfWidth-len(originText)*charWidth)/2
	destinationX := centerX + (halfWidth-len(destinationText)*charWidth)/2

	j.drawDistance(originX, originText)
	j.drawDistance(destinationX, destinationText)
}

func (j *Journey) drawDistance(x int, text string) {
	for _, ch := range text {
		colour := distanceMeasureColour
		if unicode.IsDigit(ch) {
			colour = distanceColour
		}
		x += j.s.DrawGlyphs(ExtraSmallFont, x, distancePosition.Y, string(ch), colour)
	}
}

func (j *Journey) drawArrow(flight apimodel.Flight) {
	x := arrowPointPosition.X - arrowWidth + 1
	y1 := arrowPointPosition.Y - arrowHeight/2
	y2 := arrowPointPosition.Y + arrowHeight/2

	originPixels := ArrowOriginPixels(flight.DistanceOrigin, flight.DistanceDestination)
	for i := 0; i < arrowWidth; i++ {
		colour := arrowColour
		if originPixels >= 0 {
			colour = distanceDestinationColour
			if i < originPixels {
				colour = distanceOriginColour
			}
		}
		j.s.DrawLine(x, y1, x, y2, colour)
		x++
		y1++
		y2--
	}
}

// ArrowOriginPixels returns how many arrow columns show the travelled part, -1 when distances are unknown
func ArrowOriginPixels(distanceOrigin float64, distanceDestination float64) int {
	o := int(distanceOrigin)
	d := int(distanceDestination)
	if o <= 0 || d <= 0 {
		return -1
	}
	ratio := float64(o) / float64(o+d)
	switch {
	case ratio <= 0.10:
		return 0
	case ratio <= 0.30:
		return 1
	case ratio <= 0.50:
		return 2
	case ratio <= 0.70:
		return 3
	case ratio <= 0.90:
		return 4
	default:
		return 5
	}
}

// DelayMinutes returns the delay between two unix timestamps, nil when one is unknown
func DelayMinutes(actual float64, scheduled float64) *float64 {
	if actual == 0 || scheduled == 0 {
		return nil
	}
	minutes := (actual - scheduled) / 60
	return &minutes
}

func DelayColour(minutes *float64) color.RGBA {
	if minutes == nil {
		return LightGrey
	}
	switch m := *minutes; {
	case m <= 20:
		return LightMidGreen
	case m <= 40:
		return LightYellow
	case m <= 60:
		return LightMidOrange
	case m <= 240:
		return LightRed
	case m <= 480:
		return LightPurple
	default:
		return LightDarkBlue
	}
}

func JourneyUnits(distanceUnits string) string {
	switch distanceUnits {
	case "imperial":
		return "mi"
	case "metric":
		return "km"
	default:
		return "u"
	}
}
