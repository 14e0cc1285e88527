package scene

import (
	"fmt"
	"github.com/jypelle/skyview/internal/srv/animator"
	"github.com/jypelle/skyview/internal/srv/screen"
	"image"
	"strings"
	"unicode"
)

const (
	flightNumberBaseline = 24
	flightNumberHeight   = 8
)

var pagerPosition = image.Pt(52, 24)

var (
	flightNumberAlphaColour   = LightPurple
	flightNumberNumericColour = LightOrange
	pagerColour               = Grey
)

// FlightDetails scrolls the flight number and pages through the flights
type FlightDetails struct {
	s        screen.Surface
	position int
}

func NewFlightDetails() *FlightDetails {
	return &FlightDetails{}
}

func (fd *FlightDetails) Tasks(s screen.Surface) []animator.Task {
	fd.s = s
	fd.position = s.Bounds().Dx()
	return []animator.Task{
		{Name: "flight_details_reset", Tag: screen.TagFlight, Run: fd.reset},
		{Name: "flight_details", Period: 1, Tag: screen.TagFlight, Run: fd.flightDetails},
	}
}

func (fd *FlightDetails) reset(count int) (bool, error) {
	fd.position = fd.s.Bounds().Dx()
	return false, nil
}

func (fd *FlightDetails) band() image.Rectangle {
	return image.Rect(0, flightNumberBaseline-flightNumberHeight, fd.s.Bounds().Dx(), flightNumberBaseline)
}

func (fd *FlightDetails) flightDetails(count int) (bool, error) {
	flights := fd.s.Flights()
	flight, ok := flights.Current()
	if !ok {
		return false, nil
	}

	fd.s.ClearRegion(fd.band())

	width := 0
	for _, ch := range FlightNumber(flight.Callsign, flight.OwnerIcao, flight.Airline) {
		colour := flightNumberAlphaColour
		if unicode.IsDigit(ch) {
			colour = flightNumberNumericColour
		}
		width += fd.s.DrawGlyphs(SmallFont, fd.position+width, flightNumberBaseline, string(ch), colour)
	}

	if flights.Len() > 1 {
		pager := fmt.Sprintf("%d/%d", flights.Index()+1, flights.Len())
		width += fd.s.DrawGlyphs(ExtraSmallFont, pagerPosition.X, pagerPosition.Y, pager, pagerColour)
	}

	fd.position--
	if fd.position+width < 0 {
		fd.position = fd.s.Bounds().Dx()
		if flights.Advance() {
			return false, fd.s.ResetScene()
		}
	}
	return false, nil
}

// FlightNumber strips the operator prefix from the callsign and prepends the airline name
func FlightNumber(callsign string, ownerIcao string, airline string) string {
	if callsign == "" || callsign == "N/A" {
		return ""
	}
	number := callsign
	if ownerIcao != "" && strings.HasPrefix(callsign, ownerIcao) {
		number = callsign[len(ownerIcao):]
	}
	if airline != "" {
		number = airline + " " + number
	}
	return number
}
