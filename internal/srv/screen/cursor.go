package screen

import "github.com/jypelle/skyview/apimodel"

// TokenCursor remembers the last clear token a widget drew against
type TokenCursor struct {
	token int
	valid bool
}

// Stale reports whether the canvas was wiped since the last Mark
func (tc *TokenCursor) Stale(token int) bool {
	return !tc.valid || tc.token != token
}

func (tc *TokenCursor) Mark(token int) {
	tc.token = token
	tc.valid = true
}

func (tc *TokenCursor) Invalidate() {
	tc.valid = false
}

// FlightCursor is the flight list shared by the flight widgets
type FlightCursor struct {
	flights   []apimodel.Flight
	index     int
	allLooped bool
}

func (fc *FlightCursor) Current() (apimodel.Flight, bool) {
	if fc.index < 0 || fc.index >= len(fc.flights) {
		return apimodel.Flight{}, false
	}
	return fc.flights[fc.index], true
}

func (fc *FlightCursor) Len() int {
	return len(fc.flights)
}

func (fc *FlightCursor) Index() int {
	return fc.index
}

func (fc *FlightCursor) AllLooped() bool {
	return fc.allLooped
}

func (fc *FlightCursor) Flights() []apimodel.Flight {
	return fc.flights
}

// Advance moves to the next flight and reports whether the index changed
func (fc *FlightCursor) Advance() bool {
	if len(fc.flights) <= 1 {
		return false
	}
	fc.index = (fc.index + 1) % len(fc.flights)
	fc.allLooped = fc.allLooped || fc.index == 0
	return true
}

func (fc *FlightCursor) Replace(flights []apimodel.Flight) {
	fc.flights = flights
	fc.Rewind()
}

func (fc *FlightCursor) Rewind() {
	fc.index = 0
	fc.allLooped = false
}
