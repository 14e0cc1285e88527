package apimodel

// Flight is one aircraft currently inside the watched zone.
// Timestamps are unix seconds, 0 when unknown.
type Flight struct {
	Callsign            string   `yaml:"callsign" json:"callsign"`
	Direction           string   `yaml:"direction" json:"direction"`
	OwnerIcao           string   `yaml:"owner_icao" json:"owner_icao"`
	OwnerIata           string   `yaml:"owner_iata" json:"owner_iata"`
	Airline             string   `yaml:"airline" json:"airline"`
	Plane               string   `yaml:"plane" json:"plane"`
	Origin              string   `yaml:"origin" json:"origin"`
	Destination         string   `yaml:"destination" json:"destination"`
	Distance            *float64 `yaml:"distance" json:"distance"`
	DistanceOrigin      float64  `yaml:"distance_origin" json:"distance_origin"`
	DistanceDestination float64  `yaml:"distance_destination" json:"distance_destination"`

	TimeScheduledDeparture float64 `yaml:"time_scheduled_departure" json:"time_scheduled_departure"`
	TimeRealDeparture      float64 `yaml:"time_real_departure" json:"time_real_departure"`
	TimeScheduledArrival   float64 `yaml:"time_scheduled_arrival" json:"time_scheduled_arrival"`
	TimeEstimatedArrival   float64 `yaml:"time_estimated_arrival" json:"time_estimated_arrival"`
}

type FlightId struct {
	Callsign  string
	Direction string
}

func (f Flight) Id() FlightId {
	return FlightId{Callsign: f.Callsign, Direction: f.Direction}
}

// SameFlights reports whether both lists hold the same set of (callsign, direction)
func SameFlights(a, b []Flight) bool {
	setA := make(map[FlightId]struct{}, len(a))
	for _, f := range a {
		setA[f.Id()] = struct{}{}
	}
	setB := make(map[FlightId]struct{}, len(b))
	for _, f := range b {
		setB[f.Id()] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for id := range setA {
		if _, ok := setB[id]; !ok {
			return false
		}
	}
	return true
}
