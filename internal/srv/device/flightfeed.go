package device

import (
	"fmt"
	"github.com/jypelle/skyview/apimodel"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"os"
	"sync"
)

type flightFile struct {
	Flights []apimodel.Flight `yaml:"flights"`
}

// FlightFeed loads the flights overhead in a background worker. The screen polls it.
type FlightFeed struct {
	lock       sync.RWMutex
	filename   string
	maxFlights int

	processing bool
	newData    bool
	data       []apimodel.Flight

	askGrab chan bool
	askDone chan bool
	done    chan bool
}

func NewFlightFeed(filename string, maxFlights int) *FlightFeed {
	return &FlightFeed{
		filename:   filename,
		maxFlights: maxFlights,
		askGrab:    make(chan bool, 1),
		askDone:    make(chan bool),
		done:       make(chan bool),
	}
}

func (d *FlightFeed) Start() {
	logrus.Infof("Start flight feed device")

	go func() {
		for loop := true; loop; {
			select {
			case <-d.askGrab:
				d.grab()
			case <-d.askDone:
				loop = false
			}
		}
		d.done <- true
	}()

	d.Grab()
}

func (d *FlightFeed) Stop() {
	logrus.Infof("Stop flight feed device")
	d.askDone <- true
	<-d.done
}

// Grab asks the worker for a refresh. A refresh already queued absorbs the request.
func (d *FlightFeed) Grab() {
	d.lock.Lock()
	d.processing = true
	d.lock.Unlock()

	select {
	case d.askGrab <- true:
	default:
	}
}

func (d *FlightFeed) grab() {
	flights, err := LoadFlights(d.filename, d.maxFlights)

	d.lock.Lock()
	defer d.lock.Unlock()
	d.processing = false
	if err != nil {
		logrus.Warnf("Unable to load flights: %v", err)
		return
	}
	logrus.Debugf("%d flights loaded", len(flights))
	d.data = flights
	d.newData = true
}

func (d *FlightFeed) NewData() bool {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.newData
}

func (d *FlightFeed) Processing() bool {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.processing
}

// Data returns the last loaded flights and clears the new data flag
func (d *FlightFeed) Data() []apimodel.Flight {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.newData = false
	data := make([]apimodel.Flight, len(d.data))
	copy(data, d.data)
	return data
}

// LoadFlights reads a flight list file, keeping at most maxFlights entries
func LoadFlights(filename string, maxFlights int) ([]apimodel.Flight, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var file flightFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	flights := file.Flights
	if maxFlights > 0 && len(flights) > maxFlights {
		flights = flights[:maxFlights]
	}
	return flights, nil
}
