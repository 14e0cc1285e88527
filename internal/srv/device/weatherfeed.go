package device

import (
	"fmt"
	"github.com/jypelle/skyview/apimodel"
	"github.com/jypelle/skyview/internal/srv/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"os"
	"sync"
	"time"
)

// WeatherFeed reloads current conditions and forecast on a timer, retrying sooner after a failure
type WeatherFeed struct {
	lock     sync.RWMutex
	filename string
	refresh  time.Duration
	retry    time.Duration

	weather apimodel.Weather
	err     error

	refreshTimer *time.Timer

	askDone chan bool
	done    chan bool
}

func NewWeatherFeed(filename string, param config.WeatherParam) *WeatherFeed {
	refresh := time.Duration(param.RefreshSeconds) * time.Second
	if refresh <= 0 {
		refresh = 10 * time.Minute
	}
	retry := time.Duration(param.RetrySeconds) * time.Second
	if retry <= 0 {
		retry = time.Minute
	}
	return &WeatherFeed{
		filename: filename,
		refresh:  refresh,
		retry:    retry,
		err:      apimodel.ErrWeatherPending,
		askDone:  make(chan bool),
		done:     make(chan bool),
	}
}

func (d *WeatherFeed) Start() {
	logrus.Infof("Start weather feed device")

	d.refreshTimer = time.NewTimer(0)
	go func() {
		for loop := true; loop; {
			select {
			case <-d.refreshTimer.C:
				d.refreshTimer.Reset(d.load())
			case <-d.askDone:
				loop = false
			}
		}
		d.done <- true
	}()
}

func (d *WeatherFeed) Stop() {
	logrus.Infof("Stop weather feed device")
	d.refreshTimer.Stop()
	d.askDone <- true
	<-d.done
}

// load refreshes the weather and returns the delay before the next attempt
func (d *WeatherFeed) load() time.Duration {
	weather, err := LoadWeather(d.filename)

	d.lock.Lock()
	defer d.lock.Unlock()
	if err != nil {
		logrus.Warnf("Unable to load weather: %v", err)
		d.err = err
		return d.retry
	}
	d.weather = weather
	d.err = nil
	return d.refresh
}

// Weather returns the last fetched weather, apimodel.ErrWeatherPending before the first fetch
func (d *WeatherFeed) Weather() (apimodel.Weather, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.weather, d.err
}

func LoadWeather(filename string) (apimodel.Weather, error) {
	var weather apimodel.Weather
	content, err := os.ReadFile(filename)
	if err != nil {
		return weather, err
	}
	if err := yaml.Unmarshal(content, &weather); err != nil {
		return weather, fmt.Errorf("%s: %w", filename, err)
	}
	return weather, nil
}
