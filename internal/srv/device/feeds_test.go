package device

import (
	"errors"
	"github.com/jypelle/skyview/apimodel"
	"github.com/jypelle/skyview/internal/srv/config"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const fixtureFlights = `flights:
  - callsign: AAL123
    direction: N
    owner_icao: AAL
    origin: ORD
    destination: LAX
    distance: 3.5
  - callsign: UAL9
  - callsign: DLH400
`

func writeFile(t *testing.T, name, content string) string {
	filename := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestLoadFlights(t *testing.T) {
	filename := writeFile(t, "flights.yaml", fixtureFlights)

	flights, err := LoadFlights(filename, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(flights) != 3 {
		t.Fatalf("len = %d", len(flights))
	}
	if f := flights[0]; f.Callsign != "AAL123" || f.Origin != "ORD" || f.Distance == nil || *f.Distance != 3.5 {
		t.Errorf("first flight = %+v", f)
	}

	flights, _ = LoadFlights(filename, 2)
	if len(flights) != 2 {
		t.Errorf("limited len = %d", len(flights))
	}

	if _, err := LoadFlights(filepath.Join(t.TempDir(), "missing.yaml"), 5); err == nil {
		t.Error("missing file should fail")
	}
}

func TestFlightFeedFlags(t *testing.T) {
	feed := NewFlightFeed(writeFile(t, "flights.yaml", fixtureFlights), 5)
	feed.Grab()
	if !feed.Processing() {
		t.Error("grab should mark the feed as processing")
	}
	feed.grab()
	if feed.Processing() || !feed.NewData() {
		t.Fatal("loaded feed should hold new data")
	}
	data := feed.Data()
	if len(data) != 3 {
		t.Errorf("len = %d", len(data))
	}
	if feed.NewData() {
		t.Error("Data should consume the new data flag")
	}
	data[0].Callsign = "changed"
	if feed.Data()[0].Callsign != "AAL123" {
		t.Error("Data should return a copy")
	}
}

func TestFlightFeedWorker(t *testing.T) {
	feed := NewFlightFeed(writeFile(t, "flights.yaml", fixtureFlights), 5)
	feed.Start()
	defer feed.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for !feed.NewData() {
		if time.Now().After(deadline) {
			t.Fatal("worker never loaded the flights")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWeatherFeed(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "weather.yaml")
	feed := NewWeatherFeed(filename, config.WeatherParam{RefreshSeconds: 600, RetrySeconds: 60})

	if _, err := feed.Weather(); !errors.Is(err, apimodel.ErrWeatherPending) {
		t.Errorf("before fetch err = %v", err)
	}

	if delay := feed.load(); delay != time.Minute {
		t.Errorf("retry delay = %v", delay)
	}
	if _, err := feed.Weather(); err == nil || errors.Is(err, apimodel.ErrWeatherPending) {
		t.Errorf("failed fetch err = %v", err)
	}

	content := "temperature: 21.5\nhumidity: 40\nmoon_phase: 3\nforecast:\n  - weather_code: rain\n    temperature_min: 3\n"
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if delay := feed.load(); delay != 10*time.Minute {
		t.Errorf("refresh delay = %v", delay)
	}
	weather, err := feed.Weather()
	if err != nil {
		t.Fatal(err)
	}
	if *weather.Temperature != 21.5 || *weather.MoonPhase != 3 || len(weather.Forecast) != 1 {
		t.Errorf("weather = %+v", weather)
	}
}

func TestWeatherFeedDefaults(t *testing.T) {
	feed := NewWeatherFeed("weather.yaml", config.WeatherParam{})
	if feed.refresh != 10*time.Minute || feed.retry != time.Minute {
		t.Errorf("defaults = %v %v", feed.refresh, feed.retry)
	}
}

func TestNetProbe(t *testing.T) {
	folder := t.TempDir()
	probe := NewNetProbe(config.NetworkParam{Enabled: true, Host: "example.org"}, folder)

	var pingErr error
	probe.pinger = func(host string) error { return pingErr }

	if got := probe.Check(); got != apimodel.NetStatusOk {
		t.Errorf("reachable = %s", got)
	}

	pingErr = errors.New("timeout")
	if got := probe.Check(); got != apimodel.NetStatusNoNet {
		t.Errorf("unreachable = %s", got)
	}

	pingErr = nil
	for _, status := range []apimodel.NetStatus{apimodel.NetStatusApiDown, apimodel.NetStatusNoWifi} {
		if err := os.WriteFile(FlagFilename(folder, status), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if got := probe.Check(); got != apimodel.NetStatusNoWifi {
		t.Errorf("forced = %s, want the first flag in order", got)
	}
	if probe.Status() != apimodel.NetStatusNoWifi {
		t.Error("Status should return the last check")
	}
}

func TestFlagFilename(t *testing.T) {
	if got := FlagFilename("flags", apimodel.NetStatusNoSsid); got != filepath.Join("flags", "force_net_no_ssid.on") {
		t.Errorf("FlagFilename = %q", got)
	}
}
