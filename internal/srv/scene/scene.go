// Package scene holds the widgets drawn on the flight display.
// Each widget owns a screen region and registers its tasks on the screen controller.
package scene

import (
	"github.com/jypelle/skyview/apimodel"
	"github.com/jypelle/skyview/internal/srv/animator"
	"github.com/jypelle/skyview/internal/srv/screen"
	"image"
)

// WeatherSource returns the last known weather, apimodel.ErrWeatherPending before the first fetch
type WeatherSource interface {
	Weather() (apimodel.Weather, error)
}

// ImageSource finds logos and icons by name
type ImageSource interface {
	Load(name string) (image.Image, error)
}

// repaintTask redraws the cached state of a slow widget on forced redraw ticks
func repaintTask(name string, tag string, s screen.Surface, paint func()) animator.Task {
	return animator.Task{
		Name:   name,
		Period: 1,
		Tag:    tag,
		Run: func(count int) (bool, error) {
			if s.RedrawAll() {
				paint()
			}
			return false, nil
		},
	}
}
