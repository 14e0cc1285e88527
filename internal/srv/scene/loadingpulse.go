package scene

import (
	"github.com/jypelle/skyview/internal/srv/animator"
	"github.com/jypelle/skyview/internal/srv/screen"
	"image"
	"image/color"
)

const pulseSteps = 10

var (
	pulsePosition = image.Pt(63, 0)
	pulseColour   = Grey
)

// LoadingPulse blinks a corner pixel while the flight feed is fetching
type LoadingPulse struct {
	s   screen.Surface
	lit bool
}

func NewLoadingPulse() *LoadingPulse {
	return &LoadingPulse{}
}

func (lp *LoadingPulse) Tasks(s screen.Surface) []animator.Task {
	lp.s = s
	return []animator.Task{
		{Name: "loading_pulse", Period: 2, Tag: screen.TagPulse, Run: lp.pulse},
	}
}

func (lp *LoadingPulse) pulse(count int) (bool, error) {
	if !lp.s.Processing() {
		if lp.lit {
			lp.s.SetPixel(pulsePosition.X, pulsePosition.Y, Black)
			lp.lit = false
		}
		return true, nil
	}
	lp.s.SetPixel(pulsePosition.X, pulsePosition.Y, PulseColour(count))
	lp.lit = true
	return count >= pulseSteps-1, nil
}

// PulseColour fades the pulse pixel out over the steps
func PulseColour(count int) color.RGBA {
	return scale(pulseColour, (1-float64(count%pulseSteps)/pulseSteps)/2)
}
