//go:build !amd64 || !cgo

package device

import (
	"github.com/jypelle/skyview/internal/srv/config"
	"github.com/sirupsen/logrus"
	"image"
)

type simulationWindow struct{}

func (s *simulationWindow) start(param config.DisplayParam, source func() image.Image) {
	logrus.Warnf("Simulation window is only available on amd64")
}

func (s *simulationWindow) invalidate() {
}

func (s *simulationWindow) close() {
}
