//go:build amd64 && cgo

package device

import (
	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"github.com/jypelle/skyview/internal/srv/config"
	"github.com/sirupsen/logrus"
	"image"
)

// simulationWindow renders the panel on the desktop
type simulationWindow struct {
	window *app.Window
	source func() image.Image
}

func (s *simulationWindow) start(param config.DisplayParam, source func() image.Image) {
	s.source = source
	w := float32(param.Width * 4)
	h := float32(param.Height * 4)
	s.window = app.NewWindow(
		app.Title("skyview"),
		app.Size(unit.Px(w), unit.Px(h)),
		app.MinSize(unit.Px(float32(param.Width)), unit.Px(float32(param.Height))),
	)
	go func() {
		if err := s.loop(); err != nil {
			logrus.Fatalf("Simulation window failed: %v", err)
		}
	}()
	go app.Main()
}

func (s *simulationWindow) invalidate() {
	if s.window != nil {
		s.window.Invalidate()
	}
}

func (s *simulationWindow) close() {
	if s.window != nil {
		s.window.Close()
	}
}

func (s *simulationWindow) loop() error {
	var ops op.Ops
	for {
		e := <-s.window.Events()
		switch e := e.(type) {
		case system.DestroyEvent:
			return e.Err
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)
			img := widget.Image{Src: paint.NewImageOp(s.source()), Fit: widget.Contain}
			img.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}
