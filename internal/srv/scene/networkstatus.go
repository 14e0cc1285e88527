package scene

import (
	"github.com/jypelle/skyview/apimodel"
	"github.com/jypelle/skyview/internal/srv/animator"
	"github.com/jypelle/skyview/internal/srv/screen"
	"image"
)

const (
	netIconSize   = 9
	netIconY      = 6
	netLabelY     = 20
	netLabelWidth = 4
)

var netColour = Red

// netIcon is a crossed out antenna
var netIcon = []image.Point{
	{4, 0}, {4, 1}, {4, 2}, {4, 3}, {4, 4}, {4, 5}, {4, 6}, {4, 7}, {4, 8},
	{2, 1}, {6, 1}, {1, 2}, {7, 2}, {2, 3}, {6, 3},
	{0, 0}, {1, 1}, {2, 2}, {3, 3}, {5, 5}, {6, 6}, {7, 7}, {8, 8},
	{3, 8}, {5, 8},
}

// NetworkStatus replaces everything with an error banner while the network is down
type NetworkStatus struct {
	net screen.NetSource

	s      screen.Surface
	cursor screen.TokenCursor
	status apimodel.NetStatus
}

func NewNetworkStatus(net screen.NetSource) *NetworkStatus {
	return &NetworkStatus{net: net}
}

func (ns *NetworkStatus) Tasks(s screen.Surface) []animator.Task {
	ns.s = s
	return []animator.Task{
		{Name: "network_status_reset", Tag: screen.TagNetStatus, Run: ns.reset},
		{Name: "network_status", Period: 1, Tag: screen.TagNetStatus, Run: ns.networkStatus},
	}
}

func (ns *NetworkStatus) reset(count int) (bool, error) {
	ns.status = ""
	ns.cursor.Invalidate()
	return false, nil
}

func (ns *NetworkStatus) networkStatus(count int) (bool, error) {
	if ns.net == nil {
		return false, nil
	}
	status := ns.net.Status()
	stale := ns.cursor.Stale(ns.s.ClearToken())
	if !stale && !ns.s.RedrawAll() && status == ns.status {
		return false, nil
	}
	ns.cursor.Mark(ns.s.ClearToken())
	ns.status = status

	b := ns.s.Bounds()
	ns.s.ClearRegion(b)
	if status == apimodel.NetStatusOk {
		return false, nil
	}

	origin := image.Pt((b.Dx()-netIconSize)/2, netIconY)
	for _, p := range netIcon {
		ns.s.SetPixel(origin.X+p.X, origin.Y+p.Y, netColour)
	}
	label := status.Label()
	x := (b.Dx() - len(label)*netLabelWidth) / 2
	ns.s.DrawGlyphs(ExtraSmallFont, x, netLabelY+netLabelWidth, label, netColour)
	return false, nil
}
