package apimodel

type NetStatus string

const (
	NetStatusOk      NetStatus = "ok"
	NetStatusNoSsid  NetStatus = "no_ssid"
	NetStatusNoWifi  NetStatus = "no_wifi"
	NetStatusNoNet   NetStatus = "no_net"
	NetStatusApiDown NetStatus = "api_down"
)

// Label is the short text shown on the matrix for a failing status
func (s NetStatus) Label() string {
	switch s {
	case NetStatusNoSsid:
		return "NO SSID"
	case NetStatusNoWifi:
		return "NO WIFI"
	case NetStatusNoNet:
		return "NO NET"
	case NetStatusApiDown:
		return "API DOWN"
	default:
		return "NET ERROR"
	}
}
