package device

import (
	"errors"
	"github.com/go-ping/ping"
	"github.com/jypelle/skyview/apimodel"
	"github.com/jypelle/skyview/internal/srv/config"
	"github.com/jypelle/skyview/internal/tool"
	"github.com/sirupsen/logrus"
	"path/filepath"
	"sync"
	"time"
)

// forced statuses, checked in this order
var netStatusFlags = []apimodel.NetStatus{
	apimodel.NetStatusNoSsid,
	apimodel.NetStatusNoWifi,
	apimodel.NetStatusNoNet,
	apimodel.NetStatusApiDown,
}

var errNoReply = errors.New("no echo reply")

type Pinger func(host string) error

// NetProbe watches connectivity. Flag files in the flags folder force a status.
type NetProbe struct {
	lock        sync.RWMutex
	param       config.NetworkParam
	flagsFolder string
	pinger      Pinger

	status apimodel.NetStatus

	checkTicker *time.Ticker

	askDone chan bool
	done    chan bool
}

func NewNetProbe(param config.NetworkParam, flagsFolder string) *NetProbe {
	return &NetProbe{
		param:       param,
		flagsFolder: flagsFolder,
		pinger:      PingHost,
		status:      apimodel.NetStatusOk,
		askDone:     make(chan bool),
		done:        make(chan bool),
	}
}

func (d *NetProbe) Start() {
	logrus.Infof("Start network probe device")

	if !d.param.Enabled {
		return
	}

	period := time.Duration(d.param.CheckSeconds) * time.Second
	if period <= 0 {
		period = 30 * time.Second
	}
	d.checkTicker = time.NewTicker(period)
	go func() {
		d.Check()
		for loop := true; loop; {
			select {
			case <-d.checkTicker.C:
				d.Check()
			case <-d.askDone:
				loop = false
			}
		}
		d.done <- true
	}()
}

func (d *NetProbe) Stop() {
	logrus.Infof("Stop network probe device")
	if d.checkTicker == nil {
		return
	}
	d.checkTicker.Stop()
	d.askDone <- true
	<-d.done
}

// Check refreshes the status and returns it
func (d *NetProbe) Check() apimodel.NetStatus {
	status := d.probe()

	d.lock.Lock()
	defer d.lock.Unlock()
	if status != d.status {
		logrus.Infof("Network status: %s", status)
	}
	d.status = status
	return status
}

func (d *NetProbe) probe() apimodel.NetStatus {
	for _, status := range netStatusFlags {
		exists, err := tool.IsFileExists(FlagFilename(d.flagsFolder, status))
		if err != nil {
			logrus.Warnf("Unable to check network flag %s: %v", status, err)
			continue
		}
		if exists {
			return status
		}
	}

	if d.param.Host == "" {
		return apimodel.NetStatusOk
	}
	if err := d.pinger(d.param.Host); err != nil {
		logrus.Debugf("Ping %s failed: %v", d.param.Host, err)
		return apimodel.NetStatusNoNet
	}
	return apimodel.NetStatusOk
}

func (d *NetProbe) Status() apimodel.NetStatus {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.status
}

func FlagFilename(folder string, status apimodel.NetStatus) string {
	return filepath.Join(folder, "force_net_"+string(status)+".on")
}

// PingHost sends one ICMP echo and fails when no reply comes back
func PingHost(host string) error {
	pinger, err := ping.NewPinger(host)
	if err != nil {
		return err
	}
	pinger.SetPrivileged(true)
	pinger.Count = 1
	pinger.Timeout = 2 * time.Second

	if err = pinger.Run(); err != nil {
		return err
	}
	if pinger.Statistics().PacketsRecv == 0 {
		return errNoReply
	}
	return nil
}
