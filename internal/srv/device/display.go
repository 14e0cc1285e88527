package device

import (
	"fmt"
	"github.com/jypelle/skyview/internal/srv/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	"image"
	"image/color"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
	"sync"
)

const (
	OUTPUT_OLED = "oled"
	OUTPUT_NONE = "none"
)

// Display pushes presented frames to the oled panel, or to a desktop window in simulation mode
type Display struct {
	oledLock    sync.Mutex
	oledDisplay *ssd1306.Dev
	i2cBus      i2c.BusCloser

	lock           sync.RWMutex
	param          config.DisplayParam
	simulationMode bool
	brightness     int
	lastImg        image.Image

	sim simulationWindow

	askDone chan bool
	askImg  chan image.Image
	done    chan bool
}

func NewDisplay(param config.DisplayParam, simulationMode bool) *Display {
	if !simulationMode && param.Output == OUTPUT_OLED {
		if _, err := host.Init(); err != nil {
			logrus.Fatalf("Unable to initialize periph host: %v", err)
		}
	}

	device := Display{
		param:          param,
		simulationMode: simulationMode,
		brightness:     100,
		askDone:        make(chan bool),
		askImg:         make(chan image.Image),
		done:           make(chan bool),
	}

	return &device
}

func (d *Display) hardware() bool {
	return !d.simulationMode && d.param.Output == OUTPUT_OLED
}

func (d *Display) Start() {
	logrus.Infof("Start display device")

	if d.simulationMode {
		d.sim.start(d.param, d.image)
		return
	}
	if !d.hardware() {
		return
	}

	var err error
	d.i2cBus, err = i2creg.Open(d.param.I2cBus)
	if err != nil {
		logrus.Fatalf("Unable to open i2c bus: %v\n", err)
	}

	opts := ssd1306.DefaultOpts
	opts.W = d.param.Width * d.scale()
	opts.H = d.param.Height * d.scale()
	d.oledDisplay, err = ssd1306.NewI2C(d.i2cBus, &opts)
	if err != nil {
		logrus.Fatalf("Unable to initialize oled display: %v\n", err)
	}

	go func() {
		for loop := true; loop; {
			select {
			case <-d.askDone:
				loop = false
			case newImg := <-d.askImg:
				d.oledLock.Lock()
				if err := d.oledDisplay.Draw(d.oledDisplay.Bounds(), newImg, image.Point{}); err != nil {
					logrus.Warnf("Unable to draw on oled display: %v", err)
				}
				d.oledLock.Unlock()
			}
		}
		d.oledLock.Lock()
		d.oledDisplay.Halt()
		d.i2cBus.Close()
		d.oledLock.Unlock()
		d.done <- true
	}()
}

func (d *Display) Stop() {
	logrus.Infof("Stop display device")

	if d.simulationMode {
		d.sim.close()
	} else if d.hardware() {
		d.askDone <- true
		<-d.done
	}
}

func (d *Display) scale() int {
	if d.param.Scale < 1 {
		return 1
	}
	return d.param.Scale
}

// Show hands a presented frame to the panel
func (d *Display) Show(img image.Image) error {
	scaled := ScaleImage(img, d.scale())

	d.lock.Lock()
	d.lastImg = scaled
	brightness := d.brightness
	d.lock.Unlock()

	if d.simulationMode {
		d.sim.invalidate()
	} else if d.hardware() && brightness > 0 {
		d.askImg <- scaled
	}
	return nil
}

// SetBrightness maps 0..100 to the panel contrast, 0 halting the panel
func (d *Display) SetBrightness(level int) error {
	if level < 0 || level > 100 {
		return fmt.Errorf("brightness %d out of range", level)
	}
	d.lock.Lock()
	d.brightness = level
	lastImg := d.lastImg
	d.lock.Unlock()

	if d.simulationMode {
		d.sim.invalidate()
		return nil
	}
	if !d.hardware() {
		return nil
	}

	d.oledLock.Lock()
	var err error
	if level == 0 {
		err = d.oledDisplay.Halt()
	} else {
		// SetContrast also wakes the panel up after a Halt
		err = d.oledDisplay.SetContrast(Contrast(level))
	}
	d.oledLock.Unlock()
	if err != nil {
		return fmt.Errorf("oled brightness: %w", err)
	}

	if level > 0 && lastImg != nil {
		d.askImg <- lastImg
	}
	return nil
}

func (d *Display) Brightness() int {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.brightness
}

// image returns the last frame dimmed to the current brightness
func (d *Display) image() image.Image {
	d.lock.RLock()
	lastImg := d.lastImg
	brightness := d.brightness
	d.lock.RUnlock()

	if lastImg == nil {
		return image.NewRGBA(image.Rect(0, 0, d.param.Width*d.scale(), d.param.Height*d.scale()))
	}
	return Dim(lastImg, brightness)
}

func Contrast(level int) byte {
	if level <= 0 {
		return 0
	}
	if level >= 100 {
		return 0xFF
	}
	return byte(level * 0xFF / 100)
}

// ScaleImage enlarges the canvas to the panel resolution, keeping hard pixel edges
func ScaleImage(img image.Image, scale int) image.Image {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func Dim(img image.Image, brightness int) image.Image {
	if brightness >= 100 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			dst.Set(x, y, color.RGBA64{
				R: uint16(r * uint32(brightness) / 100),
				G: uint16(g * uint32(brightness) / 100),
				B: uint16(bl * uint32(brightness) / 100),
				A: uint16(a),
			})
		}
	}
	return dst
}
