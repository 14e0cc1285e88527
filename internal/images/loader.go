package images

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Extensions tried in order when looking up an image by name
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg"}

var ErrNotFound = errors.New("image not found")

// Loader finds images by name in a folder and keeps them resized to fit a square box
type Loader struct {
	lock   sync.Mutex
	folder string
	size   int
	cache  map[string]image.Image
}

func NewLoader(folder string, size int) *Loader {
	return &Loader{
		folder: folder,
		size:   size,
		cache:  make(map[string]image.Image),
	}
}

// Load returns the named image, ErrNotFound when no file matches. Misses are cached too.
func (l *Loader) Load(name string) (image.Image, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, ErrNotFound
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	if img, ok := l.cache[name]; ok {
		if img == nil {
			return nil, ErrNotFound
		}
		return img, nil
	}

	for _, ext := range Extensions {
		filePath := filepath.Join(l.folder, name+ext)
		if _, err := os.Stat(filePath); err != nil {
			continue
		}
		img, err := DecodeFile(filePath, l.size)
		if err != nil {
			logrus.Warnf("Unable to decode image %s: %v", filePath, err)
			continue
		}
		img = Thumbnail(img, l.size)
		l.cache[name] = img
		return img, nil
	}

	l.cache[name] = nil
	return nil, ErrNotFound
}

// DecodeFile decodes a png, jpeg, gif or svg file. Svg files are rendered size pixels wide.
func DecodeFile(filePath string, size int) (image.Image, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".png":
		return png.Decode(f)
	case ".jpg", ".jpeg":
		return jpeg.Decode(f)
	case ".gif":
		return gif.Decode(f)
	case ".svg":
		return DecodeSvg(f, size, size)
	default:
		return nil, fmt.Errorf("unsupported image format %s", ext)
	}
}

// DecodeSvg renders an svg document on a transparent w x h canvas
func DecodeSvg(r io.Reader, w, h int) (*image.RGBA, error) {
	svgData, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 {
		w = int(icon.ViewBox.W)
		h = int(icon.ViewBox.H)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg without size")
	}

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.RGBA{0, 0, 0, 0}), image.Point{}, draw.Src)
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return rgba, nil
}

// Thumbnail scales img down to fit a size x size box, keeping its aspect ratio
func Thumbnail(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 0 || (w <= size && h <= size) {
		return img
	}
	if w >= h {
		h = max(1, h*size/w)
		w = size
	} else {
		w = max(1, w*size/h)
		h = size
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
