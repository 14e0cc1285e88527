package images

import (
	"bytes"
	_ "embed"
	"github.com/sirupsen/logrus"
	"image"
)

//go:embed intro.svg
var IntroImgFile []byte

var IntroImage image.Image

//go:embed default_logo.svg
var DefaultLogoImgFile []byte

var DefaultLogoImage image.Image

func init() {
	// Load images
	var err error

	IntroImage, err = DecodeSvg(bytes.NewReader(IntroImgFile), 64, 32)
	if err != nil {
		logrus.Panicf("Can't load intro image: %v", err)
	}

	DefaultLogoImage, err = DecodeSvg(bytes.NewReader(DefaultLogoImgFile), 16, 16)
	if err != nil {
		logrus.Panicf("Can't load default logo image: %v", err)
	}
}
