package device

import (
	"github.com/jypelle/skyview/internal/srv/config"
	"image"
	"image/color"
	"testing"
)

func TestContrast(t *testing.T) {
	tests := []struct {
		level int
		want  byte
	}{
		{-5, 0},
		{0, 0},
		{50, 127},
		{100, 255},
		{150, 255},
	}
	for _, tt := range tests {
		if got := Contrast(tt.level); got != tt.want {
			t.Errorf("Contrast(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestScaleImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	red := color.RGBA{255, 0, 0, 255}
	src.SetRGBA(1, 1, red)

	scaled := ScaleImage(src, 2)
	if scaled.Bounds() != image.Rect(0, 0, 8, 4) {
		t.Fatalf("bounds = %v", scaled.Bounds())
	}
	rgba := scaled.(*image.RGBA)
	for _, p := range []image.Point{{2, 2}, {3, 2}, {2, 3}, {3, 3}} {
		if rgba.RGBAAt(p.X, p.Y) != red {
			t.Errorf("pixel %v should be red", p)
		}
	}
	if rgba.RGBAAt(1, 1) == red {
		t.Error("scaling should keep hard edges")
	}

	if ScaleImage(src, 1) != image.Image(src) {
		t.Error("scale 1 should return the source")
	}
}

func TestDim(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{200, 100, 0, 255})

	dimmed := Dim(src, 50).(*image.RGBA).RGBAAt(0, 0)
	if dimmed.R != 100 || dimmed.G != 50 || dimmed.B != 0 || dimmed.A != 255 {
		t.Errorf("dimmed = %v", dimmed)
	}
	if Dim(src, 100) != image.Image(src) {
		t.Error("full brightness should return the source")
	}
}

func TestHeadlessDisplay(t *testing.T) {
	d := NewDisplay(config.DisplayParam{Output: OUTPUT_NONE, Width: 64, Height: 32, Scale: 2}, false)
	d.Start()
	defer d.Stop()

	if d.image().Bounds().Dx() != 128 {
		t.Error("blank image should have the panel size")
	}
	if err := d.Show(image.NewRGBA(image.Rect(0, 0, 64, 32))); err != nil {
		t.Fatal(err)
	}
	if err := d.SetBrightness(40); err != nil {
		t.Fatal(err)
	}
	if d.Brightness() != 40 {
		t.Errorf("brightness = %d", d.Brightness())
	}
	if err := d.SetBrightness(101); err == nil {
		t.Error("out of range brightness should fail")
	}
}
