package metrics

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/stat"
)

// maxRasterSide bounds the off-screen raster; larger images are scaled down first.
const maxRasterSide = 512

// ErrRasterUnavailable is returned when no raster surface could be produced.
var ErrRasterUnavailable = errors.New("raster surface unavailable")

// DominantColor renders img onto an off-screen non-premultiplied RGBA raster and averages the
// red, green and blue channels of every stride-th byte position of its pixel
// buffer. It returns DefaultColor with an error when the raster cannot be
// produced or read back.
func DominantColor(img image.Image, stride int) (color.RGBA, error) {
	raster, err := rasterize(img)
	if err != nil {
		return DefaultColor, err
	}

	stride = NormalizeStride(stride)
	n := (len(raster.Pix) + stride - 1) / stride
	reds := make([]float64, 0, n)
	greens := make([]float64, 0, n)
	blues := make([]float64, 0, n)
	for i := 0; i+2 < len(raster.Pix); i += stride {
		reds = append(reds, float64(raster.Pix[i]))
		greens = append(greens, float64(raster.Pix[i+1]))
		blues = append(blues, float64(raster.Pix[i+2]))
	}
	if len(reds) == 0 {
		return DefaultColor, ErrRasterUnavailable
	}

	return color.RGBA{
		R: channel(stat.Mean(reds, nil)),
		G: channel(stat.Mean(greens, nil)),
		B: channel(stat.Mean(blues, nil)),
		A: 255,
	}, nil
}

func channel(v float64) uint8 {
	return uint8(math.Min(255, math.Max(0, math.Floor(v))))
}

func rasterize(img image.Image) (raster *image.NRGBA, err error) {
	if img == nil {
		return nil, ErrRasterUnavailable
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrRasterUnavailable
	}

	defer func() {
		if p := recover(); p != nil {
			raster = nil
			err = fmt.Errorf("%w: %v", ErrRasterUnavailable, p)
		}
	}()

	w, h := rasterSize(b.Dx(), b.Dy())
	raster = image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(raster, raster.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(raster, raster.Bounds(), img, b, draw.Src, nil)
	}
	return raster, nil
}

func rasterSize(w, h int) (int, int) {
	if w <= maxRasterSide && h <= maxRasterSide {
		return w, h
	}
	scale := math.Min(float64(maxRasterSide)/float64(w), float64(maxRasterSide)/float64(h))
	sw := int(math.Max(1, math.Round(float64(w)*scale)))
	sh := int(math.Max(1, math.Round(float64(h)*scale)))
	return sw, sh
}
