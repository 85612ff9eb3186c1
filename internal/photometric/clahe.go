package photometric

import (
	"fmt"
	"image"

	"github.com/rm-hull/label-noise/internal/raster"
	"gocv.io/x/gocv"
)

var (
	DefaultCLAHEClipLimit = 2.0
	DefaultCLAHETileGrid  = image.Point{X: 8, Y: 8}
)

// CLAHEEnhancement applies contrast limited adaptive histogram equalisation.
// Colour images are equalised on the luma channel of their YUV form only, so
// hue is kept. The result is stretched to fill [0, 1]; when that is
// impossible because every sample came out equal, a clipped copy of the
// input is returned. Tile grid components below 1 are treated as 1.
func CLAHEEnhancement(img *raster.Image, clipLimit float64, tileGrid image.Point) (*raster.Image, error) {
	if len(img.Pix) == 0 {
		return img.Clone(), nil
	}

	data := make([]byte, len(img.Pix))
	for i, v := range img.Pix {
		data[i] = quantize(v)
	}

	grid := image.Point{X: max(tileGrid.X, 1), Y: max(tileGrid.Y, 1)}
	equalised, err := equalise(data, img.Width, img.Height, img.Channels, clipLimit, grid)
	if err != nil {
		return nil, err
	}

	out := raster.New(img.Width, img.Height, img.Channels)
	for i, v := range equalised {
		out.Pix[i] = float64(v)
	}

	lo, hi := out.MinMax()
	if hi == lo {
		return img.Map(func(v float64, _ int) float64 { return raster.Clip(v) }), nil
	}
	span := hi - lo
	for i, v := range out.Pix {
		out.Pix[i] = (v - lo) / span
	}
	return out, nil
}

func equalise(data []byte, width, height, channels int, clipLimit float64, grid image.Point) ([]byte, error) {
	matType := gocv.MatTypeCV8UC1
	if channels == 3 {
		matType = gocv.MatTypeCV8UC3
	}

	src, err := gocv.NewMatFromBytes(height, width, matType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create source Mat: %w", err)
	}
	defer src.Close()

	clahe := gocv.NewCLAHEWithParams(clipLimit, grid)
	defer clahe.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	if channels == 1 {
		clahe.Apply(src, &dst)
	} else {
		yuv := gocv.NewMat()
		defer yuv.Close()
		gocv.CvtColor(src, &yuv, gocv.ColorBGRToYUV)

		planes := gocv.Split(yuv)
		defer func() {
			for i := range planes {
				planes[i].Close()
			}
		}()

		luma := gocv.NewMat()
		defer luma.Close()
		clahe.Apply(planes[0], &luma)

		gocv.Merge([]gocv.Mat{luma, planes[1], planes[2]}, &yuv)
		gocv.CvtColor(yuv, &dst, gocv.ColorYUVToBGR)
	}

	out := dst.ToBytes()
	if len(out) != len(data) {
		return nil, fmt.Errorf("equalised image has %d samples, expected %d", len(out), len(data))
	}
	return out, nil
}
