package png

import (
	"image/png"
	"io"

	"github.com/rm-hull/label-noise/internal/raster"
)

// Decode reads a PNG label. Grey PNGs become single channel images, all
// others three channel B, G, R. Alpha is dropped.
func Decode(r io.Reader) (*raster.Image, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, err
	}
	return raster.FromImage(img), nil
}

func Encode(w io.Writer, img *raster.Image) error {
	return png.Encode(w, img.ToImage())
}
