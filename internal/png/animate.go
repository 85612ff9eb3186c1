package png

import (
	"bytes"

	"github.com/kettek/apng"
	"github.com/rm-hull/label-noise/internal/raster"
)

// Animate encodes frames as a looping APNG, showing each for frameDelay seconds.
func Animate(frames []*raster.Image, frameDelay float64) ([]byte, error) {

	a := apng.APNG{
		Frames:    make([]apng.Frame, len(frames)),
		LoopCount: 0,
	}

	for i, frame := range frames {
		a.Frames[i] = apng.Frame{
			Image:            frame.ToImage(),
			DelayNumerator:   uint16(frameDelay * 1000),
			DelayDenominator: 1000,
		}
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
