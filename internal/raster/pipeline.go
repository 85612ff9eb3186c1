package raster

type Stage interface {
	Process(img *Image) error
}

// Pipeline runs each stage in order against img, stopping at the first error.
func (img *Image) Pipeline(stages ...Stage) error {
	for _, stage := range stages {
		if err := stage.Process(img); err != nil {
			return err
		}
	}
	return nil
}

// Replace swaps the contents of img for those of out. Stages use it to
// publish the result of a pure transform back into the pipeline image.
func (img *Image) Replace(out *Image) {
	*img = *out
}
