package imgio

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"

	"github.com/jverel/darkroom/pkg/errors"
)

// Crop returns the part of img inside r as an independent image.
// The result does not share pixels with img.
func Crop(img image.Image, r image.Rectangle) image.Image {
	return imaging.Crop(img, r)
}

// EncodePNG encodes img as PNG and returns the bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Save writes img to path. The format is chosen from the extension
// (.png, .jpg, .jpeg, .gif, .bmp, .tif, .tiff). Unknown extensions
// return an error with code [errors.ErrCodeUnsupported].
func Save(img image.Image, path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		if err == imaging.ErrUnsupportedFormat {
			return errors.Wrap(errors.ErrCodeUnsupported, err, "save %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "save %s", path)
	}
	return nil
}
