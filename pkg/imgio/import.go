package imgio

import (
	"image"
	"io"
	"os"
	"path/filepath"

	// Standard library decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// Extended decoders.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/jverel/darkroom/pkg/errors"
)

// mimeFromFormat maps the format names reported by image.Decode to MIME types.
var mimeFromFormat = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// Decoded is an image read from disk, ready to become an asset.
type Decoded struct {
	Image image.Image
	MIME  string // e.g. "image/png"
	Name  string // base name of the source file
	Path  string // original path as given to Decode
}

// Decode reads and decodes a single image file.
//
// The format is detected from the file contents, not the extension.
// Unreadable files and unsupported or corrupt image data return an
// error with code [errors.ErrCodeDecode] carrying the file path.
func Decode(path string) (Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return Decoded{}, errors.Wrap(errors.ErrCodeDecode, err, "open %s", path)
	}
	defer f.Close()

	d, err := DecodeReader(f)
	if err != nil {
		return Decoded{}, errors.Wrap(errors.ErrCodeDecode, err, "decode %s", path)
	}
	d.Name = filepath.Base(path)
	d.Path = path
	return d, nil
}

// DecodeReader decodes an image from r. The Name and Path fields of the
// result are left empty; callers with a file path should use [Decode].
func DecodeReader(r io.Reader) (Decoded, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return Decoded{}, errors.Wrap(errors.ErrCodeDecode, err, "decode image")
	}

	mime, ok := mimeFromFormat[format]
	if !ok {
		mime = "application/octet-stream"
	}
	return Decoded{Image: img, MIME: mime}, nil
}

// DecodeAll decodes a batch of image files.
//
// Files that cannot be read or decoded are skipped: each failure becomes
// one error in the returned slice, and decoding continues with the next
// file. The decoded results preserve the order of the input paths.
func DecodeAll(paths []string) ([]Decoded, []error) {
	var (
		decoded []Decoded
		errs    []error
	)
	for _, path := range paths {
		d, err := Decode(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		decoded = append(decoded, d)
	}
	return decoded, errs
}
