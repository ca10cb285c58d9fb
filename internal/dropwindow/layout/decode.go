package layout

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"io/fs"

	_ "golang.org/x/image/tiff"
)

// Decode reads a JPEG or TIFF photo from fsys.
func Decode(fsys fs.FS, name string) (image.Image, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", name, err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("unable to decode image %s: %w", name, err)
	}
	return src, nil
}
