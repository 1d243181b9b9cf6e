package palette

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"
)

// ExtractReader decodes an image from r and extracts its color.
func ExtractReader(r io.Reader) (CachedColor, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return CachedColor{}, fmt.Errorf("%w: %v", ErrImageLoadFailed, err)
	}
	return Extract(img)
}
