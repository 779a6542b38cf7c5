package imagefile

import (
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// DefaultThumbnailWidth is the width used when the caller does not pick one.
const DefaultThumbnailWidth = 300

var ErrBadThumbnailWidth = errors.New("thumbnail width must be positive")

// Thumbnail decodes the image read from r, honoring EXIF orientation, scales
// it to width pixels keeping the aspect ratio and writes it to w as JPEG.
// Images narrower than width are not enlarged.
func Thumbnail(r io.Reader, w io.Writer, width int) error {
	if width <= 0 {
		return ErrBadThumbnailWidth
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(80))
}
