package imgcodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

var (
	// ErrUnsupportedFormat means the bytes are not a raster format the codec knows.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrCorruptData means the headers parsed but the pixel data did not.
	ErrCorruptData = errors.New("corrupt image data")
)

// Decode parses raw bytes into an in-memory raster.
func Decode(data []byte) (image.Image, error) {
	const op = "imgcodec.Decode"

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnsupportedFormat)
		}
		return nil, fmt.Errorf("%s: %w: %v", op, ErrCorruptData, err)
	}

	return img, nil
}

// Flatten normalizes any palette, grayscale or alpha representation into an
// opaque NRGBA raster. True transparency is dropped, not blended: the JPEG
// target has no alpha channel, so alpha is simply forced to full opacity.
func Flatten(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)

	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}

	return out
}

// Encode produces a compressed JPEG byte stream. Higher quality means larger
// output. Output is deterministic for a given (raster, quality) pair on a
// given codec version; bit-exact reproducibility across codec versions is not
// guaranteed.
func Encode(img image.Image, quality int) ([]byte, error) {
	const op = "imgcodec.Encode"

	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("%s: quality %d out of range [1,100]", op, quality)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}
