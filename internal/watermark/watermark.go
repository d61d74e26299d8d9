package watermark

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"photoMarketplace/internal/lib/logger/sl"
)

// Label is the text burned into every public derivative.
const Label = "TMF-Marketplace"

const (
	fontSize = 36
	margin   = 20
)

// fill is white at half alpha; the drawer alpha-blends it over the flattened
// raster.
var fill = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}

type Renderer struct {
	face font.Face
}

// New builds a renderer with the first available face: the configured TTF
// file, then the bundled Go Regular face, then the built-in bitmap font.
// The bitmap font has different metrics than the scalable ones, so callers
// must always measure through the renderer rather than assume a box size.
func New(log *slog.Logger, fontPath string) *Renderer {
	const op = "watermark.New"

	if fontPath != "" {
		if face, err := loadFace(fontPath); err == nil {
			return &Renderer{face: face}
		} else {
			log.Warn("failed to load configured font, falling back",
				slog.String("op", op),
				slog.String("font_path", fontPath),
				sl.Err(err),
			)
		}
	}

	if ft, err := opentype.Parse(goregular.TTF); err == nil {
		if face, err := opentype.NewFace(ft, &opentype.FaceOptions{
			Size:    fontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		}); err == nil {
			return &Renderer{face: face}
		}
	}

	log.Warn("no scalable font available, using bitmap fallback", slog.String("op", op))

	return &Renderer{face: basicfont.Face7x13}
}

func loadFace(path string) (font.Face, error) {
	const op = "watermark.loadFace"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return face, nil
}

// Measure returns the rendered bounding box of label in the active face.
func (r *Renderer) Measure(label string) (width, height int) {
	bounds, _ := font.BoundString(r.face, label)

	return (bounds.Max.X - bounds.Min.X).Ceil(), (bounds.Max.Y - bounds.Min.Y).Ceil()
}

// Origin computes the top-left corner of the text box: bottom-right anchor
// with a fixed inset on both axes. No clamping: for rasters smaller than the
// text box the origin goes negative and drawing clips at the raster bounds.
func Origin(imgW, imgH, textW, textH int) (x, y int) {
	return imgW - textW - margin, imgH - textH - margin
}

// Place burns label into img at the computed origin and returns img.
func (r *Renderer) Place(img *image.NRGBA, label string) *image.NRGBA {
	bounds, _ := font.BoundString(r.face, label)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	x, y := Origin(img.Bounds().Dx(), img.Bounds().Dy(), textW, textH)

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fill),
		Face: r.face,
		// Dot is on the baseline; shift it so the box's top-left lands on (x, y).
		Dot: fixed.Point26_6{
			X: fixed.I(x) - bounds.Min.X,
			Y: fixed.I(y) - bounds.Min.Y,
		},
	}
	d.DrawString(label)

	return img
}
