// Package imaging turns uploaded bytes into the RGBA rasters the analyzer
// works on.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/domain"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/vision"
)

// DefaultMaxPixels bounds width*height of accepted images.
const DefaultMaxPixels = 40_000_000

// Decoder decodes images up to a pixel budget.
type Decoder struct {
	MaxPixels int
}

// NewDecoder returns a Decoder accepting images up to maxPixels pixels.
// A non-positive limit falls back to DefaultMaxPixels.
func NewDecoder(maxPixels int) *Decoder {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Decoder{MaxPixels: maxPixels}
}

// Decode decodes data with DefaultMaxPixels.
func Decode(data []byte) (*image.RGBA, string, error) {
	return NewDecoder(DefaultMaxPixels).Decode(data)
}

// Decode returns the image normalised to an origin-anchored RGBA raster
// together with the detected format name. The header is checked before the
// pixels are decoded so oversized uploads are refused cheaply.
func (d *Decoder) Decode(data []byte) (*image.RGBA, string, error) {
	if len(data) == 0 {
		return nil, "", domain.ErrInvalidImage.WithError(fmt.Errorf("empty image"))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", domain.ErrInvalidImage.WithError(fmt.Errorf("decode header: %w", err))
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", domain.ErrInvalidImage.WithError(fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height))
	}
	if cfg.Width > d.MaxPixels/cfg.Height {
		return nil, "", domain.ErrInvalidImage.WithError(
			fmt.Errorf("image too large: %dx%d (max %d pixels)", cfg.Width, cfg.Height, d.MaxPixels))
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", domain.ErrInvalidImage.WithError(fmt.Errorf("decode %s: %w", format, err))
	}

	return opaque(img), format, nil
}

// opaque drops the alpha channel: every pixel keeps its straight colour and
// becomes fully opaque, the way a three-channel loader reads a PNG. Going
// through premultiplied RGBA would turn transparent pixels black.
func opaque(img image.Image) *image.RGBA {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return vision.ToRGBA(img)
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var c color.RGBA
			switch px := img.At(x, y).(type) {
			case color.NRGBA:
				c = color.RGBA{R: px.R, G: px.G, B: px.B}
			case color.NRGBA64:
				c = color.RGBA{R: uint8(px.R >> 8), G: uint8(px.G >> 8), B: uint8(px.B >> 8)}
			default:
				n := color.NRGBAModel.Convert(px).(color.NRGBA)
				c = color.RGBA{R: n.R, G: n.G, B: n.B}
			}
			c.A = 0xff
			dst.SetRGBA(x-b.Min.X, y-b.Min.Y, c)
		}
	}
	return dst
}
