package imageproc

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

var ErrInvalidImage = errors.New("invalid image")

var allowedExtensions = []string{".png", ".jpg", ".jpeg"}

// Params are the contrast (CLAHE) and gamma settings applied by the image service
type Params struct {
	Gamma     float64 `form:"gamma"`
	ClipLimit float64 `form:"clipLimit"`
	TileGridX int     `form:"tileGridX"`
	TileGridY int     `form:"tileGridY"`
}

// Complete reports whether every setting was given
func (p Params) Complete() bool {
	return p.Gamma != 0 && p.ClipLimit != 0 && p.TileGridX != 0 && p.TileGridY != 0
}

// Merge fills the settings left at zero from defaults
func (p Params) Merge(defaults Params) Params {
	if p.Gamma == 0 {
		p.Gamma = defaults.Gamma
	}
	if p.ClipLimit == 0 {
		p.ClipLimit = defaults.ClipLimit
	}
	if p.TileGridX == 0 {
		p.TileGridX = defaults.TileGridX
	}
	if p.TileGridY == 0 {
		p.TileGridY = defaults.TileGridY
	}
	return p
}

// ParamsForLuminance picks correction settings from the median luminance of an image
func ParamsForLuminance(median uint8) Params {
	p := Params{TileGridX: 8, TileGridY: 8}
	switch {
	case median < 64:
		// underexposed
		p.ClipLimit, p.Gamma = 2.0, 1.2
	case median < 128:
		p.ClipLimit, p.Gamma = 1.5, 1.1
	case median < 192:
		p.ClipLimit, p.Gamma = 1.2, 1.0
	default:
		// overexposed
		p.ClipLimit, p.Gamma = 3.0, 0.6
	}
	return p
}

// MedianLuminance decodes a png or jpeg and returns the median grey level of its pixels
func MedianLuminance(r io.Reader) (uint8, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidImage, err)
	}

	var histogram [256]int
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			grey := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			histogram[grey.Y]++
		}
	}

	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0, fmt.Errorf("%w: image has no pixels", ErrInvalidImage)
	}

	seen := 0
	for level, count := range histogram {
		seen += count
		if seen*2 >= total {
			return uint8(level), nil
		}
	}
	return 255, nil
}

// AllowedFile reports whether filename has an extension the image service accepts
func AllowedFile(filename string) bool {
	return lo.Contains(allowedExtensions, strings.ToLower(filepath.Ext(filename)))
}
