// Package thumbnail scales images to a target width, keeping the aspect ratio.
package thumbnail

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	// Additional decoders registered with image.Decode.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// JPEGQuality is used when re-encoding JPEG sources.
const JPEGQuality = 90

var (
	ErrInvalidWidth = errors.New("thumbnail: width must be positive")
	ErrDecode       = errors.New("thumbnail: cannot decode image")
	ErrEncode       = errors.New("thumbnail: cannot encode image")
)

// Resize decodes src, scales it to width pixels wide and writes the result to
// dst. JPEG, PNG and GIF sources keep their format; other formats are written
// as PNG. It returns the format written.
func Resize(dst io.Writer, src io.Reader, width int) (string, error) {
	if width <= 0 {
		return "", ErrInvalidWidth
	}

	img, format, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	scaled := Scale(img, width)

	switch format {
	case "jpeg":
		err = jpeg.Encode(dst, scaled, &jpeg.Options{Quality: JPEGQuality})
	case "gif":
		err = gif.Encode(dst, scaled, nil)
	default:
		format = "png"
		err = png.Encode(dst, scaled)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return format, nil
}

// Scale returns img resized to width with CatmullRom resampling. The height
// follows the source aspect ratio and is at least one pixel.
func Scale(img image.Image, width int) image.Image {
	b := img.Bounds()
	height := Height(b.Dx(), b.Dy(), width)

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), img, b, draw.Over, nil)
	return out
}

// Height returns the rounded height for a srcW x srcH image scaled to width.
func Height(srcW, srcH, width int) int {
	if srcW <= 0 {
		return 1
	}
	h := (srcH*width + srcW/2) / srcW
	return max(h, 1)
}
