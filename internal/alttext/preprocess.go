package alttext

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"image/jpeg"

	// Register decoders for the raster formats slides commonly embed.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

const jpegQuality = 85

// Preprocess decodes a raster image and re-encodes it as JPEG suitable for a
// vision model: transparency is composited onto white, and the longer edge is
// scaled down to maxEdgePx when the image exceeds it. Metafile formats cannot
// be rasterized here; callers route those straight to fallback text.
func Preprocess(data []byte, maxEdgePx int) (Payload, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Payload{}, &PreprocessError{Message: "failed to decode image", Cause: err}
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return Payload{}, &PreprocessError{Message: "image has zero dimension"}
	}

	// Composite onto white so transparent regions do not render black in JPEG.
	flat := image.NewRGBA(bounds)
	stddraw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, stddraw.Src)
	stddraw.Draw(flat, bounds, img, bounds.Min, stddraw.Over)

	scaled := downscale(flat, maxEdgePx)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Payload{}, &PreprocessError{Message: "failed to encode image", Cause: err}
	}
	return Payload{Format: "jpeg", Data: buf.Bytes()}, nil
}

func downscale(img *image.RGBA, maxEdgePx int) image.Image {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if maxEdgePx <= 0 || (w <= maxEdgePx && h <= maxEdgePx) {
		return img
	}

	scale := float64(maxEdgePx) / float64(w)
	if h > w {
		scale = float64(maxEdgePx) / float64(h)
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// PreprocessError reports a failure preparing an image for description.
type PreprocessError struct {
	Message string
	Cause   error
}

func (e *PreprocessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("preprocess: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("preprocess: %s", e.Message)
}

func (e *PreprocessError) Unwrap() error { return e.Cause }
