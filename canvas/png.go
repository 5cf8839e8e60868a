package canvas

import (
	"image/png"
	"io"
)

// EncodePNG writes the target's image as PNG.
func EncodePNG(w io.Writer, t *RGBATarget) error {
	return png.Encode(w, t.Img)
}
