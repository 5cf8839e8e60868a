package hal

import "lsystree/canvas"

// expandRGB565 converts a packed little-endian RGB565 buffer into RGBA8 pixels.
func expandRGB565(dst, src []byte) {
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		c := canvas.FromRGB565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = c.R
		dst[j+1] = c.G
		dst[j+2] = c.B
		dst[j+3] = 0xFF
	}
}
