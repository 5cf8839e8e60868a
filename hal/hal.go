// Package hal is the host side of the animation: a framebuffer the frame driver
// draws into, and runners that call the driver once per tick.
package hal

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// HAL provides the only contact point between the frame driver and the host.
type HAL interface {
	Display() Display
}

// StepFunc runs one animation tick. A non-nil error stops the runner.
type StepFunc func() error

// AppFactory builds the per-tick step function once the HAL exists.
type AppFactory func(HAL) (StepFunc, error)
