// Package canvas is the drawing surface the turtle draws onto.
//
// A Canvas owns no pixels itself: it rasterizes lines into a caller-provided
// Target. Two targets ship with the package, RGB565Target for the host
// framebuffer and RGBATarget for PNG stills. Text is rendered with tinyfont
// through a drivers.Displayer adapter, so any Target can carry a caption.
package canvas
