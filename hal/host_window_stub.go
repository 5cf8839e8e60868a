//go:build !cgo

package hal

import "errors"

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	Scale  int
	TPS    int
}

func RunWindow(_ WindowConfig, _ AppFactory) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
