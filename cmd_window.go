package main

import (
	"github.com/spf13/cobra"

	"lsystree/app"
	"lsystree/hal"
	"lsystree/internal/buildinfo"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Animate the tree in a desktop window (default)",
	Args:  cobra.NoArgs,
	RunE:  runWindow,
}

func runWindow(cmd *cobra.Command, args []string) error {
	f, cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	log.Info("opening window", "width", f.Display.Width, "height", f.Display.Height, "tps", f.Display.TPS)
	return hal.RunWindow(hal.WindowConfig{
		Title:  "lsystree (" + buildinfo.Short() + ")",
		Width:  f.Display.Width,
		Height: f.Display.Height,
		Scale:  f.Display.Scale,
		TPS:    f.Display.TPS,
	}, app.NewWithConfig(cfg, app.WithLogger(log)))
}
