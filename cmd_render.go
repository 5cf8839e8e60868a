package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lsystree/app"
)

var (
	flagOut   string
	flagAngle float64
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a single frame to PNG",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&flagOut, "out", "o", "tree.png", "output file, - for stdout")
	renderCmd.Flags().Float64Var(&flagAngle, "angle", 0, "branch angle in radians; unset uses the configured initial angle")
}

func runRender(cmd *cobra.Command, args []string) error {
	f, cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	angle := cfg.InitialAngle
	if cmd.Flags().Changed("angle") {
		angle = flagAngle
	}

	var w io.Writer = cmd.OutOrStdout()
	if flagOut != "-" {
		file, err := os.Create(flagOut)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	if err := app.RenderPNG(w, cfg, angle, f.Display.Width, f.Display.Height, app.WithLogger(log)); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if flagOut != "-" {
		log.Info("frame written", "path", flagOut, "angle", angle)
	}
	return nil
}
