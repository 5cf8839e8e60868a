package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"lsystree/app"
	"lsystree/internal/config"
	"lsystree/internal/logging"
)

var (
	flagConfig     string
	flagLogLevel   string
	flagSeed       string
	flagIterations int
	flagSegment    float64
	flagPolicy     string
	flagWidth      int
	flagHeight     int
	flagNoHUD      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "lsystree",
	Short:         "Animate an L-system fractal tree",
	Long:          "lsystree expands an L-system grammar once and replays it through a turtle every frame while the branch angle eases back and forth.",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runWindow,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagConfig, "config", "c", "", "YAML config file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "log level: debug|info|warn|error")
	pf.StringVar(&flagSeed, "seed", "", "seed instruction string (overrides config)")
	pf.IntVarP(&flagIterations, "iterations", "n", 0, "rewrite passes (overrides config)")
	pf.Float64Var(&flagSegment, "segment-length", 0, "segment length in pixels (overrides config)")
	pf.StringVar(&flagPolicy, "policy", "", "angle policy: ease|sine|static (overrides config)")
	pf.IntVar(&flagWidth, "width", 0, "surface width (overrides config)")
	pf.IntVar(&flagHeight, "height", 0, "surface height (overrides config)")
	pf.BoolVar(&flagNoHUD, "no-hud", false, "hide the angle caption")

	rootCmd.AddCommand(windowCmd, headlessCmd, renderCmd, expandCmd, serveCmd, versionCmd)
}

// loadConfig reads --config and applies any explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (config.File, error) {
	f, err := config.Load(flagConfig)
	if err != nil {
		return config.File{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		f.Seed = flagSeed
	}
	if flags.Changed("iterations") {
		f.Iterations = flagIterations
	}
	if flags.Changed("segment-length") {
		f.Turtle.SegmentLength = flagSegment
	}
	if flags.Changed("policy") {
		f.Animation.Policy = flagPolicy
	}
	if flags.Changed("width") {
		f.Display.Width = flagWidth
	}
	if flags.Changed("height") {
		f.Display.Height = flagHeight
	}
	if flagNoHUD {
		f.Display.HUD = false
	}
	if err := f.Validate(); err != nil {
		return config.File{}, err
	}
	return f, nil
}

// setup loads the config and builds the logger shared by every command.
func setup(cmd *cobra.Command) (config.File, app.Config, *slog.Logger, error) {
	level, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		return config.File{}, app.Config{}, nil, err
	}
	f, err := loadConfig(cmd)
	if err != nil {
		return config.File{}, app.Config{}, nil, err
	}
	cfg, err := f.App()
	if err != nil {
		return config.File{}, app.Config{}, nil, err
	}
	return f, cfg, logging.New(level), nil
}
