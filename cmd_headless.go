package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"lsystree/app"
	"lsystree/hal"
	"lsystree/internal/metrics"
)

var (
	flagHz          int
	flagTicks       uint64
	flagMetricsAddr string
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the animation loop without a window",
	Long:  "Drives the frame loop from a ticker. Useful for profiling and for exporting metrics without a display.",
	Args:  cobra.NoArgs,
	RunE:  runHeadless,
}

func init() {
	headlessCmd.Flags().IntVar(&flagHz, "hz", 60, "tick rate")
	headlessCmd.Flags().Uint64Var(&flagTicks, "ticks", 0, "stop after N ticks (0 = run until interrupted)")
	headlessCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :2112)")
}

func runHeadless(cmd *cobra.Command, args []string) error {
	f, cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	rec := metrics.New()
	if flagMetricsAddr != "" {
		srv := &http.Server{Addr: flagMetricsAddr, Handler: rec.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Info("serving metrics", "addr", flagMetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server", "error", err)
			}
		}()
		defer srv.Close()
	}

	start := time.Now()
	var frames uint64
	err = hal.RunHeadless(ctx, func(h hal.HAL) (hal.StepFunc, error) {
		step, err := app.NewWithConfig(cfg, app.WithLogger(log), app.WithMetrics(rec))(h)
		if err != nil {
			return nil, err
		}
		return func() error {
			frames++
			return step()
		}, nil
	}, hal.HeadlessConfig{
		Width:  f.Display.Width,
		Height: f.Display.Height,
		Hz:     flagHz,
		Ticks:  flagTicks,
	})
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Info("headless run finished", "frames", frames, "elapsed", time.Since(start).Round(time.Millisecond))
	return err
}
