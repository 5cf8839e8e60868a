package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lsystree/app"
	"lsystree/lsystem"
)

var flagCount bool

var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Print the expanded instruction string",
	Args:  cobra.NoArgs,
	RunE:  runExpand,
}

func init() {
	expandCmd.Flags().BoolVar(&flagCount, "count", false, "print only the predicted length")
}

func runExpand(cmd *cobra.Command, args []string) error {
	_, cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if flagCount {
		rules := cfg.Rules
		if rules == nil {
			rules = lsystem.DefaultRules()
		}
		n, err := rules.Len(cfg.Seed, cfg.Iterations)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, n)
		return nil
	}
	instr, err := app.Instructions(cfg.Rules, cfg.Seed, cfg.Iterations, cfg.MaxSymbols)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, instr)
	return nil
}
