package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tidewire/tidewire/internal/config"
	"github.com/tidewire/tidewire/internal/services"
)

func newScheduleCommand(v *viper.Viper) *cobra.Command {
	var horizon time.Duration

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the configured workers and their predicted runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, flush, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			defer flush()

			runs, err := services.Simulate(cfg.TimeWheel.Workers, horizon)
			if err != nil {
				return err
			}
			printSchedule(cmd.OutOrStdout(), cfg, runs, horizon)
			return nil
		},
	}
	cmd.Flags().DurationVar(&horizon, "horizon", time.Second, "how far ahead to predict runs")
	return cmd
}

func printSchedule(w io.Writer, cfg *config.Configuration, runs []services.SimulatedRun, horizon time.Duration) {
	bold := color.New(color.Bold)
	kinds := map[string]*color.Color{
		"heartbeat": color.New(color.FgGreen),
		"sleep":     color.New(color.FgYellow),
		"prune":     color.New(color.FgMagenta),
	}
	names := make(map[string]*color.Color, len(cfg.TimeWheel.Workers))

	bold.Fprintf(w, "wheel %s on executor %s\n", cfg.TimeWheel.Name, cfg.TimeWheel.Executor)
	for _, wk := range cfg.TimeWheel.Workers {
		c, ok := kinds[wk.Kind]
		if !ok {
			c = color.New(color.Reset)
		}
		names[wk.Name] = c

		period := wk.Period.String()
		if wk.Period == 0 {
			period = "once"
		}
		fmt.Fprintf(w, "  %-20s %-10s %s\n", c.Sprint(wk.Name), wk.Kind, period)
	}

	bold.Fprintf(w, "\nruns in the first %s\n", horizon)
	if len(runs) == 0 {
		color.New(color.Faint).Fprintln(w, "  none")
		return
	}
	for _, r := range runs {
		c := names[r.Worker]
		if c == nil {
			c = color.New(color.Reset)
		}
		fmt.Fprintf(w, "  +%-12s %s\n", r.At, c.Sprint(r.Worker))
	}
}
