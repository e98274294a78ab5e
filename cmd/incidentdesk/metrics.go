package main

import (
	"context"
	"fmt"
	"io"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/incidentdesk/internal/metrics"
	"github.com/jorge-barreto/incidentdesk/internal/ux"
)

func metricsCmd() *cli.Command {
	d := metrics.DefaultOptions()
	return &cli.Command{
		Name:  "metrics",
		Usage: "Generate synthetic telemetry and SLO burn rates",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Write traffic, error, latency and incident CSVs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: "data", Usage: "Output directory"},
					&cli.IntFlag{Name: "minutes", Value: d.Minutes, Usage: "Samples per region, one per minute"},
					&cli.IntFlag{Name: "seed", Value: int(d.Seed), Usage: "Random seed"},
					&cli.StringFlag{Name: "service", Value: d.Service, Usage: "Service name"},
					&cli.StringSliceFlag{Name: "regions", Value: d.Regions, Usage: "Regions to generate"},
					&cli.IntFlag{Name: "incident-start", Value: d.IncidentStart, Usage: "Minute index where the incident begins"},
					&cli.IntFlag{Name: "incident-duration", Value: d.IncidentDuration, Usage: "Incident length in minutes"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e, err := setup(cmd)
					if err != nil {
						return err
					}
					opts := metrics.Options{
						Service:          cmd.String("service"),
						Regions:          cmd.StringSlice("regions"),
						Minutes:          int(cmd.Int("minutes")),
						Seed:             uint64(cmd.Int("seed")),
						IncidentStart:    int(cmd.Int("incident-start")),
						IncidentDuration: int(cmd.Int("incident-duration")),
					}
					ds, err := metrics.Generate(opts)
					if err != nil {
						return e.fail(err, nil)
					}
					paths, err := ds.WriteCSV(cmd.String("out"))
					if err != nil {
						return e.fail(err, nil)
					}
					e.log.Debug("metrics generated", "rows", len(ds.Traffic), "regions", len(opts.Regions))
					return e.out.Emit(paths, func(w io.Writer) {
						for _, p := range paths {
							fmt.Fprintf(w, "%s✓%s wrote %s\n", ux.Green, ux.Reset, p)
						}
					})
				},
			},
			{
				Name:  "slo",
				Usage: "Compute availability and burn rate into slo.csv",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Value: "data", Usage: "Directory holding traffic.csv and errors.csv"},
					&cli.FloatFlag{Name: "objective", Value: 0.999, Usage: "Availability objective"},
					&cli.IntFlag{Name: "window", Value: 60, Usage: "Burn-rate window in minutes"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e, err := setup(cmd)
					if err != nil {
						return err
					}
					dir, window := cmd.String("dir"), int(cmd.Int("window"))
					rows, err := metrics.LoadSLO(ctx, dir, cmd.Float("objective"), window)
					if err != nil {
						return e.fail(err, nil)
					}
					path, err := metrics.WriteSLO(dir, rows, window)
					if err != nil {
						return e.fail(err, nil)
					}

					summary := sloSummary{Path: path, Rows: len(rows)}
					for _, r := range rows {
						if r.BurnRate > summary.PeakBurnRate {
							summary.PeakBurnRate = r.BurnRate
							summary.PeakAt = r.TS.Format("2006-01-02 15:04")
						}
					}
					return e.out.Emit(summary, func(w io.Writer) {
						fmt.Fprintf(w, "%s✓%s wrote %s (%d rows)\n", ux.Green, ux.Reset, path, summary.Rows)
						if summary.PeakAt != "" {
							fmt.Fprintf(w, "  peak %s %.2f at %s\n", metrics.BurnColumn(window), summary.PeakBurnRate, summary.PeakAt)
						}
					})
				},
			},
		},
	}
}

type sloSummary struct {
	Path         string  `json:"path"`
	Rows         int     `json:"rows"`
	PeakBurnRate float64 `json:"peak_burn_rate"`
	PeakAt       string  `json:"peak_at,omitempty"`
}
