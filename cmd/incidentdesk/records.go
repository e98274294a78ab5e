package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/incidentdesk/internal/artifacts"
	"github.com/jorge-barreto/incidentdesk/internal/fixtures"
	"github.com/jorge-barreto/incidentdesk/internal/render"
	"github.com/jorge-barreto/incidentdesk/internal/ux"
)

// pillColor maps a severity or level pill class to a terminal color.
func pillColor(pill string) string {
	switch pill {
	case "bad":
		return ux.Red
	case "warn":
		return ux.Yellow
	default:
		return ux.Green
	}
}

func dotColor(dot string) string {
	switch dot {
	case "dot-green":
		return ux.Green
	case "dot-yellow":
		return ux.Yellow
	default:
		return ux.Red
	}
}

func bullets(w io.Writer, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(w, "  %s\n", render.Placeholder)
		return
	}
	for _, it := range items {
		fmt.Fprintf(w, "  • %s\n", it)
	}
}

func heading(w io.Writer, s string) {
	fmt.Fprintf(w, "\n%s%s%s\n", ux.Bold, s, ux.Reset)
}

func idArg(cmd *cli.Command, what string) (string, error) {
	id := cmd.Args().First()
	if id == "" {
		return "", fmt.Errorf("%s id argument is required", what)
	}
	return id, nil
}

func incidentsCmd() *cli.Command {
	return &cli.Command{
		Name:  "incidents",
		Usage: "List and export incident records",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List incidents",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e, err := setup(cmd)
					if err != nil {
						return err
					}
					incs, err := e.loader.Incidents(ctx)
					if err != nil {
						return e.fail(err, nil)
					}
					rows := render.IncidentRows(incs, e.cfg.Location())
					return e.out.Emit(rows, func(w io.Writer) {
						if len(rows) == 0 {
							fmt.Fprintln(w, "No incidents.")
							return
						}
						for _, r := range rows {
							fmt.Fprintf(w, "%s%-10s%s %s%-7s%s %s\n", ux.Bold, r.ID, ux.Reset, pillColor(r.Pill), r.Severity, ux.Reset, r.Title)
							fmt.Fprintf(w, "           %s%s • %s%s\n", ux.Dim, r.Where, r.When, ux.Reset)
						}
					})
				},
			},
			{
				Name:      "show",
				Usage:     "Show one incident",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e, err := setup(cmd)
					if err != nil {
						return err
					}
					id, err := idArg(cmd, "incident")
					if err != nil {
						return e.fail(err, nil)
					}
					inc, err := e.loader.Incident(ctx, id)
					if err != nil {
						return e.fail(err, nil)
					}
					v := render.IncidentDetail(inc, e.cfg.Location())
					return e.out.Emit(v, func(w io.Writer) { printIncident(w, v) })
				},
			},
			{
				Name:      "ticket",
				Usage:     "Export an incident as a markdown ticket",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write to a file or directory instead of stdout"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e, err := setup(cmd)
					if err != nil {
						return err
					}
					id, err := idArg(cmd, "incident")
					if err != nil {
						return e.fail(err, nil)
					}
					inc, err := e.loader.Incident(ctx, id)
					if err != nil {
						return e.fail(err, nil)
					}
					md := render.TicketMarkdown(inc, e.cfg.Location())

					path := cmd.String("output")
					if path == "" {
						return e.out.Emit(map[string]string{"filename": render.TicketFilename(inc), "markdown": md}, func(w io.Writer) {
							fmt.Fprint(w, md)
						})
					}
					if info, err := os.Stat(path); err == nil && info.IsDir() {
						path = filepath.Join(path, render.TicketFilename(inc))
					}
					if err := artifacts.WriteFile(path, []byte(md)); err != nil {
						return e.fail(fmt.Errorf("writing ticket: %w", err), nil)
					}
					return e.out.Emit(map[string]string{"path": path}, func(w io.Writer) {
						fmt.Fprintf(w, "%s✓%s wrote %s\n", ux.Green, ux.Reset, path)
					})
				},
			},
			{
				Name:      "email",
				Usage:     "Print the email update for an incident",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e, err := setup(cmd)
					if err != nil {
						return err
					}
					id, err := idArg(cmd, "incident")
					if err != nil {
						return e.fail(err, nil)
					}
					inc, err := e.loader.Incident(ctx, id)
					if err != nil {
						return e.fail(err, nil)
					}
					return e.out.Text(render.EmailUpdate(inc, e.cfg.Location()))
				},
			},
		},
	}
}

func printIncident(w io.Writer, v render.IncidentView) {
	fmt.Fprintf(w, "%s%s%s  %s%s severity%s\n", ux.Bold, v.Title, ux.Reset, pillColor(v.Pill), v.Severity, ux.Reset)
	if v.Symptom != "" {
		fmt.Fprintf(w, "%s%s%s\n", ux.Dim, v.Symptom, ux.Reset)
	}
	fmt.Fprintf(w, "\n  Where:   %s\n  When:    %s\n  Status:  %s\n  Impact:  %s\n", v.Where, v.When, v.Status, v.Impact)
	if v.LiveView != "" {
		fmt.Fprintf(w, "  Live:    %s\n", v.LiveView)
	}
	heading(w, "Findings")
	fmt.Fprintf(w, "  %s\n", v.Findings)
	heading(w, "Mitigation")
	fmt.Fprintf(w, "  %s\n", v.Mitigation)
	if len(v.Timeline) > 0 {
		heading(w, "Timeline")
		for _, t := range v.Timeline {
			fmt.Fprintf(w, "  %s%-8s%s %s\n", ux.Cyan, t.Time, ux.Reset, t.Event)
		}
	}
	if len(v.Evidence) > 0 {
		heading(w, "Evidence")
		for _, ev := range v.Evidence {
			fmt.Fprintf(w, "  %s  %s%s%s\n", ev.Path, ux.Dim, ev.Caption, ux.Reset)
		}
	}
	fmt.Fprintln(w)
}

func rcaCmd() *cli.Command {
	return &cli.Command{
		Name:  "rca",
		Usage: "Read root cause analyses",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List RCAs",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e, err := setup(cmd)
					if err != nil {
						return err
					}
					rcas, err := e.loader.RCAs(ctx)
					if err != nil {
						return e.fail(err, nil)
					}
					items := render.RCAPage(rcas, 0).Items
					return e.out.Emit(items, func(w io.Writer) {
						if len(items) == 0 {
							fmt.Fprintln(w, "No RCAs yet.")
							return
						}
						for _, it := range items {
							fmt.Fprintf(w, "  %s%d.%s %s\n     %s%s%s\n", ux.Cyan, it.Index+1, ux.Reset, it.Title, ux.Dim, it.Meta, ux.Reset)
						}
					})
				},
			},
			{
				Name:      "show",
				Usage:     "Show one RCA",
				ArgsUsage: "<n>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e, err := setup(cmd)
					if err != nil {
						return err
					}
					rcas, err := e.loader.RCAs(ctx)
					if err != nil {
						return e.fail(err, nil)
					}
					n, err := strconv.Atoi(cmd.Args().First())
					if err != nil || n < 1 || n > len(rcas) {
						return e.fail(fmt.Errorf("invalid RCA number %q (have %d)", cmd.Args().First(), len(rcas)), nil)
					}
					d := render.RCADetailFor(rcas[n-1])
					return e.out.Emit(d, func(w io.Writer) {
						fmt.Fprintf(w, "%s%s%s  %s%s%s\n", ux.Bold, d.Title, ux.Reset, pillColor(d.Pill), d.Severity, ux.Reset)
						fmt.Fprintf(w, "%s%s • Related: %s%s\n", ux.Dim, d.Date, d.Related, ux.Reset)
						heading(w, "What happened")
						fmt.Fprintf(w, "  %s\n", d.WhatHappened)
						heading(w, "Impact")
						fmt.Fprintf(w, "  %s\n", d.Impact)
						heading(w, "Root cause")
						fmt.Fprintf(w, "  %s\n", d.RootCause)
						heading(w, "What changed")
						bullets(w, d.Changes)
						heading(w, "Prevention")
						bullets(w, d.Prevention)
						fmt.Fprintln(w)
					})
				},
			},
		},
	}
}

func runbooksCmd() *cli.Command {
	return &cli.Command{
		Name:  "runbooks",
		Usage: "Search and read runbooks",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List runbooks",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Filter by title, tags, or when-to-use"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e, err := setup(cmd)
					if err != nil {
						return err
					}
					rbs, err := e.loader.Runbooks(ctx)
					if err != nil {
						return e.fail(err, nil)
					}
					items := render.RunbooksPage(rbs, cmd.String("query"), "").Items
					return e.out.Emit(items, func(w io.Writer) {
						if len(items) == 0 {
							fmt.Fprintln(w, "No matching runbooks.")
							return
						}
						for _, it := range items {
							fmt.Fprintf(w, "  %s%-12s%s %s %s%s%s\n", ux.Bold, it.ID, ux.Reset, it.Title, ux.Dim, strings.Join(it.Tags, ", "), ux.Reset)
						}
					})
				},
			},
			{
				Name:      "show",
				Usage:     "Show one runbook",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e, err := setup(cmd)
					if err != nil {
						return err
					}
					rb, err := e.runbook(ctx, cmd)
					if err != nil {
						return e.fail(err, nil)
					}
					d := render.RunbookDetailFor(rb)
					return e.out.Emit(d, func(w io.Writer) {
						fmt.Fprintf(w, "%s%s%s\n", ux.Bold, d.Title, ux.Reset)
						fmt.Fprintf(w, "%sWhen: %s%s\n", ux.Dim, d.When, ux.Reset)
						heading(w, "Goal")
						fmt.Fprintf(w, "  %s\n", d.Goal)
						heading(w, "Steps")
						for i, s := range d.Steps {
							fmt.Fprintf(w, "  %d. %s\n", i+1, s)
						}
						heading(w, "Escalate")
						fmt.Fprintf(w, "  %s\n\n", d.Escalate)
					})
				},
			},
			{
				Name:      "update",
				Usage:     "Print a runbook's stakeholder update",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e, err := setup(cmd)
					if err != nil {
						return err
					}
					rb, err := e.runbook(ctx, cmd)
					if err != nil {
						return e.fail(err, nil)
					}
					return e.out.Text(render.StakeholderUpdate(rb) + "\n")
				},
			},
		},
	}
}

func (e *env) runbook(ctx context.Context, cmd *cli.Command) (fixtures.Runbook, error) {
	id, err := idArg(cmd, "runbook")
	if err != nil {
		return fixtures.Runbook{}, err
	}
	rbs, err := e.loader.Runbooks(ctx)
	if err != nil {
		return fixtures.Runbook{}, err
	}
	return fixtures.FindRunbook(rbs, id)
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the public status page",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "update", Usage: "Print the customer update text only"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			st, err := e.loader.Status(ctx)
			if err != nil {
				return e.fail(err, nil)
			}
			if cmd.Bool("update") {
				return e.out.Text(render.CustomerUpdate(st) + "\n")
			}
			v := render.StatusPage(st)
			return e.out.Emit(v, func(w io.Writer) {
				fmt.Fprintf(w, "%s●%s %s%s%s  %s\n", dotColor(v.BannerDot), ux.Reset, ux.Bold, v.BannerTitle, ux.Reset, v.BannerPill)
				if v.BannerBody != "" {
					fmt.Fprintf(w, "  %s\n", v.BannerBody)
				}
				fmt.Fprintf(w, "%s%s%s\n", ux.Dim, v.Meta, ux.Reset)

				heading(w, "Services")
				if len(v.Services) == 0 {
					fmt.Fprintln(w, "  No services listed yet.")
				}
				for _, s := range v.Services {
					fmt.Fprintf(w, "  %s●%s %-18s %-12s impact: %s • owner: %s\n", dotColor(s.Dot), ux.Reset, s.Name, s.Status, s.Impact, s.Owner)
				}

				heading(w, "Updates")
				if len(v.Updates) == 0 {
					fmt.Fprintln(w, "  No updates yet.")
				}
				for _, u := range v.Updates {
					fmt.Fprintf(w, "  %s%-6s%s %s%s%s %s\n", ux.Cyan, u.Time, ux.Reset, pillColor(u.Pill), u.Level, ux.Reset, u.Text)
				}

				heading(w, "Customer message")
				fmt.Fprintf(w, "  %s\n\n", v.CustomerMessage)
			})
		},
	}
}

func securityCmd() *cli.Command {
	return &cli.Command{
		Name:  "security",
		Usage: "Show the security dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "flow", Usage: "Expand a response flow stage: alert, triage, validate, contain, or learn"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			sec, loadErr := e.loader.Security(ctx)
			if loadErr != nil {
				e.log.Warn("security dashboard degraded", "err", loadErr)
			}
			v := render.SecurityPage(sec, loadErr, cmd.String("flow"))
			return e.out.Emit(v, func(w io.Writer) { printSecurity(w, v) })
		},
	}
}

func printSecurity(w io.Writer, v render.SecurityView) {
	for _, k := range v.KPIs {
		fmt.Fprintf(w, "  %-18s %s%-8s%s %s%s%s\n", k.Label, ux.Bold, k.Value, ux.Reset, ux.Dim, k.Sub, ux.Reset)
	}

	heading(w, "Threats")
	switch {
	case v.Failed:
		fmt.Fprintf(w, "  %s%s%s\n", ux.Red, render.ThreatsUnavailable, ux.Reset)
	case len(v.Threats) == 0:
		fmt.Fprintln(w, "  No threat data found.")
	}
	for _, t := range v.Threats {
		fmt.Fprintf(w, "  %-16s %-28s %-10s %s\n", t.Vector, t.Threat, t.Risk, t.Status)
	}

	heading(w, "Decisions")
	switch {
	case v.Failed:
		fmt.Fprintf(w, "  %s%s%s\n", ux.Red, render.DecisionsUnavailable, ux.Reset)
	case len(v.Decisions) == 0:
		fmt.Fprintln(w, "  No decision log found.")
	}
	for _, d := range v.Decisions {
		fmt.Fprintf(w, "  %s%s%s %s(%s)%s\n", ux.Bold, d.Decision, ux.Reset, ux.Dim, d.Meta, ux.Reset)
		fmt.Fprintf(w, "    Reason: %s\n    Tradeoff: %s\n    Mitigation: %s\n", d.Reason, d.Tradeoff, d.Mitigation)
	}

	heading(w, "Response flow")
	for i, n := range v.Flow {
		marker := " "
		if v.Selected != nil && v.Selected.Key == n.Key {
			marker = ux.Yellow + "→" + ux.Reset
		}
		fmt.Fprintf(w, "%s %d. %s\n", marker, i+1, n.Title)
	}
	if v.Selected != nil {
		fmt.Fprintln(w)
		for _, l := range v.Selected.Lines {
			fmt.Fprintf(w, "  %s%s:%s %s\n", ux.Bold, l.Label, ux.Reset, l.Text)
		}
	}
	fmt.Fprintln(w)
}

func fixturesCmd() *cli.Command {
	return &cli.Command{
		Name:  "fixtures",
		Usage: "Inspect the fixture documents",
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "Validate every fixture against the schema",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e, err := setup(cmd)
					if err != nil {
						return err
					}
					checker, err := fixtures.NewChecker()
					if err != nil {
						return err
					}
					problems := checker.Check(ctx, e.loader.Source())
					if len(problems) > 0 {
						if !e.out.JSON() {
							for _, p := range problems {
								fmt.Fprintf(e.w, "  %s✗%s %s\n", ux.Red, ux.Reset, p)
							}
						}
						return e.fail(fmt.Errorf("%d fixture problem(s)", len(problems)), problems)
					}
					return e.out.Emit(fixtures.Names, func(w io.Writer) {
						fmt.Fprintf(w, "%s✓%s %d fixtures valid\n", ux.Green, ux.Reset, len(fixtures.Names))
					})
				},
			},
		},
	}
}
