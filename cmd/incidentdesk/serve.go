package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/incidentdesk/internal/render"
	"github.com/jorge-barreto/incidentdesk/internal/server"
	"github.com/jorge-barreto/incidentdesk/internal/ux"
	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the incident pages and the workflow",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen", Usage: "Listen address (default: config listen, 127.0.0.1:8080)", Sources: cli.EnvVars("INCIDENTDESK_LISTEN")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			addr := cmd.String("listen")
			if addr == "" {
				addr = e.cfg.Listen
			}

			r, err := render.New(e.cfg.Location())
			if err != nil {
				return err
			}
			delays := e.cfg.Delays()
			category := e.cfg.Workflow.Scenario
			srv := server.New(server.Options{
				Loader:   e.loader,
				Renderer: r,
				NewController: func() *workflow.Controller {
					d := delays
					return workflow.NewController(workflow.Options{Delays: &d, Category: category})
				},
				Log: e.log,
			})
			defer srv.Close()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Serve(ctx, addr, srv.Handler(), e.log, func(a net.Addr) {
				fmt.Fprintf(e.w, "%sincidentdesk%s serving on %shttp://%s/%s\n", ux.Bold, ux.Reset, ux.Cyan, a, ux.Reset)
			})
		},
	}
}
