package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apiv1 "github.com/parkjy76/haruplan/server/router/api/v1"
	"github.com/parkjy76/haruplan/server/notifier"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the notification poller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			p, st, svc, closer, err := openService(ctx)
			if err != nil {
				return err
			}
			defer closer()

			logger := newLogger(p)

			e := echo.New()
			e.HideBanner = true
			e.HidePort = true
			apiv1.NewAPIV1Service(p, st, svc, logger).Register(e)

			senders := notifier.SendersFromProfile(p, cmd.OutOrStdout())
			poller := notifier.NewPoller(st, senders, time.Duration(p.PollInterval)*time.Second, logger)

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.Info("server started", "addr", p.ListenAddr(), "mode", p.Mode, "version", p.Version)
				if err := e.Start(p.ListenAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				return poller.Run(ctx)
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer shutdownCancel()
				return e.Shutdown(shutdownCtx)
			})

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Shut down.")
			return nil
		},
	}
}
