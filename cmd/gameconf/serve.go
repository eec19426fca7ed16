// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"time"

	"github.com/ManuGH/gameconf/internal/api"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type serveOptions struct {
	listen    string
	root      string
	rateLimit int
}

func newServeCmd(a *app) *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the config methods over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := api.New(api.Config{
				ListenAddr: opts.listen,
				Root:       opts.root,
				Catalog:    a.catalog,
				Store:      a.store,
				RateLimit:  opts.rateLimit,
				RateWindow: time.Minute,
			})
			if err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(srv.Start)
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.listen, "listen", envOr("GAMECONF_LISTEN", ":8090"), "HTTP listen address")
	flags.StringVar(&opts.root, "root", envOr("GAMECONF_ROOT", "."), "directory every server_path is confined to")
	flags.IntVar(&opts.rateLimit, "rate-limit", 600, "API requests per minute per client IP (0 disables)")
	return cmd
}
