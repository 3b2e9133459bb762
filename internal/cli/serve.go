package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hypergopher/sitesearch/server"
	"github.com/hypergopher/sitesearch/tagstore"
)

func (a *app) newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the output directory with the search API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.loadClient(cmd, false)
			if err != nil {
				return err
			}

			opts := server.Options{
				Addr:      a.cfg.Server.Addr,
				Client:    client,
				StaticDir: a.cfg.Site.OutputDir,
				Logger:    a.logger,
			}
			if addr != "" {
				opts.Addr = addr
			}

			// The catalogue is optional; without it tags are counted from the index.
			store, err := tagstore.Open(a.cfg.CataloguePath(), a.logger)
			if err != nil {
				a.logger.Warn("tag catalogue unavailable", "error", err)
			} else {
				defer store.Close()
				opts.Tags = store
			}

			srv, err := server.New(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")

	return cmd
}
