package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.seanlatimer.dev/folio/internal/server"
)

func newServeCommand(opts *Options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				a.cfg.ListenAddr = addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.lib, server.Options{
				BasePath:    a.cfg.BasePath,
				Engine:      a.engine,
				AllowedTags: a.cfg.AllowedTags,
			})
			log.WithField("addr", a.cfg.ListenAddr).Info("serving search api")
			return srv.Run(ctx, a.cfg.ListenAddr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: configured listen_addr)")
	return cmd
}
