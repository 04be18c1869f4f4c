package cli

import (
	"context"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.seanlatimer.dev/folio/internal/mcp"
)

func newMCPCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server on stdio exposing search tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			// stdout carries the protocol.
			log.SetOutput(cmd.ErrOrStderr())
			log.Debug("starting mcp server on stdio")
			return mcp.NewServer(a.lib, a.engine, a.cfg.BasePath).Serve(ctx)
		},
	}
}
