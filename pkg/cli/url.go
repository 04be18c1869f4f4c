package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.seanlatimer.dev/folio/internal/querystate"
)

func newURLCommand(opts *Options) *cobra.Command {
	var path string
	var query string
	var tags []string

	cmd := &cobra.Command{
		Use:   "url [existing-url]",
		Short: "Print the canonical search URL for a query and tags",
		Long: "Print the canonical search URL for a query and tags.\n\n" +
			"With an existing URL, its q and tags parameters are used as the starting state.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			base := cfg.BasePath
			state := querystate.State{}
			if len(args) == 1 {
				base, state, err = querystate.Parse(args[0])
				if err != nil {
					return fmt.Errorf("parse url: %w", err)
				}
			}
			if cmd.Flags().Changed("path") {
				base = path
			}
			if cmd.Flags().Changed("query") {
				state.Query = query
			}
			if len(tags) > 0 {
				state.Tags = append(state.Tags, tags...)
			}

			fmt.Fprintln(cmd.OutOrStdout(), querystate.Encode(base, state))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "URL path (default: configured base path)")
	cmd.Flags().StringVar(&query, "query", "", "Search query")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Active tag (repeatable)")
	return cmd
}
