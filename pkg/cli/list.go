package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.seanlatimer.dev/folio/internal/content"
	"go.seanlatimer.dev/folio/internal/search"
)

func newListCommand(opts *Options) *cobra.Command {
	var kind string
	var tags []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects and posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			k, err := content.ParseKind(kind)
			if err != nil {
				return err
			}

			recs := search.FilterByTags(a.lib.Records(k), tags)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), recs)
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records found.")
				return nil
			}
			renderRecordTable(cmd.OutOrStdout(), recs)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "all", "Collection to list (all, projects, posts)")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Only records with any of these tags (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	return cmd
}
