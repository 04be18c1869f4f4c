package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.seanlatimer.dev/folio/internal/bookmarks"
	"go.seanlatimer.dev/folio/internal/querystate"
)

func newSavedCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Manage saved searches",
	}

	cmd.AddCommand(
		newSavedAddCommand(opts),
		newSavedListCommand(opts),
		newSavedShowCommand(opts),
		newSavedUpdateCommand(opts),
		newSavedDeleteCommand(opts),
	)
	return cmd
}

// savedURL builds the URL to store from an explicit URL or from flags.
func savedURL(opts *Options, args []string, query string, tags []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return "", err
	}
	return querystate.Encode(cfg.BasePath, querystate.State{Query: query, Tags: tags}), nil
}

func newSavedAddCommand(opts *Options) *cobra.Command {
	var query string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add <name> [url]",
		Short: "Save a search URL, or build one from --query and --tag",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := savedURL(opts, args[1:], query, tags)
			if err != nil {
				return err
			}
			b, err := bookmarks.Create(args[0], location)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s as %s\n", b.URL, b.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search query")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Active tag (repeatable)")
	return cmd
}

func newSavedListCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := bookmarks.List()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved searches found.")
				return nil
			}
			table := newTable(cmd.OutOrStdout(), []string{"Name", "Key", "URL"})
			for _, b := range list {
				table.Append([]string{b.Name, b.Key, b.URL})
			}
			table.Render()
			return nil
		},
	}
}

func newSavedShowCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a saved search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, ok, err := bookmarks.Find(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", bookmarks.ErrBookmarkNotFound, args[0])
			}
			_, state, err := b.State()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s\n", b.Name)
			fmt.Fprintf(out, "URL: %s\n", b.URL)
			if state.Query != "" {
				fmt.Fprintf(out, "Query: %s\n", state.Query)
			}
			if len(state.Tags) > 0 {
				fmt.Fprintf(out, "Tags: %s\n", strings.Join(state.Tags, ", "))
			}
			if b.Created != "" {
				fmt.Fprintf(out, "Created: %s\n", b.Created)
			}
			if b.Updated != "" {
				fmt.Fprintf(out, "Updated: %s\n", b.Updated)
			}
			return nil
		},
	}
}

func newSavedUpdateCommand(opts *Options) *cobra.Command {
	var query string
	var tags []string

	cmd := &cobra.Command{
		Use:   "update <name> [url]",
		Short: "Replace the URL of a saved search",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := savedURL(opts, args[1:], query, tags)
			if err != nil {
				return err
			}
			if err := bookmarks.Update(args[0], location); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search query")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Active tag (repeatable)")
	return cmd
}

func newSavedDeleteCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"delete"},
		Short:   "Delete a saved search",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bookmarks.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
