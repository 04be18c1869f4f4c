package cli

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.seanlatimer.dev/folio/internal/bookmarks"
	"go.seanlatimer.dev/folio/internal/content"
	"go.seanlatimer.dev/folio/internal/querystate"
	"go.seanlatimer.dev/folio/internal/search"
	"go.seanlatimer.dev/folio/internal/tui"
)

func newBrowseCommand(opts *Options) *cobra.Command {
	var startURL string
	var saved string
	var kind string
	var save bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse and filter records interactively",
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

			location := startURL
			switch {
			case saved != "":
				path, state, err := savedState(saved)
				if err != nil {
					return err
				}
				location = querystate.Encode(path, state)
			case location == "":
				location = a.cfg.BasePath
			}

			router, err := querystate.NewMemoryRouter(location)
			if err != nil {
				return err
			}
			syncer := querystate.New(router, querystate.Options{
				Delay:  a.cfg.Debounce(),
				Logger: log.StandardLogger(),
			})
			defer syncer.Close()
			syncer.Init()

			recs := a.lib.Records(k)
			tags := search.BuildTagIndex(recs).Restrict(a.allowedTags(k)).Tags

			_, err = tui.ShowBrowser(tui.BrowseOptions{
				Records:  recs,
				Tags:     tags,
				Engine:   a.engine,
				Sync:     syncer,
				Location: router.Current,
			})
			if errors.Is(err, tui.ErrCancelled) {
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), router.Current())
			if save {
				return saveInteractive(cmd, router.Current())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startURL, "url", "", "Starting URL (default: configured base path)")
	cmd.Flags().StringVar(&saved, "saved", "", "Start from a saved search")
	cmd.Flags().StringVar(&kind, "kind", "all", "Collection to browse (all, projects, posts)")
	cmd.Flags().BoolVar(&save, "save", false, "Prompt to save the final search")
	return cmd
}

// saveInteractive prompts for a name and stores location under it, asking
// before replacing an existing saved search.
func saveInteractive(cmd *cobra.Command, location string) error {
	list, err := bookmarks.List()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(list))
	for _, b := range list {
		keys = append(keys, b.Key)
	}

	result, err := tui.ShowSaveNameInput(location, keys)
	if errors.Is(err, tui.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	if !result.Exists {
		b, err := bookmarks.Create(result.Name, location)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s as %s\n", b.URL, b.Name)
		return nil
	}

	existing, _, err := bookmarks.Find(result.Name)
	if err != nil {
		return err
	}
	replace, err := tui.ConfirmReplace(existing.Name, existing.URL, location)
	if err != nil {
		return err
	}
	if !replace {
		fmt.Fprintln(cmd.OutOrStdout(), "Saved search unchanged.")
		return nil
	}
	if err := bookmarks.Update(existing.Key, location); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", existing.Name)
	return nil
}
