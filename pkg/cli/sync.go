package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.seanlatimer.dev/folio/internal/cache"
)

func newSyncCommand(opts *Options) *cobra.Command {
	var status bool
	var remove bool

	cmd := &cobra.Command{
		Use:   "sync [repo-url]",
		Short: "Clone or update the content repository",
		Long: "Clone or update the content repository.\n\n" +
			"The first sync clones repo-url (or content_repo from the config) into the cache.\n" +
			"Later syncs pull the latest commit. Commands load content from the cache\n" +
			"unless --content or content_dir is set.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if remove {
				if err := cache.Remove(); err != nil {
					return err
				}
				fmt.Fprintln(out, "Removed content cache")
				return nil
			}
			if status {
				st, err := cache.GetStatus()
				if err != nil {
					return err
				}
				printCacheStatus(cmd, st)
				return nil
			}

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			repoURL := cfg.ContentRepo
			if len(args) == 1 {
				repoURL = args[0]
			}

			initialized, err := cache.IsCacheInitialized()
			if err != nil {
				return err
			}

			var cachePath string
			if initialized {
				cachePath, err = cache.UpdateCache(cmd.Context())
			} else {
				cachePath, err = cache.InitializeCache(cmd.Context(), repoURL)
			}
			if errors.Is(err, cache.ErrNotInitialized) {
				return fmt.Errorf("%w (or set content_repo in the config)", err)
			}
			if err != nil {
				return err
			}

			st, err := cache.GetStatus()
			if err != nil {
				return err
			}
			verb := "Cloned"
			if initialized {
				verb = "Updated"
			}
			fmt.Fprintf(out, "%s content at %s\n", verb, cachePath)
			if st.HeadCommit != "" {
				fmt.Fprintf(out, "HEAD %s\n", st.HeadCommit)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "Show the cached checkout without syncing")
	cmd.Flags().BoolVar(&remove, "remove", false, "Delete the cached checkout")
	return cmd
}

func printCacheStatus(cmd *cobra.Command, st cache.Status) {
	out := cmd.OutOrStdout()
	if !st.Initialized {
		fmt.Fprintf(out, "No content synced (cache path %s)\n", st.Path)
		return
	}
	fmt.Fprintf(out, "Path: %s\n", st.Path)
	if st.Remote != "" {
		fmt.Fprintf(out, "Remote: %s\n", st.Remote)
	}
	fmt.Fprintf(out, "HEAD: %s\n", st.HeadCommit)
}
