package cli

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type Options struct {
	ConfigPath string
	ContentDir string
	Verbose    bool
	Quiet      bool
}

var Version = "dev"

func Execute() error {
	opts := &Options{}
	root := NewRootCommand(opts)
	return root.Execute()
}

func NewRootCommand(opts *Options) *cobra.Command {
	root := &cobra.Command{
		Use:           "folio",
		Short:         "Search and browse portfolio projects and posts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(opts, cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file path")
	root.PersistentFlags().StringVar(&opts.ContentDir, "content", "", "Content directory (default: built-in content)")
	root.PersistentFlags().BoolVar(&opts.Verbose, "verbose", false, "Enable verbose output")
	root.PersistentFlags().BoolVar(&opts.Quiet, "quiet", false, "Suppress non-error output")

	root.AddCommand(
		newListCommand(opts),
		newSearchCommand(opts),
		newTagsCommand(opts),
		newURLCommand(opts),
		newBrowseCommand(opts),
		newServeCommand(opts),
		newMCPCommand(opts),
		newSavedCommand(opts),
		newSyncCommand(opts),
	)

	root.Version = Version
	root.SetVersionTemplate(fmt.Sprintf("folio %s\n", Version))

	return root
}

func setupLogging(opts *Options, out io.Writer) {
	log.SetOutput(out)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	switch {
	case opts.Verbose:
		log.SetLevel(log.DebugLevel)
	case opts.Quiet:
		log.SetLevel(log.WarnLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

func ExitWithError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
