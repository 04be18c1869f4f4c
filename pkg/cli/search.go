package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.seanlatimer.dev/folio/internal/content"
	"go.seanlatimer.dev/folio/internal/querystate"
	"go.seanlatimer.dev/folio/internal/records"
	"go.seanlatimer.dev/folio/internal/search"
	"go.seanlatimer.dev/folio/internal/server"
)

func newSearchCommand(opts *Options) *cobra.Command {
	var kind string
	var tags []string
	var threshold float64
	var limit int
	var saved string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search projects and posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			k, err := content.ParseKind(kind)
			if err != nil {
				return err
			}
			if limit < 0 {
				return errors.New("limit must be zero or positive")
			}

			state := querystate.State{}
			if saved != "" {
				_, state, err = savedState(saved)
				if err != nil {
					return err
				}
			}
			if len(args) > 0 {
				state.Query = strings.Join(args, " ")
			}
			if len(tags) > 0 {
				state.Tags = tags
			}
			state = state.Normalize()
			if state.IsZero() {
				return errors.New("search requires a query, a tag, or --saved")
			}

			engine := a.engine
			if cmd.Flags().Changed("threshold") {
				engine = search.NewEngine(threshold)
			}

			results := engine.Search(a.lib.Records(k), state.Query, state.Tags)
			total := len(results)
			if limit > 0 && len(results) > limit {
				results = results[:limit]
			}
			location := querystate.Encode(a.cfg.BasePath, state)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), server.SearchResponse{
					Query:   state.Query,
					Tags:    state.Tags,
					URL:     location,
					Results: server.Hits(results, state.Query),
					Total:   total,
				})
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No results found.")
				fmt.Fprintf(out, "url: %s\n", location)
				return nil
			}
			for i, r := range results {
				printResult(cmd, i+1, r, state.Query)
			}
			if total > len(results) {
				fmt.Fprintf(out, "Showing %d of %d results\n", len(results), total)
			}
			fmt.Fprintf(out, "url: %s\n", location)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "all", "Collection to search (all, projects, posts)")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Only records with any of these tags (repeatable)")
	cmd.Flags().Float64Var(&threshold, "threshold", search.DefaultThreshold, "Minimum relevance between 0 and 1")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum results to print (0 for all)")
	cmd.Flags().StringVar(&saved, "saved", "", "Start from a saved search")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}

func printResult(cmd *cobra.Command, n int, r search.Result, query string) {
	out := cmd.OutOrStdout()
	rec := r.Record

	line := fmt.Sprintf("%d. %s", n, highlight(rec.Title, query))
	if date := records.Value(rec.Date); date != "" {
		line += " " + color.HiBlackString("(%s)", date)
	}
	if query != "" {
		line += " " + color.HiBlackString("%.2f", r.Score)
	}
	fmt.Fprintln(out, line)

	if rec.Description != "" {
		fmt.Fprintf(out, "   %s\n", highlight(rec.Description, query))
	}
	meta := records.Value(rec.Href)
	if len(rec.Tags) > 0 {
		meta += "  " + color.CyanString("#%s", strings.Join(rec.Tags, " #"))
	}
	fmt.Fprintf(out, "   %s\n", meta)
}
