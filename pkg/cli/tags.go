package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.seanlatimer.dev/folio/internal/content"
	"go.seanlatimer.dev/folio/internal/search"
)

func newTagsCommand(opts *Options) *cobra.Command {
	var kind string
	var popular int
	var restrict bool
	var featured bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Show tag usage across projects and posts",
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

			projectTags := a.allowedTags(content.KindProjects)
			postTags := a.allowedTags(content.KindPosts)
			projects := search.BuildTagIndex(a.lib.ProjectRecords())
			posts := search.BuildTagIndex(a.lib.PostRecords())
			if restrict {
				projects = projects.Restrict(projectTags)
				posts = posts.Restrict(postTags)
			}
			if featured {
				projectTags = content.FeaturedProjectTags
				projects = projects.Restrict(projectTags)
			}

			out := cmd.OutOrStdout()
			if k != content.KindAll {
				idx := projects
				if k == content.KindPosts {
					idx = posts
				}
				list := idx.List()
				if asJSON {
					return writeJSON(out, list)
				}
				if len(list) == 0 {
					fmt.Fprintln(out, "No tags found.")
					return nil
				}
				table := newTable(out, []string{"Tag", "Count"})
				for _, tc := range list {
					table.Append([]string{tc.Tag, strconv.Itoa(tc.Count)})
				}
				table.Render()
				return nil
			}

			seed := make([]string, 0, len(projectTags)+len(postTags))
			seed = append(seed, projectTags...)
			seed = append(seed, postTags...)
			combined := search.CombineTagCounts(projects, posts, seed...)
			if popular > 0 {
				combined = search.Popular(combined, popular)
			}
			if asJSON {
				return writeJSON(out, combined)
			}
			if len(combined) == 0 {
				fmt.Fprintln(out, "No tags found.")
				return nil
			}
			table := newTable(out, []string{"Tag", "Projects", "Posts", "Total"})
			for _, cc := range combined {
				table.Append([]string{
					cc.Tag,
					strconv.Itoa(cc.Projects),
					strconv.Itoa(cc.Posts),
					strconv.Itoa(cc.Total),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "all", "Collection to index (all, projects, posts)")
	cmd.Flags().IntVar(&popular, "popular", 0, "Show only the n most used tags")
	cmd.Flags().BoolVar(&restrict, "allowed", false, "Only show allow-listed filter tags")
	cmd.Flags().BoolVar(&featured, "featured", false, "Limit project tags to the featured set")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print tags as JSON")
	return cmd
}
