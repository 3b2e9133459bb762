package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hypergopher/sitesearch/tagstore"
)

func (a *app) newTagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the tag vocabulary of the last build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := tagstore.Open(a.cfg.CataloguePath(), a.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			tags, err := store.Tags()
			if err != nil {
				return err
			}

			if len(tags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tags found")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, t := range tags {
				fmt.Fprintf(tw, "%s\t%d\n", t.Tag, t.Count)
			}
			return tw.Flush()
		},
	}
}
