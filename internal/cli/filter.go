package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hypergopher/sitesearch/filterpanel"
)

var errNoPostsContainer = errors.New("page has no posts container")

func (a *app) newFilterCommand() *cobra.Command {
	var (
		asJSON    bool
		tags      []string
		yearMonth string
	)

	cmd := &cobra.Command{
		Use:   "filter <page.html>",
		Short: "Apply the post filters to a rendered listing page",
		Long: `Reads the post cards of a rendered page and prints the ones left
visible by the year-month and tag filters. A card is shown when it is in
the month and carries any of the tags. The month selected in the page
applies unless --year-month is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := filterpanel.ParseFile(args[0])
			if err != nil {
				return err
			}

			panel := filterpanel.FromPage(page)
			if panel == nil {
				return fmt.Errorf("%s: %w", args[0], errNoPostsContainer)
			}

			if cmd.Flags().Changed("year-month") {
				panel.SelectYearMonth(yearMonth)
			}
			for _, tag := range tags {
				panel.AddTag(tag)
			}
			a.logger.Debug("filters applied",
				"year_month", panel.SelectedYearMonth(),
				"tags", panel.SelectedTags(),
				"visible", panel.VisibleCount(),
			)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(panel.View())
			}

			for _, card := range panel.VisibleCards() {
				fmt.Fprintln(out, card.URL)
			}
			fmt.Fprintf(out, "%d of %d posts\n", panel.VisibleCount(), len(panel.Cards()))
			return nil
		},
	}

	cmd.Flags().StringVar(&yearMonth, "year-month", "", "only posts from this month (YYYY-MM)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "only posts with any of these tags (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the panel state as JSON")

	return cmd
}
