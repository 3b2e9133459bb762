package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hypergopher/sitesearch"
)

func (a *app) newSearchCommand() *cobra.Command {
	var (
		asJSON bool
		remote bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Query the search index",
		Long: `Runs a query against the built index.json, or against the index served
at search.index_url (or site.base_url) with --remote.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.loadClient(cmd, remote)
			if err != nil {
				return err
			}

			result := client.Search(strings.Join(args, " "))
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&remote, "remote", false, "fetch the index over HTTP instead of reading the output directory")

	return cmd
}

// loadClient returns a client holding the local index.json, or the remote one.
func (a *app) loadClient(cmd *cobra.Command, remote bool) (*sitesearch.Client, error) {
	client := sitesearch.NewClient(sitesearch.Options{
		BaseURL:        a.cfg.Site.BaseURL,
		IndexURL:       a.cfg.Search.IndexURL,
		Logger:         a.logger,
		MaxResults:     a.cfg.Search.MaxResults,
		MinQueryLength: a.cfg.Search.MinQueryLength,
		SummaryLength:  a.cfg.Search.SummaryLength,
	})

	if remote {
		if err := client.Load(cmd.Context()); err != nil {
			return nil, err
		}
		return client, nil
	}

	f, err := os.Open(a.cfg.IndexPath())
	if err != nil {
		return nil, fmt.Errorf("opening index (run \"sitesearch build\" first): %w", err)
	}
	defer f.Close()

	if err := client.LoadFrom(f); err != nil {
		return nil, err
	}
	return client, nil
}

func printResult(w io.Writer, result sitesearch.Result) {
	switch result.State {
	case sitesearch.StateCleared:
		fmt.Fprintln(w, "Query too short")
	case sitesearch.StateNoResults:
		fmt.Fprintln(w, sitesearch.NoResultsMessage)
	default:
		for _, hit := range result.Hits {
			line := hit.Entry.Title
			if hit.Date != "" {
				line += " (" + hit.Date + ")"
			}
			fmt.Fprintf(w, "%s\n  %s\n", line, hit.Entry.Permalink)
			if len(hit.Entry.Tags) > 0 {
				fmt.Fprintf(w, "  tags: %s\n", strings.Join(hit.Entry.Tags, ", "))
			}
		}
	}
}
