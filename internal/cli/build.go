package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hypergopher/sitesearch/indexgen"
	"github.com/hypergopher/sitesearch/tagstore"
)

func (a *app) newBuildCommand() *cobra.Command {
	var (
		drafts  bool
		noStore bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build index.json from the content directory",
		Long: `Walks the markdown content tree, writes the search index to the output
directory and records it in the catalogue used by "sitesearch tags".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := indexgen.Build(cmd.Context(), indexgen.Options{
				ContentDir:    a.cfg.Site.ContentDir,
				BaseURL:       a.cfg.Site.BaseURL,
				SummaryWords:  a.cfg.Build.SummaryWords,
				IncludeDrafts: drafts || a.cfg.Build.IncludeDrafts,
				Logger:        a.logger,
			})
			if err != nil {
				return fmt.Errorf("building index: %w", err)
			}

			if err := indexgen.WriteFile(a.cfg.IndexPath(), entries); err != nil {
				return err
			}

			if !noStore {
				if err := os.MkdirAll(a.cfg.Site.DataDir, 0755); err != nil {
					return fmt.Errorf("creating data directory: %w", err)
				}

				store, err := tagstore.Open(a.cfg.CataloguePath(), a.logger)
				if err != nil {
					return err
				}
				defer store.Close()

				if err := store.Replace(entries); err != nil {
					return fmt.Errorf("updating catalogue: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d pages into %s\n", len(entries), a.cfg.IndexPath())
			return nil
		},
	}

	cmd.Flags().BoolVar(&drafts, "drafts", false, "include pages marked draft")
	cmd.Flags().BoolVar(&noStore, "no-catalogue", false, "skip updating the tag catalogue")

	return cmd
}
