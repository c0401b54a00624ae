// Package load implements the generic SKOS import command.
package load

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geosemantic/skosload/internal/conf"
	"github.com/geosemantic/skosload/internal/datastore"
	"github.com/geosemantic/skosload/internal/importer"
)

// Command creates the load command for importing a plain SKOS thesaurus.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a thesaurus in RDF format into the database",
		Long: `Parse a SKOS thesaurus (GEMET and similar) and upsert its concept
scheme, concepts and labels into the thesaurus tables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate(settings); err != nil {
				return err
			}
			return runImport(cmd.Context(), settings)
		},
	}

	setupFlags(cmd, settings)

	return cmd
}

func validate(settings *conf.Settings) error {
	if settings.Import.File == "" {
		return fmt.Errorf("missing thesaurus rdf file path (--file)")
	}
	if settings.Import.Name == "" {
		return fmt.Errorf("missing identifier name for the thesaurus (--name)")
	}
	return nil
}

func runImport(ctx context.Context, settings *conf.Settings) error {
	var store datastore.Interface
	if !settings.Import.DryRun {
		store = datastore.New(settings)
		if store == nil {
			return fmt.Errorf("no output database enabled in configuration")
		}
		if err := store.Open(); err != nil {
			return err
		}
		defer store.Close()
	}

	_, err := importer.Run(ctx, settings, store, os.Stdout)
	return err
}

// setupFlags configures flags specific to the load command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	imp := &settings.Import

	cmd.Flags().StringVar(&imp.Name, "name", "", "Identifier name for the thesaurus in this instance")
	cmd.Flags().StringVar(&imp.File, "file", "", "Full path to a thesaurus in RDF format")
	cmd.Flags().StringVar(&imp.Format, "format", "", "RDF serialization: ttl, nt or xml (default: from file extension)")
	cmd.Flags().BoolVarP(&imp.DryRun, "dry-run", "d", false, "Only parse and print the thesaurus file, without performing insertion in the DB")
	cmd.Flags().BoolVar(&imp.Strict, "strict", false, "Treat anomalies and identifier collisions as fatal")
	cmd.Flags().BoolVar(&imp.LowerCase, "force-lower-case", false, "Store all keywords and keyword labels in lower case")
	cmd.Flags().StringVar(&imp.DefaultLang, "default-lang", "en", "Language used for title selection and keyword fallback labels")
	cmd.Flags().StringSliceVar(&imp.Languages, "lang", nil, "Keep only labels with these language tags (repeatable, default: keep all)")
	cmd.Flags().IntVar(&imp.SampleSize, "sample-size", 10, "Number of sample records printed in dry-run mode")
}
