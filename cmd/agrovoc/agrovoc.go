// Package agrovoc implements the AGROVOC import command. AGROVOC pins
// its concept scheme URI and distributes labels as SKOS-XL resources.
package agrovoc

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geosemantic/skosload/internal/conf"
	"github.com/geosemantic/skosload/internal/datastore"
	"github.com/geosemantic/skosload/internal/importer"
)

// DefaultSchemeURI is the AGROVOC core concept scheme.
const DefaultSchemeURI = "http://aims.fao.org/aos/agrovoc"

const defaultDescription = "AGROVOC is a multilingual and controlled vocabulary designed to cover concepts and terminology under FAO's areas of interest."

// Command creates the agrovoc command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agrovoc",
		Short: "(Down)load an AGROVOC dump in RDF format into the database",
		Long: `Parse an AGROVOC RDF dump and upsert its concepts and SKOS-XL labels
into the thesaurus tables. Only concepts of the core concept scheme are
imported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate(settings); err != nil {
				return err
			}
			settings.Import.SkosXL = true
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

// setupFlags configures flags specific to the agrovoc command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	imp := &settings.Import

	cmd.Flags().StringVar(&imp.Name, "name", "", "Identifier name for the thesaurus in this instance")
	cmd.Flags().StringVar(&imp.File, "file", "", "Full path to an AGROVOC dump in RDF format")
	cmd.Flags().StringVar(&imp.Format, "format", "", "RDF serialization: ttl, nt or xml (default: from file extension)")
	cmd.Flags().StringVar(&imp.Title, "title", "AGROVOC", "Title to set on the thesaurus record")
	cmd.Flags().StringVar(&imp.Description, "description", defaultDescription, "Description to set on the thesaurus record")
	cmd.Flags().StringVar(&imp.SchemeURI, "scheme-uri", DefaultSchemeURI, "Concept scheme URI whose members are imported")
	cmd.Flags().BoolVarP(&imp.DryRun, "dry-run", "d", false, "Only parse and print the thesaurus file, without performing insertion in the DB")
	cmd.Flags().BoolVar(&imp.Strict, "strict", false, "Treat anomalies and identifier collisions as fatal")
	cmd.Flags().BoolVar(&imp.LowerCase, "force-lower-case", false, "Store all keywords and keyword labels in lower case")
	cmd.Flags().StringVar(&imp.DefaultLang, "default-lang", "en", "Language used for title selection and keyword fallback labels")
	cmd.Flags().StringSliceVar(&imp.Languages, "lang", []string{"fr", "de", "en", "it", "es"}, "Keep only labels with these language tags")
	cmd.Flags().IntVar(&imp.SampleSize, "sample-size", 10, "Number of sample records printed in dry-run mode")
}
