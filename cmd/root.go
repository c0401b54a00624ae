package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/geosemantic/skosload/cmd/agrovoc"
	"github.com/geosemantic/skosload/cmd/load"
	"github.com/geosemantic/skosload/internal/conf"
	"github.com/geosemantic/skosload/internal/logging"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "skosload",
		Short: "Load RDF/SKOS thesauri into a relational database",
		Long: `skosload parses a thesaurus distributed in RDF/SKOS format (AGROVOC,
GEMET and similar) and loads its concept scheme, concepts and
multilingual labels into the thesaurus tables of a SQLite or MySQL
database.`,
		SilenceUsage: true,
	}

	setupFlags(rootCmd, settings)

	subcommands := []*cobra.Command{
		load.Command(settings),
		agrovoc.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Flags are parsed by now, raise the log level if asked to
		if settings.Debug {
			logging.Init(slog.LevelDebug)
		}
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVar(&settings.Debug, "debug", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Output.SQLite.Path, "sqlite-path", viper.GetString("output.sqlite.path"), "Path to the SQLite database")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Printf("error binding flags: %v\n", err)
	}
}
