package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/geosemantic/skosload/cmd"
	"github.com/geosemantic/skosload/internal/conf"
	"github.com/geosemantic/skosload/internal/datastore"
	"github.com/geosemantic/skosload/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	if settings.Log.Enabled {
		if err := datastore.InitializeLogger(settings.Log.Path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		defer datastore.CloseLogger()
	}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
