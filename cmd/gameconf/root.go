// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	xglog "github.com/ManuGH/gameconf/internal/log"
	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/ManuGH/gameconf/internal/store"
	"github.com/spf13/cobra"
)

const defaultSchemaDir = "./gameconfig"

// app carries what the method commands share.
type app struct {
	stdout    io.Writer
	stderr    io.Writer
	schemaDir string
	logLevel  string
	catalog   *schema.Catalog
	store     *store.Store
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "gameconf <method> [args...]",
		Short:         "Schema driven game server config reader and writer",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			xglog.Configure(xglog.Config{
				Level:   a.logLevel,
				Output:  a.stderr,
				Version: version,
			})
			a.catalog = schema.NewCatalog(a.schemaDir)
			a.store = store.New(nil)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return errors.New("missing method argument")
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.schemaDir, "schemas", envOr("GAMECONF_SCHEMAS", defaultSchemaDir), "directory holding the YAML config schemas")
	flags.StringVar(&a.logLevel, "log-level", os.Getenv("LOG_LEVEL"), "log level (debug, info, warn, error)")

	root.AddCommand(
		newListCmd(a),
		newSchemaCmd(a),
		newReadCmd(a),
		newWriteCmd(a),
		newServeCmd(a),
		newWatchCmd(a),
	)
	return root
}
