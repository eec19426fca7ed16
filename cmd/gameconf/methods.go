// SPDX-License-Identifier: MIT

package main

import (
	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "get_available_configs",
		Aliases: []string{"list"},
		Short:   "List the available config schemas",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeResult(a.stdout, a.catalog.List())
		},
	}
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "get_config_schema <id>",
		Aliases: []string{"schema"},
		Short:   "Print one config schema; null when it does not exist",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.catalog.Document(argText(args[0]))
			if err != nil {
				logger := xglogFor(cmd, "get_config_schema")
				logger.Warn().Err(err).Msg("schema lookup failed")
				return writeResult(a.stdout, nil)
			}
			return writeResult(a.stdout, doc)
		},
	}
}

func newReadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "read_game_config <serverPath> <schema> <formatId>",
		Aliases: []string{"read"},
		Short:   "Read a server's config file, creating it from defaults when missing",
		Args:    cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := argSchema(a.catalog, args[1])
			if err != nil {
				logger := xglogFor(cmd, "read_game_config")
				logger.Error().Err(err).Msg("invalid schema argument")
				return writeResult(a.stdout, schema.Record{})
			}
			rec := a.store.Read(cmd.Context(), argText(args[0]), s, argText(args[2]))
			return writeResult(a.stdout, rec)
		},
	}
}

func newWriteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "save_game_config <serverPath> <schema> <record> <formatId>",
		Aliases: []string{"write"},
		Short:   "Write a server's config file; prints true or false",
		Args:    cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := xglogFor(cmd, "save_game_config")
			s, err := argSchema(a.catalog, args[1])
			if err != nil {
				logger.Error().Err(err).Msg("invalid schema argument")
				return writeResult(a.stdout, false)
			}
			rec, err := argRecord(args[2])
			if err != nil {
				logger.Error().Err(err).Msg("invalid record argument")
				return writeResult(a.stdout, false)
			}
			ok := a.store.Write(cmd.Context(), argText(args[0]), s, rec, argText(args[3]))
			return writeResult(a.stdout, ok)
		},
	}
}
