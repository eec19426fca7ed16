// SPDX-License-Identifier: MIT

package main

import (
	"time"

	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/ManuGH/gameconf/internal/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <serverPath> <schema> [formatId]",
		Short: "Print the config as a JSON line every time the file changes",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := argSchema(a.catalog, args[1])
			if err != nil {
				return err
			}
			formatID := ""
			if len(args) > 2 {
				formatID = argText(args[2])
			}

			w := watch.New(a.store, argText(args[0]), s, formatID).WithDebounce(debounce)
			var writeErr error
			err = w.Run(cmd.Context(), func(rec schema.Record) {
				if err := writeResult(a.stdout, rec); err != nil && writeErr == nil {
					writeErr = err
				}
			})
			if err != nil {
				return err
			}
			return writeErr
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-reading a changed file")
	return cmd
}
