package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mixdeck/trackdb/internal/database"
)

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <path>",
		Short: "Print the track id stored for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := s.lib.Lookup(context.Background(), args[0])
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("no track for %s", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
