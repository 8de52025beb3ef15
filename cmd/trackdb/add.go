package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>...",
		Short: "Add audio files to the library",
		Long:  "Read the tags of each file and store it. Adding a removed file restores its original track.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			saved, err := s.lib.Import(context.Background(), args)
			for _, t := range saved {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", t.ID(), t.Path())
			}
			return err
		},
	}
}
