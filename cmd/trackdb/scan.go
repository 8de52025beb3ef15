package main

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mixdeck/trackdb/internal/usecase"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <dir>",
		Short: "Scan a directory and reconcile the library with it",
		Long: "Walk the directory, add new audio files, flag files that disappeared " +
			"and keep the track id of files that were renamed or moved.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			report, err := s.lib.Scan(context.Background(), args[0])
			if err != nil {
				return err
			}

			outputReport(cmd, report)
			return nil
		},
	}
}

func newReconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Flag unverified files as missing and repair moves",
		Long:  "Run the end of a scan cycle on its own, e.g. after an interrupted scan.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			report, err := s.lib.Reconcile(context.Background())
			if err != nil {
				return err
			}

			outputReport(cmd, report)
			return nil
		},
	}
}

func outputReport(cmd *cobra.Command, report *usecase.ScanReport) {
	out := cmd.OutOrStdout()
	if report.Root != "" {
		fmt.Fprintf(out, "Scanned:     %s\n", report.Root)
		fmt.Fprintf(out, "Files:       %d\n", report.Seen)
		fmt.Fprintf(out, "Known:       %d\n", report.Verified)
		fmt.Fprintf(out, "Added:       %d\n", report.Added)
		fmt.Fprintf(out, "Unreadable:  %d\n", report.Failed)
	}
	fmt.Fprintf(out, "Missing:     %d\n", report.Missing)
	fmt.Fprintf(out, "Moved:       %d\n", len(report.Moves))

	if len(report.Moves) == 0 {
		return
	}

	fmt.Fprintln(out)
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Track", "From", "To"})
	for _, move := range report.Moves {
		t.AppendRow(table.Row{move.TrackID, move.OldPath, move.NewPath})
	}
	t.Render()
}
