package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mixdeck/trackdb/internal/database"
)

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracks in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			tracks, err := s.lib.List(context.Background())
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return outputListJSON(cmd, tracks)
			case "table":
				outputListTable(cmd, tracks)
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}

type listOutputEntry struct {
	ID          int64  `json:"id"`
	Artist      string `json:"artist"`
	Title       string `json:"title"`
	Album       string `json:"album"`
	TrackNumber string `json:"trackNumber,omitempty"`
	Duration    int    `json:"duration"`
	Path        string `json:"path"`
}

func outputListJSON(cmd *cobra.Command, tracks []database.TrackSummary) error {
	output := make([]listOutputEntry, 0, len(tracks))
	for _, t := range tracks {
		output = append(output, listOutputEntry{
			ID:          t.ID,
			Artist:      t.Artist,
			Title:       t.Title,
			Album:       t.Album,
			TrackNumber: t.TrackNumber,
			Duration:    t.Duration,
			Path:        t.Path,
		})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// listColumnWidths splits the terminal between the text columns. The id and
// duration columns are narrow and fixed.
func listColumnWidths(termWidth int) (artist, title, path int) {
	// 5 columns with borders and padding, id and duration
	available := termWidth - 5*3 - 6 - 8
	if available < 45 {
		available = 45
	}
	artist = available / 4
	title = available / 3
	path = available - artist - title
	return artist, title, path
}

func outputListTable(cmd *cobra.Command, tracks []database.TrackSummary) {
	if len(tracks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tracks found")
		return
	}

	artistWidth, titleWidth, pathWidth := listColumnWidths(getTerminalWidth())

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Artist", "Title", "Length", "Path"})
	for _, tr := range tracks {
		t.AppendRow(table.Row{
			tr.ID,
			truncate(tr.Artist, artistWidth),
			truncate(tr.Title, titleWidth),
			formatDuration(tr.Duration),
			truncateLeft(tr.Path, pathWidth),
		})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d tracks", len(tracks)), "", ""})
	t.Render()
}
