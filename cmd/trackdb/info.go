package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mixdeck/trackdb/internal/track"
)

func newInfoCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "info <id>",
		Short: "Show a track's metadata and cue points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTrackID(args[0])
			if err != nil {
				return err
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.lib.Get(context.Background(), id)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return outputInfoJSON(cmd, t)
			case "table":
				outputInfoTable(cmd, t)
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}

type cueOutputEntry struct {
	Position int64  `json:"position"`
	Length   int64  `json:"length,omitempty"`
	Type     int    `json:"type"`
	HotCue   int    `json:"hotcue"`
	Label    string `json:"label,omitempty"`
}

type infoOutputEntry struct {
	ID          int64            `json:"id"`
	Path        string           `json:"path"`
	Size        int64            `json:"size"`
	Artist      string           `json:"artist"`
	Title       string           `json:"title"`
	Album       string           `json:"album"`
	Year        string           `json:"year,omitempty"`
	Genre       string           `json:"genre,omitempty"`
	TrackNumber string           `json:"trackNumber,omitempty"`
	Comment     string           `json:"comment,omitempty"`
	Duration    int              `json:"duration"`
	Bitrate     int              `json:"bitrate"`
	SampleRate  int              `json:"sampleRate"`
	Channels    int              `json:"channels"`
	BPM         float64          `json:"bpm"`
	Deleted     bool             `json:"deleted"`
	Cues        []cueOutputEntry `json:"cues"`
}

func outputInfoJSON(cmd *cobra.Command, t *track.Track) error {
	meta := t.Metadata()
	output := infoOutputEntry{
		ID:          t.ID(),
		Path:        t.Path(),
		Size:        t.Size(),
		Artist:      meta.Artist,
		Title:       meta.Title,
		Album:       meta.Album,
		Year:        meta.Year,
		Genre:       meta.Genre,
		TrackNumber: meta.TrackNumber,
		Comment:     meta.Comment,
		Duration:    meta.Duration,
		Bitrate:     meta.Bitrate,
		SampleRate:  meta.SampleRate,
		Channels:    meta.Channels,
		BPM:         meta.BPM,
		Deleted:     t.IsDeleted(),
		Cues:        []cueOutputEntry{},
	}
	for _, cue := range t.CuePoints() {
		output.Cues = append(output.Cues, cueOutputEntry{
			Position: cue.Position,
			Length:   cue.Length,
			Type:     int(cue.Type),
			HotCue:   cue.HotCue,
			Label:    cue.Label,
		})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func outputInfoTable(cmd *cobra.Command, t *track.Track) {
	meta := t.Metadata()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "ID:          %d\n", t.ID())
	fmt.Fprintf(out, "Path:        %s\n", t.Path())
	fmt.Fprintf(out, "Size:        %d\n", t.Size())
	fmt.Fprintf(out, "Artist:      %s\n", meta.Artist)
	fmt.Fprintf(out, "Title:       %s\n", meta.Title)
	fmt.Fprintf(out, "Album:       %s\n", meta.Album)
	fmt.Fprintf(out, "Year:        %s\n", meta.Year)
	fmt.Fprintf(out, "Genre:       %s\n", meta.Genre)
	fmt.Fprintf(out, "Track:       %s\n", meta.TrackNumber)
	fmt.Fprintf(out, "Duration:    %s\n", formatDuration(meta.Duration))
	fmt.Fprintf(out, "BPM:         %.2f\n", meta.BPM)
	fmt.Fprintf(out, "Deleted:     %t\n", t.IsDeleted())

	cues := t.CuePoints()
	if len(cues) == 0 {
		return
	}

	fmt.Fprintln(out)
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Position", "Length", "Type", "Hot Cue", "Label"})
	for _, cue := range cues {
		hotcue := "-"
		if cue.HotCue >= 0 {
			hotcue = fmt.Sprint(cue.HotCue + 1)
		}
		tw.AppendRow(table.Row{cue.Position, cue.Length, cueTypeName(cue.Type), hotcue, cue.Label})
	}
	tw.Render()
}

func cueTypeName(t track.CueType) string {
	switch t {
	case track.CueTypeCue:
		return "cue"
	case track.CueTypeLoad:
		return "load"
	case track.CueTypeHotCue:
		return "hotcue"
	case track.CueTypeLoop:
		return "loop"
	case track.CueTypeJump:
		return "jump"
	default:
		return "invalid"
	}
}
