package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

func parseTrackID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid track id: %s", arg)
	}
	return id, nil
}

// formatDuration renders seconds as m:ss, or h:mm:ss for long mixes.
func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	h, m, s := seconds/3600, (seconds/60)%60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func getTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// truncate shortens s to maxWidth display cells, counting wide runes twice.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// truncateLeft keeps the end of s, which is the informative part of a path.
func truncateLeft(s string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.TruncateLeft(s, runewidth.StringWidth(s)-maxWidth+1, "…")
}
