package main

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{
		0:    "-",
		59:   "0:59",
		215:  "3:35",
		3725: "1:02:05",
	}
	for seconds, want := range cases {
		if got := formatDuration(seconds); got != want {
			t.Fatalf("formatDuration(%d) = %q, want %q", seconds, got, want)
		}
	}
}

func TestParseTrackID(t *testing.T) {
	if id, err := parseTrackID("42"); err != nil || id != 42 {
		t.Fatalf("parseTrackID(42) = %d, %v", id, err)
	}
	for _, arg := range []string{"0", "-3", "abc"} {
		if _, err := parseTrackID(arg); err == nil {
			t.Fatalf("expected error for %q", arg)
		}
	}
}

func TestTruncateKeepsWidthLimit(t *testing.T) {
	long := "/music/very/long/directory/structure/track.mp3"
	got := truncateLeft(long, 20)
	if w := runewidth.StringWidth(got); w > 20 {
		t.Fatalf("truncateLeft width %d exceeds 20: %q", w, got)
	}
	if got[len(got)-len("track.mp3"):] != "track.mp3" {
		t.Fatalf("expected file name to survive, got %q", got)
	}

	if got := truncate("short", 20); got != "short" {
		t.Fatalf("expected short string unchanged, got %q", got)
	}
	if w := runewidth.StringWidth(truncate("日本語のタイトルです", 8)); w > 8 {
		t.Fatalf("truncate width %d exceeds 8", w)
	}
}
