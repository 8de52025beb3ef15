package database

import (
	"github.com/mixdeck/trackdb/internal/track"
)

// LocationRecord represents a row in the locations table: one physical file,
// independent of its metadata.
type LocationRecord struct {
	ID                int64
	Path              string
	Directory         string
	Filename          string
	Size              int64
	FsDeleted         bool
	NeedsVerification bool
}

// TrackRecord is a tracks row joined with its location.
type TrackRecord struct {
	ID         int64
	LocationID int64
	Path       string
	Size       int64
	Metadata   track.Metadata
	Deleted    bool
}

// TrackSummary is the listing projection of an active track.
type TrackSummary struct {
	ID          int64
	Path        string
	Artist      string
	Title       string
	Album       string
	TrackNumber string
	Duration    int
}
