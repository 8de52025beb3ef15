package database

import (
	sqldb "github.com/mixdeck/trackdb/internal/database/sqlc"
	"github.com/mixdeck/trackdb/internal/track"
)

func mapLocationRow(row sqldb.Location) LocationRecord {
	return LocationRecord{
		ID:                row.ID,
		Path:              row.Path,
		Directory:         row.Directory,
		Filename:          row.Filename,
		Size:              row.Size,
		FsDeleted:         int64ToBool(row.FsDeleted),
		NeedsVerification: int64ToBool(row.NeedsVerification),
	}
}

func mapTrackRow(row sqldb.GetTrackWithLocationRow) TrackRecord {
	return TrackRecord{
		ID:         row.ID,
		LocationID: row.LocationID,
		Path:       row.Path,
		Size:       row.Size,
		Metadata: track.Metadata{
			Artist:       row.Artist,
			Title:        row.Title,
			Album:        row.Album,
			Year:         row.Year,
			Genre:        row.Genre,
			TrackNumber:  row.TrackNumber,
			Comment:      row.Comment,
			URL:          row.Url,
			Duration:     int(row.Duration),
			Bitrate:      int(row.Bitrate),
			SampleRate:   int(row.SampleRate),
			CuePoint:     row.CuePoint,
			BPM:          row.Bpm,
			WaveSummary:  row.Waveform,
			Channels:     int(row.Channels),
			HeaderParsed: int64ToBool(row.HeaderParsed),
		},
		Deleted: int64ToBool(row.Deleted),
	}
}

func mapTrackSummaryRow(row sqldb.ListActiveTracksRow) TrackSummary {
	return TrackSummary{
		ID:          row.ID,
		Path:        row.Path,
		Artist:      row.Artist,
		Title:       row.Title,
		Album:       row.Album,
		TrackNumber: row.TrackNumber,
		Duration:    int(row.Duration),
	}
}

func trackInsertParams(locationID int64, meta track.Metadata) sqldb.InsertTrackParams {
	return sqldb.InsertTrackParams{
		LocationID:   locationID,
		Artist:       meta.Artist,
		Title:        meta.Title,
		Album:        meta.Album,
		Year:         meta.Year,
		Genre:        meta.Genre,
		TrackNumber:  meta.TrackNumber,
		Comment:      meta.Comment,
		Url:          meta.URL,
		Duration:     int64(meta.Duration),
		Bitrate:      int64(meta.Bitrate),
		SampleRate:   int64(meta.SampleRate),
		CuePoint:     meta.CuePoint,
		Bpm:          meta.BPM,
		Waveform:     meta.WaveSummary,
		Channels:     int64(meta.Channels),
		HeaderParsed: boolToInt64(meta.HeaderParsed),
	}
}

// trackUpdateParams covers every mutable column; location_id is not part of
// an update.
func trackUpdateParams(id int64, meta track.Metadata) sqldb.UpdateTrackParams {
	params := trackInsertParams(0, meta)
	return sqldb.UpdateTrackParams{
		Artist:       params.Artist,
		Title:        params.Title,
		Album:        params.Album,
		Year:         params.Year,
		Genre:        params.Genre,
		TrackNumber:  params.TrackNumber,
		Comment:      params.Comment,
		Url:          params.Url,
		Duration:     params.Duration,
		Bitrate:      params.Bitrate,
		SampleRate:   params.SampleRate,
		CuePoint:     params.CuePoint,
		Bpm:          params.Bpm,
		Waveform:     params.Waveform,
		Channels:     params.Channels,
		HeaderParsed: params.HeaderParsed,
		ID:           id,
	}
}

func mapCueRow(row sqldb.Cue) track.CuePoint {
	return track.CuePoint{
		Position: row.Position,
		Length:   row.Length,
		Type:     track.CueType(row.Type),
		HotCue:   int(row.Hotcue),
		Label:    row.Label,
	}
}

func cueInsertParams(trackID int64, cue track.CuePoint) sqldb.InsertCueParams {
	return sqldb.InsertCueParams{
		TrackID:  trackID,
		Position: cue.Position,
		Length:   cue.Length,
		Type:     int64(cue.Type),
		Hotcue:   int64(cue.HotCue),
		Label:    cue.Label,
	}
}
