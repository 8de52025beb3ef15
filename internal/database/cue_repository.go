package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mixdeck/trackdb/internal/track"
)

// CueStore persists the cue points of a track. Implementations own their
// durability; errors must be returned, not swallowed.
type CueStore interface {
	SaveCues(ctx context.Context, trackID int64, t *track.Track) error
	LoadCues(ctx context.Context, trackID int64) ([]track.CuePoint, error)
}

// TxCueStore is a CueStore that can join an open transaction.
type TxCueStore interface {
	CueStore
	WithTx(tx *sql.Tx) CueStore
}

// CueRepository is the SQLite cue store backed by the cues table.
type CueRepository struct {
	ctx *Context
}

func NewCueRepository(dbCtx *Context) *CueRepository {
	return &CueRepository{ctx: dbCtx}
}

func (r *CueRepository) WithTx(tx *sql.Tx) CueStore {
	return &CueRepository{ctx: txContext(r.ctx, tx)}
}

// SaveCues replaces the stored cue points of trackID with those of t.
func (r *CueRepository) SaveCues(ctx context.Context, trackID int64, t *track.Track) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("cue repository: missing database context")
	}

	if _, err := queries.DeleteCuesByTrack(ctx, trackID); err != nil {
		return classify("delete cues", err)
	}
	for _, cue := range t.CuePoints() {
		if err := queries.InsertCue(ctx, cueInsertParams(trackID, cue)); err != nil {
			return classify("insert cue", err)
		}
	}
	return nil
}

// LoadCues returns the cue points of trackID ordered by position.
func (r *CueRepository) LoadCues(ctx context.Context, trackID int64) ([]track.CuePoint, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("cue repository: missing database context")
	}

	rows, err := queries.ListCuesByTrack(ctx, trackID)
	if err != nil {
		return nil, classify("list cues", err)
	}

	cues := make([]track.CuePoint, 0, len(rows))
	for _, row := range rows {
		cues = append(cues, mapCueRow(row))
	}
	return cues, nil
}
