package database

import (
	"context"
	"database/sql"
	"fmt"

	sqldb "github.com/mixdeck/trackdb/internal/database/sqlc"
	"github.com/mixdeck/trackdb/internal/track"
)

// TrackRepository is the store of logical track records. Each record
// references exactly one location.
type TrackRepository struct {
	ctx *Context
}

func NewTrackRepository(dbCtx *Context) *TrackRepository {
	return &TrackRepository{ctx: dbCtx}
}

// WithTx returns a repository whose statements run inside tx.
func (r *TrackRepository) WithTx(tx *sql.Tx) *TrackRepository {
	return &TrackRepository{ctx: txContext(r.ctx, tx)}
}

// Create inserts an active track record for locationID. A location that
// already owns a record yields ErrConstraintConflict.
func (r *TrackRepository) Create(ctx context.Context, locationID int64, meta track.Metadata) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("track repository: missing database context")
	}

	res, err := queries.InsertTrack(ctx, trackInsertParams(locationID, meta))
	if err != nil {
		return 0, classify("insert track", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, classify("insert track", err)
	}
	return id, nil
}

// FindByID returns the record joined with its location, whatever its
// deletion state.
func (r *TrackRepository) FindByID(ctx context.Context, id int64) (*TrackRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("track repository: missing database context")
	}

	row, err := queries.GetTrackWithLocation(ctx, id)
	if err != nil {
		return nil, classify("find track", err)
	}

	record := mapTrackRow(row)
	return &record, nil
}

func (r *TrackRepository) FindIDByLocationID(ctx context.Context, locationID int64) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("track repository: missing database context")
	}

	id, err := queries.FindTrackIDByLocationID(ctx, locationID)
	if err != nil {
		return 0, classify("find track by location", err)
	}
	return id, nil
}

func (r *TrackRepository) FindIDByPath(ctx context.Context, path string) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("track repository: missing database context")
	}

	id, err := queries.FindTrackIDByPath(ctx, path)
	if err != nil {
		return 0, classify("find track by path", err)
	}
	return id, nil
}

func (r *TrackRepository) FindPathByID(ctx context.Context, id int64) (string, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return "", fmt.Errorf("track repository: missing database context")
	}

	path, err := queries.FindTrackPathByID(ctx, id)
	if err != nil {
		return "", classify("find track path", err)
	}
	return path, nil
}

// Update writes every mutable field of record id. The location reference is
// left untouched.
func (r *TrackRepository) Update(ctx context.Context, id int64, meta track.Metadata) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("track repository: missing database context")
	}

	affected, err := queries.UpdateTrack(ctx, trackUpdateParams(id, meta))
	if err != nil {
		return classify("update track", err)
	}
	if affected == 0 {
		return fmt.Errorf("update track %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *TrackRepository) SetDeleted(ctx context.Context, id int64, deleted bool) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("track repository: missing database context")
	}

	affected, err := queries.SetTrackDeleted(ctx, sqldb.SetTrackDeletedParams{
		Deleted: boolToInt64(deleted),
		ID:      id,
	})
	if err != nil {
		return classify("set track deleted", err)
	}
	if affected == 0 {
		return fmt.Errorf("set track %d deleted: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteByLocationID physically removes the record owning locationID. Only
// move repair uses this.
func (r *TrackRepository) DeleteByLocationID(ctx context.Context, locationID int64) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("track repository: missing database context")
	}

	affected, err := queries.DeleteTrackByLocationID(ctx, locationID)
	if err != nil {
		return false, classify("delete track by location", err)
	}
	return affected > 0, nil
}

// Relocate repoints the record referencing oldLocationID at newLocationID.
func (r *TrackRepository) Relocate(ctx context.Context, oldLocationID, newLocationID int64) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("track repository: missing database context")
	}

	affected, err := queries.RelocateTrack(ctx, sqldb.RelocateTrackParams{
		NewLocationID: newLocationID,
		OldLocationID: oldLocationID,
	})
	if err != nil {
		return 0, classify("relocate track", err)
	}
	return affected, nil
}

// ListActive returns every track without the logical-deletion flag.
func (r *TrackRepository) ListActive(ctx context.Context) ([]TrackSummary, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("track repository: missing database context")
	}

	rows, err := queries.ListActiveTracks(ctx)
	if err != nil {
		return nil, classify("list active tracks", err)
	}

	result := make([]TrackSummary, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapTrackSummaryRow(row))
	}
	return result, nil
}

func (r *TrackRepository) CountActive(ctx context.Context) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("track repository: missing database context")
	}

	count, err := queries.CountActiveTracks(ctx)
	if err != nil {
		return 0, classify("count active tracks", err)
	}
	return count, nil
}
