package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	sqldb "github.com/mixdeck/trackdb/internal/database/sqlc"
)

// LocationRepository is the store of physical file locations.
type LocationRepository struct {
	ctx *Context
}

func NewLocationRepository(dbCtx *Context) *LocationRepository {
	return &LocationRepository{ctx: dbCtx}
}

// WithTx returns a repository whose statements run inside tx.
func (r *LocationRepository) WithTx(tx *sql.Tx) *LocationRepository {
	return &LocationRepository{ctx: txContext(r.ctx, tx)}
}

// Create inserts a location for path. A path that already exists yields
// ErrConstraintConflict.
func (r *LocationRepository) Create(ctx context.Context, path string, size int64) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("location repository: missing database context")
	}

	res, err := queries.InsertLocation(ctx, sqldb.InsertLocationParams{
		Path:      path,
		Directory: filepath.Dir(path),
		Filename:  filepath.Base(path),
		Size:      size,
	})
	if err != nil {
		return 0, classify("insert location", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, classify("insert location", err)
	}
	return id, nil
}

func (r *LocationRepository) FindByID(ctx context.Context, id int64) (*LocationRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("location repository: missing database context")
	}

	row, err := queries.FindLocationByID(ctx, id)
	if err != nil {
		return nil, classify("find location", err)
	}

	record := mapLocationRow(row)
	return &record, nil
}

func (r *LocationRepository) FindByPath(ctx context.Context, path string) (*LocationRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("location repository: missing database context")
	}

	row, err := queries.FindLocationByPath(ctx, path)
	if err != nil {
		return nil, classify("find location by path", err)
	}

	record := mapLocationRow(row)
	return &record, nil
}

func (r *LocationRepository) FindIDByPath(ctx context.Context, path string) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("location repository: missing database context")
	}

	id, err := queries.FindLocationIDByPath(ctx, path)
	if err != nil {
		return 0, classify("find location id", err)
	}
	return id, nil
}

// InvalidateUnder flags every location in directory, or below it, as
// needing verification.
func (r *LocationRepository) InvalidateUnder(ctx context.Context, directory string) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("location repository: missing database context")
	}

	dir, prefix := directoryScope(directory)
	affected, err := queries.InvalidateLocationsUnder(ctx, sqldb.InvalidateLocationsUnderParams{
		Directory: dir,
		Prefix:    prefix,
	})
	if err != nil {
		return 0, classify("invalidate locations", err)
	}
	return affected, nil
}

// MarkVerified clears both verification flags for path. It reports whether
// a location matched.
func (r *LocationRepository) MarkVerified(ctx context.Context, path string) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("location repository: missing database context")
	}

	affected, err := queries.MarkLocationVerified(ctx, path)
	if err != nil {
		return false, classify("mark location verified", err)
	}
	return affected > 0, nil
}

// UpdateSize records the current size of the file at path. It reports
// whether the stored size changed.
func (r *LocationRepository) UpdateSize(ctx context.Context, path string, size int64) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("location repository: missing database context")
	}

	affected, err := queries.UpdateLocationSize(ctx, sqldb.UpdateLocationSizeParams{Size: size, Path: path})
	if err != nil {
		return false, classify("update location size", err)
	}
	return affected > 0, nil
}

func (r *LocationRepository) MarkUnverifiedDeleted(ctx context.Context) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("location repository: missing database context")
	}

	affected, err := queries.MarkUnverifiedLocationsDeleted(ctx)
	if err != nil {
		return 0, classify("mark unverified locations deleted", err)
	}
	return affected, nil
}

// MarkDeletedUnder flags every location in directory, or below it, as gone
// from disk.
func (r *LocationRepository) MarkDeletedUnder(ctx context.Context, directory string) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("location repository: missing database context")
	}

	dir, prefix := directoryScope(directory)
	affected, err := queries.MarkLocationsDeletedUnder(ctx, sqldb.MarkLocationsDeletedUnderParams{
		Directory: dir,
		Prefix:    prefix,
	})
	if err != nil {
		return 0, classify("mark locations deleted", err)
	}
	return affected, nil
}

func (r *LocationRepository) ListDeleted(ctx context.Context) ([]LocationRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("location repository: missing database context")
	}

	rows, err := queries.ListDeletedLocations(ctx)
	if err != nil {
		return nil, classify("list deleted locations", err)
	}

	result := make([]LocationRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapLocationRow(row))
	}
	return result, nil
}

// FindMoveCandidates returns present locations, other than loc, with the
// same filename and size as loc.
func (r *LocationRepository) FindMoveCandidates(ctx context.Context, loc LocationRecord) ([]LocationRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("location repository: missing database context")
	}

	rows, err := queries.FindMoveCandidates(ctx, sqldb.FindMoveCandidatesParams{
		Filename: loc.Filename,
		Size:     loc.Size,
		ID:       loc.ID,
	})
	if err != nil {
		return nil, classify("find move candidates", err)
	}

	result := make([]LocationRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapLocationRow(row))
	}
	return result, nil
}

func (r *LocationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("location repository: missing database context")
	}

	affected, err := queries.DeleteLocationByID(ctx, id)
	if err != nil {
		return false, classify("delete location", err)
	}
	return affected > 0, nil
}

func (r *LocationRepository) Count(ctx context.Context) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("location repository: missing database context")
	}

	count, err := queries.CountLocations(ctx)
	if err != nil {
		return 0, classify("count locations", err)
	}
	return count, nil
}

// directoryScope returns the cleaned directory and the prefix matching its
// subdirectories.
func directoryScope(directory string) (string, string) {
	dir := filepath.Clean(directory)
	sep := string(filepath.Separator)
	if strings.HasSuffix(dir, sep) {
		return dir, dir
	}
	return dir, dir + sep
}
