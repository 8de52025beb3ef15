// Package services implements the track library on top of the database
// repositories: the persistence gateway that owns the track cache, and the
// reconciler that keeps locations in step with the filesystem.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mixdeck/trackdb/internal/database"
	"github.com/mixdeck/trackdb/internal/logging"
	"github.com/mixdeck/trackdb/internal/track"
)

// Options tunes gateway policy.
type Options struct {
	// LoadDeleted allows Load to return logically deleted tracks.
	LoadDeleted bool
}

// DefaultOptions returns the gateway defaults.
func DefaultOptions() Options {
	return Options{LoadDeleted: true}
}

// TrackService is the persistence gateway. It hands out at most one live
// *track.Track per id and writes dirty tracks back to the store.
type TrackService struct {
	ctx       *database.Context
	locations *database.LocationRepository
	tracks    *database.TrackRepository
	cues      database.CueStore
	cache     *track.Cache
	opts      Options
	logger    *zap.Logger
}

// NewTrackService wires a gateway. A nil cache or cue store falls back to a
// fresh cache and the SQLite cue repository.
func NewTrackService(dbCtx *database.Context, cache *track.Cache, cues database.CueStore, opts Options, logger *zap.Logger) *TrackService {
	if cache == nil {
		cache = track.NewCache()
	}
	if cues == nil {
		cues = database.NewCueRepository(dbCtx)
	}
	logger = logging.OrNop(logger)
	return &TrackService{
		ctx:       dbCtx,
		locations: database.NewLocationRepository(dbCtx),
		tracks:    database.NewTrackRepository(dbCtx),
		cues:      cues,
		cache:     cache,
		opts:      opts,
		logger:    logger,
	}
}

// Cache exposes the identity cache owned by the gateway.
func (s *TrackService) Cache() *track.Cache {
	return s.cache
}

// TrackIDForLocation returns the id of the track stored for path, deleted
// or not.
func (s *TrackService) TrackIDForLocation(ctx context.Context, path string) (int64, error) {
	return s.tracks.FindIDByPath(ctx, path)
}

// LocationForTrackID returns the path of track id.
func (s *TrackService) LocationForTrackID(ctx context.Context, id int64) (string, error) {
	return s.tracks.FindPathByID(ctx, id)
}

// ExistsByLocation reports whether a track is stored for path.
func (s *TrackService) ExistsByLocation(ctx context.Context, path string) (bool, error) {
	_, err := s.tracks.FindIDByPath(ctx, path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, database.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Load returns the live track for id, reading it from the store on a cache
// miss. Repeated calls return the same instance.
func (s *TrackService) Load(ctx context.Context, id int64) (*track.Track, error) {
	if t, ok := s.cache.Get(id); ok {
		return t, nil
	}

	record, err := s.tracks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Deleted && !s.opts.LoadDeleted {
		return nil, fmt.Errorf("load track %d: deleted: %w", id, database.ErrNotFound)
	}

	cues, err := s.cues.LoadCues(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load cues for track %d: %w", id, err)
	}

	t := track.Restore(record.ID, record.Path, record.Size, record.Metadata, cues, record.Deleted)
	s.cache.Insert(t)
	return t, nil
}

// Save persists t and returns the live instance for its id. Unsaved tracks
// are inserted, dirty tracks updated and clean tracks skipped without
// touching the store. When an insert lands on a track that is already
// cached, the cached instance takes t's state and is returned while t stays
// unassigned; callers must keep the returned track. On failure t keeps its
// dirty flag so the save can be retried.
func (s *TrackService) Save(ctx context.Context, t *track.Track) (*track.Track, error) {
	if t == nil {
		return nil, fmt.Errorf("save track: nil track")
	}
	if !t.IsAssigned() {
		return s.insert(ctx, t)
	}
	if !t.IsDirty() {
		s.logger.Debug("skipping clean track", zap.Int64("track_id", t.ID()))
		return t, nil
	}
	if err := s.update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// SaveAllDirty saves every dirty cached track in id order. One failure does
// not stop the others; all failures are returned joined.
func (s *TrackService) SaveAllDirty(ctx context.Context) error {
	var errs []error
	for _, t := range s.cache.Dirty() {
		if err := s.update(ctx, t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Remove logically deletes track id. A cached instance stays cached and is
// flagged deleted.
func (s *TrackService) Remove(ctx context.Context, id int64) error {
	if err := s.tracks.SetDeleted(ctx, id, true); err != nil {
		return fmt.Errorf("remove track %d: %w", id, err)
	}
	if t, ok := s.cache.Get(id); ok {
		t.SetDeleted(true)
	}
	s.logger.Debug("removed track", zap.Int64("track_id", id))
	return nil
}

// ListActive returns every track not logically deleted.
func (s *TrackService) ListActive(ctx context.Context) ([]database.TrackSummary, error) {
	return s.tracks.ListActive(ctx)
}

// CountActive returns the number of tracks not logically deleted.
func (s *TrackService) CountActive(ctx context.Context) (int64, error) {
	return s.tracks.CountActive(ctx)
}

// ApplyMoves brings the cache in line with committed move repairs: stray
// records that were purged are dropped and moved tracks are relocated in
// place. It never writes to the store.
func (s *TrackService) ApplyMoves(repairs []MoveRepair) {
	for _, repair := range repairs {
		if repair.StrayTrackID != track.UnassignedID {
			s.cache.Delete(repair.StrayTrackID)
		}
		if t, ok := s.cache.Get(repair.TrackID); ok {
			t.Relocate(repair.NewPath, repair.Size)
		}
	}
}

type txStores struct {
	locations *database.LocationRepository
	tracks    *database.TrackRepository
	cues      database.CueStore
}

func (s *TrackService) withTx(ctx context.Context, fn func(txStores) error) error {
	return withTx(ctx, s.ctx, "track service", func(tx *sql.Tx) error {
		cues := s.cues
		if txCues, ok := cues.(database.TxCueStore); ok {
			cues = txCues.WithTx(tx)
		}
		return fn(txStores{
			locations: s.locations.WithTx(tx),
			tracks:    s.tracks.WithTx(tx),
			cues:      cues,
		})
	})
}

func (s *TrackService) insert(ctx context.Context, t *track.Track) (*track.Track, error) {
	meta := t.Metadata()

	var (
		id         int64
		reused     bool
		storedCues []track.CuePoint
	)
	err := s.withTx(ctx, func(st txStores) error {
		locationID, err := st.locations.Create(ctx, t.Path(), t.Size())
		if errors.Is(err, database.ErrConstraintConflict) {
			// The file is being added again, so it exists on disk.
			if _, err := st.locations.MarkVerified(ctx, t.Path()); err != nil {
				return err
			}
			if _, err := st.locations.UpdateSize(ctx, t.Path(), t.Size()); err != nil {
				return err
			}
			locationID, err = st.locations.FindIDByPath(ctx, t.Path())
		}
		if err != nil {
			return err
		}

		id, err = st.tracks.Create(ctx, locationID, meta)
		if errors.Is(err, database.ErrConstraintConflict) {
			reused = true
			id, err = st.tracks.FindIDByLocationID(ctx, locationID)
			if err != nil {
				return err
			}
			err = st.tracks.Update(ctx, id, meta)
		}
		if err != nil {
			return err
		}

		if reused && len(t.CuePoints()) == 0 {
			storedCues, err = st.cues.LoadCues(ctx, id)
		} else {
			err = st.cues.SaveCues(ctx, id, t)
		}
		if err != nil {
			return err
		}

		return st.tracks.SetDeleted(ctx, id, false)
	})
	if err != nil {
		return nil, fmt.Errorf("insert track %s: %w", t.Path(), err)
	}

	if reused {
		s.logger.Debug("re-added track", zap.Int64("track_id", id), zap.String("path", t.Path()))
	}

	live, cached := s.cache.Get(id)
	if cached {
		live.Absorb(t)
	} else {
		if err := t.Assign(id); err != nil {
			return nil, err
		}
		live = t
	}
	if len(storedCues) > 0 {
		live.SetCuePoints(storedCues)
	}
	live.SetDeleted(false)
	live.MarkClean()

	if !cached {
		s.cache.Insert(live)
	}
	return live, nil
}

func (s *TrackService) update(ctx context.Context, t *track.Track) error {
	if live, ok := s.cache.Get(t.ID()); ok && live != t {
		return fmt.Errorf("update track %d: not the cached instance: %w", t.ID(), database.ErrInvariantViolation)
	}
	err := s.withTx(ctx, func(st txStores) error {
		if err := st.tracks.Update(ctx, t.ID(), t.Metadata()); err != nil {
			return err
		}
		return st.cues.SaveCues(ctx, t.ID(), t)
	})
	if err != nil {
		return fmt.Errorf("update track %d: %w", t.ID(), err)
	}
	t.MarkClean()
	return nil
}
