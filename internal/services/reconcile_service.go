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

// MoveRepair describes one committed file move: the track stored for the
// old location now references the new one.
type MoveRepair struct {
	TrackID       int64
	OldLocationID int64
	NewLocationID int64
	OldPath       string
	NewPath       string
	Size          int64
	// StrayTrackID is the record created for the new location before the
	// move was detected. It has been purged. Zero when there was none.
	StrayTrackID int64
}

// ReconcileService drives the verification state of locations through a
// scan cycle and repairs moved files.
type ReconcileService struct {
	ctx       *database.Context
	locations *database.LocationRepository
	tracks    *database.TrackRepository
	logger    *zap.Logger
}

func NewReconcileService(dbCtx *database.Context, logger *zap.Logger) *ReconcileService {
	logger = logging.OrNop(logger)
	return &ReconcileService{
		ctx:       dbCtx,
		locations: database.NewLocationRepository(dbCtx),
		tracks:    database.NewTrackRepository(dbCtx),
		logger:    logger,
	}
}

// InvalidateLocations flags every location in directory or below it as
// awaiting verification.
func (s *ReconcileService) InvalidateLocations(ctx context.Context, directory string) (int64, error) {
	return s.locations.InvalidateUnder(ctx, directory)
}

// MarkVerified records that the scanner saw path. It reports false when no
// location is stored for path.
func (s *ReconcileService) MarkVerified(ctx context.Context, path string) (bool, error) {
	return s.locations.MarkVerified(ctx, path)
}

// RefreshSize stores the size the scanner saw for path, so a re-tagged file
// can still be matched if it moves later.
func (s *ReconcileService) RefreshSize(ctx context.Context, path string, size int64) (bool, error) {
	return s.locations.UpdateSize(ctx, path, size)
}

// MarkUnverifiedAsDeleted flags every location the scan did not verify as
// gone from the filesystem.
func (s *ReconcileService) MarkUnverifiedAsDeleted(ctx context.Context) (int64, error) {
	return s.locations.MarkUnverifiedDeleted(ctx)
}

// MarkLocationsAsDeleted flags a whole directory tree as gone.
func (s *ReconcileService) MarkLocationsAsDeleted(ctx context.Context, directory string) (int64, error) {
	return s.locations.MarkDeletedUnder(ctx, directory)
}

// DetectMovedFiles pairs each filesystem-deleted location with the single
// live location sharing its filename and size, and moves the original
// track onto it. The run is one transaction: an ambiguous match aborts it
// with database.ErrInvariantViolation and no repair is kept.
func (s *ReconcileService) DetectMovedFiles(ctx context.Context) ([]MoveRepair, error) {
	var repairs []MoveRepair

	err := withTx(ctx, s.ctx, "detect moved files", func(tx *sql.Tx) error {
		locations := s.locations.WithTx(tx)
		tracks := s.tracks.WithTx(tx)

		deleted, err := locations.ListDeleted(ctx)
		if err != nil {
			return err
		}

		claimed := make(map[int64]string)
		for _, old := range deleted {
			trackID, err := tracks.FindIDByLocationID(ctx, old.ID)
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			candidates, err := locations.FindMoveCandidates(ctx, old)
			if err != nil {
				return err
			}
			switch {
			case len(candidates) == 0:
				continue
			case len(candidates) > 1:
				return fmt.Errorf("move of %s matches %d locations: %w", old.Path, len(candidates), database.ErrInvariantViolation)
			}

			target := candidates[0]
			if previous, ok := claimed[target.ID]; ok {
				return fmt.Errorf("%s and %s both moved to %s: %w", previous, old.Path, target.Path, database.ErrInvariantViolation)
			}
			claimed[target.ID] = old.Path

			repair := MoveRepair{
				TrackID:       trackID,
				OldLocationID: old.ID,
				NewLocationID: target.ID,
				OldPath:       old.Path,
				NewPath:       target.Path,
				Size:          target.Size,
			}

			strayID, err := tracks.FindIDByLocationID(ctx, target.ID)
			switch {
			case err == nil:
				if _, err := tracks.DeleteByLocationID(ctx, target.ID); err != nil {
					return err
				}
				repair.StrayTrackID = strayID
			case errors.Is(err, database.ErrNotFound):
				repair.StrayTrackID = track.UnassignedID
			default:
				return err
			}

			moved, err := tracks.Relocate(ctx, old.ID, target.ID)
			if err != nil {
				return err
			}
			if moved != 1 {
				return fmt.Errorf("relocate track %d: moved %d records: %w", trackID, moved, database.ErrInvariantViolation)
			}

			if _, err := locations.Delete(ctx, old.ID); err != nil {
				return err
			}

			repairs = append(repairs, repair)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("detect moved files: %w", err)
	}

	for _, repair := range repairs {
		s.logger.Info("track moved",
			zap.Int64("track_id", repair.TrackID),
			zap.String("from", repair.OldPath),
			zap.String("to", repair.NewPath),
			zap.Int64("stray_track_id", repair.StrayTrackID),
		)
	}
	return repairs, nil
}
