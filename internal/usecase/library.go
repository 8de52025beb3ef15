package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mixdeck/trackdb/internal/config"
	"github.com/mixdeck/trackdb/internal/database"
	"github.com/mixdeck/trackdb/internal/logging"
	"github.com/mixdeck/trackdb/internal/scanner"
	"github.com/mixdeck/trackdb/internal/services"
	"github.com/mixdeck/trackdb/internal/track"
)

// TrackFactory builds an unsaved track for a file on disk.
type TrackFactory interface {
	NewTrack(path string) (*track.Track, error)
}

// Library ties the gateway, the reconciler and a track factory into the
// operations the CLI exposes.
type Library struct {
	tracks     *services.TrackService
	reconciler *services.ReconcileService
	factory    TrackFactory
	extensions []string
	logger     *zap.Logger
}

// NewLibrary wires a library over dbCtx. A nil factory reads tags from disk.
func NewLibrary(dbCtx *database.Context, cfg config.LibraryConfig, factory TrackFactory, logger *zap.Logger) *Library {
	logger = logging.OrNop(logger)
	if factory == nil {
		factory = scanner.TagReader{}
	}
	opts := services.DefaultOptions()
	opts.LoadDeleted = cfg.LoadDeleted

	return &Library{
		tracks:     services.NewTrackService(dbCtx, track.NewCache(), nil, opts, logger.Named("tracks")),
		reconciler: services.NewReconcileService(dbCtx, logger.Named("reconcile")),
		factory:    factory,
		extensions: cfg.Extensions,
		logger:     logger,
	}
}

// Tracks exposes the underlying gateway.
func (u *Library) Tracks() *services.TrackService {
	return u.tracks
}

// Import adds the files at paths. Adding a file that was removed before
// restores its original track. Every path is attempted; failures are
// returned joined alongside the tracks that were saved.
func (u *Library) Import(ctx context.Context, paths []string) ([]*track.Track, error) {
	var (
		saved []*track.Track
		errs  []error
	)
	for _, path := range paths {
		t, err := u.factory.NewTrack(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", path, err))
			continue
		}
		live, err := u.tracks.Save(ctx, t)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		saved = append(saved, live)
	}
	return saved, errors.Join(errs...)
}

func (u *Library) Get(ctx context.Context, id int64) (*track.Track, error) {
	return u.tracks.Load(ctx, id)
}

// Lookup returns the track id stored for the file at path.
func (u *Library) Lookup(ctx context.Context, path string) (int64, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}
	return u.tracks.TrackIDForLocation(ctx, abs)
}

func (u *Library) Remove(ctx context.Context, id int64) error {
	return u.tracks.Remove(ctx, id)
}

func (u *Library) List(ctx context.Context) ([]database.TrackSummary, error) {
	return u.tracks.ListActive(ctx)
}

// Flush writes back every cached track with unsaved changes.
func (u *Library) Flush(ctx context.Context) error {
	return u.tracks.SaveAllDirty(ctx)
}

// ScanReport summarises one scan or reconcile run.
type ScanReport struct {
	Root     string
	Seen     int
	Verified int
	Added    int
	Failed   int
	Missing  int64
	Moves    []services.MoveRepair
}

// Scan walks root, verifies the files already known, adds the new ones,
// flags what disappeared and repairs moved files.
func (u *Library) Scan(ctx context.Context, root string) (*ScanReport, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	report := &ScanReport{Root: abs}

	if _, err := u.reconciler.InvalidateLocations(ctx, abs); err != nil {
		return nil, fmt.Errorf("invalidate %s: %w", abs, err)
	}

	err = scanner.Walk(ctx, abs, u.extensions, func(path string, size int64) error {
		report.Seen++

		verified, err := u.reconciler.MarkVerified(ctx, path)
		if err != nil {
			return err
		}
		if verified {
			report.Verified++
			if _, err := u.reconciler.RefreshSize(ctx, path, size); err != nil {
				return err
			}
			return nil
		}

		t, err := u.factory.NewTrack(path)
		if err != nil {
			report.Failed++
			u.logger.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
			return nil
		}
		if _, err := u.tracks.Save(ctx, t); err != nil {
			return err
		}
		report.Added++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", abs, err)
	}

	if err := u.finish(ctx, report); err != nil {
		return nil, err
	}

	u.logger.Info("scan finished",
		zap.String("root", abs),
		zap.Int("seen", report.Seen),
		zap.Int("added", report.Added),
		zap.Int64("missing", report.Missing),
		zap.Int("moved", len(report.Moves)),
	)
	return report, nil
}

// Reconcile runs the post-scan half of a cycle on its own: locations still
// awaiting verification are flagged deleted and moves are repaired.
func (u *Library) Reconcile(ctx context.Context) (*ScanReport, error) {
	report := &ScanReport{}
	if err := u.finish(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (u *Library) finish(ctx context.Context, report *ScanReport) error {
	missing, err := u.reconciler.MarkUnverifiedAsDeleted(ctx)
	if err != nil {
		return fmt.Errorf("mark missing files: %w", err)
	}
	report.Missing = missing

	moves, err := u.reconciler.DetectMovedFiles(ctx)
	if err != nil {
		return err
	}
	u.tracks.ApplyMoves(moves)
	report.Moves = moves
	return nil
}
