package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixdeck/trackdb/internal/database"
	"github.com/mixdeck/trackdb/internal/track"
)

// orphanedTracks counts track records whose location row is missing.
func orphanedTracks(t *testing.T, dbCtx *database.Context) int {
	t.Helper()
	var n int
	err := dbCtx.DB.QueryRow(`SELECT COUNT(*) FROM tracks
		LEFT JOIN locations ON locations.id = tracks.location_id
		WHERE locations.id IS NULL`).Scan(&n)
	require.NoError(t, err)
	return n
}

func countTracks(t *testing.T, dbCtx *database.Context) int {
	t.Helper()
	var n int
	require.NoError(t, dbCtx.DB.QueryRow("SELECT COUNT(*) FROM tracks").Scan(&n))
	return n
}

// scanCycle runs the verification half of a scan that saw only the given paths.
func scanCycle(t *testing.T, svc *ReconcileService, root string, seen ...string) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.InvalidateLocations(ctx, root)
	require.NoError(t, err)
	for _, path := range seen {
		ok, err := svc.MarkVerified(ctx, path)
		require.NoError(t, err)
		require.True(t, ok, "location for %s", path)
	}
	_, err = svc.MarkUnverifiedAsDeleted(ctx)
	require.NoError(t, err)
}

func TestVerificationStateTransitions(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	locations := database.NewLocationRepository(dbCtx)
	svc := NewReconcileService(dbCtx, nil)

	for _, path := range []string{"/music/a.mp3", "/music/sub/b.mp3", "/music2/c.mp3"} {
		_, err := locations.Create(ctx, path, 10)
		require.NoError(t, err)
	}

	invalidated, err := svc.InvalidateLocations(ctx, "/music")
	require.NoError(t, err)
	assert.EqualValues(t, 2, invalidated)

	state := func(path string) (bool, bool) {
		loc, err := locations.FindByPath(ctx, path)
		require.NoError(t, err)
		return loc.NeedsVerification, loc.FsDeleted
	}

	needs, gone := state("/music/sub/b.mp3")
	assert.True(t, needs)
	assert.False(t, gone)
	needs, _ = state("/music2/c.mp3")
	assert.False(t, needs)

	ok, err := svc.MarkVerified(ctx, "/music/a.mp3")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.MarkVerified(ctx, "/music/unknown.mp3")
	require.NoError(t, err)
	assert.False(t, ok)

	marked, err := svc.MarkUnverifiedAsDeleted(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, marked)

	needs, gone = state("/music/a.mp3")
	assert.False(t, needs)
	assert.False(t, gone)
	needs, gone = state("/music/sub/b.mp3")
	assert.True(t, needs)
	assert.True(t, gone)

	// Seeing the file again in a later scan brings it back.
	scanCycle(t, svc, "/music", "/music/a.mp3", "/music/sub/b.mp3")
	needs, gone = state("/music/sub/b.mp3")
	assert.False(t, needs)
	assert.False(t, gone)
}

func TestMarkLocationsAsDeletedCoversTree(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	locations := database.NewLocationRepository(dbCtx)
	svc := NewReconcileService(dbCtx, nil)

	for _, path := range []string{"/crate/a.mp3", "/crate/deep/b.mp3", "/crates/c.mp3"} {
		_, err := locations.Create(ctx, path, 10)
		require.NoError(t, err)
	}

	n, err := svc.MarkLocationsAsDeleted(ctx, "/crate")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	deleted, err := locations.ListDeleted(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 2)
	assert.Equal(t, "/crate/a.mp3", deleted[0].Path)
	assert.Equal(t, "/crate/deep/b.mp3", deleted[1].Path)
}

func TestDetectMovedFilesKeepsOriginalTrack(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	tracks := newTestService(t, dbCtx)
	svc := NewReconcileService(dbCtx, nil)

	original := track.New("/music/old/song.mp3", 1000, songMeta("A", "Song"))
	original.SetCuePoints([]track.CuePoint{{Position: 2048, Type: track.CueTypeHotCue, HotCue: 1, Label: "verse"}})
	mustSave(t, tracks, original)

	stray := track.New("/music/new/song.mp3", 1000, songMeta("A", "Song"))
	mustSave(t, tracks, stray)

	scanCycle(t, svc, "/music", "/music/new/song.mp3")

	repairs, err := svc.DetectMovedFiles(ctx)
	require.NoError(t, err)
	require.Len(t, repairs, 1)
	assert.Equal(t, original.ID(), repairs[0].TrackID)
	assert.Equal(t, stray.ID(), repairs[0].StrayTrackID)
	assert.Equal(t, "/music/new/song.mp3", repairs[0].NewPath)

	assert.Equal(t, 1, countTracks(t, dbCtx))
	assert.Zero(t, orphanedTracks(t, dbCtx))

	id, err := tracks.TrackIDForLocation(ctx, "/music/new/song.mp3")
	require.NoError(t, err)
	assert.Equal(t, original.ID(), id)

	_, err = database.NewLocationRepository(dbCtx).FindByPath(ctx, "/music/old/song.mp3")
	assert.ErrorIs(t, err, database.ErrNotFound)

	cues, err := database.NewCueRepository(dbCtx).LoadCues(ctx, original.ID())
	require.NoError(t, err)
	require.Len(t, cues, 1)
	assert.Equal(t, "verse", cues[0].Label)

	tracks.ApplyMoves(repairs)
	loaded, err := tracks.Load(ctx, original.ID())
	require.NoError(t, err)
	assert.Same(t, original, loaded)
	assert.Equal(t, "/music/new/song.mp3", loaded.Path())

	again, err := svc.DetectMovedFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestDetectMovedFilesWithoutStrayRecord(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	tracks := newTestService(t, dbCtx)
	locations := database.NewLocationRepository(dbCtx)
	svc := NewReconcileService(dbCtx, nil)

	original := track.New("/music/a/tune.flac", 4096, songMeta("T", "Tune"))
	mustSave(t, tracks, original)
	_, err := locations.Create(ctx, "/music/b/tune.flac", 4096)
	require.NoError(t, err)

	scanCycle(t, svc, "/music", "/music/b/tune.flac")

	repairs, err := svc.DetectMovedFiles(ctx)
	require.NoError(t, err)
	require.Len(t, repairs, 1)
	assert.Equal(t, track.UnassignedID, repairs[0].StrayTrackID)

	path, err := tracks.LocationForTrackID(ctx, original.ID())
	require.NoError(t, err)
	assert.Equal(t, "/music/b/tune.flac", path)
}

func TestDetectMovedFilesRejectsAmbiguousMatch(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	tracks := newTestService(t, dbCtx)
	svc := NewReconcileService(dbCtx, nil)

	original := track.New("/music/old/dup.mp3", 1000, songMeta("D", "Dup"))
	mustSave(t, tracks, original)
	for _, path := range []string{"/music/x/dup.mp3", "/music/y/dup.mp3"} {
		mustSave(t, tracks, track.New(path, 1000, songMeta("D", "Dup")))
	}

	scanCycle(t, svc, "/music", "/music/x/dup.mp3", "/music/y/dup.mp3")

	repairs, err := svc.DetectMovedFiles(ctx)
	require.ErrorIs(t, err, database.ErrInvariantViolation)
	assert.Nil(t, repairs)

	assert.Equal(t, 3, countTracks(t, dbCtx))
	path, err := tracks.LocationForTrackID(ctx, original.ID())
	require.NoError(t, err)
	assert.Equal(t, "/music/old/dup.mp3", path)
}

func TestDetectMovedFilesRollsBackEarlierRepairs(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	tracks := newTestService(t, dbCtx)
	svc := NewReconcileService(dbCtx, nil)

	// Saved first so its location is repaired before the ambiguous one.
	movable := track.New("/music/old/first.mp3", 111, songMeta("F", "First"))
	mustSave(t, tracks, movable)
	ambiguous := track.New("/music/old/second.mp3", 222, songMeta("S", "Second"))
	mustSave(t, tracks, ambiguous)

	seen := []string{"/music/new/first.mp3", "/music/x/second.mp3", "/music/y/second.mp3"}
	sizes := []int64{111, 222, 222}
	for i, path := range seen {
		mustSave(t, tracks, track.New(path, sizes[i], track.Metadata{}))
	}

	scanCycle(t, svc, "/music", seen...)

	_, err := svc.DetectMovedFiles(ctx)
	require.ErrorIs(t, err, database.ErrInvariantViolation)

	path, err := tracks.LocationForTrackID(ctx, movable.ID())
	require.NoError(t, err)
	assert.Equal(t, "/music/old/first.mp3", path)
	assert.Equal(t, 5, countTracks(t, dbCtx))
	assert.Zero(t, orphanedTracks(t, dbCtx))
}

func TestDetectMovedFilesIgnoresLocationsWithoutTrack(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	locations := database.NewLocationRepository(dbCtx)
	svc := NewReconcileService(dbCtx, nil)

	_, err := locations.Create(ctx, "/music/old/empty.mp3", 50)
	require.NoError(t, err)
	_, err = locations.Create(ctx, "/music/new/empty.mp3", 50)
	require.NoError(t, err)

	scanCycle(t, svc, "/music", "/music/new/empty.mp3")

	repairs, err := svc.DetectMovedFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, repairs)

	count, err := locations.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
