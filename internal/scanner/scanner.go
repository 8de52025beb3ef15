// Package scanner finds audio files on disk and builds unsaved tracks from
// their tags.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/dhowden/tag"

	"github.com/mixdeck/trackdb/internal/track"
)

// TagReader builds tracks from the embedded tags of audio files.
type TagReader struct{}

// NewTrack returns an unsaved track for path. Files whose tags cannot be
// parsed still produce a track, titled after the file name, with
// HeaderParsed unset.
func (TagReader) NewTrack(path string) (*track.Track, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	//nolint:gosec // G304: path comes from the user or the directory walk
	f, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", abs)
	}

	meta := track.Metadata{
		Title: strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs)),
	}

	m, err := tag.ReadFrom(f)
	if err == nil {
		applyTags(&meta, m)
	}

	return track.New(abs, info.Size(), meta), nil
}

func applyTags(meta *track.Metadata, m tag.Metadata) {
	meta.HeaderParsed = true

	meta.Artist = m.Artist()
	if meta.Artist == "" {
		meta.Artist = m.AlbumArtist()
	}
	if title := m.Title(); title != "" {
		meta.Title = title
	}
	meta.Album = m.Album()
	meta.Genre = m.Genre()
	meta.Comment = m.Comment()
	if year := m.Year(); year > 0 {
		meta.Year = strconv.Itoa(year)
	}
	if n, _ := m.Track(); n > 0 {
		meta.TrackNumber = strconv.Itoa(n)
	}
}

// WalkFunc is called for every audio file found by Walk.
type WalkFunc func(path string, size int64) error

// Walk calls fn for each file under root whose extension is in extensions
// (case-insensitive, with leading dot). Unreadable subdirectories are
// skipped; a missing root is an error.
func Walk(ctx context.Context, root string, extensions []string, fn WalkFunc) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", root, err)
	}
	if _, err := os.Stat(root); err != nil {
		return err
	}

	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		exts = append(exts, strings.ToLower(ext))
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if d != nil && d.IsDir() && path != root && errors.Is(err, fs.ErrPermission) {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		return fn(path, info.Size())
	})
}
