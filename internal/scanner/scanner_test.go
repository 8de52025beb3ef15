package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

// id3v1 builds a file body ending in an ID3v1 tag.
func id3v1(title, artist, album string) []byte {
	field := func(s string, n int) []byte {
		b := make([]byte, n)
		copy(b, s)
		return b
	}

	body := make([]byte, 0, 256)
	body = append(body, []byte("audio-frames-go-here")...)
	body = append(body, 'T', 'A', 'G')
	body = append(body, field(title, 30)...)
	body = append(body, field(artist, 30)...)
	body = append(body, field(album, 30)...)
	body = append(body, field("1999", 4)...)
	body = append(body, field("", 30)...)
	body = append(body, 255)
	return body
}

func TestNewTrackReadsTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagged.mp3")
	data := id3v1("Windowlicker", "Aphex Twin", "Windowlicker EP")
	writeFile(t, path, data)

	tr, err := TagReader{}.NewTrack(path)
	require.NoError(t, err)

	meta := tr.Metadata()
	assert.True(t, meta.HeaderParsed)
	assert.Equal(t, "Windowlicker", meta.Title)
	assert.Equal(t, "Aphex Twin", meta.Artist)
	assert.Equal(t, "Windowlicker EP", meta.Album)
	assert.EqualValues(t, len(data), tr.Size())
	assert.Equal(t, path, tr.Path())
	assert.True(t, tr.IsDirty())
	assert.False(t, tr.IsAssigned())
}

func TestNewTrackWithoutTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "untagged.wav")
	writeFile(t, path, []byte("RIFF....WAVEfmt not really audio"))

	tr, err := TagReader{}.NewTrack(path)
	require.NoError(t, err)

	meta := tr.Metadata()
	assert.False(t, meta.HeaderParsed)
	assert.Equal(t, "untagged", meta.Title)
	assert.Empty(t, meta.Artist)
}

func TestNewTrackMissingFile(t *testing.T) {
	_, err := TagReader{}.NewTrack(filepath.Join(t.TempDir(), "missing.mp3"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWalkFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.mp3"), []byte("12345"))
	writeFile(t, filepath.Join(root, "nested", "b.FLAC"), []byte("123"))
	writeFile(t, filepath.Join(root, "nested", "cover.jpg"), []byte("img"))
	writeFile(t, filepath.Join(root, "notes.txt"), []byte("txt"))

	found := map[string]int64{}
	err := Walk(context.Background(), root, []string{".mp3", ".flac"}, func(path string, size int64) error {
		found[path] = size
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{
		filepath.Join(root, "a.mp3"):            5,
		filepath.Join(root, "nested", "b.FLAC"): 3,
	}, found)
}

func TestWalkMissingRoot(t *testing.T) {
	err := Walk(context.Background(), filepath.Join(t.TempDir(), "nope"), []string{".mp3"}, func(string, int64) error {
		return nil
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWalkStopsOnCancel(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.mp3"), []byte("1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Walk(ctx, root, []string{".mp3"}, func(string, int64) error {
		t.Fatal("callback must not run after cancellation")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
