// Package track holds the live, mutable track objects handed out by the
// library and the cache that keeps one instance per track id.
package track

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
)

// UnassignedID is the id of a track that has not been persisted yet.
const UnassignedID int64 = 0

// CueType classifies a cue point.
type CueType int

const (
	CueTypeInvalid CueType = iota
	CueTypeCue
	CueTypeLoad
	CueTypeHotCue
	CueTypeLoop
	CueTypeJump
)

// CuePoint is a user annotation on a track. Position and Length are in
// sample frames. HotCue is -1 when the cue is not bound to a hot-cue slot.
type CuePoint struct {
	Position int64
	Length   int64
	Type     CueType
	HotCue   int
	Label    string
}

// Metadata is the mutable tag and audio-property payload of a track.
type Metadata struct {
	Artist      string
	Title       string
	Album       string
	Year        string
	Genre       string
	TrackNumber string
	Comment     string
	URL         string
	// Duration in seconds.
	Duration int
	// Bitrate in kbit/s.
	Bitrate      int
	SampleRate   int
	CuePoint     float64
	BPM          float64
	WaveSummary  []byte
	Channels     int
	HeaderParsed bool
}

// Equal reports whether two metadata values carry the same content.
func (m Metadata) Equal(other Metadata) bool {
	return m.Artist == other.Artist &&
		m.Title == other.Title &&
		m.Album == other.Album &&
		m.Year == other.Year &&
		m.Genre == other.Genre &&
		m.TrackNumber == other.TrackNumber &&
		m.Comment == other.Comment &&
		m.URL == other.URL &&
		m.Duration == other.Duration &&
		m.Bitrate == other.Bitrate &&
		m.SampleRate == other.SampleRate &&
		m.CuePoint == other.CuePoint &&
		m.BPM == other.BPM &&
		m.Channels == other.Channels &&
		m.HeaderParsed == other.HeaderParsed &&
		bytes.Equal(m.WaveSummary, other.WaveSummary)
}

func (m Metadata) clone() Metadata {
	if m.WaveSummary != nil {
		m.WaveSummary = bytes.Clone(m.WaveSummary)
	}
	return m
}

// Track is a live track object. Mutators mark it dirty; the library clears
// the flag after a successful save.
type Track struct {
	id      int64
	path    string
	size    int64
	meta    Metadata
	cues    []CuePoint
	dirty   bool
	deleted bool
}

// New returns an unsaved track for the file at path. It starts dirty.
func New(path string, size int64, meta Metadata) *Track {
	return &Track{
		id:    UnassignedID,
		path:  path,
		size:  size,
		meta:  meta.clone(),
		dirty: true,
	}
}

// Restore rebuilds a clean track from stored state.
func Restore(id int64, path string, size int64, meta Metadata, cues []CuePoint, deleted bool) *Track {
	return &Track{
		id:      id,
		path:    path,
		size:    size,
		meta:    meta.clone(),
		cues:    slices.Clone(cues),
		deleted: deleted,
	}
}

func (t *Track) ID() int64 { return t.id }

// IsAssigned reports whether the track has a store id.
func (t *Track) IsAssigned() bool { return t.id != UnassignedID }

func (t *Track) Path() string { return t.path }

func (t *Track) Directory() string { return filepath.Dir(t.path) }

func (t *Track) Filename() string { return filepath.Base(t.path) }

// Size is the file size in bytes.
func (t *Track) Size() int64 { return t.size }

// Metadata returns a copy of the track's metadata.
func (t *Track) Metadata() Metadata { return t.meta.clone() }

// SetMetadata replaces the metadata, marking the track dirty when it changed.
func (t *Track) SetMetadata(meta Metadata) {
	if t.meta.Equal(meta) {
		return
	}
	t.meta = meta.clone()
	t.dirty = true
}

// Update applies fn to a copy of the metadata and stores the result.
func (t *Track) Update(fn func(*Metadata)) {
	meta := t.Metadata()
	fn(&meta)
	t.SetMetadata(meta)
}

// CuePoints returns a copy of the track's cue points.
func (t *Track) CuePoints() []CuePoint { return slices.Clone(t.cues) }

// SetCuePoints replaces the cue points and marks the track dirty.
func (t *Track) SetCuePoints(cues []CuePoint) {
	t.cues = slices.Clone(cues)
	t.dirty = true
}

func (t *Track) IsDirty() bool { return t.dirty }

func (t *Track) MarkDirty() { t.dirty = true }

func (t *Track) MarkClean() { t.dirty = false }

// IsDeleted reports the logical-deletion state last seen in the store.
func (t *Track) IsDeleted() bool { return t.deleted }

// SetDeleted records the logical-deletion state. It does not mark the track
// dirty because deletion is written by its own store operation.
func (t *Track) SetDeleted(deleted bool) { t.deleted = deleted }

// Assign gives an unsaved track its store id.
func (t *Track) Assign(id int64) error {
	if id == UnassignedID {
		return fmt.Errorf("track: cannot assign the unassigned id")
	}
	if t.id != UnassignedID && t.id != id {
		return fmt.Errorf("track: already assigned id %d, cannot reassign to %d", t.id, id)
	}
	t.id = id
	return nil
}

// Relocate points the track at a new file without marking it dirty. It is
// used when the store has already been repointed.
func (t *Track) Relocate(path string, size int64) {
	t.path = path
	t.size = size
}

// Absorb copies the state of other into t, keeping t's identity. The dirty
// flag is taken from other.
func (t *Track) Absorb(other *Track) {
	t.path = other.path
	t.size = other.size
	t.meta = other.meta.clone()
	t.cues = slices.Clone(other.cues)
	t.deleted = other.deleted
	t.dirty = other.dirty
}

func (t *Track) String() string {
	if t.meta.Artist == "" && t.meta.Title == "" {
		return fmt.Sprintf("#%d %s", t.id, t.Filename())
	}
	return fmt.Sprintf("#%d %s - %s", t.id, t.meta.Artist, t.meta.Title)
}
