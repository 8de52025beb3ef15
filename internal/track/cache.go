package track

import (
	"maps"
	"slices"
)

// Cache maps track ids to their single live instance. There is no eviction:
// objects live as long as the cache. A Cache is not safe for concurrent use.
type Cache struct {
	tracks map[int64]*Track
}

func NewCache() *Cache {
	return &Cache{tracks: make(map[int64]*Track)}
}

// Get returns the cached instance for id.
func (c *Cache) Get(id int64) (*Track, bool) {
	t, ok := c.tracks[id]
	return t, ok
}

// Insert registers t under its id. It never replaces an existing instance
// and refuses unassigned tracks; the return value reports whether t was added.
func (c *Cache) Insert(t *Track) bool {
	if t == nil || !t.IsAssigned() {
		return false
	}
	if _, exists := c.tracks[t.ID()]; exists {
		return false
	}
	c.tracks[t.ID()] = t
	return true
}

// Delete drops the entry for id. Only records that no longer exist in the
// store should be dropped.
func (c *Cache) Delete(id int64) {
	delete(c.tracks, id)
}

func (c *Cache) Len() int {
	return len(c.tracks)
}

// Dirty returns the cached tracks with unsaved changes in ascending id order.
func (c *Cache) Dirty() []*Track {
	ids := slices.Sorted(maps.Keys(c.tracks))
	dirty := make([]*Track, 0, len(ids))
	for _, id := range ids {
		if t := c.tracks[id]; t.IsDirty() {
			dirty = append(dirty, t)
		}
	}
	return dirty
}
