package sbnotion

import (
	"sync"
	"time"

	"github.com/snadboy/notiongen/internal/notion"
)

// defaultCacheTTL is how long a directory listing is trusted before the next
// access triggers a wholesale refresh.
const defaultCacheTTL = 5 * time.Minute

// directory caches the full listing of pages and databases known to the
// token, keyed by id and by display title. Entries are wholesale-replaced on
// refresh; the maps are swapped atomically so callers never observe a
// partial view. Display titles are not guaranteed unique: when the remote
// returns several entries with the same title, the last one processed wins
// silently in the by-name maps.
type directory struct {
	mu           sync.RWMutex
	pagesByID    map[string]*notion.Page
	pagesByName  map[string]*notion.Page
	dbsByID      map[string]*notion.Database
	dbsByName    map[string]*notion.Database
	schemaHashes map[string]string
	lastRefresh  time.Time

	ttl time.Duration
	now func() time.Time
}

func newDirectory(ttl time.Duration) *directory {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &directory{
		schemaHashes: make(map[string]string),
		ttl:          ttl,
		now:          time.Now,
	}
}

// stale reports whether the time since the last successful refresh exceeds
// the TTL. A directory that was never refreshed is always stale.
func (d *directory) stale() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.now().Sub(d.lastRefresh) > d.ttl
}

// replace swaps in a fresh listing and records the refresh time. It is only
// called after both listings were fetched successfully, so a failed refresh
// leaves the previous view and timestamp intact.
func (d *directory) replace(pages []*notion.Page, dbs []*notion.Database) {
	pagesByID := make(map[string]*notion.Page, len(pages))
	pagesByName := make(map[string]*notion.Page)
	for _, p := range pages {
		pagesByID[p.ID] = p
		if title := p.PlainTitle(); title != "" {
			pagesByName[title] = p
		}
	}

	dbsByID := make(map[string]*notion.Database, len(dbs))
	dbsByName := make(map[string]*notion.Database)
	for _, db := range dbs {
		dbsByID[db.ID] = db
		if title := db.PlainTitle(); title != "" {
			dbsByName[title] = db
		}
	}

	d.mu.Lock()
	d.pagesByID = pagesByID
	d.pagesByName = pagesByName
	d.dbsByID = dbsByID
	d.dbsByName = dbsByName
	d.lastRefresh = d.now()
	d.mu.Unlock()
}

// page resolves a page by id, falling back to display title.
func (d *directory) page(identifier string) *notion.Page {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if p, ok := d.pagesByID[identifier]; ok {
		return p
	}
	return d.pagesByName[identifier]
}

// database resolves a database by id, falling back to display title.
func (d *directory) database(identifier string) *notion.Database {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if db, ok := d.dbsByID[identifier]; ok {
		return db
	}
	return d.dbsByName[identifier]
}

func (d *directory) snapshotPages() map[string]*notion.Page {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]*notion.Page, len(d.pagesByID))
	for id, p := range d.pagesByID {
		out[id] = p
	}
	return out
}

func (d *directory) snapshotDatabases() map[string]*notion.Database {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]*notion.Database, len(d.dbsByID))
	for id, db := range d.dbsByID {
		out[id] = db
	}
	return out
}

func (d *directory) schemaHash(databaseID string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	h, ok := d.schemaHashes[databaseID]
	return h, ok
}

func (d *directory) setSchemaHash(databaseID, hash string) {
	d.mu.Lock()
	d.schemaHashes[databaseID] = hash
	d.mu.Unlock()
}
