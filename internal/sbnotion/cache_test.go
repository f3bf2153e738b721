package sbnotion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snadboy/notiongen/internal/notion"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func pageWithTitle(t *testing.T, id, title string) *notion.Page {
	t.Helper()
	raw := `{"id": "` + id + `", "properties": {"Name": {"type": "title", "title": [{"plain_text": "` + title + `"}]}}}`
	var p notion.Page
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return &p
}

func dbWithTitle(t *testing.T, id, title string) *notion.Database {
	t.Helper()
	raw := `{"id": "` + id + `", "title": [{"plain_text": "` + title + `"}], "properties": {"Name": {"type": "title"}}}`
	var db notion.Database
	require.NoError(t, json.Unmarshal([]byte(raw), &db))
	return &db
}

func TestDirectoryStale(t *testing.T) {
	clock := newFakeClock()
	d := newDirectory(5 * time.Minute)
	d.now = clock.now

	assert.True(t, d.stale(), "a directory that was never refreshed is stale")

	d.replace(nil, nil)
	assert.False(t, d.stale())

	clock.advance(5 * time.Minute)
	assert.False(t, d.stale(), "staleness starts past the TTL, not at it")

	clock.advance(time.Second)
	assert.True(t, d.stale())
}

func TestDirectoryLookup(t *testing.T) {
	d := newDirectory(0)
	d.replace(
		[]*notion.Page{pageWithTitle(t, "p-1", "Weekly Notes")},
		[]*notion.Database{dbWithTitle(t, "db-1", "TV Shows")},
	)

	assert.Equal(t, "p-1", d.page("p-1").ID)
	assert.Equal(t, "p-1", d.page("Weekly Notes").ID)
	assert.Nil(t, d.page("nope"))

	assert.Equal(t, "db-1", d.database("db-1").ID)
	assert.Equal(t, "db-1", d.database("TV Shows").ID)
	assert.Nil(t, d.database("nope"))
}

func TestDirectoryDuplicateTitleLastWins(t *testing.T) {
	d := newDirectory(0)
	d.replace([]*notion.Page{
		pageWithTitle(t, "p-1", "Notes"),
		pageWithTitle(t, "p-2", "Notes"),
	}, nil)

	assert.Equal(t, "p-2", d.page("Notes").ID)
	assert.Equal(t, "p-1", d.page("p-1").ID, "both stay reachable by id")
}

func TestDirectoryReplaceDropsOldEntries(t *testing.T) {
	d := newDirectory(0)
	d.replace([]*notion.Page{pageWithTitle(t, "p-1", "Old")}, nil)
	d.replace([]*notion.Page{pageWithTitle(t, "p-2", "New")}, nil)

	assert.Nil(t, d.page("p-1"))
	assert.Nil(t, d.page("Old"))
	assert.Equal(t, "p-2", d.page("New").ID)
}

func TestDirectorySnapshotIsACopy(t *testing.T) {
	d := newDirectory(0)
	d.replace([]*notion.Page{pageWithTitle(t, "p-1", "Notes")}, nil)

	snap := d.snapshotPages()
	delete(snap, "p-1")
	assert.NotNil(t, d.page("p-1"))
}

func TestDirectorySchemaHashes(t *testing.T) {
	d := newDirectory(0)

	_, ok := d.schemaHash("db-1")
	assert.False(t, ok)

	d.setSchemaHash("db-1", "abc")
	h, ok := d.schemaHash("db-1")
	assert.True(t, ok)
	assert.Equal(t, "abc", h)
}
