package record_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snadboy/notiongen/internal/notion"
	"github.com/snadboy/notiongen/pkg/record"
)

type statusEnum string

const statusWatching statusEnum = "Watching"

type tvShow struct {
	record.Meta

	Name    string       `notion:"title,Name"`
	Status  statusEnum   `notion:"status,Status"`
	Genres  []statusEnum `notion:"multi_select,Genres"`
	Rating  *float64     `notion:"number,Rating"`
	Watched *bool        `notion:"checkbox,Watched"`
	Link    string       `notion:"url,Link"`
	Notes   string       `notion:"rich_text,My Notes"`
	Aired   time.Time    `notion:"date,Aired"`
}

func (tvShow) NotionDatabaseID() string { return "db-123" }

type orphan struct{}

func (orphan) NotionDatabaseID() string { return "" }

const pageJSON = `{
	"object": "page",
	"id": "page-1",
	"created_time": "2024-01-02T03:04:05Z",
	"last_edited_time": "2024-02-03T04:05:06Z",
	"created_by": {"object": "user", "id": "user-1"},
	"properties": {
		"Name":    {"type": "title", "title": [{"plain_text": "Severance"}]},
		"Status":  {"type": "status", "status": {"name": "Watching"}},
		"Genres":  {"type": "multi_select", "multi_select": [{"name": "Watching"}]},
		"Rating":  {"type": "number", "number": 9.5},
		"Watched": {"type": "checkbox", "checkbox": true},
		"Link":    {"type": "url", "url": "https://example.com"},
		"My Notes": {"type": "rich_text", "rich_text": [{"plain_text": "great"}]},
		"Aired":   {"type": "date", "date": {"start": "2022-02-18T00:00:00Z"}}
	}
}`

func pageFixture(t *testing.T) *notion.Page {
	t.Helper()
	var page notion.Page
	require.NoError(t, json.Unmarshal([]byte(pageJSON), &page))
	return &page
}

func TestFromPage(t *testing.T) {
	var show tvShow
	require.NoError(t, record.FromPage(pageFixture(t), &show))

	assert.Equal(t, "page-1", show.ID)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), show.CreatedTime)
	assert.Equal(t, time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC), show.LastEditedTime)
	assert.Equal(t, "user-1", show.CreatedBy)

	assert.Equal(t, "Severance", show.Name)
	assert.Equal(t, statusWatching, show.Status)
	assert.Equal(t, []statusEnum{statusWatching}, show.Genres)
	require.NotNil(t, show.Rating)
	assert.Equal(t, 9.5, *show.Rating)
	require.NotNil(t, show.Watched)
	assert.True(t, *show.Watched)
	assert.Equal(t, "https://example.com", show.Link)
	assert.Equal(t, "great", show.Notes)
	assert.Equal(t, time.Date(2022, 2, 18, 0, 0, 0, 0, time.UTC), show.Aired)
}

func TestFromPageAbsentPropertiesKeepDefaults(t *testing.T) {
	page := pageFixture(t)
	delete(page.Properties, "Rating")
	delete(page.Properties, "Link")

	var show tvShow
	require.NoError(t, record.FromPage(page, &show))

	assert.Nil(t, show.Rating)
	assert.Empty(t, show.Link)
	assert.Equal(t, "Severance", show.Name)
}

func TestRoundTrip(t *testing.T) {
	var show tvShow
	require.NoError(t, record.FromPage(pageFixture(t), &show))

	props, err := record.ToProperties(&show)
	require.NoError(t, err)

	require.Contains(t, props, "Name")
	assert.Equal(t, "Severance", props["Name"].Title[0].Text.Content)

	require.Contains(t, props, "Status")
	assert.Equal(t, "Watching", props["Status"].Status.Name)

	require.Contains(t, props, "Rating")
	assert.Equal(t, 9.5, *props["Rating"].Number)

	require.Contains(t, props, "Watched")
	assert.True(t, *props["Watched"].Checkbox)

	require.Contains(t, props, "Link")
	assert.Equal(t, "https://example.com", *props["Link"].URL)

	require.Contains(t, props, "My Notes")
	assert.Equal(t, "great", props["My Notes"].RichText[0].Text.Content)
}

func TestToPropertiesOmitsAbsentFields(t *testing.T) {
	rating := 7.0
	show := tvShow{Name: "Dark", Rating: &rating}

	props, err := record.ToProperties(&show)
	require.NoError(t, err)

	assert.Contains(t, props, "Name")
	assert.Contains(t, props, "Rating")
	assert.NotContains(t, props, "Status")
	assert.NotContains(t, props, "Watched")
	assert.NotContains(t, props, "Link")
	assert.NotContains(t, props, "Aired")
}

func TestDatabaseID(t *testing.T) {
	id, err := record.DatabaseID(tvShow{})
	require.NoError(t, err)
	assert.Equal(t, "db-123", id)

	_, err = record.DatabaseID(orphan{})
	assert.ErrorIs(t, err, record.ErrNoDatabaseID)
}

func TestParseTime(t *testing.T) {
	got, err := record.ParseTime("2024-01-02T03:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), got.UTC())

	got, err = record.ParseTime("2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())

	_, err = record.ParseTime("not a time")
	assert.Error(t, err)
}
