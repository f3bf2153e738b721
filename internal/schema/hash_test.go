package schema

import (
	"encoding/json"
	"testing"

	"github.com/snadboy/notiongen/internal/notion"
)

func databaseFromJSON(t *testing.T, raw string) *notion.Database {
	t.Helper()
	var db notion.Database
	if err := json.Unmarshal([]byte(raw), &db); err != nil {
		t.Fatalf("failed to unmarshal database: %v", err)
	}
	return &db
}

const schemaA = `{
	"id": "db-1",
	"title": [{"plain_text": "TV Shows"}],
	"properties": {
		"Name":   {"type": "title"},
		"Rating": {"type": "number"},
		"Status": {"type": "status", "status": {"options": [{"name": "Watching"}, {"name": "Completed"}]}}
	}
}`

// Same schema as schemaA with the property keys in a different order.
const schemaAReordered = `{
	"id": "db-1",
	"title": [{"plain_text": "TV Shows"}],
	"properties": {
		"Status": {"type": "status", "status": {"options": [{"name": "Watching"}, {"name": "Completed"}]}},
		"Rating": {"type": "number"},
		"Name":   {"type": "title"}
	}
}`

func TestHashIgnoresPropertyOrder(t *testing.T) {
	a := Hash(databaseFromJSON(t, schemaA))
	b := Hash(databaseFromJSON(t, schemaAReordered))
	if a != b {
		t.Errorf("hash should be order-independent: %s != %s", a, b)
	}
}

func TestHashStableAcrossReserialization(t *testing.T) {
	db := databaseFromJSON(t, schemaA)

	first := Hash(db)
	raw, err := json.Marshal(db)
	if err != nil {
		t.Fatalf("failed to re-serialize database: %v", err)
	}
	second := Hash(databaseFromJSON(t, string(raw)))

	if first != second {
		t.Errorf("hash changed across re-serialization: %s != %s", first, second)
	}
}

func TestHashDetectsDrift(t *testing.T) {
	base := Hash(databaseFromJSON(t, schemaA))

	tests := []struct {
		name string
		raw  string
	}{
		{
			"property type changed",
			`{"title": [{"plain_text": "TV Shows"}], "properties": {
				"Name":   {"type": "title"},
				"Rating": {"type": "rich_text"},
				"Status": {"type": "status", "status": {"options": [{"name": "Watching"}, {"name": "Completed"}]}}
			}}`,
		},
		{
			"property renamed",
			`{"title": [{"plain_text": "TV Shows"}], "properties": {
				"Name":   {"type": "title"},
				"Score":  {"type": "number"},
				"Status": {"type": "status", "status": {"options": [{"name": "Watching"}, {"name": "Completed"}]}}
			}}`,
		},
		{
			"option label changed",
			`{"title": [{"plain_text": "TV Shows"}], "properties": {
				"Name":   {"type": "title"},
				"Rating": {"type": "number"},
				"Status": {"type": "status", "status": {"options": [{"name": "Watching"}, {"name": "Dropped"}]}}
			}}`,
		},
		{
			"option added",
			`{"title": [{"plain_text": "TV Shows"}], "properties": {
				"Name":   {"type": "title"},
				"Rating": {"type": "number"},
				"Status": {"type": "status", "status": {"options": [{"name": "Watching"}, {"name": "Completed"}, {"name": "Dropped"}]}}
			}}`,
		},
		{
			"title changed",
			`{"title": [{"plain_text": "Movies"}], "properties": {
				"Name":   {"type": "title"},
				"Rating": {"type": "number"},
				"Status": {"type": "status", "status": {"options": [{"name": "Watching"}, {"name": "Completed"}]}}
			}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hash(databaseFromJSON(t, tt.raw)); got == base {
				t.Errorf("hash did not change for: %s", tt.name)
			}
		})
	}
}
