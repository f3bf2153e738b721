package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileBase(t *testing.T) {
	if got := FileBase("TV Shows"); got != "tv_shows" {
		t.Errorf("FileBase(%q) = %q, want %q", "TV Shows", got, "tv_shows")
	}
}

func TestShouldRegenerate(t *testing.T) {
	dir := t.TempDir()
	metaPath := filepath.Join(dir, "tv_shows.meta.json")

	// No prior metadata: regenerate.
	if !ShouldRegenerate(metaPath, "hash-1", false) {
		t.Error("missing metadata should force regeneration")
	}

	meta := &Metadata{
		SchemaHash:   "hash-1",
		GeneratedAt:  time.Now(),
		NotionDBID:   "db-1",
		NotionDBName: "TV Shows",
	}
	data, err := json.Marshal(meta)
	if err != nil {
		t.Fatalf("failed to marshal metadata: %v", err)
	}
	if err := os.WriteFile(metaPath, data, 0o644); err != nil {
		t.Fatalf("failed to write metadata: %v", err)
	}

	if ShouldRegenerate(metaPath, "hash-1", false) {
		t.Error("matching hash without force should skip regeneration")
	}
	if !ShouldRegenerate(metaPath, "hash-2", false) {
		t.Error("hash mismatch should force regeneration")
	}
	if !ShouldRegenerate(metaPath, "hash-1", true) {
		t.Error("force should regenerate regardless of hash equality")
	}
}

func TestSaveWritesSourceAndSidecar(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	meta := &Metadata{
		SchemaHash:    "abc123",
		GeneratedAt:   fixedClock(),
		NotionDBID:    "db-1",
		NotionDBName:  "TV Shows",
		PropertyTypes: map[string]string{"rating": "number"},
	}

	path, err := Save("package generated\n", meta, dir)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if path != filepath.Join(dir, "tv_shows.go") {
		t.Errorf("unexpected source path: %s", path)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read generated source: %v", err)
	}
	if string(source) != "package generated\n" {
		t.Errorf("unexpected source content: %q", source)
	}

	sidecar, err := os.ReadFile(filepath.Join(dir, "tv_shows.meta.json"))
	if err != nil {
		t.Fatalf("failed to read sidecar: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(sidecar, &decoded); err != nil {
		t.Fatalf("sidecar is not valid JSON: %v", err)
	}
	if decoded["schema_hash"] != "abc123" {
		t.Errorf("unexpected schema_hash: %v", decoded["schema_hash"])
	}
	if decoded["notion_db_id"] != "db-1" {
		t.Errorf("unexpected notion_db_id: %v", decoded["notion_db_id"])
	}
	if decoded["notion_db_name"] != "TV Shows" {
		t.Errorf("unexpected notion_db_name: %v", decoded["notion_db_name"])
	}
	if _, ok := decoded["generated_at"].(string); !ok {
		t.Error("generated_at should be an ISO-8601 string")
	}
	if _, ok := decoded["property_types"].(map[string]any); !ok {
		t.Error("property_types should be an object")
	}
}

func TestSaveOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	meta := &Metadata{SchemaHash: "h", GeneratedAt: fixedClock(), NotionDBID: "db", NotionDBName: "Books"}

	if _, err := Save("old\n", meta, dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	path, err := Save("new\n", meta, dir)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read generated source: %v", err)
	}
	if string(source) != "new\n" {
		t.Errorf("existing file should be overwritten, got %q", source)
	}
}
