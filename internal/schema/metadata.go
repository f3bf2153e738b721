package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Metadata is the sidecar written next to every generated record type. It is
// the sole input to the regeneration decision: it is overwritten wholesale on
// each generation and never merged.
type Metadata struct {
	SchemaHash    string            `json:"schema_hash"`
	GeneratedAt   time.Time         `json:"generated_at"`
	NotionDBID    string            `json:"notion_db_id"`
	NotionDBName  string            `json:"notion_db_name"`
	PropertyTypes map[string]string `json:"property_types"`
}

// FileBase derives the generated file base name from a database display
// title: lowercased, spaces replaced with underscores.
func FileBase(dbName string) string {
	return strings.ReplaceAll(strings.ToLower(dbName), " ", "_")
}

// MetaPath returns the sidecar path for a database name in outputDir.
func MetaPath(outputDir, dbName string) string {
	return filepath.Join(outputDir, FileBase(dbName)+".meta.json")
}

// ShouldRegenerate reports whether a new generation pass is needed: when
// force is set, when no prior metadata exists at metaPath, or when the stored
// hash differs from newHash. It must be consulted before writing anything.
func ShouldRegenerate(metaPath, newHash string, force bool) bool {
	if force {
		return true
	}
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return true
	}
	var existing Metadata
	if err := json.Unmarshal(data, &existing); err != nil {
		return true
	}
	return existing.SchemaHash != newHash
}

// Save writes the generated source and its metadata sidecar into outputDir,
// creating the directory if absent. Existing files of the same name are
// overwritten. It returns the path of the written source file.
func Save(source string, meta *Metadata, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	base := FileBase(meta.NotionDBName)
	sourcePath := filepath.Join(outputDir, base+".go")
	if err := os.WriteFile(sourcePath, []byte(source), 0o644); err != nil {
		return "", fmt.Errorf("failed to write generated source: %w", err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	metaPath := filepath.Join(outputDir, base+".meta.json")
	if err := os.WriteFile(metaPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}

	return sourcePath, nil
}
