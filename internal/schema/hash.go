package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/snadboy/notiongen/internal/notion"
)

// Hash computes a canonical content hash of a database schema. The
// serialization is key-sorted, so two schemas that differ only in property
// order hash identically; any change to a property's name, type or choice
// option set changes the digest.
func Hash(db *notion.Database) string {
	props := make(map[string]any, len(db.Properties))
	for name, def := range db.Properties {
		p := map[string]any{"type": def.Type}
		if opts := def.Options(); opts != nil {
			labels := make([]string, len(opts))
			for i, o := range opts {
				labels[i] = o.Name
			}
			p["options"] = labels
		}
		props[name] = p
	}

	canonical := map[string]any{
		"title":      db.PlainTitle(),
		"properties": props,
	}

	// encoding/json serializes map keys in sorted order, which makes the
	// digest independent of property iteration order.
	data, err := json.Marshal(canonical)
	if err != nil {
		// Only string-keyed maps of marshalable values above.
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
