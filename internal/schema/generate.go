package schema

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/snadboy/notiongen/internal/notion"
)

const recordImport = "github.com/snadboy/notiongen/pkg/record"

// Generator emits Go record type definitions from Notion database schemas.
type Generator struct {
	// PackageName is the package clause of generated files.
	PackageName string

	now func() time.Time
}

// NewGenerator creates a generator emitting into the given package.
func NewGenerator(packageName string) *Generator {
	if packageName == "" {
		packageName = "generated"
	}
	return &Generator{
		PackageName: packageName,
		now:         time.Now,
	}
}

type fieldSpec struct {
	exported string
	goType   string
	typeTag  string
	remote   string
}

type enumSpec struct {
	name    string
	remote  string
	entries []enumEntry
}

type enumEntry struct {
	variant string
	label   string
}

// Generate produces the Go source of a record type for the given database
// schema, plus the metadata sidecar describing it. It performs no I/O and is
// deterministic: the same schema yields byte-identical source.
func (g *Generator) Generate(databaseID string, db *notion.Database) (string, *Metadata, error) {
	title := db.PlainTitle()
	if title == "" {
		title = "Untitled"
	}
	typeName := TypeName(title)

	names := make([]string, 0, len(db.Properties))
	for name := range db.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	titleProp := ""
	for _, name := range names {
		if db.Properties[name].Type == "title" {
			titleProp = name
			break
		}
	}
	if titleProp == "" {
		return "", nil, &MissingTitlePropertyError{Database: title}
	}

	propTypes := make(map[string]string)
	fields := []fieldSpec{{
		exported: ExportedName(FieldName(titleProp)),
		goType:   "string",
		typeTag:  "title",
		remote:   titleProp,
	}}
	var enums []enumSpec

	for _, name := range names {
		def := db.Properties[name]
		if def.Type == "title" {
			continue
		}

		fieldName := FieldName(name)
		propTypes[fieldName] = def.Type

		var goType string
		if choiceTypes[def.Type] {
			enumName := ExportedName(fieldName) + "Enum"
			spec := enumSpec{name: enumName, remote: name}
			for _, opt := range def.Options() {
				spec.entries = append(spec.entries, enumEntry{
					variant: EnumVariant(opt.Name, enumName),
					label:   opt.Name,
				})
			}
			enums = append(enums, spec)
			goType = enumName
			if def.Type == "multi_select" {
				goType = "[]" + enumName
			}
		} else {
			var ok bool
			goType, ok = goTypes[def.Type]
			if !ok {
				return "", nil, &UnsupportedPropertyTypeError{Property: name, Type: def.Type}
			}
		}

		fields = append(fields, fieldSpec{
			exported: ExportedName(fieldName),
			goType:   goType,
			typeTag:  def.Type,
			remote:   name,
		})
	}

	source := g.render(databaseID, title, typeName, fields, enums)

	meta := &Metadata{
		SchemaHash:    Hash(db),
		GeneratedAt:   g.now(),
		NotionDBID:    databaseID,
		NotionDBName:  title,
		PropertyTypes: propTypes,
	}
	return source, meta, nil
}

func (g *Generator) render(databaseID, title, typeName string, fields []fieldSpec, enums []enumSpec) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Code generated by notiongen. DO NOT EDIT.\n")
	fmt.Fprintf(&buf, "//\n")
	fmt.Fprintf(&buf, "// Source database: %s (%s)\n\n", title, databaseID)
	fmt.Fprintf(&buf, "package %s\n\n", g.PackageName)

	needsTime := false
	needsJSON := false
	for _, f := range fields {
		if strings.Contains(f.goType, "time.Time") {
			needsTime = true
		}
		if strings.Contains(f.goType, "json.RawMessage") {
			needsJSON = true
		}
	}

	buf.WriteString("import (\n")
	if needsJSON {
		buf.WriteString("\t\"encoding/json\"\n")
	}
	if needsTime {
		buf.WriteString("\t\"time\"\n")
	}
	if needsJSON || needsTime {
		buf.WriteString("\n")
	}
	fmt.Fprintf(&buf, "\t%q\n", recordImport)
	buf.WriteString(")\n\n")

	fmt.Fprintf(&buf, "// %s is the typed record for the %q Notion database.\n", typeName, title)
	fmt.Fprintf(&buf, "type %s struct {\n", typeName)
	buf.WriteString("\trecord.Meta\n\n")
	for _, f := range fields {
		fmt.Fprintf(&buf, "\t%s %s `notion:\"%s,%s\"`\n", f.exported, f.goType, f.typeTag, f.remote)
	}
	buf.WriteString("}\n\n")

	fmt.Fprintf(&buf, "// NotionDatabaseID returns the id of the database this type was generated from.\n")
	fmt.Fprintf(&buf, "func (%s) NotionDatabaseID() string {\n\treturn %q\n}\n", typeName, databaseID)

	for _, e := range enums {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "// %s enumerates the options of the %q property.\n", e.name, e.remote)
		fmt.Fprintf(&buf, "type %s string\n\n", e.name)
		if len(e.entries) == 0 {
			continue
		}
		buf.WriteString("const (\n")
		for _, entry := range e.entries {
			fmt.Fprintf(&buf, "\t%s %s = %q\n", entry.variant, e.name, entry.label)
		}
		buf.WriteString(")\n")
	}

	return buf.String()
}
