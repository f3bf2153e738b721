// Package record maps generated record types to and from the Notion wire
// representation of a page. Generated types embed Meta, tag their fields
// with `notion:"<type>,<property name>"` and implement Record, which bakes
// in the source database id.
package record

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/snadboy/notiongen/internal/notion"
)

// Record is implemented by every generated record type.
type Record interface {
	// NotionDatabaseID returns the id of the database the type was
	// generated from.
	NotionDatabaseID() string
}

// ErrNoDatabaseID indicates a typed create or query on a record type whose
// descriptor carries no database association. This is a usage error, always
// fatal to the call.
var ErrNoDatabaseID = errors.New("no database id associated with record type")

// Meta carries the page envelope fields shared by every record. It is
// always populated from the page itself, regardless of the schema.
type Meta struct {
	ID             string
	CreatedTime    time.Time
	LastEditedTime time.Time
	CreatedBy      string
	LastEditedBy   string
}

// DatabaseID resolves the database a record belongs to, failing with
// ErrNoDatabaseID when the association is missing.
func DatabaseID(rec Record) (string, error) {
	id := rec.NotionDatabaseID()
	if id == "" {
		return "", fmt.Errorf("%w: %T", ErrNoDatabaseID, rec)
	}
	return id, nil
}

var metaType = reflect.TypeOf(Meta{})

// fieldTag is a parsed `notion` struct tag.
type fieldTag struct {
	typeTag string
	remote  string
}

func parseTag(tag string) (fieldTag, bool) {
	if tag == "" {
		return fieldTag{}, false
	}
	// The remote property name may itself contain commas; only the first
	// comma separates the type tag.
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			return fieldTag{typeTag: tag[:i], remote: tag[i+1:]}, true
		}
	}
	return fieldTag{typeTag: tag, remote: tag}, true
}

// structValue unwraps rec down to an addressable-or-not struct value.
func structValue(rec any) (reflect.Value, error) {
	v := reflect.ValueOf(rec)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("record is a nil pointer")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("record must be a struct or pointer to struct, got %T", rec)
	}
	return v, nil
}

// ToProperties converts a record's non-absent fields to their Notion wire
// representation. Absent fields (zero values) are omitted entirely, never
// emitted as null, so partial updates do not clobber unrelated properties.
func ToProperties(rec any) (map[string]notion.Property, error) {
	v, err := structValue(rec)
	if err != nil {
		return nil, err
	}
	t := v.Type()

	props := make(map[string]notion.Property)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, ok := parseTag(sf.Tag.Get("notion"))
		if !ok {
			continue
		}
		fv := v.Field(i)
		if fv.IsZero() {
			continue
		}

		switch tag.typeTag {
		case "title":
			props[tag.remote] = notion.Property{
				Title: []notion.RichText{{Text: &notion.TextContent{Content: stringOf(fv)}}},
			}
		case "rich_text":
			props[tag.remote] = notion.Property{
				RichText: []notion.RichText{{Text: &notion.TextContent{Content: stringOf(fv)}}},
			}
		case "select":
			props[tag.remote] = notion.Property{Select: &notion.SelectOption{Name: stringOf(fv)}}
		case "status":
			props[tag.remote] = notion.Property{Status: &notion.SelectOption{Name: stringOf(fv)}}
		case "multi_select":
			opts := make([]notion.SelectOption, fv.Len())
			for j := 0; j < fv.Len(); j++ {
				opts[j] = notion.SelectOption{Name: stringOf(fv.Index(j))}
			}
			props[tag.remote] = notion.Property{MultiSelect: opts}
		case "date":
			if ts, ok := fv.Interface().(time.Time); ok {
				props[tag.remote] = notion.Property{
					Date: &notion.DateValue{Start: ts.Format(time.RFC3339)},
				}
			}
		case "number":
			f := fv
			if f.Kind() == reflect.Pointer {
				f = f.Elem()
			}
			n := f.Float()
			props[tag.remote] = notion.Property{Number: &n}
		case "checkbox":
			b := fv
			if b.Kind() == reflect.Pointer {
				b = b.Elem()
			}
			val := b.Bool()
			props[tag.remote] = notion.Property{Checkbox: &val}
		case "url":
			s := stringOf(fv)
			props[tag.remote] = notion.Property{URL: &s}
		case "email":
			s := stringOf(fv)
			props[tag.remote] = notion.Property{Email: &s}
		case "phone_number":
			s := stringOf(fv)
			props[tag.remote] = notion.Property{PhoneNumber: &s}
		default:
			// Server-managed and read-only property types (timestamps,
			// people, formulas, rollups, ...) are never written.
		}
	}
	return props, nil
}

// FromPage populates a record from a Notion page. Fields whose wire property
// is absent keep their defaults; the Meta envelope is always populated.
func FromPage(page *notion.Page, rec any) error {
	rv := reflect.ValueOf(rec)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("record must be a non-nil pointer, got %T", rec)
	}
	v := rv.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("record must point to a struct, got %T", rec)
	}
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)

		if sf.Anonymous && sf.Type == metaType {
			fv.Set(reflect.ValueOf(metaFromPage(page)))
			continue
		}

		tag, ok := parseTag(sf.Tag.Get("notion"))
		if !ok {
			continue
		}
		prop, ok := page.Properties[tag.remote]
		if !ok {
			continue
		}
		if err := setField(fv, tag.typeTag, prop); err != nil {
			return fmt.Errorf("property %q: %w", tag.remote, err)
		}
	}
	return nil
}

func metaFromPage(page *notion.Page) Meta {
	m := Meta{
		ID:             page.ID,
		CreatedTime:    page.CreatedTime.UTC(),
		LastEditedTime: page.LastEditedTime.UTC(),
	}
	if page.CreatedBy != nil {
		m.CreatedBy = page.CreatedBy.ID
	}
	if page.LastEditedBy != nil {
		m.LastEditedBy = page.LastEditedBy.ID
	}
	return m
}

func setField(fv reflect.Value, typeTag string, prop notion.Property) error {
	switch typeTag {
	case "title":
		setString(fv, notion.PlainText(prop.Title))
	case "rich_text":
		setString(fv, notion.PlainText(prop.RichText))
	case "select":
		if prop.Select != nil {
			setString(fv, prop.Select.Name)
		}
	case "status":
		if prop.Status != nil {
			setString(fv, prop.Status.Name)
		}
	case "multi_select":
		setStringSlice(fv, optionNames(prop.MultiSelect))
	case "number":
		if prop.Number != nil {
			setFloat(fv, *prop.Number)
		}
	case "checkbox":
		if prop.Checkbox != nil {
			setBool(fv, *prop.Checkbox)
		}
	case "date":
		if prop.Date != nil && prop.Date.Start != "" {
			ts, err := ParseTime(prop.Date.Start)
			if err != nil {
				return err
			}
			setTime(fv, ts)
		}
	case "created_time":
		if prop.CreatedTime != nil {
			setTime(fv, prop.CreatedTime.UTC())
		}
	case "last_edited_time":
		if prop.LastEditedTime != nil {
			setTime(fv, prop.LastEditedTime.UTC())
		}
	case "created_by":
		if prop.CreatedBy != nil {
			setString(fv, prop.CreatedBy.ID)
		}
	case "last_edited_by":
		if prop.LastEditedBy != nil {
			setString(fv, prop.LastEditedBy.ID)
		}
	case "url":
		if prop.URL != nil {
			setString(fv, *prop.URL)
		}
	case "email":
		if prop.Email != nil {
			setString(fv, *prop.Email)
		}
	case "phone_number":
		if prop.PhoneNumber != nil {
			setString(fv, *prop.PhoneNumber)
		}
	case "people":
		names := make([]string, 0, len(prop.People))
		for _, u := range prop.People {
			names = append(names, u.ID)
		}
		setStringSlice(fv, names)
	case "files":
		names := make([]string, 0, len(prop.Files))
		for _, f := range prop.Files {
			names = append(names, f.Name)
		}
		setStringSlice(fv, names)
	case "relation":
		ids := make([]string, 0, len(prop.Relation))
		for _, r := range prop.Relation {
			ids = append(ids, r.ID)
		}
		setStringSlice(fv, ids)
	case "unique_id":
		if prop.UniqueID != nil {
			s := strconv.Itoa(prop.UniqueID.Number)
			if prop.UniqueID.Prefix != nil {
				s = *prop.UniqueID.Prefix + "-" + s
			}
			setString(fv, s)
		}
	case "formula":
		setRaw(fv, prop.Formula)
	case "rollup":
		setRaw(fv, prop.Rollup)
	}
	return nil
}

// ParseTime parses a Notion timestamp. Zulu/UTC-suffixed RFC 3339 values and
// date-only values are both accepted; the result is timezone-aware.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func stringOf(fv reflect.Value) string {
	if fv.Kind() == reflect.Pointer {
		fv = fv.Elem()
	}
	return fv.String()
}

func setString(fv reflect.Value, s string) {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(s)
	case reflect.Pointer:
		if fv.Type().Elem().Kind() == reflect.String {
			p := reflect.New(fv.Type().Elem())
			p.Elem().SetString(s)
			fv.Set(p)
		}
	}
}

func setStringSlice(fv reflect.Value, items []string) {
	if fv.Kind() != reflect.Slice || fv.Type().Elem().Kind() != reflect.String {
		return
	}
	out := reflect.MakeSlice(fv.Type(), 0, len(items))
	for _, item := range items {
		out = reflect.Append(out, reflect.ValueOf(item).Convert(fv.Type().Elem()))
	}
	fv.Set(out)
}

func setFloat(fv reflect.Value, f float64) {
	switch fv.Kind() {
	case reflect.Float32, reflect.Float64:
		fv.SetFloat(f)
	case reflect.Pointer:
		p := reflect.New(fv.Type().Elem())
		p.Elem().SetFloat(f)
		fv.Set(p)
	}
}

func setBool(fv reflect.Value, b bool) {
	switch fv.Kind() {
	case reflect.Bool:
		fv.SetBool(b)
	case reflect.Pointer:
		p := reflect.New(fv.Type().Elem())
		p.Elem().SetBool(b)
		fv.Set(p)
	}
}

func setTime(fv reflect.Value, t time.Time) {
	if fv.Type() == reflect.TypeOf(time.Time{}) {
		fv.Set(reflect.ValueOf(t))
	}
}

func setRaw(fv reflect.Value, raw []byte) {
	if len(raw) == 0 {
		return
	}
	if fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.Uint8 {
		fv.SetBytes(append([]byte(nil), raw...))
	}
}

func optionNames(opts []notion.SelectOption) []string {
	names := make([]string, 0, len(opts))
	for _, o := range opts {
		if o.Name != "" {
			names = append(names, o.Name)
		}
	}
	return names
}
