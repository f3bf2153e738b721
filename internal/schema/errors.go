package schema

import "fmt"

// MissingTitlePropertyError indicates a database schema without a
// title-typed property. Every Notion database is expected to carry exactly
// one; it is the record's primary display field.
type MissingTitlePropertyError struct {
	Database string
}

func (e *MissingTitlePropertyError) Error() string {
	return fmt.Sprintf("no title property found in database schema for %q", e.Database)
}

// UnsupportedPropertyTypeError indicates a property whose type tag is not in
// the recognized set. Unrecognized properties fail generation instead of
// being silently dropped.
type UnsupportedPropertyTypeError struct {
	Property string
	Type     string
}

func (e *UnsupportedPropertyTypeError) Error() string {
	return fmt.Sprintf("unsupported property type %q for property %q", e.Type, e.Property)
}
