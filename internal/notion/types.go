package notion

import (
	"encoding/json"
	"time"
)

// Page represents a Notion page object.
type Page struct {
	Object         string              `json:"object,omitempty"`
	ID             string              `json:"id"`
	CreatedTime    time.Time           `json:"created_time"`
	LastEditedTime time.Time           `json:"last_edited_time"`
	CreatedBy      *User               `json:"created_by,omitempty"`
	LastEditedBy   *User               `json:"last_edited_by,omitempty"`
	Parent         Parent              `json:"parent"`
	Archived       bool                `json:"archived"`
	Properties     map[string]Property `json:"properties"`
	URL            string              `json:"url,omitempty"`
}

// Database represents a Notion database object, including its property schema.
type Database struct {
	Object         string                 `json:"object,omitempty"`
	ID             string                 `json:"id"`
	CreatedTime    time.Time              `json:"created_time"`
	LastEditedTime time.Time              `json:"last_edited_time"`
	Title          []RichText             `json:"title"`
	Parent         Parent                 `json:"parent"`
	Archived       bool                   `json:"archived"`
	Properties     map[string]PropertyDef `json:"properties"`
	URL            string                 `json:"url,omitempty"`
}

// PropertyDef is one property definition in a database schema.
type PropertyDef struct {
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name,omitempty"`
	Type        string        `json:"type"`
	Select      *SelectConfig `json:"select,omitempty"`
	MultiSelect *SelectConfig `json:"multi_select,omitempty"`
	Status      *SelectConfig `json:"status,omitempty"`
}

// Options returns the choice options configured for a select, multi_select or
// status property, or nil for other property types.
func (d PropertyDef) Options() []SelectOption {
	switch {
	case d.Select != nil:
		return d.Select.Options
	case d.MultiSelect != nil:
		return d.MultiSelect.Options
	case d.Status != nil:
		return d.Status.Options
	}
	return nil
}

// SelectConfig holds the configured options of a choice property.
type SelectConfig struct {
	Options []SelectOption `json:"options"`
}

// SelectOption is one option of a select, multi_select or status property.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// User represents a Notion user.
type User struct {
	Object string `json:"object,omitempty"`
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
}

// Parent represents the parent of a page or database.
type Parent struct {
	Type       string `json:"type,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
	PageID     string `json:"page_id,omitempty"`
	Workspace  bool   `json:"workspace,omitempty"`
}

// Property represents one page property value. Exactly one of the typed
// fields is populated, matching Type.
type Property struct {
	ID             string          `json:"id,omitempty"`
	Type           string          `json:"type,omitempty"`
	Title          []RichText      `json:"title,omitempty"`
	RichText       []RichText      `json:"rich_text,omitempty"`
	Number         *float64        `json:"number,omitempty"`
	Select         *SelectOption   `json:"select,omitempty"`
	MultiSelect    []SelectOption  `json:"multi_select,omitempty"`
	Status         *SelectOption   `json:"status,omitempty"`
	Date           *DateValue      `json:"date,omitempty"`
	People         []User          `json:"people,omitempty"`
	Files          []File          `json:"files,omitempty"`
	Checkbox       *bool           `json:"checkbox,omitempty"`
	URL            *string         `json:"url,omitempty"`
	Email          *string         `json:"email,omitempty"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	Relation       []Relation      `json:"relation,omitempty"`
	Formula        json.RawMessage `json:"formula,omitempty"`
	Rollup         json.RawMessage `json:"rollup,omitempty"`
	CreatedTime    *time.Time      `json:"created_time,omitempty"`
	CreatedBy      *User           `json:"created_by,omitempty"`
	LastEditedTime *time.Time      `json:"last_edited_time,omitempty"`
	LastEditedBy   *User           `json:"last_edited_by,omitempty"`
	UniqueID       *UniqueID       `json:"unique_id,omitempty"`
}

// RichText represents rich text content.
type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

// TextContent represents text content.
type TextContent struct {
	Content string `json:"content"`
}

// DateValue represents a date value.
type DateValue struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

// File represents a file object.
type File struct {
	Name     string    `json:"name,omitempty"`
	Type     string    `json:"type,omitempty"`
	External *External `json:"external,omitempty"`
}

// External represents an external file.
type External struct {
	URL string `json:"url"`
}

// Relation represents a relation to another page.
type Relation struct {
	ID string `json:"id"`
}

// UniqueID represents a unique ID value.
type UniqueID struct {
	Prefix *string `json:"prefix,omitempty"`
	Number int     `json:"number"`
}

// APIError represents an error response from the Notion API.
type APIError struct {
	Object  string `json:"object,omitempty"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// PlainText concatenates the plain text of a rich text array.
func PlainText(texts []RichText) string {
	var s string
	for _, t := range texts {
		if t.PlainText != "" {
			s += t.PlainText
		} else if t.Text != nil {
			s += t.Text.Content
		}
	}
	return s
}

// PlainTitle returns the database's display title as plain text.
func (d *Database) PlainTitle() string {
	return PlainText(d.Title)
}

// PlainTitle returns the page's title property as plain text, or "" when the
// page has no title property.
func (p *Page) PlainTitle() string {
	for _, prop := range p.Properties {
		if prop.Type == "title" {
			return PlainText(prop.Title)
		}
	}
	return ""
}
