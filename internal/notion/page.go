package notion

import (
	"strconv"
	"strings"
)

// PropertyString renders a page property value as a display string, or ""
// when the property is absent or empty.
func (p *Page) PropertyString(name string) string {
	prop, ok := p.Properties[name]
	if !ok {
		return ""
	}

	switch prop.Type {
	case "title":
		return PlainText(prop.Title)
	case "rich_text":
		return PlainText(prop.RichText)
	case "number":
		if prop.Number != nil {
			return strconv.FormatFloat(*prop.Number, 'f', -1, 64)
		}
	case "select":
		if prop.Select != nil {
			return prop.Select.Name
		}
	case "status":
		if prop.Status != nil {
			return prop.Status.Name
		}
	case "multi_select":
		var names []string
		for _, s := range prop.MultiSelect {
			names = append(names, s.Name)
		}
		return strings.Join(names, ", ")
	case "date":
		if prop.Date != nil {
			if prop.Date.End != nil {
				return prop.Date.Start + " → " + *prop.Date.End
			}
			return prop.Date.Start
		}
	case "people":
		var names []string
		for _, u := range prop.People {
			names = append(names, u.Name)
		}
		return strings.Join(names, ", ")
	case "checkbox":
		if prop.Checkbox != nil {
			if *prop.Checkbox {
				return "✓"
			}
			return "✗"
		}
	case "url":
		if prop.URL != nil {
			return *prop.URL
		}
	case "email":
		if prop.Email != nil {
			return *prop.Email
		}
	case "phone_number":
		if prop.PhoneNumber != nil {
			return *prop.PhoneNumber
		}
	case "created_time":
		if prop.CreatedTime != nil {
			return prop.CreatedTime.Format("2006-01-02 15:04:05")
		}
	case "last_edited_time":
		if prop.LastEditedTime != nil {
			return prop.LastEditedTime.Format("2006-01-02 15:04:05")
		}
	case "created_by":
		if prop.CreatedBy != nil {
			return prop.CreatedBy.Name
		}
	case "last_edited_by":
		if prop.LastEditedBy != nil {
			return prop.LastEditedBy.Name
		}
	case "unique_id":
		if prop.UniqueID != nil {
			if prop.UniqueID.Prefix != nil {
				return *prop.UniqueID.Prefix + "-" + strconv.Itoa(prop.UniqueID.Number)
			}
			return strconv.Itoa(prop.UniqueID.Number)
		}
	}

	return ""
}
