package schema

// goTypes maps every recognized Notion property type tag to the Go type
// used in generated record definitions. Choice-valued tags (select, status,
// multi_select) are absent here: they get a synthesized enum type instead.
var goTypes = map[string]string{
	"title":            "string",
	"rich_text":        "string",
	"url":              "string",
	"email":            "string",
	"phone_number":     "string",
	"created_by":       "string",
	"last_edited_by":   "string",
	"unique_id":        "string",
	"number":           "*float64",
	"checkbox":         "*bool",
	"date":             "time.Time",
	"created_time":     "time.Time",
	"last_edited_time": "time.Time",
	"people":           "[]string",
	"files":            "[]string",
	"relation":         "[]string",
	"formula":          "json.RawMessage",
	"rollup":           "json.RawMessage",
}

// choiceTypes are the property types backed by a predefined option set.
var choiceTypes = map[string]bool{
	"select":       true,
	"multi_select": true,
	"status":       true,
}
