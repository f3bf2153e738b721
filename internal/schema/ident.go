package schema

import (
	"strings"
	"unicode"
)

// TypeName derives a Go type name from a database display title: title-case
// words, strip everything that is not a letter or digit. Titles starting
// with a digit are prefixed to stay a valid identifier.
func TypeName(title string) string {
	var b strings.Builder
	startOfWord := true
	for _, r := range title {
		switch {
		case unicode.IsLetter(r):
			if startOfWord {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			startOfWord = false
		case unicode.IsDigit(r):
			b.WriteRune(r)
			startOfWord = true
		default:
			startOfWord = true
		}
	}
	name := b.String()
	if name == "" {
		return "Untitled"
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "N" + name
	}
	return name
}

// FieldName derives a local field identifier from a remote property name:
// lowercase, every run of non-alphanumeric characters collapsed to a single
// underscore, leading/trailing underscores stripped, digit-leading results
// prefixed with "f". Consumers depend on this algorithm being stable.
func FieldName(name string) string {
	lower := strings.ToLower(name)
	var b strings.Builder
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '_' })
	field := strings.Join(parts, "_")
	if field == "" {
		return field
	}
	if unicode.IsDigit(rune(field[0])) {
		field = "f" + field
	}
	return field
}

// ExportedName converts a snake_case field identifier to an exported Go
// identifier: "weird_field" becomes "WeirdField".
func ExportedName(field string) string {
	parts := strings.Split(field, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

// reservedEnumBases are enum base names whose variants collide with common
// property vocabulary and get the base name prepended.
var reservedEnumBases = map[string]bool{
	"select": true,
	"status": true,
	"type":   true,
}

// EnumVariant derives an enum variant identifier from an option's display
// label. The algorithm is a compatibility surface: generated consumer code
// depends on these exact names.
//
//	"18+"      -> AGE_18_PLUS
//	"-5"       -> AGE_5_MINUS
//	"Watching" -> STATUS_WATCHING (inside an enum named StatusEnum)
func EnumVariant(label, enumName string) string {
	key := strings.ToUpper(label)
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")

	if label != "" {
		first := []rune(label)[0]
		if unicode.IsDigit(first) || !unicode.IsLetter(first) {
			switch {
			case strings.HasSuffix(label, "+"):
				key = "AGE_" + strings.TrimSuffix(label, "+") + "_PLUS"
			case strings.HasPrefix(label, "-"):
				key = "AGE_" + strings.TrimPrefix(label, "-") + "_MINUS"
			default:
				key = "AGE_" + label
			}
		}
	}

	var b strings.Builder
	for _, r := range key {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	key = b.String()

	base := strings.TrimSuffix(strings.ToLower(enumName), "enum")
	if reservedEnumBases[base] {
		key = strings.ToUpper(base) + "_" + key
	}
	return key
}
