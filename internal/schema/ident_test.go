package schema

import "testing"

func TestFieldName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Name", "name"},
		{"Weird-Field!", "weird_field"},
		{"2nd Rating", "f2nd_rating"},
		{"  spaced   out  ", "spaced_out"},
		{"already_snake", "already_snake"},
		{"__trim__me__", "trim_me"},
		{"Phone #", "phone"},
		{"A--B", "a_b"},
	}

	for _, tt := range tests {
		if got := FieldName(tt.in); got != tt.want {
			t.Errorf("FieldName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TV Shows", "TvShows"},
		{"My-Weird Name!", "MyWeirdName"},
		{"books", "Books"},
		{"", "Untitled"},
		{"2024 Goals", "2024Goals"},
	}

	for _, tt := range tests {
		got := TypeName(tt.in)
		if tt.in == "2024 Goals" {
			// Digit-leading titles get a prefix to stay a valid identifier.
			if got != "N2024Goals" {
				t.Errorf("TypeName(%q) = %q, want %q", tt.in, got, "N2024Goals")
			}
			continue
		}
		if got != tt.want {
			t.Errorf("TypeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExportedName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"weird_field", "WeirdField"},
		{"f2nd_rating", "F2ndRating"},
		{"name", "Name"},
	}

	for _, tt := range tests {
		if got := ExportedName(tt.in); got != tt.want {
			t.Errorf("ExportedName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEnumVariant(t *testing.T) {
	tests := []struct {
		label    string
		enumName string
		want     string
	}{
		{"Watching", "StatusEnum", "STATUS_WATCHING"},
		{"Completed", "StatusEnum", "STATUS_COMPLETED"},
		{"Drama", "GenresEnum", "DRAMA"},
		{"Sci-Fi", "GenresEnum", "SCI_FI"},
		{"On Hold", "GenresEnum", "ON_HOLD"},
		{"18+", "RatingEnum", "AGE_18_PLUS"},
		{"-5", "RatingEnum", "AGE_5_MINUS"},
		{"13", "RatingEnum", "AGE_13"},
		{"Action", "TypeEnum", "TYPE_ACTION"},
		{"Open", "SelectEnum", "SELECT_OPEN"},
	}

	for _, tt := range tests {
		if got := EnumVariant(tt.label, tt.enumName); got != tt.want {
			t.Errorf("EnumVariant(%q, %q) = %q, want %q", tt.label, tt.enumName, got, tt.want)
		}
	}
}
