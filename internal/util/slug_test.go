package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Advanced Data Scraper", "advanced-data-scraper"},
		{"ampersand and case", "E-commerce UI Kit", "e-commerce-ui-kit"},
		{"accents", "Café Électrique", "cafe-electrique"},
		{"cyrillic transliteration", "Привет Мир", "privet-mir"},
		{"punctuation stripped", "Hello, World!", "hello-world"},
		{"collapsed hyphens", "a  --  b", "a-b"},
		{"empty", "", ""},
		{"symbols only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"a", "portfolio-template", "abc-123"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "Has Space", "UPPER", "sneaky/slash", "café"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}
