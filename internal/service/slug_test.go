package service

import "testing"

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "diacritics and punctuation", input: "5 Tendencias de Diseño Web!", expected: "5-tendencias-de-diseno-web"},
		{name: "already a slug", input: "5-tendencias-de-diseno-web", expected: "5-tendencias-de-diseno-web"},
		{name: "uppercase", input: "Hola Mundo", expected: "hola-mundo"},
		{name: "mixed separators", input: "uno  -  dos --- tres", expected: "uno-dos-tres"},
		{name: "leading and trailing noise", input: "  ¡Año nuevo!  ", expected: "ano-nuevo"},
		{name: "empty", input: "", expected: ""},
		{name: "only punctuation", input: "¡¿?!", expected: ""},
		{name: "keeps digits", input: "Top 10 de 2026", expected: "top-10-de-2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveSlug(tt.input); got != tt.expected {
				t.Fatalf("DeriveSlug(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDeriveSlugIdempotent(t *testing.T) {
	inputs := []string{
		"5 Tendencias de Diseño Web!",
		"Reparación de WordPress",
		"Top 10 de 2026",
	}
	for _, input := range inputs {
		once := DeriveSlug(input)
		if twice := DeriveSlug(once); twice != once {
			t.Fatalf("DeriveSlug not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
