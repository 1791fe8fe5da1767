package library_test

import (
	"testing"

	"github.com/opencourse/coursegen/internal/library"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{"simple", "Quantum Computing", "quantum_computing"},
		{"diacritics folded", "Álgèbra Lineâl", "algebra_lineal"},
		{"punctuation collapsed", "C++: The Basics!!", "c_the_basics"},
		{"leading and trailing trimmed", "  -- Intro --  ", "intro"},
		{"digits kept", "Go 1.25 Generics", "go_1_25_generics"},
		{"nothing usable", "¡¿!?", "untitled"},
		{"empty", "", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := library.Slug(tt.topic); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.topic, got, tt.want)
			}
		})
	}
}
