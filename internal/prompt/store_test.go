package prompt_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opencourse/coursegen/internal/prompt"
)

func TestStore_Defaults(t *testing.T) {
	store, err := prompt.NewStore("")
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	course, err := store.Course(prompt.CourseParams{Topic: "Poetry Writing"})
	if err != nil {
		t.Fatalf("Course() error = %v", err)
	}
	if !strings.Contains(course, "Poetry Writing") {
		t.Error("course prompt does not contain the topic")
	}
	if !strings.Contains(course, `"key_takeaways"`) {
		t.Error("course prompt does not describe the expected JSON shape")
	}
	if strings.Contains(course, "web search") {
		t.Error("course prompt mentions search context without one")
	}

	quiz, err := store.Quiz(prompt.QuizParams{CourseContext: "Course: Poetry", QuestionCount: 5})
	if err != nil {
		t.Fatalf("Quiz() error = %v", err)
	}
	if !strings.Contains(quiz, "5 multiple-choice questions") {
		t.Error("quiz prompt does not contain the question count")
	}
}

func TestStore_SearchContextIncluded(t *testing.T) {
	store, err := prompt.NewStore("")
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	course, err := store.Course(prompt.CourseParams{Topic: "Algebra", SearchContext: "Result 1: ..."})
	if err != nil {
		t.Fatalf("Course() error = %v", err)
	}
	if !strings.Contains(course, "Result 1: ...") {
		t.Error("course prompt does not contain the search context")
	}
}

func TestStore_Overrides(t *testing.T) {
	dir := t.TempDir()
	override := "id: course\ntemplate: |\n  Custom prompt about {{.Topic}}.\n"
	if err := os.WriteFile(filepath.Join(dir, "course.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}
	// Invalid YAML is skipped, not fatal.
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(":\t::"), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := prompt.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	course, err := store.Course(prompt.CourseParams{Topic: "Algebra"})
	if err != nil {
		t.Fatalf("Course() error = %v", err)
	}
	if !strings.Contains(course, "Custom prompt about Algebra.") {
		t.Errorf("override not applied, got: %q", course)
	}

	// Quiz keeps its default.
	quiz, err := store.Quiz(prompt.QuizParams{CourseContext: "c", QuestionCount: 3})
	if err != nil {
		t.Fatalf("Quiz() error = %v", err)
	}
	if !strings.Contains(quiz, "multiple-choice") {
		t.Error("quiz default template lost")
	}
}
