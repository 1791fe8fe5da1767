package content_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/opencourse/coursegen/internal/content"
)

const minimalCourseJSON = `{
	"title": "Algebra",
	"description": "Intro to algebra.",
	"learning_objectives": ["Solve equations"],
	"introduction": "Algebra is the study of symbols.",
	"topics": [
		{
			"name": "Variables",
			"content": "A variable stands for a number.",
			"subtopics": [
				{"name": "Naming", "content": "Use letters.", "examples": ["x", "y"]}
			],
			"examples": ["x + 1 = 2"]
		}
	],
	"summary": "We covered the basics.",
	"key_takeaways": ["Variables stand in for numbers"]
}`

func TestParseCourse_PlainPayload(t *testing.T) {
	course, err := content.ParseCourse(minimalCourseJSON)
	if err != nil {
		t.Fatalf("ParseCourse() error = %v", err)
	}
	if course.Title != "Algebra" {
		t.Errorf("Title = %q, want %q", course.Title, "Algebra")
	}
	if len(course.Topics) != 1 {
		t.Fatalf("Topics count = %d, want 1", len(course.Topics))
	}
	if len(course.Topics[0].Subtopics) != 1 {
		t.Errorf("Subtopics count = %d, want 1", len(course.Topics[0].Subtopics))
	}
}

func TestParseCourse_NoiseInvariance(t *testing.T) {
	clean, err := content.ParseCourse(minimalCourseJSON)
	if err != nil {
		t.Fatalf("ParseCourse(clean) error = %v", err)
	}

	noisy := []string{
		"Here you go:\n```json\n" + minimalCourseJSON + "\n```\nHope that helps!",
		"Sure! " + minimalCourseJSON,
		minimalCourseJSON + "\n\nLet me know if you need anything else.",
		"```\n" + minimalCourseJSON + "\n```",
	}
	for i, raw := range noisy {
		got, err := content.ParseCourse(raw)
		if err != nil {
			t.Fatalf("ParseCourse(noisy %d) error = %v", i, err)
		}
		if got.Title != clean.Title || len(got.Topics) != len(clean.Topics) {
			t.Errorf("noisy %d: got %q/%d topics, want %q/%d topics",
				i, got.Title, len(got.Topics), clean.Title, len(clean.Topics))
		}
	}
}

func TestParseCourse_NoStructureFound(t *testing.T) {
	inputs := []string{
		"Sorry, I can't help with that.",
		"",
		"an opening { brace without a close",
	}
	for _, raw := range inputs {
		_, err := content.ParseCourse(raw)
		var perr *content.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("ParseCourse(%q) error = %v, want ParseError", raw, err)
		}
		if perr.Kind != content.NoStructureFound {
			t.Errorf("ParseCourse(%q) kind = %v, want NoStructureFound", raw, perr.Kind)
		}
	}
}

func TestParseCourse_BracesInsideStrings(t *testing.T) {
	raw := `prefix {"title": "Sets {and} maps", "topics": [{"name": "T", "content": "braces } inside \" strings"}]} suffix`
	course, err := content.ParseCourse(raw)
	if err != nil {
		t.Fatalf("ParseCourse() error = %v", err)
	}
	if course.Title != "Sets {and} maps" {
		t.Errorf("Title = %q", course.Title)
	}
}

func TestParseCourse_MalformedStructure(t *testing.T) {
	raw := `{"title": "Algebra", "topics": "not-a-list"}`
	_, err := content.ParseCourse(raw)
	var perr *content.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if perr.Kind != content.MalformedStructure {
		t.Errorf("kind = %v, want MalformedStructure", perr.Kind)
	}
	if perr.Unwrap() == nil {
		t.Error("MalformedStructure should carry the decode error")
	}
}

func TestParseCourse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{"empty title", `{"title": "   ", "topics": [{"name": "T", "content": "c"}]}`, "title"},
		{"missing title", `{"topics": [{"name": "T", "content": "c"}]}`, "title"},
		{"no topics", `{"title": "Algebra", "topics": []}`, "topics"},
		{"absent topics", `{"title": "Algebra"}`, "topics"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := content.ParseCourse(tt.raw)
			var perr *content.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %v, want ParseError", err)
			}
			if perr.Kind != content.SchemaViolation {
				t.Fatalf("kind = %v, want SchemaViolation", perr.Kind)
			}
			if perr.Field != tt.field {
				t.Errorf("field = %q, want %q", perr.Field, tt.field)
			}
		})
	}
}

func TestParseCourse_CoercesEnrichmentFields(t *testing.T) {
	raw := `{"title": "Algebra", "topics": [{"name": "T", "content": "c"}]}`
	course, err := content.ParseCourse(raw)
	if err != nil {
		t.Fatalf("ParseCourse() error = %v", err)
	}
	topic := course.Topics[0]
	if topic.Subtopics == nil || topic.Examples == nil || topic.SearchResults == nil || topic.Videos == nil {
		t.Error("enrichment fields should be empty slices, not nil")
	}
	if course.LearningObjectives == nil || course.KeyTakeaways == nil {
		t.Error("list fields should be empty slices, not nil")
	}
}

func TestParseCourse_DropsInvalidSearchResults(t *testing.T) {
	raw := `{"title": "Algebra", "topics": [{"name": "T", "content": "c", "search_results": [
		{"title": "ok", "snippet": "s", "url": "https://example.com/a"},
		{"title": "bad", "snippet": "s", "url": "not a url"},
		{"title": "empty", "snippet": "s", "url": ""}
	]}]}`
	course, err := content.ParseCourse(raw)
	if err != nil {
		t.Fatalf("ParseCourse() error = %v", err)
	}
	results := course.Topics[0].SearchResults
	if len(results) != 1 {
		t.Fatalf("SearchResults count = %d, want 1", len(results))
	}
	if results[0].URL != "https://example.com/a" {
		t.Errorf("URL = %q", results[0].URL)
	}
}

func TestParseCourse_DropsVideosWithoutID(t *testing.T) {
	raw := `{"title": "Algebra", "topics": [{"name": "T", "content": "c", "videos": [
		{"video_id": "abc123", "title": "ok", "thumbnail_url": "https://i.ytimg.com/t.jpg"},
		{"video_id": "", "title": "no id"}
	]}]}`
	course, err := content.ParseCourse(raw)
	if err != nil {
		t.Fatalf("ParseCourse() error = %v", err)
	}
	if len(course.Topics[0].Videos) != 1 {
		t.Errorf("Videos count = %d, want 1", len(course.Topics[0].Videos))
	}
}

func quizJSON(choiceCounts []int, correct []int) string {
	questions := ""
	for i, n := range choiceCounts {
		if i > 0 {
			questions += ","
		}
		choices := ""
		for j := 0; j < n; j++ {
			if j > 0 {
				choices += ","
			}
			choices += fmt.Sprintf("%q", string(rune('A'+j)))
		}
		questions += fmt.Sprintf(`{"text": "Q%d", "choices": [%s], "correct_index": %d, "explanation": "e"}`, i+1, choices, correct[i])
	}
	return `{"questions": [` + questions + `]}`
}

func TestParseQuiz_Valid(t *testing.T) {
	quiz, err := content.ParseQuiz("```json\n" + quizJSON([]int{4, 4}, []int{0, 3}) + "\n```")
	if err != nil {
		t.Fatalf("ParseQuiz() error = %v", err)
	}
	if len(quiz.Questions) != 2 {
		t.Errorf("Questions count = %d, want 2", len(quiz.Questions))
	}
}

func TestParseQuiz_ThreeChoices(t *testing.T) {
	_, err := content.ParseQuiz(quizJSON([]int{3}, []int{0}))
	var perr *content.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if perr.Kind != content.SchemaViolation || perr.Field != "choices" {
		t.Fatalf("got kind=%v field=%q", perr.Kind, perr.Field)
	}
	if perr.Reason != "expected 4 entries, got 3" {
		t.Errorf("reason = %q, want %q", perr.Reason, "expected 4 entries, got 3")
	}
}

func TestParseQuiz_CorrectIndexOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 4} {
		_, err := content.ParseQuiz(quizJSON([]int{4}, []int{idx}))
		var perr *content.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("error = %v, want ParseError", err)
		}
		if perr.Field != "correct_index" {
			t.Errorf("field = %q, want correct_index", perr.Field)
		}
	}
}

func TestParseQuiz_NoQuestions(t *testing.T) {
	_, err := content.ParseQuiz(`{"questions": []}`)
	var perr *content.ParseError
	if !errors.As(err, &perr) || perr.Field != "questions" {
		t.Fatalf("error = %v, want SchemaViolation on questions", err)
	}
}
