package document_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opencourse/coursegen/internal/content"
	"github.com/opencourse/coursegen/internal/document"
)

func sampleCourse() *content.Course {
	return &content.Course{
		Title:              "Algebra",
		Description:        "Intro.",
		LearningObjectives: []string{"Solve equations"},
		Introduction:       "Welcome.",
		Topics: []content.Topic{
			{
				Name:    "Variables",
				Content: "A variable stands for a number.",
				Subtopics: []content.Subtopic{
					{Name: "Naming", Content: "Use letters.", Examples: []string{"x"}},
				},
				Examples: []string{"x + 1 = 2"},
			},
			{Name: "Equations", Content: "Balance both sides."},
			{Name: "Graphs", Content: "Plot relations."},
		},
		Summary:      "Done.",
		KeyTakeaways: []string{"Practice"},
	}
}

func sampleQuiz() *content.Quiz {
	return &content.Quiz{
		Questions: []content.Question{
			{Text: "2+2?", Choices: []string{"3", "4", "5", "6"}, CorrectIndex: 1, Explanation: "Basic addition."},
			{Text: "x in x+1=2?", Choices: []string{"0", "1", "2", "3"}, CorrectIndex: 1},
		},
	}
}

func TestRenderCourse_HeadingHierarchy(t *testing.T) {
	doc := document.RenderCourse(sampleCourse())

	if doc[0].Kind != document.BlockHeading || doc[0].Level != 1 || doc[0].Text != "Algebra" {
		t.Fatalf("first block = %+v, want level-1 title heading", doc[0])
	}

	var topicLevels, subtopicLevels int
	for _, b := range doc {
		if b.Kind != document.BlockHeading {
			continue
		}
		if b.Level == 2 && strings.Contains(b.Text, "Variables") {
			topicLevels++
		}
		if b.Level == 3 && strings.Contains(b.Text, "Naming") {
			subtopicLevels++
		}
	}
	if topicLevels != 1 {
		t.Errorf("topic headings at level 2 = %d, want 1", topicLevels)
	}
	if subtopicLevels != 1 {
		t.Errorf("subtopic headings at level 3 = %d, want 1", subtopicLevels)
	}
}

func TestRenderCourse_PageBreaksBetweenTopics(t *testing.T) {
	doc := document.RenderCourse(sampleCourse())

	breaks := 0
	for i, b := range doc {
		if b.Kind == document.BlockPageBreak {
			breaks++
			if i+1 >= len(doc) || doc[i+1].Kind != document.BlockHeading || doc[i+1].Level != 2 {
				t.Errorf("page break at %d not followed by a topic heading", i)
			}
		}
	}
	// Three topics, breaks before all but the first.
	if breaks != 2 {
		t.Errorf("page breaks = %d, want 2", breaks)
	}
}

func TestRenderQuiz_NumbersAndLetters(t *testing.T) {
	doc := document.RenderQuiz(sampleQuiz(), nil)

	var sawQ1, sawQ2 bool
	for _, b := range doc {
		if b.Kind == document.BlockHeading && b.Text == "Question 1" {
			sawQ1 = true
		}
		if b.Kind == document.BlockHeading && b.Text == "Question 2" {
			sawQ2 = true
		}
		if b.Kind == document.BlockList {
			if len(b.Items) != 4 {
				t.Fatalf("choice list has %d items, want 4", len(b.Items))
			}
			if !strings.HasPrefix(b.Items[0].Text, "A. ") || !strings.HasPrefix(b.Items[3].Text, "D. ") {
				t.Errorf("choices not lettered A-D: %q ... %q", b.Items[0].Text, b.Items[3].Text)
			}
		}
	}
	if !sawQ1 || !sawQ2 {
		t.Error("questions not numbered sequentially from 1")
	}
}

func TestRenderQuiz_UnansweredHasNoMarks(t *testing.T) {
	doc := document.RenderQuiz(sampleQuiz(), nil)
	for _, b := range doc {
		if b.Kind != document.BlockList {
			continue
		}
		for _, item := range b.Items {
			if item.Mark != document.MarkNone {
				t.Errorf("item %q marked without answers", item.Text)
			}
		}
	}
}

func TestRenderQuiz_GradedMarksAndScore(t *testing.T) {
	// First answer correct, second wrong.
	doc := document.RenderQuiz(sampleQuiz(), []int{1, 3})

	var lists [][]document.ListItem
	var scoreText string
	for _, b := range doc {
		if b.Kind == document.BlockList {
			lists = append(lists, b.Items)
		}
		if b.Kind == document.BlockParagraph && strings.HasPrefix(b.Text, "Score:") {
			scoreText = b.Text
		}
	}
	if len(lists) != 2 {
		t.Fatalf("choice lists = %d, want 2", len(lists))
	}

	if lists[0][1].Mark != document.MarkCorrect {
		t.Errorf("Q1 selected-correct choice mark = %v, want MarkCorrect", lists[0][1].Mark)
	}
	if lists[1][3].Mark != document.MarkIncorrect {
		t.Errorf("Q2 selected-incorrect choice mark = %v, want MarkIncorrect", lists[1][3].Mark)
	}
	if lists[1][1].Mark != document.MarkCorrect {
		t.Errorf("Q2 correct choice mark = %v, want MarkCorrect", lists[1][1].Mark)
	}

	if scoreText != "Score: 1 / 2" {
		t.Errorf("score paragraph = %q, want %q", scoreText, "Score: 1 / 2")
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := document.WritePDF(document.RenderCourse(sampleCourse()), &buf); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestWriteQuizXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := document.WriteQuizXLSX(sampleQuiz(), []int{1, 0}, &buf); err != nil {
		t.Fatalf("WriteQuizXLSX() error = %v", err)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("output is not an XLSX archive")
	}
}
