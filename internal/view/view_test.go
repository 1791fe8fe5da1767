package view_test

import (
	"testing"

	"github.com/opencourse/coursegen/internal/content"
	"github.com/opencourse/coursegen/internal/view"
)

func sampleCourse() *content.Course {
	return &content.Course{
		Title: "Algebra",
		Topics: []content.Topic{
			{
				Name: "Variables",
				Subtopics: []content.Subtopic{
					{Name: "Naming"},
					{Name: "Substitution"},
				},
			},
			{Name: "Equations"},
		},
	}
}

func TestProjectCourse_PreservesOrderAndCount(t *testing.T) {
	course := sampleCourse()
	v := view.ProjectCourse(course)

	if len(v.Sections) != len(course.Topics) {
		t.Fatalf("Sections count = %d, want %d", len(v.Sections), len(course.Topics))
	}
	for i, s := range v.Sections {
		if s.Name != course.Topics[i].Name {
			t.Errorf("section %d name = %q, want %q", i, s.Name, course.Topics[i].Name)
		}
		if len(s.Subsections) != len(course.Topics[i].Subtopics) {
			t.Errorf("section %d subsections = %d, want %d", i, len(s.Subsections), len(course.Topics[i].Subtopics))
		}
	}
}

func TestProjectCourse_StableIDs(t *testing.T) {
	v := view.ProjectCourse(sampleCourse())

	if v.Sections[0].ID != "topic[0]" {
		t.Errorf("ID = %q, want topic[0]", v.Sections[0].ID)
	}
	if v.Sections[1].ID != "topic[1]" {
		t.Errorf("ID = %q, want topic[1]", v.Sections[1].ID)
	}
	if got := v.Sections[0].Subsections[1].ID; got != "topic[0].subtopic[1]" {
		t.Errorf("ID = %q, want topic[0].subtopic[1]", got)
	}
}

func TestProjectCourse_DerivedFields(t *testing.T) {
	v := view.ProjectCourse(sampleCourse())
	if v.TopicCount != 2 {
		t.Errorf("TopicCount = %d, want 2", v.TopicCount)
	}
	if v.ReadMinutes < 1 {
		t.Errorf("ReadMinutes = %d, want >= 1", v.ReadMinutes)
	}
}
