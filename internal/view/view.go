// Package view projects validated course models into UI-facing structures
// with stable per-section identifiers for expand/collapse tracking.
package view

import (
	"fmt"

	"github.com/opencourse/coursegen/internal/content"
)

// Section is one expandable unit of a course view. Subsections is empty for
// subtopic sections.
type Section struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Content       string                 `json:"content"`
	Examples      []string               `json:"examples"`
	SearchResults []content.SearchResult `json:"search_results"`
	Videos        []content.VideoRef     `json:"videos"`
	Subsections   []Section              `json:"subsections"`
}

// CourseView is the navigable projection of a Course.
type CourseView struct {
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	LearningObjectives []string  `json:"learning_objectives"`
	Introduction       string    `json:"introduction"`
	Sections           []Section `json:"sections"`
	Summary            string    `json:"summary"`
	KeyTakeaways       []string  `json:"key_takeaways"`
	TopicCount         int       `json:"topic_count"`
	ReadMinutes        int       `json:"read_minutes"`
}

// ProjectCourse builds a CourseView. Section IDs are derived from position
// (topic[i], topic[i].subtopic[j]) so the UI layer can keep expand/collapse
// state without re-deriving identifiers. Ordering is preserved exactly.
func ProjectCourse(c *content.Course) CourseView {
	sections := make([]Section, len(c.Topics))
	for i, t := range c.Topics {
		id := fmt.Sprintf("topic[%d]", i)
		subs := make([]Section, len(t.Subtopics))
		for j, st := range t.Subtopics {
			subs[j] = Section{
				ID:            fmt.Sprintf("%s.subtopic[%d]", id, j),
				Name:          st.Name,
				Content:       st.Content,
				Examples:      st.Examples,
				SearchResults: st.SearchResults,
				Videos:        st.Videos,
				Subsections:   []Section{},
			}
		}
		sections[i] = Section{
			ID:            id,
			Name:          t.Name,
			Content:       t.Content,
			Examples:      t.Examples,
			SearchResults: t.SearchResults,
			Videos:        t.Videos,
			Subsections:   subs,
		}
	}

	return CourseView{
		Title:              c.Title,
		Description:        c.Description,
		LearningObjectives: c.LearningObjectives,
		Introduction:       c.Introduction,
		Sections:           sections,
		Summary:            c.Summary,
		KeyTakeaways:       c.KeyTakeaways,
		TopicCount:         c.TopicCount(),
		ReadMinutes:        c.EstimatedReadMinutes(),
	}
}
