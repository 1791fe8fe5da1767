// Package document projects validated course and quiz models into a
// block-structured, paginated document suitable for export.
package document

import (
	"fmt"

	"github.com/opencourse/coursegen/internal/content"
)

// BlockKind discriminates document blocks.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockList
	BlockPageBreak
)

// ChoiceMark annotates quiz list items when graded answers are rendered.
type ChoiceMark int

const (
	MarkNone ChoiceMark = iota
	MarkCorrect
	MarkIncorrect
)

// ListItem is a single bulleted entry, optionally marked for quiz grading.
type ListItem struct {
	Text string
	Mark ChoiceMark
}

// Block is one styled unit of a document.
type Block struct {
	Kind  BlockKind
	Level int // heading level 1-3, only for BlockHeading
	Text  string
	Items []ListItem // only for BlockList
}

// Document is the ordered block sequence for an export artifact.
type Document []Block

func heading(level int, text string) Block {
	return Block{Kind: BlockHeading, Level: level, Text: text}
}

func paragraph(text string) Block {
	return Block{Kind: BlockParagraph, Text: text}
}

func pageBreak() Block {
	return Block{Kind: BlockPageBreak}
}

func bulletList(items []string) Block {
	b := Block{Kind: BlockList, Items: make([]ListItem, len(items))}
	for i, s := range items {
		b.Items[i] = ListItem{Text: s}
	}
	return b
}

// RenderCourse projects a validated course into a document. Heading levels
// follow the topic hierarchy: course title at 1, topics at 2, subtopics at 3.
// A page break precedes every topic except the first so printed topics tend
// not to split across a boundary; block heights are not measured, so this is
// an approximation. Input is assumed validated and rendering cannot fail.
func RenderCourse(c *content.Course) Document {
	doc := Document{heading(1, c.Title)}

	if c.Description != "" {
		doc = append(doc, paragraph(c.Description))
	}
	if len(c.LearningObjectives) > 0 {
		doc = append(doc, heading(2, "Learning Objectives"), bulletList(c.LearningObjectives))
	}
	if c.Introduction != "" {
		doc = append(doc, heading(2, "Introduction"), paragraph(c.Introduction))
	}

	for i, t := range c.Topics {
		if i > 0 {
			doc = append(doc, pageBreak())
		}
		doc = append(doc, heading(2, fmt.Sprintf("%d. %s", i+1, t.Name)))
		if t.Content != "" {
			doc = append(doc, paragraph(t.Content))
		}
		doc = appendSectionExtras(doc, t.Examples, t.SearchResults, t.Videos)

		for j, st := range t.Subtopics {
			doc = append(doc, heading(3, fmt.Sprintf("%d.%d %s", i+1, j+1, st.Name)))
			if st.Content != "" {
				doc = append(doc, paragraph(st.Content))
			}
			doc = appendSectionExtras(doc, st.Examples, st.SearchResults, st.Videos)
		}
	}

	if c.Summary != "" {
		doc = append(doc, heading(2, "Summary"), paragraph(c.Summary))
	}
	if len(c.KeyTakeaways) > 0 {
		doc = append(doc, heading(2, "Key Takeaways"), bulletList(c.KeyTakeaways))
	}
	return doc
}

func appendSectionExtras(doc Document, examples []string, results []content.SearchResult, videos []content.VideoRef) Document {
	if len(examples) > 0 {
		doc = append(doc, heading(3, "Examples"), bulletList(examples))
	}
	if len(results) > 0 {
		items := make([]string, len(results))
		for i, r := range results {
			items[i] = fmt.Sprintf("%s — %s (%s)", r.Title, r.Snippet, r.URL)
		}
		doc = append(doc, heading(3, "Further Reading"), bulletList(items))
	}
	if len(videos) > 0 {
		items := make([]string, len(videos))
		for i, v := range videos {
			items[i] = fmt.Sprintf("%s: https://www.youtube.com/watch?v=%s", v.Title, v.VideoID)
		}
		doc = append(doc, heading(3, "Related Videos"), bulletList(items))
	}
	return doc
}

// RenderQuiz projects a quiz into a document. Questions are numbered from 1
// and choices lettered A-D. When answers are supplied, each choice carries
// one of three states (unmarked, correct, selected-incorrect) and a trailing
// block reports the score. Answers beyond the question count are never
// indexed; callers reject over-long answer sets via Quiz.Score first.
func RenderQuiz(q *content.Quiz, answers []int) Document {
	doc := Document{heading(1, "Quiz")}

	for i, question := range q.Questions {
		doc = append(doc,
			heading(2, fmt.Sprintf("Question %d", i+1)),
			paragraph(question.Text),
		)

		items := make([]ListItem, len(question.Choices))
		for j, choice := range question.Choices {
			item := ListItem{Text: fmt.Sprintf("%c. %s", 'A'+j, choice)}
			if answers != nil && i < len(answers) {
				switch {
				case j == question.CorrectIndex:
					item.Mark = MarkCorrect
				case j == answers[i]:
					item.Mark = MarkIncorrect
				}
			}
			items[j] = item
		}
		doc = append(doc, Block{Kind: BlockList, Items: items})

		if question.Explanation != "" {
			doc = append(doc, paragraph("Explanation: "+question.Explanation))
		}
	}

	if answers != nil {
		if score, err := q.Score(answers); err == nil {
			doc = append(doc, heading(2, "Result"),
				paragraph(fmt.Sprintf("Score: %d / %d", score.Correct, score.Total)))
		}
	}
	return doc
}
