package document

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/opencourse/coursegen/internal/content"
)

const answerSheetName = "Answer Sheet"

// WriteQuizXLSX exports a quiz as a spreadsheet answer sheet: one row per
// question with its four choices and the correct letter. When answers are
// supplied each row also gets the given letter and a result, plus a final
// score row. Callers reject over-long answer sets via Quiz.Score first.
func WriteQuizXLSX(q *content.Quiz, answers []int, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", answerSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"#", "Question", "A", "B", "C", "D", "Correct", "Answer", "Result"}
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	for i, question := range q.Questions {
		row := []any{
			i + 1,
			question.Text,
			question.Choices[0],
			question.Choices[1],
			question.Choices[2],
			question.Choices[3],
			choiceLetter(question.CorrectIndex),
		}
		if answers != nil && i < len(answers) {
			row = append(row, choiceLetter(answers[i]))
			if answers[i] == question.CorrectIndex {
				row = append(row, "correct")
			} else {
				row = append(row, "incorrect")
			}
		} else {
			row = append(row, "", "")
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	if answers != nil {
		if score, err := q.Score(answers); err == nil {
			row := len(q.Questions) + 3
			if err := setRow(f, row, []any{"", "Score", fmt.Sprintf("%d / %d", score.Correct, score.Total)}); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(answerSheetName, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

func choiceLetter(i int) string {
	if i < 0 || i > 3 {
		return "?"
	}
	return string(rune('A' + i))
}
