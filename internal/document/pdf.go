package document

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin    = 20.0 // mm
	bodyLineHt    = 5.5
	headingGap    = 3.0
	paragraphGap  = 2.5
	listIndent    = 5.0
	bodyFontSize  = 11.0
	bodyFontStyle = ""
)

var headingSizes = map[int]float64{1: 20, 2: 15, 3: 12.5}

// WritePDF renders a document to PDF on an A4 page. The document is written
// fully into the fpdf buffer before any bytes reach w, so a mid-render
// failure never leaves a truncated artifact behind the writer.
func WritePDF(doc Document, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, b := range doc {
		switch b.Kind {
		case BlockPageBreak:
			pdf.AddPage()

		case BlockHeading:
			size, ok := headingSizes[b.Level]
			if !ok {
				size = headingSizes[3]
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.MultiCell(0, size*0.5, tr(b.Text), "", "L", false)
			pdf.Ln(headingGap)

		case BlockParagraph:
			pdf.SetFont("Helvetica", bodyFontStyle, bodyFontSize)
			pdf.MultiCell(0, bodyLineHt, tr(b.Text), "", "L", false)
			pdf.Ln(paragraphGap)

		case BlockList:
			pdf.SetFont("Helvetica", bodyFontStyle, bodyFontSize)
			left, _, _, _ := pdf.GetMargins()
			pdf.SetLeftMargin(left + listIndent)
			for _, item := range b.Items {
				pdf.MultiCell(0, bodyLineHt, tr("- "+item.Text+markSuffix(item.Mark)), "", "L", false)
			}
			pdf.SetLeftMargin(left)
			pdf.Ln(paragraphGap)
		}
	}

	if pdf.Err() {
		return fmt.Errorf("render pdf: %w", pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func markSuffix(m ChoiceMark) string {
	switch m {
	case MarkCorrect:
		return " (correct)"
	case MarkIncorrect:
		return " (your answer - incorrect)"
	default:
		return ""
	}
}
