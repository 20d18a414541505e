package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"reportdesk/internal/domain/comments"
	"reportdesk/internal/domain/compile"
	"reportdesk/internal/domain/reports"
)

// ReportPDF renders a single report with its comment thread.
func ReportPDF(report reports.Report, thread []comments.Comment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, report.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Date: %s", report.Date.Format("January 2, 2006")))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s", report.Status))
	pdf.Ln(6)
	if report.SubmittedAt != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Submitted: %s", report.SubmittedAt.Format("January 2, 2006 15:04")))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 6, ExtractText(report.Content), "", "L", false)

	if len(thread) > 0 {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Comments")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 11)
		for _, c := range thread {
			writeComment(pdf, c, 0)
			for _, reply := range c.Replies {
				writeComment(pdf, reply, 8)
			}
		}
	}

	return flushPDF(pdf)
}

// CompiledPDF renders a roll-up with one section per included source.
func CompiledPDF(compiled compile.CompiledReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, compiled.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s",
		compiled.DateRangeStart.Format("2006-01-02"), compiled.DateRangeEnd.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Sources: %d", len(compiled.IncludedReports)))
	pdf.Ln(10)

	for _, section := range compiledSections(compiled) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, section.heading)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, section.body, "", "L", false)
		pdf.Ln(4)
	}

	return flushPDF(pdf)
}

func writeComment(pdf *gofpdf.Fpdf, c comments.Comment, indent float64) {
	if indent > 0 {
		pdf.SetX(pdf.GetX() + indent)
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 5, fmt.Sprintf("%s, %s", c.AuthorName, c.CreatedAt.Format("Jan 2 15:04")))
	pdf.Ln(5)
	if indent > 0 {
		pdf.SetX(pdf.GetX() + indent)
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, c.Content, "", "L", false)
	pdf.Ln(2)
}

func flushPDF(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
