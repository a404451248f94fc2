// Package exportsvc renders event sign-up and attendance sheets as PDFs.
package exportsvc

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core/event"
)

// List kinds
const (
	KindRSVP       = "rsvp"
	KindAttendance = "attendance"
)

type pdfService struct {
	appName string
}

func NewPDFService(appName string) *pdfService {
	return &pdfService{appName: appName}
}

// Filename names the exported sheet after the list kind and the event.
func (svc pdfService) Filename(kind, eventID string) string {
	return fmt.Sprintf("%s_list_%s.pdf", kind, eventID)
}

// EventList renders the sheet for an event: one row per student with name,
// student ID, course and email, closed by a total line.
func (svc pdfService) EventList(kind string, evt event.Event, rsvps []event.RSVP) ([]byte, error) {
	title := "RSVP List"
	if kind == KindAttendance {
		title = "Attendance List"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, svc.appName)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("%s - %s", title, evt.Title))
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("%s | %s", evt.Date.Format("02 Jan 2006"), evt.Location))
	pdf.Ln(12)

	// table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(40, 145, 108)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(55, 8, "Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Student ID", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Course", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, "Email", "1", 0, "L", true, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, r := range rsvps {
		pdf.CellFormat(55, 7, r.StudentName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, r.StudentID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, r.Course, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, r.StudentEmail, "1", 0, "L", false, 0, "")
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total: %d student(s)", len(rsvps)))

	var buff bytes.Buffer
	if err := pdf.Output(&buff); err != nil {
		return nil, errors.Wrap(err, "rendering pdf")
	}
	return buff.Bytes(), nil
}
