package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PassService renders the printable gate pass handed to a checked-in
// visitor.
type PassService struct {
	visitSvc *VisitService
}

// NewPassService creates a new pass service
func NewPassService(visitSvc *VisitService) *PassService {
	return &PassService{visitSvc: visitSvc}
}

// VisitorPassPDF renders a gate pass for a visit. The visit must already be
// checked in.
func (s *PassService) VisitorPassPDF(ctx context.Context, visitID string) ([]byte, string, error) {
	log, err := s.visitSvc.FindFull(ctx, visitID)
	if err != nil {
		return nil, "", err
	}
	if log.CheckInTime == nil {
		return nil, "", NewValidationError("Visitor has not checked in yet.")
	}

	resp := log.ToResponse()

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Visitor Gate Pass")
	pdf.Ln(16)

	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(40, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	line("Visitor", resp.FirstName+" "+resp.LastName)
	line("Company", resp.Company)
	line("Contact", resp.Contact)
	line("Host", resp.WhomToMeet)
	line("Department", resp.DepartmentName)
	line("Purpose", resp.Purpose)
	line("Location", resp.Location)
	line("Checked In", log.CheckInTime.Format("2006-01-02 15:04"))

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, "This pass must be returned at the security gate on exit.")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("visitor_pass_%s_%s.pdf", visitID, time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
