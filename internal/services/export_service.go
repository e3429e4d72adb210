package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/senselive/vms-api/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportService renders visit-log reports for download.
type ExportService struct {
	visitSvc *VisitService
}

// NewExportService creates a new export service
func NewExportService(visitSvc *VisitService) *ExportService {
	return &ExportService{visitSvc: visitSvc}
}

var exportHeader = []string{
	"Visit ID", "Visitor", "Company", "Email", "Contact", "Department",
	"Host", "Visit Date", "Visit Type", "Purpose", "Status", "Visit Status",
	"Check In", "Check Out",
}

func exportRow(log models.VisitLogResponse) []string {
	formatTime := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	}
	return []string{
		log.VisitLogID,
		log.FirstName + " " + log.LastName,
		log.Company,
		log.CompanyEmail,
		log.Contact,
		log.DepartmentName,
		log.WhomToMeet,
		log.VisitDate.Format("2006-01-02"),
		log.VisitType,
		log.Purpose,
		log.Status,
		log.VisitStatus,
		formatTime(log.CheckInTime),
		formatTime(log.CheckOutTime),
	}
}

// logsInRange returns all visit logs, optionally narrowed to a visit-date
// range.
func (s *ExportService) logsInRange(ctx context.Context, start, end *time.Time) ([]models.VisitLogResponse, error) {
	logs, err := s.visitSvc.AllLogs(ctx)
	if err != nil {
		return nil, err
	}
	if start == nil && end == nil {
		return logs, nil
	}
	filtered := logs[:0]
	for _, log := range logs {
		if start != nil && log.VisitDate.Before(*start) {
			continue
		}
		if end != nil && log.VisitDate.After(end.Add(24*time.Hour-time.Nanosecond)) {
			continue
		}
		filtered = append(filtered, log)
	}
	return filtered, nil
}

// ExportCSV renders visit logs as a CSV report.
func (s *ExportService) ExportCSV(ctx context.Context, start, end *time.Time) ([]byte, string, error) {
	logs, err := s.logsInRange(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Visit Log Report", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})
	_ = writer.Write(exportHeader)
	for _, log := range logs {
		_ = writer.Write(exportRow(log))
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("visit_logs_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportXLSX renders visit logs as an Excel report.
func (s *ExportService) ExportXLSX(ctx context.Context, start, end *time.Time) ([]byte, string, error) {
	logs, err := s.logsInRange(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Visit Logs"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, log := range logs {
		for colIdx, value := range exportRow(log) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("visit_logs_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
