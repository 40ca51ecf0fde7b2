package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportService renders a completed submission's roadmap as an .xlsx
// workbook for administrators.
type ExportService struct {
	roadmapSvc    *RoadmapService
	submissionSvc *SubmissionService
}

// NewExportService creates a new export service
func NewExportService(roadmapSvc *RoadmapService, submissionSvc *SubmissionService) *ExportService {
	return &ExportService{
		roadmapSvc:    roadmapSvc,
		submissionSvc: submissionSvc,
	}
}

// RoadmapWorkbook builds the workbook for one submission
func (s *ExportService) RoadmapWorkbook(ctx context.Context, submissionID string) (*excelize.File, error) {
	submission, err := s.submissionSvc.Get(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	roadmap, err := s.roadmapSvc.Get(ctx, submissionID, false)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Roadmap"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Phase", "Sub-category", "Offering", "Score", "Match %", "Expanded", "Rationale", "Deliverables"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetColWidth(sheet, "A", "B", 16)
	f.SetColWidth(sheet, "C", "C", 36)
	f.SetColWidth(sheet, "G", "H", 48)

	row := 2
	for _, phase := range roadmap.Phases {
		for _, group := range phase.Groups {
			for _, entry := range group.Offerings {
				values := []interface{}{
					string(phase.Phase),
					group.SubCategory,
					entry.Offering.Title,
					entry.Score,
					entry.Relevance,
					entry.Expanded,
					entry.Offering.Rationale,
					entry.Offering.Deliverables,
				}
				for i, v := range values {
					cell, _ := excelize.CoordinatesToCellName(i+1, row)
					f.SetCellValue(sheet, cell, v)
				}
				row++
			}
		}
	}

	infoSheet := "Submission"
	if _, err := f.NewSheet(infoSheet); err == nil {
		f.SetCellValue(infoSheet, "A1", "Submission")
		f.SetCellValue(infoSheet, "B1", submission.ID)
		f.SetCellValue(infoSheet, "A2", "Respondent")
		f.SetCellValue(infoSheet, "B2", fmt.Sprintf("%s <%s>", submission.Respondent.Name, submission.Respondent.Email))
		f.SetCellValue(infoSheet, "A3", "Company")
		f.SetCellValue(infoSheet, "B3", submission.Respondent.Company)
		f.SetCellValue(infoSheet, "A4", "Generated")
		f.SetCellValue(infoSheet, "B4", roadmap.GeneratedAt.Format("2006-01-02 15:04:05"))
		f.SetColWidth(infoSheet, "A", "A", 14)
		f.SetColWidth(infoSheet, "B", "B", 44)
	}

	if idx, err := f.GetSheetIndex(sheet); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}
