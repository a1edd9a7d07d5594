package exporter

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"route-postman/internal/config"
	"route-postman/internal/exporter/common"
	"route-postman/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	overviewSheet = "Overview"
	requestsSheet = "Requests"
)

// ExcelExporter writes a request index workbook
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Name returns the format name
func (e *ExcelExporter) Name() string {
	return "excel"
}

// Export generates the Excel report
func (e *ExcelExporter) Export(doc *model.Collection, cfg *config.Config) (string, error) {
	outputFile := cfg.GetOutputPath("xlsx")
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return "", err
	}

	rows := common.FlattenCollection(doc)

	// 1. Overview Sheet
	if err := e.writeOverview(f, styler, doc, rows); err != nil {
		return "", err
	}

	// 2. Request Index Sheet
	if err := e.writeRequests(f, styler, rows); err != nil {
		return "", err
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", fmt.Errorf("failed to render workbook: %w", err)
	}
	if err := common.WriteFileAtomic(outputFile, buf.Bytes()); err != nil {
		return "", err
	}
	return outputFile, nil
}

// --- Overview Sheet Logic ---

func (e *ExcelExporter) writeOverview(f *excelize.File, s *Styler, doc *model.Collection, rows []*common.FlattenedRequest) error {
	sheet := overviewSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	// Section A: Collection Summary
	row := 1
	e.writeRow(f, sheet, row, []string{"Metric", "Value"}, s.HeaderStyle)
	row++

	authType := model.AuthTypeNone
	if doc.Auth != nil {
		authType = doc.Auth.Type
	}

	protected := 0
	methods := make(map[string]int)
	for _, r := range rows {
		methods[r.Item.Request.Method]++
		if auth := r.Item.Request.Auth; auth != nil && auth.Type != model.AuthTypeNone {
			protected++
		}
	}

	metrics := []struct {
		Key string
		Val interface{}
	}{
		{"Collection", doc.Info.Name},
		{"Total Requests", len(rows)},
		{"Total Folders", common.CountFolders(doc.Item)},
		{"Authenticated Requests", protected},
		{"Collection Auth", authType},
	}

	for _, m := range metrics {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Val)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), s.DefaultStyle)
		row++
	}

	row += 2 // Spacer

	// Section B: Requests per method
	e.writeRow(f, sheet, row, []string{"Method", "Requests"}, s.HeaderStyle)
	row++

	names := make([]string, 0, len(methods))
	for m := range methods {
		names = append(names, m)
	}
	sort.Slice(names, func(i, j int) bool {
		if methods[names[i]] != methods[names[j]] {
			return methods[names[i]] > methods[names[j]]
		}
		return names[i] < names[j]
	})

	for _, m := range names {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), methods[m])
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), s.MethodStyle(m))
		row++
	}

	f.SetColWidth(sheet, "A", "B", 30)

	return nil
}

// --- Request Index Sheet Logic ---

func (e *ExcelExporter) writeRequests(f *excelize.File, s *Styler, rows []*common.FlattenedRequest) error {
	sheet := requestsSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"No", "Folder", "Name", "Method", "URL", "Auth", "Body"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	row := 2
	lastFolder := ""
	for i, r := range common.SortByPath(rows) {
		// Folder header row whenever the path changes
		if folder := r.Folder(); folder != lastFolder {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), folder)
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), s.FolderStyle)
			lastFolder = folder
			row++
		}
		e.writeRequestRow(f, sheet, row, i+1, r, s)
		row++
	}

	f.SetColWidth(sheet, "A", "A", 6)  // No
	f.SetColWidth(sheet, "B", "B", 30) // Folder
	f.SetColWidth(sheet, "C", "C", 30) // Name
	f.SetColWidth(sheet, "D", "D", 10) // Method
	f.SetColWidth(sheet, "E", "E", 50) // URL
	f.SetColWidth(sheet, "F", "F", 12) // Auth
	f.SetColWidth(sheet, "G", "G", 60) // Body

	return nil
}

func (e *ExcelExporter) writeRequestRow(f *excelize.File, sheet string, row, no int, r *common.FlattenedRequest, s *Styler) {
	req := r.Item.Request

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), no)
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Folder())
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Item.Name)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), req.Method)
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), req.URL.Raw)
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), authLabel(req.Auth))
	f.SetCellValue(sheet, fmt.Sprintf("G%d", row), bodySummary(req.Body))

	style := s.DefaultStyle
	if req.Auth == nil || req.Auth.Type == model.AuthTypeNone {
		style = s.PublicStyle
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), style)
	f.SetCellStyle(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), s.MethodStyle(req.Method))
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

func authLabel(auth *model.Auth) string {
	if auth == nil {
		return "inherit"
	}
	return auth.Type
}

// bodySummary lists the top-level body fields in a single cell
func bodySummary(body *model.Body) string {
	if body == nil {
		return ""
	}

	if body.Mode == model.BodyModeFormData {
		keys := make([]string, 0, len(body.FormData))
		for _, p := range body.FormData {
			keys = append(keys, p.Key)
		}
		return "formdata: " + strings.Join(keys, ", ")
	}

	raw := strings.Join(strings.Fields(body.Raw), " ")
	if len(raw) > 500 {
		raw = raw[:500] + "..."
	}
	return raw
}
