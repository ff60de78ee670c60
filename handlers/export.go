package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"p9e.in/sitestock/models"
	"p9e.in/sitestock/pkg/apperr"
	"p9e.in/sitestock/pkg/listview"
)

// productExportHeaders is the fixed column order of the inventory export.
var productExportHeaders = []string{
	"SKU", "Name", "Category", "Unit of Measure", "Current Stock",
	"MAUC", "Min Stock", "Max Stock", "Supplier", "Location",
}

// BuildProductCSVRows renders products to export rows, header included.
// One row per product, no extra rows; the rows come out in input order so
// an export of a derived list matches the screen exactly.
func BuildProductCSVRows(products []models.Product) [][]string {
	rows := make([][]string, 0, len(products)+1)
	rows = append(rows, productExportHeaders)
	for _, p := range products {
		rows = append(rows, []string{
			p.SKU,
			p.Name,
			p.CategoryName(),
			p.UnitOfMeasure,
			formatNumber(p.CurrentStock),
			formatMoney(p.MAUC),
			formatNumber(p.MinStockLevel),
			formatNumber(p.MaxStockLevel),
			p.Supplier,
			p.Location,
		})
	}
	return rows
}

var projectExportHeaders = []string{
	"Job Number", "Name", "Customer", "Status", "Priority",
	"Budget", "Spent", "Start Date", "End Date", "Location",
}

// BuildProjectCSVRows renders projects to export rows, header included.
func BuildProjectCSVRows(projects []models.Project) [][]string {
	rows := make([][]string, 0, len(projects)+1)
	rows = append(rows, projectExportHeaders)
	for _, p := range projects {
		endDate := ""
		if p.EndDate != nil && !p.EndDate.IsZero() {
			endDate = p.EndDate.Time().Format("2006-01-02")
		}
		rows = append(rows, []string{
			p.JobNumber,
			p.Name,
			p.CustomerName(),
			p.Status,
			p.Priority,
			formatMoney(p.Budget),
			formatMoney(p.Spent),
			p.StartDate.Time().Format("2006-01-02"),
			endDate,
			p.Location,
		})
	}
	return rows
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ExportProductsCSV downloads the inventory as CSV. It honors the same
// query params as the product list, so the file contains exactly the rows
// the caller is looking at.
func ExportProductsCSV(w http.ResponseWriter, r *http.Request) {
	db, ok := database(w)
	if !ok {
		return
	}

	products, err := loadActiveProducts(db)
	if err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	rows := BuildProductCSVRows(listview.Derive(products, productQuery(r)))
	writeCSV(w, "inventory", rows)
}

// ExportProductsExcel downloads the inventory as an XLSX workbook with the
// same rows as the CSV export.
func ExportProductsExcel(w http.ResponseWriter, r *http.Request) {
	db, ok := database(w)
	if !ok {
		return
	}

	products, err := loadActiveProducts(db)
	if err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	rows := BuildProductCSVRows(listview.Derive(products, productQuery(r)))

	f, err := buildWorkbook("Inventory", rows)
	if err != nil {
		http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// ExportProjectsCSV downloads projects as CSV, honoring the list's query
// params.
func ExportProjectsCSV(w http.ResponseWriter, r *http.Request) {
	db, ok := database(w)
	if !ok {
		return
	}

	projects, err := loadProjects(db)
	if err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	rows := BuildProjectCSVRows(listview.Derive(projects, projectQuery(r)))
	writeCSV(w, "projects", rows)
}

func writeCSV(w http.ResponseWriter, name string, rows [][]string) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	for _, row := range rows {
		writer.Write(row)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		http.Error(w, "Failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// buildWorkbook renders rows into a single styled sheet. Row 1 is the
// title, row 2 the timestamp, row 4 the header, data from row 5.
func buildWorkbook(title string, rows [][]string) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Export"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	f.SetCellValue(sheetName, "A1", title)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	if len(rows) == 0 {
		f.DeleteSheet("Sheet1")
		return f, nil
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for colIdx, header := range rows[0] {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		f.SetColWidth(sheetName, columnIndexToLetter(colIdx+1), columnIndexToLetter(colIdx+1), 20)
	}

	dataStyle, _ := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "CCCCCC", Style: 1},
			{Type: "right", Color: "CCCCCC", Style: 1},
			{Type: "top", Color: "CCCCCC", Style: 1},
			{Type: "bottom", Color: "CCCCCC", Style: 1},
		},
	})
	for rowIdx, row := range rows[1:] {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			f.SetCellValue(sheetName, cell, value)
			f.SetCellStyle(sheetName, cell, cell, dataStyle)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func columnIndexToLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+(col%26))) + result
		col /= 26
	}
	return result
}
