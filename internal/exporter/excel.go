package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"boxscorecli/internal/dataprocessing"
)

// DefaultSheet is the worksheet name used when none is given
const DefaultSheet = "Features"

// ExcelWriter exports feature tables as XLSX workbooks
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates a new XLSX writer instance
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// WriteTable writes the table to a single-sheet workbook at path
func (w *ExcelWriter) WriteTable(path string, table *dataprocessing.Table, sheet string) error {
	w.logger.Info("Writing XLSX file",
		slog.String("file_path", path),
		slog.String("sheet", sheetName(sheet)),
		slog.Int("record_count", table.Len()))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := w.workbook(table, sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Write streams the workbook to out
func (w *ExcelWriter) Write(out io.Writer, table *dataprocessing.Table, sheet string) error {
	f, err := w.workbook(table, sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// workbook builds the in-memory workbook: a header row followed by one row per
// record. Numbers are stored as numeric cells, missing values as empty cells.
func (w *ExcelWriter) workbook(table *dataprocessing.Table, sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	name := sheetName(sheet)
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, table.Width())
	for i, c := range table.Columns() {
		header[i] = c
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}

	for i := 0; i < table.Len(); i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := excelRow(table.Row(i))
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return f, nil
}

func excelRow(row []dataprocessing.Value) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v.Interface()
	}
	return out
}

func sheetName(sheet string) string {
	if sheet == "" {
		return DefaultSheet
	}
	return sheet
}
