package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"boxscorecli/internal/dataprocessing"
)

// utf8BOM lets Excel recognize UTF-8 CSV files
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures export behavior
type WriteOptions struct {
	BOMPrefix bool   // Add UTF-8 BOM for Excel compatibility
	Sheet     string // Worksheet name for XLSX output
}

// WriteTable writes the table to a CSV file, creating parent directories
func (w *CSVWriter) WriteTable(path string, table *dataprocessing.Table, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", path),
		slog.Int("record_count", table.Len()),
		slog.Int("column_count", table.Width()))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := w.Write(file, table, options); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Write writes the header row and every record of the table to out
func (w *CSVWriter) Write(out io.Writer, table *dataprocessing.Table, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(table.Columns()); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i := 0; i < table.Len(); i++ {
		if err := writer.Write(formatRow(table.Row(i))); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
