package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"boxscorecli/internal/config"
	apperrors "boxscorecli/internal/errors"
	"boxscorecli/internal/dataprocessing"
)

// Exporter writes a feature table in one of the supported output formats
type Exporter struct {
	csv    *CSVWriter
	excel  *ExcelWriter
	logger *slog.Logger
}

// New creates an exporter for every output format
func New(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		csv:    NewCSVWriter(logger),
		excel:  NewExcelWriter(logger),
		logger: logger,
	}
}

// WriteFile writes the table to path in the given format. Write failures are
// storage errors; an unknown format is a validation error.
func (e *Exporter) WriteFile(path, format string, table *dataprocessing.Table, options WriteOptions) error {
	if !config.IsOutputFormat(format) {
		return unsupportedFormat(format)
	}
	if err := e.writeFile(path, format, table, options); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write %s", path), err).
			WithContext("format", format)
	}
	return nil
}

func (e *Exporter) writeFile(path, format string, table *dataprocessing.Table, options WriteOptions) error {
	switch format {
	case config.FormatCSV:
		return e.csv.WriteTable(path, table, options)
	case config.FormatXLSX:
		return e.excel.WriteTable(path, table, options.Sheet)
	default:
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		e.logger.Info("Writing JSON file",
			slog.String("file_path", path),
			slog.Int("record_count", table.Len()))
		if err := WriteJSON(file, table); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	}
}

// Write writes the table to w in the given format
func (e *Exporter) Write(w io.Writer, format string, table *dataprocessing.Table, options WriteOptions) error {
	switch format {
	case config.FormatCSV:
		return e.csv.Write(w, table, options)
	case config.FormatXLSX:
		return e.excel.Write(w, table, options.Sheet)
	case config.FormatJSON:
		return WriteJSON(w, table)
	default:
		return unsupportedFormat(format)
	}
}

func unsupportedFormat(format string) error {
	return apperrors.NewAppValidationError(fmt.Sprintf("unsupported output format %q", format)).
		WithContext("format", format)
}

// FileName returns the default output file name for a format
func FileName(format string) string {
	return "features." + format
}
