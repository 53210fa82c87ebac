package dataprocessing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	apperrors "boxscorecli/internal/errors"
	"boxscorecli/pkg/contracts/domain"
)

// Document labels used in loader errors
const (
	SourceHalf         = "half"
	SourceThirdQuarter = "third_quarter"
)

// ParseDocument decodes a stats document. Numbers are kept as json.Number so
// integer identifiers survive without float rounding.
func ParseDocument(r io.Reader) (*domain.Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc domain.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, apperrors.NewMalformedInputError(StageLoad, "document is not valid JSON").
			WithContext("cause", err.Error())
	}
	return &doc, nil
}

// ParseWorkbook reads the first sheet of an XLSX workbook into a document.
// The first row holds the headers.
func ParseWorkbook(r io.Reader) (*domain.Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewMalformedInputError(StageLoad, "workbook cannot be opened").
			WithContext("cause", err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, malformed(StageLoad, "workbook has no sheets")
	}

	// raw values keep full precision; formatted text is rounded to the cell format
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewMalformedInputError(StageLoad, "sheet cannot be read").
			WithContext("cause", err.Error())
	}
	if len(rows) == 0 {
		return nil, malformed(StageLoad, "sheet %q has no header row", sheets[0])
	}

	headers := rows[0]
	set := domain.ResultSet{Name: sheets[0], Headers: headers, RowSet: make([][]interface{}, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		// GetRows trims trailing empty cells
		cells := make([]interface{}, len(headers))
		for j := range cells {
			if j < len(row) {
				cells[j] = workbookCell(row[j])
			}
		}
		if len(row) > len(headers) {
			cells = append(cells, make([]interface{}, len(row)-len(headers))...)
		}
		set.RowSet = append(set.RowSet, cells)
	}

	return &domain.Document{ResultSets: []domain.ResultSet{set}}, nil
}

// workbookCell converts spreadsheet text to a number where it is one.
// Zero-padded identifiers such as 0022300001 stay text.
func workbookCell(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if len(s) > 1 && s[0] == '0' && s[1] != '.' {
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// LoadTables converts the two period documents into tables. Both documents
// must carry the same headers.
func LoadTables(half, q3 *domain.Document) (*Table, *Table, error) {
	halfSet, err := resultSet(SourceHalf, half)
	if err != nil {
		return nil, nil, err
	}
	q3Set, err := resultSet(SourceThirdQuarter, q3)
	if err != nil {
		return nil, nil, err
	}

	if err := sameHeaders(halfSet.Headers, q3Set.Headers); err != nil {
		return nil, nil, err
	}

	halfTable, err := tableFromResultSet(SourceHalf, halfSet)
	if err != nil {
		return nil, nil, err
	}
	q3Table, err := tableFromResultSet(SourceThirdQuarter, q3Set)
	if err != nil {
		return nil, nil, err
	}
	return halfTable, q3Table, nil
}

func resultSet(source string, doc *domain.Document) (*domain.ResultSet, error) {
	if doc == nil {
		return nil, malformed(StageLoad, "%s document is missing", source).
			WithContext(apperrors.ContextSource, source)
	}
	if len(doc.ResultSets) == 0 {
		return nil, malformed(StageLoad, "%s document has no resultSets", source).
			WithContext(apperrors.ContextSource, source)
	}
	set := &doc.ResultSets[0]
	if set.Headers == nil {
		return nil, malformed(StageLoad, "%s resultSets[0] has no headers", source).
			WithContext(apperrors.ContextSource, source)
	}
	if set.RowSet == nil {
		return nil, malformed(StageLoad, "%s resultSets[0] has no rowSet", source).
			WithContext(apperrors.ContextSource, source)
	}
	return set, nil
}

func sameHeaders(half, q3 []string) error {
	if len(half) != len(q3) {
		return malformed(StageLoad, "header count differs: %s has %d, %s has %d",
			SourceHalf, len(half), SourceThirdQuarter, len(q3))
	}
	for i := range half {
		if half[i] != q3[i] {
			return malformed(StageLoad, "header %d differs: %s has %q, %s has %q",
				i, SourceHalf, half[i], SourceThirdQuarter, q3[i]).
				WithContext(apperrors.ContextColumn, half[i])
		}
	}
	return nil
}

func tableFromResultSet(source string, set *domain.ResultSet) (*Table, error) {
	columns := make([]string, len(set.Headers))
	copy(columns, set.Headers)

	rows := make([][]Value, len(set.RowSet))
	for i, raw := range set.RowSet {
		if len(raw) != len(columns) {
			return nil, malformed(StageLoad, "%s row %d has %d fields, want %d", source, i, len(raw), len(columns)).
				WithContext(apperrors.ContextSource, source).
				WithContext(apperrors.ContextRow, i)
		}
		row := make([]Value, len(raw))
		for j, cell := range raw {
			v, err := ValueOf(cell)
			if err != nil {
				return nil, malformed(StageLoad, "%s row %d column %s: %v", source, i, columns[j], err).
					WithContext(apperrors.ContextSource, source).
					WithContext(apperrors.ContextRow, i).
					WithContext(apperrors.ContextColumn, columns[j])
			}
			row[j] = v
		}
		rows[i] = row
	}

	t, err := NewTable(columns, rows)
	if err != nil {
		return nil, malformed(StageLoad, "%s: %v", source, err).
			WithContext(apperrors.ContextSource, source)
	}
	return t, nil
}

// ReadDocument opens a .json or .xlsx file as a document
func ReadDocument(path string) (*domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ParseWorkbook(f)
	case ".json", "":
		return ParseDocument(f)
	default:
		return nil, apperrors.NewMalformedInputError(StageLoad, fmt.Sprintf("unsupported input format %q", filepath.Ext(path))).
			WithContext(apperrors.ContextSource, path)
	}
}

// LoadFiles reads both period documents concurrently and converts them to tables
func LoadFiles(ctx context.Context, halfPath, q3Path string) (*Table, *Table, error) {
	var half, q3 *domain.Document

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		doc, err := ReadDocument(halfPath)
		if err != nil {
			return fmt.Errorf("%s: %w", SourceHalf, err)
		}
		half = doc
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		doc, err := ReadDocument(q3Path)
		if err != nil {
			return fmt.Errorf("%s: %w", SourceThirdQuarter, err)
		}
		q3 = doc
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	slog.DebugContext(ctx, "documents_loaded",
		slog.String("half_path", halfPath),
		slog.String("third_quarter_path", q3Path))

	return LoadTables(half, q3)
}
