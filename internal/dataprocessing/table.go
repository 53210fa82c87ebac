package dataprocessing

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Kind is the type of a cell
type Kind uint8

const (
	KindMissing Kind = iota
	KindNumber
	KindString
)

// Value is a single table cell. The zero Value is missing.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Number returns a numeric cell. NaN is kept as a number but counts as missing.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// String returns a text cell
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Missing returns an empty cell
func Missing() Value {
	return Value{}
}

// ValueOf converts a decoded JSON or spreadsheet cell into a Value
func ValueOf(x interface{}) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Missing(), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", v.String(), err)
		}
		return Number(f), nil
	case float64:
		return Number(v), nil
	case float32:
		return Number(float64(v)), nil
	case int:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case bool:
		if v {
			return Number(1), nil
		}
		return Number(0), nil
	case string:
		return String(v), nil
	default:
		return Value{}, fmt.Errorf("unsupported cell type %T", x)
	}
}

// Kind returns the cell type
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the cell is empty or an undefined number
func (v Value) IsMissing() bool {
	switch v.kind {
	case KindMissing:
		return true
	case KindNumber:
		return math.IsNaN(v.num)
	default:
		return false
	}
}

// Float returns the numeric value of the cell. Text cells holding a number are
// converted; anything else reports false.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Text returns the canonical text form used for keys and exports
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) {
			return ""
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString:
		return v.str
	default:
		return ""
	}
}

// Interface returns the cell as a JSON-friendly value (nil, float64 or string)
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return nil
		}
		return v.num
	case KindString:
		return v.str
	default:
		return nil
	}
}

// Table is an immutable column-named table backed by a gota DataFrame. Every
// column is typed: a column holding any text cell is a text column and keeps
// its numbers in canonical text form, any other column is numeric. Missing and
// undefined numbers are stored as NA. Stages never modify a table they
// receive; they build a new one.
type Table struct {
	df      dataframe.DataFrame
	columns []string
	index   map[string]int
	nrows   int
}

// NewTable builds a table, rejecting duplicate column names and ragged rows
func NewTable(columns []string, rows [][]Value) (*Table, error) {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = true
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(r), len(columns))
		}
	}

	cols := make([]series.Series, len(columns))
	for j, c := range columns {
		vals := make([]Value, len(rows))
		for i, r := range rows {
			vals[i] = r[j]
		}
		cols[j] = toSeries(c, vals)
	}
	return fromSeries(len(rows), cols...)
}

// toSeries stores vals as a numeric series, or as a text series when any cell is text
func toSeries(name string, vals []Value) series.Series {
	numeric := true
	for _, v := range vals {
		if v.kind == KindString {
			numeric = false
			break
		}
	}

	cells := make([]interface{}, len(vals))
	for i, v := range vals {
		switch {
		case v.IsMissing():
			cells[i] = nil
		case numeric:
			cells[i] = v.num
		default:
			cells[i] = v.Text()
		}
	}
	if numeric {
		return series.New(cells, series.Float, name)
	}
	return series.New(cells, series.String, name)
}

// floatSeries stores computed numbers; NaN becomes NA
func floatSeries(name string, vals []float64) series.Series {
	cells := make([]interface{}, len(vals))
	for i, f := range vals {
		if math.IsNaN(f) {
			cells[i] = nil
			continue
		}
		cells[i] = f
	}
	return series.New(cells, series.Float, name)
}

// fromSeries builds a table from columns of equal length nrows
func fromSeries(nrows int, cols ...series.Series) (*Table, error) {
	if len(cols) == 0 {
		return emptyTable(nrows), nil
	}
	return fromFrame(dataframe.New(cols...))
}

// fromFrame wraps the result of a DataFrame operation
func fromFrame(df dataframe.DataFrame) (*Table, error) {
	if df.Err != nil {
		return nil, df.Err
	}
	columns := df.Names()
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return &Table{df: df, columns: columns, index: index, nrows: df.Nrow()}, nil
}

// emptyTable has no columns; gota has no zero-width frame
func emptyTable(nrows int) *Table {
	return &Table{columns: []string{}, index: map[string]int{}, nrows: nrows}
}

// derive wraps a frame computed from t, tagging a failure with stage
func derive(stage string, df dataframe.DataFrame) (*Table, error) {
	out, err := fromFrame(df)
	if err != nil {
		return nil, malformed(stage, "%v", err)
	}
	return out, nil
}

// Columns returns a copy of the column names in order
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows
func (t *Table) Len() int { return t.nrows }

// Width returns the number of columns
func (t *Table) Width() int { return len(t.columns) }

// HasColumn reports whether the column exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of a column
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Row returns row i
func (t *Table) Row(i int) []Value {
	out := make([]Value, len(t.columns))
	for c := range t.columns {
		out[c] = t.cell(i, c)
	}
	return out
}

// Value returns the cell at row i in the named column
func (t *Table) Value(i int, column string) (Value, bool) {
	c, ok := t.index[column]
	if !ok {
		return Value{}, false
	}
	return t.cell(i, c), true
}

// Float returns the numeric cell at row i, NaN when missing or not numeric
func (t *Table) Float(i int, column string) float64 {
	v, ok := t.Value(i, column)
	if !ok {
		return math.NaN()
	}
	f, ok := v.Float()
	if !ok {
		return math.NaN()
	}
	return f
}

// Column returns all values in a column
func (t *Table) Column(name string) ([]Value, bool) {
	c, ok := t.index[name]
	if !ok {
		return nil, false
	}
	out := make([]Value, t.nrows)
	for i := range out {
		out[i] = t.cell(i, c)
	}
	return out, true
}

// Records returns the table as positional JSON-friendly rows
func (t *Table) Records() [][]interface{} {
	out := make([][]interface{}, t.nrows)
	for i := range out {
		rec := make([]interface{}, len(t.columns))
		for c := range t.columns {
			rec[c] = t.cell(i, c).Interface()
		}
		out[i] = rec
	}
	return out
}

// cell converts the element at row i, column c
func (t *Table) cell(i, c int) Value {
	e := t.df.Elem(i, c)
	if e.IsNA() {
		return Missing()
	}
	if e.Type() == series.String {
		return String(e.String())
	}
	f := e.Float()
	if math.IsNaN(f) {
		return Missing()
	}
	return Number(f)
}

// requireColumns returns the index of each named column or a ColumnNotFoundError
func (t *Table) requireColumns(stage string, names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		c, ok := t.index[n]
		if !ok {
			return nil, columnNotFound(stage, n)
		}
		idx[i] = c
	}
	return idx, nil
}

// mutate adds or replaces the given columns
func (t *Table) mutate(stage string, cols ...series.Series) (*Table, error) {
	if len(t.columns) == 0 {
		return fromSeries(t.nrows, cols...)
	}
	df := t.df
	for _, s := range cols {
		df = df.Mutate(s)
	}
	return derive(stage, df)
}

// subset keeps the rows at idx, in that order
func (t *Table) subset(stage string, idx []int) (*Table, error) {
	if len(t.columns) == 0 {
		return emptyTable(len(idx)), nil
	}
	if len(idx) == 0 {
		cols := make([]series.Series, len(t.columns))
		for c, name := range t.columns {
			cols[c] = t.df.Col(name).Empty()
		}
		return fromSeries(0, cols...)
	}
	return derive(stage, t.df.Subset(idx))
}

// floats returns a numeric view of a column, NaN where missing or not numeric
func (t *Table) floats(c int) []float64 {
	out := make([]float64, t.nrows)
	for i := range out {
		f, ok := t.cell(i, c).Float()
		if !ok {
			f = math.NaN()
		}
		out[i] = f
	}
	return out
}
