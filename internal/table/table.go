// Package table holds alternatives read from tabular input: one identifier
// column and one numeric column per criterion.
package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultIDColumn is the identifier column used when none is configured.
const DefaultIDColumn = "id"

var (
	ErrNoHeader        = errors.New("table: missing header row")
	ErrMissingIDColumn = errors.New("table: identifier column not found")
	ErrDuplicateColumn = errors.New("table: duplicate column")
	ErrNoCriteria      = errors.New("table: no criterion columns")
	ErrNoRows          = errors.New("table: no rows")
	ErrInvalidNumber   = errors.New("table: invalid number")
)

// Column is one criterion's raw observations in row order.
type Column struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Table is a set of alternatives. IDs[i] identifies the alternative whose
// observations are Columns[*].Values[i].
type Table struct {
	IDColumn string   `json:"id_column"`
	IDs      []string `json:"ids"`
	Columns  []Column `json:"columns"`
}

// Len returns the number of alternatives.
func (t *Table) Len() int {
	return len(t.IDs)
}

// Column returns the named column, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// Row returns the observations of the i-th alternative keyed by column name.
func (t *Table) Row(i int) map[string]float64 {
	row := make(map[string]float64, len(t.Columns))
	for _, c := range t.Columns {
		if i < len(c.Values) {
			row[c.Name] = c.Values[i]
		}
	}
	return row
}

const byteOrderMark = '\ufeff'

// skipBOM drops a leading UTF-8 byte order mark, as written by spreadsheet
// exports.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if ch, _, err := br.ReadRune(); err == nil && ch != byteOrderMark {
		_ = br.UnreadRune()
	}
	return br
}

// ReadCSV parses r as CSV. The first record is the header; idColumn names
// the identifier column (DefaultIDColumn when empty) and every other column
// must hold numbers.
func ReadCSV(r io.Reader, idColumn string) (*Table, error) {
	if idColumn == "" {
		idColumn = DefaultIDColumn
	}

	cr := csv.NewReader(skipBOM(r))
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idIndex := -1
	seen := make(map[string]bool, len(header))
	t := &Table{IDColumn: idColumn}
	columnOf := make([]int, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		seen[name] = true
		if name == idColumn {
			idIndex = i
			columnOf[i] = -1
			continue
		}
		columnOf[i] = len(t.Columns)
		t.Columns = append(t.Columns, Column{Name: name})
	}
	if idIndex < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingIDColumn, idColumn)
	}
	if len(t.Columns) == 0 {
		return nil, ErrNoCriteria
	}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			if i == idIndex {
				t.IDs = append(t.IDs, cell)
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %q: %q", ErrInvalidNumber, line, header[i], cell)
			}
			c := &t.Columns[columnOf[i]]
			c.Values = append(c.Values, v)
		}
	}
	if len(t.IDs) == 0 {
		return nil, ErrNoRows
	}
	return t, nil
}

// New builds a table from columns. When ids is empty each alternative is
// identified by its 0-based row number.
func New(ids []string, columns []Column) *Table {
	if len(ids) == 0 && len(columns) > 0 {
		ids = make([]string, len(columns[0].Values))
		for i := range ids {
			ids[i] = strconv.Itoa(i)
		}
	}
	return &Table{IDColumn: DefaultIDColumn, IDs: ids, Columns: columns}
}
