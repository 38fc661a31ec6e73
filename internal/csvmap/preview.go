package csvmap

import (
	"strconv"
	"strings"
)

// maxSampleRows bounds how many data rows a preview carries. Enough to
// judge what a column holds, small enough to render in one screen.
const maxSampleRows = 6

// Preview is a bounded sample of a CSV's structure, used to drive the
// column-mapping UI without materializing the whole file.
type Preview struct {
	// Columns holds the zero-based column indices of the header row.
	Columns []int `json:"columns"`
	// Rows holds up to maxSampleRows sample rows, each mapping column
	// index to the trimmed cell value.
	Rows []map[int]string `json:"rows"`
	// NumericColumns lists columns whose sampled non-empty cells all
	// parse as numbers, a hint for the tickets mapping.
	NumericColumns []int `json:"numeric_columns"`
}

// ParsePreview splits a byte prefix of a CSV into a header and up to six
// sample rows. truncated indicates the bytes are a cut-off prefix of a
// larger file, in which case the trailing partial line is discarded
// rather than shown corrupted.
//
// The parse is pure: it never reads beyond data and has no side effects,
// and the same input always yields the same preview.
func ParsePreview(data []byte, truncated bool) *Preview {
	text := string(data)
	lines := strings.Split(text, "\n")

	if truncated && len(text) > 0 && !strings.HasSuffix(text, "\n") && len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}

	p := &Preview{}
	if len(lines) == 0 {
		return p
	}

	// An empty input still splits into one empty line; that is no header.
	headerLine := strings.TrimRight(lines[0], "\r")
	if headerLine == "" {
		return p
	}

	header := strings.Split(headerLine, ",")
	for i := range header {
		p.Columns = append(p.Columns, i)
	}

	for _, line := range lines[1:] {
		if len(p.Rows) == maxSampleRows {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, ",")
		row := make(map[int]string, len(header))
		for i := range header {
			if i < len(cells) {
				row[i] = strings.TrimSpace(cells[i])
			} else {
				row[i] = ""
			}
		}
		p.Rows = append(p.Rows, row)
	}

	p.NumericColumns = numericColumns(p.Columns, p.Rows)
	return p
}

// numericColumns returns the columns where every sampled non-empty value
// is a number. Columns with no sampled values at all do not qualify.
func numericColumns(columns []int, rows []map[int]string) []int {
	var numeric []int
	for _, col := range columns {
		seen := false
		allNumeric := true
		for _, row := range rows {
			value := row[col]
			if value == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				allNumeric = false
				break
			}
		}
		if seen && allNumeric {
			numeric = append(numeric, col)
		}
	}
	return numeric
}
