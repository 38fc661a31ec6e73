package csvmap

import (
	"reflect"
	"testing"
)

func TestParsePreview(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		truncated   bool
		wantColumns []int
		wantRows    []map[int]string
	}{
		{
			name:        "header and two rows",
			data:        "First,Last\nAda,Lovelace\nAlan,Turing\n",
			wantColumns: []int{0, 1},
			wantRows: []map[int]string{
				{0: "Ada", 1: "Lovelace"},
				{0: "Alan", 1: "Turing"},
			},
		},
		{
			name:        "cells are trimmed",
			data:        "First , Last\n Ada , Lovelace \n",
			wantColumns: []int{0, 1},
			wantRows: []map[int]string{
				{0: "Ada", 1: "Lovelace"},
			},
		},
		{
			name:        "missing cells default to empty",
			data:        "First,Last,Email\nAda\n",
			wantColumns: []int{0, 1, 2},
			wantRows: []map[int]string{
				{0: "Ada", 1: "", 2: ""},
			},
		},
		{
			name:        "blank lines are skipped",
			data:        "First,Last\nAda,Lovelace\n\nAlan,Turing\n",
			wantColumns: []int{0, 1},
			wantRows: []map[int]string{
				{0: "Ada", 1: "Lovelace"},
				{0: "Alan", 1: "Turing"},
			},
		},
		{
			name:        "sample capped at six rows",
			data:        "Name\na\nb\nc\nd\ne\nf\ng\nh\n",
			wantColumns: []int{0},
			wantRows: []map[int]string{
				{0: "a"}, {0: "b"}, {0: "c"}, {0: "d"}, {0: "e"}, {0: "f"},
			},
		},
		{
			name:        "truncated partial tail is discarded",
			data:        "First,Last\nAda,Lovelace\nAlan,Tur",
			truncated:   true,
			wantColumns: []int{0, 1},
			wantRows: []map[int]string{
				{0: "Ada", 1: "Lovelace"},
			},
		},
		{
			name:        "untruncated tail without newline is kept",
			data:        "First,Last\nAda,Lovelace\nAlan,Turing",
			wantColumns: []int{0, 1},
			wantRows: []map[int]string{
				{0: "Ada", 1: "Lovelace"},
				{0: "Alan", 1: "Turing"},
			},
		},
		{
			name:        "CRLF line endings",
			data:        "First,Last\r\nAda,Lovelace\r\n",
			wantColumns: []int{0, 1},
			wantRows: []map[int]string{
				{0: "Ada", 1: "Lovelace"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePreview([]byte(tt.data), tt.truncated)

			if !reflect.DeepEqual(p.Columns, tt.wantColumns) {
				t.Errorf("Columns = %v, want %v", p.Columns, tt.wantColumns)
			}
			if len(p.Rows) != len(tt.wantRows) {
				t.Fatalf("got %d rows, want %d", len(p.Rows), len(tt.wantRows))
			}
			for i, want := range tt.wantRows {
				if !reflect.DeepEqual(p.Rows[i], want) {
					t.Errorf("row %d = %v, want %v", i, p.Rows[i], want)
				}
			}
		})
	}
}

func TestParsePreviewNumericColumns(t *testing.T) {
	data := "Name,Tickets,Notes\nAda,2,loves math\nAlan,3,\nGrace,,\n"
	p := ParsePreview([]byte(data), false)

	want := []int{1}
	if !reflect.DeepEqual(p.NumericColumns, want) {
		t.Errorf("NumericColumns = %v, want %v", p.NumericColumns, want)
	}
}

func TestParsePreviewIdempotent(t *testing.T) {
	data := []byte("First,Last\nAda,Lovelace\nAlan,Tur")

	first := ParsePreview(data, true)
	second := ParsePreview(data, true)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("parsing the same bytes twice differed: %+v vs %+v", first, second)
	}
}

func TestParsePreviewEmpty(t *testing.T) {
	for _, data := range [][]byte{nil, []byte(""), []byte("\n")} {
		p := ParsePreview(data, false)
		if len(p.Columns) != 0 {
			t.Errorf("ParsePreview(%q): expected no columns, got %v", data, p.Columns)
		}
		if len(p.Rows) != 0 {
			t.Errorf("ParsePreview(%q): expected no rows, got %d", data, len(p.Rows))
		}
	}
}
