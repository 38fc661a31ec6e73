package ingest

import (
	"testing"

	"github.com/AlexTLDR/guestlist/internal/csvmap"
	"github.com/AlexTLDR/guestlist/internal/database"
)

func TestBuildGuests(t *testing.T) {
	tests := []struct {
		name      string
		csv       string
		positions csvmap.Positions
		want      []database.Guest
	}{
		{
			name:      "first and last name",
			csv:       "First,Last\nAda,Lovelace\nAlan,Turing\n",
			positions: csvmap.Positions{csvmap.FieldFirstName: 0, csvmap.FieldLastName: 1},
			want: []database.Guest{
				{GuestListID: 7, FirstName: "Ada", LastName: "Lovelace", NumTickets: 1},
				{GuestListID: 7, FirstName: "Alan", LastName: "Turing", NumTickets: 1},
			},
		},
		{
			name:      "first name only defaults everything else",
			csv:       "First,Last,Tickets\nAda,Lovelace,5\n",
			positions: csvmap.Positions{csvmap.FieldFirstName: 0},
			want: []database.Guest{
				{GuestListID: 7, FirstName: "Ada", NumTickets: 1},
			},
		},
		{
			name:      "blank line between rows produces no guest",
			csv:       "First\nAda\n\nAlan\n",
			positions: csvmap.Positions{csvmap.FieldFirstName: 0},
			want: []database.Guest{
				{GuestListID: 7, FirstName: "Ada", NumTickets: 1},
				{GuestListID: 7, FirstName: "Alan", NumTickets: 1},
			},
		},
		{
			name:      "non-numeric tickets default to 1",
			csv:       "First,Last,Tickets\nBob,,abc\n",
			positions: csvmap.Positions{csvmap.FieldFirstName: 0, csvmap.FieldTickets: 2},
			want: []database.Guest{
				{GuestListID: 7, FirstName: "Bob", NumTickets: 1},
			},
		},
		{
			name:      "zero and negative tickets default to 1",
			csv:       "First,Tickets\nAda,0\nAlan,-3\nGrace,4\n",
			positions: csvmap.Positions{csvmap.FieldFirstName: 0, csvmap.FieldTickets: 1},
			want: []database.Guest{
				{GuestListID: 7, FirstName: "Ada", NumTickets: 1},
				{GuestListID: 7, FirstName: "Alan", NumTickets: 1},
				{GuestListID: 7, FirstName: "Grace", NumTickets: 4},
			},
		},
		{
			name:      "rows without first name are dropped",
			csv:       "First,Last\n,Lovelace\n   ,Turing\nGrace,Hopper\n",
			positions: csvmap.Positions{csvmap.FieldFirstName: 0, csvmap.FieldLastName: 1},
			want: []database.Guest{
				{GuestListID: 7, FirstName: "Grace", LastName: "Hopper", NumTickets: 1},
			},
		},
		{
			name:      "out-of-range column index reads as empty",
			csv:       "First\nAda\n",
			positions: csvmap.Positions{csvmap.FieldFirstName: 0, csvmap.FieldEmail: 9},
			want: []database.Guest{
				{GuestListID: 7, FirstName: "Ada", NumTickets: 1},
			},
		},
		{
			name:      "cells are trimmed",
			csv:       "First,Last, Tickets\n Ada , Lovelace , 2 \n",
			positions: csvmap.Positions{csvmap.FieldFirstName: 0, csvmap.FieldLastName: 1, csvmap.FieldTickets: 2},
			want: []database.Guest{
				{GuestListID: 7, FirstName: "Ada", LastName: "Lovelace", NumTickets: 2},
			},
		},
		{
			name:      "header only",
			csv:       "First,Last\n",
			positions: csvmap.Positions{csvmap.FieldFirstName: 0},
			want:      nil,
		},
		{
			name:      "empty positions drop every row",
			csv:       "First\nAda\n",
			positions: csvmap.Positions{},
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildGuests(tt.csv, 7, tt.positions)

			if len(got) != len(tt.want) {
				t.Fatalf("got %d guests, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, want := range tt.want {
				if got[i] != want {
					t.Errorf("guest %d = %+v, want %+v", i, got[i], want)
				}
			}
		})
	}
}

func TestBuildGuestsIsPure(t *testing.T) {
	csv := "First,Tickets\nAda,2\nAlan,x\n"
	positions := csvmap.Positions{csvmap.FieldFirstName: 0, csvmap.FieldTickets: 1}

	first := BuildGuests(csv, 1, positions)
	second := BuildGuests(csv, 1, positions)

	if len(first) != len(second) {
		t.Fatalf("row counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestParsePositions(t *testing.T) {
	raw := map[string]int{
		"firstName": 0,
		"tickets":   2,
		"bogus":     5,
	}

	got := ParsePositions(raw)

	want := csvmap.Positions{csvmap.FieldFirstName: 0, csvmap.FieldTickets: 2}
	if len(got) != len(want) {
		t.Fatalf("positions = %v, want %v", got, want)
	}
	for f, c := range want {
		if got[f] != c {
			t.Errorf("positions[%v] = %d, want %d", f, got[f], c)
		}
	}
}
