package ingest

import (
	"strconv"
	"strings"

	"github.com/AlexTLDR/guestlist/internal/csvmap"
	"github.com/AlexTLDR/guestlist/internal/database"
)

// BuildGuests transforms a full CSV body plus a committed position map
// into the guest rows to insert. The transform is pure: same CSV text and
// positions always yield the same row set.
//
// Rules, in order: the header line is discarded; lines blank after
// trimming are discarded; each mapped field is read from its CSV column
// and trimmed, defaulting to the empty string when the cell is absent;
// num_tickets defaults to 1 when absent, blank, non-numeric or not
// positive; rows whose first name ends up empty are dropped. The position
// map may omit optional fields regardless of what the mapping UI
// enforced.
func BuildGuests(csvText string, guestListID int64, positions csvmap.Positions) []database.Guest {
	lines := strings.Split(csvText, "\n")
	if len(lines) > 0 {
		lines = lines[1:] // header
	}

	guests := make([]database.Guest, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		cells := strings.Split(line, ",")
		guest := database.Guest{
			GuestListID: guestListID,
			NumTickets:  1,
		}

		for field, index := range positions {
			value := ""
			if index >= 0 && index < len(cells) {
				value = strings.TrimSpace(cells[index])
			}

			switch field {
			case csvmap.FieldFirstName:
				guest.FirstName = value
			case csvmap.FieldLastName:
				guest.LastName = value
			case csvmap.FieldTickets:
				if n, err := strconv.Atoi(value); err == nil && n > 0 {
					guest.NumTickets = n
				}
			case csvmap.FieldEmail:
				guest.Email = value
			case csvmap.FieldNotes:
				guest.Notes = value
			}
		}

		// Defensive: the mapping UI requires a first-name column, but the
		// pipeline validates rows on its own.
		if guest.FirstName == "" {
			continue
		}

		guests = append(guests, guest)
	}

	return guests
}

// ParsePositions translates the wire form of a position map (field name →
// CSV column index) into typed positions. Unknown field names are
// ignored, matching the import surface.
func ParsePositions(raw map[string]int) csvmap.Positions {
	positions := make(csvmap.Positions, len(raw))
	for name, index := range raw {
		if field, ok := csvmap.ParseField(name); ok {
			positions[field] = index
		}
	}
	return positions
}
