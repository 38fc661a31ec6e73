package database

import (
	"fmt"
	"strings"
)

// InsertGuests inserts a batch of guests with a single multi-row INSERT.
// Callers are expected to have chunked the batch already; one call is one
// statement.
func (db *DB) InsertGuests(guests []Guest) error {
	if len(guests) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO guests (guest_list_id, first_name, last_name, num_tickets, email, notes) VALUES `)

	args := make([]interface{}, 0, len(guests)*6)
	for i, g := range guests {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 6
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6)
		args = append(args, g.GuestListID, g.FirstName, g.LastName, g.NumTickets, g.Email, g.Notes)
	}

	if _, err := db.Exec(sb.String(), args...); err != nil {
		return fmt.Errorf("failed to insert guests: %w", err)
	}

	return nil
}

// GetGuestsByListID retrieves all guests belonging to a guest list.
func (db *DB) GetGuestsByListID(guestListID int64) ([]*Guest, error) {
	rows, err := db.Query(
		`SELECT id, guest_list_id, first_name, last_name, num_tickets, email, notes
		 FROM guests WHERE guest_list_id = $1 ORDER BY id`,
		guestListID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get guests: %w", err)
	}
	defer rows.Close()

	var guests []*Guest
	for rows.Next() {
		g := &Guest{}
		err := rows.Scan(&g.ID, &g.GuestListID, &g.FirstName, &g.LastName, &g.NumTickets, &g.Email, &g.Notes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, g)
	}

	return guests, rows.Err()
}
