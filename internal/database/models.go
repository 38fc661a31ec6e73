package database

import (
	"time"
)

// Guest list lifecycle states. The transition is one-way: a list is
// created as draft and flipped to ready exactly once, after all of its
// guest rows have been inserted.
const (
	StatusDraft = "draft"
	StatusReady = "ready"
)

type GuestList struct {
	ID               int64     `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	StorageKey       string    `json:"storage_key"`
	Status           string    `json:"status"`
	ShareToken       string    `json:"share_token"`
	EventDate        time.Time `json:"event_date"`
	CreatedAt        time.Time `json:"created_at"`
}

type Guest struct {
	ID          int64  `json:"id"`
	GuestListID int64  `json:"guest_list_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	NumTickets  int    `json:"num_tickets"`
	Email       string `json:"email"`
	Notes       string `json:"notes"`
}
