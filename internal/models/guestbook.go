package models

import "time"

// GuestbookEntry is a visitor-submitted message. Entries are created once,
// never updated, and deletable only where the deployment allows it.
type GuestbookEntry struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
