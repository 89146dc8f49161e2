package models

import "time"

// Hoax is a short user-authored post. Hoaxes are immutable once created;
// the client never edits or deletes them.
type Hoax struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Date    int64  `json:"date"`
	User    User   `json:"user"`
}

// Time converts the server-supplied epoch-millisecond timestamp.
func (h Hoax) Time() time.Time {
	return time.UnixMilli(h.Date)
}
