package domain

import "time"

type Item struct {
	ID          int64
	Type        string
	Title       string
	Content     string
	Description string
	Category    string
	Tags        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ItemType struct {
	ID        int64
	Name      string
	ItemCount int64
	CreatedAt time.Time
}

type AdminCredential struct {
	ID        int64
	Username  string
	PIN       string
	CreatedAt time.Time
}

// Session is the client-held login record. It grants access to admin
// views on the client only; the server performs no authorization.
type Session struct {
	Authenticated bool
	Timestamp     time.Time
}

const SessionTTL = 24 * time.Hour

// IsValid reports whether the session is present and younger than
// SessionTTL at the given instant.
func (s Session) IsValid(now time.Time) bool {
	if !s.Authenticated || s.Timestamp.IsZero() {
		return false
	}
	return !now.After(s.Timestamp.Add(SessionTTL))
}
