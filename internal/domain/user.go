package domain

import "time"

// DateDisplayLayout is the calendar-date format exposed in API responses,
// e.g. "Mon Jan 05 2026".
const DateDisplayLayout = "Mon Jan 02 2006"

// User represents a tracked user owning an append-only exercise log.
// Count always equals the total number of stored log entries.
type User struct {
	ID        string
	Username  string
	Count     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LogEntry is a single exercise record within a user's log. Entries carry a
// calendar date only, no time-of-day component.
type LogEntry struct {
	ID          int64
	UserID      string
	Description string
	Duration    float64
	Date        time.Time
	CreatedAt   time.Time
}
