package models

import (
	"strings"
	"time"
)

// Volunteer represents a person available for booking. Volunteers are loaded
// once per session and are read-only afterwards.
type Volunteer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Alias     string `json:"alias,omitempty"`
}

// FullName joins the trimmed name parts; this is the canonical key used by
// assignments.
func (v Volunteer) FullName() string {
	return strings.TrimSpace(v.FirstName) + " " + strings.TrimSpace(v.LastName)
}

// Event represents a session that needs volunteers
type Event struct {
	EventID     string `json:"event_id"`
	Type        string `json:"type"`
	SchoolName  string `json:"school_name,omitempty"`
	EventName   string `json:"event_name"`
	Grade       string `json:"grade,omitempty"`
	NumStudents int    `json:"num_students"`
	Date        string `json:"date"`       // YYYY-MM-DD
	StartTime   string `json:"start_time"` // HH:MM, 24-hour
	EndTime     string `json:"end_time"`   // HH:MM, 24-hour
	Required    int    `json:"required"`
}

// Assignment represents a volunteer-event pairing. Volunteer is the resolved
// full name, not a foreign key: rows loaded from disk may carry names that
// never appear in the volunteer table.
type Assignment struct {
	EventID   string `json:"event_id"`
	Volunteer string `json:"volunteer"`
}

// ScheduleEntry is one row of the assignment-event join. StartsAt/EndsAt are
// zero when the event's date or times failed to parse; such entries still
// show up in listings but are skipped by interval-based checks.
type ScheduleEntry struct {
	EventID     string    `json:"event_id"`
	Volunteer   string    `json:"volunteer"`
	Type        string    `json:"type"`
	SchoolName  string    `json:"school_name,omitempty"`
	EventName   string    `json:"event_name"`
	Grade       string    `json:"grade,omitempty"`
	NumStudents int       `json:"num_students"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	StartsAt    time.Time `json:"starts_at,omitempty"`
	EndsAt      time.Time `json:"ends_at,omitempty"`
}

// HasInterval reports whether the entry carries a usable time interval.
func (e ScheduleEntry) HasInterval() bool {
	return !e.StartsAt.IsZero() && !e.EndsAt.IsZero()
}

// SummaryRow is one line of the required-vs-assigned reconciliation.
// StillRequired never goes negative; over-assignment shows as
// Assigned > Required instead.
type SummaryRow struct {
	EventID       string `json:"event_id"`
	Type          string `json:"type"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	EventName     string `json:"event_name"`
	Required      int    `json:"required"`
	Assigned      int    `json:"assigned"`
	StillRequired int    `json:"still_required"`
}
