// Package store owns the three booking collections and their CSV backing
// files. All mutations rewrite the affected file in full; there is no
// incremental log. That is fine for a single writer but callers running
// concurrent sessions against the same directory would lose updates, so the
// repository serializes its own mutations with a mutex and nothing more.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/tmweiss/volunteer-booking-go/pkg/eventid"
	"github.com/tmweiss/volunteer-booking-go/pkg/models"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	datetimeLayout = "2006-01-02 15:04"
)

// grgAutoName is the event name given to grg sessions, which have no
// user-supplied name.
const grgAutoName = "GRG Session"

// Repository holds volunteers, events and assignments in insertion order.
// Volunteers are read-only for the session; events and assignments are
// append-only.
type Repository struct {
	mu  sync.Mutex
	dir string

	volunteers  []models.Volunteer
	events      []models.Event
	assignments []models.Assignment

	// alias (or full name) -> canonical full name
	nameIndex map[string]string
}

// Open loads the three collections from dir. Missing files stand for empty
// collections. Assignment rows are normalized through the alias table on the
// way in, matching how new assignments are stored.
func Open(dir string) (*Repository, error) {
	vols, err := LoadVolunteers(dir)
	if err != nil {
		return nil, err
	}
	events, err := LoadEvents(dir)
	if err != nil {
		return nil, err
	}
	asgns, err := LoadAssignments(dir)
	if err != nil {
		return nil, err
	}

	r := &Repository{
		dir:         dir,
		volunteers:  vols,
		events:      events,
		assignments: asgns,
		nameIndex:   make(map[string]string, len(vols)*2),
	}
	for _, v := range vols {
		full := v.FullName()
		r.nameIndex[full] = full
		if alias := strings.TrimSpace(v.Alias); alias != "" {
			r.nameIndex[alias] = full
		}
	}
	for i := range r.assignments {
		r.assignments[i].Volunteer = r.resolve(r.assignments[i].Volunteer)
	}
	return r, nil
}

// EventInput carries the fields of the add-event form. The event ID is
// always generated, never supplied.
type EventInput struct {
	Type        string `json:"type"`
	SchoolName  string `json:"school_name"`
	EventName   string `json:"event_name"`
	Grade       string `json:"grade"`
	NumStudents int    `json:"num_students"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Required    int    `json:"required"`
}

// AddEvent validates the input, assigns a fresh ID, appends the event and
// rewrites the events file. The returned ID is never reused, even across
// hypothetical deletions, because generation only counts upward from the
// highest suffix seen.
func (r *Repository) AddEvent(in EventInput) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if in.Type == "grg" {
		// GRG sessions are uniform: no school, no grade, fixed name.
		in.SchoolName = ""
		in.EventName = grgAutoName
		in.Grade = ""
		in.NumStudents = 0
	}
	if strings.TrimSpace(in.EventName) == "" {
		return "", validationErr("event_name", "must not be empty")
	}
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return "", validationErr("date", "must be YYYY-MM-DD")
	}
	start, err := time.Parse(timeLayout, in.StartTime)
	if err != nil {
		return "", validationErr("start_time", "must be HH:MM")
	}
	end, err := time.Parse(timeLayout, in.EndTime)
	if err != nil {
		return "", validationErr("end_time", "must be HH:MM")
	}
	if !start.Before(end) {
		return "", validationErr("end_time", "must be after start_time")
	}
	if in.Required < 1 {
		return "", validationErr("required", "must be at least 1")
	}

	existing := make([]string, 0, len(r.events))
	for _, e := range r.events {
		existing = append(existing, e.EventID)
	}
	id := eventid.Next(existing, eventid.PrefixFor(in.Type))

	r.events = append(r.events, models.Event{
		EventID:     id,
		Type:        in.Type,
		SchoolName:  in.SchoolName,
		EventName:   in.EventName,
		Grade:       in.Grade,
		NumStudents: in.NumStudents,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Required:    in.Required,
	})
	if err := SaveEvents(r.dir, r.events); err != nil {
		r.events = r.events[:len(r.events)-1]
		return "", err
	}
	return id, nil
}

// AddAssignment books a volunteer onto an event. The raw name is resolved
// through the alias table first. ErrUnknownEvent and ErrDuplicateAssignment
// leave both the collection and the file untouched.
func (r *Repository) AddAssignment(eventID, rawName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := r.resolve(rawName)
	if _, ok := r.eventByID(eventID); !ok {
		return ErrUnknownEvent
	}
	for _, a := range r.assignments {
		if a.EventID == eventID && a.Volunteer == name {
			return ErrDuplicateAssignment
		}
	}

	r.assignments = append(r.assignments, models.Assignment{EventID: eventID, Volunteer: name})
	if err := SaveAssignments(r.dir, r.assignments); err != nil {
		r.assignments = r.assignments[:len(r.assignments)-1]
		return err
	}
	return nil
}

// ResolveVolunteerName maps a raw token through the alias table. Unknown
// tokens pass through unchanged: the caller still needs to display the raw
// value even when it names nobody in the volunteer table.
func (r *Repository) ResolveVolunteerName(raw string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolve(raw)
}

func (r *Repository) resolve(raw string) string {
	raw = strings.TrimSpace(raw)
	if full, ok := r.nameIndex[raw]; ok {
		return full
	}
	return raw
}

// HasVolunteer reports whether fullName is a known volunteer's canonical
// name.
func (r *Repository) HasVolunteer(fullName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.volunteers {
		if v.FullName() == fullName {
			return true
		}
	}
	return false
}

// JoinedView recomputes the assignment-event join. It is rebuilt on every
// call rather than cached: appends would otherwise leave stale views around.
// Assignments whose event is missing keep their row with blank event fields,
// mirroring a left join.
func (r *Repository) JoinedView() []models.ScheduleEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]models.ScheduleEntry, 0, len(r.assignments))
	for _, a := range r.assignments {
		entry := models.ScheduleEntry{
			EventID:   a.EventID,
			Volunteer: a.Volunteer,
		}
		if e, ok := r.eventByID(a.EventID); ok {
			entry.Type = e.Type
			entry.SchoolName = e.SchoolName
			entry.EventName = e.EventName
			entry.Grade = e.Grade
			entry.NumStudents = e.NumStudents
			entry.Date = e.Date
			entry.StartTime = e.StartTime
			entry.EndTime = e.EndTime
			if starts, err := time.Parse(datetimeLayout, e.Date+" "+e.StartTime); err == nil {
				if ends, err := time.Parse(datetimeLayout, e.Date+" "+e.EndTime); err == nil {
					entry.StartsAt = starts
					entry.EndsAt = ends
				}
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// Volunteers returns a copy of the volunteer table.
func (r *Repository) Volunteers() []models.Volunteer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Volunteer(nil), r.volunteers...)
}

// Events returns a copy of the event table in insertion order.
func (r *Repository) Events() []models.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Event(nil), r.events...)
}

// Assignments returns a copy of the assignment table in insertion order.
func (r *Repository) Assignments() []models.Assignment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Assignment(nil), r.assignments...)
}

// EventByID looks up a single event.
func (r *Repository) EventByID(id string) (models.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.eventByID(id)
}

func (r *Repository) eventByID(id string) (models.Event, bool) {
	for _, e := range r.events {
		if e.EventID == id {
			return e, true
		}
	}
	return models.Event{}, false
}
