package handlers

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tmweiss/volunteer-booking-go/pkg/models"
	"github.com/tmweiss/volunteer-booking-go/pkg/schedule"
	"github.com/tmweiss/volunteer-booking-go/pkg/store"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	Repo *store.Repository
	Log  zerolog.Logger
}

// scheduleFilter carries the dashboard's sidebar filters.
type scheduleFilter struct {
	volunteer string
	types     map[string]bool
	from      time.Time
	to        time.Time
	hasFrom   bool
	hasTo     bool
}

func parseFilter(c *gin.Context) (scheduleFilter, error) {
	f := scheduleFilter{volunteer: c.Query("volunteer")}

	if types := c.QueryArray("type"); len(types) > 0 {
		f.types = make(map[string]bool, len(types))
		for _, t := range types {
			f.types[t] = true
		}
	}

	const layout = "2006-01-02"
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(layout, from)
		if err != nil {
			return f, &store.ValidationError{Field: "from", Reason: "must be YYYY-MM-DD"}
		}
		f.from, f.hasFrom = t, true
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(layout, to)
		if err != nil {
			return f, &store.ValidationError{Field: "to", Reason: "must be YYYY-MM-DD"}
		}
		f.to, f.hasTo = t, true
	}
	if f.hasFrom && f.hasTo && f.from.After(f.to) {
		return f, &store.ValidationError{Field: "from", Reason: "start date must be before or equal to end date"}
	}
	return f, nil
}

func (f scheduleFilter) matches(e models.ScheduleEntry) bool {
	if f.volunteer != "" && e.Volunteer != f.volunteer {
		return false
	}
	if f.types != nil && !f.types[e.Type] {
		return false
	}
	if f.hasFrom || f.hasTo {
		// Date filters need an interval to compare against.
		if !e.HasInterval() {
			return false
		}
		day := e.StartsAt.Truncate(24 * time.Hour)
		if f.hasFrom && day.Before(f.from) {
			return false
		}
		if f.hasTo && day.After(f.to) {
			return false
		}
	}
	return true
}

func (f scheduleFilter) apply(entries []models.ScheduleEntry) []models.ScheduleEntry {
	filtered := make([]models.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if f.matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// GetSchedule returns the joined assignment view, filtered and sorted the way
// the dashboard table is: start time first, volunteer name second.
func (h *Handler) GetSchedule(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	entries := filter.apply(h.Repo.JoinedView())
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].StartsAt.Equal(entries[j].StartsAt) {
			return entries[i].StartsAt.Before(entries[j].StartsAt)
		}
		return entries[i].Volunteer < entries[j].Volunteer
	})

	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}

// GetConflicts runs the conflict checker over the (optionally filtered)
// joined view.
func (h *Handler) GetConflicts(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	conflicts := schedule.FindConflicts(filter.apply(h.Repo.JoinedView()))
	if conflicts == nil {
		conflicts = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(conflicts),
		"conflicts": conflicts,
	})
}

// GetSummary returns required-vs-assigned rows per event, filterable by type
// and date range, sorted by date then type.
func (h *Handler) GetSummary(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	events := make([]models.Event, 0)
	for _, e := range h.Repo.Events() {
		if filter.types != nil && !filter.types[e.Type] {
			continue
		}
		if filter.hasFrom || filter.hasTo {
			day, err := time.Parse("2006-01-02", e.Date)
			if err != nil {
				continue
			}
			if filter.hasFrom && day.Before(filter.from) {
				continue
			}
			if filter.hasTo && day.After(filter.to) {
				continue
			}
		}
		events = append(events, e)
	}

	rows := schedule.Reconcile(events, h.Repo.Assignments())
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].Type < rows[j].Type
	})

	c.JSON(http.StatusOK, gin.H{
		"count":  len(rows),
		"events": rows,
	})
}

// ListEvents returns the event table in insertion order.
func (h *Handler) ListEvents(c *gin.Context) {
	events := h.Repo.Events()
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// GetEventDetails returns one event with its booked volunteers and the
// assigned / still-required balance.
func (h *Handler) GetEventDetails(c *gin.Context) {
	id := c.Param("id")
	event, ok := h.Repo.EventByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": store.ErrUnknownEvent.Error()})
		return
	}

	booked := make([]string, 0)
	for _, a := range h.Repo.Assignments() {
		if a.EventID == id {
			booked = append(booked, a.Volunteer)
		}
	}
	stillRequired := event.Required - len(booked)
	if stillRequired < 0 {
		stillRequired = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"event":          event,
		"booked":         booked,
		"assigned":       len(booked),
		"still_required": stillRequired,
	})
}

// ListVolunteers returns the volunteer roster for form dropdowns.
func (h *Handler) ListVolunteers(c *gin.Context) {
	vols := h.Repo.Volunteers()
	names := make([]string, 0, len(vols))
	for _, v := range vols {
		names = append(names, v.FullName())
	}
	c.JSON(http.StatusOK, gin.H{
		"count":      len(names),
		"volunteers": names,
	})
}

// errStatus maps a repository error to an HTTP status.
func errStatus(err error) int {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrUnknownEvent):
		return http.StatusNotFound
	case errors.Is(err, store.ErrUnknownVolunteer):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrDuplicateAssignment):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
