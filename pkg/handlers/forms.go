package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tmweiss/volunteer-booking-go/pkg/store"
)

// AddEvent handles the add-event form submission.
func (h *Handler) AddEvent(c *gin.Context) {
	var input store.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.Repo.AddEvent(input)
	if err != nil {
		h.Log.Warn().Err(err).Str("type", input.Type).Msg("event rejected")
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	h.Log.Info().Str("event_id", id).Str("type", input.Type).Msg("event added")
	c.JSON(http.StatusCreated, gin.H{
		"event_id": id,
		"message":  fmt.Sprintf("Event %s added", id),
	})
}

// AssignmentInput is the add-assignment form body. Volunteer may be an alias;
// it is resolved before booking.
type AssignmentInput struct {
	EventID   string `json:"event_id"`
	Volunteer string `json:"volunteer"`
}

// AddAssignment books a volunteer onto an event. New bookings must name a
// volunteer from the roster; rows already on disk are allowed to carry
// external names, but the form never was.
func (h *Handler) AddAssignment(c *gin.Context) {
	var input AssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := h.Repo.ResolveVolunteerName(input.Volunteer)
	if !h.Repo.HasVolunteer(name) {
		c.JSON(errStatus(store.ErrUnknownVolunteer), gin.H{"error": store.ErrUnknownVolunteer.Error()})
		return
	}

	if err := h.Repo.AddAssignment(input.EventID, name); err != nil {
		h.Log.Warn().Err(err).Str("event_id", input.EventID).Str("volunteer", name).Msg("assignment rejected")
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	h.Log.Info().Str("event_id", input.EventID).Str("volunteer", name).Msg("volunteer assigned")
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("%s assigned to %s", name, input.EventID),
	})
}

// ListTimeslots returns the half-hour grid the event forms pick times from.
// The grid is a form convenience only; the repository enforces start < end
// and nothing else.
func (h *Handler) ListTimeslots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"timeslots": Timeslots()})
}

// Timeslots lists HH:MM strings every half hour from 08:00 to 17:00
// inclusive.
func Timeslots() []string {
	var slots []string
	t := time.Date(2000, 1, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2000, 1, 1, 17, 0, 0, 0, time.UTC)
	for !t.After(end) {
		slots = append(slots, t.Format("15:04"))
		t = t.Add(30 * time.Minute)
	}
	return slots
}
