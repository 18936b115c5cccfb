package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmweiss/volunteer-booking-go/pkg/models"
)

func entry(volunteer, eventID, eventType, date, start, end string) models.ScheduleEntry {
	e := models.ScheduleEntry{
		EventID:   eventID,
		Volunteer: volunteer,
		Type:      eventType,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
	if starts, err := time.Parse("2006-01-02 15:04", date+" "+start); err == nil {
		e.StartsAt = starts
	}
	if ends, err := time.Parse("2006-01-02 15:04", date+" "+end); err == nil {
		e.EndsAt = ends
	}
	return e
}

func TestFindConflictsOverlap(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("Bob", "COR001", "course", "2025-06-02", "10:00", "11:00"),
		entry("Bob", "GUI001", "guiding", "2025-06-02", "10:30", "11:30"),
	}

	conflicts := FindConflicts(entries)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "Bob has overlapping bookings on 2025-06-02 from 10:00 to 10:30 (course -> guiding)", conflicts[0])
}

func TestFindConflictsBackToBackIsFine(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("Bob", "COR001", "course", "2025-06-02", "10:00", "11:00"),
		entry("Bob", "GUI001", "guiding", "2025-06-02", "11:00", "12:00"),
	}
	assert.Empty(t, FindConflicts(entries))
}

func TestFindConflictsNestedInterval(t *testing.T) {
	// The second booking ends before the third starts, so an adjacent-pair
	// scan would miss that the third still sits inside the first. The
	// running-maximum sweep must catch both.
	entries := []models.ScheduleEntry{
		entry("Ana", "COR001", "course", "2025-06-02", "09:00", "16:00"),
		entry("Ana", "GUI001", "guiding", "2025-06-02", "09:30", "10:30"),
		entry("Ana", "GUI002", "guiding", "2025-06-02", "11:00", "12:00"),
	}

	conflicts := FindConflicts(entries)
	require.Len(t, conflicts, 2)
	assert.Contains(t, conflicts[0], "Ana has overlapping bookings")
	assert.Contains(t, conflicts[1], "Ana has overlapping bookings")
	assert.Contains(t, conflicts[1], "from 09:00 to 11:00")
}

func TestFindConflictsSeparateVolunteers(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("Ana", "COR001", "course", "2025-06-02", "10:00", "11:00"),
		entry("Bob", "COR001", "course", "2025-06-02", "10:00", "11:00"),
	}
	assert.Empty(t, FindConflicts(entries))
}

func TestFindConflictsSkipsEntriesWithoutInterval(t *testing.T) {
	broken := models.ScheduleEntry{Volunteer: "Ana", EventID: "COR001", Type: "course"}
	entries := []models.ScheduleEntry{
		broken,
		entry("Ana", "GUI001", "guiding", "2025-06-02", "10:00", "11:00"),
	}
	assert.Empty(t, FindConflicts(entries))
}

func TestFindConflictsGRGCapacity(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("Ana", "GRG001", "grg", "2025-06-02", "10:00", "11:00"),
		entry("Bob", "GRG001", "grg", "2025-06-03", "10:00", "11:00"),
		entry("Cleo", "GRG001", "GRG", "2025-06-03", "14:00", "15:00"),
		entry("Dana", "GRG001", "grg", "2025-06-03", "14:00", "15:00"),
	}

	conflicts := FindConflicts(entries)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "GRG slot GRG001 on 2025-06-03 is overbooked with 3 volunteers (max 2 allowed)", conflicts[0])
}

func TestFindConflictsGRGTwoVolunteersIsFine(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("Ana", "GRG001", "grg", "2025-06-02", "10:00", "11:00"),
		entry("Bob", "GRG001", "grg", "2025-06-02", "10:00", "11:00"),
	}
	assert.Empty(t, FindConflicts(entries))
}

func TestFindConflictsCapacityIgnoresOtherTypes(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("Ana", "COR001", "course", "2025-06-02", "10:00", "11:00"),
		entry("Bob", "COR001", "course", "2025-06-02", "12:00", "13:00"),
		entry("Cleo", "COR001", "course", "2025-06-02", "14:00", "15:00"),
	}
	assert.Empty(t, FindConflicts(entries))
}

func TestFindConflictsOrdering(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("Zoe", "GRG002", "grg", "2025-06-02", "10:00", "11:00"),
		entry("Zoe", "COR001", "course", "2025-06-02", "10:30", "11:30"),
		entry("Ana", "GRG001", "grg", "2025-06-03", "10:00", "11:00"),
		entry("Bob", "GRG001", "grg", "2025-06-03", "10:00", "11:00"),
		entry("Cleo", "GRG001", "grg", "2025-06-03", "10:00", "11:00"),
	}

	conflicts := FindConflicts(entries)
	require.Len(t, conflicts, 2)
	// Overlaps before capacity messages.
	assert.Contains(t, conflicts[0], "Zoe has overlapping bookings")
	assert.Contains(t, conflicts[1], "GRG slot GRG001")
}

func TestFindConflictsEmpty(t *testing.T) {
	assert.Empty(t, FindConflicts(nil))
}
