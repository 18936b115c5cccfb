// Package schedule holds the pure checks over the booking data: conflict
// detection and required-vs-assigned reconciliation. Nothing here mutates or
// persists state; both checks are recomputed from scratch on every call.
package schedule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tmweiss/volunteer-booking-go/pkg/models"
)

// grgCapacity is the maximum number of volunteers a grg session takes.
const grgCapacity = 2

// FindConflicts scans the joined view for double-booked volunteers and
// overbooked grg sessions. Entries without a parseable interval are skipped
// for the overlap check but still count toward grg capacity, which only needs
// the date. Overlap messages come first, ordered by volunteer then start
// time; capacity messages follow in event then date order.
func FindConflicts(entries []models.ScheduleEntry) []string {
	var conflicts []string
	conflicts = append(conflicts, overlapConflicts(entries)...)
	conflicts = append(conflicts, capacityConflicts(entries)...)
	return conflicts
}

// overlapConflicts sweeps each volunteer's bookings in start order, carrying
// the running maximum end time seen so far. Comparing against the running
// maximum rather than the immediately preceding booking also catches a short
// booking nested inside a long one with others in between.
func overlapConflicts(entries []models.ScheduleEntry) []string {
	byVolunteer := make(map[string][]models.ScheduleEntry)
	for _, e := range entries {
		if !e.HasInterval() {
			continue
		}
		byVolunteer[e.Volunteer] = append(byVolunteer[e.Volunteer], e)
	}

	names := make([]string, 0, len(byVolunteer))
	for name := range byVolunteer {
		names = append(names, name)
	}
	sort.Strings(names)

	var conflicts []string
	for _, name := range names {
		bookings := byVolunteer[name]
		sort.SliceStable(bookings, func(i, j int) bool {
			return bookings[i].StartsAt.Before(bookings[j].StartsAt)
		})

		latest := bookings[0]
		for _, curr := range bookings[1:] {
			if latest.EndsAt.After(curr.StartsAt) {
				conflicts = append(conflicts, fmt.Sprintf(
					"%s has overlapping bookings on %s from %s to %s (%s -> %s)",
					name, latest.Date, latest.StartTime, curr.StartTime, latest.Type, curr.Type))
			}
			if curr.EndsAt.After(latest.EndsAt) {
				latest = curr
			}
		}
	}
	return conflicts
}

// capacityConflicts counts distinct volunteers per grg session and date.
func capacityConflicts(entries []models.ScheduleEntry) []string {
	type slot struct {
		eventID string
		date    string
	}
	volunteers := make(map[slot]map[string]bool)
	for _, e := range entries {
		if !strings.EqualFold(e.Type, "grg") {
			continue
		}
		key := slot{e.EventID, e.Date}
		if volunteers[key] == nil {
			volunteers[key] = make(map[string]bool)
		}
		volunteers[key][e.Volunteer] = true
	}

	slots := make([]slot, 0, len(volunteers))
	for key := range volunteers {
		slots = append(slots, key)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].eventID != slots[j].eventID {
			return slots[i].eventID < slots[j].eventID
		}
		return slots[i].date < slots[j].date
	})

	var conflicts []string
	for _, key := range slots {
		if count := len(volunteers[key]); count > grgCapacity {
			conflicts = append(conflicts, fmt.Sprintf(
				"GRG slot %s on %s is overbooked with %d volunteers (max %d allowed)",
				key.eventID, key.date, count, grgCapacity))
		}
	}
	return conflicts
}
