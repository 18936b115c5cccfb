package schedule

import "github.com/tmweiss/volunteer-booking-go/pkg/models"

// Reconcile computes required-vs-assigned counts per event, one row per
// event in the order given. StillRequired floors at zero: an overbooked
// event shows Assigned greater than Required rather than a negative balance.
func Reconcile(events []models.Event, assignments []models.Assignment) []models.SummaryRow {
	assigned := make(map[string]int, len(events))
	for _, a := range assignments {
		assigned[a.EventID]++
	}

	rows := make([]models.SummaryRow, 0, len(events))
	for _, e := range events {
		still := e.Required - assigned[e.EventID]
		if still < 0 {
			still = 0
		}
		rows = append(rows, models.SummaryRow{
			EventID:       e.EventID,
			Type:          e.Type,
			Date:          e.Date,
			StartTime:     e.StartTime,
			EndTime:       e.EndTime,
			EventName:     e.EventName,
			Required:      e.Required,
			Assigned:      assigned[e.EventID],
			StillRequired: still,
		})
	}
	return rows
}
