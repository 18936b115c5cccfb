// Command report prints the event summary and conflict check for a booking
// data directory, for use outside the server (cron, quick terminal checks).
// It exits 1 when conflicts exist so scripts can gate on it.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tmweiss/volunteer-booking-go/pkg/schedule"
	"github.com/tmweiss/volunteer-booking-go/pkg/store"
)

func main() {
	// Load .env from project root
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	repo, err := store.Open(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	fmt.Println("Event Summary")
	fmt.Println("=============")
	rows := schedule.Reconcile(repo.Events(), repo.Assignments())
	if len(rows) == 0 {
		fmt.Println("(no events)")
	}
	for _, row := range rows {
		fmt.Printf("%-8s %-8s %s %s-%s  %-24s required=%d assigned=%d still_required=%d\n",
			row.EventID, row.Type, row.Date, row.StartTime, row.EndTime,
			row.EventName, row.Required, row.Assigned, row.StillRequired)
	}

	fmt.Println()
	fmt.Println("Conflicts")
	fmt.Println("=========")
	conflicts := schedule.FindConflicts(repo.JoinedView())
	if len(conflicts) == 0 {
		fmt.Println("No conflicts found.")
		return
	}
	for _, msg := range conflicts {
		fmt.Println(msg)
	}
	os.Exit(1)
}
