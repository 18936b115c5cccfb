package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tmweiss/volunteer-booking-go/pkg/models"
)

// Backing file names, one CSV per collection.
const (
	VolunteersFile  = "volunteers.csv"
	EventsFile      = "events.csv"
	AssignmentsFile = "assignments.csv"
)

var (
	volunteerColumns  = []string{"first_name", "last_name", "alias"}
	eventColumns      = []string{"event_id", "type", "school_name", "event_name", "grade", "num_students", "date", "start_time", "end_time", "required"}
	assignmentColumns = []string{"event_id", "volunteer"}
)

// readRows reads a header-first CSV file into column-keyed rows. A missing
// file is not an error: it stands for an empty collection.
func readRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", path, err)
	}

	var rows []map[string]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// writeRows rewrites a collection file in full: header row first, then one
// record per row in the order given.
func writeRows(path string, columns []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		f.Close()
		return fmt.Errorf("write %s header: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// LoadVolunteers reads the volunteer table from dir.
func LoadVolunteers(dir string) ([]models.Volunteer, error) {
	rows, err := readRows(filepath.Join(dir, VolunteersFile))
	if err != nil {
		return nil, err
	}
	vols := make([]models.Volunteer, 0, len(rows))
	for _, row := range rows {
		vols = append(vols, models.Volunteer{
			FirstName: row["first_name"],
			LastName:  row["last_name"],
			Alias:     row["alias"],
		})
	}
	return vols, nil
}

// LoadEvents reads the event table from dir.
func LoadEvents(dir string) ([]models.Event, error) {
	rows, err := readRows(filepath.Join(dir, EventsFile))
	if err != nil {
		return nil, err
	}
	events := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		numStudents, _ := strconv.Atoi(row["num_students"])
		required, _ := strconv.Atoi(row["required"])
		events = append(events, models.Event{
			EventID:     row["event_id"],
			Type:        row["type"],
			SchoolName:  row["school_name"],
			EventName:   row["event_name"],
			Grade:       row["grade"],
			NumStudents: numStudents,
			Date:        row["date"],
			StartTime:   row["start_time"],
			EndTime:     row["end_time"],
			Required:    required,
		})
	}
	return events, nil
}

// LoadAssignments reads the assignment table from dir.
func LoadAssignments(dir string) ([]models.Assignment, error) {
	rows, err := readRows(filepath.Join(dir, AssignmentsFile))
	if err != nil {
		return nil, err
	}
	asgns := make([]models.Assignment, 0, len(rows))
	for _, row := range rows {
		asgns = append(asgns, models.Assignment{
			EventID:   row["event_id"],
			Volunteer: row["volunteer"],
		})
	}
	return asgns, nil
}

// SaveEvents rewrites the event table in dir.
func SaveEvents(dir string, events []models.Event) error {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			e.EventID,
			e.Type,
			e.SchoolName,
			e.EventName,
			e.Grade,
			strconv.Itoa(e.NumStudents),
			e.Date,
			e.StartTime,
			e.EndTime,
			strconv.Itoa(e.Required),
		})
	}
	return writeRows(filepath.Join(dir, EventsFile), eventColumns, rows)
}

// SaveAssignments rewrites the assignment table in dir.
func SaveAssignments(dir string, asgns []models.Assignment) error {
	rows := make([][]string, 0, len(asgns))
	for _, a := range asgns {
		rows = append(rows, []string{a.EventID, a.Volunteer})
	}
	return writeRows(filepath.Join(dir, AssignmentsFile), assignmentColumns, rows)
}

// SaveVolunteers rewrites the volunteer table in dir. The session never
// mutates volunteers, but seeding and tests need a writer.
func SaveVolunteers(dir string, vols []models.Volunteer) error {
	rows := make([][]string, 0, len(vols))
	for _, v := range vols {
		rows = append(rows, []string{v.FirstName, v.LastName, v.Alias})
	}
	return writeRows(filepath.Join(dir, VolunteersFile), volunteerColumns, rows)
}
