package csvio

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rhyrak/course-planner/pkg/model"
)

// ExportClashes writes the clashes to the CSV file at path, replacing it.
func ExportClashes(clashes []model.Clash, path string) error {
	rows := clashRows(clashes)
	return marshalPath(&rows, path)
}

// ClashesString formats the clashes as CSV.
func ClashesString(clashes []model.Clash) (string, error) {
	rows := clashRows(clashes)
	return gocsv.MarshalString(&rows)
}

// ExportRecommendations writes ranked recommendations to the CSV file at path.
func ExportRecommendations(recs []model.Recommendation, path string) error {
	rows := recommendationRows(recs)
	return marshalPath(&rows, path)
}

func RecommendationsString(recs []model.Recommendation) (string, error) {
	rows := recommendationRows(recs)
	return gocsv.MarshalString(&rows)
}

// PrintTimetable prints the weekly timetable grouped by day. Clashing slots
// are marked with "!".
func PrintTimetable(w io.Writer, rows []model.TimetableRow) {
	var day string
	for _, r := range rows {
		if r.Day != day {
			day = r.Day
			fmt.Fprintf(w, "\n%s %s %s\n", strings.Repeat("-", (32-len(day))/2), day, strings.Repeat("-", int(0.5+(32-float32(len(day)))/2.0)))
		}
		mark := " "
		if r.Clashing {
			mark = "!"
		}
		fmt.Fprintf(w, "%s %-12s %-10s %s\n", mark, r.TimeRange, r.CourseID, r.Location)
	}
	fmt.Fprintf(w, "Printed rows: %d\n", len(rows))
}

func marshalPath(rows interface{}, path string) error {
	// Remove file if exists
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to replace %s: %w", path, err)
		}
	}

	out, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(rows, out); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func clashRows(clashes []model.Clash) []*model.ClashCSVRow {
	rows := make([]*model.ClashCSVRow, 0, len(clashes))
	for _, c := range clashes {
		rows = append(rows, &model.ClashCSVRow{
			Course1ID: c.Course1ID,
			Course2ID: c.Course2ID,
			Day:       c.Day,
			Time1:     c.Slot1.TimeRange,
			Location1: c.Slot1.Location,
			Time2:     c.Slot2.TimeRange,
			Location2: c.Slot2.Location,
		})
	}
	return rows
}

func recommendationRows(recs []model.Recommendation) []*model.RecommendationCSVRow {
	rows := make([]*model.RecommendationCSVRow, 0, len(recs))
	for i, r := range recs {
		rows = append(rows, &model.RecommendationCSVRow{
			Rank:     i + 1,
			CourseID: r.CourseID,
			Score:    r.Score,
			Reasons:  strings.Join(r.Reasons, " | "),
		})
	}
	return rows
}
