package planner

import (
	"sort"
	"strings"

	"github.com/rhyrak/course-planner/pkg/model"
)

var weekdayIndex = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

// Summarize totals credits and weekly contact time of the cart.
func Summarize(cart []*model.Course) model.CartSummary {
	var summary model.CartSummary
	for _, c := range cart {
		if c == nil {
			continue
		}
		summary.Courses++
		summary.TotalCredits += c.Credits
		if c.SUEligible {
			summary.SUEligible++
		}
		for _, s := range c.Schedule {
			if start, end, ok := ParseTimeRange(s.TimeRange); ok && strings.TrimSpace(s.Day) != "" {
				summary.WeeklyMinutes += end - start
			}
		}
	}
	summary.Clashes = len(DetectClashes(cart))
	return summary
}

// Timetable flattens the cart into rows ordered by weekday and start time.
// Rows taking part in a clash are flagged.
func Timetable(cart []*model.Course) []model.TimetableRow {
	type row struct {
		model.TimetableRow
		day   int
		start int
	}
	var rows []row
	for _, c := range cart {
		if c == nil {
			continue
		}
		for _, s := range c.Schedule {
			start, _, ok := ParseTimeRange(s.TimeRange)
			day := strings.TrimSpace(s.Day)
			if !ok || day == "" {
				continue
			}
			idx, known := weekdayIndex[strings.ToLower(day)]
			if !known {
				idx = len(weekdayIndex)
			}
			rows = append(rows, row{
				TimetableRow: model.TimetableRow{Day: day, TimeRange: s.TimeRange, CourseID: c.ID, Location: s.Location},
				day:          idx,
				start:        start,
			})
		}
	}

	clashing := make(map[string]bool)
	for _, c := range DetectClashes(cart) {
		clashing[slotKey(c.Course1ID, c.Slot1)] = true
		clashing[slotKey(c.Course2ID, c.Slot2)] = true
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].day != rows[j].day {
			return rows[i].day < rows[j].day
		}
		return rows[i].start < rows[j].start
	})

	timetable := make([]model.TimetableRow, 0, len(rows))
	for _, r := range rows {
		r.Clashing = clashing[slotKey(r.CourseID, model.Slot{Day: r.Day, TimeRange: r.TimeRange, Location: r.Location})]
		timetable = append(timetable, r.TimetableRow)
	}
	return timetable
}

func slotKey(courseID string, s model.Slot) string {
	return courseID + "|" + strings.ToLower(strings.TrimSpace(s.Day)) + "|" + s.TimeRange
}
