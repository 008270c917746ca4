package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rhyrak/course-planner/pkg/model"
)

const DateLayout = "2006-01-02"

// UpcomingDeadlines lists the assessments of the given courses that fall in
// [from, from+window), ordered by date then course id. from is truncated to
// its calendar day. Assessments with unparseable dates are skipped.
func UpcomingDeadlines(courses []*model.Course, holidays []model.Holiday, from time.Time, window time.Duration) []model.Deadline {
	deadlines := []model.Deadline{}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(window)

	offDays := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		if d, err := time.Parse(DateLayout, strings.TrimSpace(h.Date)); err == nil {
			offDays[d.Format(DateLayout)] = true
		}
	}

	for _, c := range courses {
		if c == nil {
			continue
		}
		for _, a := range c.Assessments {
			due, err := time.Parse(DateLayout, strings.TrimSpace(a.Date))
			if err != nil {
				continue
			}
			if due.Before(start) || !due.Before(end) {
				continue
			}
			deadlines = append(deadlines, model.Deadline{
				CourseID:   c.ID,
				Assessment: a,
				Due:        due,
				OnHoliday:  offDays[due.Format(DateLayout)],
			})
		}
	}

	sort.SliceStable(deadlines, func(i, j int) bool {
		if !deadlines[i].Due.Equal(deadlines[j].Due) {
			return deadlines[i].Due.Before(deadlines[j].Due)
		}
		return deadlines[i].CourseID < deadlines[j].CourseID
	})
	return deadlines
}

// BusyWeeks returns the ISO weeks ("2025-W09") holding at least threshold
// deadlines, in chronological order.
func BusyWeeks(deadlines []model.Deadline, threshold int) []string {
	counts := make(map[string]int)
	var weeks []string
	for _, d := range deadlines {
		year, week := d.Due.ISOWeek()
		key := fmt.Sprintf("%d-W%02d", year, week)
		if _, seen := counts[key]; !seen {
			weeks = append(weeks, key)
		}
		counts[key]++
	}
	sort.Strings(weeks)

	busy := []string{}
	for _, w := range weeks {
		if counts[w] >= threshold {
			busy = append(busy, w)
		}
	}
	return busy
}
