package planner

import (
	"strings"

	"github.com/rhyrak/course-planner/pkg/model"
)

type placedSlot struct {
	course *model.Course
	slot   model.Slot
	start  int
	end    int
}

// DetectClashes returns every pair of overlapping slots that belong to
// different courses and meet on the same day.
// Slots without a day or with a malformed time range are skipped.
func DetectClashes(courses []*model.Course) []model.Clash {
	clashes := []model.Clash{}

	// Days keep the order in which they were first seen so output is stable
	var days []string
	byDay := make(map[string][]placedSlot)
	for _, c := range courses {
		if c == nil {
			continue
		}
		for _, s := range c.Schedule {
			day := strings.ToLower(strings.TrimSpace(s.Day))
			if day == "" {
				continue
			}
			start, end, ok := ParseTimeRange(s.TimeRange)
			if !ok {
				continue
			}
			if _, seen := byDay[day]; !seen {
				days = append(days, day)
			}
			byDay[day] = append(byDay[day], placedSlot{course: c, slot: s, start: start, end: end})
		}
	}

	for _, day := range days {
		slots := byDay[day]
		for i := 0; i < len(slots); i++ {
			for j := i + 1; j < len(slots); j++ {
				a, b := slots[i], slots[j]
				// A course never clashes with itself, even if it was added twice
				if a.course.ID == b.course.ID {
					continue
				}
				if a.start < b.end && a.end > b.start {
					clashes = append(clashes, model.Clash{
						Course1ID: a.course.ID,
						Course2ID: b.course.ID,
						Day:       strings.TrimSpace(a.slot.Day),
						Slot1:     a.slot,
						Slot2:     b.slot,
					})
				}
			}
		}
	}
	return clashes
}

// Overlaps reports whether two slots meet on the same day at overlapping times.
func Overlaps(a model.Slot, b model.Slot) bool {
	if !strings.EqualFold(strings.TrimSpace(a.Day), strings.TrimSpace(b.Day)) {
		return false
	}
	s1, e1, ok := ParseTimeRange(a.TimeRange)
	if !ok {
		return false
	}
	s2, e2, ok := ParseTimeRange(b.TimeRange)
	if !ok {
		return false
	}
	return s1 < e2 && e1 > s2
}
