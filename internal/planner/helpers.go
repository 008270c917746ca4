package planner

import (
	"strconv"
	"strings"
	"time"
)

type Configuration struct {
	CatalogFile         string
	CoursesFile         string
	SlotsFile           string
	AssessmentsFile     string
	BidsFile            string
	RulesFile           string
	ExportFile          string
	MaxCredits          float64
	RecommendationLimit int
	DeadlineWindow      time.Duration
	BusyWeekThreshold   int
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		CatalogFile:         "./res/catalog.yaml",
		CoursesFile:         "./res/csv/courses.csv",
		SlotsFile:           "./res/csv/slots.csv",
		AssessmentsFile:     "./res/csv/assessments.csv",
		BidsFile:            "./res/csv/bids.csv",
		RulesFile:           "",
		ExportFile:          "recommendations.csv",
		MaxCredits:          5.0,
		RecommendationLimit: 6,
		DeadlineWindow:      14 * 24 * time.Hour,
		BusyWeekThreshold:   3,
	}
}

// ParseTimeRange converts "HH:MM-HH:MM" into minute offsets from midnight.
// ok is false for malformed ranges and for ranges that do not end after they start.
func ParseTimeRange(timeRange string) (start int, end int, ok bool) {
	from, to, found := strings.Cut(timeRange, "-")
	if !found {
		return 0, 0, false
	}
	start, ok = parseClock(from)
	if !ok {
		return 0, 0, false
	}
	end, ok = parseClock(to)
	if !ok || end <= start {
		return 0, 0, false
	}
	return start, end, true
}

func parseClock(s string) (int, bool) {
	hh, mm, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 24 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func containsFold(s []string, e string) bool {
	for _, a := range s {
		if strings.EqualFold(strings.TrimSpace(a), e) {
			return true
		}
	}
	return false
}
