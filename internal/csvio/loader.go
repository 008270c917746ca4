package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rhyrak/course-planner/internal/catalog"
	"github.com/rhyrak/course-planner/internal/logging"
	"github.com/rhyrak/course-planner/internal/planner"
	"github.com/rhyrak/course-planner/pkg/model"
)

// Separator of list values inside a single CSV cell.
const listSeparator = "|"

var demands = []model.Demand{model.DemandLow, model.DemandMedium, model.DemandHigh, model.DemandVeryHigh}

// LoadCatalog reads the courses file and joins the optional slot, assessment
// and bid files onto it by course id. Rows that cannot be joined are skipped
// and described in the returned report.
func LoadCatalog(cfg *planner.Configuration, delim rune) (*catalog.Catalog, string, error) {
	setReader(delim)

	var reportString string

	_courses := []*model.CourseCSV{}
	if err := unmarshalPath(cfg.CoursesFile, &_courses); err != nil {
		return nil, reportString, err
	}

	courses := make([]*model.Course, 0, len(_courses))
	byID := make(map[string]*model.Course, len(_courses))
	for i, c := range _courses {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			reportString += fmt.Sprintf("Course row %d has no course_id and was skipped.\n", i+1)
			continue
		}
		if _, dup := byID[id]; dup {
			reportString += "Duplicate course " + id + " was skipped.\n"
			continue
		}
		demand, ok := parseDemand(c.Demand)
		if !ok {
			reportString += "Course " + id + " has unknown demand \"" + c.Demand + "\".\n"
		}
		course := &model.Course{
			ID:               id,
			Name:             c.Name,
			Credits:          c.Credits,
			Demand:           demand,
			Capacity:         c.Capacity,
			SubscriberCount:  c.SubscriberCount,
			SUEligible:       c.SUEligible,
			Prerequisites:    splitList(c.Prerequisites),
			YearlyAverage:    c.YearlyAverage,
			Difficulty:       c.Difficulty,
			AfterClassRating: c.AfterClassRating,
			Tags:             splitList(c.Tags),
			Skills:           splitList(c.Skills),
			CareerPaths:      splitList(c.CareerPaths),
		}
		byID[id] = course
		courses = append(courses, course)
	}

	if cfg.SlotsFile != "" {
		_slots := []*model.SlotCSV{}
		if err := unmarshalPath(cfg.SlotsFile, &_slots); err != nil {
			return nil, reportString, err
		}
		for i, s := range _slots {
			c, ok := byID[strings.TrimSpace(s.CourseID)]
			if !ok {
				reportString += fmt.Sprintf("Slot row %d references unknown course %s.\n", i+1, s.CourseID)
				continue
			}
			if _, _, ok := planner.ParseTimeRange(s.TimeRange); !ok {
				reportString += fmt.Sprintf("Slot row %d of %s has invalid time range %q.\n", i+1, c.ID, s.TimeRange)
			}
			c.Schedule = append(c.Schedule, model.Slot{Day: s.Day, TimeRange: s.TimeRange, Location: s.Location})
		}
	}

	if cfg.AssessmentsFile != "" {
		_assessments := []*model.AssessmentCSV{}
		if err := unmarshalPath(cfg.AssessmentsFile, &_assessments); err != nil {
			return nil, reportString, err
		}
		for i, a := range _assessments {
			c, ok := byID[strings.TrimSpace(a.CourseID)]
			if !ok {
				reportString += fmt.Sprintf("Assessment row %d references unknown course %s.\n", i+1, a.CourseID)
				continue
			}
			c.Assessments = append(c.Assessments, model.Assessment{Type: a.Type, Date: a.Date, Weight: a.Weight, Title: a.Title})
		}
	}

	if cfg.BidsFile != "" {
		_bids := []*model.BidCSV{}
		if err := unmarshalPath(cfg.BidsFile, &_bids); err != nil {
			return nil, reportString, err
		}
		// Rows are expected most recent term first per course
		for i, b := range _bids {
			c, ok := byID[strings.TrimSpace(b.CourseID)]
			if !ok {
				reportString += fmt.Sprintf("Bid row %d references unknown course %s.\n", i+1, b.CourseID)
				continue
			}
			c.BidHistory = append(c.BidHistory, model.BidRecord{Term: b.Term, MinBid: b.MinBid, AvgBid: b.AvgBid, MaxBid: b.MaxBid})
		}
	}

	cat, err := catalog.New(courses, nil, nil)
	if err != nil {
		return nil, reportString, err
	}

	logging.Debug().
		Str("courses_file", cfg.CoursesFile).
		Int("courses", cat.Len()).
		Bool("clean", reportString == "").
		Msg("loaded catalog from csv")

	return cat, reportString, nil
}

func setReader(delim rune) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		r.TrimLeadingSpace = true
		return r
	})
}

func unmarshalPath(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.UnmarshalFile(f, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func splitList(cell string) []string {
	var values []string
	for _, v := range strings.Split(cell, listSeparator) {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func parseDemand(s string) (model.Demand, bool) {
	s = strings.TrimSpace(s)
	for _, d := range demands {
		if strings.EqualFold(s, string(d)) {
			return d, true
		}
	}
	return model.Demand(s), false
}
