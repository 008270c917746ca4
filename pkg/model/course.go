package model

import "strings"

// Demand is the categorical popularity label of a course.
type Demand string

const (
	DemandLow      Demand = "Low"
	DemandMedium   Demand = "Medium"
	DemandHigh     Demand = "High"
	DemandVeryHigh Demand = "Very High"
)

type Course struct {
	ID               string       `json:"id" yaml:"id"`
	Name             string       `json:"name" yaml:"name"`
	Credits          float64      `json:"credits" yaml:"credits"`
	Demand           Demand       `json:"demand" yaml:"demand"`
	Capacity         int          `json:"capacity" yaml:"capacity"`
	SubscriberCount  int          `json:"subscriberCount" yaml:"subscriberCount"`
	SUEligible       bool         `json:"suEligible" yaml:"suEligible"`
	Prerequisites    []string     `json:"prerequisites" yaml:"prerequisites"`
	Schedule         []Slot       `json:"schedule" yaml:"schedule"`
	Assessments      []Assessment `json:"assessments" yaml:"assessments"`
	BidHistory       []BidRecord  `json:"bidHistory" yaml:"bidHistory"`
	YearlyAverage    int          `json:"yearlyAverage" yaml:"yearlyAverage"`
	Difficulty       int          `json:"difficulty" yaml:"difficulty"`
	AfterClassRating float64      `json:"afterClassRating" yaml:"afterClassRating"`
	Tags             []string     `json:"tags" yaml:"tags"`
	Skills           []string     `json:"skills" yaml:"skills"`
	CareerPaths      []string     `json:"careerPaths" yaml:"careerPaths"`
}

// Slot is one weekly meeting of a course.
type Slot struct {
	Day       string `json:"day" yaml:"day"`
	TimeRange string `json:"timeRange" yaml:"timeRange"`
	Location  string `json:"location" yaml:"location"`
}

type Assessment struct {
	Type   string `json:"type" yaml:"type"`
	Date   string `json:"date" yaml:"date"`
	Weight int    `json:"weight" yaml:"weight"`
	Title  string `json:"title" yaml:"title"`
}

// BidRecord holds the bidding outcome of one past term.
type BidRecord struct {
	Term   string `json:"term" yaml:"term"`
	MinBid int    `json:"minBid" yaml:"minBid"`
	AvgBid int    `json:"avgBid" yaml:"avgBid"`
	MaxBid int    `json:"maxBid" yaml:"maxBid"`
}

// HasTag reports whether the course carries the given tag, ignoring case.
func (c *Course) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

type CourseCSV struct {
	ID               string  `csv:"course_id"`
	Name             string  `csv:"name"`
	Credits          float64 `csv:"credits"`
	Demand           string  `csv:"demand"`
	Capacity         int     `csv:"capacity"`
	SubscriberCount  int     `csv:"subscribers"`
	SUEligible       bool    `csv:"su_eligible"`
	Prerequisites    string  `csv:"prerequisites"`
	YearlyAverage    int     `csv:"yearly_average"`
	Difficulty       int     `csv:"difficulty"`
	AfterClassRating float64 `csv:"after_class_rating"`
	Tags             string  `csv:"tags"`
	Skills           string  `csv:"skills"`
	CareerPaths      string  `csv:"career_paths"`
}

type SlotCSV struct {
	CourseID  string `csv:"course_id"`
	Day       string `csv:"day"`
	TimeRange string `csv:"time_range"`
	Location  string `csv:"location"`
}

type AssessmentCSV struct {
	CourseID string `csv:"course_id"`
	Type     string `csv:"type"`
	Date     string `csv:"date"`
	Weight   int    `csv:"weight"`
	Title    string `csv:"title"`
}

type BidCSV struct {
	CourseID string `csv:"course_id"`
	Term     string `csv:"term"`
	MinBid   int    `csv:"min_bid"`
	AvgBid   int    `csv:"avg_bid"`
	MaxBid   int    `csv:"max_bid"`
}
