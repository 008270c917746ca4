package model

import "time"

// BidEstimate is a suggested bid for the next bidding round, in e$.
type BidEstimate struct {
	CourseID    string  `json:"courseId"`
	Min         int     `json:"min"`
	Recommended int     `json:"recommended"`
	Max         int     `json:"max"`
	FillRate    float64 `json:"fillRate"`
}

type Holiday struct {
	Date string `json:"date" yaml:"date"`
	Name string `json:"name" yaml:"name"`
}

type CareerPath struct {
	Name    string   `json:"name" yaml:"name"`
	Courses []string `json:"courses" yaml:"courses"`
}

// Deadline is a dated assessment of a course in the cart.
type Deadline struct {
	CourseID   string     `json:"courseId"`
	Assessment Assessment `json:"assessment"`
	Due        time.Time  `json:"due"`
	OnHoliday  bool       `json:"onHoliday"`
}

type CartSummary struct {
	Courses       int     `json:"courses"`
	TotalCredits  float64 `json:"totalCredits"`
	SUEligible    int     `json:"suEligible"`
	Clashes       int     `json:"clashes"`
	WeeklyMinutes int     `json:"weeklyMinutes"`
}
