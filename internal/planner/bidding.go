package planner

import (
	"math"

	"github.com/rhyrak/course-planner/pkg/model"
)

// Number of most recent terms averaged for the bid baseline.
const bidHistoryTerms = 3

var demandFactor = map[model.Demand]float64{
	model.DemandLow:      0.8,
	model.DemandMedium:   1.0,
	model.DemandHigh:     1.2,
	model.DemandVeryHigh: 1.4,
}

// EstimateBid suggests a bid for the next round from the course's recent bid
// history, its demand label and how oversubscribed it is.
func EstimateBid(course *model.Course) model.BidEstimate {
	estimate := model.BidEstimate{CourseID: course.ID}
	if course.Capacity > 0 {
		estimate.FillRate = float64(course.SubscriberCount) / float64(course.Capacity)
	}

	base := float64(course.YearlyAverage)
	var sum, n int
	for _, b := range course.BidHistory {
		if n == bidHistoryTerms {
			break
		}
		if b.AvgBid > 0 {
			sum += b.AvgBid
			n++
		}
	}
	if n > 0 {
		base = float64(sum) / float64(n)
	}

	factor, ok := demandFactor[course.Demand]
	if !ok {
		factor = 1.0
	}
	if course.Capacity > 0 && course.SubscriberCount > course.Capacity {
		factor *= 1.1
	}
	estimate.Recommended = int(math.Round(base * factor))

	if len(course.BidHistory) > 0 {
		estimate.Min = course.BidHistory[0].MinBid
	}
	for _, b := range course.BidHistory {
		estimate.Max = max(estimate.Max, b.MaxBid)
	}
	if estimate.Max == 0 {
		estimate.Max = estimate.Recommended
	}
	return estimate
}
