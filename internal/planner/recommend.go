package planner

import (
	"sort"

	"github.com/rhyrak/course-planner/pkg/model"
)

// Recommend ranks the catalog with the default rule table.
func Recommend(catalog []*model.Course, cart []*model.Course, prefs model.Preferences) []model.Recommendation {
	return DefaultRuleSet().Recommend(catalog, cart, prefs)
}

// Recommend scores every catalog course, drops scores <= 0 and returns the
// best rs.Limit courses ordered by score. Ties keep catalog order.
func (rs *RuleSet) Recommend(catalog []*model.Course, cart []*model.Course, prefs model.Preferences) []model.Recommendation {
	recommendations := []model.Recommendation{}
	for _, course := range catalog {
		if course == nil {
			continue
		}
		rec := rs.Score(course, catalog, cart, prefs)
		if rec.Score > 0 {
			recommendations = append(recommendations, rec)
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	limit := rs.Limit
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}
	return recommendations
}

// Score evaluates every rule against a single course. Reasons follow rule
// order. A course already in the cart always ends with score 0.
func (rs *RuleSet) Score(course *model.Course, catalog []*model.Course, cart []*model.Course, prefs model.Preferences) model.Recommendation {
	rec := model.Recommendation{CourseID: course.ID, Reasons: []string{}}

	for _, r := range rs.Interests {
		if containsFold(prefs.Interests, r.Interest) && r.Matches(course) {
			rec.Score += r.Points
			rec.Reasons = append(rec.Reasons, r.Reason)
		}
	}
	for _, r := range rs.Goals {
		if containsFold(prefs.Goals, r.Key) && r.Matches(course) {
			rec.Score += r.points(prefs.Priorities)
			rec.Reasons = append(rec.Reasons, r.Reason)
		}
	}
	for _, r := range rs.Constraints {
		if containsFold(prefs.Constraints, r.Key) && r.Matches(course) {
			rec.Score += r.points(prefs.Priorities)
			rec.Reasons = append(rec.Reasons, r.Reason)
		}
	}

	if !prerequisitesAvailable(course, catalog, cart) {
		rec.Score -= rs.PrerequisitePenalty
		rec.Reasons = append(rec.Reasons, ReasonPrerequisiteGap)
	}

	if inCourses(course.ID, cart) {
		rec.Score = 0
		rec.Reasons = []string{ReasonInCart}
	}
	return rec
}

// prerequisitesAvailable treats a prerequisite as met when it is in the cart
// or anywhere in the catalog.
// TODO: check completed courses once transcripts are loaded alongside the catalog.
func prerequisitesAvailable(course *model.Course, catalog []*model.Course, cart []*model.Course) bool {
	for _, p := range course.Prerequisites {
		if !inCourses(p, cart) && !inCourses(p, catalog) {
			return false
		}
	}
	return true
}

func inCourses(id string, courses []*model.Course) bool {
	for _, c := range courses {
		if c != nil && c.ID == id {
			return true
		}
	}
	return false
}
