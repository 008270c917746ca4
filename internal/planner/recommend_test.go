package planner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/course-planner/pkg/model"
)

func testCatalog() []*model.Course {
	return []*model.Course{
		{ID: "IS111", Credits: 1, Difficulty: 3, Skills: []string{"Python", "Problem Solving"}, YearlyAverage: 40},
		{ID: "IS112", Credits: 1, Difficulty: 2, Skills: []string{"Data Management", "SQL"}, YearlyAverage: 45},
		{ID: "IS215", Credits: 1, Difficulty: 4, Skills: []string{"Python", "Web"}, Prerequisites: []string{"X999"}, YearlyAverage: 50},
		{ID: "IS216", Credits: 1, Difficulty: 3, Skills: []string{"Web Development"}, Prerequisites: []string{"IS111"}, YearlyAverage: 55},
		{ID: "COR1100", Credits: 1, Difficulty: 1, SUEligible: true, Tags: []string{"Project-based"}, YearlyAverage: 20, AfterClassRating: 4.7},
	}
}

func findRecommendation(recs []model.Recommendation, id string) (model.Recommendation, bool) {
	for _, r := range recs {
		if r.CourseID == id {
			return r, true
		}
	}
	return model.Recommendation{}, false
}

func TestRecommend_MatchingInterest(t *testing.T) {
	prefs := model.Preferences{Interests: []string{"programming"}}

	recs := Recommend(testCatalog(), nil, prefs)

	rec, ok := findRecommendation(recs, "IS111")
	require.True(t, ok)
	assert.Greater(t, rec.Score, 0.0)
	assert.Equal(t, 65.0, rec.Score)
	assert.Equal(t, []string{"Core programming foundation", "Builds Python programming skills"}, rec.Reasons)
	assert.NotContains(t, rec.Reasons, ReasonInCart)
}

func TestRecommend_CartCourseExcluded(t *testing.T) {
	catalog := testCatalog()
	cart := []*model.Course{catalog[1]}
	prefs := model.Preferences{Interests: []string{"data-analytics"}}

	recs := Recommend(catalog, cart, prefs)

	_, ok := findRecommendation(recs, "IS112")
	assert.False(t, ok)

	// Without the override the course would have scored well
	rec := DefaultRuleSet().Score(catalog[1], catalog, nil, prefs)
	assert.Equal(t, 65.0, rec.Score)
}

func TestScore_CartOverrideReplacesReasons(t *testing.T) {
	catalog := testCatalog()
	prefs := model.Preferences{Interests: []string{"programming"}, Constraints: []string{"low-competition"}}

	rec := DefaultRuleSet().Score(catalog[0], catalog, []*model.Course{catalog[0]}, prefs)

	assert.Equal(t, 0.0, rec.Score)
	assert.Equal(t, []string{ReasonInCart}, rec.Reasons)
}

func TestScore_MissingPrerequisitePenalised(t *testing.T) {
	catalog := testCatalog()
	prefs := model.Preferences{Interests: []string{"programming"}}
	rs := DefaultRuleSet()

	penalised := rs.Score(catalog[2], catalog, nil, prefs)

	withoutPrereq := *catalog[2]
	withoutPrereq.Prerequisites = nil
	unpenalised := rs.Score(&withoutPrereq, catalog, nil, prefs)

	assert.Less(t, penalised.Score, unpenalised.Score)
	assert.Equal(t, -20.0, penalised.Score)
	assert.Equal(t, ReasonPrerequisiteGap, penalised.Reasons[len(penalised.Reasons)-1])

	recs := Recommend(catalog, nil, prefs)
	_, ok := findRecommendation(recs, "IS215")
	assert.False(t, ok)
}

// A prerequisite anywhere in the catalog counts as met, even when the student
// has neither taken it nor added it to the cart.
func TestScore_PrerequisiteInCatalogCountsAsMet(t *testing.T) {
	catalog := testCatalog()
	prefs := model.Preferences{Interests: []string{"web"}}

	rec := DefaultRuleSet().Score(catalog[3], catalog, nil, prefs)

	assert.Equal(t, 30.0, rec.Score)
	assert.NotContains(t, rec.Reasons, ReasonPrerequisiteGap)
}

func TestScore_PrerequisiteInCartCountsAsMet(t *testing.T) {
	catalog := testCatalog()
	external := &model.Course{ID: "X999"}
	prefs := model.Preferences{Interests: []string{"programming"}}

	rec := DefaultRuleSet().Score(catalog[2], catalog, []*model.Course{external}, prefs)

	assert.Equal(t, 30.0, rec.Score)
}

func TestScore_GoalsUsePriorityWeights(t *testing.T) {
	catalog := testCatalog()
	easy := catalog[4]
	rs := DefaultRuleSet()

	tests := []struct {
		name  string
		prefs model.Preferences
		want  float64
	}{
		{"gpa at 70", model.Preferences{Goals: []string{"maximize-gpa"}, Priorities: model.Priorities{Academic: 70}}, 21},
		{"gpa at 0", model.Preferences{Goals: []string{"maximize-gpa"}}, 0},
		{"gpa above range", model.Preferences{Goals: []string{"maximize-gpa"}, Priorities: model.Priorities{Academic: 250}}, 30},
		{"skills at 40", model.Preferences{Goals: []string{"build-skills"}, Priorities: model.Priorities{Career: 40}}, 10},
		{"workload at 100", model.Preferences{Goals: []string{"minimize-workload"}, Priorities: model.Priorities{Balance: 100}}, 25},
		{"professors unweighted", model.Preferences{Goals: []string{"best-professors"}}, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := rs.Score(easy, catalog, nil, tt.prefs)
			assert.InDelta(t, tt.want, rec.Score, 1e-9)
		})
	}
}

func TestScore_Constraints(t *testing.T) {
	catalog := testCatalog()
	prefs := model.Preferences{Constraints: []string{"su-eligible", "project-based", "low-competition"}}

	rec := DefaultRuleSet().Score(catalog[4], catalog, nil, prefs)
	assert.Equal(t, 35.0, rec.Score)
	assert.Equal(t, []string{"S/U eligible", "Project-based assessment", "Historically low bidding competition"}, rec.Reasons)

	rec = DefaultRuleSet().Score(catalog[0], catalog, nil, prefs)
	assert.Equal(t, 0.0, rec.Score)
	assert.Empty(t, rec.Reasons)
}

func TestScore_UnselectedInterestsIgnored(t *testing.T) {
	catalog := testCatalog()
	prefs := model.Preferences{Interests: []string{"finance"}}

	rec := DefaultRuleSet().Score(catalog[0], catalog, nil, prefs)

	assert.Equal(t, 0.0, rec.Score)
	assert.Empty(t, rec.Reasons)
}

func TestScore_CourseWithoutOptionalFields(t *testing.T) {
	bare := &model.Course{ID: "BARE"}
	prefs := model.Preferences{
		Interests:   []string{"programming", "ai", "web"},
		Goals:       []string{"build-skills", "best-professors"},
		Constraints: []string{"project-based", "su-eligible"},
		Priorities:  model.Priorities{Academic: 50, Career: 50, Balance: 50},
	}

	rec := DefaultRuleSet().Score(bare, []*model.Course{bare}, nil, prefs)

	assert.Equal(t, 0.0, rec.Score)
	assert.NotNil(t, rec.Reasons)
}

func TestRecommend_SortedAndLimited(t *testing.T) {
	var catalog []*model.Course
	for i := 0; i < 12; i++ {
		catalog = append(catalog, &model.Course{
			ID:            fmt.Sprintf("C%02d", i),
			Difficulty:    1 + i%5,
			SUEligible:    i%2 == 0,
			YearlyAverage: 10 * i,
			Skills:        []string{[]string{"Python", "Machine Learning", "Security"}[i%3]},
		})
	}
	prefs := model.Preferences{
		Interests:   []string{"programming", "ai"},
		Goals:       []string{"maximize-gpa"},
		Constraints: []string{"su-eligible", "low-competition"},
		Priorities:  model.Priorities{Academic: 80},
	}

	recs := Recommend(catalog, nil, prefs)

	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), DefaultRecommendationLimit)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
	}
	for _, r := range recs {
		assert.Greater(t, r.Score, 0.0)
	}
}

func TestRecommend_TiesKeepCatalogOrder(t *testing.T) {
	catalog := []*model.Course{
		{ID: "Z1", SUEligible: true},
		{ID: "A1", SUEligible: true},
		{ID: "M1", SUEligible: true},
	}
	prefs := model.Preferences{Constraints: []string{"su-eligible"}}

	recs := Recommend(catalog, nil, prefs)

	require.Len(t, recs, 3)
	assert.Equal(t, "Z1", recs[0].CourseID)
	assert.Equal(t, "A1", recs[1].CourseID)
	assert.Equal(t, "M1", recs[2].CourseID)
}

func TestRecommend_Idempotent(t *testing.T) {
	catalog := testCatalog()
	cart := []*model.Course{catalog[1]}
	prefs := model.Preferences{
		Interests:   []string{"programming", "web"},
		Goals:       []string{"maximize-gpa", "best-professors"},
		Constraints: []string{"su-eligible"},
		Priorities:  model.Priorities{Academic: 60, Career: 30, Balance: 10},
	}

	first := Recommend(catalog, cart, prefs)
	second := Recommend(catalog, cart, prefs)

	assert.Equal(t, first, second)
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	recs := Recommend(nil, nil, model.Preferences{Interests: []string{"programming"}})
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommend_CustomLimit(t *testing.T) {
	rs := DefaultRuleSet()
	rs.Limit = 1
	prefs := model.Preferences{Interests: []string{"programming"}, Constraints: []string{"su-eligible"}}

	recs := rs.Recommend(testCatalog(), nil, prefs)

	require.Len(t, recs, 1)
	assert.Equal(t, "IS111", recs[0].CourseID)
}
