package planner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rhyrak/course-planner/pkg/model"
)

const (
	DefaultRecommendationLimit = 6
	DefaultPrerequisitePenalty = 50.0

	ReasonInCart          = "Already in cart"
	ReasonPrerequisiteGap = "Prerequisites not met"
)

// Priority names accepted in CourseRule.Weight.
const (
	PriorityAcademic = "academic"
	PriorityCareer   = "career"
	PriorityBalance  = "balance"
)

// InterestRule awards Points when Interest is selected and the course either
// has id CourseID or lists a skill containing Skill.
type InterestRule struct {
	Interest string  `yaml:"interest"`
	CourseID string  `yaml:"courseId,omitempty"`
	Skill    string  `yaml:"skill,omitempty"`
	Points   float64 `yaml:"points"`
	Reason   string  `yaml:"reason"`
}

// Matches reports whether the course satisfies the rule predicate.
func (r InterestRule) Matches(c *model.Course) bool {
	if r.CourseID != "" && c.ID == r.CourseID {
		return true
	}
	if r.Skill == "" {
		return false
	}
	needle := strings.ToLower(r.Skill)
	for _, s := range c.Skills {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// CourseRule is a goal or constraint rule. Every non-zero condition field
// must hold for the rule to fire. Weight names the priority that scales
// Points; an empty Weight awards Points as is.
type CourseRule struct {
	Key                string   `yaml:"key"`
	Points             float64  `yaml:"points"`
	Weight             string   `yaml:"weight,omitempty"`
	MaxDifficulty      int      `yaml:"maxDifficulty,omitempty"`
	MaxCredits         float64  `yaml:"maxCredits,omitempty"`
	MinRating          float64  `yaml:"minRating,omitempty"`
	YearlyAverageBelow int      `yaml:"yearlyAverageBelow,omitempty"`
	RequireSU          bool     `yaml:"requireSU,omitempty"`
	AnyTag             []string `yaml:"anyTag,omitempty"`
	Reason             string   `yaml:"reason"`
}

func (r CourseRule) Matches(c *model.Course) bool {
	if r.MaxDifficulty > 0 && (c.Difficulty <= 0 || c.Difficulty > r.MaxDifficulty) {
		return false
	}
	if r.MaxCredits > 0 && c.Credits > r.MaxCredits {
		return false
	}
	if r.MinRating > 0 && c.AfterClassRating < r.MinRating {
		return false
	}
	if r.YearlyAverageBelow > 0 && c.YearlyAverage >= r.YearlyAverageBelow {
		return false
	}
	if r.RequireSU && !c.SUEligible {
		return false
	}
	if len(r.AnyTag) > 0 {
		tagged := false
		for _, t := range r.AnyTag {
			if c.HasTag(t) {
				tagged = true
				break
			}
		}
		if !tagged {
			return false
		}
	}
	return true
}

// points returns the awarded points, scaled by the weighted priority.
func (r CourseRule) points(p model.Priorities) float64 {
	var weight int
	switch strings.ToLower(r.Weight) {
	case "":
		return r.Points
	case PriorityAcademic:
		weight = p.Academic
	case PriorityCareer:
		weight = p.Career
	case PriorityBalance:
		weight = p.Balance
	default:
		return 0
	}
	weight = max(0, min(100, weight))
	return r.Points * float64(weight) / 100
}

// RuleSet is the ordered table the recommender evaluates.
type RuleSet struct {
	Interests           []InterestRule `yaml:"interests"`
	Goals               []CourseRule   `yaml:"goals"`
	Constraints         []CourseRule   `yaml:"constraints"`
	PrerequisitePenalty float64        `yaml:"prerequisitePenalty"`
	Limit               int            `yaml:"limit"`
}

func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Interests: []InterestRule{
			{Interest: "programming", CourseID: "IS111", Points: 35, Reason: "Core programming foundation"},
			{Interest: "programming", Skill: "Python", Points: 30, Reason: "Builds Python programming skills"},
			{Interest: "data-analytics", CourseID: "IS112", Points: 35, Reason: "Foundation for data management"},
			{Interest: "data-analytics", Skill: "Data", Points: 30, Reason: "Develops data analysis skills"},
			{Interest: "ai", Skill: "Machine Learning", Points: 35, Reason: "Covers machine learning techniques"},
			{Interest: "cybersecurity", Skill: "Security", Points: 30, Reason: "Builds security expertise"},
			{Interest: "web", Skill: "Web", Points: 30, Reason: "Hands-on web development"},
			{Interest: "finance", Skill: "Finance", Points: 30, Reason: "Relevant to finance careers"},
			{Interest: "design", Skill: "UX", Points: 30, Reason: "Strengthens user experience design"},
		},
		Goals: []CourseRule{
			{Key: "maximize-gpa", Points: 30, Weight: PriorityAcademic, MaxDifficulty: 2, Reason: "Manageable difficulty supports your GPA"},
			{Key: "build-skills", Points: 25, Weight: PriorityCareer, AnyTag: []string{"Project-based", "Hands-on"}, Reason: "Practical, skill-building coursework"},
			{Key: "minimize-workload", Points: 25, Weight: PriorityBalance, MaxDifficulty: 2, MaxCredits: 1, Reason: "Light workload"},
			{Key: "best-professors", Points: 20, MinRating: 4.5, Reason: "Highly rated by past students"},
		},
		Constraints: []CourseRule{
			{Key: "su-eligible", Points: 15, RequireSU: true, Reason: "S/U eligible"},
			{Key: "project-based", Points: 10, AnyTag: []string{"Project-based"}, Reason: "Project-based assessment"},
			{Key: "low-competition", Points: 10, YearlyAverageBelow: 35, Reason: "Historically low bidding competition"},
		},
		PrerequisitePenalty: DefaultPrerequisitePenalty,
		Limit:               DefaultRecommendationLimit,
	}
}

// LoadRuleSet reads a YAML rule table from path.
func LoadRuleSet(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rule file %s: %w", path, err)
	}
	defer f.Close()
	return ParseRuleSet(f)
}

// ParseRuleSet decodes a YAML rule table. Missing penalty and limit fall back
// to the defaults.
func ParseRuleSet(r io.Reader) (*RuleSet, error) {
	rs := &RuleSet{}
	if err := yaml.NewDecoder(r).Decode(rs); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode rule file: %w", err)
	}
	if rs.PrerequisitePenalty == 0 {
		rs.PrerequisitePenalty = DefaultPrerequisitePenalty
	}
	if rs.Limit <= 0 {
		rs.Limit = DefaultRecommendationLimit
	}
	for i, r := range rs.Interests {
		if r.Interest == "" {
			return nil, fmt.Errorf("interest rule %d: missing interest", i)
		}
		if r.CourseID == "" && r.Skill == "" {
			return nil, fmt.Errorf("interest rule %d (%s): needs courseId or skill", i, r.Interest)
		}
	}
	for i, r := range append(append([]CourseRule{}, rs.Goals...), rs.Constraints...) {
		if r.Key == "" {
			return nil, fmt.Errorf("course rule %d: missing key", i)
		}
		switch strings.ToLower(r.Weight) {
		case "", PriorityAcademic, PriorityCareer, PriorityBalance:
		default:
			return nil, fmt.Errorf("course rule %s: unknown weight %q", r.Key, r.Weight)
		}
	}
	return rs, nil
}
