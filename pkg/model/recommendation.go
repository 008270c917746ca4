package model

// Priorities weight the goal rules, each on a 0..100 scale.
type Priorities struct {
	Academic int `json:"academic" yaml:"academic" koanf:"academic" binding:"gte=0,lte=100"`
	Career   int `json:"career" yaml:"career" koanf:"career" binding:"gte=0,lte=100"`
	Balance  int `json:"balance" yaml:"balance" koanf:"balance" binding:"gte=0,lte=100"`
}

// Preferences is what the student selected on the recommendation form.
type Preferences struct {
	Interests   []string   `json:"interests"`
	Goals       []string   `json:"goals"`
	Constraints []string   `json:"constraints"`
	Priorities  Priorities `json:"priorities"`
}

type Recommendation struct {
	CourseID string   `json:"courseId"`
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons"`
}

type RecommendationCSVRow struct {
	Rank     int     `csv:"rank"`
	CourseID string  `csv:"course_id"`
	Score    float64 `csv:"score"`
	Reasons  string  `csv:"reasons"`
}
