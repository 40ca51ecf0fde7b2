package model

import "time"

// RoadmapEntry is one offering in the composed roadmap. Relevance is the
// score normalized against the top score of the whole result set, and
// Expanded marks entries presented in full detail by default.
type RoadmapEntry struct {
	Offering  Offering `json:"offering"`
	Score     int      `json:"score"`
	Relevance int      `json:"relevance"` // 0-100
	Expanded  bool     `json:"expanded"`
}

// SubGroup collects a phase's offerings sharing a sub-category. Groups
// are ordered by MaxScore, descending.
type SubGroup struct {
	SubCategory string         `json:"subCategory"`
	MaxScore    int            `json:"maxScore"`
	Offerings   []RoadmapEntry `json:"offerings"`
}

// PhaseGroup is one phase of the roadmap. Phases with no offerings are
// omitted entirely.
type PhaseGroup struct {
	Phase  Phase      `json:"phase"`
	Groups []SubGroup `json:"groups"`
}

// Roadmap is the full derived recommendation for a submission. It is
// never authoritative state: it must always be reproducible from the
// answers, the decision matrix and the offering catalog.
type Roadmap struct {
	SubmissionID string       `json:"submissionId"`
	MaxScore     int          `json:"maxScore"`
	Phases       []PhaseGroup `json:"phases"`
	GeneratedAt  time.Time    `json:"generatedAt"`
}
