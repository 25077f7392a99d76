package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/personagni/internal/analysis"
)

// Inputs records which files a run read.
type Inputs struct {
	PersonalityFile string `json:"personality_file"`
	GNIFile         string `json:"gni_file"`
	MatchMode       string `json:"match_mode"`
}

// Summary is everything a pipeline run produced, ready for rendering.
type Summary struct {
	RunID       string                         `json:"run_id"`
	GeneratedAt time.Time                      `json:"generated_at"`
	Inputs      Inputs                         `json:"inputs"`
	Countries   []string                       `json:"countries"`
	Aggregates  []analysis.CountryAggregate    `json:"aggregates"`
	GNI         analysis.GNIExtremes           `json:"gni_extremes"`
	Personality []analysis.PersonalityExtremes `json:"personality"`
	Predictor   string                         `json:"predictor"`
	Fit         *analysis.Fit                  `json:"fit,omitempty"`
	FitSkipped  string                         `json:"fit_skipped,omitempty"`
	Charts      []string                       `json:"charts,omitempty"`
}

// NewSummary stamps a pipeline result with a fresh run id.
func NewSummary(res *analysis.Result, in Inputs) *Summary {
	s := &Summary{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Inputs:      in,
		Countries:   res.Countries,
		Aggregates:  res.Aggregates,
		GNI:         res.GNI,
		Personality: res.Personality,
		Predictor:   res.Predictor(),
		Fit:         res.Fit,
	}
	if res.FitErr != nil {
		s.FitSkipped = res.FitErr.Error()
	}
	return s
}
