package models

import "time"

// TeamMetrics holds the six normalized 0-100 sub-scores plus situational
// adjustments for one team in one game. Recomputed on every run.
type TeamMetrics struct {
	TeamID             int     `json:"teamId"`
	Strength           float64 `json:"strength"`
	OffensivePower     float64 `json:"offensivePower"`
	DefensivePower     float64 `json:"defensivePower"`
	InjuryImpact       float64 `json:"injuryImpact"` // 100 = no effect
	WeatherImpact      float64 `json:"weatherImpact"`
	ScheduleStrength   float64 `json:"scheduleStrength"`
	HomeFieldAdvantage float64 `json:"homeFieldAdvantage"`
	RestAdvantage      float64 `json:"restAdvantage"`
	Momentum           float64 `json:"momentum"`
	Overall            int     `json:"overall"`
}

// Confidence tiers derived from the probability gap.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Recommendation is the side the engine favors, if any.
type Recommendation string

const (
	RecommendAway Recommendation = "away"
	RecommendHome Recommendation = "home"
	RecommendNone Recommendation = "none"
)

// GamePrediction is the engine's output for one game. Probabilities are
// integers that always sum to exactly 100. Never mutated; a new run
// produces a new record.
type GamePrediction struct {
	GameID             int            `json:"gameId"`
	AwayTeamID         int            `json:"awayTeamId"`
	HomeTeamID         int            `json:"homeTeamId"`
	AwayWinProbability int            `json:"awayWinProbability"`
	HomeWinProbability int            `json:"homeWinProbability"`
	Confidence         Confidence     `json:"confidence"`
	Recommendation     Recommendation `json:"recommendation"`
	AwayMetrics        TeamMetrics    `json:"awayMetrics"`
	HomeMetrics        TeamMetrics    `json:"homeMetrics"`
	OverallMetrics     TeamMetrics    `json:"overallMetrics"` // element-wise average, display only
	Factors            []string       `json:"factors"`
	GeneratedAt        time.Time      `json:"generatedAt"`
	ModelVersion       string         `json:"modelVersion"`
}

// PhaseStatus is the outcome of one collection phase.
type PhaseStatus string

const (
	PhaseSuccess PhaseStatus = "success"
	PhasePartial PhaseStatus = "partial"
	PhaseFailed  PhaseStatus = "failed"
)

// PhaseResult records the outcome of one collection phase for
// observability and the persistence sink.
type PhaseResult struct {
	Phase     string        `json:"phase"`
	Status    PhaseStatus   `json:"status"`
	Processed int           `json:"processed"`
	Created   int           `json:"created"`
	Errors    []string      `json:"errors,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// CollectionRun bundles everything one run fetched, plus per-phase outcomes.
type CollectionRun struct {
	Season    Season                  `json:"season"`
	Week      int                     `json:"week"`
	Teams     []*Team                 `json:"teams"`
	Games     []*Game                 `json:"games"`
	Stats     []*TeamStats            `json:"stats"`
	Injuries  []*Injury               `json:"injuries"`
	Weather   map[int]*WeatherReading `json:"weather"` // keyed by game id; nil entries are legitimate absences
	Phases    []PhaseResult           `json:"phases"`
	StartedAt time.Time               `json:"startedAt"`
	Duration  time.Duration           `json:"duration"`
}
