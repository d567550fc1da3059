package usecase

import (
	"testing"
	"time"

	"github.com/customD73/picker2/internal/domain/models"
	"github.com/customD73/picker2/pkg/logger"
)

type noopMetrics struct{}

func (noopMetrics) RecordProviderCall(string, string, string, float64) {}
func (noopMetrics) RecordQueueDepth(string, int)                       {}
func (noopMetrics) RecordPhase(string, string, float64)                {}
func (noopMetrics) RecordPrediction(string)                            {}
func (noopMetrics) RecordError(string)                                 {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func scenarioTeams() map[int]*models.Team {
	return map[int]*models.Team{
		1: {ID: 1, Name: "Raptors", Abbreviation: "RAP"},
		2: {ID: 2, Name: "Bisons", Abbreviation: "BIS"},
	}
}

func scenarioStats() map[int]*models.TeamStats {
	return map[int]*models.TeamStats{
		1: {TeamID: 1, GamesPlayed: 12, Wins: 10, Losses: 2, PointsFor: 300, PointsAgainst: 200},
		2: {TeamID: 2, GamesPlayed: 12, Wins: 4, Losses: 8, PointsFor: 220, PointsAgainst: 260},
	}
}

func TestPredictGameEndToEnd(t *testing.T) {
	p := NewPredictor(noopMetrics{}, testLogger(t))
	game := &models.Game{ID: 7, AwayTeamID: 1, HomeTeamID: 2, Kickoff: time.Now()}

	pred, err := p.PredictGame(game, scenarioTeams(), scenarioStats(), nil, nil)
	if err != nil {
		t.Fatalf("PredictGame: %v", err)
	}

	if pred.AwayWinProbability+pred.HomeWinProbability != 100 {
		t.Fatalf("probabilities must sum to 100, got %d+%d",
			pred.AwayWinProbability, pred.HomeWinProbability)
	}
	if pred.AwayWinProbability <= pred.HomeWinProbability {
		t.Fatalf("expected the stronger away team favored, got %d vs %d",
			pred.AwayWinProbability, pred.HomeWinProbability)
	}
	if pred.Confidence == models.ConfidenceLow {
		t.Fatalf("expected at least medium confidence, got %s", pred.Confidence)
	}
	if pred.Recommendation != models.RecommendAway {
		t.Fatalf("expected away recommendation, got %s", pred.Recommendation)
	}
	if pred.ModelVersion != ModelVersion {
		t.Fatalf("missing model version tag")
	}
	if pred.HomeMetrics.HomeFieldAdvantage != homeFieldBonus || pred.AwayMetrics.HomeFieldAdvantage != 0 {
		t.Fatalf("home-field bonus misapplied: away=%v home=%v",
			pred.AwayMetrics.HomeFieldAdvantage, pred.HomeMetrics.HomeFieldAdvantage)
	}
	if len(pred.Factors) == 0 {
		t.Fatalf("expected explanatory factors")
	}
}

func TestConfidenceThresholdsExact(t *testing.T) {
	cases := []struct {
		gap  int
		want models.Confidence
	}{
		{25, models.ConfidenceHigh},
		{26, models.ConfidenceHigh},
		{15, models.ConfidenceMedium},
		{24, models.ConfidenceMedium},
		{14, models.ConfidenceLow},
		{0, models.ConfidenceLow},
	}
	for _, c := range cases {
		if got := confidenceFor(c.gap); got != c.want {
			t.Fatalf("gap %d: got %s want %s", c.gap, got, c.want)
		}
	}
}

func TestProbabilitiesAlwaysSumTo100(t *testing.T) {
	p := NewPredictor(noopMetrics{}, testLogger(t))
	game := &models.Game{ID: 1, AwayTeamID: 1, HomeTeamID: 2}

	stats := []map[int]*models.TeamStats{
		{},
		scenarioStats(),
		{
			1: {TeamID: 1, GamesPlayed: 5, Wins: 5, PointsFor: 200, PointsAgainst: 40},
			2: {TeamID: 2, GamesPlayed: 5, Losses: 5, PointsFor: 30, PointsAgainst: 210},
		},
	}
	for i, s := range stats {
		pred, err := p.PredictGame(game, scenarioTeams(), s, nil, nil)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if pred.AwayWinProbability+pred.HomeWinProbability != 100 {
			t.Fatalf("case %d: sum %d", i, pred.AwayWinProbability+pred.HomeWinProbability)
		}
	}
}

func TestMissingTeamFailsSingleGame(t *testing.T) {
	p := NewPredictor(noopMetrics{}, testLogger(t))
	game := &models.Game{ID: 2, AwayTeamID: 1, HomeTeamID: 99}

	if _, err := p.PredictGame(game, scenarioTeams(), scenarioStats(), nil, nil); err == nil {
		t.Fatalf("expected missing-reference failure")
	}
}

func TestPredictSkipsFailedGames(t *testing.T) {
	p := NewPredictor(noopMetrics{}, testLogger(t))
	run := &models.CollectionRun{
		Teams: []*models.Team{
			{ID: 1, Name: "Raptors"},
			{ID: 2, Name: "Bisons"},
		},
		Games: []*models.Game{
			{ID: 1, AwayTeamID: 1, HomeTeamID: 2},
			{ID: 2, AwayTeamID: 1, HomeTeamID: 99}, // unresolvable
			{ID: 3, AwayTeamID: 2, HomeTeamID: 1},
		},
		Weather: map[int]*models.WeatherReading{},
	}

	preds := p.Predict(run)
	if len(preds) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(preds))
	}
	for _, pr := range preds {
		if pr.GameID == 2 {
			t.Fatalf("failed game must be skipped")
		}
	}
}

func TestTieYieldsNoRecommendation(t *testing.T) {
	p := NewPredictor(noopMetrics{}, testLogger(t))
	game := &models.Game{ID: 5, AwayTeamID: 1, HomeTeamID: 2}

	// identical records; only the home-field bonus separates the sides,
	// which cannot reach the medium threshold.
	stats := map[int]*models.TeamStats{
		1: {TeamID: 1, GamesPlayed: 12, Wins: 6, Losses: 6, PointsFor: 240, PointsAgainst: 240},
		2: {TeamID: 2, GamesPlayed: 12, Wins: 6, Losses: 6, PointsFor: 240, PointsAgainst: 240},
	}
	pred, err := p.PredictGame(game, scenarioTeams(), stats, nil, nil)
	if err != nil {
		t.Fatalf("PredictGame: %v", err)
	}
	if pred.Recommendation != models.RecommendNone {
		t.Fatalf("expected no recommendation on low confidence, got %s", pred.Recommendation)
	}
}
