package usecase

import (
	"fmt"
	"math"
	"time"

	"github.com/customD73/picker2/internal/domain/models"
	drepo "github.com/customD73/picker2/internal/domain/repository"
	"github.com/customD73/picker2/internal/services/scoring"
	"github.com/customD73/picker2/pkg/logger"
)

// ModelVersion tags every generated prediction.
const ModelVersion = "1.2.0"

// homeFieldBonus is added to the home team's adjusted score before
// probability normalization.
const homeFieldBonus = 3.0

// Predictor turns collected records into per-game win predictions.
type Predictor struct {
	metrics drepo.Metrics
	log     *logger.Logger
	now     func() time.Time
}

// NewPredictor creates a new Predictor instance.
func NewPredictor(metrics drepo.Metrics, log *logger.Logger) *Predictor {
	return &Predictor{metrics: metrics, log: log, now: time.Now}
}

// Predict generates a prediction for every game in the run. A game whose
// prediction fails is logged and skipped; the batch never aborts.
func (p *Predictor) Predict(run *models.CollectionRun) []*models.GamePrediction {
	teams := make(map[int]*models.Team, len(run.Teams))
	for _, t := range run.Teams {
		teams[t.ID] = t
	}
	stats := make(map[int]*models.TeamStats, len(run.Stats))
	for _, s := range run.Stats {
		stats[s.TeamID] = s
	}
	injuries := make(map[int][]*models.Injury)
	for _, inj := range run.Injuries {
		injuries[inj.TeamID] = append(injuries[inj.TeamID], inj)
	}

	preds := make([]*models.GamePrediction, 0, len(run.Games))
	for _, g := range run.Games {
		pred, err := p.PredictGame(g, teams, stats, injuries, run.Weather[g.ID])
		if err != nil {
			p.metrics.RecordError("prediction")
			p.log.Warn("prediction failed",
				logger.Int("game", g.ID),
				logger.Error(err))
			continue
		}
		preds = append(preds, pred)
	}
	return preds
}

// PredictGame produces one GamePrediction for a game given its teams'
// stats, injuries, and the host venue weather.
func (p *Predictor) PredictGame(
	game *models.Game,
	teams map[int]*models.Team,
	stats map[int]*models.TeamStats,
	injuries map[int][]*models.Injury,
	weather *models.WeatherReading,
) (*models.GamePrediction, error) {
	away, ok := teams[game.AwayTeamID]
	if !ok {
		return nil, fmt.Errorf("game %d: away team %d not in team set", game.ID, game.AwayTeamID)
	}
	home, ok := teams[game.HomeTeamID]
	if !ok {
		return nil, fmt.Errorf("game %d: home team %d not in team set", game.ID, game.HomeTeamID)
	}

	awayM := teamMetrics(away.ID, stats[away.ID], injuries[away.ID], weather, false)
	homeM := teamMetrics(home.ID, stats[home.ID], injuries[home.ID], weather, true)

	awayProb, homeProb := winProbabilities(awayM, homeM)
	gap := awayProb - homeProb
	if gap < 0 {
		gap = -gap
	}

	confidence := confidenceFor(gap)

	recommendation := models.RecommendNone
	if confidence != models.ConfidenceLow && awayProb != homeProb {
		if awayProb > homeProb {
			recommendation = models.RecommendAway
		} else {
			recommendation = models.RecommendHome
		}
	}

	pred := &models.GamePrediction{
		GameID:             game.ID,
		AwayTeamID:         away.ID,
		HomeTeamID:         home.ID,
		AwayWinProbability: awayProb,
		HomeWinProbability: homeProb,
		Confidence:         confidence,
		Recommendation:     recommendation,
		AwayMetrics:        awayM,
		HomeMetrics:        homeM,
		OverallMetrics:     blend(awayM, homeM),
		Factors:            factors(away, home, awayM, homeM, weather),
		GeneratedAt:        p.now(),
		ModelVersion:       ModelVersion,
	}

	p.metrics.RecordPrediction(string(confidence))
	p.log.Info("prediction generated",
		logger.Int("game", game.ID),
		logger.Int("away", away.ID),
		logger.Int("home", home.ID),
		logger.Int("awayProb", awayProb),
		logger.Int("homeProb", homeProb),
		logger.String("confidence", string(confidence)))

	return pred, nil
}

func teamMetrics(teamID int, s *models.TeamStats, injuries []*models.Injury, weather *models.WeatherReading, isHome bool) models.TeamMetrics {
	m := models.TeamMetrics{
		TeamID:           teamID,
		Strength:         scoring.Strength(s),
		OffensivePower:   scoring.Offense(s),
		DefensivePower:   scoring.Defense(s),
		InjuryImpact:     scoring.InjuryImpact(injuries),
		WeatherImpact:    scoring.WeatherImpact(weather),
		ScheduleStrength: scoring.ScheduleStrength(s),
		RestAdvantage:    scoring.RestAdvantage(s),
		Momentum:         scoring.Momentum(s),
	}
	if isHome {
		m.HomeFieldAdvantage = homeFieldBonus
	}
	m.Overall = scoring.Overall(m.Strength, m.OffensivePower, m.DefensivePower,
		m.InjuryImpact, m.WeatherImpact, m.ScheduleStrength)
	return m
}

// confidenceFor maps a probability gap onto its tier. Thresholds are
// inclusive: exactly 25 is high, exactly 15 is medium.
func confidenceFor(gap int) models.Confidence {
	switch {
	case gap >= 25:
		return models.ConfidenceHigh
	case gap >= 15:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// winProbabilities scales the two adjusted overall scores to a pair of
// integers summing to exactly 100. The away share is rounded and the
// home share is its complement, so any rounding bias lands on the away
// figure.
func winProbabilities(away, home models.TeamMetrics) (int, int) {
	awayAdj := float64(away.Overall) + away.RestAdvantage + (away.Momentum-50)*0.1
	homeAdj := float64(home.Overall) + home.HomeFieldAdvantage + home.RestAdvantage + (home.Momentum-50)*0.1

	if awayAdj <= 0 && homeAdj <= 0 {
		return 50, 50
	}
	if awayAdj < 0 {
		awayAdj = 0
	}
	if homeAdj < 0 {
		homeAdj = 0
	}

	awayProb := int(math.Round(awayAdj / (awayAdj + homeAdj) * 100))
	return awayProb, 100 - awayProb
}

// blend averages the two teams' sub-scores element-wise. Display only;
// probabilities never read it.
func blend(a, h models.TeamMetrics) models.TeamMetrics {
	m := models.TeamMetrics{
		Strength:           (a.Strength + h.Strength) / 2,
		OffensivePower:     (a.OffensivePower + h.OffensivePower) / 2,
		DefensivePower:     (a.DefensivePower + h.DefensivePower) / 2,
		InjuryImpact:       (a.InjuryImpact + h.InjuryImpact) / 2,
		WeatherImpact:      (a.WeatherImpact + h.WeatherImpact) / 2,
		ScheduleStrength:   (a.ScheduleStrength + h.ScheduleStrength) / 2,
		HomeFieldAdvantage: (a.HomeFieldAdvantage + h.HomeFieldAdvantage) / 2,
		RestAdvantage:      (a.RestAdvantage + h.RestAdvantage) / 2,
		Momentum:           (a.Momentum + h.Momentum) / 2,
	}
	m.Overall = (a.Overall + h.Overall) / 2
	return m
}

// factors emits the explanatory statements in a fixed check order.
func factors(away, home *models.Team, awayM, homeM models.TeamMetrics, weather *models.WeatherReading) []string {
	out := make([]string, 0, 8)

	add := func(gap float64, threshold float64, favored, statement string) {
		if gap >= threshold {
			out = append(out, fmt.Sprintf(statement, favored))
		}
	}

	favoredBy := func(a, h float64) (string, float64) {
		if a >= h {
			return away.Name, a - h
		}
		return home.Name, h - a
	}

	name, gap := favoredBy(awayM.Strength, homeM.Strength)
	add(gap, 10, name, "%s holds a significant overall strength edge")

	name, gap = favoredBy(awayM.OffensivePower, homeM.OffensivePower)
	add(gap, 15, name, "%s fields the stronger offense")

	name, gap = favoredBy(awayM.DefensivePower, homeM.DefensivePower)
	add(gap, 15, name, "%s fields the stronger defense")

	name, gap = favoredBy(awayM.InjuryImpact, homeM.InjuryImpact)
	add(gap, 20, name, "%s enters considerably healthier")

	if weather != nil {
		if awayM.WeatherImpact <= 30 {
			out = append(out, "adverse weather conditions expected at kickoff")
		}
		if weather.WindSpeed >= 20 {
			out = append(out, "high winds may limit the passing game")
		}
	}

	out = append(out, fmt.Sprintf("%s benefits from home-field advantage", home.Name))

	name, gap = favoredBy(awayM.Momentum, homeM.Momentum)
	add(gap, 20, name, "%s carries substantially more momentum")

	return out
}
