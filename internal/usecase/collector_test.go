package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/customD73/picker2/internal/domain/models"
)

type fakeStats struct {
	teams    []*models.Team
	games    []*models.Game
	stats    []*models.TeamStats
	injuries []*models.Injury

	injuriesErr error
}

func (f *fakeStats) Teams(context.Context) ([]*models.Team, error) { return f.teams, nil }
func (f *fakeStats) Games(context.Context, models.Season, int) ([]*models.Game, error) {
	return f.games, nil
}
func (f *fakeStats) TeamStats(context.Context, models.Season, int) ([]*models.TeamStats, error) {
	return f.stats, nil
}
func (f *fakeStats) Injuries(context.Context, models.Season, int) ([]*models.Injury, error) {
	if f.injuriesErr != nil {
		return nil, f.injuriesErr
	}
	return f.injuries, nil
}

type fakeWeather struct {
	readings map[string]*models.WeatherReading
	errs     map[string]error
}

func (f *fakeWeather) ForVenue(_ context.Context, abbr string, _ time.Time) (*models.WeatherReading, error) {
	if err := f.errs[abbr]; err != nil {
		return nil, err
	}
	return f.readings[abbr], nil
}

func fixtureStats() *fakeStats {
	return &fakeStats{
		teams: []*models.Team{
			{ID: 1, Abbreviation: "AAA"},
			{ID: 2, Abbreviation: "BBB"},
			{ID: 3, Abbreviation: "CCC"},
			{ID: 4, Abbreviation: "DDD"},
		},
		games: []*models.Game{
			{ID: 10, AwayTeamID: 1, HomeTeamID: 2},
			{ID: 11, AwayTeamID: 3, HomeTeamID: 4},
		},
		stats:    []*models.TeamStats{{TeamID: 1}, {TeamID: 2}},
		injuries: []*models.Injury{{PlayerID: 5, TeamID: 1}},
	}
}

func phaseByName(t *testing.T, run *models.CollectionRun, name string) models.PhaseResult {
	t.Helper()
	for _, p := range run.Phases {
		if p.Phase == name {
			return p
		}
	}
	t.Fatalf("phase %q not recorded", name)
	return models.PhaseResult{}
}

func TestCollectGathersAllPhases(t *testing.T) {
	weather := &fakeWeather{readings: map[string]*models.WeatherReading{
		"BBB": {TeamAbbr: "BBB", Temperature: 60},
		// DDD is a dome: absent reading, not an error
	}}
	c := NewCollector(fixtureStats(), weather, noopMetrics{}, testLogger(t), 2)

	run, err := c.Collect(context.Background(), models.Season{Year: 2025, Type: models.SeasonReg}, 5)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if len(run.Teams) != 4 || len(run.Games) != 2 || len(run.Stats) != 2 || len(run.Injuries) != 1 {
		t.Fatalf("unexpected record counts: %d teams %d games %d stats %d injuries",
			len(run.Teams), len(run.Games), len(run.Stats), len(run.Injuries))
	}
	if len(run.Phases) != 5 {
		t.Fatalf("expected 5 phase records, got %d", len(run.Phases))
	}
	for _, name := range []string{"teams", "games", "stats", "injuries", "weather"} {
		if p := phaseByName(t, run, name); p.Status != models.PhaseSuccess {
			t.Fatalf("phase %s: status %s, errors %v", name, p.Status, p.Errors)
		}
	}

	if r := run.Weather[10]; r == nil || r.TeamAbbr != "BBB" {
		t.Fatalf("expected reading for game 10, got %+v", r)
	}
	if _, ok := run.Weather[11]; ok {
		t.Fatalf("absent reading must not appear in the weather map")
	}
}

func TestCollectPhaseFailureIsIsolated(t *testing.T) {
	stats := fixtureStats()
	stats.injuriesErr = errors.New("upstream 500")
	c := NewCollector(stats, &fakeWeather{}, noopMetrics{}, testLogger(t), 2)

	run, err := c.Collect(context.Background(), models.Season{Year: 2025, Type: models.SeasonReg}, 5)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if p := phaseByName(t, run, "injuries"); p.Status != models.PhaseFailed || len(p.Errors) != 1 {
		t.Fatalf("expected failed injuries phase, got %+v", p)
	}
	if p := phaseByName(t, run, "teams"); p.Status != models.PhaseSuccess {
		t.Fatalf("independent phase affected: %+v", p)
	}
	if len(run.Games) != 2 {
		t.Fatalf("games should still be collected")
	}
}

func TestCollectWeatherPartial(t *testing.T) {
	weather := &fakeWeather{
		readings: map[string]*models.WeatherReading{"BBB": {TeamAbbr: "BBB"}},
		errs:     map[string]error{"DDD": errors.New("timeout")},
	}
	c := NewCollector(fixtureStats(), weather, noopMetrics{}, testLogger(t), 2)

	run, err := c.Collect(context.Background(), models.Season{Year: 2025, Type: models.SeasonReg}, 5)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	p := phaseByName(t, run, "weather")
	if p.Status != models.PhasePartial {
		t.Fatalf("expected partial weather phase, got %s (errors %v)", p.Status, p.Errors)
	}
	if p.Processed != 2 || p.Created != 1 {
		t.Fatalf("unexpected counts: processed %d created %d", p.Processed, p.Created)
	}
}
