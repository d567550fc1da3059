package scoring

import (
	"math"
	"testing"

	"github.com/customD73/picker2/internal/domain/models"
)

func TestMissingStatsAreNeutral(t *testing.T) {
	if got := Strength(nil); got != 50 {
		t.Fatalf("Strength(nil) = %v, want 50", got)
	}
	if got := Offense(&models.TeamStats{}); got != 50 {
		t.Fatalf("Offense(zero games) = %v, want 50", got)
	}
	if got := Defense(&models.TeamStats{}); got != 50 {
		t.Fatalf("Defense(zero games) = %v, want 50", got)
	}
}

func TestStrengthFavorsWinners(t *testing.T) {
	a := &models.TeamStats{GamesPlayed: 12, Wins: 10, Losses: 2, PointsFor: 300, PointsAgainst: 200}
	b := &models.TeamStats{GamesPlayed: 12, Wins: 4, Losses: 8, PointsFor: 220, PointsAgainst: 260}

	sa, sb := Strength(a), Strength(b)
	if sa <= sb {
		t.Fatalf("expected stronger record to score higher: %v vs %v", sa, sb)
	}
	// 0.7*83.33 + 0.3*(50+2*8.33) = 78.33
	if math.Abs(sa-78.33) > 0.01 {
		t.Fatalf("Strength(a) = %v, want 78.33", sa)
	}
}

func TestInjuryImpactEmptyListIsExactly100(t *testing.T) {
	if got := InjuryImpact(nil); got != 100 {
		t.Fatalf("InjuryImpact(nil) = %v, want 100", got)
	}
	if got := InjuryImpact([]*models.Injury{}); got != 100 {
		t.Fatalf("InjuryImpact(empty) = %v, want 100", got)
	}
}

func TestInjuryImpactOutQuarterbackIsZero(t *testing.T) {
	injuries := []*models.Injury{
		{Position: "QB", Status: models.InjuryOut},
	}
	if got := InjuryImpact(injuries); got != 0 {
		t.Fatalf("InjuryImpact(out QB) = %v, want 0", got)
	}
}

func TestInjuryImpactWeighting(t *testing.T) {
	// out QB (w=3, 0) + healthy kicker (w=1, 100): (0+100)/4 = 25
	injuries := []*models.Injury{
		{Position: "QB", Status: models.InjuryOut},
		{Position: "K", Status: models.InjuryHealthy},
	}
	if got := InjuryImpact(injuries); got != 25 {
		t.Fatalf("InjuryImpact = %v, want 25", got)
	}
}

func TestWeatherImpactClamped(t *testing.T) {
	severe := &models.WeatherReading{
		Temperature:   -40,
		WindSpeed:     100,
		Precipitation: 2,
		Visibility:    0.2,
		Condition:     "thunderstorm",
	}
	if got := WeatherImpact(severe); got != 0 {
		t.Fatalf("severe conditions = %v, want clamp to 0", got)
	}

	ideal := &models.WeatherReading{
		Temperature: 60,
		WindSpeed:   3,
		Visibility:  10,
		Condition:   "clear",
	}
	if got := WeatherImpact(ideal); got != 95 {
		t.Fatalf("ideal conditions = %v, want 95", got)
	}

	if got := WeatherImpact(nil); got != 50 {
		t.Fatalf("nil reading = %v, want 50", got)
	}
}

func TestMomentumSteps(t *testing.T) {
	cases := []struct {
		wins, games int
		want        float64
	}{
		{9, 12, 90},  // 0.75
		{8, 12, 75},  // 0.67
		{6, 12, 50},  // 0.50
		{4, 12, 25},  // 0.33
		{2, 12, 10},  // 0.17
		{2, 2, 50},   // under 3 games
		{0, 0, 50},   // no games
	}
	for _, c := range cases {
		s := &models.TeamStats{GamesPlayed: c.games, Wins: c.wins, Losses: c.games - c.wins}
		if got := Momentum(s); got != c.want {
			t.Fatalf("Momentum(%d/%d) = %v, want %v", c.wins, c.games, got, c.want)
		}
	}
}

func TestOverallWeighting(t *testing.T) {
	// All neutral inputs stay neutral.
	if got := Overall(50, 50, 50, 50, 50, 50); got != 50 {
		t.Fatalf("Overall(all 50) = %d, want 50", got)
	}
	// Weights sum to 1, so uniform 100 yields 100.
	if got := Overall(100, 100, 100, 100, 100, 100); got != 100 {
		t.Fatalf("Overall(all 100) = %d, want 100", got)
	}
}
