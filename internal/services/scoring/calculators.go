// Package scoring holds the pure metric calculators. Every function is
// stateless and synchronous: raw stats, injuries, and weather in,
// normalized 0-100 sub-scores out.
package scoring

import (
	"math"
	"strings"

	"github.com/customD73/picker2/internal/domain/models"
)

const neutral = 50.0

// Strength scores a team's record: 0.7 win percentage plus 0.3
// normalized point differential per game. Missing stats score neutral.
func Strength(s *models.TeamStats) float64 {
	if s == nil || s.GamesPlayed == 0 {
		return neutral
	}
	diffPerGame := float64(s.PointsFor-s.PointsAgainst) / float64(s.GamesPlayed)
	return clamp(0.7*s.WinPct()*100 + 0.3*clamp(50+2*diffPerGame))
}

// Offense blends points per game (30-point target), yards per game
// (400-yard target), third-down and red-zone efficiency.
func Offense(s *models.TeamStats) float64 {
	if s == nil || s.GamesPlayed == 0 {
		return neutral
	}
	gp := float64(s.GamesPlayed)
	ppg := float64(s.PointsFor) / gp
	ypg := float64(s.YardsFor) / gp
	return clamp(0.4*clamp(ppg/30*100) +
		0.3*clamp(ypg/400*100) +
		0.2*s.ThirdDownPct +
		0.1*s.RedZonePct)
}

// Defense blends inverted points and yards allowed against the same
// targets, inverted opponent efficiency, and small per-game bonuses for
// takeaways and sacks.
func Defense(s *models.TeamStats) float64 {
	if s == nil || s.GamesPlayed == 0 {
		return neutral
	}
	gp := float64(s.GamesPlayed)
	papg := float64(s.PointsAgainst) / gp
	yapg := float64(s.YardsAgainst) / gp
	bonus := float64(s.Takeaways)/gp*2 + float64(s.Sacks)/gp
	return clamp(0.4*clamp(100-papg/30*100) +
		0.3*clamp(100-yapg/400*100) +
		0.2*(100-s.OppThirdDownPct) +
		0.1*(100-s.OppRedZonePct) +
		bonus)
}

// InjuryImpact scores how intact the roster is: 100 means no effect.
// Each report contributes a status-mapped availability value weighted by
// the position's importance.
func InjuryImpact(injuries []*models.Injury) float64 {
	if len(injuries) == 0 {
		return 100
	}
	var weighted, weights float64
	for _, inj := range injuries {
		w := positionWeight(inj.Position)
		weighted += w * statusAvailability(inj.Status)
		weights += w
	}
	if weights == 0 {
		return 100
	}
	return clamp(weighted / weights)
}

func positionWeight(pos string) float64 {
	switch strings.ToUpper(pos) {
	case "QB", "RB", "WR", "TE":
		return 3
	case "DE", "DT", "DL", "NT", "EDGE",
		"LB", "ILB", "OLB", "MLB",
		"CB", "S", "FS", "SS", "DB":
		return 2
	default:
		return 1
	}
}

func statusAvailability(status models.InjuryStatus) float64 {
	switch status {
	case models.InjuryOut, models.InjuryReserve, models.InjuryPUP:
		return 0
	case models.InjuryDoubtful:
		return 25
	case models.InjuryQuestionable:
		return 50
	default:
		return 100
	}
}

// WeatherImpact scores playing conditions from a base of 50, each factor
// contributing an additive bonus or penalty. A nil reading is neutral.
func WeatherImpact(r *models.WeatherReading) float64 {
	if r == nil {
		return neutral
	}

	score := neutral

	switch t := r.Temperature; {
	case t >= 50 && t <= 70:
		score += 20
	case (t >= 40 && t < 50) || (t > 70 && t <= 80):
		score += 10
	case t < 20 || t > 95:
		score -= 20
	case t < 32:
		score -= 10
	}

	switch w := r.WindSpeed; {
	case w < 10:
		score += 15
	case w < 20:
		score += 5
	case w < 30:
		score -= 10
	default:
		score -= 20
	}

	if r.Precipitation > 0 {
		score -= 10
		if r.Precipitation > 0.5 {
			score -= 10
		}
	}

	if r.Visibility > 0 {
		switch {
		case r.Visibility < 1:
			score -= 15
		case r.Visibility < 5:
			score -= 5
		}
	}

	switch strings.ToLower(r.Condition) {
	case "clear":
		score += 10
	case "clouds":
		score += 5
	case "rain", "drizzle", "fog", "mist":
		score -= 10
	case "snow":
		score -= 20
	case "thunderstorm":
		score -= 25
	}

	return clamp(score)
}

// ScheduleStrength is currently a proxy equal to team strength; there is
// no opponent-strength lookback.
func ScheduleStrength(s *models.TeamStats) float64 {
	return Strength(s)
}

// RestAdvantage is always 0: no inter-game rest data is available. Kept
// in the model so a data source can be added without touching callers.
func RestAdvantage(_ *models.TeamStats) float64 {
	return 0
}

// Momentum maps win percentage onto a fixed step function. Fewer than
// three games played scores neutral.
func Momentum(s *models.TeamStats) float64 {
	if s == nil || s.GamesPlayed < 3 {
		return neutral
	}
	switch wp := s.WinPct(); {
	case wp >= 0.75:
		return 90
	case wp >= 0.6:
		return 75
	case wp >= 0.4:
		return 50
	case wp >= 0.25:
		return 25
	default:
		return 10
	}
}

// Overall rolls the sub-scores into one weighted 0-100 integer.
func Overall(strength, offense, defense, injury, weather, schedule float64) int {
	v := 0.25*strength + 0.20*offense + 0.20*defense +
		0.15*injury + 0.10*weather + 0.10*schedule
	return int(math.Round(clamp(v)))
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
