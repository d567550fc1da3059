package models

import "time"

// SeasonType identifies the phase of an NFL season.
type SeasonType string

const (
	SeasonPre  SeasonType = "PRE"
	SeasonReg  SeasonType = "REG"
	SeasonPost SeasonType = "POST"
)

// Season is a (year, phase) pair used to key weekly data.
type Season struct {
	Year int
	Type SeasonType
}

// GameStatus values as normalized from the statistics provider.
type GameStatus string

const (
	GameScheduled GameStatus = "scheduled"
	GameLive      GameStatus = "live"
	GameFinal     GameStatus = "final"
	GamePostponed GameStatus = "postponed"
	GameCancelled GameStatus = "cancelled"
)

// Team is an immutable record keyed by the provider-assigned id.
type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	FullName     string `json:"fullName"`
}

// Game is a snapshot of one scheduled or played game. Later fetches of
// the same id may carry a newer status/score; each fetch is treated as
// its own immutable snapshot.
type Game struct {
	ID         int        `json:"id"`
	Week       int        `json:"week"`
	Year       int        `json:"year"`
	SeasonType SeasonType `json:"seasonType"`
	AwayTeamID int        `json:"awayTeamId"`
	HomeTeamID int        `json:"homeTeamId"`
	Kickoff    time.Time  `json:"kickoff"`
	Venue      string     `json:"venue"`
	Status     GameStatus `json:"status"`
	AwayScore  *int       `json:"awayScore,omitempty"`
	HomeScore  *int       `json:"homeScore,omitempty"`
}

// TeamStats is an immutable per-team snapshot keyed by (team, week, year).
type TeamStats struct {
	TeamID          int        `json:"teamId"`
	Week            int        `json:"week"`
	Year            int        `json:"year"`
	SeasonType      SeasonType `json:"seasonType"`
	GamesPlayed     int        `json:"gamesPlayed"`
	Wins            int        `json:"wins"`
	Losses          int        `json:"losses"`
	Ties            int        `json:"ties"`
	PointsFor       int        `json:"pointsFor"`
	PointsAgainst   int        `json:"pointsAgainst"`
	YardsFor        int        `json:"yardsFor"`
	YardsAgainst    int        `json:"yardsAgainst"`
	ThirdDownPct    float64    `json:"thirdDownPct"`    // 0-100
	RedZonePct      float64    `json:"redZonePct"`      // 0-100
	OppThirdDownPct float64    `json:"oppThirdDownPct"` // 0-100
	OppRedZonePct   float64    `json:"oppRedZonePct"`   // 0-100
	Turnovers       int        `json:"turnovers"`
	Takeaways       int        `json:"takeaways"`
	Sacks           int        `json:"sacks"`
}

// WinPct returns the team's win percentage in [0,1], counting ties as half.
func (s *TeamStats) WinPct() float64 {
	if s == nil || s.GamesPlayed == 0 {
		return 0
	}
	return (float64(s.Wins) + 0.5*float64(s.Ties)) / float64(s.GamesPlayed)
}

// InjuryStatus values as normalized from the statistics provider.
type InjuryStatus string

const (
	InjuryHealthy      InjuryStatus = "healthy"
	InjuryQuestionable InjuryStatus = "questionable"
	InjuryDoubtful     InjuryStatus = "doubtful"
	InjuryOut          InjuryStatus = "out"
	InjuryReserve      InjuryStatus = "injured-reserve"
	InjuryPUP          InjuryStatus = "physically-unable-to-perform"
)

// Injury is a point-in-time report for one player; not versioned.
type Injury struct {
	PlayerID int          `json:"playerId"`
	TeamID   int          `json:"teamId"`
	Name     string       `json:"name"`
	Position string       `json:"position"`
	Status   InjuryStatus `json:"status"`
	Practice string       `json:"practice"` // full, limited, dnp, unknown
	BodyPart string       `json:"bodyPart"`
}

// WeatherReading is a normalized observation or forecast point for a
// game venue. A nil reading means the venue has no known coordinates or
// the provider call failed; that is an absence, not an error.
type WeatherReading struct {
	TeamAbbr      string    `json:"teamAbbr"`
	Temperature   float64   `json:"temperature"`   // degrees F
	FeelsLike     float64   `json:"feelsLike"`     // degrees F
	Humidity      float64   `json:"humidity"`      // percent
	WindSpeed     float64   `json:"windSpeed"`     // mph
	WindDirection int       `json:"windDirection"` // degrees
	Precipitation float64   `json:"precipitation"` // inches over the period
	Visibility    float64   `json:"visibility"`    // miles
	Condition     string    `json:"condition"`     // clear, clouds, rain, snow, ...
	ObservedAt    time.Time `json:"observedAt"`
	Forecast      bool      `json:"forecast"` // true when taken from a forecast point
}

// ForecastPoint is one timestamped entry from the provider's forecast list.
type ForecastPoint struct {
	At      time.Time
	Reading WeatherReading
}
