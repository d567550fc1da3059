package sportsfeed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/customD73/picker2/internal/domain/models"
	"github.com/customD73/picker2/internal/domain/repository"
	"github.com/customD73/picker2/internal/service/provider"
	"github.com/customD73/picker2/internal/service/schedule"
	"github.com/customD73/picker2/pkg/cache"
	phttp "github.com/customD73/picker2/pkg/http"
	"github.com/customD73/picker2/pkg/logger"
	"github.com/customD73/picker2/pkg/util"
)

const (
	providerName = "sportsfeed"
	teamsCacheKey = "sportsfeed:teams"
)

// Client fetches canonical sports records from the statistics provider.
// Every outbound call is routed through the provider scheduler so the
// per-minute quota and inter-request spacing hold across all callers.
type Client struct {
	http     *phttp.Client
	sched    *schedule.Scheduler
	cache    cache.Service
	metrics  repository.Metrics
	log      *logger.Logger
	baseURL  string
	apiKey   string
	teamsTTL time.Duration
}

// Config holds client configuration.
type Config struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	TeamsTTL time.Duration
}

// NewClient creates a stats provider client.
func NewClient(cfg Config, sched *schedule.Scheduler, cacheSvc cache.Service, metrics repository.Metrics, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	teamsTTL := cfg.TeamsTTL
	if teamsTTL == 0 {
		teamsTTL = 24 * time.Hour
	}
	return &Client{
		http:     phttp.NewClient(phttp.WithTimeout(timeout)),
		sched:    sched,
		cache:    cacheSvc,
		metrics:  metrics,
		log:      log,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		teamsTTL: teamsTTL,
	}
}

// Teams returns the league's teams. The roster changes rarely, so results
// are cached; a cache hit skips the scheduler entirely.
func (c *Client) Teams(ctx context.Context) ([]*models.Team, error) {
	if c.cache != nil {
		if cached, err := cache.GetTyped[[]*models.Team](ctx, c.cache, teamsCacheKey); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	wire, err := fetch[[]teamWire](ctx, c, "Teams", c.baseURL+"/scores/json/Teams")
	if err != nil {
		return nil, err
	}

	teams := make([]*models.Team, 0, len(wire))
	for _, w := range wire {
		teams = append(teams, &models.Team{
			ID:           w.TeamID,
			Name:         w.Name,
			Abbreviation: w.Key,
			City:         w.City,
			Conference:   w.Conference,
			Division:     w.Division,
			FullName:     w.FullName,
		})
	}

	if c.cache != nil && len(teams) > 0 {
		if err := c.cache.Set(ctx, teamsCacheKey, teams, c.teamsTTL); err != nil {
			c.log.Warn("teams cache write failed", logger.Error(err))
		}
	}
	return teams, nil
}

// Games returns the week's game snapshots.
func (c *Client) Games(ctx context.Context, season models.Season, week int) ([]*models.Game, error) {
	endpoint := "ScoresByWeek"
	url := fmt.Sprintf("%s/scores/json/ScoresByWeek/%s/%d", c.baseURL, seasonPath(season), week)

	wire, err := fetch[[]scoreWire](ctx, c, endpoint, url)
	if err != nil {
		return nil, err
	}

	games := make([]*models.Game, 0, len(wire))
	for _, w := range wire {
		games = append(games, &models.Game{
			ID:         w.ScoreID,
			Week:       week,
			Year:       season.Year,
			SeasonType: season.Type,
			AwayTeamID: w.AwayTeamID,
			HomeTeamID: w.HomeTeamID,
			Kickoff:    util.ParseTimeDefault(w.DateTime, time.Time{}),
			Venue:      w.StadiumName,
			Status:     normalizeGameStatus(w.Status),
			AwayScore:  w.AwayScore,
			HomeScore:  w.HomeScore,
		})
	}
	return games, nil
}

// TeamStats returns per-team cumulative stats through the given week.
func (c *Client) TeamStats(ctx context.Context, season models.Season, week int) ([]*models.TeamStats, error) {
	endpoint := "TeamStatsByWeek"
	url := fmt.Sprintf("%s/stats/json/TeamStatsByWeek/%s/%d", c.baseURL, seasonPath(season), week)

	wire, err := fetch[[]statsWire](ctx, c, endpoint, url)
	if err != nil {
		return nil, err
	}

	stats := make([]*models.TeamStats, 0, len(wire))
	for _, w := range wire {
		stats = append(stats, &models.TeamStats{
			TeamID:          w.TeamID,
			Week:            week,
			Year:            season.Year,
			SeasonType:      season.Type,
			GamesPlayed:     w.Games,
			Wins:            w.Wins,
			Losses:          w.Losses,
			Ties:            w.Ties,
			PointsFor:       w.PointsFor,
			PointsAgainst:   w.PointsAgainst,
			YardsFor:        w.OffensiveYards,
			YardsAgainst:    w.DefensiveYards,
			ThirdDownPct:    w.ThirdDownPct,
			RedZonePct:      w.RedZonePct,
			OppThirdDownPct: w.OppThirdDownPct,
			OppRedZonePct:   w.OppRedZonePct,
			Turnovers:       w.Giveaways,
			Takeaways:       w.Takeaways,
			Sacks:           w.Sacks,
		})
	}
	return stats, nil
}

// Injuries returns the week's injury reports.
func (c *Client) Injuries(ctx context.Context, season models.Season, week int) ([]*models.Injury, error) {
	endpoint := "Injuries"
	url := fmt.Sprintf("%s/stats/json/Injuries/%s/%d", c.baseURL, seasonPath(season), week)

	wire, err := fetch[[]injuryWire](ctx, c, endpoint, url)
	if err != nil {
		return nil, err
	}

	injuries := make([]*models.Injury, 0, len(wire))
	for _, w := range wire {
		injuries = append(injuries, &models.Injury{
			PlayerID: w.PlayerID,
			TeamID:   w.TeamID,
			Name:     w.Name,
			Position: w.Position,
			Status:   normalizeInjuryStatus(w.Status),
			Practice: strings.ToLower(w.Practice),
			BodyPart: w.BodyPart,
		})
	}
	return injuries, nil
}

// fetch routes one GET through the scheduler, recording latency and
// wrapping failures as *provider.CallError.
func fetch[T any](ctx context.Context, c *Client, endpoint, url string) (T, error) {
	return schedule.Do(ctx, c.sched, func(ctx context.Context) (T, error) {
		start := time.Now()
		var out T
		err := c.http.SendAndParse(ctx, &phttp.RequestOptions{
			Method: http.MethodGet,
			URL:    url,
			Headers: map[string]string{
				"Ocp-Apim-Subscription-Key": c.apiKey,
			},
		}, &out)
		latency := time.Since(start)

		if err != nil {
			code := 0
			var se *phttp.StatusError
			if errors.As(err, &se) {
				code = se.Code
			}
			c.metrics.RecordProviderCall(providerName, endpoint, "error", latency.Seconds())
			c.log.Warn("stats call failed",
				logger.String("endpoint", endpoint),
				logger.Int("status", code),
				logger.Error(err))
			return out, &provider.CallError{
				Provider:   providerName,
				Endpoint:   endpoint,
				StatusCode: code,
				Latency:    latency,
				Err:        err,
			}
		}

		c.metrics.RecordProviderCall(providerName, endpoint, "ok", latency.Seconds())
		return out, nil
	})
}

// seasonPath formats a season the way the provider's URL paths expect,
// e.g. 2025REG.
func seasonPath(s models.Season) string {
	return fmt.Sprintf("%d%s", s.Year, s.Type)
}

func normalizeGameStatus(s string) models.GameStatus {
	switch strings.ToLower(s) {
	case "scheduled", "pregame":
		return models.GameScheduled
	case "inprogress", "halftime", "in progress":
		return models.GameLive
	case "final", "f/ot", "final overtime":
		return models.GameFinal
	case "postponed", "delayed", "suspended":
		return models.GamePostponed
	case "canceled", "cancelled", "forfeit":
		return models.GameCancelled
	default:
		return models.GameScheduled
	}
}

func normalizeInjuryStatus(s string) models.InjuryStatus {
	switch strings.ToLower(s) {
	case "out":
		return models.InjuryOut
	case "doubtful":
		return models.InjuryDoubtful
	case "questionable":
		return models.InjuryQuestionable
	case "injured reserve", "ir":
		return models.InjuryReserve
	case "physically unable to perform", "pup":
		return models.InjuryPUP
	default:
		return models.InjuryHealthy
	}
}

// wire types mirror the provider's JSON field casing.

type teamWire struct {
	TeamID     int    `json:"TeamID"`
	Key        string `json:"Key"`
	City       string `json:"City"`
	Name       string `json:"Name"`
	FullName   string `json:"FullName"`
	Conference string `json:"Conference"`
	Division   string `json:"Division"`
}

type scoreWire struct {
	ScoreID     int    `json:"ScoreID"`
	Week        int    `json:"Week"`
	AwayTeamID  int    `json:"GlobalAwayTeamID"`
	HomeTeamID  int    `json:"GlobalHomeTeamID"`
	DateTime    string `json:"DateTime"`
	StadiumName string `json:"StadiumName"`
	Status      string `json:"Status"`
	AwayScore   *int   `json:"AwayScore"`
	HomeScore   *int   `json:"HomeScore"`
}

type statsWire struct {
	TeamID          int     `json:"TeamID"`
	Games           int     `json:"Games"`
	Wins            int     `json:"Wins"`
	Losses          int     `json:"Losses"`
	Ties            int     `json:"Ties"`
	PointsFor       int     `json:"Score"`
	PointsAgainst   int     `json:"OpponentScore"`
	OffensiveYards  int     `json:"OffensiveYards"`
	DefensiveYards  int     `json:"OpponentOffensiveYards"`
	ThirdDownPct    float64 `json:"ThirdDownPercentage"`
	RedZonePct      float64 `json:"RedZonePercentage"`
	OppThirdDownPct float64 `json:"OpponentThirdDownPercentage"`
	OppRedZonePct   float64 `json:"OpponentRedZonePercentage"`
	Giveaways       int     `json:"Giveaways"`
	Takeaways       int     `json:"Takeaways"`
	Sacks           int     `json:"Sacks"`
}

type injuryWire struct {
	PlayerID int    `json:"PlayerID"`
	TeamID   int    `json:"TeamID"`
	Name     string `json:"Name"`
	Position string `json:"Position"`
	Status   string `json:"Status"`
	Practice string `json:"Practice"`
	BodyPart string `json:"BodyPart"`
}

var _ repository.StatsProvider = (*Client)(nil)
