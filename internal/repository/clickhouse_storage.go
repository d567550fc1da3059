package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/customD73/picker2/internal/domain/models"
	"github.com/customD73/picker2/internal/domain/repository"
)

// ClickHouseStorage implements Storage for ClickHouse. Write-only: runs
// and predictions go in, nothing is read back.
type ClickHouseStorage struct {
	db *sql.DB
}

// NewClickHouseStorage creates ClickHouse storage.
func NewClickHouseStorage(db *sql.DB) repository.Storage {
	return &ClickHouseStorage{db: db}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id Int32, name String, abbreviation String, city String,
		conference String, division String, full_name String,
		collected_at DateTime
	) ENGINE = ReplacingMergeTree(collected_at) ORDER BY id`,
	`CREATE TABLE IF NOT EXISTS games (
		id Int32, week Int32, year Int32, season_type String,
		away_team_id Int32, home_team_id Int32, kickoff DateTime,
		venue String, status String,
		away_score Nullable(Int32), home_score Nullable(Int32),
		collected_at DateTime
	) ENGINE = ReplacingMergeTree(collected_at) ORDER BY id`,
	`CREATE TABLE IF NOT EXISTS team_stats (
		team_id Int32, week Int32, year Int32, season_type String,
		games_played Int32, wins Int32, losses Int32, ties Int32,
		points_for Int32, points_against Int32,
		yards_for Int32, yards_against Int32,
		third_down_pct Float64, red_zone_pct Float64,
		opp_third_down_pct Float64, opp_red_zone_pct Float64,
		turnovers Int32, takeaways Int32, sacks Int32,
		collected_at DateTime
	) ENGINE = ReplacingMergeTree(collected_at) ORDER BY (team_id, year, week)`,
	`CREATE TABLE IF NOT EXISTS injuries (
		player_id Int32, team_id Int32, name String, position String,
		status String, practice String, body_part String,
		collected_at DateTime
	) ENGINE = MergeTree ORDER BY (team_id, player_id, collected_at)`,
	`CREATE TABLE IF NOT EXISTS weather (
		game_id Int32, team_abbr String,
		temperature Float64, feels_like Float64, humidity Float64,
		wind_speed Float64, wind_direction Int32,
		precipitation Float64, visibility Float64, condition String,
		observed_at DateTime, forecast UInt8,
		collected_at DateTime
	) ENGINE = MergeTree ORDER BY (game_id, collected_at)`,
	`CREATE TABLE IF NOT EXISTS predictions (
		game_id Int32, away_team_id Int32, home_team_id Int32,
		away_win_probability Int32, home_win_probability Int32,
		confidence String, recommendation String,
		factors String, model_version String,
		generated_at DateTime
	) ENGINE = MergeTree ORDER BY (game_id, generated_at)`,
	`CREATE TABLE IF NOT EXISTS collection_runs (
		year Int32, week Int32, season_type String,
		started_at DateTime, duration_ms Int64, phases String
	) ENGINE = MergeTree ORDER BY started_at`,
}

// Init creates the tables if they do not exist. Idempotent.
func (s *ClickHouseStorage) Init(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// StoreRun persists every record set of one collection run plus the run
// summary itself.
func (s *ClickHouseStorage) StoreRun(ctx context.Context, run *models.CollectionRun) error {
	if run == nil {
		return fmt.Errorf("run is nil")
	}
	now := time.Now()

	if err := s.storeTeams(ctx, run.Teams, now); err != nil {
		return fmt.Errorf("store teams: %w", err)
	}
	if err := s.storeGames(ctx, run.Games, now); err != nil {
		return fmt.Errorf("store games: %w", err)
	}
	if err := s.storeStats(ctx, run.Stats, now); err != nil {
		return fmt.Errorf("store stats: %w", err)
	}
	if err := s.storeInjuries(ctx, run.Injuries, now); err != nil {
		return fmt.Errorf("store injuries: %w", err)
	}
	if err := s.storeWeather(ctx, run.Weather, now); err != nil {
		return fmt.Errorf("store weather: %w", err)
	}

	phases, err := json.Marshal(run.Phases)
	if err != nil {
		return fmt.Errorf("marshal phases: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO collection_runs (year, week, season_type, started_at, duration_ms, phases) VALUES (?, ?, ?, ?, ?, ?)`,
		run.Season.Year, run.Week, string(run.Season.Type),
		run.StartedAt, run.Duration.Milliseconds(), string(phases))
	if err != nil {
		return fmt.Errorf("store run summary: %w", err)
	}
	return nil
}

// StorePredictions persists a prediction batch.
func (s *ClickHouseStorage) StorePredictions(ctx context.Context, preds []*models.GamePrediction) error {
	rows := make([][]interface{}, 0, len(preds))
	for _, p := range preds {
		if p == nil {
			continue
		}
		factors, err := json.Marshal(p.Factors)
		if err != nil {
			return fmt.Errorf("marshal factors: %w", err)
		}
		rows = append(rows, []interface{}{
			p.GameID, p.AwayTeamID, p.HomeTeamID,
			p.AwayWinProbability, p.HomeWinProbability,
			string(p.Confidence), string(p.Recommendation),
			string(factors), p.ModelVersion, p.GeneratedAt,
		})
	}
	return s.insertBatch(ctx, "predictions",
		"game_id, away_team_id, home_team_id, away_win_probability, home_win_probability, confidence, recommendation, factors, model_version, generated_at",
		rows)
}

func (s *ClickHouseStorage) storeTeams(ctx context.Context, teams []*models.Team, now time.Time) error {
	rows := make([][]interface{}, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []interface{}{
			t.ID, t.Name, t.Abbreviation, t.City, t.Conference, t.Division, t.FullName, now,
		})
	}
	return s.insertBatch(ctx, "teams",
		"id, name, abbreviation, city, conference, division, full_name, collected_at", rows)
}

func (s *ClickHouseStorage) storeGames(ctx context.Context, games []*models.Game, now time.Time) error {
	rows := make([][]interface{}, 0, len(games))
	for _, g := range games {
		rows = append(rows, []interface{}{
			g.ID, g.Week, g.Year, string(g.SeasonType),
			g.AwayTeamID, g.HomeTeamID, g.Kickoff, g.Venue, string(g.Status),
			g.AwayScore, g.HomeScore, now,
		})
	}
	return s.insertBatch(ctx, "games",
		"id, week, year, season_type, away_team_id, home_team_id, kickoff, venue, status, away_score, home_score, collected_at", rows)
}

func (s *ClickHouseStorage) storeStats(ctx context.Context, stats []*models.TeamStats, now time.Time) error {
	rows := make([][]interface{}, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, []interface{}{
			st.TeamID, st.Week, st.Year, string(st.SeasonType),
			st.GamesPlayed, st.Wins, st.Losses, st.Ties,
			st.PointsFor, st.PointsAgainst, st.YardsFor, st.YardsAgainst,
			st.ThirdDownPct, st.RedZonePct, st.OppThirdDownPct, st.OppRedZonePct,
			st.Turnovers, st.Takeaways, st.Sacks, now,
		})
	}
	return s.insertBatch(ctx, "team_stats",
		"team_id, week, year, season_type, games_played, wins, losses, ties, points_for, points_against, yards_for, yards_against, third_down_pct, red_zone_pct, opp_third_down_pct, opp_red_zone_pct, turnovers, takeaways, sacks, collected_at", rows)
}

func (s *ClickHouseStorage) storeInjuries(ctx context.Context, injuries []*models.Injury, now time.Time) error {
	rows := make([][]interface{}, 0, len(injuries))
	for _, inj := range injuries {
		rows = append(rows, []interface{}{
			inj.PlayerID, inj.TeamID, inj.Name, inj.Position,
			string(inj.Status), inj.Practice, inj.BodyPart, now,
		})
	}
	return s.insertBatch(ctx, "injuries",
		"player_id, team_id, name, position, status, practice, body_part, collected_at", rows)
}

func (s *ClickHouseStorage) storeWeather(ctx context.Context, weather map[int]*models.WeatherReading, now time.Time) error {
	rows := make([][]interface{}, 0, len(weather))
	for gameID, r := range weather {
		if r == nil {
			continue
		}
		forecast := uint8(0)
		if r.Forecast {
			forecast = 1
		}
		rows = append(rows, []interface{}{
			gameID, r.TeamAbbr, r.Temperature, r.FeelsLike, r.Humidity,
			r.WindSpeed, r.WindDirection, r.Precipitation, r.Visibility,
			r.Condition, r.ObservedAt, forecast, now,
		})
	}
	return s.insertBatch(ctx, "weather",
		"game_id, team_abbr, temperature, feels_like, humidity, wind_speed, wind_direction, precipitation, visibility, condition, observed_at, forecast, collected_at", rows)
}

// insertBatch issues chunked multi-row INSERTs to limit round-trips.
func (s *ClickHouseStorage) insertBatch(ctx context.Context, table, columns string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	const chunkSize = 1000
	width := len(rows[0])
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", width), ", ") + ")"

	for start := 0; start < len(rows); start += chunkSize {
		end := start + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*width)
		for _, row := range rows[start:end] {
			values = append(values, placeholder)
			args = append(args, row...)
		}
		q := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, columns, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseStorage) Close() error {
	return nil // connection pool owned by pkg/clickhouse
}
