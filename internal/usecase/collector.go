package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/customD73/picker2/internal/domain/models"
	drepo "github.com/customD73/picker2/internal/domain/repository"
	"github.com/customD73/picker2/pkg/logger"
)

// Collector runs one collection pass for a (season, week): teams, games,
// stats, and injuries are fetched in parallel phases, then weather is
// resolved for each game's venue through a bounded worker pool. Phases
// fail independently; a failed phase never aborts the run.
type Collector struct {
	stats          drepo.StatsProvider
	weather        drepo.WeatherProvider
	metrics        drepo.Metrics
	log            *logger.Logger
	weatherWorkers int
}

// NewCollector creates a new Collector instance.
func NewCollector(stats drepo.StatsProvider, weather drepo.WeatherProvider, metrics drepo.Metrics, log *logger.Logger, weatherWorkers int) *Collector {
	if weatherWorkers <= 0 {
		weatherWorkers = 5
	}
	return &Collector{
		stats:          stats,
		weather:        weather,
		metrics:        metrics,
		log:            log,
		weatherWorkers: weatherWorkers,
	}
}

// Collect fetches everything one run needs and reports per-phase outcomes.
func (c *Collector) Collect(ctx context.Context, season models.Season, week int) (*models.CollectionRun, error) {
	run := &models.CollectionRun{
		Season:    season,
		Week:      week,
		Weather:   make(map[int]*models.WeatherReading),
		StartedAt: time.Now(),
	}

	var mu sync.Mutex
	record := func(res models.PhaseResult) {
		c.metrics.RecordPhase(res.Phase, string(res.Status), res.Duration.Seconds())
		mu.Lock()
		run.Phases = append(run.Phases, res)
		mu.Unlock()
	}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		record(phase("teams", func() (int, error) {
			teams, err := c.stats.Teams(ctx)
			if err != nil {
				return 0, err
			}
			mu.Lock()
			run.Teams = teams
			mu.Unlock()
			return len(teams), nil
		}))
	}()

	go func() {
		defer wg.Done()
		record(phase("games", func() (int, error) {
			games, err := c.stats.Games(ctx, season, week)
			if err != nil {
				return 0, err
			}
			mu.Lock()
			run.Games = games
			mu.Unlock()
			return len(games), nil
		}))
	}()

	go func() {
		defer wg.Done()
		record(phase("stats", func() (int, error) {
			stats, err := c.stats.TeamStats(ctx, season, week)
			if err != nil {
				return 0, err
			}
			mu.Lock()
			run.Stats = stats
			mu.Unlock()
			return len(stats), nil
		}))
	}()

	go func() {
		defer wg.Done()
		record(phase("injuries", func() (int, error) {
			injuries, err := c.stats.Injuries(ctx, season, week)
			if err != nil {
				return 0, err
			}
			mu.Lock()
			run.Injuries = injuries
			mu.Unlock()
			return len(injuries), nil
		}))
	}()

	wg.Wait()

	record(c.collectWeather(ctx, run))

	run.Duration = time.Since(run.StartedAt)
	c.log.Info("collection run finished",
		logger.Int("year", season.Year),
		logger.String("seasonType", string(season.Type)),
		logger.Int("week", week),
		logger.Int("games", len(run.Games)),
		logger.Duration("duration", run.Duration))

	return run, nil
}

// collectWeather resolves a reading per game venue through a
// semaphore-bounded pool. Pacing between provider calls is the weather
// scheduler's job; the pool only bounds how many lookups are in flight.
func (c *Collector) collectWeather(ctx context.Context, run *models.CollectionRun) models.PhaseResult {
	start := time.Now()
	res := models.PhaseResult{Phase: "weather"}

	abbrs := make(map[int]string, len(run.Teams))
	for _, t := range run.Teams {
		abbrs[t.ID] = t.Abbreviation
	}

	sem := make(chan struct{}, c.weatherWorkers)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, g := range run.Games {
		abbr, ok := abbrs[g.HomeTeamID]
		if !ok {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(gameID int, abbr string, kickoff time.Time) {
			defer wg.Done()
			defer func() { <-sem }()

			reading, err := c.weather.ForVenue(ctx, abbr, kickoff)
			mu.Lock()
			defer mu.Unlock()
			res.Processed++
			if err != nil {
				res.Errors = append(res.Errors, err.Error())
				return
			}
			if reading != nil {
				run.Weather[gameID] = reading
				res.Created++
			}
		}(g.ID, abbr, g.Kickoff)
	}
	wg.Wait()

	res.Duration = time.Since(start)
	res.Status = weatherStatus(res)
	return res
}

// phase times one fetch and reduces it to a PhaseResult.
func phase(name string, fetch func() (int, error)) models.PhaseResult {
	start := time.Now()
	n, err := fetch()
	res := models.PhaseResult{
		Phase:     name,
		Status:    models.PhaseSuccess,
		Processed: n,
		Created:   n,
		Duration:  time.Since(start),
	}
	if err != nil {
		res.Status = models.PhaseFailed
		res.Errors = []string{err.Error()}
	}
	return res
}

func weatherStatus(res models.PhaseResult) models.PhaseStatus {
	switch {
	case len(res.Errors) == 0:
		return models.PhaseSuccess
	case res.Created > 0:
		return models.PhasePartial
	default:
		return models.PhaseFailed
	}
}
