package repository

import (
	"context"
	"time"

	"github.com/customD73/picker2/internal/domain/models"
)

// StatsProvider fetches canonical sports records from the statistics
// provider, rate-governed by the provider's scheduler.
type StatsProvider interface {
	Teams(ctx context.Context) ([]*models.Team, error)
	Games(ctx context.Context, season models.Season, week int) ([]*models.Game, error)
	TeamStats(ctx context.Context, season models.Season, week int) ([]*models.TeamStats, error)
	Injuries(ctx context.Context, season models.Season, week int) ([]*models.Injury, error)
}

// WeatherProvider resolves a venue reading for a game. A (nil, nil)
// return means the venue is unknown or no usable reading exists.
type WeatherProvider interface {
	ForVenue(ctx context.Context, teamAbbr string, kickoff time.Time) (*models.WeatherReading, error)
}

// Storage is the write-only persistence sink for collection runs and
// predictions. No read-back contract.
type Storage interface {
	Init(ctx context.Context) error
	StoreRun(ctx context.Context, run *models.CollectionRun) error
	StorePredictions(ctx context.Context, preds []*models.GamePrediction) error
	Health(ctx context.Context) error
	Close() error
}

// Publisher emits collection and prediction events for downstream consumers.
type Publisher interface {
	PublishRun(ctx context.Context, run *models.CollectionRun) error
	PublishPredictions(ctx context.Context, preds []*models.GamePrediction) error
	Close() error
}

// Metrics records observability signals.
type Metrics interface {
	RecordProviderCall(provider, endpoint, status string, seconds float64)
	RecordQueueDepth(provider string, depth int)
	RecordPhase(phase, status string, seconds float64)
	RecordPrediction(confidence string)
	RecordError(kind string)
}
