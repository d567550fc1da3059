package di

import (
	"context"
	"fmt"
	"time"

	"github.com/customD73/picker2/internal/domain/repository"
	"github.com/customD73/picker2/internal/handler/api"
	internalrepo "github.com/customD73/picker2/internal/repository"
	"github.com/customD73/picker2/internal/service/meteo"
	"github.com/customD73/picker2/internal/service/schedule"
	"github.com/customD73/picker2/internal/service/sportsfeed"
	"github.com/customD73/picker2/internal/usecase"
	"github.com/customD73/picker2/pkg/cache"
	pkgch "github.com/customD73/picker2/pkg/clickhouse"
	"github.com/customD73/picker2/pkg/config"
	xhttp "github.com/customD73/picker2/pkg/http"
	pkgkafka "github.com/customD73/picker2/pkg/kafka"
	"github.com/customD73/picker2/pkg/logger"
	"github.com/customD73/picker2/pkg/metrics"
	"github.com/customD73/picker2/pkg/server"
)

// Schedulers bundles the per-provider rate governors.
type Schedulers struct {
	Stats   *schedule.Scheduler
	Weather *schedule.Scheduler
}

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSchedulers creates one rate governor per provider, each
// reporting its queue depth as a gauge.
func ProvideSchedulers(cfg *config.Config, m repository.Metrics) *Schedulers {
	return &Schedulers{
		Stats: schedule.New("sportsfeed", cfg.Sportsfeed.RateLimit, cfg.Sportsfeed.RequestSpacing,
			schedule.WithDepthObserver(func(depth int) { m.RecordQueueDepth("sportsfeed", depth) })),
		Weather: schedule.New("meteo", cfg.Weather.RateLimit, cfg.Weather.RequestSpacing,
			schedule.WithDepthObserver(func(depth int) { m.RecordQueueDepth("meteo", depth) })),
	}
}

// ProvideCache creates the response cache: Redis when enabled,
// in-memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Redis.Enabled {
		c, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix("picker"),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvideClickHouseClient creates a ClickHouse client when the
// clickhouse backend is selected; nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Backend.Type != "clickhouse" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer when the kafka backend
// is selected; nil otherwise.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideStorage creates ClickHouse storage and initializes its schema.
func ProvideStorage(chClient *pkgch.Client) (repository.Storage, error) {
	if chClient == nil {
		return nil, nil
	}
	store := internalrepo.NewClickHouseStorage(chClient.DB())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("storage init: %w", err)
	}
	return store, nil
}

// ProvidePublisher creates the Kafka publisher repository.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.RunsTopic, cfg.Kafka.PredictionsTopic)
}

// ProvideStatsProvider creates the statistics provider client.
func ProvideStatsProvider(cfg *config.Config, scheds *Schedulers, cacheSvc cache.Service, m repository.Metrics, log *logger.Logger) repository.StatsProvider {
	return sportsfeed.NewClient(sportsfeed.Config{
		BaseURL:  cfg.Sportsfeed.BaseURL,
		APIKey:   cfg.Sportsfeed.APIKey,
		Timeout:  cfg.Sportsfeed.Timeout,
		TeamsTTL: cfg.Cache.TeamsTTL,
	}, scheds.Stats, cacheSvc, m, log)
}

// ProvideWeatherProvider creates the weather provider client.
func ProvideWeatherProvider(cfg *config.Config, scheds *Schedulers, cacheSvc cache.Service, m repository.Metrics, log *logger.Logger) repository.WeatherProvider {
	return meteo.NewClient(meteo.Config{
		BaseURL:  cfg.Weather.BaseURL,
		APIKey:   cfg.Weather.APIKey,
		Timeout:  cfg.Weather.Timeout,
		CacheTTL: cfg.Weather.CacheTTL,
	}, scheds.Weather, cacheSvc, m, log)
}

// ProvideCollector creates the collection use case.
func ProvideCollector(stats repository.StatsProvider, weather repository.WeatherProvider, m repository.Metrics, log *logger.Logger, cfg *config.Config) *usecase.Collector {
	return usecase.NewCollector(stats, weather, m, log, cfg.Weather.BatchWorkers)
}

// ProvidePredictor creates the prediction engine.
func ProvidePredictor(m repository.Metrics, log *logger.Logger) *usecase.Predictor {
	return usecase.NewPredictor(m, log)
}

// ProvideProcessor creates the backend sink router.
func ProvideProcessor(pub repository.Publisher, store repository.Storage, m repository.Metrics, cfg *config.Config) *usecase.Processor {
	return usecase.NewProcessor(pub, store, m, cfg.Backend.Type)
}

// ProvideHub creates the prediction push hub.
func ProvideHub(log *logger.Logger) *api.Hub {
	return api.NewHub(log)
}

// ProvidePipeline creates the collect-and-predict pipeline.
func ProvidePipeline(collector *usecase.Collector, predictor *usecase.Predictor, proc *usecase.Processor, hub *api.Hub, log *logger.Logger) *usecase.Pipeline {
	return usecase.NewPipeline(collector, predictor, proc, hub, log)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(log *logger.Logger, stats repository.StatsProvider, pipeline *usecase.Pipeline, hub *api.Hub) xhttp.Handler {
	return api.NewPredictionsEchoHandler(log, stats, pipeline, hub)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	handler xhttp.Handler,
	hub *api.Hub,
	proc *usecase.Processor,
	scheds *Schedulers,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, log, handler, hub, proc,
		[]*schedule.Scheduler{scheds.Stats, scheds.Weather}, chClient)
}
