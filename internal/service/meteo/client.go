package meteo

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
)

const providerName = "meteo"

// forecastHorizon is how far ahead the provider's point forecast reaches.
// Kickoffs beyond it fall back to current conditions.
const forecastHorizon = 120 * time.Hour

// Client resolves venue weather from the forecast provider. Calls are
// routed through the provider scheduler; resolved readings are cached
// per venue-hour so repeated lookups for one stadium reuse the reading.
type Client struct {
	http     *phttp.Client
	sched    *schedule.Scheduler
	cache    cache.Service
	metrics  repository.Metrics
	log      *logger.Logger
	baseURL  string
	apiKey   string
	cacheTTL time.Duration
	now      func() time.Time
}

// Config holds client configuration.
type Config struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// NewClient creates a weather provider client.
func NewClient(cfg Config, sched *schedule.Scheduler, cacheSvc cache.Service, metrics repository.Metrics, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 30 * time.Minute
	}
	return &Client{
		http:     phttp.NewClient(phttp.WithTimeout(timeout)),
		sched:    sched,
		cache:    cacheSvc,
		metrics:  metrics,
		log:      log,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// ForVenue returns the reading nearest the kickoff for the home team's
// stadium. Unknown venues and dome stadiums yield (nil, nil): an
// absence, not an error.
func (c *Client) ForVenue(ctx context.Context, teamAbbr string, kickoff time.Time) (*models.WeatherReading, error) {
	v, ok := venues[strings.ToUpper(teamAbbr)]
	if !ok || v.Dome {
		return nil, nil
	}

	cacheKey := fmt.Sprintf("meteo:%s:%d", strings.ToUpper(teamAbbr), kickoff.Truncate(time.Hour).Unix())
	if c.cache != nil {
		if cached, err := cache.GetTyped[*models.WeatherReading](ctx, c.cache, cacheKey); err == nil && cached != nil {
			return cached, nil
		}
	}

	var reading *models.WeatherReading
	var err error
	if c.useForecast(kickoff) {
		reading, err = c.forecast(ctx, teamAbbr, v, kickoff)
	} else {
		reading, err = c.current(ctx, teamAbbr, v)
	}
	if err != nil {
		return nil, err
	}

	if c.cache != nil && reading != nil {
		if cerr := c.cache.Set(ctx, cacheKey, reading, c.cacheTTL); cerr != nil {
			c.log.Warn("weather cache write failed", logger.Error(cerr))
		}
	}
	return reading, nil
}

// useForecast reports whether the kickoff is inside the forecast
// horizon and still ahead of now.
func (c *Client) useForecast(kickoff time.Time) bool {
	now := c.now()
	return kickoff.After(now) && kickoff.Sub(now) <= forecastHorizon
}

func (c *Client) current(ctx context.Context, teamAbbr string, v venue) (*models.WeatherReading, error) {
	wire, err := fetch[conditionsWire](ctx, c, "weather", "/data/2.5/weather", v)
	if err != nil {
		return nil, err
	}
	r := wire.reading(teamAbbr)
	r.Forecast = false
	return r, nil
}

// forecast fetches the point forecast and picks the entry closest to
// the kickoff. Equidistant entries resolve to the earlier one in list
// order. An empty forecast list falls back to current conditions.
func (c *Client) forecast(ctx context.Context, teamAbbr string, v venue, kickoff time.Time) (*models.WeatherReading, error) {
	wire, err := fetch[forecastWire](ctx, c, "forecast", "/data/2.5/forecast", v)
	if err != nil {
		return nil, err
	}
	if len(wire.List) == 0 {
		return c.current(ctx, teamAbbr, v)
	}

	best := wire.List[0]
	bestDist := absDuration(time.Unix(best.Dt, 0).Sub(kickoff))
	for _, p := range wire.List[1:] {
		if d := absDuration(time.Unix(p.Dt, 0).Sub(kickoff)); d < bestDist {
			best, bestDist = p, d
		}
	}

	r := best.reading(teamAbbr)
	r.Forecast = true
	return r, nil
}

// fetch routes one GET through the scheduler, recording latency and
// wrapping failures as *provider.CallError.
func fetch[T any](ctx context.Context, c *Client, endpoint, path string, v venue) (T, error) {
	return schedule.Do(ctx, c.sched, func(ctx context.Context) (T, error) {
		start := time.Now()
		var out T
		err := c.http.SendAndParse(ctx, &phttp.RequestOptions{
			Method: http.MethodGet,
			URL:    c.baseURL + path,
			QueryParams: map[string][]string{
				"lat":   {fmt.Sprintf("%.4f", v.Lat)},
				"lon":   {fmt.Sprintf("%.4f", v.Lon)},
				"units": {"imperial"},
				"appid": {c.apiKey},
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
			c.log.Warn("weather call failed",
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

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// wire types mirror the provider's JSON payloads. Wind speed is mph and
// temperature is degrees F under units=imperial; visibility arrives in
// meters and rain/snow in millimeters regardless of units.

type conditionsWire struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Visibility float64 `json:"visibility"`
	Weather    []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Rain map[string]float64 `json:"rain"`
	Snow map[string]float64 `json:"snow"`
	Dt   int64              `json:"dt"`
}

func (w *conditionsWire) reading(teamAbbr string) *models.WeatherReading {
	condition := ""
	if len(w.Weather) > 0 {
		condition = strings.ToLower(w.Weather[0].Main)
	}
	precipMM := 0.0
	for _, mm := range w.Rain {
		precipMM += mm
	}
	for _, mm := range w.Snow {
		precipMM += mm
	}
	return &models.WeatherReading{
		TeamAbbr:      strings.ToUpper(teamAbbr),
		Temperature:   w.Main.Temp,
		FeelsLike:     w.Main.FeelsLike,
		Humidity:      w.Main.Humidity,
		WindSpeed:     w.Wind.Speed,
		WindDirection: w.Wind.Deg,
		Precipitation: precipMM / 25.4,
		Visibility:    w.Visibility / 1609.34,
		Condition:     condition,
		ObservedAt:    time.Unix(w.Dt, 0),
	}
}

type forecastWire struct {
	List []conditionsWire `json:"list"`
}

var _ repository.WeatherProvider = (*Client)(nil)
