package meteo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/customD73/picker2/internal/service/schedule"
	"github.com/customD73/picker2/pkg/logger"
)

type noopMetrics struct{}

func (noopMetrics) RecordProviderCall(string, string, string, float64) {}
func (noopMetrics) RecordQueueDepth(string, int)                       {}
func (noopMetrics) RecordPhase(string, string, float64)                {}
func (noopMetrics) RecordPrediction(string)                            {}
func (noopMetrics) RecordError(string)                                 {}

func testClient(t *testing.T, baseURL string, now time.Time) *Client {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	sched := schedule.New("meteo", 1000, 0)
	t.Cleanup(sched.Close)
	c := NewClient(Config{BaseURL: baseURL, APIKey: "k"}, sched, nil, noopMetrics{}, log)
	c.now = func() time.Time { return now }
	return c
}

func TestUnknownVenueAndDomeAreAbsent(t *testing.T) {
	c := testClient(t, "http://unused", time.Now())

	for _, abbr := range []string{"XXX", "MIN"} {
		r, err := c.ForVenue(context.Background(), abbr, time.Now())
		if err != nil {
			t.Fatalf("%s: unexpected error %v", abbr, err)
		}
		if r != nil {
			t.Fatalf("%s: expected nil reading, got %+v", abbr, r)
		}
	}
}

func TestForecastPicksNearestPoint(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	kickoff := now.Add(48 * time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/forecast" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		body := fmt.Sprintf(`{"list":[
			{"dt":%d,"main":{"temp":40}},
			{"dt":%d,"main":{"temp":55}},
			{"dt":%d,"main":{"temp":70}}
		]}`,
			kickoff.Add(-6*time.Hour).Unix(),
			kickoff.Add(-1*time.Hour).Unix(),
			kickoff.Add(4*time.Hour).Unix())
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, now)
	r, err := c.ForVenue(context.Background(), "GB", kickoff)
	if err != nil {
		t.Fatalf("ForVenue: %v", err)
	}
	if r == nil || r.Temperature != 55 {
		t.Fatalf("expected the 1h-distant point (temp 55), got %+v", r)
	}
	if !r.Forecast {
		t.Fatalf("expected forecast flag set")
	}
}

func TestForecastTieResolvesToFirst(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	kickoff := now.Add(24 * time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body := fmt.Sprintf(`{"list":[
			{"dt":%d,"main":{"temp":30}},
			{"dt":%d,"main":{"temp":60}}
		]}`,
			kickoff.Add(-3*time.Hour).Unix(),
			kickoff.Add(3*time.Hour).Unix())
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, now)
	r, err := c.ForVenue(context.Background(), "BUF", kickoff)
	if err != nil {
		t.Fatalf("ForVenue: %v", err)
	}
	if r == nil || r.Temperature != 30 {
		t.Fatalf("expected first equidistant point (temp 30), got %+v", r)
	}
}

func TestDistantKickoffUsesCurrentConditions(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	kickoff := now.Add(10 * 24 * time.Hour)

	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main":{"temp":62,"feels_like":60,"humidity":40},"wind":{"speed":8,"deg":200},"visibility":16093,"weather":[{"main":"Clear"}],"dt":1760000000}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, now)
	r, err := c.ForVenue(context.Background(), "KC", kickoff)
	if err != nil {
		t.Fatalf("ForVenue: %v", err)
	}
	if len(paths) != 1 || paths[0] != "/data/2.5/weather" {
		t.Fatalf("expected a single current-conditions call, got %v", paths)
	}
	if r == nil || r.Forecast {
		t.Fatalf("expected a non-forecast reading, got %+v", r)
	}
	if r.Condition != "clear" {
		t.Fatalf("expected normalized condition, got %q", r.Condition)
	}
	if r.Visibility < 9.9 || r.Visibility > 10.1 {
		t.Fatalf("expected visibility near 10 miles, got %v", r.Visibility)
	}
}

func TestPastKickoffUsesCurrentConditions(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/weather" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main":{"temp":50},"wind":{"speed":5},"weather":[{"main":"Clouds"}],"dt":1760000000}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, now)
	r, err := c.ForVenue(context.Background(), "CHI", now.Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("ForVenue: %v", err)
	}
	if r == nil || r.Forecast {
		t.Fatalf("expected current reading, got %+v", r)
	}
}
