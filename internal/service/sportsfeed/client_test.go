package sportsfeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/customD73/picker2/internal/domain/models"
	"github.com/customD73/picker2/internal/service/provider"
	"github.com/customD73/picker2/internal/service/schedule"
	"github.com/customD73/picker2/pkg/cache"
	"github.com/customD73/picker2/pkg/logger"
)

type noopMetrics struct{}

func (noopMetrics) RecordProviderCall(string, string, string, float64) {}
func (noopMetrics) RecordQueueDepth(string, int)                       {}
func (noopMetrics) RecordPhase(string, string, float64)                {}
func (noopMetrics) RecordPrediction(string)                            {}
func (noopMetrics) RecordError(string)                                 {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func testClient(t *testing.T, baseURL string, cacheSvc cache.Service) *Client {
	t.Helper()
	sched := schedule.New("sportsfeed", 1000, 0)
	t.Cleanup(sched.Close)
	return NewClient(Config{BaseURL: baseURL, APIKey: "test-key"}, sched, cacheSvc, noopMetrics{}, testLogger(t))
}

func TestTeamsCachesRoster(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if got := r.Header.Get("Ocp-Apim-Subscription-Key"); got != "test-key" {
			t.Errorf("missing api key header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"TeamID":1,"Key":"KC","City":"Kansas City","Name":"Chiefs","FullName":"Kansas City Chiefs","Conference":"AFC","Division":"West"}]`))
	}))
	defer srv.Close()

	mem := cache.NewMemoryCache()
	defer mem.Close()
	c := testClient(t, srv.URL, mem)

	for i := 0; i < 2; i++ {
		teams, err := c.Teams(context.Background())
		if err != nil {
			t.Fatalf("Teams: %v", err)
		}
		if len(teams) != 1 || teams[0].Abbreviation != "KC" {
			t.Fatalf("unexpected teams %+v", teams)
		}
	}

	if n := hits.Load(); n != 1 {
		t.Fatalf("expected 1 upstream hit, got %d", n)
	}
}

func TestGamesNormalization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/scores/json/ScoresByWeek/2025REG/5" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"ScoreID":101,"Week":5,"GlobalAwayTeamID":2,"GlobalHomeTeamID":1,"DateTime":"2025-10-12T13:00:00Z","StadiumName":"Arrowhead","Status":"InProgress","AwayScore":10,"HomeScore":14}]`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, nil)
	games, err := c.Games(context.Background(), models.Season{Year: 2025, Type: models.SeasonReg}, 5)
	if err != nil {
		t.Fatalf("Games: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}

	g := games[0]
	if g.ID != 101 || g.AwayTeamID != 2 || g.HomeTeamID != 1 {
		t.Fatalf("unexpected ids %+v", g)
	}
	if g.Status != models.GameLive {
		t.Fatalf("expected live status, got %s", g.Status)
	}
	if g.Kickoff.UTC().Format(time.RFC3339) != "2025-10-12T13:00:00Z" {
		t.Fatalf("unexpected kickoff %v", g.Kickoff)
	}
	if g.AwayScore == nil || *g.AwayScore != 10 {
		t.Fatalf("unexpected away score %v", g.AwayScore)
	}
	if g.Year != 2025 || g.SeasonType != models.SeasonReg || g.Week != 5 {
		t.Fatalf("season not stamped from request: %+v", g)
	}
}

func TestCallErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, nil)
	_, err := c.Injuries(context.Background(), models.Season{Year: 2025, Type: models.SeasonReg}, 3)
	if err == nil {
		t.Fatalf("expected error")
	}

	var ce *provider.CallError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CallError, got %T: %v", err, err)
	}
	if ce.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", ce.StatusCode)
	}
	if ce.Provider != "sportsfeed" || ce.Endpoint != "Injuries" {
		t.Fatalf("unexpected call identity %+v", ce)
	}
}

func TestNormalizeInjuryStatus(t *testing.T) {
	cases := map[string]models.InjuryStatus{
		"Out":                          models.InjuryOut,
		"Doubtful":                     models.InjuryDoubtful,
		"Questionable":                 models.InjuryQuestionable,
		"Injured Reserve":              models.InjuryReserve,
		"Physically Unable to Perform": models.InjuryPUP,
		"Probable":                     models.InjuryHealthy,
		"":                             models.InjuryHealthy,
	}
	for in, want := range cases {
		if got := normalizeInjuryStatus(in); got != want {
			t.Fatalf("%q: got %s want %s", in, got, want)
		}
	}
}
