package api

import (
	"time"

	"github.com/labstack/echo/v4"

	models "github.com/customD73/picker2/internal/domain/models"
	drepo "github.com/customD73/picker2/internal/domain/repository"
	"github.com/customD73/picker2/internal/usecase"
	xhttp "github.com/customD73/picker2/pkg/http"
	xlogger "github.com/customD73/picker2/pkg/logger"
	"github.com/customD73/picker2/pkg/util"
)

// PredictionsEchoHandler exposes the collection and prediction surface.
type PredictionsEchoHandler struct {
	logger   *xlogger.Logger
	stats    drepo.StatsProvider
	pipeline *usecase.Pipeline
	hub      *Hub
}

func NewPredictionsEchoHandler(logger *xlogger.Logger, stats drepo.StatsProvider, pipeline *usecase.Pipeline, hub *Hub) *PredictionsEchoHandler {
	return &PredictionsEchoHandler{logger: logger, stats: stats, pipeline: pipeline, hub: hub}
}

func (h *PredictionsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/teams", h.Teams)
	g.GET("/games", h.Games)
	g.GET("/stats", h.Stats)
	g.GET("/injuries", h.Injuries)
	g.POST("/predictions/run", h.RunPredictions)
	g.GET("/predictions/ws", h.hub.ServeWS)
}

func (h *PredictionsEchoHandler) Teams(c echo.Context) error {
	teams, err := h.stats.Teams(c.Request().Context())
	if err != nil {
		h.logger.Error("teams fetch error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, teams, int64(len(teams)))
}

func (h *PredictionsEchoHandler) Games(c echo.Context) error {
	req := &models.GamesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	games, err := h.stats.Games(c.Request().Context(), seasonFrom(req.Year, req.SeasonType), req.Week)
	if err != nil {
		h.logger.Error("games fetch error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, games, int64(len(games)))
}

func (h *PredictionsEchoHandler) Stats(c echo.Context) error {
	req := &models.GamesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	stats, err := h.stats.TeamStats(c.Request().Context(), seasonFrom(req.Year, req.SeasonType), req.Week)
	if err != nil {
		h.logger.Error("stats fetch error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, stats, int64(len(stats)))
}

func (h *PredictionsEchoHandler) Injuries(c echo.Context) error {
	req := &models.GamesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	injuries, err := h.stats.Injuries(c.Request().Context(), seasonFrom(req.Year, req.SeasonType), req.Week)
	if err != nil {
		h.logger.Error("injuries fetch error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, injuries, int64(len(injuries)))
}

// RunPredictions triggers a full collect-and-predict pass for one week.
// Omitted year/season type are inferred from the calendar.
func (h *PredictionsEchoHandler) RunPredictions(c echo.Context) error {
	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	season := seasonFrom(req.Year, req.SeasonType)
	if req.Year == 0 || req.SeasonType == "" {
		year, phase := util.CurrentSeason(time.Now())
		if req.Year == 0 {
			season.Year = year
		}
		if req.SeasonType == "" {
			season.Type = models.SeasonType(phase)
		}
	}

	preds, err := h.pipeline.RunWeek(c.Request().Context(), season, req.Week)
	if err != nil {
		h.logger.Error("pipeline error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, preds, int64(len(preds)))
}

func seasonFrom(year int, seasonType string) models.Season {
	return models.Season{Year: year, Type: models.SeasonType(seasonType)}
}
