package models

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.

type GamesRequest struct {
	Week       int    `query:"week" json:"week" validate:"required,gte=1,lte=22"`
	Year       int    `query:"year" json:"year" validate:"required,gte=2000,lte=2100"`
	SeasonType string `query:"season_type" json:"seasonType" default:"REG" validate:"oneof=PRE REG POST"`
}

// PredictRequest triggers a pipeline run. Year and season type may be
// omitted; the current season is then inferred from the calendar.
type PredictRequest struct {
	Week       int    `query:"week" json:"week" validate:"required,gte=1,lte=22"`
	Year       int    `query:"year" json:"year" validate:"omitempty,gte=2000,lte=2100"`
	SeasonType string `query:"season_type" json:"seasonType" validate:"omitempty,oneof=PRE REG POST"`
}
