package usecase

import (
	"context"

	"github.com/customD73/picker2/internal/domain/models"
	"github.com/customD73/picker2/pkg/logger"
)

// Broadcaster pushes fresh predictions to connected clients.
type Broadcaster interface {
	BroadcastPredictions(preds []*models.GamePrediction)
}

// Pipeline is the full run: collect a week, predict every game, route
// the results to the sink, and push them to subscribers.
type Pipeline struct {
	collector *Collector
	predictor *Predictor
	proc      *Processor
	hub       Broadcaster
	log       *logger.Logger
}

// NewPipeline creates a new Pipeline instance.
func NewPipeline(collector *Collector, predictor *Predictor, proc *Processor, hub Broadcaster, log *logger.Logger) *Pipeline {
	return &Pipeline{collector: collector, predictor: predictor, proc: proc, hub: hub, log: log}
}

// RunWeek collects and predicts one week, returning the prediction list.
// Sink failures are logged but do not fail the run; the caller still
// gets the predictions.
func (p *Pipeline) RunWeek(ctx context.Context, season models.Season, week int) ([]*models.GamePrediction, error) {
	run, err := p.collector.Collect(ctx, season, week)
	if err != nil {
		return nil, err
	}

	preds := p.predictor.Predict(run)

	if err := p.proc.ProcessRun(ctx, run); err != nil {
		p.log.Error("run sink failed", logger.Error(err))
	}
	if err := p.proc.ProcessPredictions(ctx, preds); err != nil {
		p.log.Error("prediction sink failed", logger.Error(err))
	}

	if p.hub != nil && len(preds) > 0 {
		p.hub.BroadcastPredictions(preds)
	}

	return preds, nil
}
