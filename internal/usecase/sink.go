package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/customD73/picker2/internal/domain/models"
	drepo "github.com/customD73/picker2/internal/domain/repository"
)

// Processor routes collected runs and generated predictions to the
// configured backend sink.
type Processor struct {
	pub     drepo.Publisher
	store   drepo.Storage
	metrics drepo.Metrics
	backend string
}

// NewProcessor creates a new Processor instance.
func NewProcessor(pub drepo.Publisher, store drepo.Storage, metrics drepo.Metrics, backend string) *Processor {
	return &Processor{pub: pub, store: store, metrics: metrics, backend: backend}
}

// ProcessRun routes one collection run to the configured backend.
func (p *Processor) ProcessRun(ctx context.Context, run *models.CollectionRun) error {
	if run == nil {
		return fmt.Errorf("run is nil")
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.PublishRun(ctx, run)
	case "clickhouse":
		err = p.store.StoreRun(ctx, run)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("sink_run")
		return fmt.Errorf("process run: %w", err)
	}

	p.metrics.RecordPhase("sink_run", "success", time.Since(start).Seconds())
	return nil
}

// ProcessPredictions routes a prediction batch to the configured backend.
func (p *Processor) ProcessPredictions(ctx context.Context, preds []*models.GamePrediction) error {
	if len(preds) == 0 {
		return nil
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.PublishPredictions(ctx, preds)
	case "clickhouse":
		err = p.store.StorePredictions(ctx, preds)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("sink_predictions")
		return fmt.Errorf("process predictions: %w", err)
	}

	p.metrics.RecordPhase("sink_predictions", "success", time.Since(start).Seconds())
	return nil
}

// Close closes underlying resources if available.
func (p *Processor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
