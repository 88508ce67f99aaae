// Package service wires the scaler, the regression model and the college
// catalog into the prediction pipeline used by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/gradpredict/internal/adapters/artifact"
	"github.com/okian/gradpredict/internal/adapters/repository"
	"github.com/okian/gradpredict/internal/domain/admission"
	"github.com/okian/gradpredict/internal/domain/catalog"
	"github.com/okian/gradpredict/internal/domain/types"
	"github.com/okian/gradpredict/pkg/logger"
	"github.com/okian/gradpredict/pkg/metrics"
)

// Default artifact locations, relative to the working directory.
const (
	DefaultScalerPath  = "assets/graduate_adm_scaler.json"
	DefaultModelPath   = "assets/graduate_adm_model.json"
	DefaultCatalogPath = "assets/mtech_colleges.csv"
)

// Result is the outcome of one prediction.
type Result = types.Prediction

// pipeline holds everything loaded at startup. It is never mutated once
// published, so requests read it without locking.
type pipeline struct {
	scaler   *admission.Scaler
	model    admission.Predictor
	colleges []catalog.Entry
}

// Service owns the loaded artifacts and serves predictions.
type Service struct {
	mu sync.Mutex

	scalerPath  string
	modelPath   string
	catalogPath string

	scalerLoader artifact.Loader[*admission.Scaler]
	modelLoader  artifact.Loader[admission.Predictor]
	store        repository.Store

	state       atomic.Pointer[pipeline]
	predictions atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithScalerPath sets the scaler artifact location.
func WithScalerPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.scalerPath = path
		}
	}
}

// WithModelPath sets the model artifact location.
func WithModelPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.modelPath = path
		}
	}
}

// WithCatalogPath sets the college catalog location. The store is chosen
// from the file extension at Start.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.catalogPath = path
		}
	}
}

// WithScalerLoader replaces the file-based scaler loader.
func WithScalerLoader(l artifact.Loader[*admission.Scaler]) Option {
	return func(s *Service) {
		if l != nil {
			s.scalerLoader = l
		}
	}
}

// WithModelLoader replaces the file-based model loader.
func WithModelLoader(l artifact.Loader[admission.Predictor]) Option {
	return func(s *Service) {
		if l != nil {
			s.modelLoader = l
		}
	}
}

// WithCatalogStore replaces the catalog store selected from the catalog path.
func WithCatalogStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		scalerPath:   DefaultScalerPath,
		modelPath:    DefaultModelPath,
		catalogPath:  DefaultCatalogPath,
		scalerLoader: artifact.ScalerLoader{},
		modelLoader:  artifact.ModelLoader{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the scaler, the model and the catalog concurrently. The first
// failure cancels the other loads and is returned; the service stays stopped.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Load() != nil {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "loading prediction artifacts",
		logger.String("scaler", s.scalerPath),
		logger.String("model", s.modelPath),
		logger.String("catalog", s.catalogPath),
	)

	store := s.store
	if store == nil {
		var err error
		if store, err = repository.Open(s.catalogPath); err != nil {
			return err
		}
	}

	var p pipeline
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer timeLoad("scaler")()
		p.scaler, err = s.scalerLoader.Load(gctx, s.scalerPath)
		return err
	})
	g.Go(func() (err error) {
		defer timeLoad("model")()
		p.model, err = s.modelLoader.Load(gctx, s.modelPath)
		return err
	})
	g.Go(func() (err error) {
		defer timeLoad("catalog")()
		p.colleges, err = store.Load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error(ctx, "failed to load prediction artifacts", logger.Error(err))
		return err
	}

	if p.scaler.Width() != p.model.Width() {
		return fmt.Errorf("%w: scaler has %d columns, model has %d",
			admission.ErrFeatureMismatch, p.scaler.Width(), p.model.Width())
	}

	s.state.Store(&p)
	metrics.UpdateCatalogSize(len(p.colleges))

	s.logger.Info(ctx, "prediction service started",
		logger.Int("features", p.model.Width()),
		logger.Int("colleges", len(p.colleges)),
	)

	return nil
}

func timeLoad(name string) func() {
	start := time.Now()
	return func() {
		metrics.RecordArtifactLoad(name, float64(time.Since(start).Microseconds())/1000)
	}
}

// Stop releases the loaded artifacts. Predictions fail with ErrNotStarted
// until Start is called again.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Swap(nil) == nil {
		return
	}
	s.logger.Info(context.Background(), "prediction service stopped")
}

// Predict runs one profile through the pipeline: feature vector, scaler,
// model, percentage, recommendation filter.
func (s *Service) Predict(ctx context.Context, p admission.Profile) (Result, error) {
	state := s.state.Load()
	if state == nil {
		return Result{}, ErrNotStarted
	}

	start := time.Now()

	scaled, err := state.scaler.Transform(admission.Features(p))
	if err != nil {
		metrics.RecordPredictionError()
		return Result{}, err
	}
	raw, err := state.model.Predict(scaled)
	if err != nil {
		metrics.RecordPredictionError()
		return Result{}, err
	}
	if math.IsNaN(raw) {
		metrics.RecordPredictionError()
		return Result{}, ErrNonFinite
	}

	pct := Percentage(raw)
	res := Result{
		AdmissionPercentage: pct,
		RecommendedColleges: catalog.Recommend(pct, state.colleges),
	}

	s.predictions.Add(1)
	metrics.ObservePrediction(float64(time.Since(start).Microseconds())/1000, pct, len(res.RecommendedColleges))

	s.logger.Debug(ctx, "prediction served",
		logger.Float64("raw", raw),
		logger.Float64("percentage", pct),
		logger.Int("recommended", len(res.RecommendedColleges)),
	)

	return res, nil
}

// Percentage converts a raw model score to a percentage rounded to two
// decimals, half to even, and clamped to [0, 100].
func Percentage(raw float64) float64 {
	pct := math.RoundToEven(raw*100*100) / 100
	return math.Max(0, math.Min(100, pct))
}

// Colleges returns a copy of the loaded catalog in stored order.
func (s *Service) Colleges(_ context.Context) ([]catalog.Entry, error) {
	state := s.state.Load()
	if state == nil {
		return nil, ErrNotStarted
	}
	return append([]catalog.Entry(nil), state.colleges...), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	state := s.state.Load()
	stats := map[string]interface{}{
		"started":     state != nil,
		"scalerPath":  s.scalerPath,
		"modelPath":   s.modelPath,
		"catalogPath": s.catalogPath,
		"predictions": s.predictions.Load(),
	}

	if state != nil {
		stats["catalogSize"] = len(state.colleges)
		stats["features"] = state.model.Width()
	}

	return stats
}
