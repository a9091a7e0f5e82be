// Package service runs the offer pipeline: it scores every patient record,
// renders the personalized letters and prints them.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	repository "github.com/okian/engageoffer/internal/adapters/repository"
	"github.com/okian/engageoffer/internal/domain/model"
	"github.com/okian/engageoffer/internal/domain/offer"
	"github.com/okian/engageoffer/internal/domain/scoring"
	"github.com/okian/engageoffer/pkg/logger"
	"github.com/okian/engageoffer/pkg/metrics"
)

// Default separator between printed letters.
const (
	defaultRuleWidth = 80
	defaultRuleChar  = "="
)

// Failure describes a record the pipeline could not turn into an offer.
type Failure struct {
	PatientID int    `json:"patient_id"`
	Name      string `json:"patient_name"`
	Risk      string `json:"risk"`
	Err       error  `json:"-"`
	Message   string `json:"error"`
}

// Batch is the result of one pass over the dataset.
type Batch struct {
	RunID    string        `json:"run_id"`
	Offers   []model.Offer `json:"offers"`
	Failures []Failure     `json:"failures"`
}

// Err joins the errors of every failure, or returns nil.
func (b Batch) Err() error {
	errs := make([]error, 0, len(b.Failures))
	for _, f := range b.Failures {
		errs = append(errs, f.Err)
	}
	return errors.Join(errs...)
}

// Service implements the pipeline and the read API over it.
type Service struct {
	store    repository.Store
	scorer   scoring.Scorer
	renderer *offer.Renderer

	ruleWidth int
	ruleChar  string
	signature string

	mu      sync.Mutex
	runs    int
	lastRun string

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the patient store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithScorer sets the engagement scorer.
func WithScorer(scorer scoring.Scorer) Option {
	return func(s *Service) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRule sets the separator printed between letters.
func WithRule(width int, char string) Option {
	return func(s *Service) {
		if width > 0 {
			s.ruleWidth = width
		}
		if char != "" {
			s.ruleChar = char
		}
	}
}

// WithSignature sets the team name printed under each letter.
func WithSignature(signature string) Option {
	return func(s *Service) {
		s.signature = signature
	}
}

// New constructs a Service. Without options it runs over the seed dataset.
func New(opts ...Option) *Service {
	s := &Service{
		ruleWidth: defaultRuleWidth,
		ruleChar:  defaultRuleChar,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = repository.NewInMemoryStore()
	}
	if s.scorer == nil {
		s.scorer = scoring.NewInMemoryScorer()
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("pipeline")
	}
	s.renderer = offer.NewRenderer(offer.WithSignature(s.signature))

	return s
}

// Generate scores one record and renders its letter. Scoring errors wrap
// risk.ErrUnknownCategory; an unknown category never fails rendering.
func (s *Service) Generate(ctx context.Context, rec model.PatientRecord) (model.Offer, error) {
	result, err := s.scorer.Score(ctx, scoring.Input{
		PatientID:     rec.ID,
		Visits:        rec.Visits,
		Category:      rec.Risk,
		FeedbackScore: rec.FeedbackScore,
	})
	if err != nil {
		metrics.RecordScoringError(rec.Risk.String())
		return model.Offer{}, err
	}
	metrics.RecordScored(result.Score)

	if !rec.Risk.Known() {
		metrics.RecordDescriptionFallback()
	}

	o, err := s.renderer.Render(offer.Request{
		PatientID:       rec.ID,
		PatientName:     rec.Name,
		Risk:            rec.Risk,
		EngagementScore: result.Score,
	})
	if err != nil {
		metrics.RecordRenderError()
		return model.Offer{}, err
	}
	metrics.RecordOfferRendered(o.DiscountPercent)
	return o, nil
}

// Offer generates the letter for a single patient id.
func (s *Service) Offer(ctx context.Context, patientID int) (model.Offer, error) {
	rec, err := s.store.Get(ctx, patientID)
	if err != nil {
		return model.Offer{}, err
	}
	return s.Generate(ctx, rec)
}

// Offers runs the pipeline over the whole dataset. A record that fails is
// reported in Batch.Failures and does not stop the others.
func (s *Service) Offers(ctx context.Context) (Batch, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return Batch{}, err
	}

	runID := uuid.NewString()
	log := s.logger.With(logger.String("run_id", runID))
	metrics.RecordPipelineRun()

	batch := Batch{
		RunID:    runID,
		Offers:   make([]model.Offer, 0, len(records)),
		Failures: []Failure{},
	}
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return batch, fmt.Errorf("run %s: %w", runID, err)
		}
		o, err := s.Generate(ctx, rec)
		if err != nil {
			log.Error(ctx, "record skipped",
				logger.Int("patient_id", rec.ID),
				logger.String("risk", rec.Risk.String()),
				logger.Error(err),
			)
			batch.Failures = append(batch.Failures, Failure{
				PatientID: rec.ID,
				Name:      rec.Name,
				Risk:      rec.Risk.String(),
				Err:       err,
				Message:   err.Error(),
			})
			continue
		}
		log.Debug(ctx, "offer rendered",
			logger.Int("patient_id", o.PatientID),
			logger.Float64("engagement_score", o.EngagementScore),
			logger.Int("discount", o.DiscountPercent),
		)
		batch.Offers = append(batch.Offers, o)
	}

	s.mu.Lock()
	s.runs++
	s.lastRun = runID
	s.mu.Unlock()

	log.Info(ctx, "pipeline finished",
		logger.Int("records", len(records)),
		logger.Int("offers", len(batch.Offers)),
		logger.Int("failures", len(batch.Failures)),
	)
	return batch, nil
}

// Run prints every letter to w, each followed by a blank line, the rule and
// another blank line. It returns the joined errors of skipped records.
func (s *Service) Run(ctx context.Context, w io.Writer) error {
	batch, err := s.Offers(ctx)
	if err != nil {
		return err
	}

	rule := strings.Repeat(s.ruleChar, s.ruleWidth)
	for _, o := range batch.Offers {
		if _, err := fmt.Fprintf(w, "%s\n\n%s\n\n", o.Text, rule); err != nil {
			return fmt.Errorf("write offer for patient %d: %w", o.PatientID, err)
		}
	}
	return batch.Err()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"patients":  s.store.Count(context.Background()),
		"runs":      s.runs,
		"lastRunID": s.lastRun,
		"ruleWidth": s.ruleWidth,
	}
}
