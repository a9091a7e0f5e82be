// Package scoring computes patient engagement scores from visit counts,
// treatment weights and feedback.
package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/engageoffer/internal/domain/risk"
)

// Scoring constants.
const (
	pointsPerVisit = 10
	maxScoreValue  = 100
)

// Input abstracts the record fields needed for scoring.
type Input struct {
	PatientID     int
	Visits        int
	Category      risk.Category
	FeedbackScore float64
}

// Result contains the computed score for a patient.
type Result struct {
	PatientID int
	Score     float64
}

// Scorer computes an engagement score from an input.
type Scorer interface {
	// Score computes a score, honoring ctx for cancellation.
	Score(ctx context.Context, in Input) (Result, error)
}

// InMemoryScorer implements Scorer over the static weight table.
type InMemoryScorer struct{}

// NewInMemoryScorer creates a scorer backed by the risk weight table.
func NewInMemoryScorer() *InMemoryScorer {
	return &InMemoryScorer{}
}

// Score computes the engagement score for the given input. It fails with an
// error wrapping risk.ErrUnknownCategory when the category has no weight.
func (s *InMemoryScorer) Score(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("score patient %d: %w", in.PatientID, err)
	}
	score, err := EngagementScore(in.Visits, in.Category, in.FeedbackScore)
	if err != nil {
		return Result{}, fmt.Errorf("score patient %d: %w", in.PatientID, err)
	}
	return Result{PatientID: in.PatientID, Score: score}, nil
}

// EngagementScore returns visits*10 + weight(category)*feedback, capped at
// 100. There is no lower bound: negative feedback yields negative scores.
func EngagementScore(visits int, category risk.Category, feedbackScore float64) (float64, error) {
	weight, err := risk.Weight(category)
	if err != nil {
		return 0, err
	}
	score := float64(visits)*pointsPerVisit + weight*feedbackScore
	return math.Min(score, maxScoreValue), nil
}
