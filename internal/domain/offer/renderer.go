package offer

import (
	"fmt"
	"strings"

	"github.com/okian/engageoffer/internal/domain/model"
	"github.com/okian/engageoffer/internal/domain/risk"
	"github.com/okian/engageoffer/internal/domain/tier"
)

const defaultSignature = "The Healthcare Team"

// Request carries the identity and score a letter is rendered from.
type Request struct {
	PatientID       int
	PatientName     string
	Risk            risk.Category
	EngagementScore float64
}

// Renderer builds offer letters. It is safe for concurrent use.
type Renderer struct {
	signature string
}

// NewRenderer creates a renderer with configuration options.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		signature: defaultSignature,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the personalized offer for req. Unknown risk categories
// are not an error: the letter falls back to risk.FallbackDescription.
func (r *Renderer) Render(req Request) (model.Offer, error) {
	t := tier.Classify(req.EngagementScore)
	description, _ := risk.Description(req.Risk)

	var b strings.Builder
	err := letter.Execute(&b, letterData{
		PatientName:  req.PatientName,
		PatientID:    req.PatientID,
		Risk:         req.Risk.String(),
		Appreciation: t.Appreciation(),
		Score:        req.EngagementScore,
		Description:  description,
		Percent:      t.Percent(),
		Signature:    r.signature,
	})
	// Only reachable if letterTemplate and letterData drift apart.
	if err != nil {
		return model.Offer{}, fmt.Errorf("%w: patient %d: %v", ErrRender, req.PatientID, err)
	}

	return model.Offer{
		PatientID:       req.PatientID,
		PatientName:     req.PatientName,
		Risk:            req.Risk,
		EngagementScore: req.EngagementScore,
		DiscountPercent: t.Percent(),
		Tier:            t.String(),
		Text:            b.String(),
	}, nil
}
