// Package model contains domain models passed between layers.
package model

import "github.com/okian/engageoffer/internal/domain/risk"

// PatientRecord is one row of the patient dataset.
type PatientRecord struct {
	ID            int           `json:"patient_id"`
	Name          string        `json:"patient_name"`
	Risk          risk.Category `json:"risk"`
	Visits        int           `json:"visits"`
	FeedbackScore float64       `json:"feedback_score"` // expected 0-100, not validated
}

// Offer is a rendered personalized offer letter together with the values it
// was built from.
type Offer struct {
	PatientID       int           `json:"patient_id"`
	PatientName     string        `json:"patient_name"`
	Risk            risk.Category `json:"risk"`
	EngagementScore float64       `json:"engagement_score"`
	DiscountPercent int           `json:"discount_percent"`
	Tier            string        `json:"tier"`
	Text            string        `json:"text"`
}
