package models

import (
	"neonatal-triage-service/internal/pkg/constvars"
	"time"
)

// RiskResult is the user-facing outcome of one assessment. A RiskLevel of
// "Error" is a sentinel: probability is always 0 and the texts are fixed.
type RiskResult struct {
	RiskLevel      string `json:"riskLevel" bson:"riskLevel"`
	Probability    int    `json:"probability" bson:"probability"`
	PrimarySuspect string `json:"primarySuspect" bson:"primarySuspect"`
	Recommendation string `json:"recommendation" bson:"recommendation"`
}

func (r RiskResult) IsError() bool {
	return r.RiskLevel == constvars.RiskLevelError
}

// NewErrorRiskResult returns the sentinel shown when an assessment could not be classified.
func NewErrorRiskResult() RiskResult {
	return RiskResult{
		RiskLevel:      constvars.RiskLevelError,
		Probability:    0,
		PrimarySuspect: constvars.PrimarySuspectError,
		Recommendation: constvars.RecommendationError,
	}
}

// AssessmentRecord is an append-only entry in the assessment history.
type AssessmentRecord struct {
	ID                    string          `json:"id" bson:"_id"`
	UserID                string          `json:"userId" bson:"userId"`
	Timestamp             string          `json:"timestamp" bson:"timestamp"`
	Profile               NeonatalProfile `json:"perfilNeonatal" bson:"perfilNeonatal"`
	Symptoms              SymptomSet      `json:"sintomas" bson:"sintomas"`
	Result                RiskResult      `json:"resultado" bson:"resultado"`
	RawClassifierResponse map[string]any  `json:"rawClassifierResponse,omitempty" bson:"rawClassifierResponse,omitempty"`
	CreatedAt             time.Time       `json:"createdAt" bson:"createdAt"`
}

// SessionContext carries the authenticated subject and its profile into
// result resolution.
type SessionContext struct {
	SubjectID string
	Profile   NeonatalProfile
}
