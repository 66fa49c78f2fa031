package requests

import "time"

type HighRiskAlert struct {
	UserID       string    `json:"userId"`
	AssessmentID string    `json:"assessmentId"`
	RiskLevel    string    `json:"riskLevel"`
	Probability  int       `json:"probability"`
	CreatedAt    time.Time `json:"createdAt"`
}
