package models

import "time"

// WizardSession is the persisted snapshot of one subject's assessment wizard.
type WizardSession struct {
	UserID    string      `json:"userId"`
	State     string      `json:"state"`
	Step      int         `json:"step"`
	Symptoms  SymptomSet  `json:"symptoms"`
	Result    *RiskResult `json:"result,omitempty"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
