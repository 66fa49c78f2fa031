package responses

import "time"

type Wizard struct {
	State      string            `json:"state"`
	Step       int               `json:"step"`
	TotalSteps int               `json:"total_steps"`
	StepTitle  string            `json:"step_title,omitempty"`
	Questions  []WizardQuestion  `json:"questions,omitempty"`
	Symptoms   map[string]string `json:"symptoms"`
	Result     *RiskResult       `json:"result,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type WizardQuestion struct {
	Field         string   `json:"field"`
	Value         string   `json:"value"`
	AllowedValues []string `json:"allowed_values"`
}

type RiskResult struct {
	RiskLevel      string `json:"riskLevel"`
	Probability    int    `json:"probability"`
	PrimarySuspect string `json:"primarySuspect"`
	Recommendation string `json:"recommendation"`
}
