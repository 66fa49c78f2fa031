package wizard

import (
	"errors"
	"fmt"
	"neonatal-triage-service/internal/app/models"
	"neonatal-triage-service/internal/pkg/constvars"
	"time"
)

var (
	ErrBusy              = errors.New("wizard is analyzing")
	ErrInvalidTransition = errors.New("transition not allowed in current state")
	ErrUnknownField      = errors.New("unknown symptom field")
	ErrFieldNotOnStep    = errors.New("field does not belong to current step")
	ErrInvalidValue      = errors.New("value not allowed for field")
)

// FieldError reports a rejected SetField. Err is one of the field sentinels above.
type FieldError struct {
	Field string
	Value string
	Step  int
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %q value %q step %d", e.Err, e.Field, e.Value, e.Step)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// IncompleteError blocks a submission and names the first unanswered field.
type IncompleteError struct {
	Field string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("symptom %s has no answer", e.Field)
}

type Step struct {
	Number int
	Title  string
	Fields []string
}

var Steps = []Step{
	{
		Number: 1,
		Title:  constvars.WizardStepTitleBreathing,
		Fields: []string{
			constvars.FieldAntibioticUse,
			constvars.FieldCough,
			constvars.FieldTemperature,
			constvars.FieldRespiratoryEffort,
		},
	},
	{
		Number: 2,
		Title:  constvars.WizardStepTitleFeeding,
		Fields: []string{
			constvars.FieldAppetite,
			constvars.FieldWetDiaperFrequency,
			constvars.FieldVomitCharacteristics,
		},
	},
	{
		Number: 3,
		Title:  constvars.WizardStepTitleAppearance,
		Fields: []string{
			constvars.FieldSkinColor,
			constvars.FieldConsciousnessLevel,
		},
	},
}

var TotalSteps = len(Steps)

// StepOf returns the step that owns field, or 0 when the field is unknown.
func StepOf(field string) int {
	for _, step := range Steps {
		for _, name := range step.Fields {
			if name == field {
				return step.Number
			}
		}
	}
	return 0
}

func NewSession(subjectID string, now time.Time) *models.WizardSession {
	return &models.WizardSession{
		UserID:    subjectID,
		State:     constvars.WizardStateStep,
		Step:      1,
		UpdatedAt: now,
	}
}

// Machine applies wizard transitions to a session in place. A rejected
// transition leaves the session untouched.
type Machine struct {
	Session *models.WizardSession
	Now     func() time.Time
}

func NewMachine(session *models.WizardSession) *Machine {
	return &Machine{Session: session, Now: time.Now}
}

func (m *Machine) SetField(field, value string) error {
	if err := m.requireStepState(); err != nil {
		return err
	}

	owner := StepOf(field)
	if owner == 0 {
		return &FieldError{Field: field, Value: value, Step: m.Session.Step, Err: ErrUnknownField}
	}
	if owner != m.Session.Step {
		return &FieldError{Field: field, Value: value, Step: m.Session.Step, Err: ErrFieldNotOnStep}
	}
	if value != "" && !models.IsAllowedSymptomValue(field, value) {
		return &FieldError{Field: field, Value: value, Step: m.Session.Step, Err: ErrInvalidValue}
	}

	m.Session.Symptoms.Set(field, value)
	m.touch()
	return nil
}

// Next advances without validating the current step.
func (m *Machine) Next() error {
	if err := m.requireStepState(); err != nil {
		return err
	}
	if m.Session.Step >= TotalSteps {
		return ErrInvalidTransition
	}
	m.Session.Step++
	m.touch()
	return nil
}

func (m *Machine) Back() error {
	if err := m.requireStepState(); err != nil {
		return err
	}
	if m.Session.Step <= 1 {
		return ErrInvalidTransition
	}
	m.Session.Step--
	m.touch()
	return nil
}

// BeginSubmit moves the last step into analyzing once every symptom has an answer.
func (m *Machine) BeginSubmit() error {
	if err := m.requireStepState(); err != nil {
		return err
	}
	if m.Session.Step != TotalSteps {
		return ErrInvalidTransition
	}
	if missing := m.Session.Symptoms.FirstMissing(); missing != "" {
		return &IncompleteError{Field: missing}
	}
	m.Session.State = constvars.WizardStateAnalyzing
	m.touch()
	return nil
}

func (m *Machine) Complete(result models.RiskResult) error {
	if m.Session.State != constvars.WizardStateAnalyzing {
		return ErrInvalidTransition
	}
	m.Session.State = constvars.WizardStateResult
	m.Session.Result = &result
	m.touch()
	return nil
}

// NewAssessment starts over from the first step with every answer cleared.
func (m *Machine) NewAssessment() error {
	if m.Session.State == constvars.WizardStateAnalyzing {
		return ErrBusy
	}
	if m.Session.State != constvars.WizardStateResult {
		return ErrInvalidTransition
	}
	m.Session.State = constvars.WizardStateStep
	m.Session.Step = 1
	m.Session.Symptoms = models.SymptomSet{}
	m.Session.Result = nil
	m.touch()
	return nil
}

// Exit is only offered on the first step. The caller discards the session.
func (m *Machine) Exit() error {
	if err := m.requireStepState(); err != nil {
		return err
	}
	if m.Session.Step != 1 {
		return ErrInvalidTransition
	}
	return nil
}

func (m *Machine) requireStepState() error {
	switch m.Session.State {
	case constvars.WizardStateStep:
		return nil
	case constvars.WizardStateAnalyzing:
		return ErrBusy
	default:
		return ErrInvalidTransition
	}
}

func (m *Machine) touch() {
	m.Session.UpdatedAt = m.Now()
}
