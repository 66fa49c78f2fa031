package wizard

import (
	"neonatal-triage-service/internal/app/models"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/dto/responses"
)

// BuildWizardResponse renders a session. Questions are listed only while a step is shown.
func BuildWizardResponse(session *models.WizardSession) *responses.Wizard {
	response := &responses.Wizard{
		State:      session.State,
		Step:       session.Step,
		TotalSteps: TotalSteps,
		Symptoms:   session.Symptoms.Fields(),
		UpdatedAt:  session.UpdatedAt,
	}

	if session.State == constvars.WizardStateStep && session.Step >= 1 && session.Step <= TotalSteps {
		step := Steps[session.Step-1]
		response.StepTitle = step.Title
		for _, field := range step.Fields {
			value, _ := session.Symptoms.Get(field)
			response.Questions = append(response.Questions, responses.WizardQuestion{
				Field:         field,
				Value:         value,
				AllowedValues: models.SymptomAllowedValues[field],
			})
		}
	}

	if session.Result != nil {
		response.Result = &responses.RiskResult{
			RiskLevel:      session.Result.RiskLevel,
			Probability:    session.Result.Probability,
			PrimarySuspect: session.Result.PrimarySuspect,
			Recommendation: session.Result.Recommendation,
		}
	}
	return response
}
