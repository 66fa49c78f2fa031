package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	GetProfileSuccessMessage  = "get neonatal profile successfully"
	SaveProfileSuccessMessage = "neonatal profile saved successfully"

	GetWizardSuccessMessage           = "get assessment wizard successfully"
	UpdateWizardFieldSuccessMessage   = "assessment field updated successfully"
	WizardNextStepSuccessMessage      = "moved to next step successfully"
	WizardPreviousStepSuccessMessage  = "moved to previous step successfully"
	SubmitAssessmentSuccessMessage    = "assessment analyzed successfully"
	SubmitAssessmentFailedMessage     = "the assessment could not be analyzed, please start a new assessment"
	NewAssessmentSuccessMessage       = "new assessment started successfully"
	ExitWizardSuccessMessage          = "assessment wizard closed successfully"
	GetAssessmentsSuccessMessage      = "get assessment history successfully"
	GetLatestAssessmentSuccessMessage = "get latest assessment successfully"
	HealthCheckSuccessMessage         = "service is healthy"
	ReadinessCheckSuccessMessage      = "service is ready"
)
