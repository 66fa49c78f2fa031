package constvars

type ContextKey string

const (
	ResourceProfile     = "profile"
	ResourceAssessments = "assessments"
	ResourceWizard      = "wizard"
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_SUBJECT_ID_KEY           ContextKey = "subject_id"
)

const (
	REQUEST_ID_PREFIX = "NNTRG_SVC_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)
