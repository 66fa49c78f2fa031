package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"oneof":    "must be one of [%s]",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"len":      "must be %s characters long",
	"uuid":     "must be a valid UUID",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"oneof": true,
	"min":   true,
	"max":   true,
	"len":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientProfileNotFound               = "neonatal profile not found, please complete the profile first"
	ErrClientProfileRequired               = "complete the neonatal profile before starting an assessment"
	ErrClientIncompleteSymptoms            = "please answer every question before analyzing"
	ErrClientWizardBusy                    = "the assessment is being analyzed, please wait"
	ErrClientWizardInvalidTransition       = "this action is not available at the current step"
	ErrClientWizardUnknownField            = "unknown assessment field"
	ErrClientWizardInvalidValue            = "invalid value for assessment field"
	ErrClientAssessmentNotFound            = "no assessments found"
	ErrClientSubmitQuotaExceeded           = "too many assessments submitted, please try again later"
	ErrClientServiceUnavailable            = "the service is temporarily unavailable"
)

// Error messages for developers
const (
	ErrDevInvalidInput           = "invalid input"
	ErrDevCannotParseJSON        = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON      = "cannot convert struct or other data types to JSON"
	ErrDevReadBody               = "cannot read request body"
	ErrDevServerDeadlineExceeded = "server deadline exceeded"
	ErrDevServerProcess          = "server failed to process the request"
	ErrDevValidationFailed       = "validation failed"
	ErrDevRateLimited            = "rate limit exceeded"
	ErrDevMissingRequestID       = "request id not found in context"
	ErrDevMissingSubjectID       = "subject id not found in context"
	ErrDevDependencyUnavailable  = "dependency %s is unavailable"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthSubjectMissing        = "token has no subject claim"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"
	ErrDevDBFailedToCreateIndex      = "failed to create index on collection %s"

	// Redis messages
	ErrDevRedisSetData    = "failed to SET data into redis"
	ErrDevRedisGetData    = "failed to GET data from redis"
	ErrDevRedisGetNoData  = "failed to GET data from redis, there is no data associated with key %s"
	ErrDevRedisDeleteData = "failed to DELETE data from redis"
	ErrDevRedisUnlock     = "failed to release redis lock"
	ErrDevRedisRefresh    = "failed to refresh redis lock"
	ErrDevRedisIncrement  = "failed to INCREMENT data in redis"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into queue %s"

	// Classifier messages
	ErrDevClassifierCall           = "failed to call classifier service"
	ErrDevClassifierStatus         = "classifier service responded with status %d"
	ErrDevClassifierDecodeResponse = "failed to decode classifier response"
	ErrDevClassifierMissingField   = "classifier response is missing field %s"
	ErrDevClassifierConfidence     = "classifier confidence %v is outside [0, 1]"
	ErrDevClassifierUnknownLabel   = "classifier returned unknown label %q"

	// Domain messages
	ErrDevProfileNotFound         = "no neonatal profile in durable store or cache"
	ErrDevProfileRequired         = "profile required before submission"
	ErrDevIncompleteSymptoms      = "symptom field %s is empty"
	ErrDevWizardBusy              = "wizard is analyzing"
	ErrDevWizardInvalidTransition = "invalid wizard transition"
	ErrDevWizardUnknownField      = "unknown wizard field %q"
	ErrDevWizardFieldNotOnStep    = "field %q does not belong to step %d"
	ErrDevWizardInvalidValue      = "value %q is not allowed for field %q"
	ErrDevWizardLockNotAcquired   = "wizard lock not acquired for subject %s"
	ErrDevAssessmentNotFound      = "no assessment records for subject"
	ErrDevSubmitQuotaExceeded     = "assessment submission quota exceeded"
)
