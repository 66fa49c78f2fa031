package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingDataKey         = "data"
	LoggingRequestKey      = "request"
	LoggingResponseKey     = "response"
	LoggingErrorCodeKey    = "error_code"
	LoggingErrorMessageKey = "error_message"
	LoggingOperationKey    = "operation"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingQueueNameKey          = "queue_name"

	LoggingSubjectIDKey        = "subject_id"
	LoggingAssessmentIDKey     = "assessment_id"
	LoggingAssessmentCountKey  = "assessment_count"
	LoggingRiskLevelKey        = "risk_level"
	LoggingProbabilityKey      = "probability"
	LoggingConfidenceKey       = "confidence"
	LoggingClassifierLabelKey  = "classifier_label"
	LoggingClassifierStatusKey = "classifier_status"
	LoggingWizardStateKey      = "wizard_state"
	LoggingWizardStepKey       = "wizard_step"
	LoggingWizardFieldKey      = "wizard_field"
	LoggingProfileSourceKey    = "profile_source"
)
