package utils

import (
	"neonatal-triage-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

func GenerateAssessmentID() string {
	return uuid.NewString()
}
