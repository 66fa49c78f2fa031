package middlewares

import (
	"context"
	"errors"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/exceptions"
	"neonatal-triage-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate resolves the bearer token into the subject id every
// profile, wizard and assessment operation is keyed on.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constvars.AuthorizationBearer) {
			utils.LogSecurityEvent(m.Log, "missing_bearer_token", requestID, "low",
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.AuthorizationBearer))
		subjectID, err := utils.ParseSubjectJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.LogSecurityEvent(m.Log, "invalid_bearer_token", requestID, "medium",
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.Error(err),
			)
			if errors.Is(err, utils.ErrSubjectMissing) {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenSubjectMissing(err))
				return
			}
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SUBJECT_ID_KEY, subjectID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
