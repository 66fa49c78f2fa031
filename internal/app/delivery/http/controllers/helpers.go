package controllers

import (
	"context"
	"errors"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/exceptions"
	"neonatal-triage-service/internal/pkg/utils"
	"net/http"
)

// requestIdentity reads the request id and the authenticated subject placed in
// the context by the middlewares.
func requestIdentity(r *http.Request) (requestID, subjectID string, err error) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		return "", "", exceptions.ErrMissingRequestID(nil)
	}
	subjectID, ok = r.Context().Value(constvars.CONTEXT_SUBJECT_ID_KEY).(string)
	if !ok || subjectID == "" {
		return requestID, "", exceptions.ErrMissingSubjectID(nil)
	}
	return requestID, subjectID, nil
}

func mapDeadline(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return exceptions.ErrServerDeadlineExceeded(err)
	}
	return err
}

// decodeRequestBody reports an oversized body separately from malformed JSON.
func decodeRequestBody(r *http.Request, target interface{}) error {
	err := utils.DecodeStrictJSON(r.Body, target)
	if err == nil {
		return nil
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return exceptions.ErrReadBody(err)
	}
	return exceptions.ErrCannotParseJSON(err)
}
