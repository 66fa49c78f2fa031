package classifier

import (
	"context"
	"math"
	"neonatal-triage-service/internal/app/contracts"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/dto/requests"
	"neonatal-triage-service/internal/pkg/dto/responses"
	"neonatal-triage-service/internal/pkg/exceptions"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type classifierClient struct {
	httpClient *resty.Client
	Log        *zap.Logger
}

// NewClassifierClient builds a client for the diagnosis endpoint. Calls are
// never retried; a failed call is reported once to the caller.
func NewClassifierClient(baseURL string, timeout time.Duration, logger *zap.Logger) contracts.ClassifierClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetHeader(constvars.HeaderContentType, constvars.MIMEApplicationJSON).
		SetHeader(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	return &classifierClient{
		httpClient: client,
		Log:        logger,
	}
}

func (c *classifierClient) Diagnose(ctx context.Context, request *requests.Diagnosis) (*responses.Diagnosis, []byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("classifierClient.Diagnose called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEndpointKey, constvars.ClassifierDiagnosis),
	)

	start := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		Post(constvars.ClassifierDiagnosis)
	if err != nil {
		c.Log.Error("classifierClient.Diagnose error calling classifier",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		return nil, nil, exceptions.ErrClassifierCall(err)
	}

	if !resp.IsSuccess() {
		c.Log.Error("classifierClient.Diagnose classifier responded with non-success status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingClassifierStatusKey, resp.StatusCode()),
		)
		return nil, nil, exceptions.ErrClassifierStatus(resp.StatusCode())
	}

	body := resp.Body()
	response, err := DecodeDiagnosis(body)
	if err != nil {
		c.Log.Error("classifierClient.Diagnose malformed classifier response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, nil, err
	}

	c.Log.Info("classifierClient.Diagnose succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClassifierLabelKey, *response.RecomendacionPrincipal),
		zap.Float64(constvars.LoggingConfidenceKey, *response.Confianza),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	return response, body, nil
}

// DecodeDiagnosis parses a classifier body and rejects replies without a label
// or with a confidence outside [0, 1].
func DecodeDiagnosis(body []byte) (*responses.Diagnosis, error) {
	var response responses.Diagnosis
	err := json.Unmarshal(body, &response)
	if err != nil {
		return nil, exceptions.ErrClassifierDecodeResponse(err)
	}

	if response.RecomendacionPrincipal == nil || *response.RecomendacionPrincipal == "" {
		return nil, exceptions.ErrClassifierMissingField("recomendacion_principal")
	}
	if response.Confianza == nil {
		return nil, exceptions.ErrClassifierMissingField("confianza")
	}

	confidence := *response.Confianza
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return nil, exceptions.ErrClassifierConfidence(confidence)
	}
	return &response, nil
}
