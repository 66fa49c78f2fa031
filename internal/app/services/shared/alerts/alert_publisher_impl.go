package alerts

import (
	"context"
	"neonatal-triage-service/internal/app/contracts"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/dto/requests"
	"neonatal-triage-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	IsClosed() bool
	Close() error
}

// alertPublisher owns one AMQP channel. A channel closed by the broker is
// replaced through openChannel on the next publish.
type alertPublisher struct {
	Channel     publisher
	Queue       string
	Log         *zap.Logger
	openChannel func() (publisher, error)
	mu          sync.Mutex
}

var (
	alertPublisherInstance contracts.AlertPublisher
	onceAlertPublisher     sync.Once
	alertPublisherError    error
)

func NewAlertPublisher(rabbitMQConnection *amqp091.Connection, logger *zap.Logger, queue string) (contracts.AlertPublisher, error) {
	onceAlertPublisher.Do(func() {
		openChannel := func() (publisher, error) {
			return rabbitMQConnection.Channel()
		}
		channel, err := openChannel()
		if err != nil {
			alertPublisherError = err
			return
		}
		instance := &alertPublisher{
			Channel:     channel,
			Queue:       queue,
			Log:         logger,
			openChannel: openChannel,
		}
		alertPublisherInstance = instance
	})
	return alertPublisherInstance, alertPublisherError
}

func (s *alertPublisher) PublishHighRisk(ctx context.Context, alert *requests.HighRiskAlert) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("alertPublisher.PublishHighRisk called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAssessmentIDKey, alert.AssessmentID),
	)

	body, err := json.Marshal(alert)
	if err != nil {
		s.Log.Error("alertPublisher.PublishHighRisk error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		MessageId:    alert.AssessmentID,
		Timestamp:    alert.CreatedAt,
		Headers: amqp091.Table{
			"message_type": "HIGH_RISK_ASSESSMENT",
		},
	}

	channel, err := s.channel()
	if err != nil {
		s.Log.Error("alertPublisher.PublishHighRisk error reopening channel",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, s.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	err = channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		s.Log.Error("alertPublisher.PublishHighRisk error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, s.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	s.Log.Info("alertPublisher.PublishHighRisk succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.Queue),
	)
	return nil
}

func (s *alertPublisher) channel() (publisher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Channel.IsClosed() {
		return s.Channel, nil
	}
	if s.openChannel == nil {
		return nil, amqp091.ErrClosed
	}

	channel, err := s.openChannel()
	if err != nil {
		return nil, err
	}
	s.Log.Warn("alertPublisher.channel reopened closed channel", zap.String(constvars.LoggingQueueNameKey, s.Queue))
	s.Channel = channel
	return channel, nil
}

func (s *alertPublisher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Channel.IsClosed() {
		return nil
	}
	return s.Channel.Close()
}

type noopAlertPublisher struct {
	Log *zap.Logger
}

// NewNoopAlertPublisher is used when high-risk alerts are disabled.
func NewNoopAlertPublisher(logger *zap.Logger) contracts.AlertPublisher {
	return &noopAlertPublisher{Log: logger}
}

func (s *noopAlertPublisher) PublishHighRisk(ctx context.Context, alert *requests.HighRiskAlert) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Debug("noopAlertPublisher.PublishHighRisk alerts disabled",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAssessmentIDKey, alert.AssessmentID),
	)
	return nil
}

func (s *noopAlertPublisher) Close() error {
	return nil
}
