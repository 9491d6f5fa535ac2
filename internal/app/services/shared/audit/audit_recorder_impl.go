package audit

import (
	"context"
	"labtrail-service/internal/app/contracts"
	"labtrail-service/internal/app/models"
	"labtrail-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type auditRecorder struct {
	channel   *amqp091.Channel
	queueName string
	Log       *zap.Logger
}

func NewAuditRecorder(conn *amqp091.Connection, queueName string, logger *zap.Logger) (contracts.AuditRecorder, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &auditRecorder{
		channel:   channel,
		queueName: queueName,
		Log:       logger,
	}, nil
}

// Record publishes the event and drops it on failure; custody operations must
// never fail because the audit collaborator is unreachable.
func (a *auditRecorder) Record(ctx context.Context, event *models.AuditEvent) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(event)
	if err != nil {
		a.Log.Error("auditRecorder.Record error marshalling event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAuditEventKey, event.Event),
			zap.Error(err),
		)
		return
	}

	err = a.channel.PublishWithContext(ctx, "", a.queueName, false, false, amqp091.Publishing{
		ContentType: constvars.MIMEApplicationJSON,
		Body:        body,
	})
	if err != nil {
		a.Log.Error("auditRecorder.Record error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAuditEventKey, event.Event),
			zap.Error(err),
		)
		return
	}

	a.Log.Info("auditRecorder.Record published event",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAuditEventKey, event.Event),
	)
}
