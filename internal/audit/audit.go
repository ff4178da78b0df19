// Package audit publishes authentication events. With brokers configured
// events go to a Kafka topic; otherwise they are written to the log.
//
// Publishing never fails the calling request: errors are logged and dropped.
package audit

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/MKhiriev/go-dashboard/internal/config"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/models"
)

//go:generate mockgen -source=audit.go -destination=../mock/audit_mock.go -package=mock

// Publisher records authentication events.
type Publisher interface {
	Publish(ctx context.Context, event models.AuditEvent)
	Close() error
}

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewPublisher returns a Kafka publisher when cfg.Brokers is set and a
// log-only publisher otherwise.
func NewPublisher(cfg config.Audit, log *logger.Logger) Publisher {
	if len(cfg.Brokers) == 0 {
		log.Info().Str("func", "audit.NewPublisher").Msg("audit brokers not configured, audit events go to the log")
		return &logPublisher{logger: log}
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Err(err).Str("func", "kafka.Writer.Completion").Int("messages", len(messages)).Msg("error delivering audit events")
			}
		},
	}

	return newKafkaPublisher(w, log)
}

type kafkaPublisher struct {
	writer messageWriter
	logger *logger.Logger
}

func newKafkaPublisher(w messageWriter, log *logger.Logger) *kafkaPublisher {
	return &kafkaPublisher{writer: w, logger: log}
}

// Publish keys messages by user id so one account's events stay ordered.
func (p *kafkaPublisher) Publish(ctx context.Context, event models.AuditEvent) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*kafkaPublisher.Publish").Msg("error encoding audit event")
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.UserID, 10)),
		Value: value,
		Time:  event.At,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*kafkaPublisher.Publish").Str("type", string(event.Type)).Msg("error publishing audit event")
	}
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type logPublisher struct {
	logger *logger.Logger
}

func (p *logPublisher) Publish(ctx context.Context, event models.AuditEvent) {
	logger.FromContext(ctx).Info().
		Str("audit", string(event.Type)).
		Int64("user_id", event.UserID).
		Str("identifier", event.Identifier).
		Str("ip", event.IP).
		Str("reason", event.Reason).
		Msg("audit event")
}

func (p *logPublisher) Close() error {
	return nil
}
