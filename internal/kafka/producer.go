package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
)

type Producer interface {
	SendSuspiciousActivityEvent(ctx context.Context, event models.SuspiciousActivityEvent) error
	SendLargeRemittanceEvent(ctx context.Context, event models.LargeRemittanceEvent) error
	Close() error
}

type KafkaProducer struct {
	producer        sarama.SyncProducer
	riskTopic       string
	remittanceTopic string
	log             *slog.Logger
}

func NewKafkaProducer(brokers []string, riskTopic, remittanceTopic string, log *slog.Logger) (Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.Info("kafka producer creado",
		slog.String("risk_topic", riskTopic),
		slog.String("remittance_topic", remittanceTopic),
		slog.Any("brokers", brokers))

	return &KafkaProducer{
		producer:        producer,
		riskTopic:       riskTopic,
		remittanceTopic: remittanceTopic,
		log:             log,
	}, nil
}

func (p *KafkaProducer) SendSuspiciousActivityEvent(ctx context.Context, event models.SuspiciousActivityEvent) error {
	return p.send(ctx, p.riskTopic, event.SenderDoc, event)
}

func (p *KafkaProducer) SendLargeRemittanceEvent(ctx context.Context, event models.LargeRemittanceEvent) error {
	return p.send(ctx, p.remittanceTopic, event.Reference, event)
}

func (p *KafkaProducer) send(ctx context.Context, topic, key string, event any) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(eventData),
	}

	type result struct {
		partition int32
		offset    int64
		err       error
	}

	resultCh := make(chan result, 1)

	go func() {
		partition, offset, err := p.producer.SendMessage(msg)
		resultCh <- result{partition, offset, err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			p.log.Error("kafka send failed",
				slog.String("topic", topic),
				slog.String("key", key),
				slog.String("error", res.err.Error()))
			return res.err
		}
		p.log.Debug("kafka send success",
			slog.String("topic", topic),
			slog.Int("partition", int(res.partition)),
			slog.Int64("offset", res.offset))
		return nil

	case <-ctx.Done():
		p.log.Warn("kafka send cancelled", slog.String("topic", topic))
		return ctx.Err()
	}
}

func (p *KafkaProducer) Close() error {
	if p.producer == nil {
		return nil
	}
	p.log.Info("cerrando kafka producer")
	return p.producer.Close()
}

type NoOpProducer struct {
	log *slog.Logger
}

func NewNoOpProducer(log *slog.Logger) Producer {
	return &NoOpProducer{log: log}
}

func (p *NoOpProducer) SendSuspiciousActivityEvent(ctx context.Context, event models.SuspiciousActivityEvent) error {
	p.log.Debug("kafka deshabilitado, evento de riesgo no enviado", slog.String("sender_doc", event.SenderDoc))
	return nil
}

func (p *NoOpProducer) SendLargeRemittanceEvent(ctx context.Context, event models.LargeRemittanceEvent) error {
	p.log.Debug("kafka deshabilitado, evento de remesa no enviado", slog.String("reference", event.Reference))
	return nil
}

func (p *NoOpProducer) Close() error {
	return nil
}
