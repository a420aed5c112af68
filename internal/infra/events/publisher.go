package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

var (
	// ErrEncodeEvent возвращается при ошибке сериализации события
	ErrEncodeEvent = errors.New("events: failed to encode event")

	// ErrPublish возвращается при ошибке отправки в Kafka
	ErrPublish = errors.New("events: failed to publish event")
)

// MessageWriter часть kafka.Writer, используемая публикатором
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher отправляет события слотов в Kafka
type Publisher struct {
	writer MessageWriter
	topic  string
	now    func() time.Time
}

// Config настройки публикатора
type Config struct {
	Brokers      string // через запятую
	Topic        string
	WriteTimeout time.Duration
}

// NewKafkaPublisher создает публикатор поверх kafka.Writer
func NewKafkaPublisher(cfg Config) (*Publisher, error) {
	brokers := SplitBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		return nil, fmt.Errorf("events: no kafka brokers configured")
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequireOne,
	}
	return NewPublisher(writer, cfg.Topic), nil
}

// NewPublisher создает публикатор с произвольным writer
func NewPublisher(writer MessageWriter, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{writer: writer, topic: topic, now: time.Now}
}

// Publish отправляет событие. Ключ сообщения - ID слота, чтобы события слота шли в одну партицию
func (p *Publisher) Publish(ctx context.Context, event SlotEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeEvent, err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.SlotID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	msg.Headers = InjectTraceHeaders(ctx, msg.Headers)

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s slot=%s: %v", ErrPublish, event.Type, event.SlotID, err)
	}
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NopPublisher используется, когда Kafka не настроена
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(context.Context, SlotEvent) error {
	return nil
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// InjectTraceHeaders добавляет W3C trace context в заголовки сообщения
func InjectTraceHeaders(ctx context.Context, headers []kafka.Header) []kafka.Header {
	carrier := &headerCarrier{headers: headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return carrier.headers
}

type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

func (c *headerCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

var _ propagation.TextMapCarrier = (*headerCarrier)(nil)
