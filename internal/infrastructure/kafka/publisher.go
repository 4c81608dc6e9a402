// Package kafka publica los eventos de cambio de las colecciones en un tópico Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
	"github.com/jhoicas/tienda-admin-api/pkg/config"
)

var (
	_ repository.ChangePublisher = (*Publisher)(nil)
	_ repository.ChangePublisher = NoopPublisher{}
)

// Publisher implementa ChangePublisher con un SyncProducer de Sarama.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      zerolog.Logger
}

// NewProducerConfig configuración del productor: ack de todas las réplicas y reintentos acotados.
func NewProducerConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = true // requerido por SyncProducer
	cfg.Producer.Timeout = 5 * time.Second
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	return cfg
}

// NewPublisher conecta con los brokers configurados.
func NewPublisher(cfg config.KafkaConfig, clientID string, log zerolog.Logger) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewProducerConfig(clientID))
	if err != nil {
		return nil, fmt.Errorf("kafka: iniciar productor: %w", err)
	}
	log.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("productor kafka conectado")
	return NewPublisherWithProducer(producer, cfg.Topic, log), nil
}

// NewPublisherWithProducer construye el publisher sobre un productor existente.
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, log zerolog.Logger) *Publisher {
	return &Publisher{producer: producer, topic: topic, log: log}
}

// Publish envía el evento. La clave del mensaje es "<colección>:<id>" para que los
// eventos de una misma entidad caigan en la misma partición y conserven el orden.
func (p *Publisher) Publish(ctx context.Context, ev entity.ChangeEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("kafka: serializar evento: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ev.Collection + ":" + strconv.FormatInt(ev.EntityID, 10)),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-id"), Value: []byte(ev.ID)},
			{Key: []byte("action"), Value: []byte(ev.Action)},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("kafka: enviar a %s: %w", p.topic, err)
	}
	p.log.Debug().Str("topic", p.topic).Int32("partition", partition).Int64("offset", offset).
		Str("event_id", ev.ID).Msg("evento publicado")
	return nil
}

// Close cierra el productor.
func (p *Publisher) Close() error { return p.producer.Close() }

// NoopPublisher descarta los eventos (KAFKA_BROKERS vacío).
type NoopPublisher struct{}

// Publish no hace nada.
func (NoopPublisher) Publish(context.Context, entity.ChangeEvent) error { return nil }

// Close no hace nada.
func (NoopPublisher) Close() error { return nil }
