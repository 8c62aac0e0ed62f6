// Package transport builds the broker adapter selected by configuration.
package transport

import (
	"fmt"
	"log/slog"

	"github.com/next-trace/scg-message-catalog/adapters/inmemory"
	"github.com/next-trace/scg-message-catalog/adapters/kafka"
	"github.com/next-trace/scg-message-catalog/adapters/nats"
	"github.com/next-trace/scg-message-catalog/adapters/rabbitmq"
	cerr "github.com/next-trace/scg-message-catalog/contract/errors"
	"github.com/next-trace/scg-message-catalog/contract/message"
	"github.com/next-trace/scg-message-catalog/internal/config"
)

// Open connects the adapter named by cfg.Transport. The returned cleanup must be called once the
// adapter is no longer used.
func Open(cfg *config.Config, logger *slog.Logger) (message.Adapter, func(), error) { //nolint:ireturn
	if logger == nil {
		logger = slog.Default()
	}

	var (
		ad      message.Adapter
		cleanup func()
		err     error
	)

	switch cfg.Transport {
	case config.TransportInMemory:
		ad, cleanup = inmemory.New(), func() {}
	case config.TransportNATS:
		ad, cleanup, err = openNATS(cfg)
	case config.TransportKafka:
		ad, cleanup, err = openKafka(cfg)
	case config.TransportRabbitMQ:
		ad, cleanup, err = openRabbitMQ(cfg, logger)
	default:
		return nil, nil, fmt.Errorf("transport %q: %w", cfg.Transport, cerr.ErrTransportNotConfigured)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("transport %s: %w", cfg.Transport, err)
	}

	logger.Info("transport: opened", "transport", cfg.Transport)

	return ad, cleanup, nil
}

func openNATS(cfg *config.Config) (message.Adapter, func(), error) { //nolint:ireturn
	ad, cleanup, err := nats.NewWithNATS(nats.Config{
		URL:           cfg.NATSURL,
		Name:          cfg.ServiceName,
		ConnTimeout:   cfg.NATSConnTimeout,
		MaxReconnects: cfg.NATSMaxReconnects,
	})
	if err != nil {
		return nil, nil, err
	}

	return ad, cleanup, nil
}

func openKafka(cfg *config.Config) (message.Adapter, func(), error) { //nolint:ireturn
	clientID := cfg.KafkaClientID
	if clientID == "" {
		clientID = cfg.ServiceName
	}

	ad, cleanup, err := kafka.NewWithKgo(kafka.Config{
		Brokers:    cfg.KafkaBrokers,
		ClientID:   clientID,
		Acks:       cfg.KafkaAcks,
		Idempotent: cfg.KafkaIdempotent,
	})
	if err != nil {
		return nil, nil, err
	}

	return ad, cleanup, nil
}

func openRabbitMQ(cfg *config.Config, logger *slog.Logger) (message.Adapter, func(), error) { //nolint:ireturn
	ad, cleanup, err := rabbitmq.NewWithAMQPConn(rabbitmq.Config{
		URL:         cfg.RabbitMQURL,
		ConnTimeout: cfg.RabbitMQConnTimeout,
		Product:     cfg.ServiceName,
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, err
	}

	return ad, cleanup, nil
}
