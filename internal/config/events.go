package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/behavioral-assessment/internal/events"
)

const (
	PublisherKafka = "kafka"
	PublisherMock  = "mock"
)

// EventConfig selects where invitation and result events go.
type EventConfig struct {
	Enabled           bool
	Publisher         string
	KafkaBrokers      string
	NotificationTopic string
}

// GetKafkaBrokers splits the comma separated broker list, dropping blanks.
func (c *EventConfig) GetKafkaBrokers() []string {
	var brokers []string
	for _, broker := range strings.Split(c.KafkaBrokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

// CreateEventPublisher builds the configured publisher. Disabled events and
// the mock publisher both record events in memory only.
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	switch c.Publisher {
	case PublisherKafka:
		brokers := c.GetKafkaBrokers()
		if len(brokers) == 0 {
			return nil, fmt.Errorf("kafka publisher requires at least one broker")
		}
		logger.Info("Creating Kafka event publisher", "brokers", brokers, "topic", c.NotificationTopic)
		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: brokers,
			TopicName:    c.NotificationTopic,
			Logger:       logger,
		})
	case PublisherMock:
		logger.Info("Using mock event publisher")
		return events.NewMockEventPublisher(logger), nil
	}
	return nil, fmt.Errorf("unknown event publisher %q", c.Publisher)
}
