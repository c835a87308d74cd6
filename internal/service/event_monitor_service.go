package service

import (
	"context"

	"agentcity-be/internal/pkg/logger"
	"agentcity-be/pkg/events"
	pktNats "agentcity-be/pkg/nats"
)

type IEventMonitorService interface {
	Start() error
}

// eventMonitorService drains the domain event stream into the audit
// log. Runs as a durable consumer so events published while the
// service was down are still recorded.
type eventMonitorService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewEventMonitorService(subscriber *pktNats.Subscriber, log logger.ILogger) IEventMonitorService {
	return &eventMonitorService{
		subscriber: subscriber,
		logger:     log,
	}
}

func (s *eventMonitorService) Start() error {
	return s.subscriber.Subscribe("events.>", "event-audit-worker", func(ctx context.Context, event events.Event) error {
		s.logger.Info("EventMonitor", event.EventType(), event.Payload())
		return nil
	})
}
