package service

import (
	"context"
	"strings"

	"frontline-citizen-be/internal/pkg/logger"
	"frontline-citizen-be/internal/pkg/notifier"
	"frontline-citizen-be/internal/repository/contract"
	"frontline-citizen-be/pkg/events"
	pktNats "frontline-citizen-be/pkg/nats"
)

const monitorDurableName = "case-monitor"

type IEventMonitorService interface {
	Start(ctx context.Context) error
}

// eventMonitorService watches the case event stream. Fallback events are the
// operational signal that pipeline backends are degrading, so each one is
// escalated to the operations inbox; processed events are only traced. The
// dispatch worker already covers citizen-facing notifications, this consumer
// is the operator-facing side of the same terminals.
type eventMonitorService struct {
	subscriber   *pktNats.Subscriber
	caseRepo     contract.CaseRepository
	emailService notifier.IEmailService
	adminEmail   string
	log          logger.ILogger
}

func NewEventMonitorService(
	subscriber *pktNats.Subscriber,
	caseRepo contract.CaseRepository,
	emailService notifier.IEmailService,
	adminEmail string,
	log logger.ILogger,
) IEventMonitorService {
	return &eventMonitorService{
		subscriber:   subscriber,
		caseRepo:     caseRepo,
		emailService: emailService,
		adminEmail:   adminEmail,
		log:          log,
	}
}

func (s *eventMonitorService) Start(_ context.Context) error {
	if s.subscriber == nil {
		s.log.Warn("EventMonitor", "NATS unavailable, case event monitoring disabled", nil)
		return nil
	}
	return s.subscriber.Subscribe("cases.>", monitorDurableName, s.handleEvent)
}

// handleEvent processes one case event. A returned error Naks the message so
// JetStream redelivers it.
func (s *eventMonitorService) handleEvent(ctx context.Context, event events.Event) error {
	caseId, _ := event.Payload()["case_id"].(string)

	if !strings.HasSuffix(event.EventType(), events.TypeCaseFallback) {
		s.log.Debug("EventMonitor", "Case event observed", map[string]interface{}{
			"event_type": event.EventType(),
			"case_id":    caseId,
		})
		return nil
	}

	s.log.Warn("EventMonitor", "Pipeline fallback observed", map[string]interface{}{
		"case_id": caseId,
	})

	if s.emailService == nil || s.adminEmail == "" || caseId == "" {
		return nil
	}

	record, err := s.caseRepo.FindById(ctx, caseId)
	if err != nil {
		return err
	}
	if record == nil {
		// The record write may have failed independently of the event; there
		// is nothing to escalate and redelivery would not change that.
		s.log.Warn("EventMonitor", "Fallback case has no stored record", map[string]interface{}{
			"case_id": caseId,
		})
		return nil
	}

	return s.emailService.SendCaseAlert(s.adminEmail, record)
}
