package service

import (
	"context"
	"encoding/json"
	"log"

	"frontline-citizen-be/internal/dto"
	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/internal/pkg/notifier"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IDispatchService interface {
	Consume(ctx context.Context) error
}

// dispatchService is the notification worker behind the in-process bus. It
// relays the confirmation to the citizen over SMS and escalates critical
// cases to the operations inbox.
type dispatchService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	smsSender    notifier.ISmsSender
	emailService notifier.IEmailService
	adminEmail   string
}

func NewDispatchService(
	pubSub *gochannel.GoChannel,
	topicName string,
	smsSender notifier.ISmsSender,
	emailService notifier.IEmailService,
	adminEmail string,
) IDispatchService {
	return &dispatchService{
		pubSub:       pubSub,
		topicName:    topicName,
		smsSender:    smsSender,
		emailService: emailService,
		adminEmail:   adminEmail,
	}
}

func (ds *dispatchService) Consume(ctx context.Context) error {
	messages, err := ds.pubSub.Subscribe(ctx, ds.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ds.processMessage(msg)
		}
	}()

	return nil
}

func (ds *dispatchService) processMessage(msg *message.Message) {
	var payload dto.PublishCaseNotifyMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal dispatch message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}
	record := payload.Record
	if record == nil {
		log.Printf("[ERROR] Dispatch message without record, dropping")
		msg.Ack()
		return
	}

	if record.CitizenPhone != nil && ds.smsSender != nil {
		if err := ds.smsSender.Send(*record.CitizenPhone, record.Confirmation); err != nil {
			log.Printf("[ERROR] Failed to send SMS for case %s: %v", record.CaseId, err)
			msg.Nack() // Retriable: gateway may recover
			return
		}
		log.Printf("[INFO] Confirmation SMS dispatched for case %s", record.CaseId)
	}

	if record.Urgency == entity.UrgencyCritical && ds.emailService != nil && ds.adminEmail != "" {
		// Alert failures are logged but not retried; the SMS already went out
		// and re-delivery would duplicate it.
		if err := ds.emailService.SendCaseAlert(ds.adminEmail, record); err != nil {
			log.Printf("[ERROR] Failed to send critical alert for case %s: %v", record.CaseId, err)
		}
	}

	msg.Ack()
}
