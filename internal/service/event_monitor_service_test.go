package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/internal/repository/memory"
	"frontline-citizen-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summaryMail struct {
	to   string
	body string
}

type fakeEmailService struct {
	alerts    []*entity.CaseRecord
	summaries []summaryMail
	err       error
}

func (f *fakeEmailService) SendCaseAlert(_ string, record *entity.CaseRecord) error {
	if f.err != nil {
		return f.err
	}
	f.alerts = append(f.alerts, record)
	return nil
}

func (f *fakeEmailService) SendDailySummary(toEmail, summary string) error {
	if f.err != nil {
		return f.err
	}
	f.summaries = append(f.summaries, summaryMail{to: toEmail, body: summary})
	return nil
}

func fallbackEvent(caseId string) events.Event {
	return events.BaseEvent{
		Type:       "cases." + events.TypeCaseFallback,
		Data:       map[string]interface{}{"case_id": caseId},
		OccurredAt: time.Now().UTC(),
	}
}

func monitorWith(mailer *fakeEmailService) (*eventMonitorService, *entity.CaseRecord) {
	repo := memory.NewCaseRepository()
	record := &entity.CaseRecord{
		CaseId:    "FC-AAAA0001",
		CaseType:  entity.CaseTypeUnknown,
		Urgency:   entity.UrgencyLow,
		Lite:      true,
		CreatedAt: time.Now().UTC(),
		Lang:      "en",
	}
	_ = repo.Save(context.Background(), record)

	svc := NewEventMonitorService(nil, repo, mailer, "ops@example.com", nopLogger{}).(*eventMonitorService)
	return svc, record
}

func TestHandleEventEscalatesFallback(t *testing.T) {
	mailer := &fakeEmailService{}
	svc, record := monitorWith(mailer)

	require.NoError(t, svc.handleEvent(context.Background(), fallbackEvent(record.CaseId)))

	require.Len(t, mailer.alerts, 1)
	assert.Equal(t, record.CaseId, mailer.alerts[0].CaseId)
}

func TestHandleEventIgnoresProcessed(t *testing.T) {
	mailer := &fakeEmailService{}
	svc, record := monitorWith(mailer)

	event := events.BaseEvent{
		Type:       "cases." + events.TypeCaseProcessed,
		Data:       map[string]interface{}{"case_id": record.CaseId},
		OccurredAt: time.Now().UTC(),
	}
	require.NoError(t, svc.handleEvent(context.Background(), event))
	assert.Empty(t, mailer.alerts)
}

func TestHandleEventMissingRecordIsNotRetried(t *testing.T) {
	mailer := &fakeEmailService{}
	svc, _ := monitorWith(mailer)

	require.NoError(t, svc.handleEvent(context.Background(), fallbackEvent("FC-GONE0000")))
	assert.Empty(t, mailer.alerts)
}

func TestHandleEventMailFailureRequestsRedelivery(t *testing.T) {
	mailer := &fakeEmailService{err: errors.New("smtp down")}
	svc, record := monitorWith(mailer)

	assert.Error(t, svc.handleEvent(context.Background(), fallbackEvent(record.CaseId)))
}

func TestStartWithoutBrokerIsNoop(t *testing.T) {
	svc, _ := monitorWith(&fakeEmailService{})
	assert.NoError(t, svc.Start(context.Background()))
}
