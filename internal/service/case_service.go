package service

import (
	"context"
	"encoding/json"
	"time"

	"frontline-citizen-be/internal/dto"
	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/internal/pkg/logger"
	"frontline-citizen-be/internal/repository/contract"
	"frontline-citizen-be/internal/websocket"
	"frontline-citizen-be/pkg/events"
	pktNats "frontline-citizen-be/pkg/nats"
	"frontline-citizen-be/pkg/triage/engine"
	"frontline-citizen-be/pkg/triage/state"
)

type ICaseService interface {
	Create(ctx context.Context, req *dto.CreateCaseRequest) (*dto.CaseResponse, error)
	Show(ctx context.Context, caseId string) (*entity.CaseRecord, error)
	List(ctx context.Context, req *dto.ListCasesRequest) (*dto.ListCasesResponse, error)
}

type caseService struct {
	caseRepo         contract.CaseRepository
	engine           *engine.Engine
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	wsHub            *websocket.Hub
	log              logger.ILogger
	now              func() time.Time
}

func NewCaseService(
	caseRepo contract.CaseRepository,
	eng *engine.Engine,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	wsHub *websocket.Hub,
	log logger.ILogger,
) ICaseService {
	return &caseService{
		caseRepo:         caseRepo,
		engine:           eng,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		wsHub:            wsHub,
		log:              log,
		now:              time.Now,
	}
}

// Create runs the full pipeline for one citizen report. The request never
// fails on pipeline trouble: degraded runs end in the fallback terminal and
// still return a confirmation. Stored only turns false when the record could
// not be persisted at all.
func (s *caseService) Create(ctx context.Context, req *dto.CreateCaseRequest) (*dto.CaseResponse, error) {
	sess := state.New(state.Input{
		Message:       req.UserMessage,
		Location:      sanitizeLocation(req.Lat, req.Lon),
		BatteryPct:    req.BatteryPct,
		BandwidthKbps: req.BandwidthKbps,
		CitizenPhone:  req.CitizenPhone,
		Lang:          req.Lang,
	})

	result := s.engine.Run(ctx, sess)
	record := result.Session.Record(s.now().UTC())

	stored := true
	if err := s.caseRepo.Save(ctx, record); err != nil {
		stored = false
		s.log.Error("CaseService", "Failed to persist case record", map[string]interface{}{
			"case_id": record.CaseId,
			"error":   err.Error(),
		})
	}

	s.afterTerminal(ctx, record, result.Terminal)

	return &dto.CaseResponse{
		CaseId:       record.CaseId,
		Confirmation: record.Confirmation,
		Stored:       stored,
		Record:       record,
	}, nil
}

// afterTerminal performs the auxiliary fan-out. All of it is best effort;
// none of it can fail the intake.
func (s *caseService) afterTerminal(ctx context.Context, record *entity.CaseRecord, terminal engine.Phase) {
	if s.publisherService != nil {
		payload, err := json.Marshal(dto.PublishCaseNotifyMessage{Record: record})
		if err == nil {
			err = s.publisherService.Publish(ctx, payload)
		}
		if err != nil {
			s.log.Warn("CaseService", "Failed to queue notification dispatch", map[string]interface{}{
				"case_id": record.CaseId,
				"error":   err.Error(),
			})
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewCaseProcessedEvent(record)
		if terminal == engine.PhaseFallback {
			evt = events.NewCaseFallbackEvent(record)
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("CaseService", "Failed to publish case event", map[string]interface{}{
				"case_id": record.CaseId,
				"error":   err.Error(),
			})
		}
	}

	if s.wsHub != nil {
		s.wsHub.BroadcastCase(record)
	}
}

func (s *caseService) Show(ctx context.Context, caseId string) (*entity.CaseRecord, error) {
	return s.caseRepo.FindById(ctx, caseId)
}

func (s *caseService) List(ctx context.Context, req *dto.ListCasesRequest) (*dto.ListCasesResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	cases, err := s.caseRepo.FindAll(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &dto.ListCasesResponse{
		Cases: cases,
		Page:  page,
		Limit: limit,
	}, nil
}

// sanitizeLocation accepts coordinates only as a complete pair. A lone lat
// or lon is treated as absent.
func sanitizeLocation(lat, lon *float64) *entity.GeoPoint {
	if lat == nil || lon == nil {
		return nil
	}
	return &entity.GeoPoint{Lat: *lat, Lon: *lon}
}
