package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"frontline-citizen-be/internal/dto"
	"frontline-citizen-be/internal/pkg/logger"
	"frontline-citizen-be/internal/pkg/notifier"
	"frontline-citizen-be/internal/repository/contract"
	"frontline-citizen-be/pkg/llm"

	"github.com/patrickmn/go-cache"
)

const (
	metricsCacheTTL  = 30 * time.Second
	topDistrictLimit = 5
)

type IAdminService interface {
	Metrics(ctx context.Context, req *dto.MetricsRequest) (*dto.MetricsResponse, error)
	DailySummary(ctx context.Context) (*dto.DailySummaryResponse, error)
	EmailDailySummary(ctx context.Context) error
	Logs(ctx context.Context, req *dto.AdminLogsRequest) (*dto.AdminLogsResponse, error)
}

type adminService struct {
	caseRepo     contract.CaseRepository
	llmProvider  llm.LLMProvider // nil when summaries stay deterministic
	emailService notifier.IEmailService
	adminEmail   string
	log          logger.ILogger
	metricsCache *cache.Cache
	now          func() time.Time
}

func NewAdminService(
	caseRepo contract.CaseRepository,
	llmProvider llm.LLMProvider,
	emailService notifier.IEmailService,
	adminEmail string,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		caseRepo:     caseRepo,
		llmProvider:  llmProvider,
		emailService: emailService,
		adminEmail:   adminEmail,
		log:          log,
		metricsCache: cache.New(metricsCacheTTL, time.Minute),
		now:          time.Now,
	}
}

// Metrics aggregates intake counters for the dashboard. Results are cached
// briefly so a polling dashboard does not hammer the store.
func (s *adminService) Metrics(ctx context.Context, req *dto.MetricsRequest) (*dto.MetricsResponse, error) {
	cacheKey := "metrics:all"
	if req.SinceHours != nil {
		cacheKey = fmt.Sprintf("metrics:%dh", *req.SinceHours)
	}
	if x, found := s.metricsCache.Get(cacheKey); found {
		return x.(*dto.MetricsResponse), nil
	}

	var since *time.Time
	if req.SinceHours != nil {
		t := s.now().UTC().Add(-time.Duration(*req.SinceHours) * time.Hour)
		since = &t
	}

	total, err := s.caseRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	lite, err := s.caseRepo.CountLite(ctx, since)
	if err != nil {
		return nil, err
	}
	byType, err := s.caseRepo.CountByType(ctx, since)
	if err != nil {
		return nil, err
	}
	districts, err := s.caseRepo.TopDistricts(ctx, since, topDistrictLimit)
	if err != nil {
		return nil, err
	}

	res := &dto.MetricsResponse{
		TotalCases:   total,
		LiteCases:    lite,
		ByType:       byType,
		TopDistricts: districts,
		SinceHours:   req.SinceHours,
	}
	s.metricsCache.Set(cacheKey, res, cache.DefaultExpiration)
	return res, nil
}

// DailySummary renders a last-24h digest. The deterministic text always
// exists; when an LLM is wired in it gets one shot at a nicer narrative and
// loses to the deterministic text on any failure.
func (s *adminService) DailySummary(ctx context.Context) (*dto.DailySummaryResponse, error) {
	hours := 24
	metrics, err := s.Metrics(ctx, &dto.MetricsRequest{SinceHours: &hours})
	if err != nil {
		return nil, err
	}

	plain := renderSummary(metrics)

	if s.llmProvider != nil {
		generated, err := s.llmProvider.Generate(ctx,
			"Rewrite this civic case intake digest as a short readable briefing for duty operators. "+
				"Keep every number exactly as given. Plain text only.\n\n"+plain,
			llm.WithTemperature(0.2),
			llm.WithMaxTokens(300),
		)
		if err != nil {
			s.log.Warn("AdminService", "LLM summary degraded, using deterministic digest", map[string]interface{}{
				"error": err.Error(),
			})
		} else if text := strings.TrimSpace(generated); text != "" {
			return &dto.DailySummaryResponse{Summary: text, Generated: true}, nil
		}
	}

	return &dto.DailySummaryResponse{Summary: plain, Generated: false}, nil
}

// EmailDailySummary mails the current digest to the operations inbox. Called
// on a schedule from main; a no-op when no mailer is configured.
func (s *adminService) EmailDailySummary(ctx context.Context) error {
	if s.emailService == nil || s.adminEmail == "" {
		return nil
	}
	res, err := s.DailySummary(ctx)
	if err != nil {
		return err
	}
	return s.emailService.SendDailySummary(s.adminEmail, res.Summary)
}

func renderSummary(m *dto.MetricsResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cases in the last 24h: lite=%d\n", m.LiteCases)
	fmt.Fprintf(&b, "Total cases on record: %d\n", m.TotalCases)
	if len(m.ByType) > 0 {
		b.WriteString("By type:\n")
		for _, row := range m.ByType {
			fmt.Fprintf(&b, "  %s: %d\n", row.CaseType, row.Count)
		}
	}
	if len(m.TopDistricts) > 0 {
		b.WriteString("Busiest districts:\n")
		for _, row := range m.TopDistricts {
			fmt.Fprintf(&b, "  %s: %d\n", row.District, row.Count)
		}
	}
	return b.String()
}

func (s *adminService) Logs(_ context.Context, req *dto.AdminLogsRequest) (*dto.AdminLogsResponse, error) {
	limit := req.Limit
	if limit < 1 || limit > 500 {
		limit = 50
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	entries, err := s.log.GetLogs(strings.ToUpper(req.Level), limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.AdminLogsResponse{Logs: entries}, nil
}
