package bootstrap

import (
	"context"
	"log"

	"frontline-citizen-be/internal/config"
	"frontline-citizen-be/internal/controller"
	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/internal/pkg/logger"
	"frontline-citizen-be/internal/pkg/notifier"
	"frontline-citizen-be/internal/repository/contract"
	"frontline-citizen-be/internal/repository/implementation"
	"frontline-citizen-be/internal/repository/memory"
	"frontline-citizen-be/internal/service"
	"frontline-citizen-be/internal/websocket"
	"frontline-citizen-be/pkg/directory"
	"frontline-citizen-be/pkg/llm"
	"frontline-citizen-be/pkg/llm/factory"
	pktNats "frontline-citizen-be/pkg/nats"
	"frontline-citizen-be/pkg/triage/classify"
	"frontline-citizen-be/pkg/triage/compose"
	"frontline-citizen-be/pkg/triage/degraded"
	"frontline-citizen-be/pkg/triage/engine"
	"frontline-citizen-be/pkg/triage/reserve"
	"frontline-citizen-be/pkg/triage/resolve"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	CaseController  controller.ICaseController
	AdminController controller.IAdminController

	// Background Services (Exposed for main.go to run)
	DispatchService     service.IDispatchService
	EventMonitorService service.IEventMonitorService
	AdminService        service.IAdminService

	// WebSockets
	WebSocketHub *websocket.Hub
}

// NewContainer wires the whole application. db may be nil, in which case
// cases live in the in-process store only.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService notifier.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = notifier.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	} else {
		log.Printf("[WARN] SMTP not configured, email alerts disabled")
	}

	smsSender, err := notifier.NewSmsSender(cfg.Triage.SmsProvider)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize SMS sender: %v", err)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Facility Directory
	dir, err := directory.Load()
	if err != nil {
		log.Fatalf("[FATAL] Failed to load facility directory: %v", err)
	}
	log.Printf("[INFO] Facility directory loaded: %d medical, %d law-enforcement",
		dir.Count(entity.FacilityMedical), dir.Count(entity.FacilityLawEnforcement))

	// 4. LLM Provider
	// The generative engine cannot run without one; the deterministic engine
	// only uses it for the optional admin digest.
	var llmProvider llm.LLMProvider
	llmProvider, err = factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		if cfg.Triage.Engine == "generative" {
			log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
		}
		log.Printf("[WARN] LLM Provider unavailable (%v), generative extras disabled", err)
		llmProvider = nil
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	// 5. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// WebSocket Hub
	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// 6. Case Store
	var caseRepo contract.CaseRepository
	if db != nil {
		caseRepo = implementation.NewCaseRepository(db)
	} else {
		log.Printf("[WARN] No database configured, using in-memory case store")
		caseRepo = memory.NewCaseRepository()
	}

	// 7. Pipeline Engine
	eng := buildEngine(cfg, dir, llmProvider, sysLogger)

	// 8. Services
	publisherService := service.NewPublisherService(cfg.Triage.NotifyTopic, pubSub)
	dispatchService := service.NewDispatchService(
		pubSub,
		cfg.Triage.NotifyTopic,
		smsSender,
		emailService,
		cfg.SMTP.AdminEmail,
	)

	eventMonitorService := service.NewEventMonitorService(
		natsSub,
		caseRepo,
		emailService,
		cfg.SMTP.AdminEmail,
		sysLogger,
	)

	caseService := service.NewCaseService(
		caseRepo,
		eng,
		publisherService,
		natsPub,
		wsHub,
		sysLogger,
	)
	adminService := service.NewAdminService(caseRepo, llmProvider, emailService, cfg.SMTP.AdminEmail, sysLogger)

	// 9. Controllers
	return &Container{
		CaseController:  controller.NewCaseController(caseService),
		AdminController: controller.NewAdminController(adminService),

		DispatchService:     dispatchService,
		EventMonitorService: eventMonitorService,
		AdminService:        adminService,
		WebSocketHub:        wsHub,
	}
}

// buildEngine assembles the stage strategies for the configured variant.
// Both variants expose the same reachable classifications and the same
// terminals; they differ only in how classification, health triage and
// composition are produced.
func buildEngine(cfg *config.Config, dir *directory.Directory, llmProvider llm.LLMProvider, sysLogger logger.ILogger) *engine.Engine {
	detector := degraded.Detector{
		LowBatteryPct:    cfg.Triage.LowBatteryPct,
		MinBandwidthKbps: cfg.Triage.MinBandwidthKbps,
	}

	var classifier classify.Strategy
	var resolvers map[entity.CaseType]resolve.Strategy
	var composer compose.Composer

	if cfg.Triage.Engine == "generative" && llmProvider != nil {
		classifier = classify.NewGenerativeClassifier(llmProvider)
		resolvers = map[entity.CaseType]resolve.Strategy{
			entity.CaseTypeHealth: resolve.NewGenerativeHealthResolver(llmProvider, dir),
			entity.CaseTypeCrime:  resolve.NewGenerativeCrimeResolver(dir),
		}
		composer = compose.NewGenerativeComposer(llmProvider)
		log.Printf("[INFO] Pipeline engine: generative")
	} else {
		classifier = classify.NewKeywordClassifier()
		resolvers = map[entity.CaseType]resolve.Strategy{
			entity.CaseTypeHealth: resolve.NewHealthResolver(dir),
			entity.CaseTypeCrime:  resolve.NewCrimeResolver(dir),
		}
		composer = compose.NewTemplateComposer()
		log.Printf("[INFO] Pipeline engine: deterministic")
	}

	return engine.New(detector, classifier, resolvers, reserve.NewDesk(), composer, sysLogger)
}
