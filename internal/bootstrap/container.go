package bootstrap

import (
	"context"
	"log"

	"knowledge-assistant-be/internal/config"
	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/controller"
	"knowledge-assistant-be/internal/metrics"
	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/internal/pkg/mailer"
	"knowledge-assistant-be/internal/repository/memory"
	"knowledge-assistant-be/internal/repository/unitofwork"
	"knowledge-assistant-be/internal/service"
	"knowledge-assistant-be/pkg/rag/access"
	"knowledge-assistant-be/pkg/rag/confidence"
	"knowledge-assistant-be/pkg/rag/executor"
	"knowledge-assistant-be/pkg/rag/intent"
	"knowledge-assistant-be/pkg/rag/journal"
	"knowledge-assistant-be/pkg/rag/response"
	"knowledge-assistant-be/pkg/rag/search"
	"knowledge-assistant-be/pkg/rag/session"
	"knowledge-assistant-be/pkg/rag/similarity"

	pktNats "knowledge-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AuditTopic carries audit entries from the query path to the consumer service
const AuditTopic = "rag.audit"

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	KnowledgeController controller.IKnowledgeController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	KnowledgeService service.IKnowledgeService

	Metrics *metrics.PipelineMetrics
	Logger  logger.ILogger

	closers []func()
}

// NewContainer wires the application. A nil db switches every table to process
// memory and forces the bleve document store.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	c.Logger = sysLogger
	c.closers = append(c.closers, func() { _ = sysLogger.Sync() }, func() { _ = auditLogger.Sync() })

	var uowFactory unitofwork.RepositoryFactory
	documentStore := cfg.Rag.DocumentStore
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		log.Println("[WARN] No database configured, using in-memory tables")
		uowFactory = memory.NewStore()
		documentStore = constant.DocumentStoreBleve
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	// NATS
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		p, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = p
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// Redis
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// 4. Document store
	searchCache := memory.NewSearchCache(cfg.Rag.SearchCacheTTL)
	var source search.DocumentSource
	var index service.DocumentIndex
	if documentStore == constant.DocumentStoreBleve {
		knowledgeIndex, err := memory.NewKnowledgeIndex(cfg.Rag.CandidatePool)
		if err != nil {
			log.Fatalf("[FATAL] Failed to create knowledge index: %v", err)
		}
		source = knowledgeIndex
		index = knowledgeIndex
		log.Printf("[INFO] Using Document Store: BLEVE (in-memory)")
	} else {
		source = search.NewRepositorySource(uowFactory, cfg.Rag.CandidatePool)
		log.Printf("[INFO] Using Document Store: POSTGRES full-text")
	}
	if cfg.Rag.SearchCacheTTL > 0 {
		source = search.NewCachedSource(source, searchCache)
	}

	// 5. Journal
	var notifiers []journal.TicketNotifier
	if cfg.SMTP.Host != "" && cfg.Rag.SupportInbox != "" {
		emailService := mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
		)
		notifiers = append(notifiers, journal.NewMailNotifier(emailService, cfg.Rag.SupportInbox, sysLogger))
	}

	publisherService := service.NewPublisherService(AuditTopic, pubSub)
	recorder := journal.NewRecorder(
		uowFactory,
		session.NewSequencer(redisCmdable(rdb), sysLogger),
		service.NewAuditPublisher(publisherService),
		journal.NewNatsPublisher(natsPub, sysLogger),
		cfg.Rag.FallbackSLA,
		notifiers...,
	)

	// 6. Pipeline
	c.Metrics = metrics.NewPipelineMetrics()
	pipeline := executor.NewPipelineExecutor(executor.Dependencies{
		Retriever:  search.NewRetriever(source, similarity.NewLexicalScorer(cfg.Rag.LexicalBoost), sysLogger),
		Filter:     access.NewFilter(access.NewPolicy(cfg.Rag.PermissionPolicy, cfg.Rag.SuperRoles...)),
		Classifier: intent.NewClassifier(nil),
		Router: response.NewRouter(response.DefaultKnowledge(), response.Options{
			OperationalMinSimilarity: cfg.Rag.OperationalMinSimilarity,
		}),
		Scorer: confidence.NewScorer(confidence.Thresholds{
			High:           cfg.Rag.HighConfidence,
			Medium:         cfg.Rag.MediumConfidence,
			MinDocsForHigh: cfg.Rag.MinDocsForHigh,
		}),
		Journal:  recorder,
		Observer: c.Metrics,
		Logger:   sysLogger,
		Defaults: search.Config{
			MaxDocs:             cfg.Rag.MaxDocuments,
			SimilarityThreshold: cfg.Rag.SimilarityThreshold,
		},
	})

	// 7. Services
	assistantService := service.NewAssistantService(pipeline, uowFactory)
	c.KnowledgeService = service.NewKnowledgeService(uowFactory, index, searchCache, sysLogger)
	c.ConsumerService = service.NewConsumerService(pubSub, AuditTopic, uowFactory, sysLogger, auditLogger, c.Metrics)

	// 8. Controllers
	c.AssistantController = controller.NewAssistantController(assistantService, cfg.App.JWTSecret)
	c.KnowledgeController = controller.NewKnowledgeController(c.KnowledgeService, cfg.App.JWTSecret)

	return c
}

// Close releases connections in reverse order of creation
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// redisCmdable keeps a nil client from becoming a non-nil interface
func redisCmdable(rdb *redis.Client) redis.Cmdable {
	if rdb == nil {
		return nil
	}
	return rdb
}
