package executor

import (
	"context"
	"time"

	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/pkg/rag/access"
	"knowledge-assistant-be/pkg/rag/confidence"
	"knowledge-assistant-be/pkg/rag/intent"
	"knowledge-assistant-be/pkg/rag/journal"
	"knowledge-assistant-be/pkg/rag/response"
	"knowledge-assistant-be/pkg/rag/search"
	"knowledge-assistant-be/pkg/store"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ReasonLowConfidence is used when the scorer, not a generator, decided the answer is weak
const ReasonLowConfidence = "low retrieval confidence"

var tracer = otel.Tracer("knowledge-assistant/pipeline")

// Journal is the persistence boundary of a run
type Journal interface {
	SaveConversation(ctx context.Context, qc store.QueryContext, resp store.StructuredResponse, docs []store.RetrievedDocument) (string, error)
	LogAccess(ctx context.Context, conversationID string, qc store.QueryContext, docs []store.RetrievedDocument, denied int) error
	CreateFallbackTicket(ctx context.Context, req journal.TicketRequest) error
}

// Observer receives per-run measurements
type Observer interface {
	ObserveQuery(intent string, level store.ConfidenceLevel, fallback bool, docs int, elapsed time.Duration)
	ObservePersistenceFailure(operation string)
}

type NopObserver struct{}

func (NopObserver) ObserveQuery(string, store.ConfidenceLevel, bool, int, time.Duration) {}
func (NopObserver) ObservePersistenceFailure(string)                                    {}

// Request is one call of the pipeline. Zero MaxDocuments / SimilarityThreshold use the defaults.
type Request struct {
	Query               string
	Context             store.QueryContext
	Filters             store.SearchFilters
	MaxDocuments        int
	SimilarityThreshold float64
}

// Result is what callers get back. RetrievedDocs holds the documents that survived
// the permission filter, i.e. exactly those the answer may cite.
type Result struct {
	Response        store.StructuredResponse
	RetrievedDocs   []store.RetrievedDocument
	ConversationID  string
	ExecutionTimeMs int64
	Intent          intent.Intent
}

// Dependencies groups the pipeline stages
type Dependencies struct {
	Retriever  *search.Retriever
	Filter     *access.Filter
	Classifier *intent.Classifier
	Router     *response.Router
	Scorer     *confidence.Scorer
	Journal    Journal
	Observer   Observer
	Logger     logger.ILogger
	Defaults   search.Config
}

// PipelineExecutor runs retrieval, permission filtering, intent classification,
// generation, confidence scoring and persistence in that order.
// It holds no per-request state, so one instance serves concurrent requests.
type PipelineExecutor struct {
	retriever  *search.Retriever
	filter     *access.Filter
	classifier *intent.Classifier
	router     *response.Router
	scorer     *confidence.Scorer
	journal    Journal
	observer   Observer
	logger     logger.ILogger
	defaults   search.Config
}

// NewPipelineExecutor fills unset stages with their defaults. Retriever is required.
func NewPipelineExecutor(deps Dependencies) *PipelineExecutor {
	if deps.Retriever == nil {
		panic("executor: Dependencies.Retriever is required")
	}
	if deps.Filter == nil {
		deps.Filter = access.NewFilter(nil)
	}
	if deps.Classifier == nil {
		deps.Classifier = intent.NewClassifier(nil)
	}
	if deps.Router == nil {
		deps.Router = response.NewRouter(response.DefaultKnowledge(), response.DefaultOptions())
	}
	if deps.Scorer == nil {
		deps.Scorer = confidence.NewScorer(confidence.DefaultThresholds())
	}
	if deps.Observer == nil {
		deps.Observer = NopObserver{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}
	if deps.Defaults.MaxDocs <= 0 {
		deps.Defaults.MaxDocs = search.DefaultConfig().MaxDocs
	}
	if deps.Defaults.SimilarityThreshold <= 0 {
		deps.Defaults.SimilarityThreshold = search.DefaultConfig().SimilarityThreshold
	}
	return &PipelineExecutor{
		retriever:  deps.Retriever,
		filter:     deps.Filter,
		classifier: deps.Classifier,
		router:     deps.Router,
		scorer:     deps.Scorer,
		journal:    deps.Journal,
		observer:   deps.Observer,
		logger:     deps.Logger,
		defaults:   deps.Defaults,
	}
}

// Execute always returns a structured response. Retrieval and persistence
// failures degrade the answer or get logged, they never surface as errors.
func (p *PipelineExecutor) Execute(ctx context.Context, req Request) *Result {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "rag.query")
	defer span.End()

	cfg := p.defaults
	if req.MaxDocuments > 0 {
		cfg.MaxDocs = req.MaxDocuments
	}
	if req.SimilarityThreshold > 0 {
		cfg.SimilarityThreshold = req.SimilarityThreshold
	}
	filters := req.Filters
	if filters.CompanyID == "" {
		filters.CompanyID = req.Context.CompanyID
	}

	// Retrieval
	retrieveCtx, retrieveSpan := tracer.Start(ctx, "rag.retrieve")
	docs := p.retriever.Retrieve(retrieveCtx, req.Query, filters, cfg)
	retrieveSpan.SetAttributes(attribute.Int("rag.docs.retrieved", len(docs)))
	retrieveSpan.End()

	// Permission filter
	authorized, denied := p.filter.Apply(docs, req.Context.UserRole)

	// Intent + generation
	in := p.classifier.Classify(req.Query)
	generated := p.router.Generate(in, req.Query, authorized)
	resp := generated.Response

	// Confidence
	if !generated.ConfidenceAsserted {
		resp.ConfidenceLevel = p.scorer.Score(authorized)
	}
	EnforceFallback(&resp)

	span.SetAttributes(
		attribute.String("rag.intent", string(in)),
		attribute.String("rag.confidence", string(resp.ConfidenceLevel)),
		attribute.Int("rag.docs.authorized", len(authorized)),
		attribute.Int("rag.docs.denied", denied),
		attribute.Bool("rag.fallback", resp.RequiresHumanFallback),
	)

	// Persistence
	conversationID := p.persist(ctx, span, req, resp, authorized, denied)

	elapsed := time.Since(start)
	p.observer.ObserveQuery(string(in), resp.ConfidenceLevel, resp.RequiresHumanFallback, len(authorized), elapsed)

	p.logger.Info("PIPELINE", "Query answered", map[string]interface{}{
		"session_id":      req.Context.SessionID,
		"conversation_id": conversationID,
		"intent":          string(in),
		"confidence":      string(resp.ConfidenceLevel),
		"documents":       len(authorized),
		"denied":          denied,
		"fallback":        resp.RequiresHumanFallback,
		"elapsed_ms":      elapsed.Milliseconds(),
	})

	return &Result{
		Response:        resp,
		RetrievedDocs:   authorized,
		ConversationID:  conversationID,
		ExecutionTimeMs: elapsed.Milliseconds(),
		Intent:          in,
	}
}

// EnforceFallback makes low confidence always come with a human fallback and a reason
func EnforceFallback(resp *store.StructuredResponse) {
	if resp.ConfidenceLevel == "" {
		resp.ConfidenceLevel = store.ConfidenceLow
	}
	if resp.ConfidenceLevel == store.ConfidenceLow {
		resp.RequiresHumanFallback = true
	}
	if resp.RequiresHumanFallback && resp.FallbackReason == "" {
		resp.FallbackReason = ReasonLowConfidence
	}
}

func (p *PipelineExecutor) persist(ctx context.Context, span trace.Span, req Request, resp store.StructuredResponse, docs []store.RetrievedDocument, denied int) string {
	if p.journal == nil {
		return placeholderID()
	}

	conversationID, err := p.journal.SaveConversation(ctx, req.Context, resp, docs)
	if err != nil {
		conversationID = placeholderID()
		p.persistenceFailed(span, "save_conversation", req, err)
	}

	if err := p.journal.LogAccess(ctx, conversationID, req.Context, docs, denied); err != nil {
		p.persistenceFailed(span, "log_access", req, err)
	}

	if resp.RequiresHumanFallback {
		err := p.journal.CreateFallbackTicket(ctx, journal.TicketRequest{
			ConversationID:  conversationID,
			SessionID:       req.Context.SessionID,
			UserQuery:       req.Query,
			AIResponse:      resp.Serialize(),
			ConfidenceScore: store.MeanSimilarity(docs),
			Reason:          resp.FallbackReason,
		})
		if err != nil {
			p.persistenceFailed(span, "create_fallback_ticket", req, err)
		}
	}

	return conversationID
}

func (p *PipelineExecutor) persistenceFailed(span trace.Span, operation string, req Request, err error) {
	span.RecordError(err, trace.WithAttributes(attribute.String("rag.operation", operation)))
	p.observer.ObservePersistenceFailure(operation)
	p.logger.Error("PIPELINE", "Persistence failed, continuing", map[string]interface{}{
		"operation":  operation,
		"session_id": req.Context.SessionID,
		"error":      err.Error(),
	})
}

func placeholderID() string {
	return "unsaved-" + uuid.NewString()
}
