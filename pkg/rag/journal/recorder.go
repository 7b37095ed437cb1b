package journal

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/unitofwork"
	"knowledge-assistant-be/pkg/rag/session"
	"knowledge-assistant-be/pkg/store"

	"github.com/google/uuid"
)

const DefaultSLA = 24 * time.Hour

// AuditSink receives audit entries. The default writes them through the unit of work;
// the service layer swaps in an asynchronous sink.
type AuditSink interface {
	Record(ctx context.Context, entry *entity.AuditLog) error
}

// RepositoryAuditSink writes entries synchronously
type RepositoryAuditSink struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewRepositoryAuditSink(uowFactory unitofwork.RepositoryFactory) *RepositoryAuditSink {
	return &RepositoryAuditSink{uowFactory: uowFactory}
}

func (s *RepositoryAuditSink) Record(ctx context.Context, entry *entity.AuditLog) error {
	return s.uowFactory.NewUnitOfWork(ctx).AuditLogRepository().Create(ctx, entry)
}

// TicketRequest carries what the executor knows when it escalates an answer
type TicketRequest struct {
	ConversationID  string
	SessionID       string
	UserQuery       string
	AIResponse      string
	ConfidenceScore float64
	Reason          string
}

// Recorder persists conversation turns, audit entries and fallback tickets.
// Every method returns its error; deciding to swallow it is the caller's job.
type Recorder struct {
	uowFactory unitofwork.RepositoryFactory
	sequencer  *session.Sequencer
	audit      AuditSink
	events     EventPublisher
	notifiers  []TicketNotifier
	sla        time.Duration
	now        func() time.Time
}

// NewRecorder builds a recorder. Nil audit and events fall back to a synchronous
// repository sink and no publishing; sla <= 0 means DefaultSLA.
func NewRecorder(
	uowFactory unitofwork.RepositoryFactory,
	sequencer *session.Sequencer,
	audit AuditSink,
	events EventPublisher,
	sla time.Duration,
	notifiers ...TicketNotifier,
) *Recorder {
	if sequencer == nil {
		sequencer = session.NewSequencer(nil, nil)
	}
	if audit == nil {
		audit = NewRepositoryAuditSink(uowFactory)
	}
	if sla <= 0 {
		sla = DefaultSLA
	}
	return &Recorder{
		uowFactory: uowFactory,
		sequencer:  sequencer,
		audit:      audit,
		events:     events,
		notifiers:  notifiers,
		sla:        sla,
		now:        time.Now,
	}
}

// SaveConversation appends the assistant turn and returns its id
func (r *Recorder) SaveConversation(ctx context.Context, qc store.QueryContext, resp store.StructuredResponse, docs []store.RetrievedDocument) (string, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)

	idx, err := r.sequencer.Next(ctx, uow, qc.SessionID)
	if err != nil {
		return "", err
	}

	record := &entity.RagConversation{
		Id:                 uuid.New(),
		SessionId:          qc.SessionID,
		UserId:             qc.UserID,
		UserRole:           qc.UserRole,
		CompanyId:          qc.CompanyID,
		MessageIndex:       idx,
		Role:               constant.ConversationRoleAssistant,
		Content:            resp.Serialize(),
		RetrievedSourceIds: store.DocumentIDs(docs),
		RetrievalScore:     store.MeanSimilarity(docs),
		ConfidenceLevel:    string(resp.ConfidenceLevel),
		RequiresHuman:      resp.RequiresHumanFallback,
		CreatedAt:          r.now(),
	}

	if err := uow.RagConversationRepository().Create(ctx, record); err != nil {
		return "", fmt.Errorf("failed to save conversation: %w", err)
	}
	return record.Id.String(), nil
}

// LogAccess records which documents the answer was built from. denied is the
// number of retrieved documents the permission policy removed.
func (r *Recorder) LogAccess(ctx context.Context, conversationID string, qc store.QueryContext, docs []store.RetrievedDocument, denied int) error {
	entry := BuildAuditEntry(conversationID, qc, docs, denied)
	entry.CreatedAt = r.now()

	if err := r.audit.Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	if entry.SensitiveDataExposed && r.events != nil {
		r.events.PublishSensitiveDataAccessed(ctx, *entry)
	}
	return nil
}

// BuildAuditEntry derives the audit record for one pipeline run
func BuildAuditEntry(conversationID string, qc store.QueryContext, docs []store.RetrievedDocument, denied int) *entity.AuditLog {
	sensitive := false
	for _, d := range docs {
		if d.IsSensitive() {
			sensitive = true
			break
		}
	}

	return &entity.AuditLog{
		Id:                   uuid.New(),
		ConversationId:       conversationID,
		UserId:               qc.UserID,
		ActionType:           constant.AuditActionRagQuery,
		ActionDescription:    fmt.Sprintf("retrieved %d document(s) for role %q, %d denied", len(docs), qc.UserRole, denied),
		DataAccessed:         store.DocumentIDs(docs),
		PermissionsChecked:   rolesEvaluated(qc.UserRole, docs),
		PermissionGranted:    denied == 0,
		SensitiveDataExposed: sensitive,
	}
}

// rolesEvaluated is the caller role followed by every distinct role required by the documents
func rolesEvaluated(userRole string, docs []store.RetrievedDocument) []string {
	seen := map[string]bool{}
	var required []string
	for _, d := range docs {
		for _, role := range d.RequiredRoles {
			key := strings.ToLower(strings.TrimSpace(role))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			required = append(required, key)
		}
	}
	sort.Strings(required)
	return append([]string{userRole}, required...)
}

// CreateFallbackTicket opens a human-review ticket and notifies listeners
func (r *Recorder) CreateFallbackTicket(ctx context.Context, req TicketRequest) error {
	now := r.now()
	ticket := &entity.FallbackTicket{
		Id:              uuid.New(),
		ConversationId:  req.ConversationID,
		SessionId:       req.SessionID,
		UserQuery:       req.UserQuery,
		AiResponse:      req.AIResponse,
		ConfidenceScore: req.ConfidenceScore,
		Reason:          req.Reason,
		Priority:        constant.TicketPriorityMedium,
		Status:          constant.TicketStatusOpen,
		SlaDeadline:     now.Add(r.sla),
		CreatedAt:       now,
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FallbackTicketRepository().Create(ctx, ticket); err != nil {
		return fmt.Errorf("failed to create fallback ticket: %w", err)
	}

	if r.events != nil {
		r.events.PublishFallbackTicketCreated(ctx, *ticket)
	}
	for _, n := range r.notifiers {
		n.NotifyTicket(ctx, *ticket)
	}
	return nil
}
