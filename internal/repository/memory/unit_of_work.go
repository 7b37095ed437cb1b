package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/contract"
	"knowledge-assistant-be/internal/repository/specification"
	"knowledge-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Store keeps every table in process memory. It backs the service when no
// database is configured and is the fake used by package tests.
// Supported specifications: ByID, ActiveOnly, BySessionID, ByUserID, ByStatus,
// SensitiveOnly, SLABreachedAt, OrderBy (created_at) and Pagination. Others are ignored.
type Store struct {
	mu            sync.RWMutex
	documents     []*entity.KnowledgeDocument
	conversations []*entity.RagConversation
	auditLogs     []*entity.AuditLog
	tickets       []*entity.FallbackTicket
	now           func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// NewUnitOfWork satisfies unitofwork.RepositoryFactory
func (s *Store) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &storeUnitOfWork{store: s}
}

// AuditLogs returns a copy of the audit table
func (s *Store) AuditLogs() []entity.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.AuditLog, len(s.auditLogs))
	for i, a := range s.auditLogs {
		out[i] = *a
	}
	return out
}

// Tickets returns a copy of the ticket table
func (s *Store) Tickets() []entity.FallbackTicket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.FallbackTicket, len(s.tickets))
	for i, t := range s.tickets {
		out[i] = *t
	}
	return out
}

// Conversations returns a copy of the conversation table
func (s *Store) Conversations() []entity.RagConversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.RagConversation, len(s.conversations))
	for i, c := range s.conversations {
		out[i] = *c
	}
	return out
}

// storeUnitOfWork writes straight through. Begin/Commit/Rollback keep the same
// state rules as the gorm unit of work but cannot undo writes.
type storeUnitOfWork struct {
	store  *Store
	active bool
}

func (u *storeUnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return fmt.Errorf("transaction already started")
	}
	u.active = true
	return nil
}

func (u *storeUnitOfWork) Commit() error {
	if !u.active {
		return fmt.Errorf("no transaction to commit")
	}
	u.active = false
	return nil
}

func (u *storeUnitOfWork) Rollback() error {
	if !u.active {
		return fmt.Errorf("no transaction to rollback")
	}
	u.active = false
	return nil
}

func (u *storeUnitOfWork) KnowledgeDocumentRepository() contract.KnowledgeDocumentRepository {
	return &documentRepository{store: u.store}
}

func (u *storeUnitOfWork) RagConversationRepository() contract.RagConversationRepository {
	return &conversationRepository{store: u.store}
}

func (u *storeUnitOfWork) AuditLogRepository() contract.AuditLogRepository {
	return &auditLogRepository{store: u.store}
}

func (u *storeUnitOfWork) FallbackTicketRepository() contract.FallbackTicketRepository {
	return &ticketRepository{store: u.store}
}

// query collects the specifications the in-memory store understands
type query struct {
	id          *uuid.UUID
	activeOnly  bool
	sessionID   string
	userID      string
	status      string
	sensitive   bool
	breachedAt  *time.Time
	newestFirst bool
	limit       int
	offset      int
}

func parseSpecs(specs []specification.Specification) query {
	var q query
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			q.id = &id
		case specification.ActiveOnly:
			q.activeOnly = true
		case specification.BySessionID:
			q.sessionID = s.SessionID
		case specification.ByUserID:
			q.userID = s.UserID
		case specification.ByStatus:
			q.status = s.Status
		case specification.SensitiveOnly:
			q.sensitive = true
		case specification.SLABreachedAt:
			at := s.At
			q.breachedAt = &at
		case specification.OrderBy:
			q.newestFirst = s.Desc
		case specification.Pagination:
			q.limit = s.Limit
			q.offset = s.Offset
		}
	}
	return q
}

func paginate[T any](items []T, q query) []T {
	if q.offset > 0 {
		if q.offset >= len(items) {
			return []T{}
		}
		items = items[q.offset:]
	}
	if q.limit > 0 && q.limit < len(items) {
		items = items[:q.limit]
	}
	return items
}

func sortByCreated[T any](items []T, createdAt func(T) time.Time, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return createdAt(items[i]).After(createdAt(items[j]))
		}
		return createdAt(items[i]).Before(createdAt(items[j]))
	})
}

// Knowledge documents

type documentRepository struct {
	store *Store
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.KnowledgeDocument) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if doc.Id == uuid.Nil {
		doc.Id = uuid.New()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = r.store.now()
	}
	c := *doc
	r.store.documents = append(r.store.documents, &c)
	return nil
}

func (r *documentRepository) Update(ctx context.Context, doc *entity.KnowledgeDocument) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := r.store.now()
	doc.UpdatedAt = &now
	for i, d := range r.store.documents {
		if d.Id == doc.Id {
			c := *doc
			r.store.documents[i] = &c
			return nil
		}
	}
	c := *doc
	r.store.documents = append(r.store.documents, &c)
	return nil
}

func (r *documentRepository) filter(specs []specification.Specification) ([]*entity.KnowledgeDocument, query) {
	q := parseSpecs(specs)
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.KnowledgeDocument
	for _, d := range r.store.documents {
		if q.id != nil && d.Id != *q.id {
			continue
		}
		if q.activeOnly && !d.IsActive {
			continue
		}
		c := *d
		out = append(out, &c)
	}
	return out, q
}

func (r *documentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeDocument, error) {
	docs, _ := r.filter(specs)
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

func (r *documentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error) {
	docs, q := r.filter(specs)
	sortByCreated(docs, func(d *entity.KnowledgeDocument) time.Time { return d.CreatedAt }, q.newestFirst)
	return paginate(docs, q), nil
}

func (r *documentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	docs, _ := r.filter(specs)
	return int64(len(docs)), nil
}

// Conversations

type conversationRepository struct {
	store *Store
}

func (r *conversationRepository) Create(ctx context.Context, conversation *entity.RagConversation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if conversation.Id == uuid.Nil {
		conversation.Id = uuid.New()
	}
	if conversation.CreatedAt.IsZero() {
		conversation.CreatedAt = r.store.now()
	}
	c := *conversation
	r.store.conversations = append(r.store.conversations, &c)
	return nil
}

func (r *conversationRepository) filter(specs []specification.Specification) ([]*entity.RagConversation, query) {
	q := parseSpecs(specs)
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.RagConversation
	for _, c := range r.store.conversations {
		if q.id != nil && c.Id != *q.id {
			continue
		}
		if q.sessionID != "" && c.SessionId != q.sessionID {
			continue
		}
		if q.userID != "" && c.UserId != q.userID {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, q
}

func (r *conversationRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RagConversation, error) {
	items, q := r.filter(specs)
	sortByCreated(items, func(c *entity.RagConversation) time.Time { return c.CreatedAt }, q.newestFirst)
	return paginate(items, q), nil
}

func (r *conversationRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	items, _ := r.filter(specs)
	return int64(len(items)), nil
}

// Audit log

type auditLogRepository struct {
	store *Store
}

func (r *auditLogRepository) Create(ctx context.Context, entry *entity.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.store.now()
	}
	c := *entry
	r.store.auditLogs = append(r.store.auditLogs, &c)
	return nil
}

func (r *auditLogRepository) filter(specs []specification.Specification) ([]*entity.AuditLog, query) {
	q := parseSpecs(specs)
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.AuditLog
	for _, a := range r.store.auditLogs {
		if q.sensitive && !a.SensitiveDataExposed {
			continue
		}
		if q.userID != "" && a.UserId != q.userID {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	return out, q
}

func (r *auditLogRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error) {
	items, q := r.filter(specs)
	sortByCreated(items, func(a *entity.AuditLog) time.Time { return a.CreatedAt }, q.newestFirst)
	return paginate(items, q), nil
}

func (r *auditLogRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	items, _ := r.filter(specs)
	return int64(len(items)), nil
}

// Fallback tickets

type ticketRepository struct {
	store *Store
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.FallbackTicket) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if ticket.Id == uuid.Nil {
		ticket.Id = uuid.New()
	}
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = r.store.now()
	}
	c := *ticket
	r.store.tickets = append(r.store.tickets, &c)
	return nil
}

func (r *ticketRepository) filter(specs []specification.Specification) ([]*entity.FallbackTicket, query) {
	q := parseSpecs(specs)
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.FallbackTicket
	for _, t := range r.store.tickets {
		if q.status != "" && t.Status != q.status {
			continue
		}
		if q.breachedAt != nil && (!t.SlaDeadline.Before(*q.breachedAt) || !pending(t.Status)) {
			continue
		}
		c := *t
		out = append(out, &c)
	}
	return out, q
}

func (r *ticketRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FallbackTicket, error) {
	items, q := r.filter(specs)
	sortByCreated(items, func(t *entity.FallbackTicket) time.Time { return t.CreatedAt }, q.newestFirst)
	return paginate(items, q), nil
}

func (r *ticketRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	items, _ := r.filter(specs)
	return int64(len(items)), nil
}

func pending(status string) bool {
	for _, s := range specification.PendingTicketStatuses {
		if s == status {
			return true
		}
	}
	return false
}

var _ unitofwork.RepositoryFactory = (*Store)(nil)
