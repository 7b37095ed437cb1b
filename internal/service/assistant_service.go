package service

import (
	"context"
	"time"

	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/dto"
	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"
	"knowledge-assistant-be/internal/repository/unitofwork"
	"knowledge-assistant-be/pkg/rag/executor"
	"knowledge-assistant-be/pkg/store"
)

// Identity is the caller as established by the JWT middleware
type Identity struct {
	UserId    string
	Role      string
	CompanyId string
}

// QueryExecutor runs one question through the retrieval pipeline
type QueryExecutor interface {
	Execute(ctx context.Context, req executor.Request) *executor.Result
}

type IAssistantService interface {
	Ask(ctx context.Context, identity Identity, req *dto.QueryRequest) (*dto.QueryResponse, error)
	GetSessionHistory(ctx context.Context, userId, sessionId string) (*dto.SessionHistoryResponse, error)
	ListTickets(ctx context.Context, req *dto.ListTicketsRequest) (*dto.ListTicketsResponse, error)
	ListAuditLogs(ctx context.Context, req *dto.ListAuditLogsRequest) (*dto.ListAuditLogsResponse, error)
}

type assistantService struct {
	executor   QueryExecutor
	uowFactory unitofwork.RepositoryFactory
	now        func() time.Time
}

func NewAssistantService(executor QueryExecutor, uowFactory unitofwork.RepositoryFactory) IAssistantService {
	return &assistantService{
		executor:   executor,
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (s *assistantService) Ask(ctx context.Context, identity Identity, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	execReq := executor.Request{
		Query: req.Query,
		Context: store.QueryContext{
			SessionID: req.SessionId,
			UserID:    identity.UserId,
			UserRole:  identity.Role,
			CompanyID: identity.CompanyId,
		},
		MaxDocuments:        req.MaxDocuments,
		SimilarityThreshold: req.SimilarityThreshold,
	}
	if req.Filters != nil {
		execReq.Filters = store.SearchFilters{
			SourceTypes: req.Filters.SourceTypes,
			Sensitivity: req.Filters.Sensitivity,
			Categories:  req.Filters.Categories,
		}
	}

	result := s.executor.Execute(ctx, execReq)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs := make([]dto.RetrievedDocumentResponse, 0, len(result.RetrievedDocs))
	for _, d := range result.RetrievedDocs {
		docs = append(docs, dto.RetrievedDocumentResponse{
			Id:          d.ID,
			Title:       d.Title,
			SourceType:  d.SourceType,
			Sensitivity: d.Sensitivity,
			Similarity:  d.Similarity,
			Version:     d.Version,
		})
	}

	return &dto.QueryResponse{
		ConversationId:  result.ConversationID,
		Intent:          string(result.Intent),
		Response:        result.Response,
		RetrievedDocs:   docs,
		ExecutionTimeMs: result.ExecutionTimeMs,
	}, nil
}

func (s *assistantService) GetSessionHistory(ctx context.Context, userId, sessionId string) (*dto.SessionHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.RagConversationRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	messages := make([]dto.ConversationHistoryItem, 0, len(records))
	for _, r := range records {
		messages = append(messages, dto.ConversationHistoryItem{
			Id:                 r.Id,
			MessageIndex:       r.MessageIndex,
			Role:               r.Role,
			Content:            r.Content,
			RetrievedSourceIds: r.RetrievedSourceIds,
			RetrievalScore:     r.RetrievalScore,
			ConfidenceLevel:    r.ConfidenceLevel,
			RequiresHuman:      r.RequiresHuman,
			CreatedAt:          r.CreatedAt,
		})
	}

	return &dto.SessionHistoryResponse{
		SessionId: sessionId,
		Messages:  messages,
	}, nil
}

func pageOf(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return page, limit
}

func (s *assistantService) ListTickets(ctx context.Context, req *dto.ListTicketsRequest) (*dto.ListTicketsResponse, error) {
	page, limit := pageOf(req.Page, req.Limit)
	now := s.now()

	specs := []specification.Specification{}
	if req.Status != "" {
		specs = append(specs, specification.ByStatus{Status: req.Status})
	}
	if req.Breached {
		specs = append(specs, specification.SLABreachedAt{At: now})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.FallbackTicketRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	tickets, err := uow.FallbackTicketRepository().FindAll(ctx, append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FallbackTicketResponse, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, toTicketResponse(t, now))
	}

	return &dto.ListTicketsResponse{
		Tickets: items,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

// ListAuditLogs pages through the access journal, newest first
func (s *assistantService) ListAuditLogs(ctx context.Context, req *dto.ListAuditLogsRequest) (*dto.ListAuditLogsResponse, error) {
	page, limit := pageOf(req.Page, req.Limit)

	specs := []specification.Specification{}
	if req.UserId != "" {
		specs = append(specs, specification.ByUserID{UserID: req.UserId})
	}
	if req.SensitiveOnly {
		specs = append(specs, specification.SensitiveOnly{})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.AuditLogRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	entries, err := uow.AuditLogRepository().FindAll(ctx, append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AuditLogMessage, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.AuditLogMessageFromEntity(e))
	}

	return &dto.ListAuditLogsResponse{
		Entries: items,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

func toTicketResponse(t *entity.FallbackTicket, now time.Time) dto.FallbackTicketResponse {
	pending := t.Status == constant.TicketStatusOpen || t.Status == constant.TicketStatusInProgress
	return dto.FallbackTicketResponse{
		Id:              t.Id,
		ConversationId:  t.ConversationId,
		SessionId:       t.SessionId,
		UserQuery:       t.UserQuery,
		ConfidenceScore: t.ConfidenceScore,
		Reason:          t.Reason,
		Priority:        t.Priority,
		Status:          t.Status,
		SlaDeadline:     t.SlaDeadline,
		SlaBreached:     pending && now.After(t.SlaDeadline),
		CreatedAt:       t.CreatedAt,
	}
}
