package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"knowledge-assistant-be/internal/dto"
	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/internal/pkg/serverutils"
	"knowledge-assistant-be/internal/repository/specification"
	"knowledge-assistant-be/internal/repository/unitofwork"
	"knowledge-assistant-be/pkg/rag/search"
	"knowledge-assistant-be/pkg/store"

	"github.com/google/uuid"
)

const defaultDocumentVersion = "1.0"

// DocumentIndex is an in-process search index that mirrors the knowledge table
type DocumentIndex interface {
	Put(doc store.SourceDocument) error
	Remove(id string) error
}

// CacheFlusher drops cached search results after the knowledge base changes
type CacheFlusher interface {
	Flush()
}

type IKnowledgeService interface {
	IngestDocument(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
	DeactivateDocument(ctx context.Context, id uuid.UUID) (*dto.DeactivateDocumentResponse, error)
	HydrateIndex(ctx context.Context) (int, error)
}

type knowledgeService struct {
	uowFactory unitofwork.RepositoryFactory
	index      DocumentIndex
	cache      CacheFlusher
	logger     logger.ILogger
}

// NewKnowledgeService manages the knowledge base. index and cache may be nil.
func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	index DocumentIndex,
	cache CacheFlusher,
	logger logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory: uowFactory,
		index:      index,
		cache:      cache,
		logger:     logger,
	}
}

func (s *knowledgeService) IngestDocument(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	sensitivity := req.Sensitivity
	if sensitivity == "" {
		sensitivity = req.SourceType
	}
	version := req.Version
	if version == "" {
		version = defaultDocumentVersion
	}

	roles := make([]string, 0, len(req.RequiredRoles))
	for _, r := range req.RequiredRoles {
		if r = strings.ToLower(strings.TrimSpace(r)); r != "" {
			roles = append(roles, r)
		}
	}

	doc := &entity.KnowledgeDocument{
		Id:            uuid.New(),
		Title:         req.Title,
		SourceType:    req.SourceType,
		Sensitivity:   sensitivity,
		Category:      req.Category,
		Content:       req.Content,
		Version:       version,
		IsActive:      true,
		RequiredRoles: roles,
		CompanyId:     req.CompanyId,
		CreatedAt:     time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.KnowledgeDocumentRepository().Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	if s.index != nil {
		if err := s.index.Put(search.ToSourceDocument(doc)); err != nil {
			// The row is committed; the index catches up on the next hydration
			s.logger.Error("KNOWLEDGE", "Failed to index document", map[string]interface{}{
				"doc_id": doc.Id.String(),
				"error":  err.Error(),
			})
		}
	}
	s.flush()

	s.logger.Info("KNOWLEDGE", "Document ingested", map[string]interface{}{
		"doc_id":      doc.Id.String(),
		"source_type": doc.SourceType,
		"version":     doc.Version,
	})

	return &dto.IngestDocumentResponse{
		Id:      doc.Id,
		Version: doc.Version,
	}, nil
}

func (s *knowledgeService) DeactivateDocument(ctx context.Context, id uuid.UUID) (*dto.DeactivateDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	doc, err := uow.KnowledgeDocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document %s: %w", id, serverutils.ErrNotFound)
	}

	if doc.IsActive {
		now := time.Now()
		doc.IsActive = false
		doc.UpdatedAt = &now
		if err := uow.KnowledgeDocumentRepository().Update(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to deactivate document: %w", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit deactivation: %w", err)
	}

	if s.index != nil {
		if err := s.index.Remove(doc.Id.String()); err != nil {
			s.logger.Error("KNOWLEDGE", "Failed to remove document from index", map[string]interface{}{
				"doc_id": doc.Id.String(),
				"error":  err.Error(),
			})
		}
	}
	s.flush()

	s.logger.Info("KNOWLEDGE", "Document deactivated", map[string]interface{}{
		"doc_id": doc.Id.String(),
	})

	return &dto.DeactivateDocumentResponse{
		Id:       doc.Id,
		IsActive: false,
	}, nil
}

// HydrateIndex loads every active document into the index. It is a no-op without one.
func (s *knowledgeService) HydrateIndex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.KnowledgeDocumentRepository().FindAll(ctx, specification.ActiveOnly{})
	if err != nil {
		return 0, fmt.Errorf("failed to load active documents: %w", err)
	}

	for _, d := range docs {
		if err := s.index.Put(search.ToSourceDocument(d)); err != nil {
			return 0, fmt.Errorf("failed to index document %s: %w", d.Id, err)
		}
	}
	s.flush()

	s.logger.Info("KNOWLEDGE", "Index hydrated", map[string]interface{}{
		"documents": len(docs),
	})
	return len(docs), nil
}

func (s *knowledgeService) flush() {
	if s.cache != nil {
		s.cache.Flush()
	}
}
