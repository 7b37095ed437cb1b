package dto

import (
	"time"

	"knowledge-assistant-be/pkg/store"

	"github.com/google/uuid"
)

type QueryFilters struct {
	SourceTypes []string `json:"source_types" validate:"omitempty,dive,oneof=public internal confidential restricted"`
	Sensitivity string   `json:"sensitivity" validate:"omitempty,oneof=public internal confidential restricted"`
	Categories  []string `json:"categories"`
}

// QueryRequest is the body of POST /assistant/v1/query. Identity comes from the token.
type QueryRequest struct {
	Query               string        `json:"query" validate:"required,max=2000"`
	SessionId           string        `json:"session_id" validate:"required,max=128"`
	Filters             *QueryFilters `json:"filters"`
	MaxDocuments        int           `json:"max_documents" validate:"omitempty,min=1,max=20"`
	SimilarityThreshold float64       `json:"similarity_threshold" validate:"omitempty,gt=0,lte=1"`
}

type RetrievedDocumentResponse struct {
	Id          string  `json:"id"`
	Title       string  `json:"title"`
	SourceType  string  `json:"source_type"`
	Sensitivity string  `json:"sensitivity,omitempty"`
	Similarity  float64 `json:"similarity"`
	Version     string  `json:"version"`
}

type QueryResponse struct {
	ConversationId  string                      `json:"conversation_id"`
	Intent          string                      `json:"intent"`
	Response        store.StructuredResponse    `json:"response"`
	RetrievedDocs   []RetrievedDocumentResponse `json:"retrieved_docs"`
	ExecutionTimeMs int64                       `json:"execution_time_ms"`
}

type ConversationHistoryItem struct {
	Id                 uuid.UUID `json:"id"`
	MessageIndex       int       `json:"message_index"`
	Role               string    `json:"role"`
	Content            string    `json:"content"`
	RetrievedSourceIds []string  `json:"retrieved_source_ids"`
	RetrievalScore     float64   `json:"retrieval_score"`
	ConfidenceLevel    string    `json:"confidence_level"`
	RequiresHuman      bool      `json:"requires_human"`
	CreatedAt          time.Time `json:"created_at"`
}

type SessionHistoryResponse struct {
	SessionId string                    `json:"session_id"`
	Messages  []ConversationHistoryItem `json:"messages"`
}

// ListTicketsRequest filters the review queue. Breached keeps pending tickets past their SLA.
type ListTicketsRequest struct {
	Status   string `query:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
	Breached bool   `query:"breached"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type FallbackTicketResponse struct {
	Id              uuid.UUID `json:"id"`
	ConversationId  string    `json:"conversation_id"`
	SessionId       string    `json:"session_id"`
	UserQuery       string    `json:"user_query"`
	ConfidenceScore float64   `json:"confidence_score"`
	Reason          string    `json:"reason"`
	Priority        string    `json:"priority"`
	Status          string    `json:"status"`
	SlaDeadline     time.Time `json:"sla_deadline"`
	SlaBreached     bool      `json:"sla_breached"`
	CreatedAt       time.Time `json:"created_at"`
}

type ListTicketsResponse struct {
	Tickets []FallbackTicketResponse `json:"tickets"`
	Total   int64                    `json:"total"`
	Page    int                      `json:"page"`
	Limit   int                      `json:"limit"`
}
