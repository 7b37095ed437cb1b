package entity

import (
	"time"

	"github.com/google/uuid"
)

// RagConversation is one persisted turn of the assistant
type RagConversation struct {
	Id                 uuid.UUID
	SessionId          string
	UserId             string
	UserRole           string
	CompanyId          string
	MessageIndex       int
	Role               string
	Content            string
	RetrievedSourceIds []string
	RetrievalScore     float64
	ConfidenceLevel    string
	RequiresHuman      bool
	CreatedAt          time.Time
}

type AuditLog struct {
	Id                   uuid.UUID
	ConversationId       string
	UserId               string
	ActionType           string
	ActionDescription    string
	DataAccessed         []string
	PermissionsChecked   []string
	PermissionGranted    bool
	SensitiveDataExposed bool
	CreatedAt            time.Time
}

type FallbackTicket struct {
	Id              uuid.UUID
	ConversationId  string
	SessionId       string
	UserQuery       string
	AiResponse      string
	ConfidenceScore float64
	Reason          string
	Priority        string
	Status          string
	SlaDeadline     time.Time
	CreatedAt       time.Time
}
