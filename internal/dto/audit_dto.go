package dto

import (
	"time"

	"knowledge-assistant-be/internal/entity"

	"github.com/google/uuid"
)

// AuditLogMessage is the payload carried on the audit topic
type AuditLogMessage struct {
	Id                   uuid.UUID `json:"id"`
	ConversationId       string    `json:"conversation_id"`
	UserId               string    `json:"user_id"`
	ActionType           string    `json:"action_type"`
	ActionDescription    string    `json:"action_description"`
	DataAccessed         []string  `json:"data_accessed"`
	PermissionsChecked   []string  `json:"permissions_checked"`
	PermissionGranted    bool      `json:"permission_granted"`
	SensitiveDataExposed bool      `json:"sensitive_data_exposed"`
	CreatedAt            time.Time `json:"created_at"`
}

func AuditLogMessageFromEntity(e *entity.AuditLog) AuditLogMessage {
	return AuditLogMessage{
		Id:                   e.Id,
		ConversationId:       e.ConversationId,
		UserId:               e.UserId,
		ActionType:           e.ActionType,
		ActionDescription:    e.ActionDescription,
		DataAccessed:         e.DataAccessed,
		PermissionsChecked:   e.PermissionsChecked,
		PermissionGranted:    e.PermissionGranted,
		SensitiveDataExposed: e.SensitiveDataExposed,
		CreatedAt:            e.CreatedAt,
	}
}

func (m AuditLogMessage) ToEntity() *entity.AuditLog {
	return &entity.AuditLog{
		Id:                   m.Id,
		ConversationId:       m.ConversationId,
		UserId:               m.UserId,
		ActionType:           m.ActionType,
		ActionDescription:    m.ActionDescription,
		DataAccessed:         m.DataAccessed,
		PermissionsChecked:   m.PermissionsChecked,
		PermissionGranted:    m.PermissionGranted,
		SensitiveDataExposed: m.SensitiveDataExposed,
		CreatedAt:            m.CreatedAt,
	}
}

type ListAuditLogsRequest struct {
	UserId        string `query:"user_id" validate:"omitempty,max=255"`
	SensitiveOnly bool   `query:"sensitive_only"`
	Page          int    `query:"page" validate:"omitempty,min=1"`
	Limit         int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type ListAuditLogsResponse struct {
	Entries []AuditLogMessage `json:"entries"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
}
