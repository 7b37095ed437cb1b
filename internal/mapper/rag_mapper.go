package mapper

import (
	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type RagMapper struct{}

func NewRagMapper() *RagMapper {
	return &RagMapper{}
}

// Conversation Mappers

func (m *RagMapper) ConversationToEntity(c *model.RagConversation) *entity.RagConversation {
	if c == nil {
		return nil
	}
	return &entity.RagConversation{
		Id:                 c.Id,
		SessionId:          c.SessionId,
		UserId:             c.UserId,
		UserRole:           c.UserRole,
		CompanyId:          c.CompanyId,
		MessageIndex:       c.MessageIndex,
		Role:               c.Role,
		Content:            c.Content,
		RetrievedSourceIds: []string(c.RetrievedSourceIds),
		RetrievalScore:     c.RetrievalScore,
		ConfidenceLevel:    c.ConfidenceLevel,
		RequiresHuman:      c.RequiresHuman,
		CreatedAt:          c.CreatedAt,
	}
}

func (m *RagMapper) ConversationToModel(c *entity.RagConversation) *model.RagConversation {
	if c == nil {
		return nil
	}
	return &model.RagConversation{
		Id:                 c.Id,
		SessionId:          c.SessionId,
		UserId:             c.UserId,
		UserRole:           c.UserRole,
		CompanyId:          c.CompanyId,
		MessageIndex:       c.MessageIndex,
		Role:               c.Role,
		Content:            c.Content,
		RetrievedSourceIds: datatypes.JSONSlice[string](c.RetrievedSourceIds),
		RetrievalScore:     c.RetrievalScore,
		ConfidenceLevel:    c.ConfidenceLevel,
		RequiresHuman:      c.RequiresHuman,
		CreatedAt:          c.CreatedAt,
	}
}

// Audit Mappers

func (m *RagMapper) AuditLogToEntity(a *model.AuditLog) *entity.AuditLog {
	if a == nil {
		return nil
	}
	return &entity.AuditLog{
		Id:                   a.Id,
		ConversationId:       a.ConversationId,
		UserId:               a.UserId,
		ActionType:           a.ActionType,
		ActionDescription:    a.ActionDescription,
		DataAccessed:         []string(a.DataAccessed),
		PermissionsChecked:   []string(a.PermissionsChecked),
		PermissionGranted:    a.PermissionGranted,
		SensitiveDataExposed: a.SensitiveDataExposed,
		CreatedAt:            a.CreatedAt,
	}
}

func (m *RagMapper) AuditLogToModel(a *entity.AuditLog) *model.AuditLog {
	if a == nil {
		return nil
	}
	return &model.AuditLog{
		Id:                   a.Id,
		ConversationId:       a.ConversationId,
		UserId:               a.UserId,
		ActionType:           a.ActionType,
		ActionDescription:    a.ActionDescription,
		DataAccessed:         datatypes.JSONSlice[string](a.DataAccessed),
		PermissionsChecked:   datatypes.JSONSlice[string](a.PermissionsChecked),
		PermissionGranted:    a.PermissionGranted,
		SensitiveDataExposed: a.SensitiveDataExposed,
		CreatedAt:            a.CreatedAt,
	}
}

// Ticket Mappers

func (m *RagMapper) TicketToEntity(t *model.FallbackTicket) *entity.FallbackTicket {
	if t == nil {
		return nil
	}
	return &entity.FallbackTicket{
		Id:              t.Id,
		ConversationId:  t.ConversationId,
		SessionId:       t.SessionId,
		UserQuery:       t.UserQuery,
		AiResponse:      t.AiResponse,
		ConfidenceScore: t.ConfidenceScore,
		Reason:          t.Reason,
		Priority:        t.Priority,
		Status:          t.Status,
		SlaDeadline:     t.SlaDeadline,
		CreatedAt:       t.CreatedAt,
	}
}

func (m *RagMapper) TicketToModel(t *entity.FallbackTicket) *model.FallbackTicket {
	if t == nil {
		return nil
	}
	return &model.FallbackTicket{
		Id:              t.Id,
		ConversationId:  t.ConversationId,
		SessionId:       t.SessionId,
		UserQuery:       t.UserQuery,
		AiResponse:      t.AiResponse,
		ConfidenceScore: t.ConfidenceScore,
		Reason:          t.Reason,
		Priority:        t.Priority,
		Status:          t.Status,
		SlaDeadline:     t.SlaDeadline,
		CreatedAt:       t.CreatedAt,
	}
}
