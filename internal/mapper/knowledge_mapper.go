package mapper

import (
	"time"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntity(d *model.KnowledgeDocument) *entity.KnowledgeDocument {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.KnowledgeDocument{
		Id:            d.Id,
		Title:         d.Title,
		SourceType:    d.SourceType,
		Sensitivity:   d.Sensitivity,
		Category:      d.Category,
		Content:       d.Content,
		Version:       d.Version,
		IsActive:      d.IsActive,
		RequiredRoles: []string(d.RequiredRoles),
		CompanyId:     d.CompanyId,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *KnowledgeMapper) ToModel(d *entity.KnowledgeDocument) *model.KnowledgeDocument {
	if d == nil {
		return nil
	}

	out := &model.KnowledgeDocument{
		Id:            d.Id,
		Title:         d.Title,
		SourceType:    d.SourceType,
		Sensitivity:   d.Sensitivity,
		Category:      d.Category,
		Content:       d.Content,
		Version:       d.Version,
		IsActive:      d.IsActive,
		RequiredRoles: datatypes.JSONSlice[string](d.RequiredRoles),
		CompanyId:     d.CompanyId,
		CreatedAt:     d.CreatedAt,
	}
	if d.UpdatedAt != nil {
		out.UpdatedAt = *d.UpdatedAt
	}
	return out
}
