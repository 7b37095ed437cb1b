package implementation

import (
	"context"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/mapper"
	"knowledge-assistant-be/internal/model"
	"knowledge-assistant-be/internal/repository/contract"
	"knowledge-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
)

type RagConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RagMapper
}

func NewRagConversationRepository(db *gorm.DB) contract.RagConversationRepository {
	return &RagConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewRagMapper(),
	}
}

func (r *RagConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RagConversationRepositoryImpl) Create(ctx context.Context, conversation *entity.RagConversation) error {
	m := r.mapper.ConversationToModel(conversation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*conversation = *r.mapper.ConversationToEntity(m)
	return nil
}

func (r *RagConversationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RagConversation, error) {
	var models []*model.RagConversation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.RagConversation, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ConversationToEntity(m)
	}
	return entities, nil
}

func (r *RagConversationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.RagConversation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
