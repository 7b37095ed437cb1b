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

type FallbackTicketRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RagMapper
}

func NewFallbackTicketRepository(db *gorm.DB) contract.FallbackTicketRepository {
	return &FallbackTicketRepositoryImpl{
		db:     db,
		mapper: mapper.NewRagMapper(),
	}
}

func (r *FallbackTicketRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FallbackTicketRepositoryImpl) Create(ctx context.Context, ticket *entity.FallbackTicket) error {
	m := r.mapper.TicketToModel(ticket)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*ticket = *r.mapper.TicketToEntity(m)
	return nil
}

func (r *FallbackTicketRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FallbackTicket, error) {
	var models []*model.FallbackTicket
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.FallbackTicket, len(models))
	for i, m := range models {
		entities[i] = r.mapper.TicketToEntity(m)
	}
	return entities, nil
}

func (r *FallbackTicketRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.FallbackTicket{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
