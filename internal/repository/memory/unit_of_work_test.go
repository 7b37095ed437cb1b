package memory

import (
	"context"
	"testing"
	"time"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_DocumentsActiveAndByID(t *testing.T) {
	ctx := context.Background()
	uow := NewStore().NewUnitOfWork(ctx)
	repo := uow.KnowledgeDocumentRepository()

	active := &entity.KnowledgeDocument{Title: "Ativo", IsActive: true}
	inactive := &entity.KnowledgeDocument{Title: "Inativo", IsActive: false}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, inactive))
	assert.NotEqual(t, uuid.Nil, active.Id)

	docs, err := repo.FindAll(ctx, specification.ActiveOnly{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Ativo", docs[0].Title)

	found, err := repo.FindOne(ctx, specification.ByID{ID: inactive.Id})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Inativo", found.Title)

	missing, err := repo.FindOne(ctx, specification.ByID{ID: uuid.New()})
	require.NoError(t, err)
	assert.Nil(t, missing)

	found.IsActive = true
	require.NoError(t, repo.Update(ctx, found))
	count, err := repo.Count(ctx, specification.ActiveOnly{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestStore_ConversationsScopedAndPaginated(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	repo := store.NewUnitOfWork(ctx).RagConversationRepository()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &entity.RagConversation{
			SessionId:    "s-1",
			UserId:       "u-1",
			MessageIndex: i,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, &entity.RagConversation{SessionId: "s-1", UserId: "u-2", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, &entity.RagConversation{SessionId: "s-2", UserId: "u-1", CreatedAt: base}))

	count, err := repo.Count(ctx, specification.BySessionID{SessionID: "s-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	items, err := repo.FindAll(ctx,
		specification.BySessionID{SessionID: "s-1"},
		specification.ByUserID{UserID: "u-1"},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 2},
	)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].MessageIndex)
	assert.Equal(t, 1, items[1].MessageIndex)
	assert.Len(t, store.Conversations(), 5)
}

func TestStore_TicketsByStatusAndBreach(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.NewUnitOfWork(ctx).FallbackTicketRepository()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &entity.FallbackTicket{Status: "open", SlaDeadline: now.Add(-time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entity.FallbackTicket{Status: "open", SlaDeadline: now.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entity.FallbackTicket{Status: "resolved", SlaDeadline: now.Add(-time.Hour)}))

	open, err := repo.Count(ctx, specification.ByStatus{Status: "open"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), open)

	breached, err := repo.FindAll(ctx, specification.ByStatus{Status: "open"}, specification.SLABreachedAt{At: now})
	require.NoError(t, err)
	assert.Len(t, breached, 1)
}

func TestStore_AuditSensitiveOnly(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.NewUnitOfWork(ctx).AuditLogRepository()

	require.NoError(t, repo.Create(ctx, &entity.AuditLog{ActionType: "rag_query", SensitiveDataExposed: true}))
	require.NoError(t, repo.Create(ctx, &entity.AuditLog{ActionType: "rag_query"}))

	sensitive, err := repo.FindAll(ctx, specification.SensitiveOnly{})
	require.NoError(t, err)
	assert.Len(t, sensitive, 1)
	assert.Len(t, store.AuditLogs(), 2)
}

func TestStore_TransactionState(t *testing.T) {
	uow := NewStore().NewUnitOfWork(context.Background())

	assert.Error(t, uow.Commit())
	assert.Error(t, uow.Rollback())

	require.NoError(t, uow.Begin(context.Background()))
	assert.Error(t, uow.Begin(context.Background()))
	require.NoError(t, uow.Commit())
	assert.Error(t, uow.Rollback(), "nothing left to roll back after commit")
}
