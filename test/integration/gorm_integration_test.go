package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/model"
	"knowledge-assistant-be/internal/repository/specification"
	"knowledge-assistant-be/internal/repository/unitofwork"
	"knowledge-assistant-be/pkg/database"
	"knowledge-assistant-be/pkg/rag/journal"
	"knowledge-assistant-be/pkg/rag/search"
	"knowledge-assistant-be/pkg/store"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func connect(t *testing.T) *gorm.DB {
	t.Helper()
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.KnowledgeDocument{},
		&model.RagConversation{},
		&model.AuditLog{},
		&model.FallbackTicket{},
	))
	return db
}

func TestKnowledgeDocuments_FullTextSearch(t *testing.T) {
	db := connect(t)
	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)

	marker := "zqxintegr" + uuid.NewString()[:8]
	active := &entity.KnowledgeDocument{
		Id:         uuid.New(),
		Title:      "Integration " + marker,
		SourceType: store.SourceInternal,
		Content:    "Procedimento " + marker + " para abrir chamado",
		Version:    "1.0",
		IsActive:   true,
	}
	inactive := &entity.KnowledgeDocument{
		Id:         uuid.New(),
		Title:      "Old " + marker,
		SourceType: store.SourceInternal,
		Content:    "Versao antiga " + marker,
		Version:    "0.1",
		IsActive:   false,
	}
	t.Cleanup(func() {
		db.Delete(&model.KnowledgeDocument{}, "id IN ?", []uuid.UUID{active.Id, inactive.Id})
	})

	uow := uowFactory.NewUnitOfWork(ctx)
	require.NoError(t, uow.KnowledgeDocumentRepository().Create(ctx, active))
	require.NoError(t, uow.KnowledgeDocumentRepository().Create(ctx, inactive))

	found, err := search.NewRepositorySource(uowFactory, 10).Search(ctx, marker, store.SearchFilters{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, active.Id.String(), found[0].ID)

	found, err = search.NewRepositorySource(uowFactory, 10).Search(ctx, marker, store.SearchFilters{SourceTypes: []string{store.SourcePublic}})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRecorder_PersistsJournal(t *testing.T) {
	db := connect(t)
	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	recorder := journal.NewRecorder(uowFactory, nil, nil, nil, 0)

	sessionID := "it-" + uuid.NewString()
	qc := store.QueryContext{SessionID: sessionID, UserID: "it-user", UserRole: "employee"}
	t.Cleanup(func() {
		db.Delete(&model.RagConversation{}, "session_id = ?", sessionID)
		db.Delete(&model.FallbackTicket{}, "session_id = ?", sessionID)
		db.Delete(&model.AuditLog{}, "user_id = ?", "it-user")
	})

	resp := store.StructuredResponse{
		Summary:               "sem documentos",
		Sources:               []store.SourceCitation{},
		ConfidenceLevel:       store.ConfidenceLow,
		RequiresHumanFallback: true,
		FallbackReason:        "no documentation available",
	}

	first, err := recorder.SaveConversation(ctx, qc, resp, nil)
	require.NoError(t, err)
	_, err = recorder.SaveConversation(ctx, qc, resp, nil)
	require.NoError(t, err)
	require.NoError(t, recorder.LogAccess(ctx, first, qc, nil, 0))
	require.NoError(t, recorder.CreateFallbackTicket(ctx, journal.TicketRequest{
		ConversationID: first,
		SessionID:      sessionID,
		UserQuery:      "pergunta",
		AIResponse:     resp.Serialize(),
		Reason:         resp.FallbackReason,
	}))

	uow := uowFactory.NewUnitOfWork(ctx)
	records, err := uow.RagConversationRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderBy{Field: "message_index"},
	)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 0, records[0].MessageIndex)
	assert.Equal(t, 1, records[1].MessageIndex)

	tickets, err := uow.FallbackTicketRepository().FindAll(ctx, specification.BySessionID{SessionID: sessionID})
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "open", tickets[0].Status)
	assert.Equal(t, "medium", tickets[0].Priority)
	assert.Equal(t, journal.DefaultSLA, tickets[0].SlaDeadline.Sub(tickets[0].CreatedAt).Round(1e9))
}
