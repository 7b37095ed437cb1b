package constant

const (
	ConversationRoleAssistant = "assistant"

	AuditActionRagQuery = "rag_query"

	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"

	TicketPriorityMedium = "medium"
)

// Roles carried in the JWT "role" claim
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Document store backends
const (
	DocumentStorePostgres = "postgres"
	DocumentStoreBleve    = "bleve"
)

// Events published on NATS
const (
	EventFallbackTicketCreated = "FALLBACK_TICKET_CREATED"
	EventSensitiveDataAccessed = "SENSITIVE_DATA_ACCESSED"
)
