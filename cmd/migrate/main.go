package main

import (
	"log"

	"knowledge-assistant-be/internal/config"
	"knowledge-assistant-be/internal/model"
	"knowledge-assistant-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: Extensions
	log.Println("Step 1: Setting up Extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Printf("Warn: Failed to create extension: %v. Continuing...", err)
	}

	// 4. AutoMigrate
	log.Println("Step 2: Running AutoMigrate for 4 Tables...")

	models := []interface{}{
		&model.KnowledgeDocument{},
		&model.RagConversation{},
		&model.AuditLog{},
		&model.FallbackTicket{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: search and lookup indexes
	log.Println("Step 3: Creating Indexes...")

	postMigrationSQL := []string{
		// Must match the expression used by specification.FullTextQuery
		`CREATE INDEX IF NOT EXISTS idx_knowledge_documents_fts
		 ON knowledge_documents USING GIN (to_tsvector('simple', title || ' ' || content));`,

		`CREATE INDEX IF NOT EXISTS idx_knowledge_documents_active
		 ON knowledge_documents (is_active) WHERE is_active = true;`,

		`CREATE INDEX IF NOT EXISTS idx_rag_conversations_session_idx
		 ON rag_conversations (session_id, message_index);`,

		`CREATE INDEX IF NOT EXISTS idx_fallback_tickets_open_sla
		 ON fallback_tickets (sla_deadline) WHERE status = 'open';`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
