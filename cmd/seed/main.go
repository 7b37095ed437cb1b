package main

import (
	"log"

	"knowledge-assistant-be/internal/config"
	"knowledge-assistant-be/internal/model"
	"knowledge-assistant-be/pkg/database"

	"gorm.io/datatypes"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Knowledge Base...")

	for _, d := range sampleDocuments() {
		var existing model.KnowledgeDocument
		if err := db.Where("title = ? AND version = ?", d.Title, d.Version).First(&existing).Error; err == nil {
			log.Printf("Document '%s' v%s already exists, skipping...", d.Title, d.Version)
			continue
		}

		if err := db.Create(&d).Error; err != nil {
			log.Printf("Error creating document '%s': %v", d.Title, err)
		} else {
			log.Printf("Created document: %s (%s)", d.Title, d.SourceType)
		}
	}

	log.Println("Knowledge base seeding completed!")
}

func sampleDocuments() []model.KnowledgeDocument {
	return []model.KnowledgeDocument{
		{
			Title:       "Procedimento de emissão de nota fiscal",
			SourceType:  "internal",
			Sensitivity: "internal",
			Category:    "operacional",
			Version:     "2.1",
			IsActive:    true,
			Content: `Como emitir nota fiscal de serviço no sistema:
1. Acesse o módulo Faturamento e clique em Nova Nota
2. Selecione o cliente e confira o CNPJ
3. Informe o código do serviço e o valor
4. Revise as retenções de impostos
5. Clique em Emitir e envie o PDF ao cliente`,
		},
		{
			Title:       "Política de reembolso de despesas",
			SourceType:  "internal",
			Sensitivity: "internal",
			Category:    "operacional",
			Version:     "1.3",
			IsActive:    true,
			Content: `Para solicitar reembolso de despesas de viagem:
1. Guarde a nota fiscal de cada despesa
2. Preencha o formulário de reembolso no portal do colaborador
3. Anexe os comprovantes digitalizados
4. Envie para aprovação do gestor em até 30 dias`,
		},
		{
			Title:       "Indicadores financeiros: DSO e capital de giro",
			SourceType:  "public",
			Sensitivity: "public",
			Category:    "financeiro",
			Version:     "1.0",
			IsActive:    true,
			Content:     "O DSO mede o prazo médio de recebimento. Calcule DSO dividindo contas a receber pela receita mensal e multiplicando por 30. Um DSO alto pressiona o capital de giro.",
		},
		{
			Title:         "Relatório de margem por cliente",
			SourceType:    "confidential",
			Sensitivity:   "confidential",
			Category:      "financeiro",
			Version:       "2026.1",
			IsActive:      true,
			RequiredRoles: datatypes.JSONSlice[string]{"manager", "admin"},
			Content:       "Margem de contribuição por cliente no último trimestre. Clientes do segmento varejo têm margem de contribuição abaixo da média e prazo de recebimento acima de 60 dias.",
		},
		{
			Title:         "Planejamento estratégico: expansão regional",
			SourceType:    "restricted",
			Sensitivity:   "restricted",
			Category:      "estrategico",
			Version:       "0.9",
			IsActive:      true,
			RequiredRoles: datatypes.JSONSlice[string]{"admin"},
			Content:       "Diretrizes de expansão regional: priorizar capitais do nordeste, avaliar parceria com distribuidores locais e validar o break-even de cada filial antes da abertura.",
		},
	}
}
