package main

import (
	"context"
	"log"

	"askhub/db"
	"askhub/internal/models"
	"askhub/internal/repository"
	"askhub/pkg/config"
	"askhub/pkg/logger"
	"askhub/pkg/postgres"

	"go.uber.org/zap"
)

type seedItem struct {
	question string
	answer   string
	keywords string
}

type seedDomain struct {
	name        string
	description string
	items       []seedItem
}

// defaultDomains is the starter knowledge base loaded on a fresh install.
// Seeding is idempotent: domains and questions already present are upserted,
// not duplicated.
var defaultDomains = []seedDomain{
	{
		name:        "legal",
		description: "Legal matters: contracts, laws, compliance",
		items: []seedItem{
			{
				question: "What is a breach of contract?",
				answer:   "A breach of contract occurs when one party fails to fulfill their obligations as specified in the contract without a valid legal excuse.",
				keywords: "breach contract obligation legal excuse",
			},
			{
				question: "What should be included in a contract?",
				answer:   "A contract should include: parties involved, subject matter, terms and conditions, payment details, duration, termination clauses, and dispute resolution methods.",
				keywords: "contract parties terms payment duration termination dispute",
			},
		},
	},
	{
		name:        "education",
		description: "Education: teaching methods, pedagogy, curricula",
		items: []seedItem{
			{
				question: "What is differentiated instruction?",
				answer:   "Differentiated instruction is a teaching approach that tailors instruction to meet individual student needs and learning styles.",
				keywords: "differentiated instruction teaching learning students",
			},
			{
				question: "What is formative assessment?",
				answer:   "Formative assessment is ongoing evaluation during the learning process to monitor student progress and provide feedback.",
				keywords: "formative assessment evaluation learning progress feedback",
			},
		},
	},
	{
		name:        "medical",
		description: "Medicine: health, diseases, treatment",
		items: []seedItem{
			{
				question: "What are vital signs?",
				answer:   "Vital signs include body temperature, pulse rate, respiration rate, and blood pressure. These measurements indicate the state of a patient's essential body functions.",
				keywords: "vital signs temperature pulse respiration blood pressure",
			},
		},
	},
	{
		name:        "technology",
		description: "Technology: programming, AI, IT infrastructure",
		items: []seedItem{
			{
				question: "What is machine learning?",
				answer:   "Machine learning is a subset of artificial intelligence that enables computers to learn and make decisions from data without being explicitly programmed.",
				keywords: "machine learning AI artificial intelligence data",
			},
		},
	},
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Run migrations so seeding works against a fresh database
	if err := db.Migrate(&cfg.Database, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to database
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	domainRepo := repository.NewDomainRepository(pool, appLogger)
	knowledgeRepo := repository.NewKnowledgeRepository(pool, appLogger)

	appLogger.Info("Starting database seeding...")

	for _, sd := range defaultDomains {
		if _, err := domainRepo.Create(ctx, sd.name, sd.description); err != nil {
			appLogger.Fatal("Failed to create domain",
				zap.String("domain", sd.name),
				zap.Error(err),
			)
		}

		domain, err := domainRepo.GetByName(ctx, sd.name)
		if err != nil {
			appLogger.Fatal("Failed to resolve domain",
				zap.String("domain", sd.name),
				zap.Error(err),
			)
		}

		for _, it := range sd.items {
			item := &models.KnowledgeItem{
				Question:   it.question,
				Answer:     it.answer,
				Keywords:   it.keywords,
				Confidence: 1.0,
				Verified:   true,
			}
			if err := knowledgeRepo.Upsert(ctx, domain.ID, item); err != nil {
				appLogger.Fatal("Failed to seed knowledge item",
					zap.String("domain", sd.name),
					zap.String("question", it.question),
					zap.Error(err),
				)
			}
		}

		appLogger.Info("Domain seeded",
			zap.String("domain", sd.name),
			zap.Int("items", len(sd.items)),
		)
	}

	appLogger.Info("Database seeding completed successfully!")
}
