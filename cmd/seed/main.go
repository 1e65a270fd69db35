package main

import (
	"context"
	"log"
	"time"

	"sermon-advisor-be/internal/config"
	"sermon-advisor-be/internal/entity"
	"sermon-advisor-be/internal/repository/specification"
	"sermon-advisor-be/internal/repository/unitofwork"
	"sermon-advisor-be/internal/service"
	"sermon-advisor-be/pkg/database"
	"sermon-advisor-be/pkg/embedding"

	"github.com/google/uuid"
)

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func main() {
	cfg := config.Load()

	db, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var provider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	} else {
		provider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	teachings := []entity.Teaching{
		{
			Title:       "Walking Through the Valley",
			Description: "A message on finding God's presence during seasons of grief and loss, drawn from Psalm 23.",
			Channel:     "Sunday Service",
			MessageLink: "https://example.org/messages/walking-through-the-valley",
			Date:        date(2025, time.March, 2),
			Themes:      []string{"grief", "comfort", "presence"},
		},
		{
			Title:       "The Healing Touch",
			Description: "Exploring the accounts of healing in the gospels and what they teach about faith and restoration.",
			Channel:     "Sunday Service",
			MessageLink: "https://example.org/messages/the-healing-touch",
			Date:        date(2025, time.April, 13),
			Themes:      []string{"healing", "faith", "restoration"},
		},
		{
			Title:       "Seventy Times Seven",
			Description: "On the discipline of forgiveness: why letting go of offense frees the one who forgives.",
			Channel:     "Midweek Study",
			MessageLink: "https://example.org/messages/seventy-times-seven",
			Date:        date(2025, time.May, 7),
			Themes:      []string{"forgiveness", "grace"},
		},
		{
			Title:       "Anchored Hope",
			Description: "Hope that holds when circumstances don't change, from Hebrews 6.",
			Channel:     "Sunday Service",
			MessageLink: "https://example.org/messages/anchored-hope",
			Date:        date(2025, time.June, 1),
			Themes:      []string{"hope", "perseverance"},
		},
		{
			Title:       "Prayers That Move Mountains",
			Description: "A practical teaching on persistent prayer and what Jesus meant by mountain-moving faith.",
			Channel:     "Midweek Study",
			MessageLink: "https://example.org/messages/prayers-that-move-mountains",
			Date:        date(2025, time.July, 16),
			Themes:      []string{"prayer", "faith"},
		},
	}

	log.Printf("Seeding %d teachings...", len(teachings))

	for i := range teachings {
		t := &teachings[i]

		existing, err := uow.TeachingRepository().FindOne(ctx, specification.ByMessageLink{MessageLink: t.MessageLink})
		if err != nil {
			log.Fatal("Error: lookup failed:", err)
		}
		if existing != nil {
			log.Printf("Teaching %q already seeded, skipping", t.Title)
			continue
		}

		t.Id = uuid.New()
		t.CreatedAt = time.Now()
		if err := uow.TeachingRepository().Create(ctx, t); err != nil {
			log.Fatal("Error: create failed:", err)
		}

		document := service.ComposeTeachingDocument(t)
		vector, err := provider.Generate(ctx, document)
		if err != nil {
			log.Printf("Warn: embedding failed for %q: %v (run the consumer to backfill)", t.Title, err)
			continue
		}

		record := &entity.TeachingEmbedding{
			Id:             uuid.New(),
			Document:       document,
			EmbeddingValue: vector,
			TeachingId:     t.Id,
			CreatedAt:      time.Now(),
		}
		if err := uow.TeachingEmbeddingRepository().Upsert(ctx, record); err != nil {
			log.Fatal("Error: embedding upsert failed:", err)
		}

		log.Printf("Seeded %q", t.Title)
	}

	log.Println("✅ Seeding complete")
}
