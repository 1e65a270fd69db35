package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"sermon-advisor-be/internal/dto"
	"sermon-advisor-be/internal/entity"
	"sermon-advisor-be/internal/repository/specification"
	"sermon-advisor-be/internal/repository/unitofwork"
	"sermon-advisor-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the embedding queue: for each teaching it composes
// the searchable document, generates a vector and upserts it into the index.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedTeachingMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // malformed payloads would retry forever
		return
	}

	log.Printf("[INFO] Embedding teaching %s", payload.TeachingId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	teaching, err := uow.TeachingRepository().FindOne(ctx, specification.ByID{ID: payload.TeachingId})
	if err != nil {
		log.Printf("[ERROR] Failed to get teaching %s: %v", payload.TeachingId, err)
		msg.Nack()
		return
	}
	if teaching == nil {
		log.Printf("[WARN] Teaching %s no longer exists, skipping", payload.TeachingId)
		msg.Ack()
		return
	}

	document := ComposeTeachingDocument(teaching)

	vector, err := cs.embeddingProvider.Generate(ctx, document)
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for teaching %s: %v", payload.TeachingId, err)
		msg.Nack()
		return
	}

	record := &entity.TeachingEmbedding{
		Id:             uuid.New(),
		Document:       document,
		EmbeddingValue: vector,
		TeachingId:     teaching.Id,
		CreatedAt:      time.Now(),
	}

	if err := uow.TeachingEmbeddingRepository().Upsert(ctx, record); err != nil {
		log.Printf("[ERROR] Failed to upsert embedding for teaching %s: %v", payload.TeachingId, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Teaching %s indexed", payload.TeachingId)
	msg.Ack()
}

// ComposeTeachingDocument builds the text that gets embedded. Theme labels
// lead so re-labeling shifts the vector; the same composition must be used at
// ingestion and never at query time (queries embed the raw topic).
func ComposeTeachingDocument(t *entity.Teaching) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Title: %s\n", t.Title)
	if len(t.Themes) > 0 {
		fmt.Fprintf(&sb, "Themes: %s\n", strings.Join(t.Themes, ", "))
	}
	if t.Channel != "" {
		fmt.Fprintf(&sb, "Channel: %s\n", t.Channel)
	}
	sb.WriteString("\n")
	sb.WriteString(t.Description)

	return sb.String()
}
