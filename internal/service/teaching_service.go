package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sermon-advisor-be/internal/dto"
	"sermon-advisor-be/internal/entity"
	"sermon-advisor-be/internal/repository/specification"
	"sermon-advisor-be/internal/repository/unitofwork"
	"sermon-advisor-be/pkg/events"
	pktNats "sermon-advisor-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITeachingService interface {
	Create(ctx context.Context, req *dto.CreateTeachingRequest) (*dto.TeachingResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.TeachingResponse, error)
	List(ctx context.Context, channel string, limit int) ([]*dto.TeachingResponse, error)
	UpdateThemes(ctx context.Context, id uuid.UUID, req *dto.UpdateTeachingThemesRequest) (*dto.TeachingResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type teachingService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewTeachingService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) ITeachingService {
	return &teachingService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *teachingService) Create(ctx context.Context, req *dto.CreateTeachingRequest) (*dto.TeachingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Ingestion is idempotent per link: re-submitting scraped content must not
	// create a second record.
	existing, err := uow.TeachingRepository().FindOne(ctx, specification.ByMessageLink{MessageLink: req.MessageLink})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fiber.NewError(fiber.StatusConflict, "teaching already ingested for this link")
	}

	teaching := entity.Teaching{
		Id:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Channel:     req.Channel,
		MessageLink: req.MessageLink,
		ImageURL:    req.ImageURL,
		Date:        req.Date,
		Themes:      req.Themes,
		CreatedAt:   time.Now(),
	}

	if err := uow.TeachingRepository().Create(ctx, &teaching); err != nil {
		return nil, err
	}

	if err := s.queueEmbedding(ctx, teaching.Id); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewTeachingCreated(teaching.Id, teaching.Title, teaching.Channel))

	return toTeachingResponse(&teaching), nil
}

func (s *teachingService) Show(ctx context.Context, id uuid.UUID) (*dto.TeachingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	teaching, err := uow.TeachingRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if teaching == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "teaching not found")
	}
	return toTeachingResponse(teaching), nil
}

func (s *teachingService) List(ctx context.Context, channel string, limit int) ([]*dto.TeachingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if channel != "" {
		specs = append(specs, specification.ByChannel{Channel: channel})
	}
	if limit > 0 {
		specs = append(specs, specification.Limit{N: limit})
	}

	teachings, err := uow.TeachingRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.TeachingResponse, len(teachings))
	for i, t := range teachings {
		out[i] = toTeachingResponse(t)
	}
	return out, nil
}

// UpdateThemes is the one permitted mutation on an ingested teaching. The new
// labels change the embedded document, so the vector is queued for a rebuild.
func (s *teachingService) UpdateThemes(ctx context.Context, id uuid.UUID, req *dto.UpdateTeachingThemesRequest) (*dto.TeachingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	teaching, err := uow.TeachingRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if teaching == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "teaching not found")
	}

	teaching.Themes = req.Themes
	now := time.Now()
	teaching.UpdatedAt = &now

	if err := uow.TeachingRepository().Update(ctx, teaching); err != nil {
		return nil, err
	}

	if err := s.queueEmbedding(ctx, teaching.Id); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.BaseEvent{
		Type: events.TypeTeachingThemesUpdated,
		Data: map[string]interface{}{
			"teaching_id": teaching.Id,
			"themes":      teaching.Themes,
		},
		OccurredAt: now,
	})

	return toTeachingResponse(teaching), nil
}

func (s *teachingService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	teaching, err := uow.TeachingRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if teaching == nil {
		return fiber.NewError(fiber.StatusNotFound, "teaching not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.TeachingEmbeddingRepository().DeleteByTeachingId(ctx, id); err != nil {
		return err
	}
	if err := uow.TeachingRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishEvent(ctx, events.BaseEvent{
		Type: events.TypeTeachingDeleted,
		Data: map[string]interface{}{
			"teaching_id": id,
		},
		OccurredAt: time.Now(),
	})
	return nil
}

func (s *teachingService) queueEmbedding(ctx context.Context, teachingId uuid.UUID) error {
	payload, err := json.Marshal(dto.PublishEmbedTeachingMessage{TeachingId: teachingId})
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payload)
}

func (s *teachingService) publishEvent(ctx context.Context, evt events.BaseEvent) {
	if s.eventPublisher == nil {
		return
	}
	// Downstream consumers are auxiliary; a bus failure must not fail the request.
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", evt.EventType(), err)
	}
}

func toTeachingResponse(t *entity.Teaching) *dto.TeachingResponse {
	return &dto.TeachingResponse{
		Id:          t.Id,
		Title:       t.Title,
		Description: t.Description,
		Channel:     t.Channel,
		MessageLink: t.MessageLink,
		ImageURL:    t.ImageURL,
		Date:        t.Date,
		Themes:      t.Themes,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
