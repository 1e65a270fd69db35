package service

import (
	"context"

	"sermon-advisor-be/internal/dto"
	"sermon-advisor-be/pkg/recommend"
)

type IAdvisorService interface {
	Chat(ctx context.Context, req *dto.AdvisorChatRequest) (*dto.AdvisorChatResponse, error)
}

// advisorService is a thin adapter between the HTTP surface and the
// recommendation engine. The engine owns all outcome semantics; this layer
// only reshapes them into response DTOs.
type advisorService struct {
	engine *recommend.Engine
}

func NewAdvisorService(engine *recommend.Engine) IAdvisorService {
	return &advisorService{engine: engine}
}

func (s *advisorService) Chat(ctx context.Context, req *dto.AdvisorChatRequest) (*dto.AdvisorChatResponse, error) {
	outcome := s.engine.Advise(ctx, req.UserId, req.Message)

	res := &dto.AdvisorChatResponse{
		Status:  string(outcome.Status),
		Reply:   outcome.Reply,
		HasMore: outcome.HasMore,
	}

	for _, item := range outcome.Items {
		res.Recommendations = append(res.Recommendations, dto.RecommendedTeachingDTO{
			Id:          item.Teaching.Id,
			Title:       item.Teaching.Title,
			Description: item.Teaching.Description,
			Channel:     item.Teaching.Channel,
			MessageLink: item.Teaching.MessageLink,
			ImageURL:    item.Teaching.ImageURL,
			Date:        item.Teaching.Date,
			Themes:      item.Teaching.Themes,
			Relevance:   item.Relevance,
			Rationale:   item.Rationale,
		})
	}

	return res, nil
}
