package services

import (
	"context"

	"github.com/hoaxify/hoaxify-cli/internal/client/api"
	"github.com/hoaxify/hoaxify-cli/internal/client/models"
	"github.com/hoaxify/hoaxify-cli/internal/logging"
)

// HoaxService posts hoaxes and reads the global and per-user feeds.
type HoaxService struct {
	gateway api.Gateway
	log     logging.Logger
}

func NewHoaxService(gateway api.Gateway, log logging.Logger) *HoaxService {
	return &HoaxService{gateway: gateway, log: log.With("component", "hoaxes")}
}

func (s *HoaxService) Post(ctx context.Context, content string) (models.Hoax, error) {
	hoax, err := s.gateway.PostHoax(ctx, content)
	if err != nil {
		return models.Hoax{}, err
	}
	s.log.Info(ctx, "hoax posted", "id", hoax.ID)
	return hoax, nil
}

// Feed fetches one page of the global feed, newest first.
func (s *HoaxService) Feed(ctx context.Context, page, size int) (models.Page[models.Hoax], error) {
	return s.gateway.ListHoaxes(ctx, page, size)
}

// UserFeed fetches one page of a single user's hoaxes, newest first.
func (s *HoaxService) UserFeed(username string) func(ctx context.Context, page, size int) (models.Page[models.Hoax], error) {
	return func(ctx context.Context, page, size int) (models.Page[models.Hoax], error) {
		return s.gateway.ListUserHoaxes(ctx, username, page, size)
	}
}
