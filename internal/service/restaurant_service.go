package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/mudgalz/foodie-be/internal/domain"
	"github.com/mudgalz/foodie-be/internal/imagestore"
)

type RestaurantService struct {
	repo        RestaurantRepository
	cache       RestaurantCache
	images      imagestore.Store
	frontendURL string
	log         *zap.SugaredLogger
}

func NewRestaurantService(repo RestaurantRepository, cache RestaurantCache, images imagestore.Store, frontendURL string, log *zap.SugaredLogger) *RestaurantService {
	return &RestaurantService{
		repo:        repo,
		cache:       cache,
		images:      images,
		frontendURL: frontendURL,
		log:         log,
	}
}

// CreateForOwner persists a new restaurant for rest.UserID. One account owns
// at most one restaurant, enforced by a pre-check rather than a constraint.
func (s *RestaurantService) CreateForOwner(ctx context.Context, rest *domain.Restaurant, image []byte, imageType string) error {
	_, err := s.repo.GetRestaurantByOwner(ctx, rest.UserID)
	if err == nil {
		return ErrRestaurantExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check existing restaurant: %w", err)
	}

	if len(image) > 0 {
		url, err := s.images.Upload(ctx, image, imageType)
		if err != nil {
			return fmt.Errorf("upload image: %w", err)
		}
		rest.ImageURL = url
	}

	rest.LastUpdated = time.Now()
	if err := s.repo.CreateRestaurant(ctx, rest); err != nil {
		return fmt.Errorf("create restaurant: %w", err)
	}

	if err := s.cache.SetRestaurant(ctx, rest); err != nil {
		s.log.Warnw("failed to cache restaurant", "restaurant_id", rest.ID, "error", err)
	}
	return nil
}

func (s *RestaurantService) GetForOwner(ctx context.Context, userID int) (*domain.Restaurant, error) {
	rest, err := s.repo.GetRestaurantByOwner(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}
	return rest, nil
}

// ReplaceForOwner overwrites every editable field of the owner's restaurant,
// including the whole menu. This is deliberate PUT semantics, not a merge.
func (s *RestaurantService) ReplaceForOwner(ctx context.Context, rest *domain.Restaurant, image []byte, imageType string) error {
	existing, err := s.GetForOwner(ctx, rest.UserID)
	if err != nil {
		return err
	}

	rest.ID = existing.ID
	rest.ImageURL = existing.ImageURL
	if len(image) > 0 {
		url, err := s.images.Upload(ctx, image, imageType)
		if err != nil {
			return fmt.Errorf("upload image: %w", err)
		}
		rest.ImageURL = url
	}

	rest.LastUpdated = time.Now()
	if err := s.repo.ReplaceRestaurant(ctx, rest); err != nil {
		return fmt.Errorf("replace restaurant: %w", err)
	}

	if err := s.cache.InvalidateRestaurant(ctx, rest.ID); err != nil {
		s.log.Warnw("failed to invalidate restaurant cache", "restaurant_id", rest.ID, "error", err)
	}
	return nil
}

func (s *RestaurantService) GetByID(ctx context.Context, id int) (*domain.Restaurant, error) {
	if rest, ok := s.cache.GetRestaurant(ctx, id); ok {
		return rest, nil
	}

	rest, err := s.repo.GetRestaurantByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetRestaurant(ctx, rest); err != nil {
		s.log.Warnw("failed to cache restaurant", "restaurant_id", id, "error", err)
	}
	return rest, nil
}

func (s *RestaurantService) Search(ctx context.Context, city, query string, page int) (*domain.RestaurantPage, error) {
	page = NormalizePage(page)
	restaurants, total, err := s.repo.SearchRestaurants(ctx, city, query, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, fmt.Errorf("search restaurants: %w", err)
	}
	if restaurants == nil {
		restaurants = []domain.Restaurant{}
	}
	return &domain.RestaurantPage{
		Data:       restaurants,
		Pagination: paginate(total, page),
	}, nil
}

// MenuQRCode renders a QR code pointing at the owner's public detail page.
func (s *RestaurantService) MenuQRCode(ctx context.Context, userID int) ([]byte, error) {
	rest, err := s.GetForOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(fmt.Sprintf("%s/detail/%d", s.frontendURL, rest.ID), qrcode.Medium, 256)
}

var _ RestaurantServiceInterface = (*RestaurantService)(nil)
