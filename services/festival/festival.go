package festival

import (
	"encoding/json"
	"errors"
	"fmt"

	festivalRepo "telatour/database/repository/festival"
	"telatour/database/query"
	"telatour/database/repository"
	"telatour/models"
	"telatour/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DefaultFestivalService implements FestivalService on the Mongo
// repository, with a Redis cache in front of detail reads.
type DefaultFestivalService struct {
	Repo   festivalRepo.FestivalRepository
	Cache  *utils.Cache
	Logger *zap.Logger
}

func detailCacheKey(id string) string {
	return utils.DetailCacheKey("festival", id)
}

func (s *DefaultFestivalService) List(params query.ListParams) (*query.Page[models.Festival], error) {
	items, total, err := s.Repo.List(params)
	if err != nil {
		return nil, err
	}
	return &query.Page[models.Festival]{
		Items:      items,
		Pagination: query.NewPagination(params, total),
	}, nil
}

func (s *DefaultFestivalService) Get(id string) (*models.Festival, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	if s.Cache != nil {
		var cached models.Festival
		if err := s.Cache.GetJSON(detailCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	festival, err := s.Repo.GetByID(oid)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if err := s.Cache.SetJSON(detailCacheKey(id), festival); err != nil {
			s.Logger.Warn("failed to cache festival detail", zap.String("festival", id), zap.Error(err))
		}
	}
	return festival, nil
}

func (s *DefaultFestivalService) Upcoming(limit int) ([]models.Festival, error) {
	return s.Repo.Upcoming(limit)
}

func (s *DefaultFestivalService) Create(festival *models.Festival) error {
	festival.ApplyDefaults()
	festival.Rating = models.Rating{}
	festival.IsActive = true
	if err := festival.Validate(); err != nil {
		return err
	}
	return s.Repo.Create(festival)
}

// Update merges the patch into the stored record and re-validates the
// result. Rating, id and timestamps are never client-writable.
func (s *DefaultFestivalService) Update(id string, patch map[string]interface{}) (*models.Festival, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	existing, err := s.Repo.GetByIDAny(oid)
	if err != nil {
		return nil, err
	}

	for _, k := range []string{"id", "_id", "rating", "createdAt", "updatedAt"} {
		delete(patch, k)
	}
	merged := *existing
	data, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode update: %w", err)
	}
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, &models.ValidationError{Fields: []models.FieldError{{Field: "body", Message: "Malformed update payload"}}}
	}
	merged.ID = existing.ID
	merged.Rating = existing.Rating
	merged.CreatedAt = existing.CreatedAt

	merged.ApplyDefaults()
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Replace(&merged); err != nil {
		return nil, err
	}
	s.invalidate(id)
	return &merged, nil
}

func (s *DefaultFestivalService) Delete(id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	if err := s.Repo.SoftDelete(oid); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *DefaultFestivalService) invalidate(id string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(detailCacheKey(id)); err != nil && !errors.Is(err, utils.ErrCacheMiss) {
		s.Logger.Warn("failed to invalidate festival cache", zap.String("festival", id), zap.Error(err))
	}
}
