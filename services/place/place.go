package place

import (
	"encoding/json"
	"errors"
	"fmt"

	placeRepo "telatour/database/repository/place"
	"telatour/database/query"
	"telatour/database/repository"
	"telatour/models"
	"telatour/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DefaultPlaceService implements PlaceService on the Mongo repository,
// with a Redis cache in front of detail reads.
type DefaultPlaceService struct {
	Repo   placeRepo.PlaceRepository
	Cache  *utils.Cache
	Logger *zap.Logger
}

func detailCacheKey(id string) string {
	return utils.DetailCacheKey("place", id)
}

func (s *DefaultPlaceService) List(params query.ListParams) (*query.Page[models.Place], error) {
	items, total, err := s.Repo.List(params)
	if err != nil {
		return nil, err
	}
	return &query.Page[models.Place]{
		Items:      items,
		Pagination: query.NewPagination(params, total),
	}, nil
}

func (s *DefaultPlaceService) Get(id string) (*Detail, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	if s.Cache != nil {
		var cached Detail
		if err := s.Cache.GetJSON(detailCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	place, err := s.Repo.GetByID(oid)
	if err != nil {
		return nil, err
	}

	summaries, err := s.Repo.Summaries(place.NearbyPlaces)
	if err != nil {
		// The detail itself is intact; log the populate failure and
		// serve the record without summaries.
		s.Logger.Warn("failed to populate nearby places", zap.String("place", id), zap.Error(err))
		summaries = nil
	}

	detail := &Detail{Place: *place, NearbyPlaces: summaries}
	if s.Cache != nil {
		if err := s.Cache.SetJSON(detailCacheKey(id), detail); err != nil {
			s.Logger.Warn("failed to cache place detail", zap.String("place", id), zap.Error(err))
		}
	}
	return detail, nil
}

func (s *DefaultPlaceService) Nearby(lat, lng, radiusKm float64, limit int) ([]models.NearbyPlace, error) {
	places, err := s.Repo.Nearby(lat, lng, radiusKm, limit)
	if err != nil {
		return nil, err
	}
	nearby := make([]models.NearbyPlace, 0, len(places))
	for _, p := range places {
		nearby = append(nearby, models.NearbyPlace{
			Place:      p,
			DistanceKm: utils.Haversine(lat, lng, p.Location.Point().Latitude(), p.Location.Point().Longitude()),
		})
	}
	return nearby, nil
}

func (s *DefaultPlaceService) Create(place *models.Place) error {
	place.ApplyDefaults()
	place.Rating = models.Rating{}
	place.IsActive = true
	if err := place.Validate(); err != nil {
		return err
	}
	return s.Repo.Create(place)
}

// Update merges the patch into the stored record and re-validates the
// result. Rating, id and timestamps are never client-writable.
func (s *DefaultPlaceService) Update(id string, patch map[string]interface{}) (*models.Place, error) {
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

func (s *DefaultPlaceService) Delete(id string) error {
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

func (s *DefaultPlaceService) invalidate(id string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(detailCacheKey(id)); err != nil && !errors.Is(err, utils.ErrCacheMiss) {
		s.Logger.Warn("failed to invalidate place cache", zap.String("place", id), zap.Error(err))
	}
}
