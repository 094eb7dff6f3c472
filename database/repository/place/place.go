package placeRepo

import (
	"telatour/database/query"
	"telatour/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaceRepository defines data access for places.
type PlaceRepository interface {
	// Create inserts a validated place and stamps its timestamps.
	Create(place *models.Place) error
	// GetByID retrieves an active place by id.
	GetByID(id primitive.ObjectID) (*models.Place, error)
	// GetByIDAny retrieves a place regardless of its active flag.
	// Internal accessor; list/detail surfaces never use it.
	GetByIDAny(id primitive.ObjectID) (*models.Place, error)
	// List returns one page of active places matching params, plus the
	// total count disregarding pagination.
	List(params query.ListParams) ([]models.Place, int64, error)
	// Replace overwrites the stored document with the merged update.
	Replace(place *models.Place) error
	// SoftDelete flips isActive off. The record is never removed.
	SoftDelete(id primitive.ObjectID) error
	// Nearby returns active places within radiusKm of the point,
	// nearest first, capped at limit.
	Nearby(lat, lng, radiusKm float64, limit int) ([]models.Place, error)
	// Summaries fetches trimmed projections for nearby-place refs.
	Summaries(ids []primitive.ObjectID) ([]models.PlaceSummary, error)
	// UpdateRating writes the denormalized rating summary. Only the
	// rating aggregator calls this.
	UpdateRating(id primitive.ObjectID, rating models.Rating) error
}
