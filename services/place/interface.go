package place

import (
	"telatour/database/query"
	"telatour/models"
)

// Detail is a place plus its populated nearby-place summaries. The
// outer field shadows the embedded id list in the JSON encoding.
type Detail struct {
	models.Place
	NearbyPlaces []models.PlaceSummary `json:"nearbyPlaces"`
}

// PlaceService exposes the place catalog operations.
type PlaceService interface {
	// List returns one filtered, sorted page of active places.
	List(params query.ListParams) (*query.Page[models.Place], error)
	// Get returns the active place with nearby refs populated.
	Get(id string) (*Detail, error)
	// Nearby returns active places within radiusKm of the point,
	// nearest first, each annotated with its Haversine distance.
	Nearby(lat, lng, radiusKm float64, limit int) ([]models.NearbyPlace, error)
	// Create validates and stores a new place.
	Create(place *models.Place) error
	// Update applies a partial field merge with re-validation.
	Update(id string, patch map[string]interface{}) (*models.Place, error)
	// Delete soft-deletes the place.
	Delete(id string) error
}
