package festival

import (
	"telatour/database/query"
	"telatour/models"
)

// FestivalService exposes the festival catalog operations.
type FestivalService interface {
	// List returns one filtered, sorted page of active festivals.
	List(params query.ListParams) (*query.Page[models.Festival], error)
	// Get returns the active festival by id.
	Get(id string) (*models.Festival, error)
	// Upcoming returns the next festivals by start date, soonest first.
	Upcoming(limit int) ([]models.Festival, error)
	// Create validates and stores a new festival.
	Create(festival *models.Festival) error
	// Update applies a partial field merge with re-validation.
	Update(id string, patch map[string]interface{}) (*models.Festival, error)
	// Delete soft-deletes the festival.
	Delete(id string) error
}
