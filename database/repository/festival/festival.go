package festivalRepo

import (
	"telatour/database/query"
	"telatour/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FestivalRepository defines data access for festivals.
type FestivalRepository interface {
	// Create inserts a validated festival and stamps its timestamps.
	Create(festival *models.Festival) error
	// GetByID retrieves an active festival by id.
	GetByID(id primitive.ObjectID) (*models.Festival, error)
	// GetByIDAny retrieves a festival regardless of its active flag.
	GetByIDAny(id primitive.ObjectID) (*models.Festival, error)
	// List returns one page of active festivals matching params, plus
	// the total count disregarding pagination.
	List(params query.ListParams) ([]models.Festival, int64, error)
	// Upcoming returns the next active festivals by start date,
	// soonest first, capped at limit.
	Upcoming(limit int) ([]models.Festival, error)
	// Replace overwrites the stored document with the merged update.
	Replace(festival *models.Festival) error
	// SoftDelete flips isActive off.
	SoftDelete(id primitive.ObjectID) error
	// UpdateRating writes the denormalized rating summary. Only the
	// rating aggregator calls this.
	UpdateRating(id primitive.ObjectID, rating models.Rating) error
}
