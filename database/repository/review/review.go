package reviewRepo

import (
	"telatour/database/query"
	"telatour/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewRepository defines data access for reviews.
type ReviewRepository interface {
	// Create inserts a validated review and stamps its timestamps.
	Create(review *models.Review) error
	// GetByID retrieves an active review by id.
	GetByID(id primitive.ObjectID) (*models.Review, error)
	// GetByIDAny retrieves a review regardless of its active flag.
	GetByIDAny(id primitive.ObjectID) (*models.Review, error)
	// List returns one page of active reviews matching params, plus
	// the total count disregarding pagination.
	List(params query.ListParams) ([]models.Review, int64, error)
	// Replace overwrites the stored document with the merged update.
	Replace(review *models.Review) error
	// SoftDelete flips isActive off.
	SoftDelete(id primitive.ObjectID) error
	// FindActiveByPlace returns all active reviews of a place. Feeds
	// the rating aggregator, so it is unpaginated by design.
	FindActiveByPlace(placeID primitive.ObjectID) ([]models.Review, error)
	// FindActiveByFestival returns all active reviews of a festival.
	FindActiveByFestival(festivalID primitive.ObjectID) ([]models.Review, error)
	// AddHelpfulVote records a helpful vote if the voter hasn't voted
	// on this review yet. Returns the updated review.
	AddHelpfulVote(id primitive.ObjectID, voter string) (*models.Review, error)
}
