package review

import (
	"telatour/database/query"
	"telatour/models"
)

// PublicSubmission is an anonymous review from the contact form. The
// target references are optional free-form ids; an unknown or absent
// target leaves the review unbound.
type PublicSubmission struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Rating   int    `json:"rating"`
	Title    string `json:"title"`
	Comment  string `json:"comment"`
	Place    string `json:"place"`
	Festival string `json:"festival"`
}

// ReviewService exposes review operations. Mutations recompute the
// parent's denormalized rating and fire the admin notification.
type ReviewService interface {
	// List returns one filtered, sorted page of active reviews.
	List(params query.ListParams) (*query.Page[models.Review], error)
	// Get returns an active review by id.
	Get(id string) (*models.Review, error)
	// Create stores an authenticated review. The caller sets User;
	// exactly one of Place/Festival must reference an existing record.
	Create(rev *models.Review, reviewer string) error
	// CreatePublic stores an anonymous submission.
	CreatePublic(sub PublicSubmission) (*models.Review, error)
	// Update merges a partial patch. Only the review owner or an
	// admin may update; the target reference is immutable.
	Update(id, actorID, actorRole string, patch map[string]interface{}) (*models.Review, error)
	// Delete soft-deletes. Only the review owner or an admin.
	Delete(id, actorID, actorRole string) error
	// MarkHelpful records one helpful vote per voter identity.
	MarkHelpful(id, voter string) (*models.Review, error)
}
