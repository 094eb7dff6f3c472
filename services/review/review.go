package review

import (
	"encoding/json"
	"fmt"

	"telatour/database/query"
	"telatour/database/repository"
	reviewRepo "telatour/database/repository/review"
	"telatour/models"
	"telatour/services/notification"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Repo       reviewRepo.ReviewRepository
	Aggregator *Aggregator
	Mailer     notification.Mailer
	Logger     *zap.Logger
}

func (s *DefaultReviewService) List(params query.ListParams) (*query.Page[models.Review], error) {
	items, total, err := s.Repo.List(params)
	if err != nil {
		return nil, err
	}
	return &query.Page[models.Review]{
		Items:      items,
		Pagination: query.NewPagination(params, total),
	}, nil
}

func (s *DefaultReviewService) Get(id string) (*models.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return s.Repo.GetByID(oid)
}

func (s *DefaultReviewService) Create(rev *models.Review, reviewer string) error {
	uid, err := primitive.ObjectIDFromHex(reviewer)
	if err != nil {
		verr := &models.ValidationError{}
		verr.Add("user", "Valid user is required")
		return verr
	}
	rev.User = &uid
	rev.IsPublic = false
	rev.IsActive = true
	rev.IsVerified = false
	rev.Helpful = models.Helpful{}
	if err := rev.Validate(); err != nil {
		return err
	}

	targetName, err := s.targetName(rev)
	if err != nil {
		return err
	}

	if err := s.Repo.Create(rev); err != nil {
		return err
	}

	s.Aggregator.RecomputeForReview(rev)
	s.notify(rev, reviewer, targetName)
	return nil
}

func (s *DefaultReviewService) CreatePublic(sub PublicSubmission) (*models.Review, error) {
	rev := &models.Review{
		Name:     sub.Name,
		Email:    sub.Email,
		Rating:   sub.Rating,
		Title:    sub.Title,
		Comment:  sub.Comment,
		IsPublic: true,
		IsActive: true,
	}
	// A public submission may name a target; an unknown id leaves the
	// review unbound rather than failing the contact form.
	if oid, err := primitive.ObjectIDFromHex(sub.Place); err == nil {
		if _, err := s.Aggregator.Places.GetByID(oid); err == nil {
			rev.Place = &oid
		}
	}
	if rev.Place == nil {
		if oid, err := primitive.ObjectIDFromHex(sub.Festival); err == nil {
			if _, err := s.Aggregator.Festivals.GetByID(oid); err == nil {
				rev.Festival = &oid
			}
		}
	}

	if err := rev.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(rev); err != nil {
		return nil, err
	}

	s.Aggregator.RecomputeForReview(rev)
	targetName, _ := s.targetName(rev)
	s.notify(rev, sub.Name, targetName)
	return rev, nil
}

// Update merges a partial patch into the stored review. The target
// reference, ownership, vote tally and flags are immutable through
// this path.
func (s *DefaultReviewService) Update(id, actorID, actorRole string, patch map[string]interface{}) (*models.Review, error) {
	existing, err := s.authorized(id, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	for _, k := range []string{
		"id", "_id", "user", "place", "festival", "helpful",
		"isPublic", "isActive", "isVerified", "createdAt", "updatedAt",
	} {
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

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Replace(&merged); err != nil {
		return nil, err
	}
	if merged.Rating != existing.Rating {
		s.Aggregator.RecomputeForReview(&merged)
	}
	return &merged, nil
}

func (s *DefaultReviewService) Delete(id, actorID, actorRole string) error {
	existing, err := s.authorized(id, actorID, actorRole)
	if err != nil {
		return err
	}
	if err := s.Repo.SoftDelete(existing.ID); err != nil {
		return err
	}
	s.Aggregator.RecomputeForReview(existing)
	return nil
}

func (s *DefaultReviewService) MarkHelpful(id, voter string) (*models.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return s.Repo.AddHelpfulVote(oid, voter)
}

// authorized loads the review and checks the actor owns it or is an
// admin.
func (s *DefaultReviewService) authorized(id, actorID, actorRole string) (*models.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	existing, err := s.Repo.GetByIDAny(oid)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin {
		if existing.User == nil || existing.User.Hex() != actorID {
			return nil, ErrForbidden
		}
	}
	return existing, nil
}

// targetName verifies the review's target exists and returns its
// display name for the notification email.
func (s *DefaultReviewService) targetName(rev *models.Review) (string, error) {
	if rev.Place != nil {
		p, err := s.Aggregator.Places.GetByID(*rev.Place)
		if err != nil {
			return "", fmt.Errorf("place %s: %w", rev.Place.Hex(), err)
		}
		return p.Name, nil
	}
	if rev.Festival != nil {
		f, err := s.Aggregator.Festivals.GetByID(*rev.Festival)
		if err != nil {
			return "", fmt.Errorf("festival %s: %w", rev.Festival.Hex(), err)
		}
		return f.Name, nil
	}
	return "", nil
}

// notify fires the admin email without blocking the request. Failures
// are logged and swallowed.
func (s *DefaultReviewService) notify(rev *models.Review, reviewer, targetName string) {
	if s.Mailer == nil {
		return
	}
	kind, _ := rev.Target()
	n := notification.ReviewNotification{
		Title:      rev.Title,
		Rating:     rev.Rating,
		Comment:    rev.Comment,
		Reviewer:   reviewer,
		Email:      rev.Email,
		TargetKind: kind,
		TargetName: targetName,
		IsPublic:   rev.IsPublic,
		CreatedAt:  rev.CreatedAt,
	}
	go func() {
		if err := s.Mailer.SendReviewNotification(n); err != nil {
			s.Logger.Warn("review notification failed", zap.Error(err))
		}
	}()
}
