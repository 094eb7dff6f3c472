package review

import (
	"fmt"

	festivalRepo "telatour/database/repository/festival"
	placeRepo "telatour/database/repository/place"
	reviewRepo "telatour/database/repository/review"
	"telatour/models"
	"telatour/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Aggregator maintains the denormalized rating summary on places and
// festivals. Every recomputation is full: it refetches the active
// review set and rewrites average/count, so re-running on an unchanged
// set is a no-op. No locking is taken; concurrent submissions to the
// same target resolve to the last writer's recomputation, which is
// acceptable for a display statistic.
type Aggregator struct {
	Reviews   reviewRepo.ReviewRepository
	Places    placeRepo.PlaceRepository
	Festivals festivalRepo.FestivalRepository
	Cache     CacheInvalidator
	Logger    *zap.Logger
}

// CacheInvalidator drops cached detail responses whose stored rating
// just changed. *utils.Cache satisfies it; nil skips invalidation.
type CacheInvalidator interface {
	Delete(keys ...string) error
}

// ComputeRating derives the summary from an active review set:
// average rounded to one decimal (0 when empty) and the count.
func ComputeRating(reviews []models.Review) models.Rating {
	if len(reviews) == 0 {
		return models.Rating{}
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return models.Rating{
		Average: utils.RoundRating(float64(sum) / float64(len(reviews))),
		Count:   len(reviews),
	}
}

// Recompute refreshes the stored rating for one target.
func (a *Aggregator) Recompute(kind string, target primitive.ObjectID) error {
	switch kind {
	case "place":
		reviews, err := a.Reviews.FindActiveByPlace(target)
		if err != nil {
			return fmt.Errorf("failed to load reviews for place %s: %w", target.Hex(), err)
		}
		if err := a.Places.UpdateRating(target, ComputeRating(reviews)); err != nil {
			return err
		}
	case "festival":
		reviews, err := a.Reviews.FindActiveByFestival(target)
		if err != nil {
			return fmt.Errorf("failed to load reviews for festival %s: %w", target.Hex(), err)
		}
		if err := a.Festivals.UpdateRating(target, ComputeRating(reviews)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown rating target kind %q", kind)
	}
	a.invalidateDetail(kind, target)
	return nil
}

// invalidateDetail drops the target's cached detail so the next read
// reflects the freshly stored rating instead of waiting out the TTL.
func (a *Aggregator) invalidateDetail(kind string, target primitive.ObjectID) {
	if a.Cache == nil {
		return
	}
	if err := a.Cache.Delete(utils.DetailCacheKey(kind, target.Hex())); err != nil {
		a.Logger.Warn("failed to invalidate detail cache after rating update",
			zap.String("kind", kind),
			zap.String("target", target.Hex()),
			zap.Error(err))
	}
}

// RecomputeForReview refreshes the rating of the review's target, if
// any. Failures are logged and swallowed so an aggregate hiccup never
// rolls back the review write that triggered it.
func (a *Aggregator) RecomputeForReview(rev *models.Review) {
	kind, target := rev.Target()
	if target == nil {
		return
	}
	if err := a.Recompute(kind, *target); err != nil {
		a.Logger.Error("rating recomputation failed",
			zap.String("kind", kind),
			zap.String("target", target.Hex()),
			zap.Error(err))
	}
}
