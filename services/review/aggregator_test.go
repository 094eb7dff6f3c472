package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"telatour/models"
)

func newTestAggregator() (*Aggregator, *fakeReviewRepo, *fakePlaceRepo, *fakeFestivalRepo) {
	reviews := newFakeReviewRepo()
	places := newFakePlaceRepo()
	festivals := newFakeFestivalRepo()
	agg := &Aggregator{
		Reviews:   reviews,
		Places:    places,
		Festivals: festivals,
		Logger:    zap.NewNop(),
	}
	return agg, reviews, places, festivals
}

func activePlace(t *testing.T, places *fakePlaceRepo) primitive.ObjectID {
	t.Helper()
	place := &models.Place{Name: "Ramappa Temple", IsActive: true}
	require.NoError(t, places.Create(place))
	return place.ID
}

func placeReview(placeID primitive.ObjectID, rating int) models.Review {
	user := primitive.NewObjectID()
	return models.Review{
		ID:       primitive.NewObjectID(),
		User:     &user,
		Place:    &placeID,
		Rating:   rating,
		Title:    "title",
		Comment:  "comment",
		IsActive: true,
	}
}

func TestComputeRating(t *testing.T) {
	placeID := primitive.NewObjectID()
	reviews := []models.Review{
		placeReview(placeID, 5),
		placeReview(placeID, 4),
		placeReview(placeID, 3),
	}
	rating := ComputeRating(reviews)
	assert.Equal(t, 4.0, rating.Average)
	assert.Equal(t, 3, rating.Count)
}

func TestComputeRatingEmpty(t *testing.T) {
	rating := ComputeRating(nil)
	assert.Equal(t, 0.0, rating.Average)
	assert.Equal(t, 0, rating.Count)
}

func TestComputeRatingRoundsToOneDecimal(t *testing.T) {
	placeID := primitive.NewObjectID()
	reviews := []models.Review{
		placeReview(placeID, 4),
		placeReview(placeID, 4),
		placeReview(placeID, 5),
	}
	rating := ComputeRating(reviews)
	assert.Equal(t, 4.3, rating.Average)
}

func TestRecomputeWritesPlaceRating(t *testing.T) {
	agg, reviews, places, _ := newTestAggregator()
	placeID := activePlace(t, places)

	for _, r := range []int{5, 4, 3} {
		rev := placeReview(placeID, r)
		require.NoError(t, reviews.Create(&rev))
	}
	require.NoError(t, agg.Recompute("place", placeID))

	place, err := places.GetByID(placeID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, place.Rating.Average)
	assert.Equal(t, 3, place.Rating.Count)
}

func TestRecomputeAfterSoftDelete(t *testing.T) {
	agg, reviews, places, _ := newTestAggregator()
	placeID := activePlace(t, places)

	kept := placeReview(placeID, 5)
	dropped := placeReview(placeID, 1)
	require.NoError(t, reviews.Create(&kept))
	require.NoError(t, reviews.Create(&dropped))
	require.NoError(t, agg.Recompute("place", placeID))

	require.NoError(t, reviews.SoftDelete(dropped.ID))
	require.NoError(t, agg.Recompute("place", placeID))

	place, err := places.GetByID(placeID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, place.Rating.Average)
	assert.Equal(t, 1, place.Rating.Count)
}

func TestRecomputeIdempotent(t *testing.T) {
	agg, reviews, places, _ := newTestAggregator()
	placeID := activePlace(t, places)

	rev := placeReview(placeID, 4)
	require.NoError(t, reviews.Create(&rev))

	require.NoError(t, agg.Recompute("place", placeID))
	first, err := places.GetByID(placeID)
	require.NoError(t, err)

	require.NoError(t, agg.Recompute("place", placeID))
	second, err := places.GetByID(placeID)
	require.NoError(t, err)

	assert.Equal(t, first.Rating, second.Rating)
}

func TestRecomputeSerializedWritesConverge(t *testing.T) {
	agg, reviews, places, _ := newTestAggregator()
	placeID := activePlace(t, places)

	for _, r := range []int{1, 2, 3, 4, 5} {
		rev := placeReview(placeID, r)
		require.NoError(t, reviews.Create(&rev))
		require.NoError(t, agg.Recompute("place", placeID))
	}

	place, err := places.GetByID(placeID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, place.Rating.Average)
	assert.Equal(t, 5, place.Rating.Count)
}

func TestRecomputeFestivalTarget(t *testing.T) {
	agg, reviews, _, festivals := newTestAggregator()
	festival := &models.Festival{Name: "Bathukamma", IsActive: true}
	require.NoError(t, festivals.Create(festival))

	user := primitive.NewObjectID()
	rev := models.Review{
		ID:       primitive.NewObjectID(),
		User:     &user,
		Festival: &festival.ID,
		Rating:   5,
		Title:    "title",
		Comment:  "comment",
		IsActive: true,
	}
	require.NoError(t, reviews.Create(&rev))
	require.NoError(t, agg.Recompute("festival", festival.ID))

	got, err := festivals.GetByID(festival.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Rating.Average)
	assert.Equal(t, 1, got.Rating.Count)
}

func TestRecomputeInvalidatesDetailCache(t *testing.T) {
	agg, reviews, places, festivals := newTestAggregator()
	cache := &fakeCache{}
	agg.Cache = cache

	placeID := activePlace(t, places)
	rev := placeReview(placeID, 5)
	require.NoError(t, reviews.Create(&rev))
	require.NoError(t, agg.Recompute("place", placeID))
	assert.Contains(t, cache.deleted, "place:detail:"+placeID.Hex())

	festival := &models.Festival{Name: "Bonalu", IsActive: true}
	require.NoError(t, festivals.Create(festival))
	require.NoError(t, agg.Recompute("festival", festival.ID))
	assert.Contains(t, cache.deleted, "festival:detail:"+festival.ID.Hex())
}

func TestRecomputeUnknownKind(t *testing.T) {
	agg, _, _, _ := newTestAggregator()
	err := agg.Recompute("hotel", primitive.NewObjectID())
	assert.Error(t, err)
}

func TestRecomputeForReviewUnboundIsNoop(t *testing.T) {
	agg, _, _, _ := newTestAggregator()
	rev := &models.Review{Rating: 5, Title: "t", Comment: "c", IsPublic: true, Name: "a", Email: "a@b.c"}
	// Must not panic or write anywhere.
	agg.RecomputeForReview(rev)
}
