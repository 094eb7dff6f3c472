package review

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"telatour/database/query"
	"telatour/database/repository"
	"telatour/models"
)

// In-memory repository fakes backing the aggregator and service tests.

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[primitive.ObjectID]models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[primitive.ObjectID]models.Review)}
}

func (f *fakeReviewRepo) Create(rev *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rev.ID.IsZero() {
		rev.ID = primitive.NewObjectID()
	}
	f.reviews[rev.ID] = *rev
	return nil
}

func (f *fakeReviewRepo) GetByID(id primitive.ObjectID) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rev, ok := f.reviews[id]
	if !ok || !rev.IsActive {
		return nil, repository.ErrNotFound
	}
	return &rev, nil
}

func (f *fakeReviewRepo) GetByIDAny(id primitive.ObjectID) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rev, ok := f.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rev, nil
}

func (f *fakeReviewRepo) List(params query.ListParams) ([]models.Review, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Review
	for _, rev := range f.reviews {
		if rev.IsActive {
			out = append(out, rev)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReviewRepo) Replace(rev *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[rev.ID]; !ok {
		return repository.ErrNotFound
	}
	f.reviews[rev.ID] = *rev
	return nil
}

func (f *fakeReviewRepo) SoftDelete(id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rev, ok := f.reviews[id]
	if !ok {
		return repository.ErrNotFound
	}
	rev.IsActive = false
	f.reviews[id] = rev
	return nil
}

func (f *fakeReviewRepo) FindActiveByPlace(placeID primitive.ObjectID) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Review
	for _, rev := range f.reviews {
		if rev.IsActive && rev.Place != nil && *rev.Place == placeID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) FindActiveByFestival(festivalID primitive.ObjectID) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Review
	for _, rev := range f.reviews {
		if rev.IsActive && rev.Festival != nil && *rev.Festival == festivalID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) AddHelpfulVote(id primitive.ObjectID, voter string) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rev, ok := f.reviews[id]
	if !ok || !rev.IsActive {
		return nil, repository.ErrNotFound
	}
	if !rev.VotedBy(voter) {
		rev.Helpful.Count++
		rev.Helpful.Users = append(rev.Helpful.Users, voter)
		f.reviews[id] = rev
	}
	return &rev, nil
}

type fakeCache struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeCache) Delete(keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, keys...)
	return nil
}

type fakePlaceRepo struct {
	mu     sync.Mutex
	places map[primitive.ObjectID]models.Place
}

func newFakePlaceRepo() *fakePlaceRepo {
	return &fakePlaceRepo{places: make(map[primitive.ObjectID]models.Place)}
}

func (f *fakePlaceRepo) Create(place *models.Place) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if place.ID.IsZero() {
		place.ID = primitive.NewObjectID()
	}
	f.places[place.ID] = *place
	return nil
}

func (f *fakePlaceRepo) GetByID(id primitive.ObjectID) (*models.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	place, ok := f.places[id]
	if !ok || !place.IsActive {
		return nil, repository.ErrNotFound
	}
	return &place, nil
}

func (f *fakePlaceRepo) GetByIDAny(id primitive.ObjectID) (*models.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	place, ok := f.places[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &place, nil
}

func (f *fakePlaceRepo) List(params query.ListParams) ([]models.Place, int64, error) {
	return nil, 0, nil
}

func (f *fakePlaceRepo) Replace(place *models.Place) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.places[place.ID] = *place
	return nil
}

func (f *fakePlaceRepo) SoftDelete(id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	place, ok := f.places[id]
	if !ok {
		return repository.ErrNotFound
	}
	place.IsActive = false
	f.places[id] = place
	return nil
}

func (f *fakePlaceRepo) Nearby(lat, lng, radiusKm float64, limit int) ([]models.Place, error) {
	return nil, nil
}

func (f *fakePlaceRepo) Summaries(ids []primitive.ObjectID) ([]models.PlaceSummary, error) {
	return nil, nil
}

func (f *fakePlaceRepo) UpdateRating(id primitive.ObjectID, rating models.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	place, ok := f.places[id]
	if !ok {
		return repository.ErrNotFound
	}
	place.Rating = rating
	f.places[id] = place
	return nil
}

type fakeFestivalRepo struct {
	mu        sync.Mutex
	festivals map[primitive.ObjectID]models.Festival
}

func newFakeFestivalRepo() *fakeFestivalRepo {
	return &fakeFestivalRepo{festivals: make(map[primitive.ObjectID]models.Festival)}
}

func (f *fakeFestivalRepo) Create(festival *models.Festival) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if festival.ID.IsZero() {
		festival.ID = primitive.NewObjectID()
	}
	f.festivals[festival.ID] = *festival
	return nil
}

func (f *fakeFestivalRepo) GetByID(id primitive.ObjectID) (*models.Festival, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	festival, ok := f.festivals[id]
	if !ok || !festival.IsActive {
		return nil, repository.ErrNotFound
	}
	return &festival, nil
}

func (f *fakeFestivalRepo) GetByIDAny(id primitive.ObjectID) (*models.Festival, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	festival, ok := f.festivals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &festival, nil
}

func (f *fakeFestivalRepo) List(params query.ListParams) ([]models.Festival, int64, error) {
	return nil, 0, nil
}

func (f *fakeFestivalRepo) Upcoming(limit int) ([]models.Festival, error) {
	return nil, nil
}

func (f *fakeFestivalRepo) Replace(festival *models.Festival) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.festivals[festival.ID] = *festival
	return nil
}

func (f *fakeFestivalRepo) SoftDelete(id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	festival, ok := f.festivals[id]
	if !ok {
		return repository.ErrNotFound
	}
	festival.IsActive = false
	f.festivals[id] = festival
	return nil
}

func (f *fakeFestivalRepo) UpdateRating(id primitive.ObjectID, rating models.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	festival, ok := f.festivals[id]
	if !ok {
		return repository.ErrNotFound
	}
	festival.Rating = rating
	f.festivals[id] = festival
	return nil
}
