package reviewRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"telatour/database/query"
	"telatour/database/repository"
	"telatour/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a ReviewRepository backed by the "reviews"
// collection of the given database.
func NewMongoReviewRepo(db *mongo.Database) ReviewRepository {
	r := &MongoReviewRepo{coll: db.Collection("reviews")}
	if err := r.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return r
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoReviewRepo) Create(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}
	return nil
}

func (r *MongoReviewRepo) GetByID(id primitive.ObjectID) (*models.Review, error) {
	return r.findOne(bson.M{"_id": id, "isActive": true})
}

func (r *MongoReviewRepo) GetByIDAny(id primitive.ObjectID) (*models.Review, error) {
	return r.findOne(bson.M{"_id": id})
}

func (r *MongoReviewRepo) findOne(filter bson.M) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, filter).Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch review: %w", err)
	}
	return &review, nil
}

func (r *MongoReviewRepo) List(params query.ListParams) ([]models.Review, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := params.ReviewFilter()
	cursor, err := r.coll.Find(ctx, filter, params.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reviews: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *MongoReviewRepo) Replace(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	review.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": review.ID}, review)
	if err != nil {
		return fmt.Errorf("failed to update review %s: %w", review.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoReviewRepo) SoftDelete(id primitive.ObjectID) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoReviewRepo) FindActiveByPlace(placeID primitive.ObjectID) ([]models.Review, error) {
	return r.findActive(bson.M{"place": placeID, "isActive": true})
}

func (r *MongoReviewRepo) FindActiveByFestival(festivalID primitive.ObjectID) ([]models.Review, error) {
	return r.findActive(bson.M{"festival": festivalID, "isActive": true})
}

func (r *MongoReviewRepo) findActive(filter bson.M) ([]models.Review, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *MongoReviewRepo) AddHelpfulVote(id primitive.ObjectID, voter string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	// Single atomic update so a voter can never be counted twice.
	filter := bson.M{"_id": id, "isActive": true, "helpful.users": bson.M{"$ne": voter}}
	update := bson.M{
		"$inc":  bson.M{"helpful.count": 1},
		"$push": bson.M{"helpful.users": voter},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to record helpful vote on %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		// Either the review is gone or the voter already voted; a
		// lookup distinguishes the two.
		if _, err := r.GetByID(id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(id)
}
