package festivalRepo

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFestivalRepo implements FestivalRepository using MongoDB.
type MongoFestivalRepo struct {
	coll *mongo.Collection
}

// NewMongoFestivalRepo creates a FestivalRepository backed by the
// "festivals" collection of the given database.
func NewMongoFestivalRepo(db *mongo.Database) FestivalRepository {
	r := &MongoFestivalRepo{coll: db.Collection("festivals")}
	if err := r.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return r
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoFestivalRepo) Create(festival *models.Festival) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now().UTC()
	festival.CreatedAt = now
	festival.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, festival)
	if err != nil {
		return fmt.Errorf("failed to create festival: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		festival.ID = oid
	}
	return nil
}

func (r *MongoFestivalRepo) GetByID(id primitive.ObjectID) (*models.Festival, error) {
	return r.findOne(bson.M{"_id": id, "isActive": true})
}

func (r *MongoFestivalRepo) GetByIDAny(id primitive.ObjectID) (*models.Festival, error) {
	return r.findOne(bson.M{"_id": id})
}

func (r *MongoFestivalRepo) findOne(filter bson.M) (*models.Festival, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var festival models.Festival
	if err := r.coll.FindOne(ctx, filter).Decode(&festival); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch festival: %w", err)
	}
	return &festival, nil
}

func (r *MongoFestivalRepo) List(params query.ListParams) ([]models.Festival, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := params.CatalogFilter(time.Now().UTC())
	cursor, err := r.coll.Find(ctx, filter, params.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list festivals: %w", err)
	}
	defer cursor.Close(ctx)

	festivals := []models.Festival{}
	if err := cursor.All(ctx, &festivals); err != nil {
		return nil, 0, fmt.Errorf("failed to decode festivals: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count festivals: %w", err)
	}
	return festivals, total, nil
}

func (r *MongoFestivalRepo) Upcoming(limit int) ([]models.Festival, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"isActive":   true,
		"date.start": bson.M{"$gte": time.Now().UTC()},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date.start", Value: 1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find upcoming festivals: %w", err)
	}
	defer cursor.Close(ctx)

	festivals := []models.Festival{}
	if err := cursor.All(ctx, &festivals); err != nil {
		return nil, fmt.Errorf("failed to decode upcoming festivals: %w", err)
	}
	return festivals, nil
}

func (r *MongoFestivalRepo) Replace(festival *models.Festival) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	festival.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": festival.ID}, festival)
	if err != nil {
		return fmt.Errorf("failed to update festival %s: %w", festival.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoFestivalRepo) SoftDelete(id primitive.ObjectID) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to delete festival %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoFestivalRepo) UpdateRating(id primitive.ObjectID, rating models.Rating) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"rating.average": rating.Average,
		"rating.count":   rating.Count,
	}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to update festival rating %s: %w", id.Hex(), err)
	}
	return nil
}
