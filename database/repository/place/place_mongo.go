package placeRepo

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

// MongoPlaceRepo implements PlaceRepository using MongoDB.
type MongoPlaceRepo struct {
	coll *mongo.Collection
}

// NewMongoPlaceRepo creates a PlaceRepository backed by the "places"
// collection of the given database.
func NewMongoPlaceRepo(db *mongo.Database) PlaceRepository {
	r := &MongoPlaceRepo{coll: db.Collection("places")}
	if err := r.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return r
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoPlaceRepo) Create(place *models.Place) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now().UTC()
	place.CreatedAt = now
	place.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, place)
	if err != nil {
		return fmt.Errorf("failed to create place: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		place.ID = oid
	}
	return nil
}

func (r *MongoPlaceRepo) GetByID(id primitive.ObjectID) (*models.Place, error) {
	return r.findOne(bson.M{"_id": id, "isActive": true})
}

func (r *MongoPlaceRepo) GetByIDAny(id primitive.ObjectID) (*models.Place, error) {
	return r.findOne(bson.M{"_id": id})
}

func (r *MongoPlaceRepo) findOne(filter bson.M) (*models.Place, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var place models.Place
	if err := r.coll.FindOne(ctx, filter).Decode(&place); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch place: %w", err)
	}
	return &place, nil
}

func (r *MongoPlaceRepo) List(params query.ListParams) ([]models.Place, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := params.CatalogFilter(time.Now().UTC())
	cursor, err := r.coll.Find(ctx, filter, params.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list places: %w", err)
	}
	defer cursor.Close(ctx)

	places := []models.Place{}
	if err := cursor.All(ctx, &places); err != nil {
		return nil, 0, fmt.Errorf("failed to decode places: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count places: %w", err)
	}
	return places, total, nil
}

func (r *MongoPlaceRepo) Replace(place *models.Place) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	place.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": place.ID}, place)
	if err != nil {
		return fmt.Errorf("failed to update place %s: %w", place.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoPlaceRepo) SoftDelete(id primitive.ObjectID) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to delete place %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoPlaceRepo) Nearby(lat, lng, radiusKm float64, limit int) ([]models.Place, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"isActive": true,
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{lng, lat},
				},
				"$maxDistance": radiusKm * 1000,
			},
		},
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby places: %w", err)
	}
	defer cursor.Close(ctx)

	places := []models.Place{}
	if err := cursor.All(ctx, &places); err != nil {
		return nil, fmt.Errorf("failed to decode nearby places: %w", err)
	}
	return places, nil
}

func (r *MongoPlaceRepo) Summaries(ids []primitive.ObjectID) ([]models.PlaceSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"_id": bson.M{"$in": ids}, "isActive": true}
	projection := bson.M{"name": 1, "location": 1, "images": 1}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch place summaries: %w", err)
	}
	defer cursor.Close(ctx)

	summaries := []models.PlaceSummary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("failed to decode place summaries: %w", err)
	}
	return summaries, nil
}

func (r *MongoPlaceRepo) UpdateRating(id primitive.ObjectID, rating models.Rating) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"rating.average": rating.Average,
		"rating.count":   rating.Count,
	}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to update place rating %s: %w", id.Hex(), err)
	}
	return nil
}
