package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitewise/meal-tracker/internal/core/domain"
)

const collectionMealLogs = "meal_logs"

// MealLogRepository is the primary owned-record store.
type MealLogRepository struct {
	col *mongo.Collection
}

func NewMealLogRepository(db *mongo.Database) *MealLogRepository {
	return &MealLogRepository{col: db.Collection(collectionMealLogs)}
}

// ReassignOwner rewrites the owner of every meal log currently owned by
// fromUserID. A repeated call matches zero documents and is a no-op.
func (r *MealLogRepository) ReassignOwner(ctx context.Context, fromUserID, toUserID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateMany(ctx,
		bson.M{"user_id": fromUserID},
		bson.M{"$set": bson.M{"user_id": toUserID}},
	)
	return err
}

// CountByOwner returns the number of meal logs owned by userID.
func (r *MealLogRepository) CountByOwner(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"user_id": userID})
}

// LatestActivity returns the creation time of the most recent meal log owned
// by userID. ok is false when no meal log exists.
func (r *MealLogRepository) LatestActivity(ctx context.Context, userID string) (time.Time, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"created_at": 1})

	var doc struct {
		CreatedAt time.Time `bson:"created_at"`
	}
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return doc.CreatedAt, true, nil
}

// FindByOwner returns up to limit meal logs owned by userID, newest first.
func (r *MealLogRepository) FindByOwner(ctx context.Context, userID string, limit int64) ([]domain.MealLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	logs := make([]domain.MealLog, 0)
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// EnsureIndexes creates necessary indexes on the meal_logs collection.
func (r *MealLogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
