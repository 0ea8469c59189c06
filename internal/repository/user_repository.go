package repository

import (
	"context"
	"fmt"
	"time"

	"game-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Col: db.Collection("profiles")}
}

func (r *UserRepository) FindByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	if profile.ID == "" {
		profile.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, profile)
	return err
}

// Save persists the whole profile document in one write. Submissions
// mutate a loaded copy and call Save exactly once, so readers never see
// a partially applied update.
func (r *UserRepository) Save(ctx context.Context, profile *models.UserProfile) error {
	profile.UpdatedAt = time.Now()
	res, err := r.Col.ReplaceOne(ctx, bson.M{"user_id": profile.UserID}, profile)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// TopBySpeed returns up to limit profiles ordered by best WPM, overall
// or within one difficulty tier.
func (r *UserRepository) TopBySpeed(ctx context.Context, difficulty models.Difficulty, limit int) ([]models.UserProfile, error) {
	sortField := "speed_type_stats.best_wpm"
	if difficulty != "" {
		sortField = fmt.Sprintf("speed_type_stats.difficulties.%s.best_wpm", difficulty)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.Col.Find(ctx, bson.M{"speed_type_stats.total_games": bson.M{"$gt": 0}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var profiles []models.UserProfile
	for cur.Next(ctx) {
		var p models.UserProfile
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
