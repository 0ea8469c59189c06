package service

import (
	"context"
	"errors"
	"fmt"

	"game-service/internal/apperr"
	"game-service/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ProfileStore is the narrow persistence surface the progression engine
// needs: load a profile, write it back whole.
type ProfileStore interface {
	FindByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
	Create(ctx context.Context, profile *models.UserProfile) error
	Save(ctx context.Context, profile *models.UserProfile) error
	TopBySpeed(ctx context.Context, difficulty models.Difficulty, limit int) ([]models.UserProfile, error)
}

// QuizStore supplies quiz definitions, including the stored correct answers.
type QuizStore interface {
	FindAll(ctx context.Context) ([]models.Quiz, error)
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id string) error
}

// storeErr translates driver errors into the service taxonomy.
func storeErr(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %s", apperr.ErrNotFound, what)
	}
	return fmt.Errorf("%w: %s: %v", apperr.ErrStoreUnavailable, what, err)
}
