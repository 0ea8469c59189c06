package service

import (
	"context"
	"fmt"
	"time"

	"game-service/internal/apperr"
	"game-service/internal/models"
)

// QuizService manages quiz definitions. Grading and progression live in
// ProfileService, which consumes quizzes through the QuizStore.
type QuizService struct {
	Repo QuizStore
}

func NewQuizService(repo QuizStore) *QuizService {
	return &QuizService{Repo: repo}
}

func (s *QuizService) GetAllQuizzes(ctx context.Context) ([]models.Quiz, error) {
	quizzes, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, storeErr(err, "quizzes")
	}
	return quizzes, nil
}

func (s *QuizService) CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	if quiz.Title == "" || quiz.Type == "" || len(quiz.Questions) == 0 {
		return fmt.Errorf("%w: title, type and questions are required", apperr.ErrInvalidArgument)
	}
	for i, q := range quiz.Questions {
		if q.Question == "" || q.Answer == "" {
			return fmt.Errorf("%w: question %d is missing text or answer", apperr.ErrInvalidArgument, i)
		}
	}
	quiz.Status = "active"
	quiz.CreatedAt = time.Now()
	quiz.UpdatedAt = quiz.CreatedAt
	if err := s.Repo.Create(ctx, quiz); err != nil {
		return storeErr(err, "quiz")
	}
	return nil
}

// DeleteQuiz soft-deletes so existing submissions keep resolving.
func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: quiz id is required", apperr.ErrInvalidArgument)
	}
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return storeErr(err, "quiz")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return storeErr(err, "quiz")
	}
	return nil
}
