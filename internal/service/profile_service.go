package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"game-service/internal/apperr"
	"game-service/internal/models"
	"game-service/internal/progression"
	"game-service/internal/selection"

	"go.mongodb.org/mongo-driver/mongo"
)

// LeaderboardCache is an optional read-through cache for leaderboard
// responses. Implementations must fail open: a miss and an error look
// the same to the service.
type LeaderboardCache interface {
	Get(ctx context.Context, key string) ([]models.LeaderboardEntry, bool)
	Set(ctx context.Context, key string, entries []models.LeaderboardEntry)
}

const leaderboardLimit = 50

// ProfileService orchestrates every profile mutation: load the profile,
// run the progression engine over it, persist once. The per-user lock
// frames the whole sequence so concurrent submissions for one user
// cannot interleave.
type ProfileService struct {
	Profiles ProfileStore
	Quizzes  QuizStore
	engine   *progression.Manager
	selector *selection.Selector
	locks    *userLocks
	cache    LeaderboardCache
}

func NewProfileService(profiles ProfileStore, quizzes QuizStore, engine *progression.Manager, cache LeaderboardCache) *ProfileService {
	if engine == nil {
		engine = progression.NewManager(nil)
	}
	return &ProfileService{
		Profiles: profiles,
		Quizzes:  quizzes,
		engine:   engine,
		selector: selection.NewSelector(),
		locks:    newUserLocks(),
		cache:    cache,
	}
}

// GetOrCreateProfile returns the user's profile, creating a fresh
// level-1 profile on first contact. This is the only lazy-create path;
// submissions require an existing profile.
func (s *ProfileService) GetOrCreateProfile(ctx context.Context, userID, username string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperr.ErrInvalidArgument)
	}
	unlock := s.locks.acquire(userID)
	defer unlock()

	profile, err := s.Profiles.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storeErr(err, "profile")
	}

	if username == "" {
		username = userID
	}
	profile = models.NewUserProfile(userID, username)
	if err := s.Profiles.Create(ctx, profile); err != nil {
		return nil, storeErr(err, "profile")
	}
	return profile, nil
}

// SubmitQuiz grades a submission against the stored quiz and applies the
// full progression update: global XP and level, subject tracker and
// difficulty policy, achievements. All mutations land in one Save.
func (s *ProfileService) SubmitQuiz(ctx context.Context, userID string, req models.QuizSubmissionRequest) (*models.QuizSubmissionResponse, error) {
	if req.QuizID == "" || req.Answers == nil {
		return nil, fmt.Errorf("%w: quizId and answers are required", apperr.ErrInvalidArgument)
	}

	quiz, err := s.Quizzes.FindByID(ctx, req.QuizID)
	if err != nil {
		return nil, storeErr(err, "quiz")
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: quiz %q has no questions", apperr.ErrInvalidArgument, req.QuizID)
	}

	unlock := s.locks.acquire(userID)
	defer unlock()

	profile, err := s.Profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "profile")
	}

	correct, reviews := gradeQuiz(quiz, req.Answers)
	total := len(quiz.Questions)
	score := int(math.Round(float64(correct) / float64(total) * 100))

	s.engine.RecordQuizCompletion(profile, float64(score))

	earnedXP := s.engine.QuizXP(correct)
	newLevel, leveledUp, err := s.engine.AwardXP(profile, earnedXP)
	if err != nil {
		return nil, err
	}

	update, err := s.engine.UpdateSubjectProgress(profile, quiz.Type, float64(score), earnedXP)
	if err != nil {
		return nil, err
	}

	achievements := s.engine.EvaluateQuizAchievements(profile, float64(score), quiz.Title, quiz.Type)
	if achievements == nil {
		achievements = []models.Achievement{}
	}

	if err := s.Profiles.Save(ctx, profile); err != nil {
		return nil, storeErr(err, "profile")
	}

	return &models.QuizSubmissionResponse{
		Score:           score,
		Correct:         correct,
		Total:           total,
		EarnedXP:        earnedXP,
		SubjectXPGained: update.XPGained,
		NewLevel:        newLevel,
		LeveledUp:       leveledUp,
		Achievements:    achievements,
		Questions:       reviews,
		SubjectData: models.SubjectSummary{
			Subject:           quiz.Type,
			Attempts:          update.Progress.Attempts,
			AverageScore:      update.Progress.AverageScore,
			BestScore:         update.Progress.BestScore,
			TotalXP:           update.Progress.TotalXP,
			CurrentDifficulty: update.Progress.CurrentDifficulty,
		},
	}, nil
}

// gradeQuiz scores answers by exact equality against the stored correct
// option. Questions without a submitted answer count as incorrect.
func gradeQuiz(quiz *models.Quiz, answers []models.AnswerSubmission) (int, []models.QuestionReview) {
	byQuestion := make(map[string]string, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.Answer
	}

	correct := 0
	reviews := make([]models.QuestionReview, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answer, answered := byQuestion[q.ID]
		isCorrect := answered && answer == q.Answer
		if isCorrect {
			correct++
		}
		reviews = append(reviews, models.QuestionReview{
			ID:            q.ID,
			Question:      q.Question,
			Options:       q.Options,
			UserAnswer:    answer,
			CorrectAnswer: q.Answer,
			IsCorrect:     isCorrect,
		})
	}
	return correct, reviews
}

// SubmitSpeedType applies one finished speed-typing game.
func (s *ProfileService) SubmitSpeedType(ctx context.Context, userID string, req models.SpeedTypeSubmissionRequest) (*models.SpeedTypeSubmissionResponse, error) {
	if req.Difficulty == "" || req.WPM == nil || req.Accuracy == nil {
		return nil, fmt.Errorf("%w: difficulty, wpm and accuracy are required", apperr.ErrInvalidArgument)
	}

	unlock := s.locks.acquire(userID)
	defer unlock()

	profile, err := s.Profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "profile")
	}

	result := progression.SpeedTypeResult{
		Difficulty:   models.Difficulty(req.Difficulty),
		WPM:          *req.WPM,
		Accuracy:     *req.Accuracy,
		WordsCorrect: req.WordsCorrect,
		TotalWords:   req.TotalWords,
	}

	update, err := s.engine.UpdateSpeedTypeStats(profile, result)
	if err != nil {
		return nil, err
	}

	achievements := s.engine.EvaluateSpeedTypeAchievements(profile, result)
	if achievements == nil {
		achievements = []models.Achievement{}
	}

	if err := s.Profiles.Save(ctx, profile); err != nil {
		return nil, storeErr(err, "profile")
	}

	return &models.SpeedTypeSubmissionResponse{
		EarnedXP:     update.EarnedXP,
		NewLevel:     update.NewLevel,
		LeveledUp:    update.LeveledUp,
		Achievements: achievements,
		SpeedTypeStats: models.SpeedTypeSummary{
			TotalGames:      update.Stats.TotalGames,
			BestWPM:         update.Stats.BestWPM,
			AverageWPM:      update.Stats.AverageWPM,
			BestAccuracy:    update.Stats.BestAccuracy,
			AverageAccuracy: update.Stats.AverageAccuracy,
			TotalXPEarned:   update.Stats.TotalXPEarned,
		},
	}, nil
}

// GetQuizForUser serves a quiz with questions matched to the user's
// subject tier. Users without history in the subject fall back to a
// level-based tier.
func (s *ProfileService) GetQuizForUser(ctx context.Context, userID, quizID string) (*models.QuizView, error) {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, storeErr(err, "quiz")
	}
	profile, err := s.Profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "profile")
	}

	difficulty := models.DifficultyEasy
	if sp, ok := profile.SubjectScores[quiz.Type]; ok {
		difficulty = sp.CurrentDifficulty
	} else {
		switch {
		case profile.Level <= 3:
			difficulty = models.DifficultyEasy
		case profile.Level <= 7:
			difficulty = models.DifficultyMedium
		default:
			difficulty = models.DifficultyHard
		}
	}

	return &models.QuizView{
		ID:                quiz.ID,
		Title:             quiz.Title,
		Type:              quiz.Type,
		Questions:         s.selector.Pick(quiz.Questions, difficulty, 0),
		CurrentDifficulty: difficulty,
	}, nil
}

// SubjectStats returns the full tracker snapshot for one subject, or
// zeroed defaults when the subject was never attempted.
func (s *ProfileService) SubjectStats(ctx context.Context, userID, subject string) (*models.SubjectStatsResponse, error) {
	if subject == "" {
		return nil, fmt.Errorf("%w: subject name is required", apperr.ErrInvalidArgument)
	}
	profile, err := s.Profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "profile")
	}

	sp, ok := profile.SubjectScores[subject]
	if !ok {
		return &models.SubjectStatsResponse{
			Subject:           subject,
			CurrentDifficulty: models.DifficultyEasy,
			RecentScores:      []float64{},
			ScoreHistory:      []models.ScoreEntry{},
		}, nil
	}
	return &models.SubjectStatsResponse{
		Subject:           subject,
		Attempts:          sp.Attempts,
		AverageScore:      sp.AverageScore,
		BestScore:         sp.BestScore,
		TotalXP:           sp.TotalXP,
		CurrentDifficulty: sp.CurrentDifficulty,
		RecentScores:      sp.RecentScores,
		ScoreHistory:      sp.ScoreHistory,
	}, nil
}

// AllSubjectStats returns a per-subject summary sorted by subject name,
// with the last three scores of each.
func (s *ProfileService) AllSubjectStats(ctx context.Context, userID string) ([]models.SubjectOverview, error) {
	profile, err := s.Profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "profile")
	}

	overviews := make([]models.SubjectOverview, 0, len(profile.SubjectScores))
	for name, sp := range profile.SubjectScores {
		recent := sp.RecentScores
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		overviews = append(overviews, models.SubjectOverview{
			Subject:           name,
			Attempts:          sp.Attempts,
			AverageScore:      sp.AverageScore,
			BestScore:         sp.BestScore,
			TotalXP:           sp.TotalXP,
			CurrentDifficulty: sp.CurrentDifficulty,
			RecentScores:      recent,
		})
	}
	sort.Slice(overviews, func(i, j int) bool { return overviews[i].Subject < overviews[j].Subject })
	return overviews, nil
}

// SpeedTypeStats returns the aggregate snapshot, zeroed before the
// first game.
func (s *ProfileService) SpeedTypeStats(ctx context.Context, userID string) (*models.SpeedTypeStats, error) {
	profile, err := s.Profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "profile")
	}
	if profile.SpeedTypeStats == nil {
		return models.NewSpeedTypeStats(), nil
	}
	return profile.SpeedTypeStats, nil
}

// Leaderboard returns the top players by best WPM, overall or within
// one tier, capped at 50 entries and cached when a cache is wired.
func (s *ProfileService) Leaderboard(ctx context.Context, difficulty models.Difficulty) ([]models.LeaderboardEntry, error) {
	if difficulty != "" && !difficulty.ValidForSpeedType() {
		return nil, fmt.Errorf("%w: unknown leaderboard difficulty %q", apperr.ErrInvalidArgument, difficulty)
	}

	cacheKey := "overall"
	if difficulty != "" {
		cacheKey = string(difficulty)
	}
	if s.cache != nil {
		if entries, ok := s.cache.Get(ctx, cacheKey); ok {
			return entries, nil
		}
	}

	profiles, err := s.Profiles.TopBySpeed(ctx, difficulty, leaderboardLimit)
	if err != nil {
		return nil, storeErr(err, "leaderboard")
	}

	entries := make([]models.LeaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		st := p.SpeedTypeStats
		if st == nil || (st.BestWPM <= 0 && st.TotalGames == 0) {
			continue
		}
		bestWPM := st.BestWPM
		totalGames := st.TotalGames
		if difficulty != "" {
			if bucket, ok := st.Difficulties[difficulty]; ok {
				bestWPM = bucket.BestWPM
				totalGames = bucket.Games
			} else {
				bestWPM = 0
				totalGames = 0
			}
		}
		entries = append(entries, models.LeaderboardEntry{
			Rank:            len(entries) + 1,
			Username:        p.Username,
			Level:           p.Level,
			BestWPM:         bestWPM,
			AverageAccuracy: st.AverageAccuracy,
			TotalGames:      totalGames,
		})
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, entries)
	}
	return entries, nil
}
