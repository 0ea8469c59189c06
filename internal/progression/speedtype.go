package progression

import (
	"fmt"
	"math"
	"time"

	"game-service/internal/apperr"
	"game-service/internal/models"
)

// UpdateSpeedTypeStats applies one finished speed-typing game: XP from
// WPM with an accuracy bonus and a tier multiplier, global level
// recompute, overall and per-tier aggregates, and the bounded game
// history. Averages are kept rounded, matching the stored display values.
func (m *Manager) UpdateSpeedTypeStats(profile *models.UserProfile, result SpeedTypeResult) (*SpeedTypeUpdate, error) {
	if !result.Difficulty.ValidForSpeedType() {
		return nil, fmt.Errorf("%w: unknown speed-typing difficulty %q", apperr.ErrInvalidArgument, result.Difficulty)
	}
	if result.WPM < 0 {
		return nil, fmt.Errorf("%w: wpm must be non-negative, got %.2f", apperr.ErrInvalidArgument, result.WPM)
	}
	if result.Accuracy < 0 || result.Accuracy > 100 {
		return nil, fmt.Errorf("%w: accuracy %.2f out of range [0,100]", apperr.ErrInvalidArgument, result.Accuracy)
	}

	baseXP := int(math.Round(result.WPM * 5))
	accuracyBonus := int(math.Round(float64(baseXP) * (result.Accuracy / 100) * 0.5))
	multiplier := m.config.SpeedTypeMultipliers[result.Difficulty]
	earnedXP := int(math.Round(float64(baseXP+accuracyBonus) * multiplier))

	newLevel, leveledUp, err := m.AwardXP(profile, earnedXP)
	if err != nil {
		return nil, err
	}

	st := profile.SpeedType()
	st.TotalGames++
	st.TotalXPEarned += earnedXP

	st.AverageWPM = math.Round((st.AverageWPM*float64(st.TotalGames-1) + result.WPM) / float64(st.TotalGames))
	st.AverageAccuracy = math.Round((st.AverageAccuracy*float64(st.TotalGames-1) + result.Accuracy) / float64(st.TotalGames))

	if result.WPM > st.BestWPM {
		st.BestWPM = result.WPM
	}
	if result.Accuracy > st.BestAccuracy {
		st.BestAccuracy = result.Accuracy
	}

	bucket, ok := st.Difficulties[result.Difficulty]
	if !ok {
		bucket = &models.DifficultyStats{}
		st.Difficulties[result.Difficulty] = bucket
	}
	bucket.Games++
	if result.WPM > bucket.BestWPM {
		bucket.BestWPM = result.WPM
	}
	bucket.AverageWPM = math.Round((bucket.AverageWPM*float64(bucket.Games-1) + result.WPM) / float64(bucket.Games))

	st.GameHistory = append(st.GameHistory, models.GameRecord{
		Difficulty:   result.Difficulty,
		WPM:          result.WPM,
		Accuracy:     result.Accuracy,
		WordsCorrect: result.WordsCorrect,
		TotalWords:   result.TotalWords,
		EarnedXP:     earnedXP,
		Date:         time.Now(),
	})
	if len(st.GameHistory) > m.config.HistoryLimit {
		st.GameHistory = st.GameHistory[len(st.GameHistory)-m.config.HistoryLimit:]
	}

	return &SpeedTypeUpdate{
		Stats:     st,
		EarnedXP:  earnedXP,
		NewLevel:  newLevel,
		LeveledUp: leveledUp,
	}, nil
}
