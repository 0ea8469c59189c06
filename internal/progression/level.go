package progression

import (
	"fmt"
	"math"

	"game-service/internal/apperr"
	"game-service/internal/models"
)

// Level maps cumulative XP to a level on a logarithmic curve: each
// successive level costs proportionally more XP. Level(0) == 1 and the
// function is monotonically non-decreasing. Negative input is clamped
// to zero; callers validate before awarding.
func Level(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return int(math.Floor(math.Log(float64(totalXP)/100+1)/math.Log(1.5))) + 1
}

// AwardXP adds earned XP to the profile's global total and recomputes
// the level. The level field is never written by any other path.
func (m *Manager) AwardXP(profile *models.UserProfile, earned int) (newLevel int, leveledUp bool, err error) {
	if earned < 0 {
		return 0, false, fmt.Errorf("%w: earned XP must be non-negative, got %d", apperr.ErrInvalidArgument, earned)
	}
	previous := profile.Level
	profile.XP += earned
	profile.Stats.TotalXP += earned
	profile.Level = Level(profile.XP)
	return profile.Level, profile.Level > previous, nil
}

// QuizXP is the flat global reward for a graded quiz: a fixed amount
// per correct answer, independent of difficulty or score percentage.
// The score-weighted subject bonus is computed separately.
func (m *Manager) QuizXP(correct int) int {
	if correct < 0 {
		return 0
	}
	return correct * m.config.XPPerCorrect
}

// RecordQuizCompletion maintains the global quiz counters: completed
// count and the all-time running mean score across every subject.
func (m *Manager) RecordQuizCompletion(profile *models.UserProfile, score float64) {
	profile.Stats.QuizzesCompleted++
	n := float64(profile.Stats.QuizzesCompleted)
	profile.Stats.AverageScore = (profile.Stats.AverageScore*(n-1) + score) / n
}
