package progression

import (
	"fmt"
	"strings"
	"time"

	"game-service/internal/models"
)

// Achievement titles. Each is granted at most once per profile,
// keyed by title regardless of description.
const (
	TitlePerfectScore    = "Perfect Score"
	TitleSpeedDemon      = "Speed Demon"
	TitlePerfectAccuracy = "Perfect Accuracy"
	TitleSpeedster       = "Speedster"
	TitleHardModeMaster  = "Hard Mode Master"
)

// grant appends a badge unless one with the same title exists.
// Returns the record and whether it was newly granted.
func grant(profile *models.UserProfile, title, description string) (models.Achievement, bool) {
	if profile.HasAchievement(title) {
		return models.Achievement{}, false
	}
	a := models.Achievement{Title: title, Description: description, Date: time.Now()}
	profile.Achievements = append(profile.Achievements, a)
	return a, true
}

// EvaluateQuizAchievements runs the quiz badge rules against the
// post-update profile state and returns any newly granted badges.
func (m *Manager) EvaluateQuizAchievements(profile *models.UserProfile, score float64, quizTitle, subject string) []models.Achievement {
	var granted []models.Achievement

	if score == 100 {
		if a, ok := grant(profile, TitlePerfectScore, fmt.Sprintf("Scored 100%% on %s quiz", quizTitle)); ok {
			granted = append(granted, a)
		}
	}

	if sp, ok := profile.SubjectScores[subject]; ok && sp.Attempts >= 10 && sp.AverageScore > 90 {
		title := fmt.Sprintf("%s Mastery", capitalize(subject))
		desc := fmt.Sprintf("Achieved 90%%+ average score in %s over 10+ quizzes", subject)
		if a, ok := grant(profile, title, desc); ok {
			granted = append(granted, a)
		}
	}

	return granted
}

// EvaluateSpeedTypeAchievements runs the speed-typing badge rules.
// Speedster fires on exactly the 10th game; the title dedup makes the
// exact-equality check equivalent to a threshold for any single profile.
func (m *Manager) EvaluateSpeedTypeAchievements(profile *models.UserProfile, result SpeedTypeResult) []models.Achievement {
	var granted []models.Achievement

	if result.WPM >= 100 {
		if a, ok := grant(profile, TitleSpeedDemon, "Achieved 100+ WPM in speed typing"); ok {
			granted = append(granted, a)
		}
	}

	if result.Accuracy == 100 {
		if a, ok := grant(profile, TitlePerfectAccuracy, "Achieved 100% accuracy in speed typing"); ok {
			granted = append(granted, a)
		}
	}

	if st := profile.SpeedTypeStats; st != nil && st.TotalGames == 10 {
		if a, ok := grant(profile, TitleSpeedster, "Completed 10 speed typing games"); ok {
			granted = append(granted, a)
		}
	}

	if result.Difficulty == models.DifficultyHard && result.WPM >= 50 {
		if a, ok := grant(profile, TitleHardModeMaster, "Achieved 50+ WPM on hard difficulty"); ok {
			granted = append(granted, a)
		}
	}

	return granted
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
