package progression

import (
	"fmt"
	"math"
	"time"

	"game-service/internal/apperr"
	"game-service/internal/models"
)

// UpdateSubjectProgress records one quiz score against a subject tracker:
// attempt count, high-water best score, bounded recent-score window,
// all-time running mean, score-weighted subject XP and the bounded
// history log, then evaluates the difficulty policy. The tracker is
// created on the first attempt in a subject.
func (m *Manager) UpdateSubjectProgress(profile *models.UserProfile, subject string, score float64, baseXP int) (*SubjectUpdate, error) {
	if subject == "" {
		return nil, fmt.Errorf("%w: subject name is required", apperr.ErrInvalidArgument)
	}
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("%w: score %.2f out of range [0,100]", apperr.ErrInvalidArgument, score)
	}
	if baseXP < 0 {
		return nil, fmt.Errorf("%w: base XP must be non-negative, got %d", apperr.ErrInvalidArgument, baseXP)
	}

	sp := profile.Subject(subject)
	sp.Attempts++

	if score > sp.BestScore {
		sp.BestScore = score
	}

	sp.RecentScores = append(sp.RecentScores, score)
	if len(sp.RecentScores) > m.config.RecentWindow {
		sp.RecentScores = sp.RecentScores[len(sp.RecentScores)-m.config.RecentWindow:]
	}

	// Running mean over the all-time attempt count, not the window.
	sp.AverageScore = (sp.AverageScore*float64(sp.Attempts-1) + score) / float64(sp.Attempts)

	// A 100% score earns a 50% bonus on top of the base reward, scaled
	// linearly down to no bonus at 0%.
	xpGained := int(math.Round(float64(baseXP) * (1 + (score/100)*m.config.SubjectBonusFactor)))
	sp.TotalXP += xpGained

	sp.ScoreHistory = append(sp.ScoreHistory, models.ScoreEntry{
		Score:      score,
		XPGained:   xpGained,
		Difficulty: sp.CurrentDifficulty,
		Date:       time.Now(),
	})
	if len(sp.ScoreHistory) > m.config.HistoryLimit {
		sp.ScoreHistory = sp.ScoreHistory[len(sp.ScoreHistory)-m.config.HistoryLimit:]
	}

	old := sp.CurrentDifficulty
	sp.CurrentDifficulty = m.nextDifficulty(sp.CurrentDifficulty, m.trendAverage(sp.RecentScores), sp.TotalXP)

	return &SubjectUpdate{
		Progress:      sp,
		XPGained:      xpGained,
		OldDifficulty: old,
		NewDifficulty: sp.CurrentDifficulty,
		TierChanged:   old != sp.CurrentDifficulty,
	}, nil
}

// trendAverage is the mean of the most recent TrendWindow scores,
// or of everything if the history is still shorter than the window.
func (m *Manager) trendAverage(recent []float64) float64 {
	if len(recent) == 0 {
		return 0
	}
	window := recent
	if len(window) > m.config.TrendWindow {
		window = window[len(window)-m.config.TrendWindow:]
	}
	sum := 0.0
	for _, s := range window {
		sum += s
	}
	return sum / float64(len(window))
}

// nextDifficulty applies at most one transition per update, upgrade
// checked first. Promotion requires both the trend average and the
// subject XP floor; demotion looks at the trend average alone.
func (m *Manager) nextDifficulty(current models.Difficulty, avg float64, totalXP int) models.Difficulty {
	rule, ok := m.config.TierRules[current]
	if !ok {
		return current
	}
	if rule.HasUpgrade && avg >= rule.UpgradeAvg && totalXP >= rule.UpgradeXP {
		return rule.NextTier
	}
	if rule.HasDowngrade && avg < rule.DowngradeAvg {
		return rule.PreviousTier
	}
	return current
}
