package progression

import (
	"errors"
	"math"
	"testing"

	"game-service/internal/apperr"
	"game-service/internal/models"
)

func TestSubjectTrackerLazyCreation(t *testing.T) {
	m := NewManager(nil)
	profile := models.NewUserProfile("u1", "alice")

	update, err := m.UpdateSubjectProgress(profile, "math", 70, 50)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	sp := profile.SubjectScores["math"]
	if sp == nil {
		t.Fatal("Expected math tracker to be created")
	}
	if sp.Attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", sp.Attempts)
	}
	if update.OldDifficulty != models.DifficultyEasy {
		t.Errorf("Expected initial difficulty easy, got %s", update.OldDifficulty)
	}
	if sp.BestScore != 70 {
		t.Errorf("Expected best score 70, got %.1f", sp.BestScore)
	}
}

func TestSubjectRunningMeanUsesAllAttempts(t *testing.T) {
	m := NewManager(nil)
	profile := models.NewUserProfile("u1", "alice")

	// More scores than the 10-entry window holds; the mean must still
	// cover every attempt.
	scores := []float64{50, 60, 70, 80, 90, 100, 40, 30, 20, 10, 55, 65, 75}
	sum := 0.0
	for _, s := range scores {
		if _, err := m.UpdateSubjectProgress(profile, "math", s, 10); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		sum += s
	}

	expected := sum / float64(len(scores))
	sp := profile.SubjectScores["math"]
	if math.Abs(sp.AverageScore-expected) > 1e-9 {
		t.Errorf("Expected average %.6f, got %.6f", expected, sp.AverageScore)
	}
	if sp.Attempts != len(scores) {
		t.Errorf("Expected %d attempts, got %d", len(scores), sp.Attempts)
	}
}

func TestRecentScoresWindow(t *testing.T) {
	m := NewManager(nil)
	profile := models.NewUserProfile("u1", "alice")

	for i := 1; i <= 15; i++ {
		if _, err := m.UpdateSubjectProgress(profile, "math", float64(i), 10); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	sp := profile.SubjectScores["math"]
	if len(sp.RecentScores) != 10 {
		t.Fatalf("Expected window of 10, got %d", len(sp.RecentScores))
	}
	// Oldest evicted first; the last 10 inserted remain in order.
	for i, score := range sp.RecentScores {
		expected := float64(i + 6)
		if score != expected {
			t.Errorf("Window index %d: expected %.0f, got %.0f", i, expected, score)
		}
	}
}

func TestRecentScoresEvictsOldestAtCapacity(t *testing.T) {
	m := NewManager(nil)
	profile := models.NewUserProfile("u1", "alice")

	for i := 1; i <= 10; i++ {
		if _, err := m.UpdateSubjectProgress(profile, "math", float64(i), 10); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	sp := profile.SubjectScores["math"]
	if sp.RecentScores[0] != 1 {
		t.Fatalf("Expected oldest score 1 at index 0, got %.0f", sp.RecentScores[0])
	}

	if _, err := m.UpdateSubjectProgress(profile, "math", 99, 10); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(sp.RecentScores) != 10 {
		t.Errorf("Expected window to stay at 10, got %d", len(sp.RecentScores))
	}
	if sp.RecentScores[0] != 2 {
		t.Errorf("Expected oldest entry evicted, window now starts at %.0f", sp.RecentScores[0])
	}
	if sp.RecentScores[9] != 99 {
		t.Errorf("Expected newest score appended at the end, got %.0f", sp.RecentScores[9])
	}
}

func TestScoreHistoryBounded(t *testing.T) {
	m := NewManager(nil)
	profile := models.NewUserProfile("u1", "alice")

	for i := 1; i <= 60; i++ {
		if _, err := m.UpdateSubjectProgress(profile, "math", float64(i%100), 10); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	sp := profile.SubjectScores["math"]
	if len(sp.ScoreHistory) != 50 {
		t.Fatalf("Expected history capped at 50, got %d", len(sp.ScoreHistory))
	}
	// Entries 11..60 survive.
	if sp.ScoreHistory[0].Score != 11 {
		t.Errorf("Expected oldest surviving entry 11, got %.0f", sp.ScoreHistory[0].Score)
	}
	if sp.ScoreHistory[49].Score != 60 {
		t.Errorf("Expected newest entry 60, got %.0f", sp.ScoreHistory[49].Score)
	}
}

func TestSubjectXPBonus(t *testing.T) {
	testCases := []struct {
		name     string
		score    float64
		baseXP   int
		expected int
	}{
		{"zero score earns base only", 0, 80, 80},
		{"full score earns half again", 100, 80, 120},
		{"eighty percent", 80, 80, 112},
		{"odd rounding", 33, 10, 12}, // 10 * 1.165 = 11.65
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewManager(nil)
			profile := models.NewUserProfile("u1", "alice")
			update, err := m.UpdateSubjectProgress(profile, "math", tc.score, tc.baseXP)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if update.XPGained != tc.expected {
				t.Errorf("Expected %d subject XP, got %d", tc.expected, update.XPGained)
			}
			if profile.SubjectScores["math"].TotalXP != tc.expected {
				t.Errorf("Expected tracker XP %d, got %d", tc.expected, profile.SubjectScores["math"].TotalXP)
			}
		})
	}
}

func TestHistoryRecordsPreTransitionDifficulty(t *testing.T) {
	m := NewManager(nil)
	profile := models.NewUserProfile("u1", "alice")
	sp := profile.Subject("math")
	sp.TotalXP = 600
	sp.RecentScores = []float64{90, 90, 90, 90}

	update, err := m.UpdateSubjectProgress(profile, "math", 90, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !update.TierChanged {
		t.Fatal("Expected a tier change")
	}
	last := sp.ScoreHistory[len(sp.ScoreHistory)-1]
	if last.Difficulty != models.DifficultyEasy {
		t.Errorf("History entry should carry the pre-transition tier, got %s", last.Difficulty)
	}
}

func TestDifficultyTransitions(t *testing.T) {
	m := NewManager(nil)

	testCases := []struct {
		name     string
		current  models.Difficulty
		avg      float64
		totalXP  int
		expected models.Difficulty
	}{
		{"easy upgrades on avg and xp", models.DifficultyEasy, 68, 560, models.DifficultyMedium},
		{"easy blocked by xp floor", models.DifficultyEasy, 95, 499, models.DifficultyEasy},
		{"easy blocked by avg", models.DifficultyEasy, 59.9, 2000, models.DifficultyEasy},
		{"easy has no downgrade", models.DifficultyEasy, 0, 0, models.DifficultyEasy},
		{"medium upgrades", models.DifficultyMedium, 80, 1000, models.DifficultyHard},
		{"medium holds in dead zone", models.DifficultyMedium, 65, 5000, models.DifficultyMedium},
		{"medium downgrades below fifty", models.DifficultyMedium, 49.9, 5000, models.DifficultyEasy},
		{"hard upgrades", models.DifficultyHard, 90, 1500, models.DifficultyDifficult},
		{"hard holds in dead zone", models.DifficultyHard, 70, 9000, models.DifficultyHard},
		{"hard downgrades below sixty-five", models.DifficultyHard, 64, 9000, models.DifficultyMedium},
		{"difficult is the ceiling", models.DifficultyDifficult, 100, 100000, models.DifficultyDifficult},
		{"difficult downgrades below eighty", models.DifficultyDifficult, 79, 100000, models.DifficultyHard},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.nextDifficulty(tc.current, tc.avg, tc.totalXP); got != tc.expected {
				t.Errorf("nextDifficulty(%s, %.1f, %d) = %s, expected %s",
					tc.current, tc.avg, tc.totalXP, got, tc.expected)
			}
		})
	}
}

func TestDifficultyNeverSkipsTiers(t *testing.T) {
	m := NewManager(nil)
	profile := models.NewUserProfile("u1", "alice")
	sp := profile.Subject("math")
	sp.TotalXP = 100000
	sp.RecentScores = []float64{100, 100, 100, 100}

	update, err := m.UpdateSubjectProgress(profile, "math", 100, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// Even with stats far beyond every bar, one update moves one step.
	if update.NewDifficulty != models.DifficultyMedium {
		t.Errorf("Expected single step easy→medium, got %s", update.NewDifficulty)
	}
}

func TestDifficultyStableOnMediocreScores(t *testing.T) {
	m := NewManager(nil)
	profile := models.NewUserProfile("u1", "alice")

	// Constant 55% stays below the 60% promotion bar forever, no matter
	// how much subject XP accumulates.
	for i := 0; i < 40; i++ {
		update, err := m.UpdateSubjectProgress(profile, "math", 55, 100)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if update.NewDifficulty != models.DifficultyEasy {
			t.Fatalf("Tier left easy on attempt %d: %s", i+1, update.NewDifficulty)
		}
	}
	if profile.SubjectScores["math"].TotalXP < 500 {
		t.Fatal("Test should accumulate past the XP floor to prove the score bar holds")
	}
}

func TestDifficultyUpgradeScenario(t *testing.T) {
	m := NewManager(nil)
	profile := models.NewUserProfile("u1", "alice")
	sp := profile.Subject("math")
	sp.Attempts = 4
	sp.AverageScore = 66.25
	sp.BestScore = 70
	sp.TotalXP = 450
	sp.RecentScores = []float64{65, 70, 62, 68}

	// Gains 110 XP (round(80*1.375)), reaching 560; the last-5 average
	// (65,70,62,68,75) is 68, so both promotion conditions hold.
	update, err := m.UpdateSubjectProgress(profile, "math", 75, 80)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if update.XPGained != 110 {
		t.Errorf("Expected 110 subject XP, got %d", update.XPGained)
	}
	if sp.TotalXP != 560 {
		t.Errorf("Expected 560 subject XP total, got %d", sp.TotalXP)
	}
	if !update.TierChanged || update.NewDifficulty != models.DifficultyMedium {
		t.Errorf("Expected upgrade to medium, got %s (changed=%v)", update.NewDifficulty, update.TierChanged)
	}
}

func TestUpdateSubjectProgressValidation(t *testing.T) {
	m := NewManager(nil)

	testCases := []struct {
		name    string
		subject string
		score   float64
		baseXP  int
	}{
		{"empty subject", "", 50, 10},
		{"negative score", "math", -1, 10},
		{"score above hundred", "math", 100.5, 10},
		{"negative base xp", "math", 50, -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			profile := models.NewUserProfile("u1", "alice")
			_, err := m.UpdateSubjectProgress(profile, tc.subject, tc.score, tc.baseXP)
			if !errors.Is(err, apperr.ErrInvalidArgument) {
				t.Fatalf("Expected ErrInvalidArgument, got %v", err)
			}
			if len(profile.SubjectScores) != 0 {
				t.Error("Tracker must not be created on rejected input")
			}
		})
	}
}
