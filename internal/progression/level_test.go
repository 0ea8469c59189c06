package progression

import (
	"errors"
	"testing"

	"game-service/internal/apperr"
	"game-service/internal/models"
)

func TestLevelCurve(t *testing.T) {
	testCases := []struct {
		name     string
		totalXP  int
		expected int
	}{
		{"zero xp", 0, 1},
		{"just below first threshold", 49, 1},
		{"first level up", 50, 2},
		{"eighty xp", 80, 2},
		{"second level", 130, 3},
		{"one thousand xp", 1000, 6},
		{"negative clamped to zero", -10, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Level(tc.totalXP); got != tc.expected {
				t.Errorf("Level(%d) = %d, expected %d", tc.totalXP, got, tc.expected)
			}
		})
	}
}

func TestLevelMonotonicity(t *testing.T) {
	previous := Level(0)
	if previous != 1 {
		t.Fatalf("Level(0) = %d, expected 1", previous)
	}
	for xp := 1; xp <= 50000; xp += 7 {
		level := Level(xp)
		if level < previous {
			t.Fatalf("Level decreased from %d to %d at xp=%d", previous, level, xp)
		}
		previous = level
	}
}

func TestAwardXPRecomputesLevel(t *testing.T) {
	m := NewManager(nil)
	profile := models.NewUserProfile("u1", "alice")

	newLevel, leveledUp, err := m.AwardXP(profile, 80)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if profile.XP != 80 {
		t.Errorf("Expected XP 80, got %d", profile.XP)
	}
	if profile.Stats.TotalXP != 80 {
		t.Errorf("Expected stats total XP 80, got %d", profile.Stats.TotalXP)
	}
	if newLevel != Level(80) {
		t.Errorf("Expected level %d, got %d", Level(80), newLevel)
	}
	if !leveledUp {
		t.Error("Expected level up from 1")
	}

	// Level must always equal the formula applied to the XP total.
	for i := 0; i < 20; i++ {
		if _, _, err := m.AwardXP(profile, 37); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if profile.Level != Level(profile.XP) {
			t.Fatalf("Level drifted: stored %d, formula %d at xp=%d", profile.Level, Level(profile.XP), profile.XP)
		}
	}
}

func TestAwardXPRejectsNegative(t *testing.T) {
	m := NewManager(nil)
	profile := models.NewUserProfile("u1", "alice")

	_, _, err := m.AwardXP(profile, -5)
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("Expected ErrInvalidArgument, got %v", err)
	}
	if profile.XP != 0 || profile.Level != 1 {
		t.Errorf("Profile mutated on rejected award: xp=%d level=%d", profile.XP, profile.Level)
	}
}
