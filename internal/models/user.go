package models

import "time"

type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyHard      Difficulty = "hard"
	DifficultyDifficult Difficulty = "difficult"
)

// SpeedTypeDifficulties are the tiers accepted by the speed-typing game.
// The quiz difficulty ladder additionally reaches "difficult".
var SpeedTypeDifficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) ValidForSpeedType() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Achievement is a one-time badge. Title is the dedup key within a profile.
type Achievement struct {
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Date        time.Time `bson:"date" json:"date"`
}

// UserStats holds global quiz counters, independent of any subject.
type UserStats struct {
	QuizzesCompleted int     `bson:"quizzes_completed" json:"quizzesCompleted"`
	AverageScore     float64 `bson:"average_score" json:"averageScore"`
	TotalXP          int     `bson:"total_xp" json:"totalXP"`
}

// ScoreEntry is one row of a subject's bounded score history.
type ScoreEntry struct {
	Score      float64    `bson:"score" json:"score"`
	XPGained   int        `bson:"xp_gained" json:"xpGained"`
	Difficulty Difficulty `bson:"difficulty" json:"difficulty"`
	Date       time.Time  `bson:"date" json:"date"`
}

// SubjectProgress tracks one user's performance in one quiz subject.
// RecentScores keeps the last 10 scores, ScoreHistory the last 50 attempts.
type SubjectProgress struct {
	Subject           string       `bson:"subject" json:"subject"`
	Attempts          int          `bson:"attempts" json:"attempts"`
	AverageScore      float64      `bson:"average_score" json:"averageScore"`
	BestScore         float64      `bson:"best_score" json:"bestScore"`
	TotalXP           int          `bson:"total_xp" json:"totalXP"`
	RecentScores      []float64    `bson:"recent_scores" json:"recentScores"`
	CurrentDifficulty Difficulty   `bson:"current_difficulty" json:"currentDifficulty"`
	ScoreHistory      []ScoreEntry `bson:"score_history" json:"scoreHistory"`
}

// DifficultyStats aggregates speed-typing games within one tier.
type DifficultyStats struct {
	Games      int     `bson:"games" json:"games"`
	BestWPM    float64 `bson:"best_wpm" json:"bestWPM"`
	AverageWPM float64 `bson:"average_wpm" json:"averageWPM"`
}

// GameRecord is one row of the bounded speed-typing history.
type GameRecord struct {
	Difficulty   Difficulty `bson:"difficulty" json:"difficulty"`
	WPM          float64    `bson:"wpm" json:"wpm"`
	Accuracy     float64    `bson:"accuracy" json:"accuracy"`
	WordsCorrect int        `bson:"words_correct" json:"wordsCorrect"`
	TotalWords   int        `bson:"total_words" json:"totalWords"`
	EarnedXP     int        `bson:"earned_xp" json:"earnedXP"`
	Date         time.Time  `bson:"date" json:"date"`
}

// SpeedTypeStats is the per-user speed-typing aggregate.
type SpeedTypeStats struct {
	TotalGames      int                             `bson:"total_games" json:"totalGames"`
	BestWPM         float64                         `bson:"best_wpm" json:"bestWPM"`
	AverageWPM      float64                         `bson:"average_wpm" json:"averageWPM"`
	BestAccuracy    float64                         `bson:"best_accuracy" json:"bestAccuracy"`
	AverageAccuracy float64                         `bson:"average_accuracy" json:"averageAccuracy"`
	TotalXPEarned   int                             `bson:"total_xp_earned" json:"totalXPEarned"`
	GameHistory     []GameRecord                    `bson:"game_history" json:"gameHistory"`
	Difficulties    map[Difficulty]*DifficultyStats `bson:"difficulties" json:"difficulties"`
}

// NewSpeedTypeStats returns a zeroed aggregate with all tier buckets present.
func NewSpeedTypeStats() *SpeedTypeStats {
	return &SpeedTypeStats{
		GameHistory: []GameRecord{},
		Difficulties: map[Difficulty]*DifficultyStats{
			DifficultyEasy:   {},
			DifficultyMedium: {},
			DifficultyHard:   {},
		},
	}
}

// UserProfile is the per-user progression document. All engine updates
// mutate a loaded copy and persist it in a single write.
type UserProfile struct {
	ID             string                      `bson:"_id,omitempty" json:"id"`
	UserID         string                      `bson:"user_id" json:"userId"`
	Username       string                      `bson:"username" json:"username"`
	XP             int                         `bson:"xp" json:"xp"`
	Level          int                         `bson:"level" json:"level"`
	Achievements   []Achievement               `bson:"achievements" json:"achievements"`
	Stats          UserStats                   `bson:"stats" json:"stats"`
	SubjectScores  map[string]*SubjectProgress `bson:"subject_scores" json:"subjectScores"`
	SpeedTypeStats *SpeedTypeStats             `bson:"speed_type_stats,omitempty" json:"speedTypeStats,omitempty"`
	CreatedAt      time.Time                   `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time                   `bson:"updated_at" json:"updatedAt"`
}

// NewUserProfile creates a fresh level-1 profile.
func NewUserProfile(userID, username string) *UserProfile {
	now := time.Now()
	return &UserProfile{
		UserID:        userID,
		Username:      username,
		Level:         1,
		Achievements:  []Achievement{},
		SubjectScores: map[string]*SubjectProgress{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Subject returns the tracker for a subject, creating it on first use.
func (u *UserProfile) Subject(name string) *SubjectProgress {
	if u.SubjectScores == nil {
		u.SubjectScores = map[string]*SubjectProgress{}
	}
	sp, ok := u.SubjectScores[name]
	if !ok {
		sp = &SubjectProgress{
			Subject:           name,
			RecentScores:      []float64{},
			CurrentDifficulty: DifficultyEasy,
			ScoreHistory:      []ScoreEntry{},
		}
		u.SubjectScores[name] = sp
	}
	return sp
}

// SpeedType returns the speed-typing aggregate, creating it on first game.
func (u *UserProfile) SpeedType() *SpeedTypeStats {
	if u.SpeedTypeStats == nil {
		u.SpeedTypeStats = NewSpeedTypeStats()
	}
	return u.SpeedTypeStats
}

// HasAchievement reports whether a badge with the given title was granted.
func (u *UserProfile) HasAchievement(title string) bool {
	for _, a := range u.Achievements {
		if a.Title == title {
			return true
		}
	}
	return false
}
