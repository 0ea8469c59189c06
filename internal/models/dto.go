package models

// AnswerSubmission is one answer within a quiz submission. Questions
// without a matching entry are graded as incorrect.
type AnswerSubmission struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type QuizSubmissionRequest struct {
	QuizID  string             `json:"quizId"`
	Answers []AnswerSubmission `json:"answers"`
}

// QuestionReview echoes one graded question back to the client.
type QuestionReview struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	UserAnswer    string   `json:"userAnswer"`
	CorrectAnswer string   `json:"correctAnswer"`
	IsCorrect     bool     `json:"isCorrect"`
}

// SubjectSummary is the subject tracker snapshot returned after a submission.
type SubjectSummary struct {
	Subject           string     `json:"subject"`
	Attempts          int        `json:"attempts"`
	AverageScore      float64    `json:"averageScore"`
	BestScore         float64    `json:"bestScore"`
	TotalXP           int        `json:"totalXP"`
	CurrentDifficulty Difficulty `json:"currentDifficulty"`
}

type QuizSubmissionResponse struct {
	Score           int              `json:"score"`
	Correct         int              `json:"correct"`
	Total           int              `json:"total"`
	EarnedXP        int              `json:"earnedXP"`
	SubjectXPGained int              `json:"subjectXpGained"`
	NewLevel        int              `json:"newLevel"`
	LeveledUp       bool             `json:"leveledUp"`
	Achievements    []Achievement    `json:"achievements"`
	Questions       []QuestionReview `json:"questionsWithAnswers"`
	SubjectData     SubjectSummary   `json:"subjectData"`
}

// SpeedTypeSubmissionRequest carries one finished speed-typing game.
// WPM and Accuracy are pointers so absent fields can be rejected.
type SpeedTypeSubmissionRequest struct {
	Difficulty   string   `json:"difficulty"`
	WPM          *float64 `json:"wpm"`
	Accuracy     *float64 `json:"accuracy"`
	WordsCorrect int      `json:"wordsCorrect"`
	TotalWords   int      `json:"totalWords"`
}

// SpeedTypeSummary is the aggregate snapshot returned after a submission.
type SpeedTypeSummary struct {
	TotalGames      int     `json:"totalGames"`
	BestWPM         float64 `json:"bestWPM"`
	AverageWPM      float64 `json:"averageWPM"`
	BestAccuracy    float64 `json:"bestAccuracy"`
	AverageAccuracy float64 `json:"averageAccuracy"`
	TotalXPEarned   int     `json:"totalXPEarned"`
}

type SpeedTypeSubmissionResponse struct {
	EarnedXP       int              `json:"earnedXP"`
	NewLevel       int              `json:"newLevel"`
	LeveledUp      bool             `json:"leveledUp"`
	Achievements   []Achievement    `json:"achievements"`
	SpeedTypeStats SpeedTypeSummary `json:"speedTypeStats"`
}

type LeaderboardEntry struct {
	Rank            int     `json:"rank"`
	Username        string  `json:"username"`
	Level           int     `json:"level"`
	BestWPM         float64 `json:"bestWPM"`
	AverageAccuracy float64 `json:"averageAccuracy"`
	TotalGames      int     `json:"totalGames"`
}

// QuizView is a quiz served to a player: questions matched to the
// user's tier, correct answers stripped by serialization.
type QuizView struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Type              string         `json:"type"`
	Questions         []QuizQuestion `json:"questions"`
	CurrentDifficulty Difficulty     `json:"currentDifficulty"`
}

// SubjectOverview is one row of the all-subjects summary.
type SubjectOverview struct {
	Subject           string     `json:"subject"`
	Attempts          int        `json:"attempts"`
	AverageScore      float64    `json:"averageScore"`
	BestScore         float64    `json:"bestScore"`
	TotalXP           int        `json:"totalXP"`
	CurrentDifficulty Difficulty `json:"currentDifficulty"`
	RecentScores      []float64  `json:"recentScores"`
}

// SubjectStatsResponse is the full tracker snapshot for one subject,
// zeroed when the subject has never been attempted.
type SubjectStatsResponse struct {
	Subject           string       `json:"subject"`
	Attempts          int          `json:"attempts"`
	AverageScore      float64      `json:"averageScore"`
	BestScore         float64      `json:"bestScore"`
	TotalXP           int          `json:"totalXP"`
	CurrentDifficulty Difficulty   `json:"currentDifficulty"`
	RecentScores      []float64    `json:"recentScores"`
	ScoreHistory      []ScoreEntry `json:"scoreHistory"`
}
