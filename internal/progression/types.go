package progression

import "game-service/internal/models"

// TierRule holds the promotion and demotion thresholds for one tier.
// Upgrade requires both the score average and the subject XP floor;
// demotion looks at the score average alone.
type TierRule struct {
	UpgradeAvg     float64 `json:"upgrade_avg"`
	UpgradeXP      int     `json:"upgrade_xp"`
	DowngradeAvg   float64 `json:"downgrade_avg"`
	HasUpgrade     bool    `json:"has_upgrade"`
	HasDowngrade   bool    `json:"has_downgrade"`
	NextTier       models.Difficulty `json:"next_tier,omitempty"`
	PreviousTier   models.Difficulty `json:"previous_tier,omitempty"`
}

// Config holds the tunables of the progression engine.
type Config struct {
	// RecentWindow is the capacity of a subject's recent-score buffer.
	RecentWindow int `json:"recent_window"`
	// TrendWindow is how many recent scores feed the difficulty policy.
	TrendWindow int `json:"trend_window"`
	// HistoryLimit caps subject score history and speed-typing history.
	HistoryLimit int `json:"history_limit"`
	// XPPerCorrect is the flat global reward per correct quiz answer.
	XPPerCorrect int `json:"xp_per_correct"`
	// SubjectBonusFactor scales the score-weighted subject XP bonus.
	SubjectBonusFactor float64 `json:"subject_bonus_factor"`
	// TierRules keys the difficulty state machine by current tier.
	TierRules map[models.Difficulty]TierRule `json:"tier_rules"`
	// SpeedTypeMultipliers scales speed-typing XP per tier.
	SpeedTypeMultipliers map[models.Difficulty]float64 `json:"speed_type_multipliers"`
}

// DefaultConfig returns the production thresholds. The upgrade bar at each
// boundary sits well above the downgrade bar so a subject hovering near a
// single threshold cannot oscillate between tiers.
func DefaultConfig() *Config {
	return &Config{
		RecentWindow:       10,
		TrendWindow:        5,
		HistoryLimit:       50,
		XPPerCorrect:       10,
		SubjectBonusFactor: 0.5,
		TierRules: map[models.Difficulty]TierRule{
			models.DifficultyEasy: {
				HasUpgrade: true,
				UpgradeAvg: 60,
				UpgradeXP:  500,
				NextTier:   models.DifficultyMedium,
			},
			models.DifficultyMedium: {
				HasUpgrade:   true,
				UpgradeAvg:   80,
				UpgradeXP:    1000,
				NextTier:     models.DifficultyHard,
				HasDowngrade: true,
				DowngradeAvg: 50,
				PreviousTier: models.DifficultyEasy,
			},
			models.DifficultyHard: {
				HasUpgrade:   true,
				UpgradeAvg:   90,
				UpgradeXP:    1500,
				NextTier:     models.DifficultyDifficult,
				HasDowngrade: true,
				DowngradeAvg: 65,
				PreviousTier: models.DifficultyMedium,
			},
			models.DifficultyDifficult: {
				HasDowngrade: true,
				DowngradeAvg: 80,
				PreviousTier: models.DifficultyHard,
			},
		},
		SpeedTypeMultipliers: map[models.Difficulty]float64{
			models.DifficultyEasy:   1,
			models.DifficultyMedium: 1.5,
			models.DifficultyHard:   2,
		},
	}
}

// Manager applies progression updates to user profiles.
type Manager struct {
	config *Config
}

// NewManager creates a progression manager. A nil config selects defaults.
func NewManager(config *Config) *Manager {
	if config == nil {
		config = DefaultConfig()
	}
	return &Manager{config: config}
}

// SubjectUpdate reports the outcome of one subject tracker update.
type SubjectUpdate struct {
	Progress      *models.SubjectProgress
	XPGained      int
	OldDifficulty models.Difficulty
	NewDifficulty models.Difficulty
	TierChanged   bool
}

// SpeedTypeResult is one finished speed-typing game fed to the engine.
type SpeedTypeResult struct {
	Difficulty   models.Difficulty
	WPM          float64
	Accuracy     float64
	WordsCorrect int
	TotalWords   int
}

// SpeedTypeUpdate reports the outcome of one speed-typing update.
type SpeedTypeUpdate struct {
	Stats     *models.SpeedTypeStats
	EarnedXP  int
	NewLevel  int
	LeveledUp bool
}
