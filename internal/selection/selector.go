package selection

import (
	"math/rand"
	"time"

	"game-service/internal/models"
)

// Selector draws a randomized question set for one serving of a quiz,
// preferring questions tagged with the requested tier and padding with
// untagged questions when the tier pool runs short.
type Selector struct {
	rand *rand.Rand
}

func NewSelector() *Selector {
	return &Selector{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Pick returns up to count questions for the given tier, shuffled.
// count <= 0 means no cap. Quizzes without per-tier tagging serve their
// full question list, and a tier with no matches at all falls back to
// everything rather than an empty quiz.
func (s *Selector) Pick(questions []models.QuizQuestion, difficulty models.Difficulty, count int) []models.QuizQuestion {
	var matched, untagged []models.QuizQuestion
	for _, q := range questions {
		switch q.Difficulty {
		case difficulty:
			matched = append(matched, q)
		case "":
			untagged = append(untagged, q)
		}
	}
	if len(matched) == 0 && len(untagged) == 0 {
		untagged = append(untagged, questions...)
	}

	s.shuffle(matched)
	s.shuffle(untagged)

	selected := matched
	if count <= 0 || count > len(matched)+len(untagged) {
		selected = append(selected, untagged...)
	} else if len(selected) > count {
		selected = selected[:count]
	} else {
		selected = append(selected, untagged[:count-len(selected)]...)
	}
	return selected
}

func (s *Selector) shuffle(questions []models.QuizQuestion) {
	s.rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}
