package models

import "time"

type QuizQuestion struct {
	ID         string     `bson:"_id" json:"id"`
	Question   string     `bson:"question" json:"question"`
	Options    []string   `bson:"options" json:"options"`
	Answer     string     `bson:"answer" json:"-"`
	Difficulty Difficulty `bson:"difficulty" json:"difficulty"`
}

// Quiz is a stored quiz definition. Type is the subject the quiz counts
// toward ("math", "geography", ...). Questions embed their correct answer;
// the answer is never serialized to clients.
type Quiz struct {
	ID          string         `bson:"_id,omitempty" json:"id"`
	Title       string         `bson:"title" json:"title"`
	Type        string         `bson:"type" json:"type"`
	Description string         `bson:"description" json:"description"`
	Questions   []QuizQuestion `bson:"questions" json:"questions"`
	Status      string         `bson:"status" json:"status"`
	CreatedAt   time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updated_at" json:"updatedAt"`
}
