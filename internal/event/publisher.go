package event

import (
	"encoding/json"
	"log"
	"time"

	"game-service/internal/models"

	"github.com/streadway/amqp"
)

// Routing keys for the topic exchange. Downstream consumers bind with
// patterns like "game.*" or "game.achievement.earned".
const (
	QuizCompleted      = "game.quiz.completed"
	SpeedTypeCompleted = "game.speedtype.completed"
	LevelUp            = "game.level.up"
	AchievementEarned  = "game.achievement.earned"
)

// Publisher emits progression events to RabbitMQ. A nil *Publisher is
// valid and drops every event, so wiring stays unconditional in main.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewPublisher(amqpURL, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends one event with the routing key as its type. Failures are
// logged and swallowed: events are best-effort and never block or fail a
// player-facing request.
func (p *Publisher) Publish(eventType string, payload interface{}) {
	if p == nil {
		return
	}
	event := map[string]interface{}{
		"type":    eventType,
		"time":    time.Now().UTC(),
		"payload": payload,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("event %s: marshal: %s", eventType, err)
		return
	}
	err = p.channel.Publish(
		p.exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		log.Printf("event %s: publish: %s", eventType, err)
	}
}

// PublishAchievements fans one event out per freshly earned badge.
func (p *Publisher) PublishAchievements(userID string, achievements []models.Achievement) {
	for _, a := range achievements {
		p.Publish(AchievementEarned, map[string]interface{}{
			"userId": userID,
			"title":  a.Title,
		})
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
