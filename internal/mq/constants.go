package mq

import "time"

// Queue names and message definitions

// durable queues that receive one message per committed mutation
const (
	FyyurChangesQueue  = "fyyur.changes"
	TriviaChangesQueue = "trivia.changes"
)

type ChangeMessage struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     uint      `json:"id"`
	At     time.Time `json:"at"`
}
