// Package events publishes domain events about new content and subscriptions.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/yatube/api-go/metrics"
)

const (
	SubjectPostCreated    = "yatube.post.created"
	SubjectCommentCreated = "yatube.comment.created"
	SubjectUserFollowed   = "yatube.user.followed"
)

// Message is the payload published for every event.
type Message struct {
	Type     string    `json:"type"`
	From     string    `json:"from"`
	To       string    `json:"to,omitempty"`
	ObjectID uint      `json:"object_id,omitempty"`
	At       time.Time `json:"at"`
}

type Publisher interface {
	Publish(subject string, message Message)
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(string, Message) {}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(url string) (*NatsPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("yatube-api"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("cannot connect to %v: %w", url, err)
	}

	return &NatsPublisher{conn: conn}, nil
}

// Publish never fails the caller: broker errors are logged and counted.
func (p *NatsPublisher) Publish(subject string, message Message) {
	if message.At.IsZero() {
		message.At = time.Now().UTC()
	}

	payload, err := json.Marshal(message)
	if err == nil {
		err = p.conn.Publish(subject, payload)
	}
	metrics.ObserveEvent(subject, err)

	if err != nil {
		log.Printf("(Publish) Failed to send message to %v, got error: %v", subject, err)
	}
}

func (p *NatsPublisher) Close() error {
	return p.conn.Drain()
}
