package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessagePreview struct {
	Text      string    `json:"text" bson:"text"`
	SenderID  string    `json:"senderId" bson:"senderId"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Chat is a 1:1 conversation, typically customer and store staff about an
// order. Users are stored sorted so the pair is a stable lookup key.
type Chat struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Users       []string           `json:"users" bson:"users"`
	LastMessage MessagePreview     `json:"lastMessage,omitempty" bson:"lastMessage,omitempty"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Message struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ChatID    string             `json:"chatid" bson:"chatid"`
	UserID    string             `json:"userId" bson:"userId"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
