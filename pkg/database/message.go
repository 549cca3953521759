package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceExtractor marks transactions created by the language-model pipeline,
// as opposed to transactions entered manually through other channels.
const SourceExtractor = "extractor"

// Message is the inbound message log. A row is inserted once when the message
// arrives and updated at most once, to attach the reply and flip IsProcessed.
type Message struct {
	ID          string `gorm:"primaryKey"`
	Sender      string
	Content     string
	MediaURL    string
	CreatedAt   time.Time
	ProcessedAt *time.Time
	IsProcessed bool
	Reply       *string
}

func (Message) TableName() string {
	return "messages"
}

// Transaction is an owner-scoped financial transaction. MessageID points back
// to the inbound message that produced it and carries a unique constraint, so
// redeliveries of the same message can never create a second row.
type Transaction struct {
	ID          string `gorm:"primaryKey"`
	OwnerID     string
	Type        Direction
	Amount      decimal.Decimal
	Category    Category
	Description string
	CreatedAt   time.Time
	Source      string
	MessageID   string `gorm:"uniqueIndex"`
}

func (Transaction) TableName() string {
	return "transactions"
}
