package processor

import (
	"context"
	"time"

	"github.com/fintrack/whatsapp-finance-extractor/pkg/database"
	"github.com/fintrack/whatsapp-finance-extractor/pkg/extractor"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package processor_test -source=interfaces.go

type Repo interface {
	AddMessage(ctx context.Context, message database.Message) error
	GetMessage(ctx context.Context, id string) (*database.Message, error)
	MarkProcessed(ctx context.Context, id string, reply string) error

	AddTransaction(ctx context.Context, tx database.Transaction) (bool, error)
	GetTransactionByMessage(ctx context.Context, messageID string) (*database.Transaction, error)
	ListTransactions(ctx context.Context, ownerID string, since time.Time) ([]*database.Transaction, error)
}

type Extractor interface {
	Extract(ctx context.Context, message string) (extractor.Result, error)
}

type NotificationSvc interface {
	SendMessage(ctx context.Context, to string, text string) error
	SendDocument(ctx context.Context, to string, filename string, data []byte) error
}

type Printer interface {
	Confirmation(tx *database.Transaction) string
	Advisory(text string) string
	Clarification(reason extractor.Reason) string
}

type Advisor interface {
	Summary(ctx context.Context, transactions []*database.Transaction) (string, error)
}

type ReportBuilder interface {
	Build(transactions []*database.Transaction) ([]byte, error)
}
