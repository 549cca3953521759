package extractor

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/fintrack/whatsapp-finance-extractor/pkg/database"
)

type Kind int

const (
	KindTransaction = Kind(1)
	KindAdvisory    = Kind(2)
	KindMalformed   = Kind(3)
)

type Reason string

const (
	ReasonEmpty               = Reason("empty")
	ReasonUnparseable         = Reason("unparseable")
	ReasonInvalidField        = Reason("invalid-field")
	ReasonEndpointUnavailable = Reason("endpoint-unavailable")
)

// Candidate is a validated transaction extracted from a message. All fields
// already passed the closed-enumeration and positive-amount checks.
type Candidate struct {
	Direction   database.Direction
	Amount      decimal.Decimal
	Category    database.Category
	Description string
}

// Result is the classified outcome for one normalized message. Exactly one of
// the three kinds applies; Raw keeps the model output for diagnostics and is
// never surfaced to the sender.
type Result struct {
	Kind        Kind
	Transaction *Candidate
	Advisory    string
	Reason      Reason
	Field       string
	Raw         string
}

func Malformed(reason Reason, field string, raw string) Result {
	return Result{
		Kind:   KindMalformed,
		Reason: reason,
		Field:  field,
		Raw:    raw,
	}
}

// modelPayload mirrors the JSON contract the prompt imposes on the model.
// Amount stays raw because models emit it both as a number and as a quoted
// string.
type modelPayload struct {
	IsTransaction bool            `json:"isTransaction"`
	Type          string          `json:"type"`
	Amount        json.RawMessage `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Response      string          `json:"response"`
}
