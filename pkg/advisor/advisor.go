package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/fintrack/whatsapp-finance-extractor/pkg/database"
	"github.com/fintrack/whatsapp-finance-extractor/pkg/printer"
)

const maxSummaryRunes = 1500

const summaryTemplate = `You are a personal finance assistant. Based on the totals below, write a short
summary of the user's month in Portuguese: 3 to 5 sentences, friendly tone,
one practical suggestion at the end. Plain text only, no markdown.

Totals:
%s`

type Service struct {
	client CompletionClient
}

func NewService(
	client CompletionClient,
) *Service {
	return &Service{
		client: client,
	}
}

// Summary asks the completion endpoint for a spending summary built from the
// aggregated totals, never from raw message text.
func (s *Service) Summary(
	ctx context.Context,
	transactions []*database.Transaction,
) (string, error) {
	if len(transactions) == 0 {
		return "", errors.New("no transactions to summarize")
	}

	text, err := s.client.Complete(ctx, fmt.Sprintf(summaryTemplate, aggregate(transactions)))
	if err != nil {
		return "", errors.Wrap(err, "failed to generate summary")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("empty summary from completion endpoint")
	}

	runes := []rune(text)
	if len(runes) > maxSummaryRunes {
		text = string(runes[:maxSummaryRunes])
	}

	return text, nil
}

func aggregate(transactions []*database.Transaction) string {
	var income, expense decimal.Decimal
	perCategory := map[database.Category]decimal.Decimal{}

	for _, tx := range transactions {
		switch tx.Type {
		case database.DirectionIncome:
			income = income.Add(tx.Amount)
		case database.DirectionExpense:
			expense = expense.Add(tx.Amount)
			perCategory[tx.Category] = perCategory[tx.Category].Add(tx.Amount)
		}
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Receitas: R$ %s\n", income.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Despesas: R$ %s\n", expense.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Saldo: R$ %s\n", income.Sub(expense).StringFixed(2)))

	for _, category := range database.Categories() {
		total, ok := perCategory[category]
		if !ok {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s: R$ %s\n", printer.CategoryLabel(category), total.StringFixed(2)))
	}

	return sb.String()
}
