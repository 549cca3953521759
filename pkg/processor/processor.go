package processor

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fintrack/whatsapp-finance-extractor/pkg/common"
	"github.com/fintrack/whatsapp-finance-extractor/pkg/database"
	"github.com/fintrack/whatsapp-finance-extractor/pkg/extractor"
	"github.com/fintrack/whatsapp-finance-extractor/pkg/normalizer"
)

const (
	statementDays = 30

	statementReply      = "📎 Segue seu extrato dos últimos 30 dias."
	noTransactionsReply = "Você ainda não tem transações registradas nesse período."
)

type Config struct {
	Repo            Repo
	Extractor       Extractor
	NotificationSvc NotificationSvc
	Printer         Printer
	Advisor         Advisor
	Report          ReportBuilder
}

type Processor struct {
	repo            Repo
	extractor       Extractor
	notificationSvc NotificationSvc
	printer         Printer
	advisor         Advisor
	report          ReportBuilder
}

func NewProcessor(cfg *Config) *Processor {
	return &Processor{
		repo:            cfg.Repo,
		extractor:       cfg.Extractor,
		notificationSvc: cfg.NotificationSvc,
		printer:         cfg.Printer,
		advisor:         cfg.Advisor,
		report:          cfg.Report,
	}
}

// Process drives one inbound message to a terminal state: log it, classify
// it, commit the outcome and reply to the sender. Redeliveries of an
// already-processed message id resend the stored reply and change nothing.
func (p *Processor) Process(
	ctx context.Context,
	message Message,
) error {
	existing, err := p.repo.GetMessage(ctx, message.ID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}

	if existing == nil {
		if err = p.repo.AddMessage(ctx, database.Message{
			ID:        message.ID,
			Sender:    message.Sender,
			Content:   message.Content,
			MediaURL:  message.MediaURL,
			CreatedAt: message.Date,
		}); err != nil {
			return err
		}
	} else if existing.IsProcessed {
		return p.resendReply(ctx, message, existing)
	}

	normalized := normalizer.Normalize(message.Content)

	switch strings.ToLower(normalized) {
	case "extrato", "export":
		return p.sendStatement(ctx, message)
	case "resumo", "summary":
		return p.sendSummary(ctx, message)
	}

	var result extractor.Result
	if normalized == "" {
		result = extractor.Malformed(extractor.ReasonEmpty, "", "")
	} else {
		result, err = p.extractor.Extract(ctx, normalized)
		if err != nil {
			return err
		}
	}

	// the completion round trip is already paid for; a dropped caller must
	// not leave the message half-processed
	ctx = context.WithoutCancel(ctx)

	reply, err := p.commit(ctx, message, result)
	if err != nil {
		return err
	}

	return p.reply(ctx, message, reply)
}

func (p *Processor) resendReply(
	ctx context.Context,
	message Message,
	logged *database.Message,
) error {
	if logged.Reply == nil || *logged.Reply == "" {
		return nil
	}

	return p.reply(ctx, message, *logged.Reply)
}

func (p *Processor) commit(
	ctx context.Context,
	message Message,
	result extractor.Result,
) (string, error) {
	switch result.Kind {
	case extractor.KindTransaction:
		return p.commitTransaction(ctx, message, result.Transaction)
	case extractor.KindAdvisory:
		return p.markProcessed(ctx, message.ID, p.printer.Advisory(result.Advisory))
	default:
		return p.markProcessed(ctx, message.ID, p.printer.Clarification(result.Reason))
	}
}

func (p *Processor) commitTransaction(
	ctx context.Context,
	message Message,
	candidate *extractor.Candidate,
) (string, error) {
	existing, err := p.repo.GetTransactionByMessage(ctx, message.ID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return "", err
	}

	if existing != nil {
		return p.markProcessed(ctx, message.ID, p.printer.Confirmation(existing))
	}

	tx := database.Transaction{
		ID:          uuid.NewString(),
		OwnerID:     message.Sender,
		Type:        candidate.Direction,
		Amount:      candidate.Amount,
		Category:    candidate.Category,
		Description: candidate.Description,
		CreatedAt:   time.Now().UTC(),
		Source:      database.SourceExtractor,
		MessageID:   message.ID,
	}

	inserted, err := p.repo.AddTransaction(ctx, tx)
	if err != nil {
		return "", err
	}

	if !inserted {
		// lost the race against a concurrent redelivery; reuse its row
		winner, winnerErr := p.repo.GetTransactionByMessage(ctx, message.ID)
		if winnerErr != nil {
			return "", winnerErr
		}

		tx = *winner
	}

	return p.markProcessed(ctx, message.ID, p.printer.Confirmation(&tx))
}

func (p *Processor) markProcessed(
	ctx context.Context,
	messageID string,
	reply string,
) (string, error) {
	if err := p.repo.MarkProcessed(ctx, messageID, reply); err != nil {
		return "", err
	}

	return reply, nil
}

func (p *Processor) reply(
	ctx context.Context,
	message Message,
	text string,
) error {
	if err := p.notificationSvc.SendMessage(ctx, message.Sender, text); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("message_id", message.ID).
			Msg("failed to send reply")

		return err
	}

	return nil
}

func (p *Processor) sendStatement(
	ctx context.Context,
	message Message,
) error {
	since := time.Now().UTC().AddDate(0, 0, -statementDays)

	transactions, err := p.repo.ListTransactions(ctx, message.Sender, since)
	if err != nil {
		return err
	}

	if len(transactions) == 0 {
		reply, markErr := p.markProcessed(ctx, message.ID, noTransactionsReply)
		if markErr != nil {
			return markErr
		}

		return p.reply(ctx, message, reply)
	}

	data, err := p.report.Build(transactions)
	if err != nil {
		return err
	}

	if err = p.notificationSvc.SendDocument(ctx, message.Sender, "extrato.xlsx", data); err != nil {
		return err
	}

	reply, err := p.markProcessed(ctx, message.ID, statementReply)
	if err != nil {
		return err
	}

	return p.reply(ctx, message, reply)
}

func (p *Processor) sendSummary(
	ctx context.Context,
	message Message,
) error {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	transactions, err := p.repo.ListTransactions(ctx, message.Sender, monthStart)
	if err != nil {
		return err
	}

	if len(transactions) == 0 {
		reply, markErr := p.markProcessed(ctx, message.ID, noTransactionsReply)
		if markErr != nil {
			return markErr
		}

		return p.reply(ctx, message, reply)
	}

	text, err := p.advisor.Summary(ctx, transactions)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to generate summary")

		text = p.printer.Clarification(extractor.ReasonEndpointUnavailable)
	}

	reply, err := p.markProcessed(ctx, message.ID, text)
	if err != nil {
		return err
	}

	return p.reply(ctx, message, reply)
}
