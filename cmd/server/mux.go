package main

import (
	"context"
	"crypto/sha512"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog"

	"github.com/fintrack/whatsapp-finance-extractor/pkg/processor"
)

type Handler struct {
	processor  MessageProcessor
	pool       *workerpool.WorkerPool
	webhookKey string
	jobTimeout time.Duration
	logger     zerolog.Logger
}

func NewHandler(
	processor MessageProcessor,
	pool *workerpool.WorkerPool,
	webhookKey string,
	jobTimeout time.Duration,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		processor:  processor,
		pool:       pool,
		webhookKey: webhookKey,
		jobTimeout: jobTimeout,
		logger:     logger,
	}
}

func (h *Handler) ServeHTTP(
	w http.ResponseWriter,
	r *http.Request,
) {
	if h.webhookKey != r.URL.Query().Get("api_key") {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	b, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	var webhook Webhook
	if err = json.Unmarshal(b, &webhook); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(err.Error()))
		return
	}

	if webhook.From == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	message := toMessage(webhook)

	// each message is an independent unit of work; the pool gives it a
	// lifetime of its own instead of the webhook request's
	h.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(h.logger.WithContext(context.Background()), h.jobTimeout)
		defer cancel()

		if processErr := h.processor.Process(ctx, message); processErr != nil {
			h.logger.Error().Err(processErr).
				Str("message_id", message.ID).
				Msg("failed to process message")
		}
	})

	w.WriteHeader(http.StatusOK)
}

func toMessage(webhook Webhook) processor.Message {
	date := time.Now().UTC()
	if webhook.Timestamp > 0 {
		date = time.Unix(webhook.Timestamp, 0).UTC()
	}

	id := webhook.ID
	if id == "" {
		// gateways without stable message ids still need an idempotency key
		id = fmt.Sprintf("%x", sha512.Sum512(
			[]byte(fmt.Sprintf("%s|%d|%s", webhook.From, webhook.Timestamp, webhook.Message))))
	}

	return processor.Message{
		ID:       id,
		Sender:   webhook.From,
		Content:  webhook.Message,
		MediaURL: webhook.MediaURL,
		Date:     date,
	}
}
