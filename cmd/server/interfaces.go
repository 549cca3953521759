package main

import (
	"context"

	"github.com/fintrack/whatsapp-finance-extractor/pkg/processor"
)

type MessageProcessor interface {
	Process(
		ctx context.Context,
		message processor.Message,
	) error
}
