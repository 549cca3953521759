package extractor

import "context"

//go:generate mockgen -destination interfaces_mocks_test.go -package extractor_test -source=interfaces.go

type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
