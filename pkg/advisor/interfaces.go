package advisor

import "context"

//go:generate mockgen -destination interfaces_mocks_test.go -package advisor_test -source=interfaces.go

type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
