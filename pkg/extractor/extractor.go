package extractor

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fintrack/whatsapp-finance-extractor/pkg/database"
)

// maxAdvisoryRunes bounds the model-supplied advisory reply. Model output is
// not trusted to be reasonably sized.
const maxAdvisoryRunes = 1500

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

// Extract runs one completion round trip for the normalized message and
// classifies the output. Endpoint failures are retried once with unchanged
// input; a second failure downgrades to Malformed{endpoint-unavailable}
// instead of an error, so the sender always gets a reply.
func (s *Service) Extract(
	ctx context.Context,
	message string,
) (Result, error) {
	prompt := buildPrompt(message)

	raw, err := s.client.Complete(ctx, prompt)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("completion call failed, retrying once")

		raw, err = s.client.Complete(ctx, prompt)
	}

	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("completion endpoint unavailable")

		return Malformed(ReasonEndpointUnavailable, "", ""), nil
	}

	return s.parse(ctx, raw), nil
}

func (s *Service) parse(ctx context.Context, raw string) Result {
	payload, ok := decodePayload(raw)
	if !ok {
		zerolog.Ctx(ctx).Warn().Str("response", raw).Msg("no JSON object in model output")

		return Malformed(ReasonUnparseable, "", raw)
	}

	if !payload.IsTransaction {
		response := strings.TrimSpace(payload.Response)
		if response == "" {
			return Malformed(ReasonInvalidField, "response", raw)
		}

		return Result{
			Kind:     KindAdvisory,
			Advisory: truncateRunes(response, maxAdvisoryRunes),
			Raw:      raw,
		}
	}

	candidate, field, err := validateCandidate(payload)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("payload", spew.Sdump(payload)).
			Msg("model output failed field validation")

		return Malformed(ReasonInvalidField, field, raw)
	}

	return Result{
		Kind:        KindTransaction,
		Transaction: candidate,
		Raw:         raw,
	}
}

func validateCandidate(payload modelPayload) (*Candidate, string, error) {
	direction, err := database.ParseDirection(payload.Type)
	if err != nil {
		return nil, "type", err
	}

	category, err := database.ParseCategory(payload.Category)
	if err != nil {
		return nil, "category", err
	}

	amount, err := parseAmount(payload.Amount)
	if err != nil {
		return nil, "amount", err
	}

	return &Candidate{
		Direction:   direction,
		Amount:      amount,
		Category:    category,
		Description: strings.TrimSpace(payload.Description),
	}, "", nil
}

func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(string(raw))
	trimmed = strings.Trim(trimmed, `"`)

	if trimmed == "" || trimmed == "null" {
		return decimal.Decimal{}, errors.New("amount is missing")
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "failed to parse amount %q", trimmed)
	}

	// two-place currency rounding before the sign check, so 0.001 cannot
	// slip through as a positive zero-value transaction
	amount = amount.Round(2)

	if !amount.IsPositive() {
		return decimal.Decimal{}, errors.Newf("amount %s is not positive", amount)
	}

	return amount, nil
}

// decodePayload extracts the first JSON object that unmarshals into the
// expected shape, tolerating surrounding prose the model may add.
func decodePayload(raw string) (modelPayload, bool) {
	rest := raw

	for {
		candidate, next, found := firstJSONObject(rest)
		if !found {
			return modelPayload{}, false
		}

		var payload modelPayload
		if err := json.Unmarshal([]byte(candidate), &payload); err == nil {
			return payload, true
		}

		rest = next
	}
}

// firstJSONObject returns the first balanced top-level {...} block of the
// input plus the remainder after its opening brace, for retrying with the
// next block when the first one does not decode.
func firstJSONObject(raw string) (string, string, bool) {
	start := strings.IndexByte(raw, '{')

	for start >= 0 {
		depth := 0
		inString := false
		escaped := false

		for i := start; i < len(raw); i++ {
			c := raw[i]

			if inString {
				switch {
				case escaped:
					escaped = false
				case c == '\\':
					escaped = true
				case c == '"':
					inString = false
				}

				continue
			}

			switch c {
			case '"':
				inString = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return raw[start : i+1], raw[start+1:], true
				}
			}
		}

		next := strings.IndexByte(raw[start+1:], '{')
		if next < 0 {
			break
		}

		start += 1 + next
	}

	return "", "", false
}

func truncateRunes(input string, limit int) string {
	runes := []rune(input)
	if len(runes) <= limit {
		return input
	}

	return string(runes[:limit])
}
