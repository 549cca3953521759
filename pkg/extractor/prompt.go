package extractor

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/fintrack/whatsapp-finance-extractor/pkg/database"
)

const promptTemplate = `You are a financial assistant for a personal expense tracker. Users send short informal messages in Portuguese or English about money they spent or received.

Decide whether the message describes a single financial transaction.

Allowed categories (use EXACTLY one of these values): %s
Allowed types (use EXACTLY one of these values): income, expense

You MUST answer with a single raw JSON object and nothing else. No markdown, no code fences, no commentary.

If the message describes a transaction:
{"isTransaction": true, "type": "expense", "amount": 50, "category": "food", "description": "almoço"}

If it does not:
{"isTransaction": false, "response": "a short helpful reply to the user, in their language"}

Rules:
- "amount" is a positive number. Never guess a value that is not in the message.
- "category" must be one of the allowed categories; when unsure use "other".
- "description" is a short phrase taken from the message.
- Greetings, questions and anything without a concrete amount are NOT transactions.

Examples:
"Gasto R$ 50 com almoço" -> {"isTransaction": true, "type": "expense", "amount": 50, "category": "food", "description": "almoço"}
"Recebi R$ 2000 salário" -> {"isTransaction": true, "type": "income", "amount": 2000, "category": "salary", "description": "salário"}
"Oi, como vai?" -> {"isTransaction": false, "response": "Oi! Me conte um gasto ou receita para eu registrar, por exemplo: Gastei R$ 50 no mercado."}

Message: %s`

func buildPrompt(message string) string {
	categories := lo.Map(database.Categories(), func(c database.Category, _ int) string {
		return string(c)
	})

	return fmt.Sprintf(promptTemplate, strings.Join(categories, ", "), message)
}
