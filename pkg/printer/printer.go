package printer

import (
	"fmt"
	"strings"

	"github.com/fintrack/whatsapp-finance-extractor/pkg/database"
	"github.com/fintrack/whatsapp-finance-extractor/pkg/extractor"
)

var directionLabels = map[database.Direction]string{
	database.DirectionIncome:  "Receita",
	database.DirectionExpense: "Despesa",
}

var categoryLabels = map[database.Category]string{
	database.CategoryFood:          "Alimentação",
	database.CategoryTransport:     "Transporte",
	database.CategoryEntertainment: "Lazer",
	database.CategoryHealth:        "Saúde",
	database.CategoryEducation:     "Educação",
	database.CategoryShopping:      "Compras",
	database.CategoryBills:         "Contas",
	database.CategorySalary:        "Salário",
	database.CategoryInvestment:    "Investimento",
	database.CategoryOther:         "Outros",
}

const exampleHint = `Exemplos do que eu entendo:
- "Gastei R$ 50 no mercado"
- "Paguei R$ 120 de conta de luz"
- "Recebi R$ 2000 de salário"`

var clarifications = map[extractor.Reason]string{
	extractor.ReasonEmpty: "Não consegui ler sua mensagem. " +
		"Me envie um gasto ou uma receita em texto.\n\n" + exampleHint,
	extractor.ReasonUnparseable: "Não entendi sua mensagem. " +
		"Tente descrever a transação de forma mais direta.\n\n" + exampleHint,
	extractor.ReasonInvalidField: "Sua mensagem parecia uma transação, mas não consegui " +
		"confirmar os detalhes. Informe o valor e o que foi.\n\n" + exampleHint,
	extractor.ReasonEndpointUnavailable: "Estou com dificuldades para processar mensagens " +
		"agora. Tente novamente em alguns minutos. 🙏",
}

// DirectionLabel returns the user-facing label for a direction.
func DirectionLabel(direction database.Direction) string {
	if label, ok := directionLabels[direction]; ok {
		return label
	}

	return string(direction)
}

// CategoryLabel returns the user-facing label for a category.
func CategoryLabel(category database.Category) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}

	return string(category)
}

type Printer struct {
}

func NewPrinter() *Printer {
	return &Printer{}
}

// Confirmation renders the reply for a committed transaction. The same
// transaction always renders to the same text, which keeps redelivered
// messages answered identically.
func (p *Printer) Confirmation(tx *database.Transaction) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("✅ %s registrada!", DirectionLabel(tx.Type)))
	sb.WriteString(fmt.Sprintf("\n💰 Valor: R$ %s", tx.Amount.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("\n📂 Categoria: %s", CategoryLabel(tx.Category)))

	if tx.Description != "" {
		sb.WriteString(fmt.Sprintf("\n📝 Descrição: %s", tx.Description))
	}

	return sb.String()
}

// Advisory passes the model-supplied reply through verbatim.
func (p *Printer) Advisory(text string) string {
	return text
}

// Clarification renders the fixed template for a malformed outcome.
func (p *Printer) Clarification(reason extractor.Reason) string {
	if text, ok := clarifications[reason]; ok {
		return text
	}

	return clarifications[extractor.ReasonUnparseable]
}
