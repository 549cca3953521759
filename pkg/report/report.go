package report

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/tealeg/xlsx"

	"github.com/fintrack/whatsapp-finance-extractor/pkg/database"
	"github.com/fintrack/whatsapp-finance-extractor/pkg/printer"
)

type Builder struct {
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build renders the transactions into a one-sheet xlsx statement.
func (b *Builder) Build(transactions []*database.Transaction) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Extrato")
	if err != nil {
		return nil, errors.Wrap(err, "failed to add sheet")
	}

	header := sheet.AddRow()
	for _, title := range []string{"Data", "Tipo", "Categoria", "Descrição", "Valor"} {
		header.AddCell().SetString(title)
	}

	for _, tx := range transactions {
		row := sheet.AddRow()
		row.AddCell().SetString(tx.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(printer.DirectionLabel(tx.Type))
		row.AddCell().SetString(printer.CategoryLabel(tx.Category))
		row.AddCell().SetString(tx.Description)
		row.AddCell().SetString(tx.Amount.StringFixed(2))
	}

	var buf bytes.Buffer
	if err = file.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx")
	}

	return buf.Bytes(), nil
}
