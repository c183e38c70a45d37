package coinfolio

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// this file contains the CSV import/export format, meant for spreadsheets.

// csvLine is one row of the CSV format.
type csvLine struct {
	Symbol    string `csv:"symbol"`
	Amount    string `csv:"amount"`
	Price     string `csv:"price"`
	Value     string `csv:"value"`
	Date      string `csv:"date"`
	FirstName string `csv:"ownerFirstName"`
	LastName  string `csv:"ownerLastName"`
	Note      string `csv:"note"`
}

// ExportCSV writes one row per valued holding, with a header line.
//
// Prices and values are plain decimals rounded to the currency fraction.
func ExportCSV(w io.Writer, v Valuation) error {
	rows := make([]*csvLine, 0, len(v.Lines))
	for _, l := range v.Lines {
		rows = append(rows, &csvLine{
			Symbol:    l.Symbol,
			Amount:    l.Amount.String(),
			Price:     l.Price.Fixed(),
			Value:     l.Value.Fixed(),
			Date:      l.Date.String(),
			FirstName: l.OwnerFirstName,
			LastName:  l.OwnerLastName,
			Note:      l.Note,
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("cannot export holdings: %w", err)
	}
	return nil
}

// ImportCSV reads rows in the ExportCSV format and returns them as forms,
// ready to be submitted one by one. Only the symbol, amount, owner and note
// columns are read, price, value and date are recomputed on submission.
func ImportCSV(r io.Reader) ([]Form, error) {
	var rows []*csvLine
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("cannot import holdings: %w", err)
	}
	forms := make([]Form, 0, len(rows))
	for _, row := range rows {
		forms = append(forms, Form{
			Symbol:    row.Symbol,
			Amount:    row.Amount,
			Note:      row.Note,
			FirstName: row.FirstName,
			LastName:  row.LastName,
		})
	}
	return forms, nil
}
