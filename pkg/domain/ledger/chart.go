package ledger

import "github.com/google/uuid"

// chartAccount is one row of the default chart template.
type chartAccount struct {
	Code string
	Name string
	Type Type
}

// Default chart for a Swedish SME, a small cut of the BAS standard.
var defaultChart = []chartAccount{
	{Code: "1510", Name: "Kundfordringar", Type: TypeAsset},
	{Code: "1910", Name: "Kassa", Type: TypeAsset},
	{Code: "1930", Name: "Företagskonto", Type: TypeAsset},
	{Code: "2081", Name: "Aktiekapital", Type: TypeEquity},
	{Code: "2440", Name: "Leverantörsskulder", Type: TypeLiability},
	{Code: "2610", Name: "Utgående moms", Type: TypeLiability},
	{Code: "2640", Name: "Ingående moms", Type: TypeAsset},
	{Code: "3010", Name: "Försäljning", Type: TypeRevenue},
	{Code: "4010", Name: "Inköp varor", Type: TypeExpense},
	{Code: "5010", Name: "Lokalhyra", Type: TypeExpense},
	{Code: "6110", Name: "Kontorsmaterial", Type: TypeExpense},
	{Code: "7010", Name: "Löner", Type: TypeExpense},
}

// DefaultChart builds the default BAS-style chart of accounts for a company.
func DefaultChart(companyID uuid.UUID) ([]*Account, error) {
	accounts := make([]*Account, 0, len(defaultChart))
	for _, c := range defaultChart {
		a, err := New().
			WithCompanyID(companyID).
			WithCode(c.Code).
			WithName(c.Name).
			WithType(c.Type).
			Build()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}
