package models

// FinancialData is the flat fundamental-figure map keyed by statement label.
type FinancialData map[string]float64

// Statement labels read by the ratio calculator.
const (
	FieldNetIncome          = "Net Income"
	FieldTotalEquity        = "Total Equity"
	FieldTotalAssets        = "Total Assets"
	FieldTotalLiabilities   = "Total Liabilities"
	FieldOperatingCashFlow  = "Operating Cash Flow"
	FieldCapitalExpenditure = "Capital Expenditure"
	FieldMarketCap          = "Market Cap"
	FieldCash               = "Cash"
	FieldEBITDA             = "EBITDA"
	FieldPreferredDividends = "Preferred Dividends"
	FieldCommonDividends    = "Common Dividends"
)

// Get returns the figure or def when the label is absent.
func (d FinancialData) Get(key string, def float64) float64 {
	if v, ok := d[key]; ok {
		return v
	}
	return def
}

// FinancialRatios are derived from FinancialData.
type FinancialRatios struct {
	ROE              float64 `json:"roe"`
	DebtRatio        float64 `json:"debt_ratio"`
	FCF              float64 `json:"fcf"`
	EVToEBITDA       float64 `json:"ev_ebitda"`
	DividendCoverage float64 `json:"dividend_coverage"`
}
