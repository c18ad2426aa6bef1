package features

import "FinScore/internal/domain/models"

// CalculateFinancialRatios derives the fundamental ratios. Missing
// denominators default to 1; a zero denominator yields a 0 ratio.
func CalculateFinancialRatios(d models.FinancialData) models.FinancialRatios {
	netIncome := d.Get(models.FieldNetIncome, 0)
	liabilities := d.Get(models.FieldTotalLiabilities, 0)

	ev := d.Get(models.FieldMarketCap, 0) + liabilities - d.Get(models.FieldCash, 0)
	payout := netIncome - d.Get(models.FieldPreferredDividends, 0)

	return models.FinancialRatios{
		ROE:              safeDiv(netIncome, d.Get(models.FieldTotalEquity, 1)),
		DebtRatio:        safeDiv(liabilities, d.Get(models.FieldTotalAssets, 1)),
		FCF:              d.Get(models.FieldOperatingCashFlow, 0) - d.Get(models.FieldCapitalExpenditure, 0),
		EVToEBITDA:       safeDiv(ev, d.Get(models.FieldEBITDA, 1)),
		DividendCoverage: safeDiv(payout, d.Get(models.FieldCommonDividends, 1)),
	}
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
