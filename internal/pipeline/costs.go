package pipeline

import (
	"math"
	"strconv"
	"strings"

	"mediaplan/internal"
)

// Campaign cost columns layered on top of the standardized table.
const (
	FieldRent       = "Rent/month"
	FieldPosting    = "Posting"
	FieldProduction = "Production"
	FieldAgComm     = "Ag Comm %"
	FieldTotalRent  = "Total rent"
	FieldAgencyFee  = "Agency commission"
	FieldAdTaxPct   = "Advertising taxe %"
	FieldAdTax      = "Advertising taxe"
	FieldTotalCost  = "Total Cost"
)

// CostOptions parameterizes the cost pass. AgencyCommission and
// AdvertisingTax are fractions (0.15 = 15%).
type CostOptions struct {
	AgencyCommission float64
	AdvertisingTax   float64
}

// ApplyCosts computes the campaign cost columns over a standardized table:
// supplier rent and posting get the standard uplift, production is priced
// per square metre, and commission plus advertising tax close the total.
// Rows missing rent or duration produce blank derived cells.
func ApplyCosts(t *internal.Table, opts CostOptions) {
	for _, name := range []string{
		FieldProduction, FieldAgComm, FieldTotalRent,
		FieldAgencyFee, FieldAdTaxPct, FieldAdTax, FieldTotalCost,
	} {
		ensureColumn(t, name)
	}

	for _, row := range t.Rows {
		rent, rentOK := parseAmount(row[FieldRent])
		posting, postingOK := parseAmount(row[FieldPosting])
		area, areaOK := parseAmount(row[internal.FieldSize])
		months, monthsOK := parseAmount(row[internal.FieldMonths])

		if rentOK {
			rent *= 1.2
			row[FieldRent] = formatAmount(rent)
		}
		if postingOK {
			posting *= 1.2
			row[FieldPosting] = formatAmount(posting)
		}

		production := 0.0
		if areaOK {
			production = area * 5
			row[FieldProduction] = formatAmount(production)
		}

		row[FieldAgComm] = formatAmount(opts.AgencyCommission * 100)
		row[FieldAdTaxPct] = formatAmount(opts.AdvertisingTax * 100)

		if !rentOK || !monthsOK {
			continue
		}
		totalRent := rent * months
		agencyFee := (posting + production + totalRent) * opts.AgencyCommission
		adTax := ((totalRent+posting)*opts.AgencyCommission + totalRent + posting) * opts.AdvertisingTax
		totalCost := adTax + agencyFee + posting + production + totalRent

		row[FieldTotalRent] = formatAmount(totalRent)
		row[FieldAgencyFee] = formatAmount(agencyFee)
		row[FieldAdTax] = formatAmount(adTax)
		row[FieldTotalCost] = formatAmount(totalCost)
	}
}

func parseAmount(value string) (float64, bool) {
	v := strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
	if v == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
