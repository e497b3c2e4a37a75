// Package analysis orchestrates a full deal analysis run: input
// resolution, comp lookup, calculators, scoring, and alerts.
package analysis

import "github.com/akladas/propscope/internal/modules/finance"

// FieldSource is the host contract for resolving input fields by name.
// Implementations return the default when the field is absent.
type FieldSource interface {
	Get(name string, def float64) float64
}

// Field vocabulary. Hosts map their own layouts onto these names.
const (
	FieldPurchasePrice    = "purchase_price"
	FieldDownPaymentPct   = "down_payment_pct"
	FieldAnnualRate       = "annual_rate"
	FieldTermYears        = "term_years"
	FieldRehabCost        = "rehab_cost"
	FieldMonthsToFlip     = "months_to_flip"
	FieldARV              = "arv"
	FieldMonthlyRent      = "monthly_rent"
	FieldVacancyRate      = "vacancy_rate"
	FieldManagementRate   = "management_rate"
	FieldMaintenanceRate  = "maintenance_rate"
	FieldAnnualTaxRate    = "annual_tax_rate"
	FieldMonthlyInsurance = "monthly_insurance"
	FieldMonthlyHOA       = "monthly_hoa"
	FieldMonthlyUtilities = "monthly_utilities"
	FieldSellingCostRate  = "selling_cost_rate"
)

// Input defaults applied when a field source has no value.
const (
	defaultDownPaymentPct  = 0.20
	defaultAnnualRate      = 0.07
	defaultTermYears       = 30
	defaultMonthsToFlip    = 6
	defaultVacancyRate     = 0.05
	defaultManagementRate  = 0.08
	defaultMaintenanceRate = 0.01
	defaultAnnualTaxRate   = 0.0125
)

// Inputs is the resolved field set for one analysis run. Populated once
// from a FieldSource and passed by value; nothing in the run mutates it.
type Inputs struct {
	PurchasePrice    float64 `json:"purchase_price"`
	DownPaymentPct   float64 `json:"down_payment_pct"`
	AnnualRate       float64 `json:"annual_rate"`
	TermYears        int     `json:"term_years"`
	RehabCost        float64 `json:"rehab_cost"`
	MonthsToFlip     int     `json:"months_to_flip"`
	ARV              float64 `json:"arv"`
	MonthlyRent      float64 `json:"monthly_rent"`
	VacancyRate      float64 `json:"vacancy_rate"`
	ManagementRate   float64 `json:"management_rate"`
	MaintenanceRate  float64 `json:"maintenance_rate"`
	AnnualTaxRate    float64 `json:"annual_tax_rate"`
	MonthlyInsurance float64 `json:"monthly_insurance"`
	MonthlyHOA       float64 `json:"monthly_hoa"`
	MonthlyUtilities float64 `json:"monthly_utilities"`
	SellingCostRate  float64 `json:"selling_cost_rate"`
}

// ResolveInputs pulls the full field vocabulary out of the source once.
func ResolveInputs(src FieldSource) Inputs {
	return Inputs{
		PurchasePrice:    src.Get(FieldPurchasePrice, 0),
		DownPaymentPct:   src.Get(FieldDownPaymentPct, defaultDownPaymentPct),
		AnnualRate:       src.Get(FieldAnnualRate, defaultAnnualRate),
		TermYears:        int(src.Get(FieldTermYears, defaultTermYears)),
		RehabCost:        src.Get(FieldRehabCost, 0),
		MonthsToFlip:     int(src.Get(FieldMonthsToFlip, defaultMonthsToFlip)),
		ARV:              src.Get(FieldARV, 0),
		MonthlyRent:      src.Get(FieldMonthlyRent, 0),
		VacancyRate:      src.Get(FieldVacancyRate, defaultVacancyRate),
		ManagementRate:   src.Get(FieldManagementRate, defaultManagementRate),
		MaintenanceRate:  src.Get(FieldMaintenanceRate, defaultMaintenanceRate),
		AnnualTaxRate:    src.Get(FieldAnnualTaxRate, defaultAnnualTaxRate),
		MonthlyInsurance: src.Get(FieldMonthlyInsurance, 0),
		MonthlyHOA:       src.Get(FieldMonthlyHOA, 0),
		MonthlyUtilities: src.Get(FieldMonthlyUtilities, 0),
		SellingCostRate:  src.Get(FieldSellingCostRate, 0),
	}
}

// Rental maps the run inputs onto the rental calculator's input shape.
func (in Inputs) Rental() finance.RentalInputs {
	return finance.RentalInputs{
		PurchasePrice:    in.PurchasePrice,
		DownPaymentPct:   in.DownPaymentPct,
		AnnualRate:       in.AnnualRate,
		TermYears:        in.TermYears,
		RehabCost:        in.RehabCost,
		MonthlyRent:      in.MonthlyRent,
		VacancyRate:      in.VacancyRate,
		ManagementRate:   in.ManagementRate,
		MaintenanceRate:  in.MaintenanceRate,
		AnnualTaxRate:    in.AnnualTaxRate,
		MonthlyInsurance: in.MonthlyInsurance,
		MonthlyHOA:       in.MonthlyHOA,
		MonthlyUtilities: in.MonthlyUtilities,
	}
}

// Flip maps the run inputs onto the flip calculator's input shape, using
// the given after-repair value (comp-derived when available).
func (in Inputs) Flip(arv float64) finance.FlipInputs {
	return finance.FlipInputs{
		PurchasePrice:    in.PurchasePrice,
		DownPaymentPct:   in.DownPaymentPct,
		AnnualRate:       in.AnnualRate,
		TermYears:        in.TermYears,
		RehabCost:        in.RehabCost,
		ARV:              arv,
		MonthsToFlip:     in.MonthsToFlip,
		AnnualTaxRate:    in.AnnualTaxRate,
		MonthlyInsurance: in.MonthlyInsurance,
		MonthlyUtilities: in.MonthlyUtilities,
		SellingCostRate:  in.SellingCostRate,
	}
}

// FallbackARV is the purchase-price-based value estimate used when no
// comps are available: acquisition plus rehab, unless the host supplied
// an explicit ARV.
func (in Inputs) FallbackARV() float64 {
	if in.ARV > 0 {
		return in.ARV
	}
	return in.PurchasePrice + in.RehabCost
}
