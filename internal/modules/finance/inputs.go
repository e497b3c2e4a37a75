package finance

// RentalInputs carries everything needed to analyze a buy-and-hold rental.
// Rates are fractions (0.05 = 5%). Dollar fields are as labeled.
type RentalInputs struct {
	PurchasePrice    float64 `json:"purchase_price"`
	DownPaymentPct   float64 `json:"down_payment_pct"`
	AnnualRate       float64 `json:"annual_rate"`
	TermYears        int     `json:"term_years"`
	RehabCost        float64 `json:"rehab_cost"`
	MonthlyRent      float64 `json:"monthly_rent"`
	VacancyRate      float64 `json:"vacancy_rate"`
	ManagementRate   float64 `json:"management_rate"`
	MaintenanceRate  float64 `json:"maintenance_rate"` // Fraction of purchase price per year
	AnnualTaxRate    float64 `json:"annual_tax_rate"`  // Fraction of purchase price per year
	MonthlyInsurance float64 `json:"monthly_insurance"`
	MonthlyHOA       float64 `json:"monthly_hoa"`
	MonthlyUtilities float64 `json:"monthly_utilities"`
}

// LoanAmount returns the financed principal.
func (in RentalInputs) LoanAmount() float64 {
	return in.PurchasePrice * (1 - in.DownPaymentPct)
}

// Terms returns the loan terms for the quoted financing.
func (in RentalInputs) Terms() LoanTerms {
	return LoanTerms{
		Principal:  in.LoanAmount(),
		AnnualRate: in.AnnualRate,
		TermYears:  in.TermYears,
	}
}

// CashInvested returns total cash into the deal: down payment plus rehab.
func (in RentalInputs) CashInvested() float64 {
	return in.PurchasePrice*in.DownPaymentPct + in.RehabCost
}

// AnnualMaintenance returns the first-year maintenance reserve in dollars.
func (in RentalInputs) AnnualMaintenance() float64 {
	return in.PurchasePrice * in.MaintenanceRate
}

// AnnualTax returns the first-year property tax in dollars.
func (in RentalInputs) AnnualTax() float64 {
	return in.PurchasePrice * in.AnnualTaxRate
}

// FlipInputs carries everything needed to analyze a fix-and-flip.
type FlipInputs struct {
	PurchasePrice    float64 `json:"purchase_price"`
	DownPaymentPct   float64 `json:"down_payment_pct"`
	AnnualRate       float64 `json:"annual_rate"`
	TermYears        int     `json:"term_years"`
	RehabCost        float64 `json:"rehab_cost"`
	ARV              float64 `json:"arv"`
	MonthsToFlip     int     `json:"months_to_flip"`
	AnnualTaxRate    float64 `json:"annual_tax_rate"`
	MonthlyInsurance float64 `json:"monthly_insurance"`
	MonthlyUtilities float64 `json:"monthly_utilities"`
	SellingCostRate  float64 `json:"selling_cost_rate"` // Fraction of ARV; 0 means the default
}

// DefaultSellingCostRate covers agent commission and closing on the sale.
const DefaultSellingCostRate = 0.06

// sellingCostRate returns the configured rate or the default.
func (in FlipInputs) sellingCostRate() float64 {
	if in.SellingCostRate > 0 {
		return in.SellingCostRate
	}
	return DefaultSellingCostRate
}

// LoanAmount returns the financed principal.
func (in FlipInputs) LoanAmount() float64 {
	return in.PurchasePrice * (1 - in.DownPaymentPct)
}

// Terms returns the loan terms for the quoted financing.
func (in FlipInputs) Terms() LoanTerms {
	return LoanTerms{
		Principal:  in.LoanAmount(),
		AnnualRate: in.AnnualRate,
		TermYears:  in.TermYears,
	}
}

// CashInvested returns total cash into the deal: down payment plus rehab.
func (in FlipInputs) CashInvested() float64 {
	return in.PurchasePrice*in.DownPaymentPct + in.RehabCost
}
