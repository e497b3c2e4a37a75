package finance

// BreakEven holds break-even rent and occupancy thresholds.
type BreakEven struct {
	MonthlyDebtService float64 `json:"monthly_debt_service"`
	RentNoManagement   float64 `json:"rent_no_management"`
	RentWithManagement float64 `json:"rent_with_management"`
	BreakEvenOccupancy float64 `json:"break_even_occupancy"`
}

// ComputeBreakEven derives the rent needed to cover the monthly carry.
// Without management: debt service + monthly tax + insurance + maintenance.
// With management the figure is grossed up for the management and vacancy
// drag. Occupancy is the no-management figure against the current rent
// estimate; zero rent degrades to zero occupancy rather than dividing.
func ComputeBreakEven(in RentalInputs) BreakEven {
	debtService := in.Terms().Payment()

	rentNoMgmt := debtService +
		in.AnnualTax()/12 +
		in.MonthlyInsurance +
		in.AnnualMaintenance()/12

	be := BreakEven{
		MonthlyDebtService: debtService,
		RentNoManagement:   rentNoMgmt,
	}

	if drag := 1 - in.ManagementRate - in.VacancyRate; drag > 0 {
		be.RentWithManagement = rentNoMgmt / drag
	} else {
		be.RentWithManagement = rentNoMgmt
	}

	if in.MonthlyRent > 0 {
		be.BreakEvenOccupancy = rentNoMgmt / in.MonthlyRent
	}

	return be
}
