package emissions

// FinancialImpact breaks down the monetary value of a CO2 reduction into
// avoided fuel spend and carbon credit value.
type FinancialImpact struct {
	FuelSavingsKg      float64 `json:"fuel_savings_kg"`
	FuelSavingsTonnes  float64 `json:"fuel_savings_tonnes"`
	CarbonSavingsEUR   float64 `json:"carbon_savings_eur"`
	FuelCostSavingsEUR float64 `json:"fuel_cost_savings_eur"`
	TotalSavingsEUR    float64 `json:"total_savings_eur"`
}

// ComputeFinancialImpact values a CO2 reduction (kg) at the configured
// carbon and fuel prices. Fuel savings are derived back from CO2 through
// the emission factor.
func ComputeFinancialImpact(co2ReductionKg float64, cfg *Config) FinancialImpact {
	fuelSavings := co2ReductionKg / cfg.EmissionFactor

	carbonSavings := (co2ReductionKg / 1000) * cfg.CarbonPricePerTonne
	fuelCostSavings := (fuelSavings / 1000) * cfg.FuelPricePerTonne

	return FinancialImpact{
		FuelSavingsKg:      fuelSavings,
		FuelSavingsTonnes:  fuelSavings / 1000,
		CarbonSavingsEUR:   carbonSavings,
		FuelCostSavingsEUR: fuelCostSavings,
		TotalSavingsEUR:    carbonSavings + fuelCostSavings,
	}
}
