package model

// EnrichedRecord is one source row plus the five derived fields.
type EnrichedRecord struct {
	// Cells holds the original row values, aligned with the original columns.
	Cells []string

	// Numbers holds the coerced values of the numeric columns, keyed by
	// column name. Exports emit these in place of the raw cells, with blanks
	// where the value is missing.
	Numbers map[string]Number

	InvestmentValue float64
	CurrentValue    float64
	ProfitLoss      float64
	Status          string
	HighRiskFlag    string

	// Sector is the raw value of the Sector column, kept for grouping.
	Sector string
}

// EnrichedDataset is the validated input plus derived fields for every row.
// Columns lists the original column names in their original order; the
// derived columns are appended after them on export.
type EnrichedDataset struct {
	Columns []string
	Records []EnrichedRecord
}

// PortfolioSummary is the single-row aggregate over all enriched records.
type PortfolioSummary struct {
	TotalInvestment   float64 `json:"totalInvestment"`
	TotalCurrentValue float64 `json:"totalCurrentValue"`
	NetProfitLoss     float64 `json:"netProfitLoss"`
}

// SectorTotal is the profit/loss subtotal for one distinct sector value.
// Slices of SectorTotal preserve first-seen sector order.
type SectorTotal struct {
	Sector     string  `json:"sector"`
	ProfitLoss float64 `json:"profitLoss"`
}
