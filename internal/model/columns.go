package model

// Source column names the schema contract requires. Matching is exact and
// case-sensitive; column order and extra columns are irrelevant.
const (
	ColumnBuyPrice     = "Buy_Price"
	ColumnCurrentPrice = "Current_Price"
	ColumnQuantity     = "Quantity"
	ColumnRiskLevel    = "Risk_Level"
	ColumnSector       = "Sector"
)

// Derived column names appended to the detailed output sheet.
const (
	ColumnInvestmentValue = "Investment_Value"
	ColumnCurrentValue    = "Current_Value"
	ColumnProfitLoss      = "Profit_Loss"
	ColumnStatus          = "Status"
	ColumnHighRiskFlag    = "High_Risk_Flag"
)

// RequiredColumns must all be present before any computation proceeds.
var RequiredColumns = []string{
	ColumnBuyPrice,
	ColumnCurrentPrice,
	ColumnQuantity,
	ColumnRiskLevel,
	ColumnSector,
}

// NumericColumns are coerced to numbers; unparseable values become missing.
var NumericColumns = []string{
	ColumnBuyPrice,
	ColumnCurrentPrice,
	ColumnQuantity,
}

// DerivedColumns in the order they are appended on export.
var DerivedColumns = []string{
	ColumnInvestmentValue,
	ColumnCurrentValue,
	ColumnProfitLoss,
	ColumnStatus,
	ColumnHighRiskFlag,
}
