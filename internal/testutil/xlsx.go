package testutil

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/model"
)

// BuildWorkbook builds an in-memory xlsx workbook with a header row followed
// by the given data rows, as a pipeline input fixture.
//
// Example usage:
//
//	raw := testutil.BuildWorkbook(t, testutil.StandardColumns(),
//	    [][]interface{}{testutil.PortfolioRow(10, 15, 2, "High", "Tech")})
func BuildWorkbook(t *testing.T, columns []string, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatalf("Failed to write header row: %v", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("Failed to build cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("Failed to write row %d: %v", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to serialize workbook: %v", err)
	}
	return buf.Bytes()
}

// StandardColumns returns the five required columns in their usual order.
func StandardColumns() []string {
	return []string{
		model.ColumnBuyPrice,
		model.ColumnCurrentPrice,
		model.ColumnQuantity,
		model.ColumnRiskLevel,
		model.ColumnSector,
	}
}

// PortfolioRow builds one data row matching StandardColumns. Price and
// quantity values may be numbers or strings (strings exercise coercion).
func PortfolioRow(buyPrice, currentPrice, quantity interface{}, riskLevel, sector string) []interface{} {
	return []interface{}{buyPrice, currentPrice, quantity, riskLevel, sector}
}
