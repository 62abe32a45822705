package xlsxio

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/model"
)

// Output sheet names, in workbook order.
const (
	SheetDetailed  = "Detailed_Stock_Data"
	SheetPortfolio = "Portfolio_Summary"
	SheetSector    = "Sector_Summary"
)

// Portfolio_Summary column headers.
const (
	HeaderTotalInvestment   = "Total_Investment"
	HeaderTotalCurrentValue = "Total_Current_Value"
	HeaderNetProfitLoss     = "Net_Profit_Loss"
)

// Encode serializes the enriched dataset and the two summaries into a single
// workbook with three sheets: Detailed_Stock_Data, Portfolio_Summary and
// Sector_Summary, in that order. The detailed sheet holds the original
// columns in their original order followed by the five derived columns, with
// a header row and no index column; numeric columns carry their coerced
// values, blank where the source value was missing.
func Encode(enriched *model.EnrichedDataset, portfolio model.PortfolioSummary, sectors []model.SectorTotal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetDetailed); err != nil {
		return nil, fmt.Errorf("renaming detail sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetPortfolio); err != nil {
		return nil, fmt.Errorf("creating %s: %w", SheetPortfolio, err)
	}
	if _, err := f.NewSheet(SheetSector); err != nil {
		return nil, fmt.Errorf("creating %s: %w", SheetSector, err)
	}

	if err := writeDetailed(f, enriched); err != nil {
		return nil, err
	}
	if err := writePortfolio(f, portfolio); err != nil {
		return nil, err
	}
	if err := writeSectors(f, sectors); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDetailed(f *excelize.File, enriched *model.EnrichedDataset) error {
	header := make([]interface{}, 0, len(enriched.Columns)+len(model.DerivedColumns))
	for _, c := range enriched.Columns {
		header = append(header, c)
	}
	for _, c := range model.DerivedColumns {
		header = append(header, c)
	}
	if err := setRow(f, SheetDetailed, 1, header); err != nil {
		return err
	}

	for i, rec := range enriched.Records {
		row := make([]interface{}, 0, len(header))
		for col, name := range enriched.Columns {
			// Numeric columns export their coerced value, blank when missing.
			if n, ok := rec.Numbers[name]; ok {
				if n.Valid {
					row = append(row, n.Value)
				} else {
					row = append(row, "")
				}
				continue
			}
			if col < len(rec.Cells) {
				row = append(row, rec.Cells[col])
			} else {
				row = append(row, "")
			}
		}
		row = append(row,
			rec.InvestmentValue,
			rec.CurrentValue,
			rec.ProfitLoss,
			rec.Status,
			rec.HighRiskFlag,
		)
		if err := setRow(f, SheetDetailed, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writePortfolio(f *excelize.File, p model.PortfolioSummary) error {
	header := []interface{}{HeaderTotalInvestment, HeaderTotalCurrentValue, HeaderNetProfitLoss}
	if err := setRow(f, SheetPortfolio, 1, header); err != nil {
		return err
	}
	return setRow(f, SheetPortfolio, 2, []interface{}{p.TotalInvestment, p.TotalCurrentValue, p.NetProfitLoss})
}

func writeSectors(f *excelize.File, sectors []model.SectorTotal) error {
	if err := setRow(f, SheetSector, 1, []interface{}{model.ColumnSector, model.ColumnProfitLoss}); err != nil {
		return err
	}
	for i, s := range sectors {
		if err := setRow(f, SheetSector, i+2, []interface{}{s.Sector, s.ProfitLoss}); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("building cell reference: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}
