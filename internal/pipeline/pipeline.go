// Package pipeline implements the validation-and-transform pipeline: parse,
// validate schema, coerce numerics, derive fields, aggregate, export. The
// whole run is linear and synchronous; every step appends to the caller's
// run log.
package pipeline

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/model"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/runlog"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/xlsxio"
)

// Cell values written to the derived Status and High_Risk_Flag columns.
const (
	StatusProfit = "Profit"
	StatusLoss   = "Loss"
	HighRiskYes  = "Yes"
	HighRiskNo   = "No"
)

// Result is the output of a successful run.
type Result struct {
	Enriched  *model.EnrichedDataset
	Portfolio model.PortfolioSummary
	Sectors   []model.SectorTotal

	// Artifact is the serialized three-sheet output workbook. Where it goes
	// is the caller's concern; the pipeline touches no filesystem.
	Artifact []byte
}

// Run executes the pipeline over raw spreadsheet bytes, appending progress
// to rlog. The caller owns rlog and must create it fresh per run; on failure
// the entries collected so far are its transcript. Errors are *ParseError,
// *SchemaError or *ProcessingError.
func Run(raw []byte, rlog *runlog.Log) (*Result, error) {
	ds, err := xlsxio.Decode(raw)
	if err != nil {
		rlog.Errorf("could not read uploaded file: %v", err)
		return nil, &ParseError{Err: err}
	}
	rlog.Infof("parsed input: %d rows, %d columns", len(ds.Rows), len(ds.Columns))

	if missing := missingColumns(ds); len(missing) > 0 {
		rlog.Errorf("missing required columns: %s", strings.Join(missing, ", "))
		return nil, &SchemaError{MissingColumns: missing}
	}
	rlog.Infof("schema check passed: all %d required columns present", len(model.RequiredColumns))

	return compute(ds, rlog)
}

// compute runs steps 3-6 behind a recovery boundary: any panic in coercion,
// derivation, aggregation or export becomes a ProcessingError carrying the
// stack, and the log collected so far survives.
func compute(ds *model.Dataset, rlog *runlog.Log) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			rlog.Errorf("unexpected failure: %v", r)
			res = nil
			err = &ProcessingError{Err: fmt.Errorf("%v", r), Stack: stack}
		}
	}()

	numbers := coerce(ds, rlog)
	enriched := derive(ds, numbers)
	rlog.Infof("derived %d columns for %d records", len(model.DerivedColumns), len(enriched.Records))

	portfolio, sectors := aggregate(enriched)
	rlog.Infof("aggregated portfolio totals and %d sector subtotals", len(sectors))

	artifact, aerr := xlsxio.Encode(enriched, portfolio, sectors)
	if aerr != nil {
		rlog.Errorf("export failed: %v", aerr)
		return nil, &ProcessingError{Err: aerr}
	}
	rlog.Infof("exported workbook (%d bytes): %s, %s, %s",
		len(artifact), xlsxio.SheetDetailed, xlsxio.SheetPortfolio, xlsxio.SheetSector)

	return &Result{
		Enriched:  enriched,
		Portfolio: portfolio,
		Sectors:   sectors,
		Artifact:  artifact,
	}, nil
}

// missingColumns returns the required columns absent from the dataset, in
// the required-column order.
func missingColumns(ds *model.Dataset) []string {
	var missing []string
	for _, c := range model.RequiredColumns {
		if ds.ColumnIndex(c) < 0 {
			missing = append(missing, c)
		}
	}
	return missing
}

// coerce converts the three numeric columns to numbers. Unparseable values
// degrade to missing markers, never errors; per-column missing counts are
// logged for data-quality visibility.
func coerce(ds *model.Dataset, rlog *runlog.Log) map[string][]model.Number {
	out := make(map[string][]model.Number, len(model.NumericColumns))
	for _, col := range model.NumericColumns {
		idx := ds.ColumnIndex(col)
		values := make([]model.Number, len(ds.Rows))
		missing := 0
		for i := range ds.Rows {
			v, ok := parseNumber(ds.Cell(i, idx))
			if !ok {
				missing++
			}
			values[i] = model.Number{Value: v, Valid: ok}
		}
		out[col] = values
		if missing > 0 {
			rlog.Warnf("column %s: %d of %d values missing after numeric coercion", col, missing, len(ds.Rows))
		} else {
			rlog.Infof("column %s: 0 missing values after numeric coercion", col)
		}
	}
	return out
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// derive computes the five derived fields per record. Missing prices and
// quantities count as 0 in the value products; Profit_Loss and Status flow
// from the zero-filled values, so a fully missing row reports zeros and
// classifies as Loss.
func derive(ds *model.Dataset, numbers map[string][]model.Number) *model.EnrichedDataset {
	buy := numbers[model.ColumnBuyPrice]
	current := numbers[model.ColumnCurrentPrice]
	quantity := numbers[model.ColumnQuantity]
	riskIdx := ds.ColumnIndex(model.ColumnRiskLevel)
	sectorIdx := ds.ColumnIndex(model.ColumnSector)

	records := make([]model.EnrichedRecord, len(ds.Rows))
	for i := range ds.Rows {
		investment := buy[i].OrZero() * quantity[i].OrZero()
		currentValue := current[i].OrZero() * quantity[i].OrZero()
		profitLoss := currentValue - investment

		// Strict > is the tie-break: zero classifies as Loss.
		status := StatusLoss
		if profitLoss > 0 {
			status = StatusProfit
		}

		flag := HighRiskNo
		if strings.EqualFold(strings.TrimSpace(ds.Cell(i, riskIdx)), "high") {
			flag = HighRiskYes
		}

		records[i] = model.EnrichedRecord{
			Cells: ds.Rows[i],
			Numbers: map[string]model.Number{
				model.ColumnBuyPrice:     buy[i],
				model.ColumnCurrentPrice: current[i],
				model.ColumnQuantity:     quantity[i],
			},
			InvestmentValue: investment,
			CurrentValue:    currentValue,
			ProfitLoss:      profitLoss,
			Status:          status,
			HighRiskFlag:    flag,
			Sector:          ds.Cell(i, sectorIdx),
		}
	}
	return &model.EnrichedDataset{Columns: ds.Columns, Records: records}
}

// aggregate builds the portfolio totals and the per-sector profit/loss
// subtotals. Sector grouping is insertion-stable: rows appear in first-seen
// sector order.
func aggregate(enriched *model.EnrichedDataset) (model.PortfolioSummary, []model.SectorTotal) {
	var portfolio model.PortfolioSummary
	index := make(map[string]int)
	var sectors []model.SectorTotal

	for _, rec := range enriched.Records {
		portfolio.TotalInvestment += rec.InvestmentValue
		portfolio.TotalCurrentValue += rec.CurrentValue
		portfolio.NetProfitLoss += rec.ProfitLoss

		if i, ok := index[rec.Sector]; ok {
			sectors[i].ProfitLoss += rec.ProfitLoss
		} else {
			index[rec.Sector] = len(sectors)
			sectors = append(sectors, model.SectorTotal{Sector: rec.Sector, ProfitLoss: rec.ProfitLoss})
		}
	}
	return portfolio, sectors
}
