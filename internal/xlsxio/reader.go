// Package xlsxio decodes uploaded spreadsheets into the raw dataset and
// encodes the processed three-sheet output workbook.
package xlsxio

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/model"
)

// Decode parses raw xlsx bytes into a Dataset. The first sheet is the
// dataset; its first row is the header. A workbook with no sheets or no
// header row decodes to an empty dataset, which the schema check then
// rejects with the full list of missing columns.
func Decode(raw []byte) (*model.Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &model.Dataset{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &model.Dataset{}, nil
	}

	return &model.Dataset{
		Columns: rows[0],
		Rows:    rows[1:],
	}, nil
}
