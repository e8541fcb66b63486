package csvexport

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"carbonfront/internal/columns"
	"carbonfront/internal/domain"
	"carbonfront/internal/rowset"
)

// SheetName is the worksheet that holds exported rows.
const SheetName = "Results"

// WriteXLSX renders the same column selection as Export into a workbook.
// Numeric cells are stored as numbers; everything else as normalized text.
func WriteXLSX(w io.Writer, rows rowset.RowSet, reg *columns.Registry) error {
	cols := reg.Included()
	if len(cols) == 0 {
		return domain.ErrNoColumnsSelected
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("creating stream writer: %w", err)
	}

	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = CellText(c.Header())
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		values := make([]interface{}, len(cols))
		for j, c := range cols {
			v, _ := row.Get(c.Key)
			values[j] = xlsxValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func xlsxValue(v any) interface{} {
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return CellText(v)
}
