package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/tally/internal/money"
)

const sheetName = "Categorized"

// WriteXLSX renders the report as a single-sheet workbook. Amount cells that
// parse as numbers are written as numbers with a currency format so the
// spreadsheet can sum them; the "$ -" sentinel stays text.
func (r Report) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	currencyFmt := `"$ "0.00`

	currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt})
	if err != nil {
		return fmt.Errorf("creating currency style: %w", err)
	}

	for i, row := range r {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}

			if err := writeCell(f, ref, cell, i >= 2 && j%2 == 0 && j > 0, currency); err != nil {
				return err
			}

			if i < 2 || (i == len(r)-1 && j == 0) {
				if err := f.SetCellStyle(sheetName, ref, ref, bold); err != nil {
					return fmt.Errorf("styling %s: %w", ref, err)
				}
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func writeCell(f *excelize.File, ref, cell string, amountCol bool, currency int) error {
	if amountCol && cell != money.ZeroSentinel {
		if d, ok := money.ParseCell(cell); ok {
			if err := f.SetCellFloat(sheetName, ref, d.InexactFloat64(), -1, 64); err != nil {
				return fmt.Errorf("setting %s: %w", ref, err)
			}

			if err := f.SetCellStyle(sheetName, ref, ref, currency); err != nil {
				return fmt.Errorf("styling %s: %w", ref, err)
			}

			return nil
		}
	}

	if err := f.SetCellStr(sheetName, ref, cell); err != nil {
		return fmt.Errorf("setting %s: %w", ref, err)
	}

	return nil
}
