package export

import (
	"bytes"
	"fmt"

	"github.com/shelterrights/shelterrights-api/internal/database"
	"github.com/xuri/excelize/v2"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	FileName    = "rent-calculations.xlsx"
	SheetName   = "Rent Calculations"
)

var CalculationHeader = []string{
	"Date",
	"City",
	"State",
	"Annual Income",
	"Monthly Rent",
	"Utilities",
	"Burden %",
	"Recommended Rent",
	"Monthly Overpayment",
	"Annual Overpayment",
	"AI Analysis",
}

var columnWidths = []float64{20, 18, 8, 15, 15, 12, 10, 18, 20, 20, 60}

// RentCalculations renders the calculation history as an xlsx workbook,
// one row per calculation in the order given.
func RentCalculations(calcs []database.RentCalculation) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	for i, header := range CalculationHeader {
		if err := setCell(f, i+1, 1, header); err != nil {
			return nil, err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(SheetName, col, col, columnWidths[i]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(CalculationHeader), 1)
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, c := range calcs {
		row := i + 2
		values := []any{
			c.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			c.LocationCity,
			c.LocationState,
			c.AnnualIncome,
			c.MonthlyRent,
			c.Utilities,
			c.BurdenPercentage,
			c.RecommendedRent,
			c.MonthlyOverpayment,
			c.AnnualOverpayment,
			c.AIAnalysis,
		}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				return nil, err
			}
		}
	}

	if len(calcs) > 0 {
		first, _ := excelize.CoordinatesToCellName(4, 2)
		last, _ := excelize.CoordinatesToCellName(10, len(calcs)+1)
		if err := f.SetCellStyle(SheetName, first, last, moneyStyle); err != nil {
			return nil, fmt.Errorf("failed to set money style: %w", err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}
