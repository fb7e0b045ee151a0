// Package exporter renders order summaries as spreadsheet files for the
// back office. Columns mirror the JSON listing so a sheet can be
// reconciled against the API without a mapping table.
package exporter

import (
	"bytes"
	"fmt"

	"github.com/kedaiflow/omsgo/internal/services/ledger"
	"github.com/xuri/excelize/v2"
)

const ordersSheet = "orders"

var orderHeaders = []string{
	"order_code", "type", "status", "customer", "phone",
	"total", "paid", "balance", "created_at",
}

// OrdersToExcel builds an XLSX workbook with one row per order summary.
func OrdersToExcel(rows []ledger.Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", ordersSheet)

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, h := range orderHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(ordersSheet, cell, h)
		f.SetCellStyle(ordersSheet, cell, cell, boldStyle)
	}

	for rowIdx, s := range rows {
		row := rowIdx + 2
		f.SetCellValue(ordersSheet, fmt.Sprintf("A%d", row), s.OrderCode)
		f.SetCellValue(ordersSheet, fmt.Sprintf("B%d", row), string(s.Type))
		f.SetCellValue(ordersSheet, fmt.Sprintf("C%d", row), string(s.Status))
		f.SetCellValue(ordersSheet, fmt.Sprintf("D%d", row), s.Customer)
		f.SetCellValue(ordersSheet, fmt.Sprintf("E%d", row), s.Phone)
		f.SetCellValue(ordersSheet, fmt.Sprintf("F%d", row), s.Total)
		f.SetCellValue(ordersSheet, fmt.Sprintf("G%d", row), s.Paid)
		f.SetCellValue(ordersSheet, fmt.Sprintf("H%d", row), s.Balance)
		f.SetCellValue(ordersSheet, fmt.Sprintf("I%d", row), s.CreatedAt.Format("2006-01-02 15:04"))
	}

	f.SetColWidth(ordersSheet, "A", "A", 14)
	f.SetColWidth(ordersSheet, "D", "E", 22)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
