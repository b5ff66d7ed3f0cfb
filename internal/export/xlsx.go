// Package export renders reconciled clients as spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"sessiondesk/internal/models"
)

// ClientsSheet is the name of the worksheet written by Clients
const ClientsSheet = "Clients"

// ClientsHeader is the header row of the clients export
var ClientsHeader = []string{
	"Client Key",
	"Name",
	"Email",
	"Phone",
	"Sessions",
	"Records",
	"Therapist",
	"Booking IDs",
}

var columnWidths = []float64{14, 24, 30, 18, 10, 10, 22, 40}

// Clients renders clients into an xlsx workbook, one row per client.
func Clients(clients []models.ClientSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(ClientsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(ClientsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to find sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(ClientsSheet, "A1", &ClientsHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(ClientsHeader), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(ClientsSheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column: %w", err)
		}
		if err := f.SetColWidth(ClientsSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, c := range clients {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		row := []any{
			c.Key,
			c.Name,
			valueOf(c.Email),
			valueOf(c.Phone),
			c.SessionCount,
			c.RecordCount,
			c.Therapist,
			strings.Join(c.BookingIDs, ", "),
		}
		if err := f.SetSheetRow(ClientsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
