package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"haven-data/internal/domain"
	"haven-data/internal/format"
)

// RosterExportHeader is the column order of the tenant roster workbook.
var RosterExportHeader = []string{
	"Full Name",
	"Status",
	"Property",
	"Room",
	"Payment Type",
	"Voucher Type",
	"Monthly Rent",
	"Entry Date",
	"Exit Date",
	"Voucher End",
	"Phone",
	"Email",
}

// rosterRow is one tenant joined with its bed and house.
type rosterRow struct {
	tenant *domain.Tenant
	bed    *domain.Bed
	house  *domain.House
}

// ExportTenants streams the tenant roster as an .xlsx download.
func (a *API) ExportTenants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	ctx := r.Context()
	tenants, err := a.tenants.ListTenants(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	beds, err := a.beds.ListBeds(ctx, "")
	if err != nil {
		writeError(w, err)
		return
	}
	houses, err := a.properties.ListProperties(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	bedByID := make(map[string]*domain.Bed, len(beds))
	for _, b := range beds {
		bedByID[b.BedID] = b
	}
	houseByID := make(map[string]*domain.House, len(houses))
	for _, h := range houses {
		houseByID[h.HouseID] = h
	}

	rows := make([]rosterRow, 0, len(tenants))
	for _, t := range tenants {
		row := rosterRow{tenant: t}
		if t.BedID != nil {
			if bed, ok := bedByID[*t.BedID]; ok {
				row.bed = bed
				row.house = houseByID[bed.HouseID]
			}
		}
		rows = append(rows, row)
	}

	data, err := generateRosterExcel(rows)
	if err != nil {
		a.logger.Error("failed to generate roster export", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}

	filename := fmt.Sprintf("tenant-roster-%s.xlsx", time.Now().Format(domain.DateOnly))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func generateRosterExcel(rows []rosterRow) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so no deferred Close here.

	sheetName := "Tenants"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range RosterExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	columnWidths := []float64{
		25, // Full Name
		12, // Status
		30, // Property
		10, // Room
		15, // Payment Type
		15, // Voucher Type
		14, // Monthly Rent
		14, // Entry Date
		14, // Exit Date
		14, // Voucher End
		16, // Phone
		25, // Email
	}
	for i := range RosterExportHeader {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, columnWidths[i]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for rowIdx, item := range rows {
		row := rowIdx + 2
		t := item.tenant

		property := ""
		room := ""
		if item.house != nil {
			property = item.house.Address
		}
		if item.bed != nil {
			room = item.bed.RoomNumber
		}

		values := []any{
			t.FullName,
			t.ApplicationStatus,
			property,
			room,
			stringOrEmpty(t.PaymentType),
			stringOrEmpty(t.VoucherType),
			format.FormatCurrency(t.ActualRent),
			exportDate(t.EntryDate),
			exportDate(t.ExitDate),
			exportDate(t.VoucherEnd),
			stringOrEmpty(t.Phone),
			stringOrEmpty(t.Email),
		}
		for colIdx, value := range values {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, colIdx+1, err)
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func exportDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DateOnly)
}
